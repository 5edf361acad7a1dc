package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/Mukesh1q2/LIMS-sub001/apps/api/echo"
	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/attendance"
	"github.com/Mukesh1q2/LIMS-sub001/core/fee"
	"github.com/Mukesh1q2/LIMS-sub001/core/library"
	"github.com/Mukesh1q2/LIMS-sub001/core/report"
	"github.com/Mukesh1q2/LIMS-sub001/core/seat"
	"github.com/Mukesh1q2/LIMS-sub001/core/student"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
	emailsvc "github.com/Mukesh1q2/LIMS-sub001/services/email"
	logsvc "github.com/Mukesh1q2/LIMS-sub001/services/logger"
	"github.com/Mukesh1q2/LIMS-sub001/storage/database"
	sqlxrepos "github.com/Mukesh1q2/LIMS-sub001/storage/database/sqlx"
	"github.com/Mukesh1q2/LIMS-sub001/storage/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up storage: the seeded in-memory store is the default; a
	// PostgreSQL engine swaps in the sqlx student repository.
	db := inmem.NewDB()
	if err := db.Seed(); err != nil {
		logger.Fatal(fmt.Sprintf("seeding store: %v", err), err)
	}

	var studentRepo student.Repository = inmem.NewStudentRepository(db)
	if conf.Database.Engine != "" {
		sqlDB, err := setUpDB(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = sqlDB.Close(); err != nil {
				logger.Error("closing database", err)
			}
		}()
		studentRepo = sqlxrepos.NewStudentRepository(sqlDB)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	studentSvc := student.NewService(studentRepo, mailSvc, conf)
	attendanceSvc := attendance.NewService(inmem.NewAttendanceRepository(db), studentSvc)
	feeSvc := fee.NewService(inmem.NewFeeRepository(db), studentSvc)
	librarySvc := library.NewService(inmem.NewLibraryRepository(db), studentSvc, mailSvc, conf)
	seatSvc := seat.NewService(inmem.NewSeatRepository(db), studentSvc)
	reportSvc := report.NewService(inmem.NewReportRepository(db))
	usrSvc := user.NewService(inmem.NewUserRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			UserSvc:       usrSvc,
			StudentSvc:    studentSvc,
			AttendanceSvc: attendanceSvc,
			FeeSvc:        feeSvc,
			LibrarySvc:    librarySvc,
			SeatSvc:       seatSvc,
			ReportSvc:     reportSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.OpenX(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
