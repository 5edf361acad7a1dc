package main

import (
	"log"
	"os"

	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
	"github.com/Mukesh1q2/LIMS-sub001/storage/database"
	"github.com/Mukesh1q2/LIMS-sub001/storage/inmem"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	cli := commandLine{conf: conf}
	if conf.Database.Engine != "" {
		db, err := database.Open(conf)
		errAndDie(err)
		defer func() { _ = db.Close() }()
		errAndDie(db.Ping())
		cli.db = db
	}

	// without a database engine user commands run against a seeded
	// in-memory store private to this process; changes only reach a
	// running API when both sides share a database.
	memDB := inmem.NewDB()
	errAndDie(memDB.Seed())
	cli.usrSvc = user.NewService(inmem.NewUserRepository(memDB))

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
