package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/Mukesh1q2/LIMS-sub001/apps/api/echo"
	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/attendance"
	"github.com/Mukesh1q2/LIMS-sub001/core/fee"
	"github.com/Mukesh1q2/LIMS-sub001/core/library"
	"github.com/Mukesh1q2/LIMS-sub001/core/report"
	"github.com/Mukesh1q2/LIMS-sub001/core/seat"
	"github.com/Mukesh1q2/LIMS-sub001/core/student"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
	emailsvc "github.com/Mukesh1q2/LIMS-sub001/services/email"
	"github.com/Mukesh1q2/LIMS-sub001/storage/inmem"
)

var (
	conf *core.Config

	usrRepo     user.Repository
	studentRepo student.Repository
	libRepo     library.Repository

	usrSvc     *user.Service
	studentSvc *student.Service

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

func setup(t *testing.T) Server {
	t.Helper()

	conf = core.NewConfig()
	conf.TestMode = true
	conf.Debug = false

	// fresh store per test
	db := inmem.NewDB()
	usrRepo = inmem.NewUserRepository(db)
	studentRepo = inmem.NewStudentRepository(db)
	libRepo = inmem.NewLibraryRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc = user.NewService(usrRepo)
	studentSvc = student.NewService(studentRepo, mailSvc, conf)
	attendanceSvc := attendance.NewService(inmem.NewAttendanceRepository(db), studentSvc)
	feeSvc := fee.NewService(inmem.NewFeeRepository(db), studentSvc)
	librarySvc := library.NewService(libRepo, studentSvc, mailSvc, conf)
	seatSvc := seat.NewService(inmem.NewSeatRepository(db), studentSvc)
	reportSvc := report.NewService(inmem.NewReportRepository(db))

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// set up server
	return NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         testLogger{},
			UserSvc:        usrSvc,
			StudentSvc:     studentSvc,
			AttendanceSvc:  attendanceSvc,
			FeeSvc:         feeSvc,
			LibrarySvc:     librarySvc,
			SeatSvc:        seatSvc,
			ReportSvc:      reportSvc,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

type httpErr struct {
	Error interface{} `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(conf, usr)
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

// marshallOK wraps data in the success envelope.
func marshallOK(t *testing.T, data interface{}) []byte {
	return marshallObj(t, map[string]interface{}{"success": true, "data": data})
}

// marshallList wraps records in the success envelope with their count.
func marshallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	return marshallObj(t, map[string]interface{}{"success": true, "data": objs, "count": len(objs)})
}

// marshallErr wraps a message in the failure envelope.
func marshallErr(t *testing.T, e httpErr) []byte {
	return marshallObj(t, map[string]interface{}{"success": false, "error": e.Error})
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
