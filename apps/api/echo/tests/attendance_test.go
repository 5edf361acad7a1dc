package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	. "github.com/Mukesh1q2/LIMS-sub001/apps/api/echo"
	"github.com/Mukesh1q2/LIMS-sub001/core/attendance"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
	testutil "github.com/Mukesh1q2/LIMS-sub001/tests"
)

func markAttendance(t *testing.T, server Server, token, studentID, date string, morning, evening bool) attendance.Entry {
	t.Helper()

	body := marshallObj(t, map[string]interface{}{
		"studentId": studentID, "date": date, "morningPresent": morning, "eveningPresent": evening,
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/attendance", token, body)
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("markAttendance() failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data attendance.Entry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("markAttendance() failed: %v", err)
	}
	return resp.Data
}

func TestAttendanceAPI(t *testing.T) {
	server := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teach User", "teach@instadesk.test", user.RoleTeacher, "Secret123", true)
	token := getToken(t, teacher)

	rahul := testutil.CreateStudent(t, studentRepo, "Rahul Sharma", "ENR-1001", "12th Science")
	priya := testutil.CreateStudent(t, studentRepo, "Priya Patel", "ENR-1002", "12th Commerce")

	e1 := markAttendance(t, server, token, rahul.ID, "2026-08-28", true, false)
	e2 := markAttendance(t, server, token, priya.ID, "2026-08-28", true, true)
	e3 := markAttendance(t, server, token, rahul.ID, "2026-08-29", false, true)

	if e1.Student == nil || e1.Student.Name != rahul.Name {
		t.Fatalf("expected the student join on a fresh record, got %+v", e1.Student)
	}

	tests := []httpTest{
		{
			name:     "duplicate (student, date) pair",
			method:   http.MethodPost,
			path:     "/v1/attendance",
			token:    token,
			body:     marshallObj(t, map[string]interface{}{"studentId": rahul.ID, "date": "2026-08-28"}),
			wantCode: http.StatusConflict,
			wantData: marshallErr(t, httpErr{Error: "attendance already marked for this student on this date"}),
		},
		{
			name:     "unknown student",
			method:   http.MethodPost,
			path:     "/v1/attendance",
			token:    token,
			body:     marshallObj(t, map[string]interface{}{"studentId": "STU9999", "date": "2026-08-28"}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]interface{}{
				"success": false,
				"error":   map[string]string{"studentId": "unknown student"},
			}),
		},
		{
			name:     "date must be a calendar day",
			method:   http.MethodPost,
			path:     "/v1/attendance",
			token:    token,
			body:     marshallObj(t, map[string]interface{}{"studentId": rahul.ID, "date": "28/08/2026"}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]interface{}{
				"success": false,
				"error":   map[string]string{"date": "must be a calendar day formatted as YYYY-MM-DD"},
			}),
		},
		{
			name:     "list all",
			method:   http.MethodGet,
			path:     "/v1/attendance",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, e1, e2, e3),
		},
		{
			name:     "filter by date",
			method:   http.MethodGet,
			path:     "/v1/attendance?" + url.Values{"date": {"2026-08-28"}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, e1, e2),
		},
		{
			name:     "filters are a conjunction",
			method:   http.MethodGet,
			path:     "/v1/attendance?" + url.Values{"date": {"2026-08-28"}, "studentId": {rahul.ID}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, e1),
		},
		{
			name:     "date range is inclusive",
			method:   http.MethodGet,
			path:     "/v1/attendance?" + url.Values{"dateFrom": {"2026-08-29"}, "dateTo": {"2026-08-29"}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, e3),
		},
		{
			name:     "retrieve one",
			method:   http.MethodGet,
			path:     "/v1/attendance/" + e2.ID,
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallOK(t, e2),
		},
		{
			name:     "teacher cannot delete",
			method:   http.MethodDelete,
			path:     "/v1/attendance/" + e3.ID,
			token:    token,
			wantCode: http.StatusForbidden,
			wantData: marshallErr(t, errForbidden),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestAttendanceUpdateTogglesFlags(t *testing.T) {
	server := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teach User", "teach@instadesk.test", user.RoleTeacher, "Secret123", true)
	token := getToken(t, teacher)
	rahul := testutil.CreateStudent(t, studentRepo, "Rahul Sharma", "ENR-1001", "12th Science")

	entry := markAttendance(t, server, token, rahul.ID, "2026-08-28", true, false)

	// toggle only the evening flag
	body := marshallObj(t, map[string]interface{}{"eveningPresent": true})
	req, rec := newAuthRequest(http.MethodPut, "/v1/attendance/"+entry.ID, token, body)
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data attendance.Entry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling update response: %v", err)
	}
	if !resp.Data.MorningPresent {
		t.Error("morningPresent flipped; want it untouched")
	}
	if !resp.Data.EveningPresent {
		t.Error("eveningPresent = false; want true")
	}
}

func TestAttendanceStudentJoinIsLive(t *testing.T) {
	server := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Admin User", "admin@instadesk.test", user.RoleAdmin, "Secret123", true)
	token := getToken(t, admin)
	rahul := testutil.CreateStudent(t, studentRepo, "Rahul Sharma", "ENR-1001", "12th Science")

	entry := markAttendance(t, server, token, rahul.ID, "2026-08-28", true, false)

	retrieve := func() *httptest.ResponseRecorder {
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance/"+entry.ID, token)
		server.ServeHTTP(rec, req)
		return rec
	}

	// rename the student; the join must reflect it
	body := marshallObj(t, map[string]string{"name": "Rahul S."})
	req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+rahul.ID, token, body)
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("renaming student failed! code = %v; body %v", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data attendance.Entry `json:"data"`
	}
	if err := json.Unmarshal(retrieve().Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling: %v", err)
	}
	if resp.Data.Student == nil || resp.Data.Student.Name != "Rahul S." {
		t.Errorf("student join = %+v; want the renamed student", resp.Data.Student)
	}

	// delete the student; the record survives without its join
	req, rec = newAuthRequest(http.MethodDelete, "/v1/students/"+rahul.ID, token)
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("deleting student failed! code = %v; body %v", rec.Code, rec.Body.String())
	}

	resp.Data = attendance.Entry{} // absent fields keep old values on decode
	if err := json.Unmarshal(retrieve().Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling: %v", err)
	}
	if resp.Data.Student != nil {
		t.Errorf("student join = %+v; want nil after the student is deleted", resp.Data.Student)
	}
}
