package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"

	. "github.com/Mukesh1q2/LIMS-sub001/apps/api/echo"
	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/report"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
	testutil "github.com/Mukesh1q2/LIMS-sub001/tests"
)

func generateReport(t *testing.T, server Server, token string, body map[string]interface{}) report.Report {
	t.Helper()

	req, rec := newAuthRequest(http.MethodPost, "/v1/reports", token, marshallObj(t, body))
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("generateReport() failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data report.Report `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("generateReport() failed: %v", err)
	}
	return resp.Data
}

func TestReportAPI(t *testing.T) {
	frozen := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	core.NowFunc = func() time.Time { return frozen }
	defer func() { core.NowFunc = time.Now }()

	server := setup(t)

	accountant := testutil.CreateUser(t, usrRepo, "Accounts User", "accounts@instadesk.test", user.RoleAccountant, "Secret123", true)
	teacher := testutil.CreateUser(t, usrRepo, "Teach User", "teach@instadesk.test", user.RoleTeacher, "Secret123", true)
	token := getToken(t, accountant)

	r1 := generateReport(t, server, token, map[string]interface{}{
		"name": "August Collections", "type": "fees", "format": "xlsx",
	})
	r2 := generateReport(t, server, token, map[string]interface{}{
		"name": "Monthly Attendance", "type": "attendance",
	})

	if _, err := uuid.Parse(r1.ID); err != nil {
		t.Errorf("id = %v; want a uuid", r1.ID)
	}
	if r1.GeneratedBy != accountant.Name {
		t.Errorf("generatedBy = %v; want the caller's name", r1.GeneratedBy)
	}
	if !r1.GeneratedAt.Equal(frozen) {
		t.Errorf("generatedAt = %v; want %v", r1.GeneratedAt, frozen)
	}
	if r2.Format != "pdf" {
		t.Errorf("format = %v; want pdf (default)", r2.Format)
	}

	tests := []httpTest{
		{
			name:     "list all",
			method:   http.MethodGet,
			path:     "/v1/reports",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, r1, r2),
		},
		{
			name:     "teacher may view",
			method:   http.MethodGet,
			path:     "/v1/reports",
			token:    getToken(t, teacher),
			wantCode: http.StatusOK,
			wantData: marshallList(t, r1, r2),
		},
		{
			name:     "teacher cannot generate",
			method:   http.MethodPost,
			path:     "/v1/reports",
			token:    getToken(t, teacher),
			body:     marshallObj(t, map[string]interface{}{"name": "X", "type": "custom"}),
			wantCode: http.StatusForbidden,
			wantData: marshallErr(t, errForbidden),
		},
		{
			name:     "filter by type",
			method:   http.MethodGet,
			path:     "/v1/reports?" + url.Values{"type": {"fees"}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, r1),
		},
		{
			name:     "search by name",
			method:   http.MethodGet,
			path:     "/v1/reports?" + url.Values{"search": {"attendance"}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, r2),
		},
		{
			name:     "date bounds are inclusive",
			method:   http.MethodGet,
			path:     "/v1/reports?" + url.Values{"dateFrom": {"2026-08-30"}, "dateTo": {"2026-08-30"}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, r1, r2),
		},
		{
			name:     "out-of-range dates match nothing",
			method:   http.MethodGet,
			path:     "/v1/reports?" + url.Values{"dateTo": {"2026-08-29"}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t),
		},
		{
			name:     "malformed date bound",
			method:   http.MethodGet,
			path:     "/v1/reports?" + url.Values{"dateFrom": {"30/08/2026"}}.Encode(),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]interface{}{
				"success": false,
				"error":   map[string]string{"dateFrom": "invalid date"},
			}),
		},
		{
			name:     "unknown type rejected",
			method:   http.MethodPost,
			path:     "/v1/reports",
			token:    token,
			body:     marshallObj(t, map[string]interface{}{"name": "X", "type": "payroll"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "retrieve one",
			method:   http.MethodGet,
			path:     "/v1/reports/" + r2.ID,
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallOK(t, r2),
		},
		{
			name:     "teacher cannot delete",
			method:   http.MethodDelete,
			path:     "/v1/reports/" + r1.ID,
			token:    getToken(t, teacher),
			wantCode: http.StatusForbidden,
			wantData: marshallErr(t, errForbidden),
		},
		{
			name:     "accountant cannot delete either",
			method:   http.MethodDelete,
			path:     "/v1/reports/" + r1.ID,
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

func TestReportDelete(t *testing.T) {
	server := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Admin User", "admin@instadesk.test", user.RoleSuperAdmin, "Secret123", true)
	token := getToken(t, admin)

	r := generateReport(t, server, token, map[string]interface{}{"name": "Doomed", "type": "custom"})

	req, rec := newAuthRequest(http.MethodDelete, "/v1/reports/"+r.ID, token)
	server.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusOK, wantData: marshallOK(t, r)}
	checkCodeAndData(t, tt, rec)

	req, rec = newAuthRequest(http.MethodDelete, "/v1/reports/"+r.ID, token)
	server.ServeHTTP(rec, req)
	tt = httpTest{wantCode: http.StatusNotFound, wantData: marshallErr(t, httpErr{Error: "report not found"})}
	checkCodeAndData(t, tt, rec)
}
