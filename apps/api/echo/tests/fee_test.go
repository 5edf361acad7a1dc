package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	. "github.com/Mukesh1q2/LIMS-sub001/apps/api/echo"
	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/fee"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
	testutil "github.com/Mukesh1q2/LIMS-sub001/tests"
)

func recordPayment(t *testing.T, server Server, token string, body map[string]interface{}) fee.Payment {
	t.Helper()

	req, rec := newAuthRequest(http.MethodPost, "/v1/fees", token, marshallObj(t, body))
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("recordPayment() failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data fee.Payment `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("recordPayment() failed: %v", err)
	}
	return resp.Data
}

func TestFeeAPI(t *testing.T) {
	server := setup(t)

	accountant := testutil.CreateUser(t, usrRepo, "Accounts User", "accounts@instadesk.test", user.RoleAccountant, "Secret123", true)
	librarian := testutil.CreateUser(t, usrRepo, "Lib User", "lib@instadesk.test", user.RoleLibrarian, "Secret123", true)
	token := getToken(t, accountant)

	rahul := testutil.CreateStudent(t, studentRepo, "Rahul Sharma", "ENR-1001", "12th Science")
	priya := testutil.CreateStudent(t, studentRepo, "Priya Patel", "ENR-1002", "12th Commerce")

	p1 := recordPayment(t, server, token, map[string]interface{}{
		"studentId": rahul.ID, "month": "2026-08", "amount": 1500, "mode": fee.ModeUPI,
	})
	p2 := recordPayment(t, server, token, map[string]interface{}{
		"studentId": priya.ID, "month": "2026-08", "amount": 2000, "status": fee.StatusPending,
	})
	p3 := recordPayment(t, server, token, map[string]interface{}{
		"studentId": rahul.ID, "month": "2026-07", "amount": 1500, "mode": fee.ModeCash, "paidOn": "2026-07-05",
	})

	if p1.Status != fee.StatusPaid {
		t.Errorf("status = %v; want %v (default)", p1.Status, fee.StatusPaid)
	}
	if p1.PaidOn == "" {
		t.Error("expected paidOn to default to today for a paid record")
	}
	if p2.PaidOn != "" {
		t.Errorf("paidOn = %v; want empty for a pending record", p2.PaidOn)
	}
	if p3.PaidOn != "2026-07-05" {
		t.Errorf("paidOn = %v; want the stated date", p3.PaidOn)
	}

	tests := []httpTest{
		{
			name:     "librarian cannot view fees",
			method:   http.MethodGet,
			path:     "/v1/fees",
			token:    getToken(t, librarian),
			wantCode: http.StatusForbidden,
			wantData: marshallErr(t, errForbidden),
		},
		{
			name:     "list all",
			method:   http.MethodGet,
			path:     "/v1/fees",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, p1, p2, p3),
		},
		{
			name:     "filter by month and status",
			method:   http.MethodGet,
			path:     "/v1/fees?" + url.Values{"month": {"2026-08"}, "status": {fee.StatusPending}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, p2),
		},
		{
			name:     "filter by student",
			method:   http.MethodGet,
			path:     "/v1/fees?" + url.Values{"studentId": {rahul.ID}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, p1, p3),
		},
		{
			name:     "duplicate (student, month) pair",
			method:   http.MethodPost,
			path:     "/v1/fees",
			token:    token,
			body:     marshallObj(t, map[string]interface{}{"studentId": rahul.ID, "month": "2026-08", "amount": 999}),
			wantCode: http.StatusConflict,
			wantData: marshallErr(t, httpErr{Error: "a fee payment for this student and month already exists"}),
		},
		{
			name:     "amount must be positive",
			method:   http.MethodPost,
			path:     "/v1/fees",
			token:    token,
			body:     marshallObj(t, map[string]interface{}{"studentId": rahul.ID, "month": "2026-09", "amount": -5}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "month must be YYYY-MM",
			method:   http.MethodPost,
			path:     "/v1/fees",
			token:    token,
			body:     marshallObj(t, map[string]interface{}{"studentId": rahul.ID, "month": "Aug 2026", "amount": 100}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]interface{}{
				"success": false,
				"error":   map[string]string{"month": "must be a month formatted as YYYY-MM"},
			}),
		},
		{
			name:     "summary for a given month",
			method:   http.MethodGet,
			path:     "/v1/fees/summary?" + url.Values{"month": {"2026-08"}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallOK(t, fee.Summary{
				Month: "2026-08", PaidCount: 1, PendingCount: 1, PaidAmount: 1500, PendingAmount: 2000,
			}),
		},
		{
			name:     "retrieve one",
			method:   http.MethodGet,
			path:     "/v1/fees/" + p2.ID,
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallOK(t, p2),
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     "/v1/fees/" + p3.ID,
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallOK(t, p3),
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

func TestFeeSummaryDefaultsToCurrentMonth(t *testing.T) {
	frozen := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	core.NowFunc = func() time.Time { return frozen }
	defer func() { core.NowFunc = time.Now }()

	server := setup(t)

	accountant := testutil.CreateUser(t, usrRepo, "Accounts User", "accounts@instadesk.test", user.RoleAccountant, "Secret123", true)
	token := getToken(t, accountant)
	rahul := testutil.CreateStudent(t, studentRepo, "Rahul Sharma", "ENR-1001", "12th Science")

	recordPayment(t, server, token, map[string]interface{}{
		"studentId": rahul.ID, "month": "2026-08", "amount": 1200,
	})
	recordPayment(t, server, token, map[string]interface{}{
		"studentId": rahul.ID, "month": "2026-07", "amount": 1200,
	})

	req, rec := newAuthRequest(http.MethodGet, "/v1/fees/summary", token)
	server.ServeHTTP(rec, req)

	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: marshallOK(t, fee.Summary{Month: "2026-08", PaidCount: 1, PaidAmount: 1200}),
	}
	checkCodeAndData(t, tt, rec)
}

func TestFeeMarkPending(t *testing.T) {
	server := setup(t)

	accountant := testutil.CreateUser(t, usrRepo, "Accounts User", "accounts@instadesk.test", user.RoleAccountant, "Secret123", true)
	token := getToken(t, accountant)
	rahul := testutil.CreateStudent(t, studentRepo, "Rahul Sharma", "ENR-1001", "12th Science")

	p := recordPayment(t, server, token, map[string]interface{}{
		"studentId": rahul.ID, "month": "2026-08", "amount": 1500, "status": fee.StatusPending,
	})

	// settle the pending record
	body := marshallObj(t, map[string]interface{}{"status": fee.StatusPaid, "paidOn": "2026-08-30", "mode": fee.ModeCard})
	req, rec := newAuthRequest(http.MethodPut, "/v1/fees/"+p.ID, token, body)
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data fee.Payment `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling update response: %v", err)
	}
	if resp.Data.Status != fee.StatusPaid || resp.Data.PaidOn != "2026-08-30" || resp.Data.Mode != fee.ModeCard {
		t.Errorf("update not applied: %+v", resp.Data)
	}
	if resp.Data.Amount != p.Amount {
		t.Errorf("amount changed unexpectedly: %v", resp.Data.Amount)
	}
}
