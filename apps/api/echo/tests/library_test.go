package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	. "github.com/Mukesh1q2/LIMS-sub001/apps/api/echo"
	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/library"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
	emailsvc "github.com/Mukesh1q2/LIMS-sub001/services/email"
	testutil "github.com/Mukesh1q2/LIMS-sub001/tests"
)

func issueBook(t *testing.T, server Server, token string, body map[string]interface{}) library.Issue {
	t.Helper()

	req, rec := newAuthRequest(http.MethodPost, "/v1/library/issues", token, marshallObj(t, body))
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("issueBook() failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data library.Issue `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("issueBook() failed: %v", err)
	}
	return resp.Data
}

func getBook(t *testing.T, server Server, token, id string) library.Book {
	t.Helper()

	req, rec := newAuthRequest(http.MethodGet, "/v1/library/books/"+id, token)
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("getBook() failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data library.Book `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("getBook() failed: %v", err)
	}
	return resp.Data
}

func TestBookAPI(t *testing.T) {
	server := setup(t)

	librarian := testutil.CreateUser(t, usrRepo, "Lib User", "lib@instadesk.test", user.RoleLibrarian, "Secret123", true)
	token := getToken(t, librarian)

	physics := testutil.CreateBook(t, libRepo, "Concepts of Physics", "H.C. Verma", "978-8177091878", 3)
	maths := testutil.CreateBook(t, libRepo, "Higher Algebra", "Hall & Knight", "978-9351762454", 2)

	tests := []httpTest{
		{
			name:     "list all",
			method:   http.MethodGet,
			path:     "/v1/library/books",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, physics, maths),
		},
		{
			name:     "search matches author",
			method:   http.MethodGet,
			path:     "/v1/library/books?" + url.Values{"search": {"verma"}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, physics),
		},
		{
			name:     "missing required fields",
			method:   http.MethodPost,
			path:     "/v1/library/books",
			token:    token,
			body:     marshallObj(t, map[string]string{"title": "No Author"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "duplicate ISBN",
			method:   http.MethodPost,
			path:     "/v1/library/books",
			token:    token,
			body: marshallObj(t, map[string]interface{}{
				"title": "Clone", "author": "X", "isbn": physics.ISBN,
			}),
			wantCode: http.StatusConflict,
			wantData: marshallErr(t, httpErr{Error: "a book with this ISBN already exists"}),
		},
		{
			name:     "retrieve one",
			method:   http.MethodGet,
			path:     "/v1/library/books/" + maths.ID,
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallOK(t, maths),
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     "/v1/library/books/" + maths.ID,
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallOK(t, maths),
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

func TestBookCreateDefaultsCopies(t *testing.T) {
	server := setup(t)

	librarian := testutil.CreateUser(t, usrRepo, "Lib User", "lib@instadesk.test", user.RoleLibrarian, "Secret123", true)
	token := getToken(t, librarian)

	body := marshallObj(t, map[string]interface{}{
		"title": "Organic Chemistry", "author": "Morrison & Boyd", "isbn": "978-9332902213",
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/library/books", token, body)
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data library.Book `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling create response: %v", err)
	}
	if resp.Data.TotalCopies != 1 || resp.Data.AvailableCopies != 1 {
		t.Errorf("copies = %v/%v; want 1/1 by default", resp.Data.AvailableCopies, resp.Data.TotalCopies)
	}
}

func TestBookUpdateCopyAccounting(t *testing.T) {
	server := setup(t)

	librarian := testutil.CreateUser(t, usrRepo, "Lib User", "lib@instadesk.test", user.RoleLibrarian, "Secret123", true)
	token := getToken(t, librarian)
	rahul := testutil.CreateStudent(t, studentRepo, "Rahul Sharma", "ENR-1001", "12th Science")
	physics := testutil.CreateBook(t, libRepo, "Concepts of Physics", "H.C. Verma", "978-8177091878", 2)

	issueBook(t, server, token, map[string]interface{}{"bookId": physics.ID, "studentId": rahul.ID})

	// growing total copies grows available copies by the same amount
	body := marshallObj(t, map[string]interface{}{"totalCopies": 4})
	req, rec := newAuthRequest(http.MethodPut, "/v1/library/books/"+physics.ID, token, body)
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data library.Book `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling update response: %v", err)
	}
	if resp.Data.TotalCopies != 4 || resp.Data.AvailableCopies != 3 {
		t.Errorf("copies = %v/%v; want 3/4", resp.Data.AvailableCopies, resp.Data.TotalCopies)
	}

	// shrinking to the number of outstanding copies leaves none available
	body = marshallObj(t, map[string]interface{}{"totalCopies": 1})
	req, rec = newAuthRequest(http.MethodPut, "/v1/library/books/"+physics.ID, token, body)
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling update response: %v", err)
	}
	if resp.Data.TotalCopies != 1 || resp.Data.AvailableCopies != 0 {
		t.Errorf("copies = %v/%v; want 0/1", resp.Data.AvailableCopies, resp.Data.TotalCopies)
	}

	// shrinking below the number of outstanding copies is a conflict
	priya := testutil.CreateStudent(t, studentRepo, "Priya Patel", "ENR-1002", "12th Commerce")
	body = marshallObj(t, map[string]interface{}{"totalCopies": 3})
	req, rec = newAuthRequest(http.MethodPut, "/v1/library/books/"+physics.ID, token, body)
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	issueBook(t, server, token, map[string]interface{}{"bookId": physics.ID, "studentId": priya.ID})

	body = marshallObj(t, map[string]interface{}{"totalCopies": 1})
	req, rec = newAuthRequest(http.MethodPut, "/v1/library/books/"+physics.ID, token, body)
	server.ServeHTTP(rec, req)
	tt := httpTest{
		wantCode: http.StatusConflict,
		wantData: marshallErr(t, httpErr{Error: "available copies cannot exceed total copies"}),
	}
	checkCodeAndData(t, tt, rec)
}

func TestIssueLifecycle(t *testing.T) {
	frozen := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	core.NowFunc = func() time.Time { return frozen }
	defer func() { core.NowFunc = time.Now }()

	server := setup(t)

	librarian := testutil.CreateUser(t, usrRepo, "Lib User", "lib@instadesk.test", user.RoleLibrarian, "Secret123", true)
	token := getToken(t, librarian)
	rahul := testutil.CreateStudent(t, studentRepo, "Rahul Sharma", "ENR-1001", "12th Science")
	physics := testutil.CreateBook(t, libRepo, "Concepts of Physics", "H.C. Verma", "978-8177091878", 1)

	issue := issueBook(t, server, token, map[string]interface{}{"bookId": physics.ID, "studentId": rahul.ID})

	if issue.IssueDate != "2026-08-30" {
		t.Errorf("issueDate = %v; want today", issue.IssueDate)
	}
	if issue.DueDate != "2026-09-13" {
		t.Errorf("dueDate = %v; want a two-week loan", issue.DueDate)
	}
	if issue.Status != library.StatusIssued {
		t.Errorf("status = %v; want %v", issue.Status, library.StatusIssued)
	}
	if got := getBook(t, server, token, physics.ID); got.AvailableCopies != 0 {
		t.Errorf("availableCopies = %v; want 0 after issuing", got.AvailableCopies)
	}

	// no copies left
	req, rec := newAuthRequest(http.MethodPost, "/v1/library/issues", token,
		marshallObj(t, map[string]interface{}{"bookId": physics.ID, "studentId": rahul.ID}))
	server.ServeHTTP(rec, req)
	tt := httpTest{
		wantCode: http.StatusConflict,
		wantData: marshallErr(t, httpErr{Error: "no copies of this book are available"}),
	}
	checkCodeAndData(t, tt, rec)

	// return it
	req, rec = newAuthRequest(http.MethodPut, "/v1/library/issues/"+issue.ID+"/return", token)
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data library.Issue `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling return response: %v", err)
	}
	if resp.Data.Status != library.StatusReturned || resp.Data.ReturnDate != "2026-08-30" {
		t.Errorf("returned issue = %+v; want status returned today", resp.Data)
	}
	if got := getBook(t, server, token, physics.ID); got.AvailableCopies != 1 {
		t.Errorf("availableCopies = %v; want 1 after returning", got.AvailableCopies)
	}

	// a second return is a conflict
	req, rec = newAuthRequest(http.MethodPut, "/v1/library/issues/"+issue.ID+"/return", token)
	server.ServeHTTP(rec, req)
	tt = httpTest{
		wantCode: http.StatusConflict,
		wantData: marshallErr(t, httpErr{Error: "this issue has already been returned"}),
	}
	checkCodeAndData(t, tt, rec)
}

func TestIssueOverdueStatusAndNotify(t *testing.T) {
	frozen := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	core.NowFunc = func() time.Time { return frozen }
	defer func() { core.NowFunc = time.Now }()

	server := setup(t)
	emailsvc.ClearSentMessages()

	librarian := testutil.CreateUser(t, usrRepo, "Lib User", "lib@instadesk.test", user.RoleLibrarian, "Secret123", true)
	token := getToken(t, librarian)

	rahul := testutil.CreateStudent(t, studentRepo, "Rahul Sharma", "ENR-1001", "12th Science")
	priya := testutil.CreateStudent(t, studentRepo, "Priya Patel", "ENR-1002", "12th Commerce")
	physics := testutil.CreateBook(t, libRepo, "Concepts of Physics", "H.C. Verma", "978-8177091878", 3)

	// overdue: due before the frozen clock
	late := issueBook(t, server, token, map[string]interface{}{
		"bookId": physics.ID, "studentId": rahul.ID, "issueDate": "2026-08-01", "dueDate": "2026-08-15",
	})
	onTime := issueBook(t, server, token, map[string]interface{}{
		"bookId": physics.ID, "studentId": priya.ID,
	})

	if late.Status != library.StatusOverdue {
		t.Errorf("status = %v; want %v", late.Status, library.StatusOverdue)
	}

	// filter by derived status
	req, rec := newAuthRequest(http.MethodGet, "/v1/library/issues?"+url.Values{"status": {library.StatusOverdue}}.Encode(), token)
	server.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusOK, wantData: marshallList(t, late)}
	checkCodeAndData(t, tt, rec)

	req, rec = newAuthRequest(http.MethodGet, "/v1/library/issues?"+url.Values{"status": {library.StatusIssued}}.Encode(), token)
	server.ServeHTTP(rec, req)
	tt = httpTest{wantCode: http.StatusOK, wantData: marshallList(t, onTime)}
	checkCodeAndData(t, tt, rec)

	// only the overdue holder with an email on record gets a notice
	body := marshallObj(t, map[string]string{"email": "rahul@example.com"})
	req, rec = newAuthRequest(http.MethodPut, "/v1/students/"+rahul.ID, getToken(t, testutil.CreateUser(
		t, usrRepo, "Admin User", "admin@instadesk.test", user.RoleAdmin, "Secret123", true)), body)
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("setting student email failed! code = %v; body %v", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/library/issues/notify", token)
	server.ServeHTTP(rec, req)
	tt = httpTest{wantCode: http.StatusOK, wantData: marshallList(t, late)}
	checkCodeAndData(t, tt, rec)

	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("len(SentMessages) = %v; want 1", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if msg.To[0].Address != "rahul@example.com" {
		t.Errorf("recipient = %v; want the overdue holder", msg.To[0].Address)
	}
}
