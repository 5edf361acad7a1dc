package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	. "github.com/Mukesh1q2/LIMS-sub001/apps/api/echo"
	"github.com/Mukesh1q2/LIMS-sub001/core/seat"
	"github.com/Mukesh1q2/LIMS-sub001/core/student"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
	testutil "github.com/Mukesh1q2/LIMS-sub001/tests"
)

func createSeat(t *testing.T, server Server, token string, body map[string]interface{}) seat.Seat {
	t.Helper()

	req, rec := newAuthRequest(http.MethodPost, "/v1/seats", token, marshallObj(t, body))
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("createSeat() failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data seat.Seat `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("createSeat() failed: %v", err)
	}
	return resp.Data
}

func TestSeatAPI(t *testing.T) {
	server := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Admin User", "admin@instadesk.test", user.RoleAdmin, "Secret123", true)
	token := getToken(t, admin)

	s1 := createSeat(t, server, token, map[string]interface{}{"room": "R1", "section": "A", "seatNumber": "1"})
	s2 := createSeat(t, server, token, map[string]interface{}{"room": "R1", "section": "A", "seatNumber": "2", "hasLocker": true})
	s3 := createSeat(t, server, token, map[string]interface{}{"room": "R2", "seatNumber": "1", "status": seat.StatusDisabled})

	if s1.Status != seat.StatusAvailable {
		t.Errorf("status = %v; want %v (default)", s1.Status, seat.StatusAvailable)
	}

	tests := []httpTest{
		{
			name:     "list all",
			method:   http.MethodGet,
			path:     "/v1/seats",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, s1, s2, s3),
		},
		{
			name:     "filter by room",
			method:   http.MethodGet,
			path:     "/v1/seats?" + url.Values{"room": {"R1"}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, s1, s2),
		},
		{
			name:     "filter by status",
			method:   http.MethodGet,
			path:     "/v1/seats?" + url.Values{"status": {seat.StatusDisabled}}.Encode(),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallList(t, s3),
		},
		{
			name:     "duplicate (room, section, number) composite",
			method:   http.MethodPost,
			path:     "/v1/seats",
			token:    token,
			body:     marshallObj(t, map[string]interface{}{"room": "R1", "section": "A", "seatNumber": "1"}),
			wantCode: http.StatusConflict,
			wantData: marshallErr(t, httpErr{Error: "a seat with this room, section and number already exists"}),
		},
		{
			name:     "same number in another section is fine",
			method:   http.MethodPost,
			path:     "/v1/seats",
			token:    token,
			body:     marshallObj(t, map[string]interface{}{"room": "R1", "section": "B", "seatNumber": "1"}),
			wantCode: http.StatusCreated,
		},
		{
			name:     "retrieve one",
			method:   http.MethodGet,
			path:     "/v1/seats/" + s2.ID,
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallOK(t, s2),
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     "/v1/seats/" + s3.ID,
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshallOK(t, s3),
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

func TestSeatAssignRelease(t *testing.T) {
	server := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Admin User", "admin@instadesk.test", user.RoleAdmin, "Secret123", true)
	token := getToken(t, admin)

	rahul := testutil.CreateStudent(t, studentRepo, "Rahul Sharma", "ENR-1001", "12th Science")
	priya := testutil.CreateStudent(t, studentRepo, "Priya Patel", "ENR-1002", "12th Commerce")
	s := createSeat(t, server, token, map[string]interface{}{"room": "R1", "section": "A", "seatNumber": "12"})

	assign := func(studentID string) (*json.Decoder, int, string) {
		body := marshallObj(t, map[string]string{"studentId": studentID})
		req, rec := newAuthRequest(http.MethodPut, "/v1/seats/"+s.ID+"/assign", token, body)
		server.ServeHTTP(rec, req)
		return json.NewDecoder(rec.Body), rec.Code, rec.Body.String()
	}

	dec, code, raw := assign(rahul.ID)
	if code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", code, raw)
	}
	var resp struct {
		Data seat.Seat `json:"data"`
	}
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("unmarshalling assign response: %v", err)
	}
	if resp.Data.Status != seat.StatusOccupied || resp.Data.StudentID != rahul.ID {
		t.Errorf("seat = %+v; want occupied by %v", resp.Data, rahul.ID)
	}

	// the label is denormalized onto the student record
	stu, err := studentSvc.GetByID(rahul.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if stu.SeatNumber != "R1/A-12" {
		t.Errorf("seatNumber = %v; want R1/A-12", stu.SeatNumber)
	}

	// an occupied seat cannot be assigned again
	_, code, _ = assign(priya.ID)
	if code != http.StatusConflict {
		t.Errorf("code = %v; wantCode %v", code, http.StatusConflict)
	}

	// release clears the seat and the student
	req, rec := newAuthRequest(http.MethodPut, "/v1/seats/"+s.ID+"/release", token)
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	resp.Data = seat.Seat{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling release response: %v", err)
	}
	if resp.Data.Status != seat.StatusAvailable || resp.Data.StudentID != "" {
		t.Errorf("seat = %+v; want available and empty", resp.Data)
	}
	if stu, _ = studentSvc.GetByID(rahul.ID); stu.SeatNumber != "" {
		t.Errorf("seatNumber = %v; want cleared", stu.SeatNumber)
	}

	// releasing an available seat is a conflict
	req, rec = newAuthRequest(http.MethodPut, "/v1/seats/"+s.ID+"/release", token)
	server.ServeHTTP(rec, req)
	tt := httpTest{
		wantCode: http.StatusConflict,
		wantData: marshallErr(t, httpErr{Error: "seat is not occupied"}),
	}
	checkCodeAndData(t, tt, rec)
}

func TestSeatAssignGuards(t *testing.T) {
	server := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Admin User", "admin@instadesk.test", user.RoleAdmin, "Secret123", true)
	token := getToken(t, admin)

	rahul := testutil.CreateStudent(t, studentRepo, "Rahul Sharma", "ENR-1001", "12th Science")
	priya := testutil.CreateStudent(t, studentRepo, "Priya Patel", "ENR-1002", "12th Commerce")
	s := createSeat(t, server, token, map[string]interface{}{"room": "R1", "seatNumber": "1"})
	disabled := createSeat(t, server, token, map[string]interface{}{"room": "R1", "seatNumber": "2", "status": seat.StatusDisabled})

	// deactivate the student, then try to seat them
	body := marshallObj(t, map[string]string{"status": student.StatusInactive})
	req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+rahul.ID, token, body)
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivating student failed! code = %v; body %v", rec.Code, rec.Body.String())
	}

	tests := []httpTest{
		{
			name:     "inactive student cannot be seated",
			method:   http.MethodPut,
			path:     "/v1/seats/" + s.ID + "/assign",
			token:    token,
			body:     marshallObj(t, map[string]string{"studentId": rahul.ID}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]interface{}{
				"success": false,
				"error":   map[string]string{"studentId": "student is not active"},
			}),
		},
		{
			name:     "unknown student",
			method:   http.MethodPut,
			path:     "/v1/seats/" + s.ID + "/assign",
			token:    token,
			body:     marshallObj(t, map[string]string{"studentId": "STU9999"}),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "disabled seat is not available",
			method:   http.MethodPut,
			path:     "/v1/seats/" + disabled.ID + "/assign",
			token:    token,
			body:     marshallObj(t, map[string]string{"studentId": priya.ID}),
			wantCode: http.StatusConflict,
			wantData: marshallErr(t, httpErr{Error: "seat is not available"}),
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
