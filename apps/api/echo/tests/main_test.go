package tests

import (
	"net/http"
	"testing"
)

func TestHome(t *testing.T) {
	server := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
	want := "Welcome to " + conf.AppName + " API!"
	if rec.Body.String() != want {
		t.Errorf("failed! body = %v; want %v", rec.Body.String(), want)
	}
}

func TestUnknownRouteRequiresAuth(t *testing.T) {
	server := setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/students")
	server.ServeHTTP(rec, req)

	tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marshallErr(t, errMissingToken)}
	checkCodeAndData(t, tt, rec)
}
