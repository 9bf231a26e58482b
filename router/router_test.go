// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/enquete/models"
	"github.com/danielhkuo/enquete/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	e := NewRouter(gdb, testutil.GetTestConfig())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, testutil.MakeRequest("GET", "/health", nil, nil))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp map[string]string
	testutil.AssertJSON(t, rec, &resp)
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp["status"])
	}
}

func TestUnknownRoute(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	e := NewRouter(gdb, testutil.GetTestConfig())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, testutil.MakeRequest("GET", "/api/nope", nil, nil))
	testutil.AssertStatus(t, rec, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, rec, &resp)
	if resp.Message == "" {
		t.Error("404 should still carry the JSON error body")
	}
}

func TestValidationErrorBody(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	e := NewRouter(gdb, testutil.GetTestConfig())

	// Registration with every field missing trips several rules at once.
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, testutil.MakeRequest("POST", "/api/users/register", map[string]string{}, nil))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, rec, &resp)
	if resp.Message == "" {
		t.Error("expected a message")
	}
	if len(resp.Errors) == 0 {
		t.Error("expected field-level errors")
	}
}

func TestCORSHeaders(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.CORSOrigin = "https://app.example.com"
	e := NewRouter(gdb, cfg)

	req := testutil.MakeRequest("OPTIONS", "/api/enquetes/public", nil, map[string]string{
		"Origin":                        "https://app.example.com",
		"Access-Control-Request-Method": "GET",
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("expected CORS origin echoed, got %q", got)
	}
}

func TestRateLimitExhaustion(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.RateLimit = 2
	e := NewRouter(gdb, cfg)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req := testutil.MakeRequest("GET", "/api/enquetes/public", nil, nil)
		req.RemoteAddr = "10.1.1.1:5000"
		e.ServeHTTP(last, req)
	}
	testutil.AssertStatus(t, last, http.StatusTooManyRequests)

	// Health stays outside the limited group.
	rec := httptest.NewRecorder()
	req := testutil.MakeRequest("GET", "/health", nil, nil)
	req.RemoteAddr = "10.1.1.1:5000"
	e.ServeHTTP(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)
}
