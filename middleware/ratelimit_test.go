// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/danielhkuo/enquete/apperr"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute, nil)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("4th request should be blocked")
	}

	// A different client has its own budget.
	if !rl.Allow("10.0.0.2") {
		t.Error("other clients must not share the window")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, nil)
	e := echo.New()

	call := func() error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		c := e.NewContext(req, httptest.NewRecorder())
		return rl.Middleware(func(c echo.Context) error { return nil })(c)
	}

	if err := call(); err != nil {
		t.Fatalf("first request should pass, got %v", err)
	}

	err := call()
	ae := apperr.As(err)
	if ae == nil || ae.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %v", err)
	}
}
