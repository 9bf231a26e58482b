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
	"github.com/danielhkuo/enquete/auth"
)

var testSecret = []byte("test-secret")

func invoke(t *testing.T, mw echo.MiddlewareFunc, header string) (*auth.Claims, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var got *auth.Claims
	err := mw(func(c echo.Context) error {
		got = GetClaims(c)
		return nil
	})(c)
	return got, err
}

func TestAuth(t *testing.T) {
	valid, err := auth.CreateToken(testSecret, 7, "alice", "CLIENT", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := auth.CreateToken(testSecret, 7, "alice", "CLIENT", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name         string
		header       string
		expectedCode int // 0 means the request should pass through
	}{
		{"valid token", "Bearer " + valid, 0},
		{"missing header", "", http.StatusUnauthorized},
		{"no bearer prefix", valid, http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusForbidden},
	}

	mw := Auth(testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := invoke(t, mw, tt.header)

			if tt.expectedCode == 0 {
				if err != nil {
					t.Fatalf("expected pass-through, got %v", err)
				}
				if claims == nil || claims.ID != 7 || claims.Username != "alice" {
					t.Errorf("unexpected claims: %+v", claims)
				}
				return
			}

			ae := apperr.As(err)
			if ae == nil {
				t.Fatalf("expected apperr, got %v", err)
			}
			if ae.Code != tt.expectedCode {
				t.Errorf("expected %d, got %d", tt.expectedCode, ae.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()

	run := func(claims *auth.Claims) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		if claims != nil {
			c.Set(claimsKey, claims)
		}
		return RequireAdmin(func(c echo.Context) error { return nil })(c)
	}

	if err := run(&auth.Claims{ID: 1, Role: "ADMIN"}); err != nil {
		t.Errorf("admin should pass, got %v", err)
	}

	err := run(&auth.Claims{ID: 2, Role: "CLIENT"})
	if ae := apperr.As(err); ae == nil || ae.Code != http.StatusForbidden {
		t.Errorf("client should get 403, got %v", err)
	}

	err = run(nil)
	if ae := apperr.As(err); ae == nil || ae.Code != http.StatusForbidden {
		t.Errorf("missing claims should get 403, got %v", err)
	}
}
