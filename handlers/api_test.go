// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// End-to-end handler tests. These go through the real router so route
// wiring, validation, auth middleware, and error mapping are all exercised
// along with the handlers.
package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/router"
	"github.com/danielhkuo/enquete/testutil"
)

func newTestServer(t *testing.T) (*gorm.DB, cliparse.Config, *echo.Echo) {
	t.Helper()
	gdb := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	return gdb, cfg, router.NewRouter(gdb, cfg)
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
