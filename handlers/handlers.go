// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/danielhkuo/enquete/apperr"
)

// parseID reads a numeric path parameter. Non-numeric IDs are a client
// error, not a lookup miss.
func parseID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.InvalidArgument("Invalid ID.")
	}
	return uint(id), nil
}

// bindAndValidate decodes the JSON body and runs struct validation.
func bindAndValidate(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return apperr.InvalidArgument("Invalid request body.")
	}
	return c.Validate(v)
}

// pagination reads ?page= and ?limit= with the usual defaults.
func pagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
