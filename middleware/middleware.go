// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/danielhkuo/enquete/apperr"
	"github.com/danielhkuo/enquete/auth"
)

// claimsKey is the echo context key holding the verified *auth.Claims.
const claimsKey = "user"

// Auth verifies the Authorization bearer token and attaches the claims to
// the request context. Expired tokens get 401 so clients re-login; malformed
// or tampered tokens get 403.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperr.Unauthorized("Token not provided. Access denied.")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return apperr.Unauthorized("Malformed Authorization header.")
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					return apperr.Unauthorized("Token expired. Please log in again.")
				}
				return apperr.Forbidden("Invalid token. Access denied.")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireAdmin rejects requests whose verified identity is not an admin.
// Must run after Auth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil || !claims.IsAdmin() {
			return apperr.Forbidden("Access denied. Admin permission required.")
		}
		return next(c)
	}
}

// GetClaims returns the verified identity for the request, or nil on
// unauthenticated routes.
func GetClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}
