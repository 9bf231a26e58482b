// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides Echo middleware for authentication and rate limiting.

# Authentication

Auth parses the Bearer token and stores the claims in the request context:

	e.GET("/api/users/profile", handler.GetProfile, middleware.Auth(secret))

A missing token or an expired token yields 401; a malformed or tampered
token yields 403. Handlers read the verified claims back with GetClaims.

RequireAdmin layers the role check on top of Auth:

	e.GET("/api/users", handler.ListUsers, middleware.Auth(secret), middleware.RequireAdmin)

# Rate Limiting

RateLimiter keeps a sliding-window counter per client IP:

	limiter := middleware.NewRateLimiter(100, 15*time.Minute, nil)
	api := e.Group("/api", limiter.Middleware)

Requests beyond the budget receive 429 immediately. The default window
store is in-process; pass a WindowFunc for a shared store in
multi-instance deployments.
*/
package middleware
