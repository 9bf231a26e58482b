// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"sync"
	"time"

	"github.com/RussellLuo/slidingwindow"
	"github.com/labstack/echo/v4"

	"github.com/danielhkuo/enquete/apperr"
)

// WindowFunc constructs the backing store for one client's window. The
// default is an in-process window; a synced implementation can be injected
// for multi-instance deployments.
type WindowFunc func() (slidingwindow.Window, slidingwindow.StopFunc)

// LocalWindow is the single-process default.
func LocalWindow() (slidingwindow.Window, slidingwindow.StopFunc) {
	return slidingwindow.NewLocalWindow()
}

// RateLimiter tracks a sliding-window request counter per client IP.
// Counters are approximate under multi-process deployment unless a shared
// WindowFunc is supplied.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*slidingwindow.Limiter

	size      time.Duration
	limit     int64
	newWindow WindowFunc
}

func NewRateLimiter(limit int, window time.Duration, newWindow WindowFunc) *RateLimiter {
	if newWindow == nil {
		newWindow = LocalWindow
	}
	return &RateLimiter{
		limiters:  make(map[string]*slidingwindow.Limiter),
		size:      window,
		limit:     int64(limit),
		newWindow: newWindow,
	}
}

// Allow reports whether the client may make another request in the current
// window.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	lim, ok := rl.limiters[clientIP]
	if !ok {
		lim, _ = slidingwindow.NewLimiter(rl.size, rl.limit, func() (slidingwindow.Window, slidingwindow.StopFunc) {
			return rl.newWindow()
		})
		rl.limiters[clientIP] = lim
	}
	rl.mu.Unlock()

	return lim.Allow()
}

// Middleware answers 429 once a client exhausts its window instead of
// blocking the request.
func (rl *RateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !rl.Allow(c.RealIP()) {
			return apperr.TooManyRequests("Too many requests. Try again later.")
		}
		return next(c)
	}
}
