// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type (postgres or sqlite)
	-jwt-secret  JWT signing secret
	-jwt-expires Token lifetime (Go duration)
	-cors        Allowed CORS origin
	-rate-limit  Requests per window per IP
	-rate-window Window length in minutes

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p (default: 3000)
	DATABASE_URL        → -d (required)
	DATABASE_TYPE       → -t (default: postgres)
	JWT_SECRET          → -jwt-secret (required)
	JWT_EXPIRES_IN      → -jwt-expires (default: 24h)
	CORS_ORIGIN         → -cors (default: *)
	RATE_LIMIT          → -rate-limit (default: 100)
	RATE_WINDOW_MINUTES → -rate-window (default: 15)
	ENV                 → "development" enables verbose error bodies

CLI flags take precedence over environment variables.
*/
package cliparse
