// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Enquete API server.

Enquete is a polling service: registered users create polls with options
and an expiration date, vote (at most once per poll, with toggle and
switch), comment, and report abusive polls for admin moderation.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3000 -d "postgres://..." -jwt-secret "..."

A .env file in the working directory is loaded if present; real
environment variables take precedence.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - JWT_SECRET (-jwt-secret): token signing secret

Optional settings:

  - PORT (-p): server port (default: 3000)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - JWT_EXPIRES_IN (-jwt-expires): token lifetime (default: 24h)
  - CORS_ORIGIN (-cors): allowed origin (default: *)
  - RATE_LIMIT / RATE_WINDOW_MINUTES: per-IP request budget

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, polls, voting, comments, reports)
  - router: Echo route definitions, validation, error mapping
  - middleware: JWT auth, admin guard, rate limiting
  - models: GORM entities and request/response types
  - auth: JWT issuing/parsing and password hashing
  - db: Connection, migration, seed data
  - jobs: Background expiration sweep
  - cliparse: Configuration parsing
  - apperr: HTTP-status-carrying error type

See package documentation for each component.
*/
package main
