// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Enquete API.

# Route Registration

NewRouter creates a configured Echo instance with all endpoints:

	e := router.NewRouter(db, cfg)

It installs recovery, CORS, request logging, per-IP rate limiting on the
/api group, a go-playground/validator adapter, and a central error handler
that maps apperr values to the JSON error body.

# Endpoints

Health:

	GET /health

Users:

	POST   /api/users/register  - Create account
	POST   /api/users/login     - Issue JWT
	GET    /api/users/profile   - Own profile (auth)
	PUT    /api/users/profile   - Update own profile (auth)
	GET    /api/users           - List users (admin)
	PUT    /api/users/{id}/role - Change role (admin)
	DELETE /api/users/{id}      - Deactivate account (admin)

Polls:

	GET    /api/enquetes/public           - Active polls, no auth
	GET    /api/enquetes                  - Own polls (auth)
	POST   /api/enquetes                  - Create poll (auth)
	GET    /api/enquetes/{id}             - Poll with results
	DELETE /api/enquetes/{id}             - Delete poll (owner/admin)
	POST   /api/enquetes/opcoes/{id}/votar - Cast/toggle/switch vote (auth)
	GET    /api/enquetes/{id}/meu-voto    - Own vote on a poll (auth)

Comments:

	POST   /api/comentarios                       - Comment on active poll (auth)
	GET    /api/comentarios/enquete/{enqueteId}   - Paginated list
	PUT    /api/comentarios/{id}                  - Edit own comment (auth)
	DELETE /api/comentarios/{id}                  - Soft delete (author/poll owner/admin)

Reports (moderation endpoints are admin-only):

	POST /api/denuncias                  - Report a poll (auth)
	GET  /api/denuncias                  - List, filterable by status
	GET  /api/denuncias/{id}             - Single report
	PUT  /api/denuncias/{id}/status      - Move status, optionally deactivate poll
	GET  /api/denuncias/dashboard/stats  - Counts and most-reported polls
*/
package router
