// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection, migration, and seed data.

# Connection

Open selects the GORM dialector from the configured type:

	gdb, err := db.Open("postgres", cfg.DatabaseURL)

Supported types are "postgres" and "sqlite" (SQLite serves tests and
local development).

# Migration

Migrate auto-migrates all entities and seeds the role rows:

	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times. SeedUserTypes uses FirstOrCreate, so the
CLIENT and ADMIN rows are created exactly once.

# Relationships

	user_types 1──* users
	users      1──* enquetes
	enquetes   1──* opcoes
	opcoes     1──* votos
	enquetes   1──* comentarios
	enquetes   1──* denuncias

Deleting a poll cascades to its options, votes, comments, and reports.
Unique indexes hold one vote per (user, option) and one report per
(user, poll).
*/
package db
