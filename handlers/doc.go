// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Enquete API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: Registration, login, profile, admin user management
  - PollHandler: Poll CRUD and public/own listings
  - VotingHandler: Vote casting and per-user vote lookup
  - CommentHandler: Comments on polls
  - ReportHandler: Abuse reports and the moderation dashboard

Handlers are created via constructor functions that accept *gorm.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Poll Lifecycle

A poll is effectively active only while its stored ativa flag is true AND
its dataFim lies in the future. Two mechanisms converge the stored flag:

  - EnsureFresh: lazy correction on read, persisting ativa=false the first
    time an expired poll is observed
  - SweepExpired: bulk correction run hourly by the jobs package

Vote counts are never stored; OptionTallies derives them by counting vote
rows per option.

# Voting Flow

CastVote enforces at most one vote per user per poll:

  - No prior vote on the poll     → vote created ("created")
  - Prior vote on the same option → vote removed ("removed")
  - Prior vote on another option  → old removed, new created ("created")

The scan-and-write runs inside one transaction; a composite unique index on
(user_id, opcao_id) backstops duplicate submissions of the same option.

# Authorization

CanMutate centralizes the ownership rule: admins may mutate anything,
other users only resources they own (a poll's author also counts as an
owner of its comments for deletion).
*/
package handlers
