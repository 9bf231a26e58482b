// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the GORM entities and request/response types for the API.

# Entities

Persisted types, with table names matching the API vocabulary:

  - UserType: Role rows (CLIENT, ADMIN)
  - User: Account with bcrypt password hash and soft-delete ativo flag
  - Poll (enquetes): Poll with dataFim expiration and stored ativa flag
  - Option (opcoes): Voting option belonging to a poll
  - Vote (votos): One row per (user, option), unique-indexed
  - Comment (comentarios): Soft-deleted via ativo
  - Report (denuncias): One per (user, poll), with moderation status

# Request Types

Incoming JSON bodies carry go-playground/validator tags and Portuguese
field names mirroring the wire format:

  - RegisterRequest, LoginRequest, UpdateProfileRequest, UpdateRoleRequest
  - CreatePollRequest (opcoes accepts an array or a newline-delimited string)
  - CreateCommentRequest, UpdateCommentRequest
  - CreateReportRequest, UpdateReportStatusRequest

# Response Types

  - RegisterResponse, LoginResponse, UserSummary
  - PollResult / OptionResult: poll with derived per-option vote counts
  - VoteResponse: action ("created" or "removed") plus fresh tallies
  - CommentListResponse, ReportListResponse with Pagination
  - ReportDashboardResponse: per-status counts and most-reported polls
  - ErrorResponse: message plus optional field-level errors

# Constants

Report statuses (PENDING, ANALYZED, ACCEPTED, REJECTED), roles (CLIENT,
ADMIN), vote actions and input length limits.
*/
package models
