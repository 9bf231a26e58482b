// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/enquete/models"
	"github.com/danielhkuo/enquete/testutil"
)

func TestCreateComment(t *testing.T) {
	gdb, cfg, e := newTestServer(t)
	owner := testutil.CreateTestUser(t, gdb, "owner", models.RoleClient)
	user := testutil.CreateTestUser(t, gdb, "alice", models.RoleClient)
	token := testutil.TokenFor(t, cfg, user)

	active := testutil.CreateTestPoll(t, gdb, owner.ID, true, time.Now().Add(time.Hour), "A", "B")
	expired := testutil.CreateTestPoll(t, gdb, owner.ID, true, time.Now().Add(-time.Hour), "A", "B")

	tests := []struct {
		name           string
		body           models.CreateCommentRequest
		expectedStatus int
	}{
		{
			name:           "valid comment",
			body:           models.CreateCommentRequest{EnqueteID: active.ID, Texto: "Great poll!"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "whitespace only",
			body:           models.CreateCommentRequest{EnqueteID: active.ID, Texto: "   "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "too long",
			body:           models.CreateCommentRequest{EnqueteID: active.ID, Texto: strings.Repeat("x", 1001)},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "exactly at the limit",
			body:           models.CreateCommentRequest{EnqueteID: active.ID, Texto: strings.Repeat("x", 1000)},
			expectedStatus: http.StatusCreated,
		},
		{
			// 600 two-byte runes; the limit counts characters, not bytes.
			name:           "multibyte text under the limit",
			body:           models.CreateCommentRequest{EnqueteID: active.ID, Texto: strings.Repeat("ã", 600)},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "multibyte text over the limit",
			body:           models.CreateCommentRequest{EnqueteID: active.ID, Texto: strings.Repeat("ã", 1001)},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "expired poll",
			body:           models.CreateCommentRequest{EnqueteID: expired.ID, Texto: "Too late"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown poll",
			body:           models.CreateCommentRequest{EnqueteID: 99999, Texto: "Hello"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, testutil.MakeRequest("POST", "/api/comentarios", tt.body, testutil.AuthHeader(token)))
			testutil.AssertStatus(t, rec, tt.expectedStatus)
		})
	}
}

func TestListComments(t *testing.T) {
	gdb, _, e := newTestServer(t)
	owner := testutil.CreateTestUser(t, gdb, "owner", models.RoleClient)
	poll := testutil.CreateTestPoll(t, gdb, owner.ID, true, time.Now().Add(time.Hour), "A", "B")

	for i := 0; i < 25; i++ {
		testutil.CreateTestComment(t, gdb, owner.ID, poll.ID, "comment")
	}
	deleted := testutil.CreateTestComment(t, gdb, owner.ID, poll.ID, "gone")
	if err := gdb.Model(deleted).Update("ativo", false).Error; err != nil {
		t.Fatal(err)
	}

	t.Run("default page", func(t *testing.T) {
		rec := do(e, testutil.MakeRequest("GET", "/api/comentarios/enquete/"+itoa(poll.ID), nil, nil))
		testutil.AssertStatus(t, rec, http.StatusOK)

		var resp models.CommentListResponse
		testutil.AssertJSON(t, rec, &resp)
		if len(resp.Comentarios) != 20 {
			t.Errorf("expected default page of 20, got %d", len(resp.Comentarios))
		}
		if resp.Pagination.Total != 25 {
			t.Errorf("soft-deleted comments must not count: expected 25, got %d", resp.Pagination.Total)
		}
		if resp.Pagination.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", resp.Pagination.TotalPages)
		}
	})

	t.Run("second page", func(t *testing.T) {
		rec := do(e, testutil.MakeRequest("GET", "/api/comentarios/enquete/"+itoa(poll.ID)+"?page=2", nil, nil))
		testutil.AssertStatus(t, rec, http.StatusOK)

		var resp models.CommentListResponse
		testutil.AssertJSON(t, rec, &resp)
		if len(resp.Comentarios) != 5 {
			t.Errorf("expected 5 comments on page 2, got %d", len(resp.Comentarios))
		}
	})

	t.Run("unknown poll", func(t *testing.T) {
		rec := do(e, testutil.MakeRequest("GET", "/api/comentarios/enquete/99999", nil, nil))
		testutil.AssertStatus(t, rec, http.StatusNotFound)
	})
}

func TestUpdateComment(t *testing.T) {
	gdb, cfg, e := newTestServer(t)
	author := testutil.CreateTestUser(t, gdb, "author", models.RoleClient)
	other := testutil.CreateTestUser(t, gdb, "other", models.RoleClient)
	admin := testutil.CreateTestUser(t, gdb, "root", models.RoleAdmin)

	poll := testutil.CreateTestPoll(t, gdb, author.ID, true, time.Now().Add(time.Hour), "A", "B")
	comment := testutil.CreateTestComment(t, gdb, author.ID, poll.ID, "original")

	body := models.UpdateCommentRequest{Texto: "edited"}

	t.Run("non-author forbidden", func(t *testing.T) {
		rec := do(e, testutil.MakeRequest("PUT", "/api/comentarios/"+itoa(comment.ID), body,
			testutil.AuthHeader(testutil.TokenFor(t, cfg, other))))
		testutil.AssertStatus(t, rec, http.StatusForbidden)
	})

	t.Run("even admin cannot edit", func(t *testing.T) {
		rec := do(e, testutil.MakeRequest("PUT", "/api/comentarios/"+itoa(comment.ID), body,
			testutil.AuthHeader(testutil.TokenFor(t, cfg, admin))))
		testutil.AssertStatus(t, rec, http.StatusForbidden)
	})

	t.Run("author edits and editadoEm is set", func(t *testing.T) {
		rec := do(e, testutil.MakeRequest("PUT", "/api/comentarios/"+itoa(comment.ID), body,
			testutil.AuthHeader(testutil.TokenFor(t, cfg, author))))
		testutil.AssertStatus(t, rec, http.StatusOK)

		var stored models.Comment
		if err := gdb.First(&stored, comment.ID).Error; err != nil {
			t.Fatal(err)
		}
		if stored.Texto != "edited" {
			t.Errorf("expected edited text, got %q", stored.Texto)
		}
		if stored.EditadoEm == nil {
			t.Error("expected editadoEm to be set")
		}
	})
}

func TestDeleteComment(t *testing.T) {
	gdb, cfg, e := newTestServer(t)
	pollOwner := testutil.CreateTestUser(t, gdb, "owner", models.RoleClient)
	author := testutil.CreateTestUser(t, gdb, "author", models.RoleClient)
	stranger := testutil.CreateTestUser(t, gdb, "stranger", models.RoleClient)

	poll := testutil.CreateTestPoll(t, gdb, pollOwner.ID, true, time.Now().Add(time.Hour), "A", "B")

	t.Run("stranger forbidden", func(t *testing.T) {
		comment := testutil.CreateTestComment(t, gdb, author.ID, poll.ID, "hello")
		rec := do(e, testutil.MakeRequest("DELETE", "/api/comentarios/"+itoa(comment.ID), nil,
			testutil.AuthHeader(testutil.TokenFor(t, cfg, stranger))))
		testutil.AssertStatus(t, rec, http.StatusForbidden)
	})

	t.Run("author soft-deletes", func(t *testing.T) {
		comment := testutil.CreateTestComment(t, gdb, author.ID, poll.ID, "hello")
		rec := do(e, testutil.MakeRequest("DELETE", "/api/comentarios/"+itoa(comment.ID), nil,
			testutil.AuthHeader(testutil.TokenFor(t, cfg, author))))
		testutil.AssertStatus(t, rec, http.StatusOK)

		var stored models.Comment
		if err := gdb.First(&stored, comment.ID).Error; err != nil {
			t.Fatal(err)
		}
		if stored.Ativo {
			t.Error("comment should be soft-deleted")
		}
	})

	t.Run("poll owner may delete others' comments", func(t *testing.T) {
		comment := testutil.CreateTestComment(t, gdb, author.ID, poll.ID, "hello")
		rec := do(e, testutil.MakeRequest("DELETE", "/api/comentarios/"+itoa(comment.ID), nil,
			testutil.AuthHeader(testutil.TokenFor(t, cfg, pollOwner))))
		testutil.AssertStatus(t, rec, http.StatusOK)
	})

	t.Run("already-deleted comment is gone", func(t *testing.T) {
		comment := testutil.CreateTestComment(t, gdb, author.ID, poll.ID, "hello")
		if err := gdb.Model(comment).Update("ativo", false).Error; err != nil {
			t.Fatal(err)
		}
		rec := do(e, testutil.MakeRequest("DELETE", "/api/comentarios/"+itoa(comment.ID), nil,
			testutil.AuthHeader(testutil.TokenFor(t, cfg, author))))
		testutil.AssertStatus(t, rec, http.StatusNotFound)
	})
}
