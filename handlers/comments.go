// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/danielhkuo/enquete/apperr"
	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/middleware"
	"github.com/danielhkuo/enquete/models"
)

type CommentHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewCommentHandler(db *gorm.DB, cfg cliparse.Config) *CommentHandler {
	return &CommentHandler{db: db, cfg: cfg}
}

// CreateComment handles POST /api/comentarios
func (h *CommentHandler) CreateComment(c echo.Context) error {
	claims := middleware.GetClaims(c)

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	texto := strings.TrimSpace(req.Texto)
	if texto == "" {
		return apperr.Validation("Comment text is required.")
	}
	if utf8.RuneCountInString(texto) > models.MaxCommentLength {
		return apperr.Validation("Comments are limited to 1000 characters.")
	}

	var poll models.Poll
	if err := h.db.First(&poll, req.EnqueteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Poll not found.")
		}
		return err
	}

	now := time.Now()
	if err := EnsureFresh(h.db, &poll, now); err != nil {
		return err
	}
	if !EffectiveActive(&poll, now) {
		return apperr.InvalidState("This poll is no longer active.")
	}

	comment := models.Comment{
		Texto:     texto,
		UserID:    claims.ID,
		EnqueteID: poll.ID,
		Ativo:     true,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		return err
	}

	slog.Info("comment created", "comment_id", comment.ID, "poll_id", poll.ID, "user_id", claims.ID)

	return c.JSON(http.StatusCreated, comment)
}

// ListByPoll handles GET /api/comentarios/enquete/:enqueteId
func (h *CommentHandler) ListByPoll(c echo.Context) error {
	pollID, err := parseID(c, "enqueteId")
	if err != nil {
		return err
	}

	var poll models.Poll
	if err := h.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Poll not found.")
		}
		return err
	}

	page, limit := pagination(c)

	var total int64
	err = h.db.Model(&models.Comment{}).
		Where("enquete_id = ? AND ativo = ?", pollID, true).
		Count(&total).Error
	if err != nil {
		return err
	}

	var comments []models.Comment
	err = h.db.Preload("User").
		Where("enquete_id = ? AND ativo = ?", pollID, true).
		Order("criado_em DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.CommentListResponse{
		Comentarios: comments,
		Pagination: models.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages(total, limit),
		},
	})
}

// UpdateComment handles PUT /api/comentarios/:id
// Editing is narrower than deletion: only the author may edit.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	claims := middleware.GetClaims(c)

	commentID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	texto := strings.TrimSpace(req.Texto)
	if texto == "" {
		return apperr.Validation("Comment text is required.")
	}
	if utf8.RuneCountInString(texto) > models.MaxCommentLength {
		return apperr.Validation("Comments are limited to 1000 characters.")
	}

	var comment models.Comment
	if err := h.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Comment not found.")
		}
		return err
	}
	if !comment.Ativo {
		return apperr.NotFound("Comment not found.")
	}

	if comment.UserID != claims.ID {
		return apperr.Forbidden("You do not have permission to edit this comment.")
	}

	now := time.Now()
	err = h.db.Model(&comment).Updates(map[string]interface{}{
		"texto":      texto,
		"editado_em": now,
	}).Error
	if err != nil {
		return err
	}

	comment.Texto = texto
	comment.EditadoEm = &now

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment handles DELETE /api/comentarios/:id
// Author, poll creator, or admin may delete. Always a soft delete.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	claims := middleware.GetClaims(c)

	commentID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var comment models.Comment
	if err := h.db.Preload("Enquete").First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Comment not found.")
		}
		return err
	}
	if !comment.Ativo {
		return apperr.NotFound("Comment not found.")
	}

	var pollOwner uint
	if comment.Enquete != nil {
		pollOwner = comment.Enquete.AutorID
	}
	if !CanMutate(claims.ID, claims.Role, comment.UserID, pollOwner) {
		return apperr.Forbidden("You do not have permission to delete this comment.")
	}

	if err := h.db.Model(&comment).Update("ativo", false).Error; err != nil {
		return err
	}

	slog.Info("comment deleted", "comment_id", comment.ID, "actor_id", claims.ID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Comment deleted successfully.",
	})
}
