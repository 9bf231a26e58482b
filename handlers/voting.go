// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/danielhkuo/enquete/apperr"
	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/middleware"
	"github.com/danielhkuo/enquete/models"
)

type VotingHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *gorm.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// Vote handles POST /api/enquetes/opcoes/:id/votar
func (h *VotingHandler) Vote(c echo.Context) error {
	claims := middleware.GetClaims(c)

	opcaoID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	resp, err := CastVote(h.db, claims.ID, opcaoID)
	if err != nil {
		return err
	}

	slog.Info("vote cast", "user_id", claims.ID, "opcao_id", opcaoID, "action", resp.Action)

	return c.JSON(http.StatusOK, resp)
}

// MyVote handles GET /api/enquetes/:id/meu-voto
// Returns the caller's live vote on the poll, or null.
func (h *VotingHandler) MyVote(c echo.Context) error {
	claims := middleware.GetClaims(c)

	pollID, err := parseID(c, "id")
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

	var vote models.Vote
	err = h.db.Preload("Opcao").
		Joins("JOIN opcoes ON opcoes.id = votos.opcao_id").
		Where("votos.user_id = ? AND opcoes.enquete_id = ?", claims.ID, pollID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, map[string]interface{}{"voto": nil})
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"voto": vote})
}
