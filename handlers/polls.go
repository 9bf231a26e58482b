// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/danielhkuo/enquete/apperr"
	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/middleware"
	"github.com/danielhkuo/enquete/models"
)

type PollHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewPollHandler(db *gorm.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// CreatePoll handles POST /api/enquetes
func (h *PollHandler) CreatePoll(c echo.Context) error {
	claims := middleware.GetClaims(c)

	var req models.CreatePollRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	opcoes := req.Opcoes.Values()
	if len(opcoes) < 2 {
		return apperr.Validation("The poll needs at least two valid options.")
	}
	if req.Opcoes.HasDuplicates() {
		return apperr.Validation("Poll options must be distinct.")
	}
	if !req.DataFim.After(time.Now()) {
		return apperr.Validation("The end date must be in the future.")
	}

	poll := models.Poll{
		Titulo:    req.Titulo,
		Descricao: req.Descricao,
		DataFim:   req.DataFim,
		Ativa:     true,
		AutorID:   claims.ID,
	}
	for _, texto := range opcoes {
		poll.Opcoes = append(poll.Opcoes, models.Option{Texto: texto})
	}

	// Poll and options commit together or not at all.
	if err := h.db.Create(&poll).Error; err != nil {
		return err
	}

	slog.Info("poll created", "poll_id", poll.ID, "autor_id", claims.ID, "options", len(opcoes))

	return c.JSON(http.StatusCreated, poll)
}

// ListPublic handles GET /api/enquetes/public?limit=
// Active polls with derived vote counts, newest first. No auth required.
func (h *PollHandler) ListPublic(c echo.Context) error {
	q := h.db.Preload("Opcoes").Preload("Autor").
		Where("ativa = ?", true).
		Order("criado_em DESC")

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return apperr.InvalidArgument("Invalid limit.")
		}
		q = q.Limit(limit)
	}

	var polls []models.Poll
	if err := q.Find(&polls).Error; err != nil {
		return err
	}

	results, err := h.presentPolls(polls, true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

// ListMine handles GET /api/enquetes
func (h *PollHandler) ListMine(c echo.Context) error {
	claims := middleware.GetClaims(c)

	var polls []models.Poll
	err := h.db.Preload("Opcoes").Preload("Autor").
		Where("autor_id = ?", claims.ID).
		Order("criado_em DESC").
		Find(&polls).Error
	if err != nil {
		return err
	}

	results, err := h.presentPolls(polls, false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

// GetPoll handles GET /api/enquetes/:id
func (h *PollHandler) GetPoll(c echo.Context) error {
	pollID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var poll models.Poll
	err = h.db.Preload("Opcoes").Preload("Autor").First(&poll, pollID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Poll not found.")
		}
		return err
	}

	if err := EnsureFresh(h.db, &poll, time.Now()); err != nil {
		return err
	}

	result, err := h.presentPoll(poll)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// DeletePoll handles DELETE /api/enquetes/:id
// Only the creator or an admin may delete; options and votes cascade.
func (h *PollHandler) DeletePoll(c echo.Context) error {
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

	if !CanMutate(claims.ID, claims.Role, poll.AutorID) {
		return apperr.Forbidden("You do not have permission to delete this poll.")
	}

	if err := h.db.Select("Opcoes").Delete(&poll).Error; err != nil {
		return err
	}

	slog.Info("poll deleted", "poll_id", poll.ID, "actor_id", claims.ID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Poll deleted successfully.",
	})
}

// presentPolls applies the lazy expiration correction to each poll and
// attaches derived tallies.
func (h *PollHandler) presentPolls(polls []models.Poll, hideExpired bool) ([]models.PollResult, error) {
	now := time.Now()
	results := make([]models.PollResult, 0, len(polls))
	for i := range polls {
		if err := EnsureFresh(h.db, &polls[i], now); err != nil {
			return nil, err
		}
		if hideExpired && !polls[i].Ativa {
			continue
		}
		r, err := h.presentPoll(polls[i])
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (h *PollHandler) presentPoll(poll models.Poll) (models.PollResult, error) {
	tallies, err := OptionTallies(h.db, poll.ID)
	if err != nil {
		return models.PollResult{}, err
	}

	result := models.PollResult{
		ID:        poll.ID,
		Titulo:    poll.Titulo,
		Descricao: poll.Descricao,
		DataFim:   poll.DataFim,
		Ativa:     poll.Ativa,
		CriadoEm:  poll.CriadoEm,
		Opcoes:    make([]models.OptionResult, 0, len(poll.Opcoes)),
	}
	if poll.Autor != nil {
		result.Autor = models.AuthorSummary{ID: poll.Autor.ID, Username: poll.Autor.Username}
	}
	for _, opt := range poll.Opcoes {
		n := tallies[opt.ID]
		result.Opcoes = append(result.Opcoes, models.OptionResult{
			ID:    opt.ID,
			Texto: opt.Texto,
			Votos: n,
		})
		result.TotalVotos += n
	}
	return result, nil
}
