// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
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

type ReportHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewReportHandler(db *gorm.DB, cfg cliparse.Config) *ReportHandler {
	return &ReportHandler{db: db, cfg: cfg}
}

func validReportStatus(status string) bool {
	switch status {
	case models.ReportPending, models.ReportAnalyzed, models.ReportAccepted, models.ReportRejected:
		return true
	}
	return false
}

// CreateReport handles POST /api/denuncias
func (h *ReportHandler) CreateReport(c echo.Context) error {
	claims := middleware.GetClaims(c)

	var req models.CreateReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if req.Motivo != nil {
		trimmed := strings.TrimSpace(*req.Motivo)
		if trimmed == "" {
			req.Motivo = nil
		} else {
			if utf8.RuneCountInString(trimmed) > models.MaxReasonLength {
				return apperr.Validation("The reason is limited to 500 characters.")
			}
			req.Motivo = &trimmed
		}
	}

	var poll models.Poll
	if err := h.db.First(&poll, req.EnqueteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Poll not found.")
		}
		return err
	}

	// One report per (reporter, poll); the unique index backs this up.
	var count int64
	err := h.db.Model(&models.Report{}).
		Where("user_id = ? AND enquete_id = ?", claims.ID, poll.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("You have already reported this poll.")
	}

	report := models.Report{
		UserID:    claims.ID,
		EnqueteID: poll.ID,
		Motivo:    req.Motivo,
		Status:    models.ReportPending,
	}
	if err := h.db.Create(&report).Error; err != nil {
		return err
	}

	slog.Info("report created", "report_id", report.ID, "poll_id", poll.ID, "user_id", claims.ID)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"id":      report.ID,
		"message": "Report registered successfully!",
	})
}

// ListReports handles GET /api/denuncias (admin)
func (h *ReportHandler) ListReports(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !validReportStatus(status) {
		return apperr.InvalidArgument("Invalid report status.")
	}

	page, limit := pagination(c)

	q := h.db.Model(&models.Report{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return err
	}

	listQ := h.db.Preload("User").Preload("Enquete")
	if status != "" {
		listQ = listQ.Where("status = ?", status)
	}

	var reports []models.Report
	err := listQ.Order("criado_em DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.ReportListResponse{
		Denuncias: reports,
		Pagination: models.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages(total, limit),
		},
	})
}

// GetReport handles GET /api/denuncias/:id (admin)
func (h *ReportHandler) GetReport(c echo.Context) error {
	reportID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var report models.Report
	err = h.db.Preload("User").Preload("Enquete").First(&report, reportID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Report not found.")
		}
		return err
	}

	return c.JSON(http.StatusOK, report)
}

// UpdateStatus handles PUT /api/denuncias/:id/status (admin)
// Any status may follow any other. Accepting with desativarEnquete also
// forces the reported poll inactive; this is the only deactivation path
// outside the expiration logic.
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	reportID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateReportStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var report models.Report
	if err := h.db.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Report not found.")
		}
		return err
	}

	if report.Status == req.Status {
		return c.JSON(http.StatusOK, models.ReportStatusResponse{
			Message: fmt.Sprintf("The report already has status %s.", req.Status),
			Updated: false,
		})
	}

	deactivate := req.Status == models.ReportAccepted && req.DesativarEnquete

	now := time.Now()
	err = h.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&report).Updates(map[string]interface{}{
			"status":      req.Status,
			"revisado_em": now,
		}).Error
		if err != nil {
			return err
		}

		if deactivate {
			return tx.Model(&models.Poll{}).
				Where("id = ?", report.EnqueteID).
				Update("ativa", false).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("report status updated",
		"report_id", report.ID,
		"status", req.Status,
		"poll_deactivated", deactivate,
	)

	if deactivate {
		return c.JSON(http.StatusOK, models.ReportStatusResponse{
			Message:           "Report accepted and poll deactivated successfully.",
			Updated:           true,
			EnqueteDesativada: true,
		})
	}

	return c.JSON(http.StatusOK, models.ReportStatusResponse{
		Message: fmt.Sprintf("Report status updated to %s.", req.Status),
		Updated: true,
	})
}

// Dashboard handles GET /api/denuncias/dashboard/stats (admin)
func (h *ReportHandler) Dashboard(c echo.Context) error {
	var summary models.ReportSummary

	counts := map[string]*int64{
		models.ReportPending:  &summary.Pendentes,
		models.ReportAnalyzed: &summary.Analisadas,
		models.ReportAccepted: &summary.Aceitas,
		models.ReportRejected: &summary.Rejeitadas,
	}
	for status, dst := range counts {
		err := h.db.Model(&models.Report{}).Where("status = ?", status).Count(dst).Error
		if err != nil {
			return err
		}
	}
	if err := h.db.Model(&models.Report{}).Count(&summary.Total).Error; err != nil {
		return err
	}

	var top []models.ReportedPoll
	err := h.db.Model(&models.Report{}).
		Select("enquetes.id AS id, enquetes.titulo AS titulo, enquetes.ativa AS ativa, COUNT(denuncias.id) AS total_denuncias").
		Joins("JOIN enquetes ON enquetes.id = denuncias.enquete_id").
		Group("enquetes.id, enquetes.titulo, enquetes.ativa").
		Order("total_denuncias DESC").
		Limit(5).
		Find(&top).Error
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.ReportDashboardResponse{
		Summary:                 summary,
		EnquetesMaisDenunciadas: top,
	})
}
