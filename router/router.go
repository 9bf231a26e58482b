// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/danielhkuo/enquete/apperr"
	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/handlers"
	"github.com/danielhkuo/enquete/middleware"
	"github.com/danielhkuo/enquete/models"
)

// Validator adapts go-playground/validator to echo, turning violations into
// the field-level 400 body.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed on the %s rule", fe.Field(), fe.Tag()))
		}
		return apperr.Validation("Validation error", msgs...)
	}
	return err
}

func NewRouter(db *gorm.DB, cfg cliparse.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = errorHandler(cfg.Development())

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(requestLogger)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, nil)

	authed := middleware.Auth([]byte(cfg.JWTSecret))
	admin := []echo.MiddlewareFunc{authed, middleware.RequireAdmin}

	userHandler := handlers.NewUserHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	commentHandler := handlers.NewCommentHandler(db, cfg)
	reportHandler := handlers.NewReportHandler(db, cfg)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			slog.Error("healthcheck can't reach database", "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"status": "error"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api", limiter.Middleware)

	// Users
	api.POST("/users/register", userHandler.Register)
	api.POST("/users/login", userHandler.Login)
	api.GET("/users/profile", userHandler.GetProfile, authed)
	api.PUT("/users/profile", userHandler.UpdateProfile, authed)
	api.GET("/users", userHandler.ListUsers, admin...)
	api.PUT("/users/:id/role", userHandler.UpdateRole, admin...)
	api.DELETE("/users/:id", userHandler.Deactivate, admin...)

	// Polls
	api.GET("/enquetes/public", pollHandler.ListPublic)
	api.GET("/enquetes", pollHandler.ListMine, authed)
	api.POST("/enquetes", pollHandler.CreatePoll, authed)
	api.GET("/enquetes/:id", pollHandler.GetPoll)
	api.DELETE("/enquetes/:id", pollHandler.DeletePoll, authed)

	// Voting
	api.POST("/enquetes/opcoes/:id/votar", votingHandler.Vote, authed)
	api.GET("/enquetes/:id/meu-voto", votingHandler.MyVote, authed)

	// Comments
	api.POST("/comentarios", commentHandler.CreateComment, authed)
	api.GET("/comentarios/enquete/:enqueteId", commentHandler.ListByPoll)
	api.PUT("/comentarios/:id", commentHandler.UpdateComment, authed)
	api.DELETE("/comentarios/:id", commentHandler.DeleteComment, authed)

	// Reports
	api.POST("/denuncias", reportHandler.CreateReport, authed)
	api.GET("/denuncias", reportHandler.ListReports, admin...)
	api.GET("/denuncias/dashboard/stats", reportHandler.Dashboard, admin...)
	api.GET("/denuncias/:id", reportHandler.GetReport, admin...)
	api.PUT("/denuncias/:id/status", reportHandler.UpdateStatus, admin...)

	return e
}

// requestLogger logs method, path and status for every request.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		status := c.Response().Status
		if err != nil {
			if ae := apperr.As(err); ae != nil {
				status = ae.Code
			}
		}
		slog.Info("request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", status,
		)
		return err
	}
}

// errorHandler maps domain errors to the JSON error body. Unknown errors
// become 500 with detail suppressed outside development.
func errorHandler(dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if ae := apperr.As(err); ae != nil {
			_ = c.JSON(ae.Code, models.ErrorResponse{Message: ae.Message, Errors: ae.Errors})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, models.ErrorResponse{Message: fmt.Sprintf("%v", he.Message)})
			return
		}

		slog.Error("unhandled error", "path", c.Request().URL.Path, "error", err)
		msg := "Internal server error."
		if dev {
			msg = err.Error()
		}
		_ = c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: msg})
	}
}
