// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/danielhkuo/enquete/apperr"
	"github.com/danielhkuo/enquete/auth"
	"github.com/danielhkuo/enquete/cliparse"
	"github.com/danielhkuo/enquete/middleware"
	"github.com/danielhkuo/enquete/models"
)

type UserHandler struct {
	db  *gorm.DB
	cfg cliparse.Config
}

func NewUserHandler(db *gorm.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	err := h.db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, req.Username).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Username or email already in use.")
	}

	// CLIENT unless an admin role was explicitly requested.
	role := models.RoleClient
	if req.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}

	var tipo models.UserType
	if err := h.db.Where("nome = ?", role).First(&tipo).Error; err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := models.User{
		Username: req.Username,
		Email:    email,
		Password: hash,
		TipoID:   tipo.ID,
		Ativo:    true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	return c.JSON(http.StatusCreated, models.RegisterResponse{
		Message: "User registered successfully!",
		UserID:  user.ID,
		TipoID:  tipo.ID,
	})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var user models.User
	err := h.db.Preload("Tipo").
		Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found.")
		}
		return err
	}

	if !user.Ativo {
		return apperr.Forbidden("Account deactivated. Contact an administrator.")
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return apperr.Unauthorized("Invalid credentials.")
	}

	role := models.RoleClient
	if user.Tipo != nil {
		role = user.Tipo.Nome
	}

	token, err := auth.CreateToken([]byte(h.cfg.JWTSecret), user.ID, user.Username, role, h.cfg.JWTExpiresIn)
	if err != nil {
		return err
	}

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)

	return c.JSON(http.StatusOK, models.LoginResponse{
		Message: "Login successful!",
		Token:   token,
		User: models.UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     role,
			IsAdmin:  role == models.RoleAdmin,
		},
	})
}

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	claims := middleware.GetClaims(c)

	var user models.User
	if err := h.db.Preload("Tipo").First(&user, claims.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found.")
		}
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims := middleware.GetClaims(c)

	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var user models.User
	if err := h.db.First(&user, claims.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found.")
		}
		return err
	}

	updates := map[string]interface{}{}

	if req.Username != "" && req.Username != user.Username {
		var count int64
		err := h.db.Model(&models.User{}).
			Where("username = ? AND id <> ?", req.Username, user.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("Username already in use.")
		}
		updates["username"] = req.Username
	}

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != user.Email {
			var count int64
			err := h.db.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, user.ID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return apperr.Conflict("Email already in use.")
			}
			updates["email"] = email
		}
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return err
		}
		updates["password"] = hash
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
	}

	slog.Info("profile updated", "user_id", user.ID)

	return c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /api/users (admin)
func (h *UserHandler) ListUsers(c echo.Context) error {
	var users []models.User
	if err := h.db.Preload("Tipo").Order("id").Find(&users).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateRole handles PUT /api/users/:id/role (admin)
func (h *UserHandler) UpdateRole(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found.")
		}
		return err
	}

	var tipo models.UserType
	if err := h.db.Where("nome = ?", req.Role).First(&tipo).Error; err != nil {
		return err
	}

	if user.TipoID == tipo.ID {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "User already has this role.",
		})
	}

	if err := h.db.Model(&user).Update("tipo_id", tipo.ID).Error; err != nil {
		return err
	}

	slog.Info("user role updated", "user_id", user.ID, "role", req.Role)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User role updated successfully!",
		"userId":  user.ID,
		"newRole": req.Role,
	})
}

// Deactivate handles DELETE /api/users/:id (admin). Users are never
// hard-deleted; their polls, votes and comments stay attributable.
func (h *UserHandler) Deactivate(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found.")
		}
		return err
	}

	if !user.Ativo {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "User is already deactivated.",
		})
	}

	if err := h.db.Model(&user).Update("ativo", false).Error; err != nil {
		return err
	}

	slog.Info("user deactivated", "user_id", user.ID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User deactivated successfully.",
	})
}
