package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nivaldeir/erp-easy-remote/internal/common"
	"github.com/Nivaldeir/erp-easy-remote/internal/repositories"
	"github.com/Nivaldeir/erp-easy-remote/internal/services"
)

type AuthHandlers struct {
	authService services.AuthService
	userRepo    repositories.UserRepository
}

func NewAuthHandlers(authService services.AuthService, userRepo repositories.UserRepository) *AuthHandlers {
	return &AuthHandlers{authService: authService, userRepo: userRepo}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandlers) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return common.SendClientError(c, "Name, email, and password are required")
	}
	if len(req.Password) < 8 {
		return common.SendValidationError(c, "password", "must be at least 8 characters")
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, user)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return common.SendClientError(c, "Email and password are required")
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return common.SendUnauthorizedError(c)
	}
	return c.JSON(http.StatusOK, tokens)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return common.SendClientError(c, "Refresh token is required")
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.SendUnauthorizedError(c)
	}
	return c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandlers) Logout(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.RefreshToken != "" {
		if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
			return common.SendServerError(c, "Failed to revoke token")
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandlers) Me(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), userID)
	if err != nil {
		return common.SendServerError(c, "Failed to load user")
	}
	if user == nil {
		return common.SendNotFoundError(c, "User")
	}
	return c.JSON(http.StatusOK, user)
}
