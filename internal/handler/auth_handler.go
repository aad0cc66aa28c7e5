package handler

import (
	"net/http"

	"github.com/debtwise/debtwise-backend/internal/middleware"
	"github.com/debtwise/debtwise-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// MeResponse represents the authenticated user and workspace
type MeResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Name        *string `json:"name,omitempty"`
	WorkspaceID int32   `json:"workspaceId"`
	IsNewUser   bool    `json:"isNewUser,omitempty"`
}

// Callback handles POST /api/v1/auth/callback. Creates the user and a default
// workspace on first login.
func (h *AuthHandler) Callback(c echo.Context) error {
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	claims := middleware.GetCustomClaims(c)
	if claims == nil || claims.Email == "" {
		return NewUnauthorizedError(c, "Email claim required")
	}

	var name *string
	if claims.Name != "" {
		name = &claims.Name
	}

	result, err := h.authService.AuthenticateUser(auth0ID, claims.Email, name)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Authentication failed")
		return NewInternalError(c, "Authentication failed")
	}

	return c.JSON(http.StatusOK, MeResponse{
		ID:          result.User.ID.String(),
		Email:       result.User.Email,
		Name:        result.User.Name,
		WorkspaceID: result.Workspace.ID,
		IsNewUser:   result.IsNewUser,
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.authService.GetUserByAuth0ID(auth0ID)
	if err != nil {
		return NewNotFoundError(c, "User not found")
	}

	return c.JSON(http.StatusOK, MeResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		Name:        user.Name,
		WorkspaceID: middleware.GetWorkspaceID(c),
	})
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless; the client
// discards its token.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
