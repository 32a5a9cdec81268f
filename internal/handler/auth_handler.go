package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"buslink/internal/auth"
	"buslink/internal/errors"
	"buslink/internal/model"
	"buslink/internal/service"
)

// AuthHandler handles session endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest carries the verified identity asserted by the upstream
// identity provider.
type LoginRequest struct {
	ID              string `json:"id" validate:"required,max=64"`
	Email           string `json:"email" validate:"omitempty,email"`
	FirstName       string `json:"firstName" validate:"omitempty,max=255"`
	LastName        string `json:"lastName" validate:"omitempty,max=255"`
	ProfileImageURL string `json:"profileImageUrl" validate:"omitempty,max=500"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	User         *model.User `json:"user,omitempty"`
}

// Login godoc
// @Summary Exchange a provider identity for a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Provider identity"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Message: "Invalid data",
			Errors:  bindFieldErrors(err),
		})
	}
	if err := c.Validate(&req); err != nil {
		verr := errors.FromValidator(err)
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Message: "Invalid data",
			Errors:  verr.Fields,
		})
	}

	accessToken, refreshToken, user, err := h.authService.Authenticate(c.Request().Context(), service.Identity{
		ID:              req.ID,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", req.ID).Msg("authenticate")
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{
			Message: "Failed to authenticate",
		})
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

// Refresh godoc
// @Summary Refresh the access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid data"})
	}
	if err := c.Validate(&req); err != nil {
		verr := errors.FromValidator(err)
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Message: "Invalid data",
			Errors:  verr.Fields,
		})
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidRefreshToken) {
			return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Message: err.Error()})
		}
		log.Error().Err(err).Msg("refresh token")
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Message: "Failed to refresh token"})
	}

	return c.JSON(http.StatusOK, AuthResponse{AccessToken: accessToken})
}

// Logout godoc
// @Summary Invalidate the refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid data"})
	}
	if err := c.Validate(&req); err != nil {
		verr := errors.FromValidator(err)
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Message: "Invalid data",
			Errors:  verr.Fields,
		})
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		if stderrors.Is(err, errors.ErrInvalidRefreshToken) {
			return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Message: err.Error()})
		}
		log.Error().Err(err).Msg("logout")
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Message: "Failed to logout"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// GetUser godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/user [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "User not found"})
		}
		log.Error().Err(err).Str("user_id", userID).Msg("fetch user")
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Message: "Failed to fetch user"})
	}

	return c.JSON(http.StatusOK, user)
}
