package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"buslink/internal/auth"
	"buslink/internal/errors"
	"buslink/internal/service"
)

// CompanyHandler handles company-profile endpoints.
type CompanyHandler struct {
	companyService service.CompanyService
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// UpdateProfileRequest is the insertable company subset accepted from
// clients. Every field is an optional string; name may also be empty.
// Unknown fields are dropped by the JSON decoder, not rejected.
type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
	Address     *string `json:"address"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logoUrl" validate:"omitempty,max=500"`
}

// GetProfile godoc
// @Summary Get the caller's company profile
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Company "company record, or null when none exists yet"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /companies/profile [get]
func (h *CompanyHandler) GetProfile(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	company, err := h.companyService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("fetch company profile")
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{
			Message: "Failed to fetch company profile",
		})
	}

	// No company yet is a normal state: respond with an explicit null so the
	// client can distinguish "not yet created" from failure.
	if company == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, company)
}

// UpdateProfile godoc
// @Summary Create or update the caller's company profile
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Partial company fields"
// @Success 200 {object} model.Company
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /companies/profile [patch]
func (h *CompanyHandler) UpdateProfile(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
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

	company, err := h.companyService.SaveProfile(c.Request().Context(), userID, service.ProfileUpdate{
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("update company profile")
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{
			Message: "Failed to update company profile",
		})
	}

	return c.JSON(http.StatusOK, company)
}

// bindFieldErrors maps JSON decode failures to per-field errors, so a
// wrong-typed field is reported the same way as a rule violation.
func bindFieldErrors(err error) []errors.FieldError {
	var he *echo.HTTPError
	if stderrors.As(err, &he) && he.Internal != nil {
		err = he.Internal
	}
	var ute *json.UnmarshalTypeError
	if stderrors.As(err, &ute) && ute.Field != "" {
		return []errors.FieldError{{Field: ute.Field, Message: "must be a string"}}
	}
	return []errors.FieldError{{Field: "body", Message: "invalid request body"}}
}
