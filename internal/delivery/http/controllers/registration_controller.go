package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "webinarregistration/internal/delivery/http/helpers"
	"webinarregistration/internal/domain"
)

// RegisterRequest is the request body for POST /register
type RegisterRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=200"`
	Email        string `json:"email" validate:"required,email,max=254"`
	Organization string `json:"organization,omitempty" validate:"omitempty,min=2,max=200"`
	City         string `json:"city,omitempty" validate:"omitempty,min=2,max=100"`
	Country      string `json:"country,omitempty" validate:"omitempty,min=2,max=100"`
}

func (r RegisterRequest) normalized() RegisterRequest {
	return RegisterRequest{
		Name:         strings.TrimSpace(r.Name),
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		Organization: strings.TrimSpace(r.Organization),
		City:         strings.TrimSpace(r.City),
		Country:      strings.TrimSpace(r.Country),
	}
}

// Validate implements Validator.
func (r RegisterRequest) Validate() map[string][]string {
	return h.ValidateStruct(r.normalized())
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for the event
// @Description Store the registrant and send the confirmation email with the calendar invite. A failed email does not fail the registration.
// @Tags registration
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registrant"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "Validation failed or Email already registered"
// @Failure 500 {object} helpers.ErrorResponse "Failed to register"
// @Router /register [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	req = req.normalized()
	_, err := c.Service.Register(r.Context(), domain.RegistrationInput{
		Name:         req.Name,
		Email:        req.Email,
		Organization: req.Organization,
		City:         req.City,
		Country:      req.Country,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeConflict, "Email already registered")
		case errors.Is(err, domain.ErrValidation):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeValidation, "Validation failed")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "Failed to register")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, h.SuccessResponse{Success: true, Message: "Registration successful"})
}
