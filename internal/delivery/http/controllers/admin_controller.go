package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "webinarregistration/internal/delivery/http/helpers"
	"webinarregistration/internal/domain"
)

// AdminLoginRequest is the request body for POST /admin
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLoginResponse is the response body for POST /admin
type AdminLoginResponse struct {
	Registrations []*domain.Registrant `json:"registrations"`
	Token         string               `json:"token"`
	TokenType     string               `json:"token_type"`
}

// RegistrationsResponse is the response body for GET /admin/registrations
type RegistrationsResponse struct {
	Registrations []*domain.Registrant `json:"registrations"`
}

type AdminController struct {
	Logger  *slog.Logger
	Service domain.AdminService
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService) *AdminController {
	return &AdminController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Admin login
// @Description Check the admin password and return every registration together with a short-lived admin token.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Admin password"
// @Success 200 {object} AdminLoginResponse
// @Failure 400 {object} helpers.ErrorResponse "Invalid request body"
// @Failure 401 {object} helpers.ErrorResponse "Invalid password"
// @Failure 500 {object} helpers.ErrorResponse "Failed to fetch registrations"
// @Router /admin [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, regs, err := c.Service.Login(r.Context(), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Invalid password")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "Failed to fetch registrations")
		return
	}

	h.WriteJSON(w, http.StatusOK, AdminLoginResponse{Registrations: nonNil(regs), Token: token, TokenType: "Bearer"})
}

// Registrations godoc
// @Summary List registrations
// @Description Every registration, newest first. Requires the token returned by POST /admin.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RegistrationsResponse
// @Failure 401 {object} helpers.ErrorResponse "Unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "Failed to fetch registrations"
// @Router /admin/registrations [get]
func (c *AdminController) Registrations(w http.ResponseWriter, r *http.Request) {
	regs, err := c.Service.ListRegistrants(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "Failed to fetch registrations")
		return
	}

	h.WriteJSON(w, http.StatusOK, RegistrationsResponse{Registrations: nonNil(regs)})
}

func nonNil(regs []*domain.Registrant) []*domain.Registrant {
	if regs == nil {
		return []*domain.Registrant{}
	}
	return regs
}
