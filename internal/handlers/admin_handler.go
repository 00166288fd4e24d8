package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/BradenHooton/folio/internal/models"
	pkghttp "github.com/BradenHooton/folio/pkg/http"
)

// AdminServiceInterface defines the admin service contract.
type AdminServiceInterface interface {
	Login(ctx context.Context, identity, userAgent, username, password string) models.AttemptOutcome
	Authorized(token string) bool
	Logout(identity, userAgent, token string)
	Dashboard() models.DashboardData
}

// AdminHandler handles the admin login, dashboard and logout endpoints.
type AdminHandler struct {
	service  AdminServiceInterface
	ipConfig *pkghttp.IPConfig
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service AdminServiceInterface, ipConfig *pkghttp.IPConfig) *AdminHandler {
	return &AdminHandler{service: service, ipConfig: ipConfig}
}

// LoginRequest is the admin login body. Both keys must be present; empty
// values are allowed through and simply fail the credential check.
type LoginRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// LoginSuccessResponse is returned with 200
type LoginSuccessResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// LoginRejectedResponse is returned with 401
type LoginRejectedResponse struct {
	Status            string `json:"status"`
	Error             string `json:"error"`
	Message           string `json:"message"`
	AttemptsRemaining int    `json:"attemptsRemaining"`
}

// LoginLockedResponse is returned with 423
type LoginLockedResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	RemainingTime int    `json:"remainingTime"` // seconds
}

// DashboardResponse wraps the dashboard data
type DashboardResponse struct {
	Status string               `json:"status"`
	Data   models.DashboardData `json:"data"`
}

// MessageResponse is a bare success body
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Login handles POST /api/admin
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	identity := pkghttp.ClientIdentity(r, h.ipConfig)
	username := strings.TrimSpace(*req.Username)
	outcome := h.service.Login(r.Context(), identity, pkghttp.UserAgent(r), username, *req.Password)

	switch outcome.Kind {
	case models.OutcomeSuccess:
		pkghttp.WriteJSON(w, http.StatusOK, LoginSuccessResponse{
			Status:    pkghttp.StatusSuccess,
			Message:   "Login successful",
			SessionID: outcome.Token,
		})
	case models.OutcomeLocked:
		pkghttp.WriteJSON(w, http.StatusLocked, LoginLockedResponse{
			Status:        pkghttp.StatusLocked,
			Message:       lockedMessage(outcome.RemainingSeconds),
			RemainingTime: outcome.RemainingSeconds,
		})
	default:
		pkghttp.WriteJSON(w, http.StatusUnauthorized, LoginRejectedResponse{
			Status:            pkghttp.StatusError,
			Error:             "invalid_credentials",
			Message:           "Invalid credentials",
			AttemptsRemaining: outcome.AttemptsRemaining,
		})
	}
}

// Dashboard handles GET /api/admin
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !h.service.Authorized(pkghttp.SessionToken(r)) {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, DashboardResponse{
		Status: pkghttp.StatusSuccess,
		Data:   h.service.Dashboard(),
	})
}

// Logout handles DELETE /api/admin. It succeeds whether or not the session existed.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := pkghttp.SessionToken(r); token != "" {
		h.service.Logout(pkghttp.ClientIdentity(r, h.ipConfig), pkghttp.UserAgent(r), token)
	}

	pkghttp.WriteJSON(w, http.StatusOK, MessageResponse{
		Status:  pkghttp.StatusSuccess,
		Message: "Logged out successfully",
	})
}

func lockedMessage(remainingSeconds int) string {
	minutes := (remainingSeconds + 59) / 60
	unit := "minutes"
	if minutes == 1 {
		unit = "minute"
	}
	return fmt.Sprintf("Account locked due to multiple failed attempts. Try again in %d %s.", minutes, unit)
}
