package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/BradenHooton/folio/internal/metrics"
	"github.com/BradenHooton/folio/internal/models"
	"github.com/BradenHooton/folio/internal/services"
	pkghttp "github.com/BradenHooton/folio/pkg/http"
)

// ContactServiceInterface defines the contact service contract.
type ContactServiceInterface interface {
	Submit(ctx context.Context, identity, userAgent string, in services.ContactInput) (models.ContactSubmission, bool, error)
}

// ContactHandler handles the public contact form.
type ContactHandler struct {
	service  ContactServiceInterface
	ipConfig *pkghttp.IPConfig
	metrics  *metrics.Metrics
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service ContactServiceInterface, ipConfig *pkghttp.IPConfig, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{service: service, ipConfig: ipConfig, metrics: m}
}

// ContactRequest is the contact form body. Values are trimmed before validation.
type ContactRequest struct {
	Name             string `json:"name" validate:"required,max=200"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Phone            string `json:"phone" validate:"max=50"`
	ProjectType      string `json:"projectType" validate:"max=100"`
	Message          string `json:"message" validate:"required,max=5000"`
	PreferredContact string `json:"preferredContact" validate:"max=50"`
}

func (req *ContactRequest) trim() {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.ProjectType = strings.TrimSpace(req.ProjectType)
	req.Message = strings.TrimSpace(req.Message)
	req.PreferredContact = strings.TrimSpace(req.PreferredContact)
}

// ContactResponse is returned with 200
type ContactResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	EmailSent bool   `json:"emailSent"`
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}
	req.trim()
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	_, emailSent, err := h.service.Submit(r.Context(), pkghttp.ClientIdentity(r, h.ipConfig), pkghttp.UserAgent(r), services.ContactInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		ProjectType:      req.ProjectType,
		Message:          req.Message,
		PreferredContact: req.PreferredContact,
	})
	if err != nil {
		if errors.Is(err, models.ErrRateLimitExceeded) {
			h.metrics.Throttled(string(services.ActionContact))
			pkghttp.WriteTooManyRequests(w, "Please wait before sending another message")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error. Please try again later.")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, ContactResponse{
		Status:    pkghttp.StatusSuccess,
		Message:   "Thank you for your message! I will get back to you within 24 hours.",
		EmailSent: emailSent,
	})
}
