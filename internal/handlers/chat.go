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

// ChatServiceInterface defines the chatbot service contract.
type ChatServiceInterface interface {
	Reply(ctx context.Context, identity, sessionID, message string) (models.ChatReply, error)
}

// ChatHandler handles the portfolio chatbot.
type ChatHandler struct {
	service  ChatServiceInterface
	ipConfig *pkghttp.IPConfig
	metrics  *metrics.Metrics
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service ChatServiceInterface, ipConfig *pkghttp.IPConfig, m *metrics.Metrics) *ChatHandler {
	return &ChatHandler{service: service, ipConfig: ipConfig, metrics: m}
}

// ChatRequest is the chatbot body; sessionId defaults to the client identity
type ChatRequest struct {
	Message   string `json:"message" validate:"required,max=2000"`
	SessionID string `json:"sessionId" validate:"max=128"`
}

// ChatResponse is returned with 200
type ChatResponse struct {
	Status      string `json:"status"`
	Response    string `json:"response"`
	SessionID   string `json:"sessionId"`
	VisitorName string `json:"visitorName"`
}

// Reply handles POST /api/chatbot
func (h *ChatHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	req.SessionID = strings.TrimSpace(req.SessionID)
	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	reply, err := h.service.Reply(r.Context(), pkghttp.ClientIdentity(r, h.ipConfig), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, models.ErrRateLimitExceeded) {
			h.metrics.Throttled(string(services.ActionChat))
			pkghttp.WriteTooManyRequests(w, "Please wait before sending another message")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error. Please try again later.")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, ChatResponse{
		Status:      pkghttp.StatusSuccess,
		Response:    reply.Response,
		SessionID:   reply.SessionID,
		VisitorName: reply.VisitorName,
	})
}
