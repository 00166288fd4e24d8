package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/BradenHooton/folio/internal/auth"
	"github.com/BradenHooton/folio/internal/models"
)

// dashboardConversations caps the chat sessions shown on the dashboard
const dashboardConversations = 20

// ConversationLister exposes recent chatbot sessions to the dashboard
type ConversationLister interface {
	Conversations(limit int) []models.ConversationSummary
}

// AdminService drives the admin endpoint: login through the AccessGuard,
// session checks, logout, and the dashboard view.
type AdminService struct {
	guard         *AccessGuard
	audit         *AuditService
	conversations ConversationLister
	timing        *auth.TimingDelay
	logger        *slog.Logger
}

// NewAdminService creates a new AdminService. conversations and timing may be nil.
func NewAdminService(guard *AccessGuard, audit *AuditService, conversations ConversationLister, timing *auth.TimingDelay, logger *slog.Logger) *AdminService {
	return &AdminService{
		guard:         guard,
		audit:         audit,
		conversations: conversations,
		timing:        timing,
		logger:        logger,
	}
}

// Login records one attempt for identity and returns its outcome. Failed
// attempts are held until the configured timing delay has elapsed since the
// attempt started, so the bcrypt comparison counts toward it.
func (s *AdminService) Login(ctx context.Context, identity, userAgent, username, password string) models.AttemptOutcome {
	start := time.Now()
	outcome := s.guard.RecordLoginAttempt(identity, username, password)
	s.audit.RecordLoginAttempt(identity, userAgent, username, outcome)

	if outcome.LockoutStarted {
		s.logger.WarnContext(ctx, "admin lockout imposed",
			slog.String("ip_address", identity),
			slog.Int("remaining_seconds", outcome.RemainingSeconds),
		)
	}

	s.timing.WaitFrom(ctx, start, outcome.Kind == models.OutcomeSuccess)
	return outcome
}

// Authorized reports whether token names a live admin session
func (s *AdminService) Authorized(token string) bool {
	return s.guard.IsSessionValid(token)
}

// Logout ends the session for token. Unknown tokens are not an error.
func (s *AdminService) Logout(identity, userAgent, token string) {
	present := s.guard.InvalidateSession(token)
	s.audit.RecordLogout(identity, userAgent, present)
}

// Dashboard returns the activity feeds alongside the guard's current state
func (s *AdminService) Dashboard() models.DashboardData {
	data := s.audit.Activity()
	data.LoginAttempts = s.guard.Snapshot()
	data.Analytics.ActiveSessions = s.guard.ActiveSessions()
	if s.conversations != nil {
		data.Conversations = s.conversations.Conversations(dashboardConversations)
	}
	return data
}
