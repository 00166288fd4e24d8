package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/BradenHooton/folio/internal/models"
	"github.com/google/uuid"
)

// ContactInput is a validated contact form body
type ContactInput struct {
	Name             string
	Email            string
	Phone            string
	ProjectType      string
	Message          string
	PreferredContact string
}

// ContactService accepts contact form messages under a per-identity cooldown
// and forwards them to the site owner
type ContactService struct {
	limiter  *RateLimiter
	cooldown time.Duration
	notifier ContactNotifier
	audit    *AuditService
	logger   *slog.Logger
	now      func() time.Time
}

// NewContactService creates a ContactService. A nil notifier means email is
// not configured and every submission reports emailSent=false.
func NewContactService(limiter *RateLimiter, cooldown time.Duration, notifier ContactNotifier, audit *AuditService, logger *slog.Logger, clock func() time.Time) *ContactService {
	if clock == nil {
		clock = time.Now
	}
	return &ContactService{
		limiter:  limiter,
		cooldown: cooldown,
		notifier: notifier,
		audit:    audit,
		logger:   logger,
		now:      clock,
	}
}

// Submit records a contact message from identity. It returns
// models.ErrRateLimitExceeded while the identity's cooldown is running.
// Email delivery failure is reported through emailSent, not as an error.
func (s *ContactService) Submit(ctx context.Context, identity, userAgent string, in ContactInput) (submission models.ContactSubmission, emailSent bool, err error) {
	now := s.now()
	if !s.limiter.TryConsume(identity, ActionContact, s.cooldown, now) {
		return models.ContactSubmission{}, false, models.ErrRateLimitExceeded
	}

	preferred := strings.TrimSpace(in.PreferredContact)
	if preferred == "" {
		preferred = "email"
	}

	submission = models.ContactSubmission{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(in.Name),
		Email:            strings.TrimSpace(in.Email),
		Phone:            strings.TrimSpace(in.Phone),
		ProjectType:      strings.TrimSpace(in.ProjectType),
		Message:          strings.TrimSpace(in.Message),
		PreferredContact: preferred,
		Timestamp:        now.UTC(),
		IPAddress:        identity,
		UserAgent:        userAgent,
		Status:           "new",
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, submission); err != nil {
			if !errors.Is(err, models.ErrEmailDelivery) {
				s.logger.ErrorContext(ctx, "contact notification failed",
					slog.String("submission_id", submission.ID),
					slog.Any("error", err))
			}
		} else {
			emailSent = true
		}
	}

	s.audit.RecordContact(submission, emailSent)
	return submission, emailSent, nil
}
