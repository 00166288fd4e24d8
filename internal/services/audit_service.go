package services

import (
	"strconv"
	"sync"
	"time"

	"github.com/BradenHooton/folio/internal/metrics"
	"github.com/BradenHooton/folio/internal/models"
	"github.com/BradenHooton/folio/pkg/logger"
	"github.com/google/uuid"
)

// Retention of the in-memory activity feeds
const (
	maxContactSubmissions = 100
	maxSecurityEvents     = 50
	maxLoginEvents        = 100
)

// ringBuffer keeps the newest capacity items and overwrites the oldest
type ringBuffer[T any] struct {
	mu   sync.RWMutex
	data []T
	head int // next write position
	size int
}

func newRingBuffer[T any](capacity int) *ringBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &ringBuffer[T]{data: make([]T, capacity)}
}

func (b *ringBuffer[T]) push(item T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data[b.head] = item
	b.head = (b.head + 1) % len(b.data)
	if b.size < len(b.data) {
		b.size++
	}
}

// newestFirst returns a copy ordered from most to least recent
func (b *ringBuffer[T]) newestFirst() []T {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]T, 0, b.size)
	for i := 1; i <= b.size; i++ {
		idx := (b.head - i + len(b.data)) % len(b.data)
		out = append(out, b.data[idx])
	}
	return out
}

// AuditService dual-writes security and contact events: a structured audit
// log line, and a bounded in-memory feed read by the admin dashboard.
// Nothing is persisted.
type AuditService struct {
	audit   *logger.AuditLogger
	metrics *metrics.Metrics
	now     func() time.Time

	submissions *ringBuffer[models.ContactSubmission]
	security    *ringBuffer[models.SecurityEvent]
	logins      *ringBuffer[models.LoginAttemptEvent]

	mu               sync.Mutex
	totalSubmissions int64
	securityEvents   int64
	loginAttempts    int64
	lastLogin        time.Time
}

// NewAuditService creates an AuditService. metrics may be nil.
func NewAuditService(audit *logger.AuditLogger, m *metrics.Metrics, clock func() time.Time) *AuditService {
	if clock == nil {
		clock = time.Now
	}
	return &AuditService{
		audit:       audit,
		metrics:     m,
		now:         clock,
		submissions: newRingBuffer[models.ContactSubmission](maxContactSubmissions),
		security:    newRingBuffer[models.SecurityEvent](maxSecurityEvents),
		logins:      newRingBuffer[models.LoginAttemptEvent](maxLoginEvents),
	}
}

// RecordLoginAttempt logs one admin login attempt and whatever it triggered:
// a threat detection, a new lockout, or a successful sign-in.
func (s *AuditService) RecordLoginAttempt(identity, userAgent, username string, outcome models.AttemptOutcome) {
	now := s.now().UTC()
	success := outcome.Kind == models.OutcomeSuccess

	s.logins.push(models.LoginAttemptEvent{
		ID:        uuid.NewString(),
		Timestamp: now,
		IPAddress: identity,
		UserAgent: userAgent,
		Username:  username,
		Success:   success,
		Outcome:   string(outcome.Kind),
	})

	s.mu.Lock()
	s.loginAttempts++
	if success {
		s.lastLogin = now
	}
	s.mu.Unlock()

	event := logger.AuditEvent{
		EventType: models.EventTypeLoginAttempt,
		Username:  username,
		IPAddress: identity,
		UserAgent: userAgent,
		Success:   success,
		Metadata:  map[string]string{"outcome": string(outcome.Kind)},
	}
	switch outcome.Kind {
	case models.OutcomeRejected:
		event.FailureReason = "invalid credentials"
		event.Metadata["attempts_remaining"] = strconv.Itoa(outcome.AttemptsRemaining)
	case models.OutcomeLocked:
		event.FailureReason = "locked out"
		event.Metadata["remaining_seconds"] = strconv.Itoa(outcome.RemainingSeconds)
	}
	s.audit.LogAuthAttempt(event)
	s.metrics.LoginAttempt(string(outcome.Kind))

	if outcome.Threat.Suspicious() {
		s.recordSecurityEvent(now, string(outcome.Threat), "critical", identity, userAgent, username)
		s.audit.LogSecurityThreat(string(outcome.Threat), username, identity, userAgent)
		s.metrics.Threat(string(outcome.Threat))
	}
	if outcome.LockoutStarted {
		s.recordSecurityEvent(now, models.EventTypeLockout, "high", identity, userAgent, username)
	}
}

// RecordLogout logs an admin logout. present reports whether a session was
// actually removed.
func (s *AuditService) RecordLogout(identity, userAgent string, present bool) {
	s.audit.LogAuthAttempt(logger.AuditEvent{
		EventType: models.EventTypeLogout,
		IPAddress: identity,
		UserAgent: userAgent,
		Success:   true,
		Metadata:  map[string]string{"session_found": strconv.FormatBool(present)},
	})
}

// RecordContact logs an accepted contact submission
func (s *AuditService) RecordContact(submission models.ContactSubmission, emailSent bool) {
	s.submissions.push(submission)

	s.mu.Lock()
	s.totalSubmissions++
	s.mu.Unlock()

	s.audit.LogContactSubmission(submission.ID, submission.Email, submission.IPAddress, emailSent)
	s.metrics.ContactEmail(emailSent)
}

// Activity returns the recorded feeds and running totals, newest first
func (s *AuditService) Activity() models.DashboardData {
	data := models.DashboardData{
		Submissions:  s.submissions.newestFirst(),
		SecurityLogs: s.security.newestFirst(),
		LoginEvents:  s.logins.newestFirst(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data.Analytics = models.DashboardAnalytics{
		TotalSubmissions: s.totalSubmissions,
		SecurityEvents:   s.securityEvents,
		LoginAttempts:    s.loginAttempts,
	}
	if !s.lastLogin.IsZero() {
		last := s.lastLogin
		data.Analytics.LastLogin = &last
	}
	return data
}

func (s *AuditService) recordSecurityEvent(at time.Time, event, severity, identity, userAgent, username string) {
	s.security.push(models.SecurityEvent{
		ID:        uuid.NewString(),
		Timestamp: at,
		Event:     event,
		IPAddress: identity,
		UserAgent: userAgent,
		Username:  username,
		Severity:  severity,
	})

	s.mu.Lock()
	s.securityEvents++
	s.mu.Unlock()
}
