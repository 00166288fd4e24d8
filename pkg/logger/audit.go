package logger

import (
	"context"
	"log/slog"
	"time"
)

// AuditEvent represents a security audit event
type AuditEvent struct {
	EventType     string
	Username      string
	IPAddress     string
	UserAgent     string
	Success       bool
	FailureReason string
	Metadata      map[string]string
}

// AuditLogger provides audit logging functionality
type AuditLogger struct {
	logger *slog.Logger
	env    string
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logger *slog.Logger, env string) *AuditLogger {
	return &AuditLogger{
		logger: logger,
		env:    env,
	}
}

// LogAuthAttempt logs admin login attempts. Passwords are never accepted here.
func (al *AuditLogger) LogAuthAttempt(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "auth"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.Username != "" {
		attrs = append(attrs, RedactedAttr("username", event.Username, al.env))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.UserAgent != "" {
		attrs = append(attrs, slog.String("user_agent", event.UserAgent))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}
	for key, val := range event.Metadata {
		attrs = append(attrs, slog.String(key, val))
	}

	if event.Success {
		al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit", attrs...)
	} else {
		al.logger.LogAttrs(context.Background(), slog.LevelWarn, "audit", attrs...)
	}
}

// LogSecurityThreat logs a detected credential-stuffing or injection probe
func (al *AuditLogger) LogSecurityThreat(threat, username, ipAddress, userAgent string) {
	al.logger.LogAttrs(context.Background(), slog.LevelWarn, "audit",
		slog.String("audit_type", "security"),
		slog.String("event_type", threat),
		slog.String("severity", "critical"),
		RedactedAttr("username", username, al.env),
		slog.String("ip_address", ipAddress),
		slog.String("user_agent", userAgent),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	)
}

// LogContactSubmission logs an accepted contact form message
func (al *AuditLogger) LogContactSubmission(submissionID, email, ipAddress string, emailSent bool) {
	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit",
		slog.String("audit_type", "contact"),
		slog.String("event_type", "contact_submission"),
		slog.String("submission_id", submissionID),
		slog.String("email", MaskEmail(email)),
		slog.String("ip_address", ipAddress),
		slog.Bool("email_sent", emailSent),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	)
}
