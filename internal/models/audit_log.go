package models

import "time"

// Event types recorded in the activity log
const (
	EventTypeLoginAttempt = "login_attempt"
	EventTypeLockout      = "lockout"
	EventTypeLogout       = "logout"
)

// LoginAttemptEvent records one admin login attempt
type LoginAttemptEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	IPAddress string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	Username  string    `json:"username"`
	Success   bool      `json:"success"`
	Outcome   string    `json:"outcome"`
}

// SecurityEvent records a detected threat or lockout
type SecurityEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
	IPAddress string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	Username  string    `json:"username"`
	Severity  string    `json:"severity"`
}
