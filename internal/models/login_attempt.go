package models

import "time"

// OutcomeKind classifies the result of a login attempt
type OutcomeKind string

const (
	OutcomeSuccess  OutcomeKind = "success"
	OutcomeRejected OutcomeKind = "rejected"
	OutcomeLocked   OutcomeKind = "locked"
)

// AttemptOutcome is the value returned for every login attempt.
// Only the fields relevant to Kind are populated.
type AttemptOutcome struct {
	Kind              OutcomeKind
	Token             string // Success
	AttemptsRemaining int    // Rejected
	RemainingSeconds  int    // Locked
	LockoutStarted    bool   // Locked: this attempt imposed the lockout
	Threat            ThreatKind
}

// ThreatKind names the signal raised by threat classification
type ThreatKind string

const (
	ThreatNone         ThreatKind = ""
	ThreatSQLInjection ThreatKind = "sql_injection"
	ThreatBasicAttack  ThreatKind = "basic_attack"
)

// Suspicious reports whether the attempt carries any threat signal
func (t ThreatKind) Suspicious() bool {
	return t != ThreatNone
}

// LoginRecordSnapshot is a point-in-time copy of one identity's attempt state
type LoginRecordSnapshot struct {
	Identity     string     `json:"ip"`
	FailureCount int        `json:"count"`
	LockedUntil  *time.Time `json:"lockedUntil,omitempty"`
}

// Session is an authenticated admin session keyed by an opaque token
type Session struct {
	Authenticated bool
	IssuedAt      time.Time
}
