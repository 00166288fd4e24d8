package services

import (
	"crypto/subtle"
	"sort"
	"time"

	"github.com/BradenHooton/folio/internal/models"
	pkgauth "github.com/BradenHooton/folio/pkg/auth"
)

// AccessGuardConfig holds the admin credential and lockout policy
type AccessGuardConfig struct {
	Username        string
	PasswordHash    string // bcrypt
	MaxAttempts     int
	LockoutDuration time.Duration
	SessionDuration time.Duration
}

// DefaultAccessGuardConfig returns the standard policy: 3 attempts, 10 minute
// lockout, 1 hour sessions.
func DefaultAccessGuardConfig(username, passwordHash string) AccessGuardConfig {
	return AccessGuardConfig{
		Username:        username,
		PasswordHash:    passwordHash,
		MaxAttempts:     3,
		LockoutDuration: 10 * time.Minute,
		SessionDuration: 1 * time.Hour,
	}
}

// loginRecord is the per-identity attempt state
type loginRecord struct {
	failures    int
	lockedUntil time.Time
}

// AccessGuard tracks consecutive failed admin logins per client identity,
// imposes lockouts, and owns the admin sessions minted on success.
//
// All state lives in process memory and is lost on restart. Identities are
// whatever the HTTP layer extracted from client headers, so the lockout is a
// deterrent, not an authentication boundary.
type AccessGuard struct {
	config   AccessGuardConfig
	attempts *keyedStore[loginRecord]
	sessions *sessionStore
	now      func() time.Time
}

// NewAccessGuard creates an AccessGuard. A nil clock uses time.Now.
func NewAccessGuard(config AccessGuardConfig, clock func() time.Time) *AccessGuard {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if clock == nil {
		clock = time.Now
	}
	return &AccessGuard{
		config:   config,
		attempts: newKeyedStore[loginRecord](),
		sessions: newSessionStore(config.SessionDuration),
		now:      clock,
	}
}

// RecordLoginAttempt evaluates one login attempt for identity.
//
// A locked identity is answered without looking at the credentials and
// without touching its state. Otherwise a match resets the failure count and
// mints a session; a mismatch adds 1 failure, or 2 when the input looks like
// a probe, and reaching MaxAttempts converts the count into a lockout.
func (g *AccessGuard) RecordLoginAttempt(identity, username, password string) models.AttemptOutcome {
	var outcome models.AttemptOutcome

	g.attempts.with(identity, func(rec *loginRecord) {
		now := g.now()
		if rec.lockedUntil.After(now) {
			outcome = lockedOutcome(rec.lockedUntil.Sub(now))
			return
		}

		threat := ClassifyThreat(username, password)

		if g.credentialsMatch(username, password) {
			rec.failures = 0
			rec.lockedUntil = time.Time{}
			outcome = models.AttemptOutcome{
				Kind:   models.OutcomeSuccess,
				Token:  g.sessions.issue(now),
				Threat: threat,
			}
			return
		}

		weight := 1
		if threat.Suspicious() {
			weight = 2
		}
		rec.failures += weight

		if rec.failures >= g.config.MaxAttempts {
			rec.lockedUntil = now.Add(g.config.LockoutDuration)
			rec.failures = 0
			outcome = lockedOutcome(g.config.LockoutDuration)
			outcome.LockoutStarted = true
			outcome.Threat = threat
			return
		}

		outcome = models.AttemptOutcome{
			Kind:              models.OutcomeRejected,
			AttemptsRemaining: g.config.MaxAttempts - rec.failures,
			Threat:            threat,
		}
	})

	return outcome
}

// IsSessionValid reports whether token names a live authenticated session.
// It mutates: an expired session is deleted as part of the check.
func (g *AccessGuard) IsSessionValid(token string) bool {
	return g.sessions.valid(token, g.now())
}

// InvalidateSession deletes the session for token. It is idempotent and
// reports whether a session was present.
func (g *AccessGuard) InvalidateSession(token string) bool {
	return g.sessions.invalidate(token)
}

// Snapshot returns the current attempt state of every tracked identity,
// ordered by identity.
func (g *AccessGuard) Snapshot() []models.LoginRecordSnapshot {
	now := g.now()
	out := make([]models.LoginRecordSnapshot, 0, g.attempts.len())

	g.attempts.each(func(identity string, rec loginRecord) {
		snap := models.LoginRecordSnapshot{Identity: identity, FailureCount: rec.failures}
		if rec.lockedUntil.After(now) {
			until := rec.lockedUntil
			snap.LockedUntil = &until
		}
		out = append(out, snap)
	})

	sort.Slice(out, func(i, j int) bool { return out[i].Identity < out[j].Identity })
	return out
}

// Sweep drops identities with no failures and no active lockout, and
// expired sessions. Lazy expiry stays authoritative; this only bounds memory.
func (g *AccessGuard) Sweep() (records, sessions int) {
	now := g.now()
	records = g.attempts.sweep(func(rec *loginRecord) bool {
		return rec.failures == 0 && !rec.lockedUntil.After(now)
	})
	sessions = g.sessions.sweep(now)
	return records, sessions
}

// ActiveSessions returns the number of stored sessions, expired or not
func (g *AccessGuard) ActiveSessions() int {
	return g.sessions.len()
}

// credentialsMatch runs the bcrypt comparison whether or not the username matched.
func (g *AccessGuard) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.config.Username)) == 1
	passOK := pkgauth.ComparePassword(g.config.PasswordHash, password) == nil
	return userOK && passOK
}

// lockedOutcome rounds the remaining lockout up to whole seconds
func lockedOutcome(remaining time.Duration) models.AttemptOutcome {
	seconds := int((remaining + time.Second - 1) / time.Second)
	return models.AttemptOutcome{Kind: models.OutcomeLocked, RemainingSeconds: seconds}
}
