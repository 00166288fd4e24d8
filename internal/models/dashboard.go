package models

import "time"

// DashboardData is the admin dashboard payload, built only from events the
// process has actually observed since it started
type DashboardData struct {
	Submissions   []ContactSubmission   `json:"submissions"`
	SecurityLogs  []SecurityEvent       `json:"securityLogs"`
	LoginEvents   []LoginAttemptEvent   `json:"loginEvents"`
	LoginAttempts []LoginRecordSnapshot `json:"loginAttempts"`
	Conversations []ConversationSummary `json:"conversations"`
	Analytics     DashboardAnalytics    `json:"analytics"`
}

// DashboardAnalytics holds running totals since process start
type DashboardAnalytics struct {
	TotalSubmissions int64      `json:"totalSubmissions"`
	SecurityEvents   int64      `json:"securityEvents"`
	LoginAttempts    int64      `json:"loginAttempts"`
	ActiveSessions   int        `json:"activeSessions"`
	LastLogin        *time.Time `json:"lastLogin"`
}
