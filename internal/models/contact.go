package models

import "time"

// ContactSubmission is an accepted contact form message
type ContactSubmission struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	ProjectType      string    `json:"projectType"`
	Message          string    `json:"message"`
	PreferredContact string    `json:"preferredContact"`
	Timestamp        time.Time `json:"timestamp"`
	IPAddress        string    `json:"ip"`
	UserAgent        string    `json:"userAgent"`
	Status           string    `json:"status"`
}
