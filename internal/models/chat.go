package models

import "time"

// Chat message roles
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of a chatbot conversation
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatReply is the chatbot's answer to a single message
type ChatReply struct {
	Response    string
	SessionID   string
	VisitorName string
	Intent      string
	Source      string // "knowledge_base", "completion" or "fallback"
}

// ConversationSummary is one chatbot session as shown on the admin dashboard
type ConversationSummary struct {
	SessionID   string        `json:"sessionId"`
	VisitorName string        `json:"visitorName"`
	LastActive  time.Time     `json:"lastActive"`
	Messages    []ChatMessage `json:"messages"`
}
