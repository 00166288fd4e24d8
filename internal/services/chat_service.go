package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/BradenHooton/folio/internal/metrics"
	"github.com/BradenHooton/folio/internal/models"
)

// Reply sources
const (
	SourceKnowledgeBase = "knowledge_base"
	SourceCompletion    = "completion"
	SourceFallback      = "fallback"
)

const (
	maxConversationContext = 10 // user messages kept for completion
	maxConversationHistory = 50 // user and assistant messages kept per session
)

// conversation is the per-session chatbot state
type conversation struct {
	visitorName string
	context     []models.ChatMessage
	history     []models.ChatMessage
	lastActive  time.Time
}

// ChatService answers chatbot messages from the knowledge base, falling back
// to a language model for anything the knowledge base does not cover
type ChatService struct {
	kb            *KnowledgeBase
	completer     Completer
	limiter       *RateLimiter
	cooldown      time.Duration
	ttl           time.Duration
	conversations *keyedStore[conversation]
	metrics       *metrics.Metrics
	logger        *slog.Logger
	now           func() time.Time
}

// ChatServiceConfig groups the chat policy knobs
type ChatServiceConfig struct {
	Cooldown        time.Duration
	ConversationTTL time.Duration
}

// NewChatService creates a ChatService. A nil completer always answers
// unknown intents with the knowledge base fallback.
func NewChatService(kb *KnowledgeBase, completer Completer, limiter *RateLimiter, cfg ChatServiceConfig, m *metrics.Metrics, logger *slog.Logger, clock func() time.Time) *ChatService {
	if clock == nil {
		clock = time.Now
	}
	return &ChatService{
		kb:            kb,
		completer:     completer,
		limiter:       limiter,
		cooldown:      cfg.Cooldown,
		ttl:           cfg.ConversationTTL,
		conversations: newKeyedStore[conversation](),
		metrics:       m,
		logger:        logger,
		now:           clock,
	}
}

// Reply answers message for the conversation sessionID. The cooldown is
// keyed by identity, so rotating session ids does not bypass it. It returns
// models.ErrRateLimitExceeded while the cooldown is running.
func (s *ChatService) Reply(ctx context.Context, identity, sessionID, message string) (models.ChatReply, error) {
	if !s.limiter.TryConsume(identity, ActionChat, s.cooldown, s.now()) {
		return models.ChatReply{}, models.ErrRateLimitExceeded
	}
	if sessionID == "" {
		sessionID = identity
	}

	var visitorName string
	var prior []models.ChatMessage
	s.conversations.with(sessionID, func(c *conversation) {
		if name, ok := ExtractName(message); ok {
			c.visitorName = name
		}
		visitorName = c.visitorName
		prior = append(prior, c.context...)
		c.lastActive = s.now()
	})

	reply := models.ChatReply{SessionID: sessionID, VisitorName: visitorName}

	if intent, ok := s.kb.DetectIntent(message); ok {
		reply.Intent = intent.Name
		reply.Source = SourceKnowledgeBase
		reply.Response = WithVisitorName(intent.Response, visitorName)
	} else {
		reply.Intent = IntentGeneral
		reply.Response, reply.Source = s.complete(ctx, message, visitorName, prior)
	}

	now := s.now().UTC()
	s.conversations.with(sessionID, func(c *conversation) {
		user := models.ChatMessage{Role: models.ChatRoleUser, Content: message, Timestamp: now}
		c.context = appendBounded(c.context, maxConversationContext, user)
		c.history = appendBounded(c.history, maxConversationHistory,
			user,
			models.ChatMessage{Role: models.ChatRoleAssistant, Content: reply.Response, Timestamp: now},
		)
		c.lastActive = now
	})

	s.metrics.ChatReply(reply.Source)
	return reply, nil
}

// Conversations returns the most recently active conversations, newest
// first, each with a copy of its history. A limit <= 0 returns all of them.
func (s *ChatService) Conversations(limit int) []models.ConversationSummary {
	var out []models.ConversationSummary
	s.conversations.each(func(sessionID string, c conversation) {
		out = append(out, models.ConversationSummary{
			SessionID:   sessionID,
			VisitorName: c.visitorName,
			LastActive:  c.lastActive,
			Messages:    append([]models.ChatMessage(nil), c.history...),
		})
	})

	sort.Slice(out, func(i, j int) bool {
		return out[i].LastActive.After(out[j].LastActive)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Sweep drops conversations idle for longer than the configured TTL
func (s *ChatService) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()
	return s.conversations.sweep(func(c *conversation) bool {
		return now.Sub(c.lastActive) > s.ttl
	})
}

func (s *ChatService) complete(ctx context.Context, message, visitorName string, prior []models.ChatMessage) (string, string) {
	if s.completer == nil {
		return s.kb.FallbackResponse(visitorName), SourceFallback
	}

	system := s.kb.SystemPrompt
	if visitorName != "" {
		system += "\nThe visitor's name is " + visitorName + "."
	}

	text, err := s.completer.Complete(ctx, CompletionRequest{
		SystemPrompt: system,
		History:      prior,
		Message:      message,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "chat completion failed, using fallback", slog.Any("error", err))
		return s.kb.FallbackResponse(visitorName), SourceFallback
	}
	return text, SourceCompletion
}

// appendBounded appends items and keeps only the newest limit entries
func appendBounded(dst []models.ChatMessage, limit int, items ...models.ChatMessage) []models.ChatMessage {
	dst = append(dst, items...)
	if over := len(dst) - limit; over > 0 {
		dst = append(dst[:0:0], dst[over:]...)
	}
	return dst
}
