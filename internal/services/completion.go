package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BradenHooton/folio/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

// CompletionRequest is one chatbot turn handed to a language model
type CompletionRequest struct {
	SystemPrompt string
	History      []models.ChatMessage
	Message      string
}

// Completer produces a free-form chatbot answer
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ChatCompletionAPI is the subset of the go-openai client used here
type ChatCompletionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// CompleterConfig configures an OpenAI-compatible endpoint such as OpenRouter
type CompleterConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// OpenAICompleter talks to any OpenAI-compatible chat completions API
type OpenAICompleter struct {
	client      ChatCompletionAPI
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewOpenAICompleter builds a go-openai client pointed at cfg.BaseURL
func NewOpenAICompleter(cfg CompleterConfig) *OpenAICompleter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return NewOpenAICompleterWithClient(openai.NewClientWithConfig(clientConfig), cfg)
}

// NewOpenAICompleterWithClient wraps an existing client
func NewOpenAICompleterWithClient(client ChatCompletionAPI, cfg CompleterConfig) *OpenAICompleter {
	return &OpenAICompleter{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

// Complete sends the system prompt, prior turns and the new message
func (c *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	for _, m := range req.History {
		role := openai.ChatMessageRoleUser
		if m.Role == models.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Message})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrCompletionUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", models.ErrCompletionUnavailable)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty response", models.ErrCompletionUnavailable)
	}
	return content, nil
}
