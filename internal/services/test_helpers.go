package services

import (
	"context"
	"sync"

	"github.com/BradenHooton/folio/internal/models"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	openai "github.com/sashabaranov/go-openai"
)

// MockContactNotifier implements ContactNotifier for testing
type MockContactNotifier struct {
	NotifyContactFunc func(ctx context.Context, submission models.ContactSubmission) error

	mu    sync.Mutex
	Calls []models.ContactSubmission
}

func (m *MockContactNotifier) NotifyContact(ctx context.Context, submission models.ContactSubmission) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, submission)
	m.mu.Unlock()

	if m.NotifyContactFunc != nil {
		return m.NotifyContactFunc(ctx, submission)
	}
	return nil
}

// CallCount returns the number of notifications requested
func (m *MockContactNotifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockCompleter implements Completer for testing
type MockCompleter struct {
	CompleteFunc func(ctx context.Context, req CompletionRequest) (string, error)

	mu       sync.Mutex
	Requests []CompletionRequest
}

func (m *MockCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", models.ErrCompletionUnavailable
}

// MockSESAPI implements SESAPI for testing
type MockSESAPI struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESAPI) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, params, optFns...)
	}
	return &ses.SendEmailOutput{}, nil
}

// MockChatCompletionAPI implements ChatCompletionAPI for testing
type MockChatCompletionAPI struct {
	CreateChatCompletionFunc func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

func (m *MockChatCompletionAPI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if m.CreateChatCompletionFunc != nil {
		return m.CreateChatCompletionFunc(ctx, req)
	}
	return openai.ChatCompletionResponse{}, nil
}

// NewTestContactInput returns a valid contact form body
func NewTestContactInput() ContactInput {
	return ContactInput{
		Name:    "Jane Visitor",
		Email:   "jane@example.com",
		Message: "I would like to discuss a project.",
	}
}
