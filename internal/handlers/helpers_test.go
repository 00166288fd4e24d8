package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BradenHooton/folio/internal/models"
	"github.com/BradenHooton/folio/internal/services"
	pkghttp "github.com/BradenHooton/folio/pkg/http"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "9.9.9.9")
	return req
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"), "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, pkghttp.StatusError, resp.Status)
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockAdminService implements handlers.AdminServiceInterface for testing
type MockAdminService struct {
	LoginFunc      func(ctx context.Context, identity, userAgent, username, password string) models.AttemptOutcome
	AuthorizedFunc func(token string) bool
	LogoutFunc     func(identity, userAgent, token string)
	DashboardFunc  func() models.DashboardData
}

func (m *MockAdminService) Login(ctx context.Context, identity, userAgent, username, password string) models.AttemptOutcome {
	if m.LoginFunc == nil {
		return models.AttemptOutcome{Kind: models.OutcomeRejected, AttemptsRemaining: 2}
	}
	return m.LoginFunc(ctx, identity, userAgent, username, password)
}

func (m *MockAdminService) Authorized(token string) bool {
	if m.AuthorizedFunc == nil {
		return false
	}
	return m.AuthorizedFunc(token)
}

func (m *MockAdminService) Logout(identity, userAgent, token string) {
	if m.LogoutFunc != nil {
		m.LogoutFunc(identity, userAgent, token)
	}
}

func (m *MockAdminService) Dashboard() models.DashboardData {
	if m.DashboardFunc == nil {
		return models.DashboardData{}
	}
	return m.DashboardFunc()
}

// MockContactService implements handlers.ContactServiceInterface for testing
type MockContactService struct {
	SubmitFunc func(ctx context.Context, identity, userAgent string, in services.ContactInput) (models.ContactSubmission, bool, error)
}

func (m *MockContactService) Submit(ctx context.Context, identity, userAgent string, in services.ContactInput) (models.ContactSubmission, bool, error) {
	if m.SubmitFunc == nil {
		return models.ContactSubmission{}, true, nil
	}
	return m.SubmitFunc(ctx, identity, userAgent, in)
}

// MockChatService implements handlers.ChatServiceInterface for testing
type MockChatService struct {
	ReplyFunc func(ctx context.Context, identity, sessionID, message string) (models.ChatReply, error)
}

func (m *MockChatService) Reply(ctx context.Context, identity, sessionID, message string) (models.ChatReply, error) {
	if m.ReplyFunc == nil {
		return models.ChatReply{Response: "ok", SessionID: sessionID}, nil
	}
	return m.ReplyFunc(ctx, identity, sessionID, message)
}
