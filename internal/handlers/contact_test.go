package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BradenHooton/folio/internal/handlers"
	"github.com/BradenHooton/folio/internal/metrics"
	"github.com/BradenHooton/folio/internal/models"
	"github.com/BradenHooton/folio/internal/services"
	pkghttp "github.com/BradenHooton/folio/pkg/http"
	"github.com/stretchr/testify/assert"
)

func newContactHandler(mock *MockContactService) *handlers.ContactHandler {
	return handlers.NewContactHandler(mock, &pkghttp.IPConfig{}, metrics.New())
}

func validContactBody() map[string]string {
	return map[string]string{
		"name":    " Jane ",
		"email":   "jane@example.com",
		"message": "Let's build something.",
	}
}

func TestContactSubmit_Success_Returns200(t *testing.T) {
	var got services.ContactInput
	mock := &MockContactService{
		SubmitFunc: func(ctx context.Context, identity, userAgent string, in services.ContactInput) (models.ContactSubmission, bool, error) {
			got = in
			return models.ContactSubmission{ID: "c1"}, false, nil
		},
	}
	h := newContactHandler(mock)

	w := httptest.NewRecorder()
	h.Submit(w, NewTestRequest(t, "POST", "/api/contact", validContactBody()))

	var resp handlers.ContactResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "success", resp.Status)
	assert.False(t, resp.EmailSent)
	assert.Equal(t, "Jane", got.Name)
}

func TestContactSubmit_Validation(t *testing.T) {
	tests := []struct {
		name  string
		patch map[string]string
	}{
		{"missing name", map[string]string{"name": ""}},
		{"whitespace name", map[string]string{"name": "   "}},
		{"missing email", map[string]string{"email": ""}},
		{"invalid email", map[string]string{"email": "not-an-email"}},
		{"missing message", map[string]string{"message": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mock := &MockContactService{
				SubmitFunc: func(ctx context.Context, identity, userAgent string, in services.ContactInput) (models.ContactSubmission, bool, error) {
					called = true
					return models.ContactSubmission{}, true, nil
				},
			}
			h := newContactHandler(mock)

			body := validContactBody()
			for k, v := range tt.patch {
				body[k] = v
			}
			w := httptest.NewRecorder()
			h.Submit(w, NewTestRequest(t, "POST", "/api/contact", body))

			AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
			assert.False(t, called, "invalid submissions never reach the cooldown")
		})
	}
}

func TestContactSubmit_Throttled_Returns429(t *testing.T) {
	mock := &MockContactService{
		SubmitFunc: func(ctx context.Context, identity, userAgent string, in services.ContactInput) (models.ContactSubmission, bool, error) {
			return models.ContactSubmission{}, false, models.ErrRateLimitExceeded
		},
	}
	h := newContactHandler(mock)

	w := httptest.NewRecorder()
	h.Submit(w, NewTestRequest(t, "POST", "/api/contact", validContactBody()))

	AssertErrorResponse(t, w, http.StatusTooManyRequests, "rate_limit_exceeded")
}

func TestContactSubmit_UnexpectedError_Returns500(t *testing.T) {
	mock := &MockContactService{
		SubmitFunc: func(ctx context.Context, identity, userAgent string, in services.ContactInput) (models.ContactSubmission, bool, error) {
			return models.ContactSubmission{}, false, errors.New("boom")
		},
	}
	h := newContactHandler(mock)

	w := httptest.NewRecorder()
	h.Submit(w, NewTestRequest(t, "POST", "/api/contact", validContactBody()))

	AssertErrorResponse(t, w, http.StatusInternalServerError, "internal_error")
}
