package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.LoginAttempt("rejected")
	m.LoginAttempt("rejected")
	m.LoginAttempt("locked")
	m.Threat("sql_injection")
	m.ContactEmail(true)
	m.ContactEmail(false)
	m.ChatReply("knowledge_base")

	body := scrape(t, m)
	assert.Contains(t, body, `folio_admin_login_attempts_total{outcome="rejected"} 2`)
	assert.Contains(t, body, `folio_admin_login_attempts_total{outcome="locked"} 1`)
	assert.Contains(t, body, `folio_admin_threats_total{kind="sql_injection"} 1`)
	assert.Contains(t, body, `folio_contact_emails_total{result="sent"} 1`)
	assert.Contains(t, body, `folio_contact_emails_total{result="failed"} 1`)
	assert.Contains(t, body, `folio_chat_replies_total{source="knowledge_base"} 1`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.LoginAttempt("success")
		m.Threat("basic_attack")
		m.Throttled("contact")
		m.ContactEmail(true)
		m.ChatReply("fallback")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Throttled("contact")

	body := scrape(t, m)
	assert.Contains(t, body, `folio_ratelimit_throttled_total{kind="contact"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
