package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jane@example.com", "j***@*******.com"},
		{"a@b.co.uk", "a@****.uk"},
		{"x@localhost", "x@localhost"},
		{"not-an-email", "[invalid-email]"},
		{"@example.com", "[invalid-email]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskEmail(tt.in), tt.in)
	}
}

func TestSensitiveQuery(t *testing.T) {
	assert.True(t, SensitiveQuery("sessionId=abc"))
	assert.True(t, SensitiveQuery("Password=x"))
	assert.True(t, SensitiveQuery("%zz"))
	assert.False(t, SensitiveQuery("page=2"))
	assert.False(t, SensitiveQuery(""))
}

func TestAuditLogger_RedactsUsernameInProduction(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)), "production")

	al.LogAuthAttempt(AuditEvent{
		EventType: "admin_login",
		Username:  "fasin_admin",
		IPAddress: "1.2.3.4",
		Success:   false,
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "[REDACTED]", entry["username"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "1.2.3.4", entry["ip_address"])
}

func TestAuditLogger_ContactMasksEmail(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)), "development")

	al.LogContactSubmission("id-1", "jane@example.com", "1.2.3.4", true)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "j***@*******.com", entry["email"])
	assert.Equal(t, true, entry["email_sent"])
}
