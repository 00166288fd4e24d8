package logger

import (
	"log/slog"
	"net/url"
	"strings"
)

// sensitiveParams are query keys whose presence redacts the whole query string
var sensitiveParams = []string{"password", "token", "secret", "apikey", "api_key", "session", "sessionid", "email", "auth"}

// MaskEmail masks an address for logging: "jane@example.com" becomes "j***@*******.com".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return "[invalid-email]"
	}

	masked := local[:1] + strings.Repeat("*", len(local)-1)

	if dot := strings.LastIndex(domain, "."); dot > 0 {
		domain = strings.Repeat("*", dot) + domain[dot:]
	}
	return masked + "@" + domain
}

// RedactedAttr hides value in production
func RedactedAttr(key, value, env string) slog.Attr {
	if env == "production" {
		return slog.String(key, "[REDACTED]")
	}
	return slog.String(key, value)
}

// SensitiveQuery reports whether any query key looks like a credential.
// Unparseable queries are treated as sensitive.
func SensitiveQuery(rawQuery string) bool {
	if rawQuery == "" {
		return false
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return true
	}
	for key := range values {
		key = strings.ToLower(key)
		for _, p := range sensitiveParams {
			if strings.Contains(key, p) {
				return true
			}
		}
	}
	return false
}
