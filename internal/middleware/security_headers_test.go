package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveWithHeaders(env string, req *http.Request) *httptest.ResponseRecorder {
	handler := SecurityHeaders(SecurityHeadersConfig{Env: env})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestSecurityHeaders_Always(t *testing.T) {
	w := serveWithHeaders("development", httptest.NewRequest("GET", "/api/health", nil))

	tests := []struct {
		header   string
		expected string
	}{
		{"X-Frame-Options", "DENY"},
		{"X-Content-Type-Options", "nosniff"},
		{"Referrer-Policy", "no-referrer"},
		{"Cache-Control", "no-store"},
		{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
		{"Cross-Origin-Resource-Policy", "cross-origin"},
	}

	for _, tt := range tests {
		if got := w.Header().Get(tt.header); got != tt.expected {
			t.Errorf("Header %s: got %q, want %q", tt.header, got, tt.expected)
		}
	}
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	httpsReq := httptest.NewRequest("GET", "/", nil)
	httpsReq.Header.Set("X-Forwarded-Proto", "https")

	if hsts := serveWithHeaders("production", httpsReq).Header().Get("Strict-Transport-Security"); hsts == "" {
		t.Error("expected HSTS for HTTPS in production")
	}

	plainReq := httptest.NewRequest("GET", "/", nil)
	if hsts := serveWithHeaders("production", plainReq).Header().Get("Strict-Transport-Security"); hsts != "" {
		t.Errorf("HSTS should not be sent over plain HTTP, got %q", hsts)
	}

	devReq := httptest.NewRequest("GET", "/", nil)
	devReq.Header.Set("X-Forwarded-Proto", "https")
	if hsts := serveWithHeaders("development", devReq).Header().Get("Strict-Transport-Security"); hsts != "" {
		t.Errorf("HSTS should not be sent in development, got %q", hsts)
	}
}
