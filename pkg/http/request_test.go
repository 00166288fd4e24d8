package http_test

import (
	"net/http/httptest"
	"testing"

	pkghttp "github.com/BradenHooton/folio/pkg/http"
	"github.com/stretchr/testify/assert"
)

func TestClientIdentity_ForwardedForFirstEntry(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.42, 10.0.0.5")
	req.Header.Set("X-Real-IP", "192.168.1.1")

	assert.Equal(t, "203.0.113.42", pkghttp.ClientIdentity(req, nil))
}

func TestClientIdentity_FallsBackToRealIP(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("X-Real-IP", " 192.168.1.1 ")

	assert.Equal(t, "192.168.1.1", pkghttp.ClientIdentity(req, nil))
}

func TestClientIdentity_UnknownWithoutHeaders(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.RemoteAddr = "203.0.113.10:54321"

	assert.Equal(t, "unknown", pkghttp.ClientIdentity(req, nil))
}

func TestClientIdentity_EmptyConfigTrustsHeaders(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4")

	ip := pkghttp.ClientIdentity(req, &pkghttp.IPConfig{TrustedProxies: []string{}})

	assert.Equal(t, "1.2.3.4", ip)
}

func TestClientIdentity_UntrustedPeerIgnoresHeaders(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.RemoteAddr = "203.0.113.10:54321"
	req.Header.Set("X-Forwarded-For", "127.0.0.1, 203.0.113.10")

	config := &pkghttp.IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}

	assert.Equal(t, "203.0.113.10", pkghttp.ClientIdentity(req, config))
}

func TestClientIdentity_TrustedPeerUsesHeaders(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.RemoteAddr = "10.0.0.5:54321"
	req.Header.Set("X-Forwarded-For", "203.0.113.42, 10.0.0.5")

	config := &pkghttp.IPConfig{TrustedProxies: []string{"invalid-cidr", "10.0.0.0/8"}}

	assert.Equal(t, "203.0.113.42", pkghttp.ClientIdentity(req, config))
}

func TestClientIdentity_IPv6TrustedProxy(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.RemoteAddr = "[::1]:54321"
	req.Header.Set("X-Forwarded-For", "2001:db8::1")

	config := &pkghttp.IPConfig{TrustedProxies: []string{"::1/128"}}

	assert.Equal(t, "2001:db8::1", pkghttp.ClientIdentity(req, config))
}

func TestSessionToken_TrimsHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Session-ID", "  abc123 ")

	assert.Equal(t, "abc123", pkghttp.SessionToken(req))
}

func TestUserAgent_Default(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Del("User-Agent")

	assert.Equal(t, "unknown", pkghttp.UserAgent(req))
}
