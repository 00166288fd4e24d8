package http

import (
	"net"
	"net/http"
	"strings"
)

// UnknownIdentity is used when no client address can be determined
const UnknownIdentity = "unknown"

// SessionHeader carries the admin session token on every authenticated request
const SessionHeader = "X-Session-ID"

// IPConfig holds configuration for client identity extraction
type IPConfig struct {
	TrustedProxies []string // CIDR ranges of trusted proxies
}

// ClientIdentity returns the key used for lockout and rate limiting.
//
// The value is the first entry of X-Forwarded-For, else X-Real-IP, else
// "unknown". Both headers are client-controlled: unless TrustedProxies is
// configured the identity is self-reported and trivially spoofable, so the
// lockout and cooldowns keyed by it are a deterrent rather than a security
// boundary. With TrustedProxies set, headers are honoured only when the
// connection comes from one of those ranges; otherwise the peer address is used.
func ClientIdentity(r *http.Request, config *IPConfig) string {
	if config != nil && len(config.TrustedProxies) > 0 {
		remoteIP := getRemoteAddr(r)
		if !isTrustedProxy(remoteIP, config.TrustedProxies) {
			return remoteIP
		}
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return UnknownIdentity
}

// SessionToken returns the admin session token sent by the client, if any
func SessionToken(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(SessionHeader))
}

// UserAgent returns the request user agent or "unknown"
func UserAgent(r *http.Request) string {
	if ua := r.Header.Get("User-Agent"); ua != "" {
		return ua
	}
	return UnknownIdentity
}

// getRemoteAddr extracts the IP address from RemoteAddr (removing port if present)
func getRemoteAddr(r *http.Request) string {
	if r.RemoteAddr != "" {
		if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return ip
		}
		return r.RemoteAddr
	}
	return UnknownIdentity
}

// isTrustedProxy checks if an IP address is within any of the trusted proxy CIDR ranges
func isTrustedProxy(ip string, trustedProxies []string) bool {
	clientIP := net.ParseIP(ip)
	if clientIP == nil {
		return false
	}

	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			continue // Skip invalid CIDR ranges
		}
		if ipNet.Contains(clientIP) {
			return true
		}
	}

	return false
}
