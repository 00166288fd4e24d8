package middleware

import (
	"net/http"
	"time"

	"github.com/BradenHooton/folio/internal/metrics"
	pkghttp "github.com/BradenHooton/folio/pkg/http"
	"github.com/go-chi/httprate"
)

// RateLimitConfig holds the coarse burst limit applied to every API route
type RateLimitConfig struct {
	RequestsPerMinute int
}

// RateLimitByIdentity limits requests per client identity, keyed the same way
// as the login guard and the cooldowns. It sits in front of the per-action
// cooldowns and only caps raw request volume.
func RateLimitByIdentity(config RateLimitConfig, ipConfig *pkghttp.IPConfig, m *metrics.Metrics) func(next http.Handler) http.Handler {
	return httprate.Limit(
		config.RequestsPerMinute,
		1*time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return pkghttp.ClientIdentity(r, ipConfig), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			m.Throttled("burst")
			pkghttp.WriteTooManyRequests(w, "Too many requests. Please slow down.")
		}),
	)
}
