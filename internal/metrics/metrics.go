// Package metrics exposes Prometheus counters for the security and
// messaging paths. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "folio"

// Metrics owns a private registry so tests can build as many as they like
type Metrics struct {
	registry *prometheus.Registry

	loginOutcomes *prometheus.CounterVec
	threats       *prometheus.CounterVec
	throttled     *prometheus.CounterVec
	contactEmails *prometheus.CounterVec
	chatReplies   *prometheus.CounterVec
}

// New registers every counter plus the Go runtime and process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		loginOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Subsystem: "admin", Name: "login_attempts_total", Help: "Admin login attempts by outcome."},
			[]string{"outcome"},
		),
		threats: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Subsystem: "admin", Name: "threats_total", Help: "Suspicious login inputs by kind."},
			[]string{"kind"},
		),
		throttled: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Subsystem: "ratelimit", Name: "throttled_total", Help: "Requests refused by a cooldown."},
			[]string{"kind"},
		),
		contactEmails: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Subsystem: "contact", Name: "emails_total", Help: "Contact notification emails by result."},
			[]string{"result"},
		),
		chatReplies: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Subsystem: "chat", Name: "replies_total", Help: "Chatbot replies by source."},
			[]string{"source"},
		),
	}

	m.registry.MustRegister(
		m.loginOutcomes,
		m.threats,
		m.throttled,
		m.contactEmails,
		m.chatReplies,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) LoginAttempt(outcome string) {
	if m == nil {
		return
	}
	m.loginOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Threat(kind string) {
	if m == nil {
		return
	}
	m.threats.WithLabelValues(kind).Inc()
}

func (m *Metrics) Throttled(kind string) {
	if m == nil {
		return
	}
	m.throttled.WithLabelValues(kind).Inc()
}

// ContactEmail records a notification attempt; sent=false covers both
// delivery failures and an unconfigured mailer.
func (m *Metrics) ContactEmail(sent bool) {
	if m == nil {
		return
	}
	result := "failed"
	if sent {
		result = "sent"
	}
	m.contactEmails.WithLabelValues(result).Inc()
}

func (m *Metrics) ChatReply(source string) {
	if m == nil {
		return
	}
	m.chatReplies.WithLabelValues(source).Inc()
}
