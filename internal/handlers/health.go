package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	pkghttp "github.com/BradenHooton/folio/pkg/http"
)

// Health status values
const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
)

// HealthConfig describes what the health endpoint reports
type HealthConfig struct {
	Version         string
	Environment     string
	Region          string
	EmailConfigured bool
	ChatConfigured  bool
}

// HealthResponse is the /api/health body
type HealthResponse struct {
	Status        string            `json:"status"`
	Timestamp     string            `json:"timestamp"`
	Version       string            `json:"version"`
	Environment   string            `json:"environment"`
	Services      map[string]string `json:"services"`
	Configuration map[string]string `json:"configuration"`
	Performance   HealthPerformance `json:"performance"`
	Platform      HealthPlatform    `json:"platform"`
}

// HealthPerformance reports request latency and Go heap figures
type HealthPerformance struct {
	ResponseTime string            `json:"responseTime"`
	MemoryUsage  map[string]string `json:"memoryUsage"`
}

// HealthPlatform identifies the runtime
type HealthPlatform struct {
	Runtime string `json:"runtime"`
	Region  string `json:"region"`
}

// HealthHandler reports service status and configuration completeness.
type HealthHandler struct {
	config HealthConfig
	now    func() time.Time
}

// NewHealthHandler creates a new HealthHandler. A nil clock uses time.Now.
func NewHealthHandler(config HealthConfig, clock func() time.Time) *HealthHandler {
	if clock == nil {
		clock = time.Now
	}
	if config.Region == "" {
		config.Region = "unknown"
	}
	return &HealthHandler{config: config, now: clock}
}

// Check handles GET /api/health. Missing email or chat configuration reports
// degraded with 503.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	configuration := map[string]string{
		"email":      configuredLabel(h.config.EmailConfigured),
		"openrouter": configuredLabel(h.config.ChatConfigured),
	}

	status := HealthHealthy
	code := http.StatusOK
	if !h.config.EmailConfigured || !h.config.ChatConfigured {
		status = HealthDegraded
		code = http.StatusServiceUnavailable
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	resp := HealthResponse{
		Status:      status,
		Timestamp:   h.now().UTC().Format(time.RFC3339),
		Version:     h.config.Version,
		Environment: h.config.Environment,
		Services: map[string]string{
			"contact": "operational",
			"admin":   "operational",
			"chatbot": "operational",
			"storage": "in_memory",
		},
		Configuration: configuration,
		Performance: HealthPerformance{
			ResponseTime: fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
			MemoryUsage: map[string]string{
				"sys":       megabytes(mem.Sys),
				"heapInuse": megabytes(mem.HeapInuse),
				"heapAlloc": megabytes(mem.HeapAlloc),
			},
		},
		Platform: HealthPlatform{
			Runtime: runtime.Version(),
			Region:  h.config.Region,
		},
	}

	pkghttp.WriteJSON(w, code, resp)
}

func configuredLabel(ok bool) string {
	if ok {
		return "configured"
	}
	return "missing"
}

func megabytes(b uint64) string {
	return fmt.Sprintf("%dMB", b/1024/1024)
}
