// internal/handlers/health.go
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/yfarouk/dealstack-be/internal/adapters/db"
	"github.com/yfarouk/dealstack-be/internal/pkg/config"
)

// HealthHandler reports liveness and readiness of the API and its
// backing services.
type HealthHandler struct {
	db        *db.Database
	redis     *redis.Client
	asynq     *asynq.Inspector
	config    *config.Config
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(
	database *db.Database,
	redisClient *redis.Client,
	asynqInspector *asynq.Inspector,
	cfg *config.Config,
	logger *slog.Logger,
) *HealthHandler {
	return &HealthHandler{
		db:        database,
		redis:     redisClient,
		asynq:     asynqInspector,
		config:    cfg,
		logger:    logger.With(slog.String("handler", "health")),
		startTime: time.Now(),
	}
}

// ProbeResult is the outcome of a single dependency probe
type ProbeResult struct {
	Status  string                 `json:"status"`
	Latency string                 `json:"latency,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthReport is the full /health response body
type HealthReport struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Uptime      string                 `json:"uptime"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ProbeResult `json:"services"`
	Runtime     RuntimeStats           `json:"runtime"`
}

// RuntimeStats is a snapshot of the Go runtime
type RuntimeStats struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	HeapAllocMB   uint64 `json:"heap_alloc_mb"`
	HeapSysMB     uint64 `json:"heap_sys_mb"`
	NumGC         uint32 `json:"num_gc"`
}

type probeFn func(context.Context) ProbeResult

// Health handles GET /health. Any failed probe degrades the overall
// status and flips the response to 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	probes := map[string]probeFn{
		"database": h.probeDatabase,
		"redis":    h.probeRedis,
	}
	if h.asynq != nil {
		probes["queue"] = h.probeQueue
	}

	report := HealthReport{
		Status:      "healthy",
		Version:     h.config.App.Version,
		Environment: h.config.App.Environment,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now(),
		Services:    make(map[string]ProbeResult, len(probes)),
		Runtime:     snapshotRuntime(),
	}

	for name, probe := range probes {
		result := probe(ctx)
		report.Services[name] = result
		if result.Status != "healthy" {
			report.Status = "degraded"
			h.logger.WarnContext(ctx, "health probe failed",
				slog.String("service", name),
				slog.String("error", result.Error))
		}
	}

	code := http.StatusOK
	if report.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	h.writeReport(ctx, w, code, report)
}

// Readiness handles GET /ready. Unlike /health it only gates on the
// stores a request cannot be served without.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	details := map[string]string{
		"database": "ready",
		"redis":    "ready",
	}
	ready := true

	if err := h.db.Ping(ctx); err != nil {
		details["database"] = "not ready"
		ready = false
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		details["redis"] = "not ready"
		ready = false
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}
	h.writeReport(ctx, w, code, map[string]interface{}{
		"ready":   ready,
		"details": details,
	})
}

func (h *HealthHandler) writeReport(ctx context.Context, w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode health response",
			slog.String("error", err.Error()))
	}
}

func (h *HealthHandler) probeDatabase(ctx context.Context) ProbeResult {
	start := time.Now()

	if err := h.db.Ping(ctx); err != nil {
		return ProbeResult{Status: "unhealthy", Error: err.Error()}
	}

	return ProbeResult{
		Status:  "healthy",
		Latency: time.Since(start).String(),
		Details: h.db.Health(ctx),
	}
}

func (h *HealthHandler) probeRedis(ctx context.Context) ProbeResult {
	start := time.Now()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		return ProbeResult{Status: "unhealthy", Error: err.Error()}
	}

	stats := h.redis.PoolStats()
	return ProbeResult{
		Status:  "healthy",
		Latency: time.Since(start).String(),
		Details: map[string]interface{}{
			"total_conns": stats.TotalConns,
			"idle_conns":  stats.IdleConns,
			"stale_conns": stats.StaleConns,
		},
	}
}

func (h *HealthHandler) probeQueue(ctx context.Context) ProbeResult {
	start := time.Now()

	queues, err := h.asynq.Queues()
	if err != nil {
		return ProbeResult{Status: "unhealthy", Error: err.Error()}
	}

	details := map[string]interface{}{}
	for _, queue := range queues {
		info, err := h.asynq.GetQueueInfo(queue)
		if err != nil {
			continue
		}
		details[queue] = map[string]interface{}{
			"size":    info.Size,
			"active":  info.Active,
			"pending": info.Pending,
			"retry":   info.Retry,
		}
	}

	if servers, err := h.asynq.Servers(); err == nil {
		details["servers"] = len(servers)
	}

	return ProbeResult{
		Status:  "healthy",
		Latency: time.Since(start).String(),
		Details: details,
	}
}

func snapshotRuntime() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		HeapAllocMB:   mem.HeapAlloc / 1024 / 1024,
		HeapSysMB:     mem.HeapSys / 1024 / 1024,
		NumGC:         mem.NumGC,
	}
}
