package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const unknownBackend = "unknown"

// Pinger is satisfied by every task store backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and whether the task store answers.
type HealthHandler struct {
	store     Pinger
	backend   string
	startTime time.Time
	version   string
}

// NewHealthHandler names the backend from the store when it can report one,
// as repository.InstrumentedStore does.
func NewHealthHandler(store Pinger, version string) *HealthHandler {
	backend := unknownBackend
	if b, ok := store.(interface{ Backend() string }); ok {
		backend = b.Backend()
	}
	return &HealthHandler{
		store:     store,
		backend:   backend,
		startTime: time.Now(),
		version:   version,
	}
}

type StoreCheck struct {
	Backend   string `json:"backend"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
}

type ReadinessResponse struct {
	Status  string     `json:"status"`
	Version string     `json:"version,omitempty"`
	Uptime  string     `json:"uptime"`
	Store   StoreCheck `json:"store"`
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness fails with 503 while the store does not answer a ping. The
// ping error itself stays in the server log.
func (h *HealthHandler) Readiness(c *gin.Context) {
	check, ok := h.pingStore(c.Request.Context(), 5*time.Second)

	status, code := "ready", http.StatusOK
	if !ok {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, ReadinessResponse{
		Status:  status,
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Store:   check,
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	if _, ok := h.pingStore(c.Request.Context(), 3*time.Second); !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "store unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

func (h *HealthHandler) pingStore(ctx context.Context, timeout time.Duration) (StoreCheck, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	check := StoreCheck{
		Backend:   h.backend,
		Status:    "up",
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		check.Status = "down"
		return check, false
	}
	return check, true
}
