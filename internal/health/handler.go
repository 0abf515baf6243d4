package health

import (
	"context"
	"net/http"
	"time"

	"github.com/atelierpoint/studio-backend/internal/database"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
)

type ComponentStatus struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Response struct {
	Status        Status                     `json:"status"`
	Timestamp     time.Time                  `json:"timestamp"`
	Version       string                     `json:"version"`
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Components    map[string]ComponentStatus `json:"components"`
}

// Handler reports liveness plus the degraded/available state of the
// content store, so browsing outages and admin outages are visible apart.
type Handler struct {
	db        *database.DB
	redis     *redis.Client
	version   string
	startTime time.Time
}

func NewHandler(db *database.DB, redisClient *redis.Client, version string) *Handler {
	return &Handler{
		db:        db,
		redis:     redisClient,
		version:   version,
		startTime: time.Now(),
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Check)
}

func (h *Handler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	components := map[string]ComponentStatus{
		"database": h.checkDatabase(ctx),
		"redis":    h.checkRedis(ctx),
	}

	// The site still serves with the store down; writes do not. That is
	// degraded, not unhealthy.
	status := StatusHealthy
	if components["database"].Status != StatusHealthy {
		status = StatusDegraded
	}

	return c.JSON(http.StatusOK, Response{
		Status:        status,
		Timestamp:     time.Now(),
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Components:    components,
	})
}

func (h *Handler) checkDatabase(ctx context.Context) ComponentStatus {
	conn, err := h.db.Conn()
	if err != nil {
		return ComponentStatus{Status: StatusDegraded, Error: "not configured"}
	}

	start := time.Now()
	sqlDB, err := conn.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		return ComponentStatus{Status: StatusDegraded, Error: err.Error()}
	}
	return ComponentStatus{Status: StatusHealthy, LatencyMs: time.Since(start).Milliseconds()}
}

func (h *Handler) checkRedis(ctx context.Context) ComponentStatus {
	if h.redis == nil {
		return ComponentStatus{Status: StatusDegraded, Error: "not configured"}
	}

	start := time.Now()
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return ComponentStatus{Status: StatusDegraded, Error: err.Error()}
	}
	return ComponentStatus{Status: StatusHealthy, LatencyMs: time.Since(start).Milliseconds()}
}
