package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/VitaminP8/yatube/internal/cache"
)

// sqlDB is what readiness needs from the database handle.
type sqlDB interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db           sqlDB
	redis        *redis.Client
	log          *zap.Logger
	checkTimeout time.Duration
}

// NewHealthHandler accepts nil db (memory storage) and nil redis (cache disabled).
func NewHealthHandler(db sqlDB, redisClient *redis.Client, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:           db,
		redis:        redisClient,
		log:          log,
		checkTimeout: 2 * time.Second,
	}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.checkTimeout)
	defer cancel()

	checks := map[string]string{}
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
		}
	}
	if h.redis != nil {
		if err := cache.Ping(ctx, h.redis); err != nil {
			checks["redis"] = err.Error()
		}
	}

	if len(checks) > 0 {
		h.log.Warn("readiness check failed", zap.Any("checks", checks))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "fail",
			"checks": checks,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
