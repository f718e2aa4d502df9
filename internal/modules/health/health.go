package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/deepjyoti31/spec10x/internal/pkg/redis"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
	rc *pkgredis.Client
}

func NewHandler(db *gorm.DB, rc *pkgredis.Client) *Handler {
	return &Handler{db: db, rc: rc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.check)
}

// GET /health
// Reports component status; 503 when a dependency is down.
func (h *Handler) check(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = err.Error()
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		dbStatus = err.Error()
	}

	redisStatus := "ok"
	if err := h.rc.Ping(c.Request.Context()); err != nil {
		redisStatus = err.Error()
	}

	code := http.StatusOK
	status := "ok"
	if dbStatus != "ok" || redisStatus != "ok" {
		code = http.StatusServiceUnavailable
		status = "degraded"
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"redis":    redisStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
