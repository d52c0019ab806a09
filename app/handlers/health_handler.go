package handlers

import (
	"context"
	"time"

	"github.com/amirphl/Yata-no-Kagami/app/dto"
	"github.com/amirphl/Yata-no-Kagami/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthHandlerInterface reports service health
type HealthHandlerInterface interface {
	Health(c fiber.Ctx) error
}

type HealthHandler struct {
	db      *gorm.DB
	rc      *redis.Client
	version string
}

// NewHealthHandler creates a health handler; rc may be nil when caching is disabled
func NewHealthHandler(db *gorm.DB, rc *redis.Client, version string) HealthHandlerInterface {
	return &HealthHandler{db: db, rc: rc, version: version}
}

// Health checks the database and cache
// @Summary Health Check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse} "Service is healthy"
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse} "A dependency is down"
// @Router /api/health [get]
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"database": "ok"}
	healthy := true

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unavailable"
		healthy = false
	}

	if h.rc != nil {
		checks["cache"] = "ok"
		if err := h.rc.Ping(ctx).Err(); err != nil {
			// redirects fall back to the database
			checks["cache"] = "unavailable"
		}
	} else {
		checks["cache"] = "disabled"
	}

	resp := dto.HealthResponse{
		Status:    "ok",
		Version:   h.version,
		Timestamp: utils.UTCNowRFC3339(),
		Checks:    checks,
	}
	if !healthy {
		resp.Status = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.APIResponse{
			Success: false,
			Message: "Service is degraded",
			Data:    resp,
		})
	}
	return successResponse(c, fiber.StatusOK, "Service is healthy", resp)
}
