package health

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handlers exposes the liveness endpoint.
type Handlers struct {
	DB *gorm.DB
}

// GET /health
func (h *Handlers) Health(c *fiber.Ctx) error {
	dbStatus := "ok"
	if h.DB != nil {
		if sqlDB, err := h.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "unavailable"
		}
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}
