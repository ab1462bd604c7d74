package org

import (
	"fmt"

	"nexus-backend/internal/middleware"
	"nexus-backend/internal/pkg/apperrors"
	"nexus-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the organization endpoints.
type Handlers struct {
	Service *Service
}

// DELETE /api/v1/organizations/me (admin role via middleware)
// Requires the exact confirmation phrase so an admin cannot fat-finger away
// the whole tenant.
func (h *Handlers) DeleteMyOrganization(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or expired token")
	}
	var body struct {
		Confirmation string `json:"confirmation"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Confirmation is required", fiber.StatusBadRequest, nil)
	}

	org, err := h.Service.GetByID(c.Context(), p.OrganizationID)
	if err != nil {
		return response.Error(c, err.Error(), apperrors.StatusOf(err), nil)
	}
	expected := fmt.Sprintf("Delete %s", org.Name)
	if body.Confirmation != expected {
		return response.Error(c, fmt.Sprintf("Confirmation text must be exactly: %s", expected), fiber.StatusUnprocessableEntity, nil)
	}

	if err := h.Service.Delete(c.Context(), p.OrganizationID); err != nil {
		return response.Error(c, err.Error(), apperrors.StatusOf(err), nil)
	}
	return response.NoContent(c)
}
