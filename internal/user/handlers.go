package user

import (
	"nexus-backend/internal/middleware"
	"nexus-backend/internal/org"
	"nexus-backend/internal/pkg/apperrors"
	"nexus-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers exposes the membership endpoints.
type Handlers struct {
	Service *Service
	Orgs    *org.Service
}

// GET /api/v1/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or expired token")
	}
	users, err := h.Service.ListByOrganization(c.Context(), p.OrganizationID)
	if err != nil {
		return response.Error(c, err.Error(), apperrors.StatusOf(err), nil)
	}
	return response.Success(c, "Users fetched successfully", users)
}

// GET /api/v1/users/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or expired token")
	}
	u, err := h.Service.GetByID(c.Context(), p.UserID)
	if err != nil {
		return response.Error(c, err.Error(), apperrors.StatusOf(err), nil)
	}
	orgName := ""
	if o, err := h.Orgs.GetByID(c.Context(), p.OrganizationID); err == nil {
		orgName = o.Name
	}
	return response.Success(c, "User fetched successfully", fiber.Map{
		"id":                u.ID,
		"organization_id":   u.OrganizationID,
		"organization_name": orgName,
		"email":             u.Email,
		"name":              u.Name,
		"profile_picture":   u.ProfilePicture,
		"role":              u.Role,
		"status":            u.Status,
		"created_at":        u.CreatedAt,
	})
}

// PATCH /api/v1/users/:user_id/role (users:update_role permission via middleware)
func (h *Handlers) UpdateRole(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or expired token")
	}
	targetID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.Error(c, "Invalid user ID", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil || body.Role == "" {
		return response.Error(c, "Role is required", fiber.StatusBadRequest, nil)
	}

	updated, err := h.Service.UpdateRole(c.Context(), targetID, body.Role, p)
	if err != nil {
		return response.Error(c, err.Error(), apperrors.StatusOf(err), nil)
	}
	return response.Success(c, "Role updated successfully", updated)
}

// DELETE /api/v1/users/:user_id (users:delete permission via middleware)
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or expired token")
	}
	targetID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.Error(c, "Invalid user ID", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteUser(c.Context(), targetID, p); err != nil {
		return response.Error(c, err.Error(), apperrors.StatusOf(err), nil)
	}
	return response.NoContent(c)
}
