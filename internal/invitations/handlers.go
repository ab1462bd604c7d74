package invitations

import (
	"nexus-backend/internal/middleware"
	"nexus-backend/internal/pkg/apperrors"
	"nexus-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the invitation endpoints.
type Handlers struct {
	Service *Service
}

// POST /api/v1/invitations (invitations:create permission via middleware)
func (h *Handlers) CreateInvitation(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or expired token")
	}
	var body struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" || body.Name == "" || body.Role == "" {
		return response.Error(c, "Email, name and role are required", fiber.StatusBadRequest, nil)
	}

	inv, err := h.Service.Create(c.Context(), CreateInvitationInput{
		OrganizationID: p.OrganizationID,
		Email:          body.Email,
		Name:           body.Name,
		Role:           body.Role,
		InvitedBy:      p.UserID,
		InviterName:    p.Name,
	})
	if err != nil {
		return response.Error(c, err.Error(), apperrors.StatusOf(err), nil)
	}
	return response.SuccessCreated(c, "Invitation sent successfully", inv)
}

// GET /api/v1/invitations (invitations:read permission via middleware)
func (h *Handlers) ListPending(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or expired token")
	}
	invs, err := h.Service.ListPending(c.Context(), p.OrganizationID)
	if err != nil {
		return response.Error(c, err.Error(), apperrors.StatusOf(err), nil)
	}
	return response.Success(c, "Invitations fetched successfully", invs)
}

// GET /api/v1/invitations/preview/:token (public, no auth)
// Lets the frontend show "You've been invited to join Acme" before the
// invitee is redirected to OAuth.
func (h *Handlers) Preview(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return response.Error(c, "Invitation token is required", fiber.StatusBadRequest, nil)
	}
	preview, err := h.Service.Preview(c.Context(), token)
	if err != nil {
		return response.Error(c, err.Error(), apperrors.StatusOf(err), nil)
	}
	return response.Success(c, "Invitation token verified", preview)
}
