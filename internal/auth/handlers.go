package auth

import (
	"encoding/json"
	"net/url"
	"time"

	"nexus-backend/internal/domain"
	"nexus-backend/internal/pkg/apperrors"
	"nexus-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const refreshCookieName = "refresh_token"

// Handlers exposes the OAuth and token endpoints.
type Handlers struct {
	Service     *Service
	FrontendURL string
	RefreshTTL  time.Duration
	Secure      bool
}

type oauthState struct {
	Flow            string `json:"flow"`
	OrgName         string `json:"org_name,omitempty"`
	InvitationToken string `json:"invitation_token,omitempty"`
}

// GET /api/v1/auth/google?flow=register|login|invite&org_name=&invitation_token=
func (h *Handlers) GoogleAuth(c *fiber.Ctx) error {
	flow := c.Query("flow")
	if flow != FlowRegister && flow != FlowLogin && flow != FlowInvite {
		return response.Error(c, "Invalid auth flow", fiber.StatusBadRequest, nil)
	}
	state := oauthState{Flow: flow}
	if flow == FlowRegister {
		state.OrgName = c.Query("org_name")
	}
	if flow == FlowInvite {
		state.InvitationToken = c.Query("invitation_token")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return response.Success(c, "Authorization URL generated", fiber.Map{
		"auth_url": h.Service.Provider.AuthURL(string(raw)),
	})
}

// GET /api/v1/auth/callback?code=&state=
// Completes the OAuth exchange, runs the requested flow, and hands the
// browser back to the frontend: access token in the redirect query, refresh
// token in an HttpOnly SameSite cookie.
func (h *Handlers) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return response.Error(c, "Authorization code is required", fiber.StatusBadRequest, nil)
	}
	var state oauthState
	if err := json.Unmarshal([]byte(c.Query("state")), &state); err != nil {
		return response.Error(c, "Invalid auth flow", fiber.StatusBadRequest, nil)
	}

	ident, err := h.Service.Provider.Exchange(c.Context(), code)
	if err != nil {
		return response.Error(c, ErrOAuthExchange.Error(), apperrors.StatusOf(ErrOAuthExchange), nil)
	}

	var u *domain.User
	switch state.Flow {
	case FlowRegister:
		u, err = h.Service.RegisterFlow(c.Context(), ident, state.OrgName)
	case FlowLogin:
		u, err = h.Service.LoginFlow(c.Context(), ident)
	case FlowInvite:
		u, err = h.Service.InviteFlow(c.Context(), state.InvitationToken, ident)
	default:
		return response.Error(c, ErrInvalidFlow.Error(), fiber.StatusBadRequest, nil)
	}
	if err != nil {
		return response.Error(c, err.Error(), apperrors.StatusOf(err), nil)
	}

	pair, err := h.Service.IssuePair(u)
	if err != nil {
		return err
	}
	h.setRefreshCookie(c, pair.RefreshToken)

	redirect := h.FrontendURL + "/auth/callback?" + url.Values{"access_token": {pair.AccessToken}}.Encode()
	return c.Redirect(redirect, fiber.StatusFound)
}

// POST /api/v1/auth/refresh
// The refresh token is read from its cookie only; it is never accepted as a
// bearer credential (the kind tag in the signed payload enforces the same
// rule from the other direction).
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshCookieName)
	if refreshToken == "" {
		return response.Error(c, ErrRefreshTokenMissing.Error(), fiber.StatusUnauthorized, nil)
	}
	pair, _, err := h.Service.Refresh(c.Context(), refreshToken)
	if err != nil {
		return response.Error(c, err.Error(), apperrors.StatusOf(err), nil)
	}
	h.setRefreshCookie(c, pair.RefreshToken)
	return response.Success(c, "Token refreshed", fiber.Map{"access_token": pair.AccessToken})
}

// POST /api/v1/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	h.clearRefreshCookie(c)
	return response.Success(c, "Logged out successfully", nil)
}

func (h *Handlers) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.RefreshTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Lax",
	})
}

func (h *Handlers) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Lax",
	})
}
