package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	identity *Identity
}

func (f *fakeProvider) AuthURL(state string) string {
	return "https://provider.test/auth?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) Exchange(_ context.Context, _ string) (*Identity, error) {
	return f.identity, nil
}

func newHandlerApp(t *testing.T, provider IdentityProvider) (*fiber.App, *Service) {
	t.Helper()
	svc, _ := newTestService(t)
	svc.Provider = provider

	h := &Handlers{
		Service:     svc,
		FrontendURL: "http://localhost:5173",
		RefreshTTL:  7 * 24 * time.Hour,
	}
	app := fiber.New()
	group := app.Group("/api/v1/auth")
	group.Get("/google", h.GoogleAuth)
	group.Get("/callback", h.GoogleCallback)
	group.Post("/refresh", h.Refresh)
	group.Post("/logout", h.Logout)
	return app, svc
}

func refreshCookieOf(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == refreshCookieName {
			return c
		}
	}
	return nil
}

func TestGoogleAuthReturnsURL(t *testing.T) {
	app, _ := newHandlerApp(t, &fakeProvider{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/auth/google?flow=register&org_name=Acme", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			AuthURL string `json:"auth_url"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Data.AuthURL, "https://provider.test/auth")
	assert.Contains(t, body.Data.AuthURL, "register")
}

func TestGoogleAuthRejectsUnknownFlow(t *testing.T) {
	app, _ := newHandlerApp(t, &fakeProvider{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/auth/google?flow=admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGoogleCallbackRegisterFlow(t *testing.T) {
	app, _ := newHandlerApp(t, &fakeProvider{identity: &Identity{Email: "founder@acme.test", Name: "Founder"}})

	state, err := json.Marshal(oauthState{Flow: FlowRegister, OrgName: "Acme"})
	require.NoError(t, err)
	target := "/api/v1/auth/callback?code=ok&state=" + url.QueryEscape(string(state))

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	location := resp.Header.Get("Location")
	assert.Contains(t, location, "http://localhost:5173/auth/callback?access_token=")

	cookie := refreshCookieOf(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
}

func TestGoogleCallbackLoginFlowNoAccount(t *testing.T) {
	app, _ := newHandlerApp(t, &fakeProvider{identity: &Identity{Email: "ghost@acme.test", Name: "Ghost"}})

	state, err := json.Marshal(oauthState{Flow: FlowLogin})
	require.NoError(t, err)
	target := "/api/v1/auth/callback?code=ok&state=" + url.QueryEscape(string(state))

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRefreshEndpoint(t *testing.T) {
	app, svc := newHandlerApp(t, &fakeProvider{})

	admin, err := svc.RegisterFlow(context.Background(), &Identity{Email: "founder@acme.test", Name: "Founder"}, "Acme")
	require.NoError(t, err)
	pair, err := svc.IssuePair(admin)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: pair.RefreshToken})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Data.AccessToken)
	require.NotNil(t, refreshCookieOf(resp))
}

func TestRefreshEndpointMissingCookie(t *testing.T) {
	app, _ := newHandlerApp(t, &fakeProvider{})

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/auth/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshEndpointRejectsAccessTokenCookie(t *testing.T) {
	app, svc := newHandlerApp(t, &fakeProvider{})

	admin, err := svc.RegisterFlow(context.Background(), &Identity{Email: "founder@acme.test", Name: "Founder"}, "Acme")
	require.NoError(t, err)
	pair, err := svc.IssuePair(admin)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: pair.AccessToken})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutClearsCookie(t *testing.T) {
	app, _ := newHandlerApp(t, &fakeProvider{})

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/auth/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := refreshCookieOf(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}
