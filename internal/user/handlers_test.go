package user

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nexus-backend/internal/constants"
	"nexus-backend/internal/domain"
	"nexus-backend/internal/middleware"
	"nexus-backend/internal/org"
	"nexus-backend/internal/tokens"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type handlerFixture struct {
	app    *fiber.App
	db     *gorm.DB
	tokens *tokens.Service
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	db := newTestDB(t)
	tokenService := tokens.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)

	handlers := &Handlers{Service: &Service{DB: db}, Orgs: &org.Service{DB: db}}
	requireAuth := middleware.RequireAuth(middleware.AuthConfig{Tokens: tokenService, DB: db})

	app := fiber.New()
	group := app.Group("/api/v1/users", requireAuth)
	group.Get("/", middleware.AuthorizePermission(constants.UsersRead), handlers.ListUsers)
	group.Get("/me", handlers.Me)
	group.Patch("/:user_id/role", middleware.AuthorizePermission(constants.UsersUpdateRole), handlers.UpdateRole)
	group.Delete("/:user_id", middleware.AuthorizePermission(constants.UsersDelete), handlers.DeleteUser)

	return &handlerFixture{app: app, db: db, tokens: tokenService}
}

func (f *handlerFixture) request(t *testing.T, method, path string, body interface{}, as *domain.User) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		access, err := f.tokens.Issue(as.ID, as.OrganizationID, tokens.Access)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+access)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestListUsersEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	orgA := seedOrg(t, f.db, "Acme")
	viewer := seedUser(t, f.db, orgA.ID, "viewer@acme.test", constants.Viewer)
	seedUser(t, f.db, orgA.ID, "admin@acme.test", constants.Admin)

	resp := f.request(t, "GET", "/api/v1/users", nil, viewer)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []domain.User `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 2)
}

func TestMeEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	orgA := seedOrg(t, f.db, "Acme")
	admin := seedUser(t, f.db, orgA.ID, "admin@acme.test", constants.Admin)

	resp := f.request(t, "GET", "/api/v1/users/me", nil, admin)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "admin@acme.test", body.Data["email"])
	assert.Equal(t, "Acme", body.Data["organization_name"])
}

func TestUpdateRoleEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	orgA := seedOrg(t, f.db, "Acme")
	admin := seedUser(t, f.db, orgA.ID, "admin@acme.test", constants.Admin)
	viewer := seedUser(t, f.db, orgA.ID, "viewer@acme.test", constants.Viewer)

	resp := f.request(t, "PATCH", "/api/v1/users/"+viewer.ID.String()+"/role", fiber.Map{"role": constants.Manager}, admin)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored domain.User
	require.NoError(t, f.db.First(&stored, "id = ?", viewer.ID).Error)
	assert.Equal(t, constants.Manager, stored.Role)
}

func TestUpdateRoleEndpointViewerForbidden(t *testing.T) {
	f := newHandlerFixture(t)
	orgA := seedOrg(t, f.db, "Acme")
	viewer := seedUser(t, f.db, orgA.ID, "viewer@acme.test", constants.Viewer)
	other := seedUser(t, f.db, orgA.ID, "other@acme.test", constants.Viewer)

	resp := f.request(t, "PATCH", "/api/v1/users/"+other.ID.String()+"/role", fiber.Map{"role": constants.Manager}, viewer)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateRoleEndpointCrossOrg(t *testing.T) {
	f := newHandlerFixture(t)
	orgA := seedOrg(t, f.db, "Acme")
	orgB := seedOrg(t, f.db, "Globex")
	admin := seedUser(t, f.db, orgA.ID, "admin@acme.test", constants.Admin)
	outsider := seedUser(t, f.db, orgB.ID, "user@globex.test", constants.Viewer)

	resp := f.request(t, "PATCH", "/api/v1/users/"+outsider.ID.String()+"/role", fiber.Map{"role": constants.Manager}, admin)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Access denied")
}

func TestUpdateRoleEndpointBadUserID(t *testing.T) {
	f := newHandlerFixture(t)
	orgA := seedOrg(t, f.db, "Acme")
	admin := seedUser(t, f.db, orgA.ID, "admin@acme.test", constants.Admin)

	resp := f.request(t, "PATCH", "/api/v1/users/not-a-uuid/role", fiber.Map{"role": constants.Manager}, admin)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteUserEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	orgA := seedOrg(t, f.db, "Acme")
	admin := seedUser(t, f.db, orgA.ID, "admin@acme.test", constants.Admin)
	viewer := seedUser(t, f.db, orgA.ID, "viewer@acme.test", constants.Viewer)

	resp := f.request(t, "DELETE", "/api/v1/users/"+viewer.ID.String(), nil, admin)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestDeleteUserEndpointManagerForbidden(t *testing.T) {
	f := newHandlerFixture(t)
	orgA := seedOrg(t, f.db, "Acme")
	manager := seedUser(t, f.db, orgA.ID, "manager@acme.test", constants.Manager)
	viewer := seedUser(t, f.db, orgA.ID, "viewer@acme.test", constants.Viewer)

	resp := f.request(t, "DELETE", "/api/v1/users/"+viewer.ID.String(), nil, manager)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteUserEndpointSelf(t *testing.T) {
	f := newHandlerFixture(t)
	orgA := seedOrg(t, f.db, "Acme")
	admin := seedUser(t, f.db, orgA.ID, "admin@acme.test", constants.Admin)

	resp := f.request(t, "DELETE", "/api/v1/users/"+admin.ID.String(), nil, admin)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
