package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(Viewer))
	assert.True(t, IsValidRole(Manager))
	assert.True(t, IsValidRole(Admin))
	assert.False(t, IsValidRole("owner"))
	assert.False(t, IsValidRole(""))
	assert.False(t, IsValidRole("Admin"))
}

func TestHasMinimumRole(t *testing.T) {
	assert.True(t, HasMinimumRole(Admin, Viewer))
	assert.True(t, HasMinimumRole(Admin, Manager))
	assert.True(t, HasMinimumRole(Admin, Admin))
	assert.True(t, HasMinimumRole(Manager, Viewer))
	assert.True(t, HasMinimumRole(Manager, Manager))
	assert.True(t, HasMinimumRole(Viewer, Viewer))

	assert.False(t, HasMinimumRole(Viewer, Manager))
	assert.False(t, HasMinimumRole(Viewer, Admin))
	assert.False(t, HasMinimumRole(Manager, Admin))
}

func TestHasMinimumRoleUnknownRoles(t *testing.T) {
	assert.False(t, HasMinimumRole("superuser", Viewer))
	assert.False(t, HasMinimumRole(Admin, "superuser"))
	assert.False(t, HasMinimumRole("", ""))
}
