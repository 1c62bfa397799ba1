package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivePermissionsSuperAdmin(t *testing.T) {
	u := User{Role: RoleSuperAdmin}

	for _, pageID := range []string{"tickets", "users", "anything-at-all"} {
		perms := u.EffectivePermissions(pageID)
		assert.ElementsMatch(t, AllPageActions, perms)
		for _, action := range AllPageActions {
			assert.True(t, u.Can(pageID, action))
		}
	}
}

func TestEffectivePermissionsRegularUser(t *testing.T) {
	u := User{
		Role: RoleUser,
		PagePermissions: []PagePermission{
			{PageID: "tickets", Permissions: []PageAction{ActionView, ActionAdd}},
		},
	}

	assert.True(t, u.Can("tickets", ActionView))
	assert.True(t, u.Can("tickets", ActionAdd))
	assert.False(t, u.Can("tickets", ActionDelete))
	assert.False(t, u.Can("expenses", ActionView))
}

func TestTogglePermissionCreatesEntry(t *testing.T) {
	perms := TogglePermission(nil, "expenses", ActionView, true)

	require.Len(t, perms, 1)
	assert.Equal(t, "expenses", perms[0].PageID)
	assert.Equal(t, []PageAction{ActionView}, perms[0].Permissions)
}

func TestTogglePermissionEnableIsIdempotent(t *testing.T) {
	perms := TogglePermission(nil, "expenses", ActionView, true)
	perms = TogglePermission(perms, "expenses", ActionView, true)

	require.Len(t, perms, 1)
	assert.Equal(t, []PageAction{ActionView}, perms[0].Permissions)
}

func TestTogglePermissionDisableDropsEmptyEntry(t *testing.T) {
	perms := []PagePermission{
		{PageID: "tickets", Permissions: []PageAction{ActionView}},
		{PageID: "expenses", Permissions: []PageAction{ActionView, ActionEdit}},
	}

	perms = TogglePermission(perms, "tickets", ActionView, false)

	require.Len(t, perms, 1)
	assert.Equal(t, "expenses", perms[0].PageID)
}

func TestTogglePermissionDisableKeepsOtherActions(t *testing.T) {
	perms := []PagePermission{
		{PageID: "expenses", Permissions: []PageAction{ActionView, ActionEdit}},
	}

	perms = TogglePermission(perms, "expenses", ActionEdit, false)

	require.Len(t, perms, 1)
	assert.Equal(t, []PageAction{ActionView}, perms[0].Permissions)
}

func TestTogglePermissionDisableMissingIsNoop(t *testing.T) {
	perms := []PagePermission{
		{PageID: "expenses", Permissions: []PageAction{ActionView}},
	}

	out := TogglePermission(perms, "tickets", ActionView, false)

	assert.Equal(t, perms, out)
}
