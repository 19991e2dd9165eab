package authz

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPermissionScenarios(t *testing.T) {
	cases := []struct {
		name     string
		role     Role
		resource Resource
		action   Action
		want     bool
	}{
		{"admin deletes client", RoleAdmin, ResourceClient, ActionDelete, true},
		{"viewer cannot delete client", RoleViewer, ResourceClient, ActionDelete, false},
		{"viewer reads client", RoleViewer, ResourceClient, ActionRead, true},
		{"manager creates purchase", RoleManager, ResourcePurchase, ActionCreate, true},
		{"stock has no user permissions", RoleStock, ResourceUser, ActionManageUsers, false},
		{"stock cannot read users either", RoleStock, ResourceUser, ActionRead, false},
		{"accountant approves payment", RoleAccountant, ResourcePayment, ActionApprove, true},
		{"accountant cannot delete invoice", RoleAccountant, ResourceInvoice, ActionDelete, false},
		{"manager has no user administration", RoleManager, ResourceUser, ActionManageUsers, false},
		{"admin manages users", RoleAdmin, ResourceUser, ActionManageUsers, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasPermission(tc.role, tc.resource, tc.action))
		})
	}
}

func TestHasPermissionDenyByDefault(t *testing.T) {
	// Unknown role: denied everything, for every resource and action.
	for _, res := range CanonicalResources() {
		for _, act := range Actions() {
			assert.False(t, HasPermission(Role("intern"), res, act),
				"unknown role must be denied %s on %s", act, res)
		}
	}

	// Unknown resource: denied for every defined role.
	for _, role := range Roles() {
		for _, act := range Actions() {
			assert.False(t, HasPermission(role, Resource("warehouse_zone"), act))
		}
	}

	// Empty inputs fall through to deny as well.
	assert.False(t, HasPermission("", ResourceClient, ActionRead))
	assert.False(t, HasPermission(RoleAdmin, ResourceClient, Action("")))
}

func TestHasPermissionMatchesDeclaredMatrix(t *testing.T) {
	// Every decision must be exactly membership in the declared cell: no
	// implicit inheritance between roles, no cross-talk between cells.
	for _, role := range Roles() {
		for _, res := range CanonicalResources() {
			declared := make(map[Action]bool)
			for _, a := range ActionsFor(role, res) {
				declared[a] = true
			}
			for _, act := range Actions() {
				assert.Equal(t, declared[act], HasPermission(role, res, act),
					"%s/%s/%s", role, res, act)
			}
		}
	}
}

func TestHasPermissionConcurrent(t *testing.T) {
	// Decisions for independent sessions must not interfere. Run with -race.
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		role := Roles()[i%len(Roles())]
		wg.Add(1)
		go func(role Role) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				for _, res := range CanonicalResources() {
					_ = HasPermission(role, res, ActionRead)
				}
			}
		}(role)
	}
	wg.Wait()

	require.True(t, HasPermission(RoleAdmin, ResourceClient, ActionDelete))
	require.False(t, HasPermission(RoleViewer, ResourceClient, ActionDelete))
}
