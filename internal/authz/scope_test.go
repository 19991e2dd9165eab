package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	manager := Session{PrincipalID: 7, Role: RoleManager, GroupID: 3, CompanyID: 12}

	assert.NoError(t, Authorize(manager, ResourceClient, ActionCreate))
	assert.ErrorIs(t, Authorize(manager, ResourceUser, ActionManageUsers), ErrPermissionDenied)
	assert.ErrorIs(t, Authorize(Session{}, ResourceClient, ActionRead), ErrUnauthenticated)

	// Unknown role on an otherwise valid session collapses into a coarse deny.
	ghost := Session{PrincipalID: 9, Role: "contractor", GroupID: 3}
	for _, res := range CanonicalResources() {
		assert.ErrorIs(t, Authorize(ghost, res, ActionRead), ErrPermissionDenied)
	}
}

func TestCheckScope(t *testing.T) {
	sess := Session{PrincipalID: 7, Role: RoleManager, GroupID: 3, CompanyID: 12}

	require.NoError(t, CheckScope(sess, 3))
	assert.ErrorIs(t, CheckScope(sess, 4), ErrScopeDenied)
	assert.ErrorIs(t, CheckScope(Session{}, 3), ErrUnauthenticated)
}

func TestScopeIsGroupLevel(t *testing.T) {
	// Two principals in different companies of the same group both pass: the
	// ownership boundary is the group, company is a filtering attribute.
	a := Session{PrincipalID: 1, Role: RoleManager, GroupID: 3, CompanyID: 10}
	b := Session{PrincipalID: 2, Role: RoleManager, GroupID: 3, CompanyID: 11}

	assert.NoError(t, CheckScope(a, 3))
	assert.NoError(t, CheckScope(b, 3))

	other := Session{PrincipalID: 3, Role: RoleAdmin, GroupID: 4, CompanyID: 10}
	assert.ErrorIs(t, CheckScope(other, 3), ErrScopeDenied)
}
