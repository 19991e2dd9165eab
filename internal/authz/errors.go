package authz

import "errors"

// Rejection sentinels. Every deny is a deterministic policy outcome, not an
// infrastructure fault: there is no transient-failure mode and no retry.
var (
	// ErrUnauthenticated indicates no signed-in principal on the request.
	ErrUnauthenticated = errors.New("authz: unauthenticated")
	// ErrPermissionDenied indicates the role lacks the (resource, action)
	// pair in the matrix. Unknown roles and resources collapse into this.
	ErrPermissionDenied = errors.New("authz: permission denied")
	// ErrScopeDenied indicates the principal's group does not own the
	// record. Externally it must be indistinguishable from not-found; the
	// HTTP layer maps it accordingly.
	ErrScopeDenied = errors.New("authz: tenant scope denied")
)
