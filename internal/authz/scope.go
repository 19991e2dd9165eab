package authz

// Authorize is the coarse entry-point check: it requires an authenticated
// session and a matrix grant for the declared (resource, action). Record
// ownership is checked separately by CheckScope once a record is in hand.
func Authorize(sess Session, resource Resource, action Action) error {
	if !sess.Authenticated() {
		return ErrUnauthenticated
	}
	if !HasPermission(sess.Role, resource, action) {
		return ErrPermissionDenied
	}
	return nil
}

// CheckScope verifies that the session's group owns the record carrying
// ownerGroupID. Callers invoke it after the record fetch succeeded and
// before any mutation or response: a nonexistent record surfaces as
// not-found without scope ever being evaluated.
func CheckScope(sess Session, ownerGroupID int64) error {
	if !sess.Authenticated() {
		return ErrUnauthenticated
	}
	if sess.GroupID != ownerGroupID {
		return ErrScopeDenied
	}
	return nil
}
