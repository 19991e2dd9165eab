package authz

// HasPermission reports whether the role may perform the action on the
// resource. The resource may be any spelling known to a call site; it is
// normalized before lookup. Missing role rows and missing resource cells
// both deny.
//
// Every permission check in the system routes through this function. It is
// pure: no side effects, no error path, identical results for identical
// inputs. Safe for unsynchronized concurrent use.
func HasPermission(role Role, resource Resource, action Action) bool {
	row, ok := matrix[role]
	if !ok {
		return false
	}
	cell, ok := row[Normalize(resource)]
	if !ok {
		return false
	}
	_, ok = cell[action]
	return ok
}
