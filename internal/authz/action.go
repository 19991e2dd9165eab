package authz

// Action is an operation kind a principal may attempt on a resource.
type Action string

const (
	ActionCreate      Action = "create"
	ActionRead        Action = "read"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionExport      Action = "export"
	ActionApprove     Action = "approve"
	ActionManageUsers Action = "manage_users"
)

// Actions returns every action kind the permission matrix understands.
func Actions() []Action {
	return []Action{
		ActionCreate,
		ActionRead,
		ActionUpdate,
		ActionDelete,
		ActionExport,
		ActionApprove,
		ActionManageUsers,
	}
}
