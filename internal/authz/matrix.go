package authz

// actionSet is a membership set over Action.
type actionSet map[Action]struct{}

func grant(actions ...Action) actionSet {
	set := make(actionSet, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

var (
	readOnly   = grant(ActionRead)
	readExport = grant(ActionRead, ActionExport)
	fullCRUD   = grant(ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionExport)
	fullDocs   = grant(ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionExport, ActionApprove)
)

// matrix is the Role x Resource -> allowed-actions policy table. It is built
// once from the literals below and never mutated afterwards; concurrent
// readers need no synchronization. Absent cells mean the empty action set:
// unknown roles and unknown resources are denied everything. Rows are spelled
// out in full, with no inheritance between roles.
var matrix = map[Role]map[Resource]actionSet{
	RoleAdmin: {
		ResourceCompany:  fullCRUD,
		ResourceClient:   fullDocs,
		ResourceSupplier: fullDocs,
		ResourceProduct:  fullCRUD,
		ResourceSale:     fullDocs,
		ResourcePurchase: fullDocs,
		ResourceInvoice:  fullDocs,
		ResourceStock:    fullCRUD,
		ResourceEmployee: fullCRUD,
		ResourceBoat:     fullCRUD,
		ResourcePayment:  fullDocs,
		ResourceReport:   grant(ActionCreate, ActionRead, ActionExport),
		ResourceUser:     grant(ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManageUsers),
	},
	RoleManager: {
		ResourceCompany:  grant(ActionRead, ActionUpdate),
		ResourceClient:   fullDocs,
		ResourceSupplier: fullDocs,
		ResourceProduct:  fullCRUD,
		ResourceSale:     fullDocs,
		ResourcePurchase: fullDocs,
		ResourceInvoice:  fullDocs,
		ResourceStock:    grant(ActionCreate, ActionRead, ActionUpdate, ActionExport),
		ResourceEmployee: grant(ActionCreate, ActionRead, ActionUpdate, ActionExport),
		ResourceBoat:     fullCRUD,
		ResourcePayment:  fullDocs,
		ResourceReport:   readExport,
	},
	RoleStock: {
		ResourceProduct:  fullCRUD,
		ResourceStock:    grant(ActionCreate, ActionRead, ActionUpdate, ActionExport),
		ResourcePurchase: readOnly,
		ResourceSupplier: readOnly,
		ResourceBoat:     readOnly,
	},
	RoleAccountant: {
		ResourceCompany:  readOnly,
		ResourceClient:   readExport,
		ResourceSupplier: readExport,
		ResourceSale:     readExport,
		ResourcePurchase: readExport,
		ResourceInvoice:  grant(ActionCreate, ActionRead, ActionUpdate, ActionExport),
		ResourcePayment:  grant(ActionCreate, ActionRead, ActionUpdate, ActionExport, ActionApprove),
		ResourceReport:   readExport,
	},
	RoleViewer: {
		ResourceCompany:  readOnly,
		ResourceClient:   readOnly,
		ResourceSupplier: readOnly,
		ResourceProduct:  readOnly,
		ResourceSale:     readOnly,
		ResourcePurchase: readOnly,
		ResourceInvoice:  readOnly,
		ResourceStock:    readOnly,
		ResourceEmployee: readOnly,
		ResourceBoat:     readOnly,
		ResourcePayment:  readOnly,
		ResourceReport:   readExport,
	},
}

// ActionsFor returns the declared action set for a (role, canonical
// resource) pair, in the fixed Actions() order. Used by the permissions
// listing endpoint and by tests asserting matrix totality.
func ActionsFor(role Role, resource Resource) []Action {
	cell, ok := matrix[role][Normalize(resource)]
	if !ok {
		return nil
	}
	out := make([]Action, 0, len(cell))
	for _, a := range Actions() {
		if _, ok := cell[a]; ok {
			out = append(out, a)
		}
	}
	return out
}
