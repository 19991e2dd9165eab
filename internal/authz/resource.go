package authz

import "strings"

// Resource identifies a business-entity kind. The permission matrix only
// understands the canonical set below; Normalize folds every call-site
// spelling onto it first.
type Resource string

const (
	ResourceCompany  Resource = "company"
	ResourceClient   Resource = "client"
	ResourceSupplier Resource = "supplier"
	ResourceProduct  Resource = "product"
	ResourceSale     Resource = "sale"
	ResourcePurchase Resource = "purchase"
	ResourceInvoice  Resource = "invoice"
	ResourceStock    Resource = "stock"
	ResourceEmployee Resource = "employee"
	ResourceBoat     Resource = "boat"
	ResourcePayment  Resource = "payment"
	ResourceReport   Resource = "report"
	ResourceUser     Resource = "user"
)

// CanonicalResources returns the full canonical resource set.
func CanonicalResources() []Resource {
	return []Resource{
		ResourceCompany,
		ResourceClient,
		ResourceSupplier,
		ResourceProduct,
		ResourceSale,
		ResourcePurchase,
		ResourceInvoice,
		ResourceStock,
		ResourceEmployee,
		ResourceBoat,
		ResourcePayment,
		ResourceReport,
		ResourceUser,
	}
}

// aliases folds legacy, plural and compound call-site spellings onto the
// canonical resource set. Many-to-one; keys are stored lowercase.
var aliases = map[Resource]Resource{
	// legacy and compound document names
	"purchaseorder":   ResourcePurchase,
	"purchase_order":  ResourcePurchase,
	"purchaseorders":  ResourcePurchase,
	"purchase_orders": ResourcePurchase,
	"salesorder":      ResourceSale,
	"sales_order":     ResourceSale,
	"saleorder":       ResourceSale,
	"sale_order":      ResourceSale,
	"customer":        ResourceClient,
	"customers":       ResourceClient,
	"vendor":          ResourceSupplier,
	"vendors":         ResourceSupplier,
	"article":         ResourceProduct,
	"articles":        ResourceProduct,
	"item":            ResourceProduct,
	"items":           ResourceProduct,
	"inventory":       ResourceStock,
	"stock_item":      ResourceStock,
	"staff":           ResourceEmployee,
	"personnel":       ResourceEmployee,
	"vessel":          ResourceBoat,
	"vessels":         ResourceBoat,

	// plural spellings used by older route groups
	"companies": ResourceCompany,
	"clients":   ResourceClient,
	"suppliers": ResourceSupplier,
	"products":  ResourceProduct,
	"sales":     ResourceSale,
	"purchases": ResourcePurchase,
	"invoices":  ResourceInvoice,
	"employees": ResourceEmployee,
	"boats":     ResourceBoat,
	"payments":  ResourcePayment,
	"reports":   ResourceReport,
	"users":     ResourceUser,
}

// Normalize resolves any call-site resource spelling to its canonical form.
// Lookup misses return the lowercased input unchanged: unknown resources are
// handled by the matrix's deny-by-default rule, not here. Never fails.
func Normalize(resource Resource) Resource {
	r := Resource(strings.ToLower(strings.TrimSpace(string(resource))))
	if canonical, ok := aliases[r]; ok {
		return canonical
	}
	return r
}
