package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAliases(t *testing.T) {
	cases := map[Resource]Resource{
		"PurchaseOrder":  ResourcePurchase,
		"purchase_order": ResourcePurchase,
		"SalesOrder":     ResourceSale,
		"Customer":       ResourceClient,
		"customers":      ResourceClient,
		"Vendor":         ResourceSupplier,
		"Inventory":      ResourceStock,
		"Vessel":         ResourceBoat,
		"Staff":          ResourceEmployee,
		"invoices":       ResourceInvoice,
		"users":          ResourceUser,
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "alias %q", in)
	}
}

func TestNormalizeIdentityFallback(t *testing.T) {
	// Canonical names map to themselves.
	for _, res := range CanonicalResources() {
		assert.Equal(t, res, Normalize(res))
	}
	// Unknown names pass through (lowercased) for the matrix to deny.
	assert.Equal(t, Resource("warehouse_zone"), Normalize("warehouse_zone"))
	assert.Equal(t, Resource("warehouse_zone"), Normalize("  Warehouse_Zone "))
}

func TestAliasStability(t *testing.T) {
	// An alias must decide identically to its canonical resource for every
	// role and action; otherwise a legacy call site would carry its own
	// policy.
	for alias, canonical := range aliases {
		for _, role := range append(Roles(), Role("unknown")) {
			for _, act := range Actions() {
				assert.Equal(t,
					HasPermission(role, canonical, act),
					HasPermission(role, alias, act),
					"alias %q vs %q for %s/%s", alias, canonical, role, act)
			}
		}
	}
}

func TestAliasesResolveToCanonical(t *testing.T) {
	canonical := make(map[Resource]bool)
	for _, res := range CanonicalResources() {
		canonical[res] = true
	}
	for alias, target := range aliases {
		assert.True(t, canonical[target], "alias %q maps outside the canonical set", alias)
		assert.False(t, canonical[alias], "canonical name %q must not be an alias key", alias)
	}
}
