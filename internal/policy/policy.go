// Package policy centralizes authorization: each guarded admin action is a
// Capability, and a single table says which roles hold it. Handlers never
// compare roles directly — the router attaches one capability check per
// mutating route group.
package policy

import "backoffice/internal/model"

// Capability names one guarded admin action.
type Capability string

const (
	CatalogRead  Capability = "catalog.read"  // categories, products, suppliers, orders (lecture)
	CatalogWrite Capability = "catalog.write" // categories, products, suppliers
	ContentWrite Capability = "content.write" // banners, media library
	OrdersManage Capability = "orders.manage" // status changes, invoice export
	ImportsRun   Capability = "imports.run"   // supplier sync, cancel
	UsersManage  Capability = "users.manage"  // accounts and roles
)

var grants = map[Capability][]string{
	CatalogRead:  {model.RoleAdmin, model.RoleManager, model.RoleViewer},
	CatalogWrite: {model.RoleAdmin, model.RoleManager},
	ContentWrite: {model.RoleAdmin, model.RoleManager},
	OrdersManage: {model.RoleAdmin, model.RoleManager},
	ImportsRun:   {model.RoleAdmin, model.RoleManager},
	UsersManage:  {model.RoleAdmin},
}

// Allows reports whether the role holds the capability. Unknown roles and
// unknown capabilities are both denied.
func Allows(role string, cap Capability) bool {
	for _, r := range grants[cap] {
		if r == role {
			return true
		}
	}
	return false
}
