package workflow

import (
	"strings"

	"github.com/erazemk/konzola/internal/model"
)

// MenuEntry is one sidebar link.
type MenuEntry struct {
	Key   string
	Label string
	Path  string
}

var menuEntries = map[string]MenuEntry{
	"dashboard":      {"dashboard", "Dashboard", "/dashboard"},
	"products":       {"products", "Products", "/products"},
	"purchaseOrders": {"purchaseOrders", "Purchase Orders", "/purchaseOrders"},
	"demoUnits":      {"demoUnits", "Demo Units", "/demoUnits"},
	"servicing":      {"servicing", "Servicing", "/servicing"},
	"orders":         {"orders", "Orders", "/orders"},
	"suppliers":      {"suppliers", "Suppliers", "/suppliers"},
	"customers":      {"customers", "Customers", "/customers"},
	"users":          {"users", "Users", "/users"},
	"locations":      {"locations", "Locations", "/locations"},
	"warehouses":     {"warehouses", "Warehouses", "/warehouses"},
	"productUnits":   {"productUnits", "Product Units", "/productUnits"},
	"tags":           {"tags", "Tags", "/tags"},
	"ecommerce":      {"ecommerce", "Shop", "/ecommerce"},
	"customerOrders": {"customerOrders", "My Orders", "/customerOrders"},
}

var roleMenus = map[string][]string{
	model.RoleAdmin: {
		"dashboard", "products", "purchaseOrders", "demoUnits", "servicing", "orders",
		"suppliers", "customers", "users", "locations", "productUnits", "tags",
	},
	model.RoleCustomer:        {"dashboard", "ecommerce", "customerOrders"},
	model.RoleSalesManager:    {"dashboard", "orders"},
	model.RoleWarehouseStaff:  {"dashboard", "purchaseOrders", "orders"},
	model.RoleLogisticManager: {"dashboard", "orders"},
	model.RoleFinance:         {"dashboard", "orders"},
}

// hidden lists routes a role may reach without a sidebar link.
var hidden = map[string][]string{
	model.RoleAdmin: {"warehouses"},
}

// MenuForRoles returns the sidebar for a user: the union of the menus of
// every role held, in role order, without duplicates.
func MenuForRoles(roles model.Roles) []MenuEntry {
	seen := make(map[string]bool)
	var menu []MenuEntry
	for _, role := range roles {
		for _, key := range roleMenus[role] {
			if seen[key] {
				continue
			}
			seen[key] = true
			menu = append(menu, menuEntries[key])
		}
	}
	return menu
}

// CanAccess reports whether a user holding roles may open path. The first
// path segment must be a menu root of one of the roles.
func CanAccess(roles model.Roles, path string) bool {
	root, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if root == "" {
		root = "dashboard"
	}
	for _, role := range roles {
		for _, key := range roleMenus[role] {
			if key == root {
				return true
			}
		}
		for _, key := range hidden[role] {
			if key == root {
				return true
			}
		}
	}
	return false
}
