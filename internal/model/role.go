package model

import (
	"encoding/json"
	"fmt"
)

// Roles known to the backend.
const (
	RoleAdmin           = "Admin"
	RoleCustomer        = "Customer"
	RoleSalesManager    = "Sales Manager"
	RoleWarehouseStaff  = "Warehouse Staff"
	RoleLogisticManager = "Logistic Manager"
	RoleFinance         = "Finance"
)

// AllRoles lists every role in display order.
var AllRoles = []string{
	RoleAdmin,
	RoleSalesManager,
	RoleWarehouseStaff,
	RoleLogisticManager,
	RoleFinance,
	RoleCustomer,
}

// Roles is the set of role names held by a user.
type Roles []string

// Has reports whether role is present.
func (rs Roles) Has(role string) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// HasAny reports whether at least one of roles is present.
func (rs Roles) HasAny(roles ...string) bool {
	for _, role := range roles {
		if rs.Has(role) {
			return true
		}
	}
	return false
}

// IsStaff reports whether the user holds any non-customer role.
func (rs Roles) IsStaff() bool {
	for _, r := range rs {
		if r != RoleCustomer {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts both ["Admin"] and [{"name": "Admin"}].
func (rs *Roles) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*rs = names
		return nil
	}

	var objects []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &objects); err != nil {
		return fmt.Errorf("decoding roles: %w", err)
	}
	out := make(Roles, 0, len(objects))
	for _, o := range objects {
		if o.Name != "" {
			out = append(out, o.Name)
		}
	}
	*rs = out
	return nil
}
