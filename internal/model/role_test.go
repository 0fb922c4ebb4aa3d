package model

import (
	"encoding/json"
	"testing"
)

func TestRolesHasAny(t *testing.T) {
	tests := []struct {
		roles    Roles
		check    []string
		expected bool
	}{
		{Roles{RoleAdmin}, []string{RoleAdmin}, true},
		{Roles{RoleFinance}, []string{RoleSalesManager, RoleAdmin}, false},
		{Roles{RoleFinance, RoleSalesManager}, []string{RoleSalesManager}, true},
		{nil, []string{RoleAdmin}, false},
		{Roles{RoleAdmin}, nil, false},
	}

	for _, tt := range tests {
		got := tt.roles.HasAny(tt.check...)
		if got != tt.expected {
			t.Errorf("%v.HasAny(%v) = %v, want %v", tt.roles, tt.check, got, tt.expected)
		}
	}
}

func TestRolesIsStaff(t *testing.T) {
	if (Roles{RoleCustomer}).IsStaff() {
		t.Error("customer-only user should not be staff")
	}
	if !(Roles{RoleCustomer, RoleFinance}).IsStaff() {
		t.Error("finance user should be staff")
	}
}

func TestRolesUnmarshal(t *testing.T) {
	var plain Roles
	if err := json.Unmarshal([]byte(`["Admin","Finance"]`), &plain); err != nil {
		t.Fatalf("unmarshal strings: %v", err)
	}
	if len(plain) != 2 || plain[1] != RoleFinance {
		t.Errorf("unexpected roles %v", plain)
	}

	var objects Roles
	if err := json.Unmarshal([]byte(`[{"id":1,"name":"Sales Manager"},{"id":2,"name":""}]`), &objects); err != nil {
		t.Fatalf("unmarshal objects: %v", err)
	}
	if len(objects) != 1 || objects[0] != RoleSalesManager {
		t.Errorf("unexpected roles %v", objects)
	}

	var bad Roles
	if err := json.Unmarshal([]byte(`"Admin"`), &bad); err == nil {
		t.Error("expected error for non-array roles")
	}
}
