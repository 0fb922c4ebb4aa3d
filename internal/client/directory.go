package client

import (
	"context"
	"fmt"

	"github.com/erazemk/konzola/internal/model"
)

// Named returns the records of a name-only directory such as locations or
// tags.
func (c *Client) Named(ctx context.Context, kind string) ([]model.Named, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return getList[model.Named](ctx, c, "/api/"+kind)
}

// CreateNamed adds a record to a name-only directory.
func (c *Client) CreateNamed(ctx context.Context, kind, name string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	return c.Post(ctx, "/api/"+kind, map[string]string{"name": name}, nil)
}

// UpdateNamed renames a record.
func (c *Client) UpdateNamed(ctx context.Context, kind string, id int64, name string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	return c.Put(ctx, fmt.Sprintf("/api/%s/%d", kind, id), map[string]string{"name": name}, nil)
}

// DeleteNamed removes a record.
func (c *Client) DeleteNamed(ctx context.Context, kind string, id int64) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	return c.Delete(ctx, fmt.Sprintf("/api/%s/%d", kind, id))
}

func checkKind(kind string) error {
	switch kind {
	case model.KindLocations, model.KindWarehouses, model.KindProductUnits, model.KindTags:
		return nil
	}
	return fmt.Errorf("unknown directory %q", kind)
}

// Suppliers returns every supplier.
func (c *Client) Suppliers(ctx context.Context) ([]model.Supplier, error) {
	return getList[model.Supplier](ctx, c, "/api/suppliers")
}

// CreateSupplier creates a supplier.
func (c *Client) CreateSupplier(ctx context.Context, payload any) error {
	return c.Post(ctx, "/api/suppliers", payload, nil)
}

// UpdateSupplier updates a supplier.
func (c *Client) UpdateSupplier(ctx context.Context, id int64, payload any) error {
	return c.Put(ctx, fmt.Sprintf("/api/suppliers/%d", id), payload, nil)
}

// DeleteSupplier deletes a supplier.
func (c *Client) DeleteSupplier(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/suppliers/%d", id))
}

// Companies returns every customer company with its linked users.
func (c *Client) Companies(ctx context.Context) ([]model.Company, error) {
	return getList[model.Company](ctx, c, "/api/companies")
}

// CreateCompany creates a company.
func (c *Client) CreateCompany(ctx context.Context, payload any) error {
	return c.Post(ctx, "/api/companies", payload, nil)
}

// UpdateCompany updates a company.
func (c *Client) UpdateCompany(ctx context.Context, id int64, payload any) error {
	return c.Put(ctx, fmt.Sprintf("/api/companies/%d", id), payload, nil)
}

// DeleteCompany deletes a company.
func (c *Client) DeleteCompany(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/companies/%d", id))
}

// Users returns every user account.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	return getList[model.User](ctx, c, "/api/users")
}

// CreateUser creates a user account.
func (c *Client) CreateUser(ctx context.Context, payload any) error {
	return c.Post(ctx, "/api/users", payload, nil)
}

// UpdateUser updates a user account.
func (c *Client) UpdateUser(ctx context.Context, id int64, payload any) error {
	return c.Put(ctx, fmt.Sprintf("/api/users/%d", id), payload, nil)
}

// DeleteUser deletes a user account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/users/%d", id))
}
