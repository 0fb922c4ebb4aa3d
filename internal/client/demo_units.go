package client

import (
	"context"
	"fmt"

	"github.com/erazemk/konzola/internal/model"
)

// DemoUnits returns every demo unit.
func (c *Client) DemoUnits(ctx context.Context) ([]model.DemoUnit, error) {
	return getList[model.DemoUnit](ctx, c, "/api/demoUnits")
}

// CreateDemoUnit lends a unit out.
func (c *Client) CreateDemoUnit(ctx context.Context, payload any) error {
	return c.Post(ctx, "/api/demoUnits", payload, nil)
}

// UpdateDemoUnit updates a demo unit.
func (c *Client) UpdateDemoUnit(ctx context.Context, id int64, payload any) error {
	return c.Put(ctx, fmt.Sprintf("/api/demoUnits/%d", id), payload, nil)
}

// DeleteDemoUnit deletes a demo unit.
func (c *Client) DeleteDemoUnit(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/demoUnits/%d", id))
}
