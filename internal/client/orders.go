package client

import (
	"context"
	"fmt"

	"github.com/erazemk/konzola/internal/model"
)

// Orders returns every order visible to the caller.
func (c *Client) Orders(ctx context.Context) ([]model.Order, error) {
	return getList[model.Order](ctx, c, "/api/orders")
}

// Order returns one order with its items and status history.
func (c *Client) Order(ctx context.Context, id int64) (*model.Order, error) {
	return getOne[model.Order](ctx, c, fmt.Sprintf("/api/orders/%d", id))
}

// CreateOrder places an order.
func (c *Client) CreateOrder(ctx context.Context, payload any) error {
	return c.Post(ctx, "/api/orders", payload, nil)
}

// UpdateOrderStatus moves an order to statusID.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, statusID int64) error {
	body := map[string]int64{"status_id": statusID}
	return c.Patch(ctx, fmt.Sprintf("/api/orders/%d/status", id), body, nil)
}

// OrderItemAllocations returns the lots or units allocated to an order line.
func (c *Client) OrderItemAllocations(ctx context.Context, orderID, itemID int64) ([]model.Allocation, error) {
	var allocations []model.Allocation
	path := fmt.Sprintf("/api/orders/%d/items/%d/allocations", orderID, itemID)
	if err := c.Get(ctx, path, &allocations); err != nil {
		return nil, err
	}
	if allocations == nil {
		allocations = []model.Allocation{}
	}
	return allocations, nil
}
