package client

import (
	"context"
	"fmt"

	"github.com/erazemk/konzola/internal/model"
)

// PurchaseOrders returns every purchase order. The backend wraps the list in
// a purchase_orders envelope.
func (c *Client) PurchaseOrders(ctx context.Context) ([]model.PurchaseOrder, error) {
	const path = "/api/purchaseOrders"

	var envelope struct {
		PurchaseOrders []model.PurchaseOrder `json:"purchase_orders"`
	}
	if err := c.Get(ctx, path, &envelope); err != nil {
		return nil, err
	}
	if err := validateAll(path, envelope.PurchaseOrders); err != nil {
		return nil, err
	}
	if envelope.PurchaseOrders == nil {
		return []model.PurchaseOrder{}, nil
	}
	return envelope.PurchaseOrders, nil
}

// PurchaseOrder returns one purchase order with its lines.
func (c *Client) PurchaseOrder(ctx context.Context, id int64) (*model.PurchaseOrder, error) {
	return getOne[model.PurchaseOrder](ctx, c, fmt.Sprintf("/api/purchaseOrders/%d", id))
}

// CreatePurchaseOrder creates a purchase order.
func (c *Client) CreatePurchaseOrder(ctx context.Context, payload any) error {
	return c.Post(ctx, "/api/createPurchaseOrder", payload, nil)
}

// UpdatePurchaseOrderStatus moves a purchase order to statusID.
func (c *Client) UpdatePurchaseOrderStatus(ctx context.Context, id, statusID int64) error {
	body := map[string]int64{"status_id": statusID}
	return c.Put(ctx, fmt.Sprintf("/api/purchaseOrders/%d/status", id), body, nil)
}

// ReceivePurchaseOrderItem records a delivery against a purchase order line.
func (c *Client) ReceivePurchaseOrderItem(ctx context.Context, id int64, payload any) error {
	return c.Post(ctx, fmt.Sprintf("/api/purchaseOrders/%d/receive", id), payload, nil)
}
