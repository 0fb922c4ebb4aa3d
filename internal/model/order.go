package model

import "github.com/shopspring/decimal"

// Order is a customer sales order.
type Order struct {
	ID                 int64           `json:"id"`
	MegaionOrderNumber string          `json:"megaion_order_number"`
	CompanyOrderNumber string          `json:"company_order_number"`
	CompanyID          int64           `json:"company_id"`
	Company            *Company        `json:"company"`
	OrderDate          Date            `json:"order_date"`
	CreatedAt          Date            `json:"created_at"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	StatusID           int64           `json:"status_id"`
	Status             *Status         `json:"status"`
	OrderItems         []OrderItem     `json:"order_items"`
	OrderStatuses      []StatusHistory `json:"order_statuses"`
}

// Validate checks the shape the console relies on and normalizes nil slices.
func (o *Order) Validate() error {
	if o.ID <= 0 {
		return fieldError("order", "id")
	}
	if o.Status == nil || o.Status.Name == "" {
		return fieldError("order", "status")
	}
	if o.OrderItems == nil {
		o.OrderItems = []OrderItem{}
	}
	if o.OrderStatuses == nil {
		o.OrderStatuses = []StatusHistory{}
	}
	return nil
}

// StatusName returns the current status name.
func (o *Order) StatusName() string {
	if o.Status == nil {
		return ""
	}
	return o.Status.Name
}

// CompanyName returns the ordering company's name or "".
func (o *Order) CompanyName() string {
	if o.Company == nil {
		return ""
	}
	return o.Company.Name
}

// OrderItem is one product line of an order.
type OrderItem struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	Product     *Product        `json:"product"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Allocations []Allocation    `json:"allocations,omitempty"`
}

// ProductName returns the product's name or "".
func (i *OrderItem) ProductName() string {
	if i.Product == nil {
		return ""
	}
	return i.Product.Name
}

// IsMachine reports whether the line is for a serial-tracked product.
func (i *OrderItem) IsMachine() bool {
	return i.Product != nil && i.Product.IsMachine
}

// Allocation ties part of an order line to a received lot or unit.
type Allocation struct {
	ID            int64         `json:"id"`
	Quantity      int           `json:"quantity"`
	IncomingStock IncomingStock `json:"incoming_stock"`
}
