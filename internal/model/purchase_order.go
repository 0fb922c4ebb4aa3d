package model

import "github.com/shopspring/decimal"

// PurchaseOrder is a request to a supplier for stock.
type PurchaseOrder struct {
	ID                 int64           `json:"id"`
	PONumber           string          `json:"ponumber"`
	SupplierID         int64           `json:"supplier_id"`
	Supplier           *Supplier       `json:"supplier"`
	TotalItems         int             `json:"total_items"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	CreatedAt          Date            `json:"created_at"`
	StatusID           int64           `json:"status_id"`
	Status             *Status         `json:"status"`
	PurchaseOrderItems []POItem        `json:"purchase_order_items"`
}

// Validate checks the shape the console relies on and normalizes nil slices.
func (po *PurchaseOrder) Validate() error {
	if po.ID <= 0 {
		return fieldError("purchase order", "id")
	}
	if po.Status == nil || po.Status.Name == "" {
		return fieldError("purchase order", "status")
	}
	if po.PurchaseOrderItems == nil {
		po.PurchaseOrderItems = []POItem{}
	}
	return nil
}

// StatusName returns the current status name.
func (po *PurchaseOrder) StatusName() string {
	if po.Status == nil {
		return ""
	}
	return po.Status.Name
}

// SupplierName returns the supplier's name or "".
func (po *PurchaseOrder) SupplierName() string {
	if po.Supplier == nil {
		return ""
	}
	return po.Supplier.Name
}

// Item returns the line with the given id.
func (po *PurchaseOrder) Item(id int64) (*POItem, bool) {
	for i := range po.PurchaseOrderItems {
		if po.PurchaseOrderItems[i].ID == id {
			return &po.PurchaseOrderItems[i], true
		}
	}
	return nil, false
}

// POItem is one product line of a purchase order.
type POItem struct {
	ID               int64           `json:"id"`
	ProductID        int64           `json:"product_id"`
	Product          *Product        `json:"product"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	ReceivedQuantity int             `json:"received_quantity"`
	Deliveries       []Delivery      `json:"deliveries,omitempty"`
}

// ProductName returns the product's name or "".
func (i *POItem) ProductName() string {
	if i.Product == nil {
		return ""
	}
	return i.Product.Name
}

// IsMachine reports whether the line is for a serial-tracked product.
func (i *POItem) IsMachine() bool {
	return i.Product != nil && i.Product.IsMachine
}

// Outstanding returns how many units are still expected.
func (i *POItem) Outstanding() int {
	if n := i.Quantity - i.ReceivedQuantity; n > 0 {
		return n
	}
	return 0
}

// Delivery records a receipt against a purchase order line.
type Delivery struct {
	ID                int64  `json:"id"`
	DeliveredQuantity int    `json:"delivered_quantity"`
	DeliveryDate      Date   `json:"delivery_date"`
	LotNumber         string `json:"lot_number"`
	ExpirationDate    Date   `json:"expiration_date"`
}
