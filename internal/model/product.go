package model

import "github.com/shopspring/decimal"

// Quantity levels, derived by the backend from available and minimum quantity.
const (
	QuantityLevelNoStock      = "No Stock"
	QuantityLevelBelowMinimum = "Below Minimum"
	QuantityLevelAboveMinimum = "Above Minimum"
)

// Incoming stock lot statuses.
const (
	LotStatusViable   = "VIABLE"
	LotStatusExpiring = "EXPIRING"
	LotStatusExpired  = "EXPIRED"
)

// Product is a stocked product. Machines are tracked per serial number,
// consumables per lot.
type Product struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Model               string          `json:"model"`
	SKU                 string          `json:"sku"`
	Barcode             string          `json:"barcode"`
	Description         string          `json:"description"`
	IsMachine           bool            `json:"is_machine"`
	AvailableQuantity   int             `json:"available_quantity"`
	MinimumQuantity     int             `json:"minimum_quantity"`
	QuantityLevel       string          `json:"quantity_level"`
	Tags                []Named         `json:"tags"`
	SupplierID          int64           `json:"supplier_id"`
	Supplier            *Supplier       `json:"supplier"`
	WarehouseID         *int64          `json:"warehouse_id"`
	Warehouse           *Named          `json:"warehouse"`
	LocationID          *int64          `json:"location_id"`
	Location            *Named          `json:"location"`
	ProductUnitID       *int64          `json:"product_unit_id"`
	ProductUnit         *Named          `json:"product_unit"`
	ImageURL            string          `json:"image_url"`
	SupplierPrice       decimal.Decimal `json:"supplier_price"`
	ProfitMargin        decimal.Decimal `json:"profit_margin"`
	DefaultSellingPrice decimal.Decimal `json:"default_selling_price"`
	IncomingStocks      []IncomingStock `json:"incoming_stocks"`
}

// Validate checks the shape the console relies on and normalizes nil slices.
func (p *Product) Validate() error {
	if p.ID <= 0 {
		return fieldError("product", "id")
	}
	if p.Tags == nil {
		p.Tags = []Named{}
	}
	if p.IncomingStocks == nil {
		p.IncomingStocks = []IncomingStock{}
	}
	return nil
}

// TagNames returns the names of the product's tags.
func (p *Product) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

// SupplierName returns the supplier's name or "".
func (p *Product) SupplierName() string {
	if p.Supplier == nil {
		return ""
	}
	return p.Supplier.Name
}

// Available reports whether at least one unit can be ordered.
func (p *Product) Available() bool {
	return p.AvailableQuantity > 0
}

// IncomingStock is a received lot (consumables) or unit (machines).
type IncomingStock struct {
	ID             int64    `json:"id"`
	ProductID      int64    `json:"product_id"`
	Product        *Product `json:"product,omitempty"`
	Barcode        string   `json:"barcode"`
	LotNumber      string   `json:"lot_number"`
	SerialNumber   string   `json:"serial_number"`
	ExpirationDate Date     `json:"expiration_date"`
	Quantity       int      `json:"quantity"`
	Status         string   `json:"status"`
}

// ProductLog is one stock movement of a product.
type ProductLog struct {
	ID         int64  `json:"id"`
	Adjustment string `json:"Adjustment"`
	Type       string `json:"type"`
	Quantity   int    `json:"quantity"`
	Remarks    string `json:"remarks"`
	CreatedAt  Date   `json:"created_at"`
}

// IsDecrease reports whether the movement removed stock.
func (l ProductLog) IsDecrease() bool {
	return l.Adjustment == "Decrease (-)"
}
