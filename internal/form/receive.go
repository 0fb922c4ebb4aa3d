package form

import (
	"fmt"

	"github.com/erazemk/konzola/internal/model"
)

// Messages for serial number fields.
const (
	MsgSerialRequired = "Serial number is required."
	MsgSerialUnique   = "Serial numbers must be unique."
)

// ReceivePayload records a delivery against a purchase order line.
type ReceivePayload struct {
	PurchaseOrderItemID int64    `json:"purchase_order_item_id"`
	ProductID           int64    `json:"product_id"`
	DeliveredQuantity   int64    `json:"delivered_quantity"`
	DeliveryDate        *string  `json:"delivery_date"`
	LotNumber           *string  `json:"lot_number"`
	ExpirationDate      *string  `json:"expiration_date"`
	SerialNumbers       []string `json:"serial_numbers,omitempty"`
}

// SerialField returns the form field name of the i-th serial, counting
// from 1.
func SerialField(i int) string {
	return fmt.Sprintf("serial_number_%d", i)
}

// Receive reads the receive form for item. Machines need one serial per
// delivered unit, all present and distinct. Consumables need a lot number.
func Receive(f *Form, item model.POItem) ReceivePayload {
	f.Required("delivered_quantity", "delivery_date")

	p := ReceivePayload{
		PurchaseOrderItemID: item.ID,
		ProductID:           item.ProductID,
		DeliveredQuantity:   f.Int("delivered_quantity"),
		DeliveryDate:        f.OptionalDate("delivery_date"),
		LotNumber:           f.Optional("lot_number"),
		ExpirationDate:      f.OptionalDate("expiration_date"),
	}
	if p.DeliveredQuantity < 0 || (p.DeliveredQuantity == 0 && f.Get("delivered_quantity") != "") {
		f.Errors.Add("delivered_quantity", "Delivered quantity must be at least 1.")
	}

	if !item.IsMachine() {
		f.Required("lot_number")
		return p
	}

	n := int(p.DeliveredQuantity)
	serials := make([]string, 0, n)
	missing := false
	for i := 1; i <= n; i++ {
		s := f.Get(SerialField(i))
		if s == "" {
			f.Errors.Add(SerialField(i), MsgSerialRequired)
			missing = true
		}
		serials = append(serials, s)
	}
	if !missing && hasDuplicates(serials) {
		for i := 1; i <= n; i++ {
			f.Errors.Add(SerialField(i), MsgSerialUnique)
		}
	}
	p.SerialNumbers = serials
	return p
}

func hasDuplicates(values []string) bool {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return true
		}
		seen[v] = true
	}
	return false
}
