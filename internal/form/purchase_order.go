package form

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/erazemk/konzola/internal/model"
)

// POItemPayload is one line of a new purchase order.
type POItemPayload struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// PurchaseOrderPayload creates a purchase order.
type PurchaseOrderPayload struct {
	SupplierID  int64           `json:"supplier_id"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []POItemPayload `json:"items"`
}

// PurchaseOrder reads the purchase order form. Lines are submitted as
// parallel product_id, quantity and unit_price fields; unit prices default
// to the product's supplier price.
func PurchaseOrder(f *Form, products []model.Product) PurchaseOrderPayload {
	f.Required("supplier_id", "product_id")

	p := PurchaseOrderPayload{SupplierID: f.Int("supplier_id"), Items: []POItemPayload{}}

	ids := f.values["product_id"]
	quantities := f.values["quantity"]
	prices := f.values["unit_price"]
	for i, raw := range ids {
		line := New(map[string][]string{
			"product_id": {raw},
			"quantity":   {at(quantities, i)},
			"unit_price": {at(prices, i)},
		})
		productID := line.Int("product_id")
		if productID == 0 {
			continue
		}
		qty := line.Int("quantity")
		if qty < 1 {
			qty = 1
		}

		price := decimal.Zero
		if up := line.OptionalDecimal("unit_price"); up != nil {
			price = *up
		} else if prod := findProduct(products, productID); prod != nil {
			price = prod.SupplierPrice
		}
		for field, msg := range line.Errors {
			f.Errors.Add(field, msg)
		}

		amount := price.Mul(decimal.NewFromInt(qty))
		p.Items = append(p.Items, POItemPayload{
			ProductID: productID,
			Quantity:  qty,
			UnitPrice: price,
			Amount:    amount,
		})
		p.TotalAmount = p.TotalAmount.Add(amount)
	}
	p.TotalItems = len(p.Items)
	return p
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func findProduct(products []model.Product, id int64) *model.Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}

// SimilarProducts returns the products sharing a tag with any selected
// product, excluding the selected ones.
func SimilarProducts(products []model.Product, selected []int64) []model.Product {
	tags := make(map[int64]bool)
	for _, id := range selected {
		if p := findProduct(products, id); p != nil {
			for _, t := range p.Tags {
				tags[t.ID] = true
			}
		}
	}

	var out []model.Product
	for _, p := range products {
		if slices.Contains(selected, p.ID) {
			continue
		}
		for _, t := range p.Tags {
			if tags[t.ID] {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
