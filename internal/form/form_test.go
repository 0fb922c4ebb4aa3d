package form

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/erazemk/konzola/internal/model"
)

func TestRequiredAndEmail(t *testing.T) {
	f := New(url.Values{
		"name":                  {"  "},
		"email_address":         {"not-an-email"},
		"primary_contact_email": {"ana@example.com"},
		"user_id":               {"3", "4"},
	})
	p := Company(f)

	if f.Valid() {
		t.Fatal("expected errors")
	}
	if f.Errors.Get("name") != MsgRequired {
		t.Errorf("expected name required, got %q", f.Errors.Get("name"))
	}
	if f.Errors.Get("email_address") != MsgEmail {
		t.Errorf("expected email error, got %q", f.Errors.Get("email_address"))
	}
	if f.Errors.Get("primary_contact_email") != "" {
		t.Errorf("unexpected error for valid email: %q", f.Errors.Get("primary_contact_email"))
	}
	if len(p.UserIDs) != 2 || p.UserIDs[1] != 4 {
		t.Errorf("unexpected users %v", p.UserIDs)
	}
}

func TestEmailPattern(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"first.last@example.com", true},
		{"a@b", false},
		{"a b@c.d", false},
		{"@b.c", false},
		{"a@@b.c", false},
	}
	for _, tt := range tests {
		f := New(url.Values{"email": {tt.email}})
		f.Email("email")
		if f.Valid() != tt.valid {
			t.Errorf("%q: expected valid=%v", tt.email, tt.valid)
		}
	}
}

func TestProductEmptyOptionalsAreNull(t *testing.T) {
	f := New(url.Values{"name": {"Gloves"}})
	p := Product(f)
	if !f.Valid() {
		t.Fatalf("unexpected errors: %v", f.Errors)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	json.Unmarshal(data, &got)

	for _, field := range []string{
		"model", "sku", "barcode", "description", "minimum_quantity", "supplier_id",
		"warehouse_id", "location_id", "product_unit_id", "supplier_price",
		"profit_margin", "default_selling_price", "tags",
	} {
		v, ok := got[field]
		if !ok {
			t.Errorf("%s: missing from payload", field)
			continue
		}
		if v != nil {
			t.Errorf("%s: expected null, got %v", field, v)
		}
	}
	if got["name"] != "Gloves" || got["is_machine"] != false {
		t.Errorf("unexpected payload %s", data)
	}
}

func TestProductNumbers(t *testing.T) {
	f := New(url.Values{
		"name":           {"Analyzer"},
		"is_machine":     {"on"},
		"supplier_id":    {"7"},
		"supplier_price": {"1200.50"},
		"tags":           {"1", "2"},
		"location_id":    {"x"},
	})
	p := Product(f)

	if f.Errors.Get("location_id") != MsgNumber {
		t.Errorf("expected number error, got %v", f.Errors)
	}
	if !p.IsMachine || p.SupplierID == nil || *p.SupplierID != 7 {
		t.Errorf("unexpected payload %+v", p)
	}
	if p.SupplierPrice == nil || !p.SupplierPrice.Equal(decimal.RequireFromString("1200.5")) {
		t.Errorf("unexpected supplier price %v", p.SupplierPrice)
	}
	if len(p.Tags) != 2 {
		t.Errorf("expected 2 tags, got %v", p.Tags)
	}
}

func TestDemoUnit(t *testing.T) {
	values := url.Values{
		"incoming_stock_id":  {"5"},
		"company_id":         {"2"},
		"demo_start":         {"2024-05-01"},
		"demo_end":           {"2024-05-15T00:00:00Z"},
		"assigned_person_id": {"9"},
		"notes":              {"Trial"},
	}

	f := New(values)
	p := DemoUnit(f, true)
	if !f.Valid() {
		t.Fatalf("unexpected errors: %v", f.Errors)
	}
	if p.StatusID != model.StatusDemoOngoing {
		t.Errorf("expected ongoing demo status, got %d", p.StatusID)
	}
	if *p.DemoStart != "2024-05-01" || *p.DemoEnd != "2024-05-15" {
		t.Errorf("expected ISO dates, got %s / %s", *p.DemoStart, *p.DemoEnd)
	}

	f = New(values)
	if p := DemoUnit(f, false); p.StatusID != 0 {
		t.Errorf("update should not set status, got %d", p.StatusID)
	}

	// Date order is left to the backend.
	values.Set("demo_end", "2024-04-01")
	f = New(values)
	DemoUnit(f, false)
	if !f.Valid() {
		t.Errorf("dates should only be checked one field at a time: %v", f.Errors)
	}
}

func machineItem() model.POItem {
	return model.POItem{ID: 11, ProductID: 3, Quantity: 3, Product: &model.Product{ID: 3, IsMachine: true}}
}

func TestReceiveMachineSerials(t *testing.T) {
	tests := []struct {
		name    string
		serials []string
		errMsg  string
	}{
		{"all present and unique", []string{"A", "B", "C"}, ""},
		{"missing", []string{"A", "", "C"}, MsgSerialRequired},
		{"duplicate", []string{"A", "B", "A"}, MsgSerialUnique},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{
				"delivered_quantity": {"3"},
				"delivery_date":      {"2024-06-01"},
			}
			for i, s := range tt.serials {
				values.Set(SerialField(i+1), s)
			}
			f := New(values)
			p := Receive(f, machineItem())

			if tt.errMsg == "" {
				if !f.Valid() {
					t.Fatalf("unexpected errors: %v", f.Errors)
				}
				if len(p.SerialNumbers) != 3 || p.ExpirationDate != nil {
					t.Errorf("unexpected payload %+v", p)
				}
				return
			}
			found := false
			for _, msg := range f.Errors {
				if msg == tt.errMsg {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %q, got %v", tt.errMsg, f.Errors)
			}
		})
	}
}

func TestReceiveConsumable(t *testing.T) {
	item := model.POItem{ID: 12, ProductID: 4, Product: &model.Product{ID: 4}}

	f := New(url.Values{"delivered_quantity": {"10"}, "delivery_date": {"2024-06-01"}})
	Receive(f, item)
	if f.Errors.Get("lot_number") != MsgRequired {
		t.Errorf("expected lot number required, got %v", f.Errors)
	}

	f = New(url.Values{
		"delivered_quantity": {"10"},
		"delivery_date":      {"2024-06-01"},
		"lot_number":         {"L-1"},
		"expiration_date":    {"2026-01-31"},
	})
	p := Receive(f, item)
	if !f.Valid() {
		t.Fatalf("unexpected errors: %v", f.Errors)
	}
	if *p.ExpirationDate != "2026-01-31" || p.SerialNumbers != nil {
		t.Errorf("unexpected payload %+v", p)
	}
}

func TestServiceRecord(t *testing.T) {
	f := New(url.Values{"date": {"2024-02-30"}, "description": {"Fan"}})
	ServiceRecord(f, "SN-1")
	if f.Errors.Get("date") != MsgDate {
		t.Errorf("expected date error, got %v", f.Errors)
	}
	if f.Errors.Get("performed_by") != MsgRequired {
		t.Errorf("expected performed_by required, got %v", f.Errors)
	}
}

func TestPurchaseOrder(t *testing.T) {
	products := []model.Product{
		{ID: 1, SupplierPrice: decimal.RequireFromString("10.25"), Tags: []model.Named{{ID: 1, Name: "ppe"}}},
		{ID: 2, SupplierPrice: decimal.RequireFromString("4"), Tags: []model.Named{{ID: 1, Name: "ppe"}}},
		{ID: 3, Tags: []model.Named{{ID: 2, Name: "lab"}}},
	}

	f := New(url.Values{
		"supplier_id": {"5"},
		"product_id":  {"1", "2"},
		"quantity":    {"2", "3"},
		"unit_price":  {"", "5"},
	})
	p := PurchaseOrder(f, products)
	if !f.Valid() {
		t.Fatalf("unexpected errors: %v", f.Errors)
	}
	if p.TotalItems != 2 {
		t.Errorf("expected 2 items, got %d", p.TotalItems)
	}
	if !p.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.25")) {
		t.Errorf("expected supplier price default, got %s", p.Items[0].UnitPrice)
	}
	if !p.TotalAmount.Equal(decimal.RequireFromString("35.5")) {
		t.Errorf("expected total 35.5, got %s", p.TotalAmount)
	}

	similar := SimilarProducts(products, []int64{1})
	if len(similar) != 1 || similar[0].ID != 2 {
		t.Errorf("expected product 2 as similar, got %+v", similar)
	}
}
