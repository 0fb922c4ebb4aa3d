package table

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/erazemk/konzola/internal/model"
)

func order(id int64, number, status string) model.Order {
	return model.Order{ID: id, MegaionOrderNumber: number, Status: &model.Status{Name: status}}
}

func TestSearch(t *testing.T) {
	orders := []model.Order{
		order(1, "MO-001", "Pending"),
		order(2, "MO-002", "Approved"),
		{ID: 3, MegaionOrderNumber: "MO-003", CompanyOrderNumber: "acme-17", Status: &model.Status{Name: "Paid"}},
	}

	if got := Search(orders, "", OrderFields); len(got) != 3 {
		t.Errorf("empty query should keep all rows, got %d", len(got))
	}
	if got := Search(orders, "mo-00", OrderFields); len(got) != 3 {
		t.Errorf("expected 3 substring matches, got %d", len(got))
	}
	got := Search(orders, "ACME", OrderFields)
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("expected case-insensitive match on company order number, got %+v", got)
	}
	if got := Search(orders, "zzz", OrderFields); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestFilters(t *testing.T) {
	products := []model.Product{
		{ID: 1, Name: "Gloves", QuantityLevel: "No Stock", Tags: []model.Named{{ID: 1, Name: "ppe"}}},
		{ID: 2, Name: "Analyzer", IsMachine: true, QuantityLevel: "Above Minimum"},
		{ID: 3, Name: "Masks", QuantityLevel: "Below Minimum", Tags: []model.Named{{ID: 1, Name: "ppe"}}},
	}
	tags := func(p model.Product) []string { return p.TagNames() }
	level := func(p model.Product) string { return p.QuantityLevel }

	got := Filter(products, All(Contains("ppe", tags), MachineFilter(TypeConsumables)))
	if len(got) != 2 {
		t.Errorf("expected 2 tagged consumables, got %d", len(got))
	}

	got = Filter(products, Equal(DefaultQuantityLevel("below_minimum"), level))
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("expected Masks only, got %+v", got)
	}

	got = Filter(products, Equal(DefaultQuantityLevel("bogus"), level))
	if len(got) != 3 {
		t.Errorf("unknown default filter should keep all rows, got %d", len(got))
	}

	if got := Filter(products, MachineFilter(TypeMachines)); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected the analyzer only, got %+v", got)
	}

	names := Distinct(products, tags)
	if len(names) != 1 || names[0] != "ppe" {
		t.Errorf("expected distinct tags [ppe], got %v", names)
	}
}

func TestTabs(t *testing.T) {
	orders := []model.Order{
		order(1, "A", "Pending"),
		order(2, "B", "Pending"),
		order(3, "C", "Delivered"),
		order(4, "D", "Cancelled"),
	}

	tabs, rows := Tabs(orders, OrderTabs, "pending", OrderStatus)
	if len(tabs) != len(OrderTabs) {
		t.Fatalf("expected %d tabs, got %d", len(OrderTabs), len(tabs))
	}
	if tabs[0].Count != 2 || !tabs[0].ShowBadge || !tabs[0].Active {
		t.Errorf("unexpected pending tab: %+v", tabs[0])
	}
	if tabs[1].Count != 0 || tabs[1].ShowBadge {
		t.Errorf("approved tab should have no badge: %+v", tabs[1])
	}
	if tabs[4].ShowBadge {
		t.Error("delivered tab never shows a badge")
	}
	if last := tabs[len(tabs)-1]; last.Count != 4 {
		t.Errorf("all tab should count every order, got %d", last.Count)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 pending rows, got %d", len(rows))
	}

	_, rows = Tabs(orders, OrderTabs, "all", OrderStatus)
	if len(rows) != 4 {
		t.Errorf("expected all rows, got %d", len(rows))
	}

	tabs, _ = Tabs(orders, OrderTabs, "nope", OrderStatus)
	if !tabs[0].Active {
		t.Error("unknown tab should select the first tab")
	}
}

func TestCountLots(t *testing.T) {
	expiry, _ := model.ParseDate("2030-01-01")

	tests := []struct {
		name    string
		product model.Product
		want    LotCounts
	}{
		{
			name:    "nothing available",
			product: model.Product{AvailableQuantity: 0},
			want:    LotCounts{"-", "-", "-"},
		},
		{
			name: "no dated lots",
			product: model.Product{AvailableQuantity: 5, IncomingStocks: []model.IncomingStock{
				{Quantity: 5, Status: "VIABLE"},
			}},
			want: LotCounts{"N/A", "N/A", "N/A"},
		},
		{
			name: "dated lots",
			product: model.Product{AvailableQuantity: 12, IncomingStocks: []model.IncomingStock{
				{Quantity: 5, Status: "VIABLE", ExpirationDate: expiry},
				{Quantity: 3, Status: "VIABLE", ExpirationDate: expiry},
				{Quantity: 4, Status: "EXPIRING", ExpirationDate: expiry},
				{Quantity: 9, Status: "VIABLE"},
			}},
			want: LotCounts{"8", "4", "0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountLots(tt.product); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestServicing(t *testing.T) {
	machines := []model.ServicingMachine{
		{SerialNumber: "A", ForCalibration: true},
		{SerialNumber: "B", ForCalibration: true, ForMaintenance: true},
		{SerialNumber: "C"},
	}
	cal, maint := ServicingCounts(machines)
	if cal != 2 || maint != 1 {
		t.Errorf("expected 2/1, got %d/%d", cal, maint)
	}
	if got := Filter(machines, ServicingFilter(true, true)); len(got) != 1 || got[0].SerialNumber != "B" {
		t.Errorf("expected B only, got %+v", got)
	}
	if got := Filter(machines, ServicingFilter(false, false)); len(got) != 3 {
		t.Errorf("expected all machines, got %d", len(got))
	}
}

func TestFormatting(t *testing.T) {
	if got := Comma(1234567); got != "1,234,567" {
		t.Errorf("Comma: got %q", got)
	}
	if got := Money(decimal.RequireFromString("1234.5")); got != "1,234.50" {
		t.Errorf("Money: got %q", got)
	}
}
