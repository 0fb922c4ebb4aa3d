package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/erazemk/konzola/internal/model"
)

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	return rows
}

func TestWriteOrders(t *testing.T) {
	created, _ := model.ParseDate("2024-03-01")
	orders := []model.Order{
		{
			ID:                 1,
			MegaionOrderNumber: "MO-1",
			Company:            &model.Company{Name: "Acme"},
			CreatedAt:          created,
			TotalAmount:        decimal.RequireFromString("1500.5"),
			Status:             &model.Status{Name: "Pending"},
			OrderItems:         []model.OrderItem{{ID: 1}, {ID: 2}},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, "Orders", OrderColumns, orders); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows := readRows(t, buf.Bytes(), "Orders")
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(rows))
	}
	if rows[0][0] != "Order No." || rows[0][6] != "Status" {
		t.Errorf("unexpected header %v", rows[0])
	}
	want := []string{"MO-1", "", "Acme", "2024-03-01", "2", "1500.5", "Pending"}
	for i, v := range want {
		if rows[1][i] != v {
			t.Errorf("column %d: expected %q, got %q", i, v, rows[1][i])
		}
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "Products", ProductColumns, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	rows := readRows(t, buf.Bytes(), "Products")
	if len(rows) != 1 || len(rows[0]) != len(ProductColumns) {
		t.Errorf("expected only the header, got %v", rows)
	}
}

func TestProductLotColumns(t *testing.T) {
	products := []model.Product{{ID: 1, Name: "Gloves", AvailableQuantity: 0}}

	var buf bytes.Buffer
	if err := Write(&buf, "Products", ProductColumns, products); err != nil {
		t.Fatalf("Write: %v", err)
	}
	rows := readRows(t, buf.Bytes(), "Products")
	if rows[1][4] != "Consumable" || rows[1][10] != "-" {
		t.Errorf("unexpected row %v", rows[1])
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("Orders", "20240102_150405"); got != "orders_20240102_150405.xlsx" {
		t.Errorf("unexpected filename %q", got)
	}
}
