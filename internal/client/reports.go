package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erazemk/konzola/internal/model"
)

// Report endpoints under /api/report.
const (
	ReportOutOfStock       = "outOfStocks"
	ReportBelowMinimum     = "belowMinimumStocks"
	ReportDemoUnits        = "getAllDemoUnits"
	ReportDemoUnitsOverdue = "demoUnitOverDueNearExpire"
	ReportMonthRevenue     = "getThisMonthRevenue"
	ReportTotalCustomers   = "getTotalCustomer"
	ReportMaintenanceCount = "getMaintenanceCountForThisMonth"
	ReportTopSelling       = "getTopSellingProducts"
	ReportRecent           = "getRecentTransactions"
	ReportMonthlyRevenue   = "getMonthlyRevenue"
)

// Report decodes /api/report/{name} into out.
func (c *Client) Report(ctx context.Context, name string, out any) error {
	return c.Get(ctx, "/api/report/"+name, out)
}

// ReportCount fetches a report that returns a single count under key.
func (c *Client) ReportCount(ctx context.Context, name, key string) (int, error) {
	var body map[string]json.RawMessage
	if err := c.Report(ctx, name, &body); err != nil {
		return 0, err
	}
	raw, ok := body[key]
	if !ok {
		return 0, &SchemaError{Path: "/api/report/" + name, Err: fmt.Errorf("missing %s", key)}
	}
	var v decimal.Decimal
	if err := v.UnmarshalJSON(raw); err != nil {
		return 0, &SchemaError{Path: "/api/report/" + name, Err: fmt.Errorf("%s: %w", key, err)}
	}
	return int(v.IntPart()), nil
}

// MonthRevenue returns this month's revenue.
func (c *Client) MonthRevenue(ctx context.Context) (decimal.Decimal, error) {
	var body struct {
		TotalRevenue decimal.NullDecimal `json:"total_revenue"`
	}
	if err := c.Report(ctx, ReportMonthRevenue, &body); err != nil {
		return decimal.Zero, err
	}
	if !body.TotalRevenue.Valid {
		return decimal.Zero, nil
	}
	return body.TotalRevenue.Decimal, nil
}

// TopSellingProducts returns the top selling products.
func (c *Client) TopSellingProducts(ctx context.Context) ([]model.TopSellingProduct, error) {
	var body struct {
		Products []model.TopSellingProduct `json:"products"`
	}
	if err := c.Report(ctx, ReportTopSelling, &body); err != nil {
		return nil, err
	}
	return body.Products, nil
}

// RecentTransactions returns the latest orders.
func (c *Client) RecentTransactions(ctx context.Context) ([]model.RecentTransaction, error) {
	var body struct {
		Transactions []model.RecentTransaction `json:"transactions"`
	}
	if err := c.Report(ctx, ReportRecent, &body); err != nil {
		return nil, err
	}
	return body.Transactions, nil
}

// MonthlyRevenue returns revenue per month in the order the backend lists
// the months.
func (c *Client) MonthlyRevenue(ctx context.Context) ([]model.MonthRevenue, error) {
	var body struct {
		MonthlyRevenue orderedRevenue `json:"monthly_revenue"`
	}
	if err := c.Report(ctx, ReportMonthlyRevenue, &body); err != nil {
		return nil, err
	}
	return body.MonthlyRevenue, nil
}

// orderedRevenue decodes a month to revenue object keeping key order.
type orderedRevenue []model.MonthRevenue

func (r *orderedRevenue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("monthly revenue: expected object, got %v", tok)
	}

	var out orderedRevenue
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		month, _ := tok.(string)

		var revenue decimal.Decimal
		if err := dec.Decode(&revenue); err != nil {
			return fmt.Errorf("monthly revenue %s: %w", month, err)
		}
		out = append(out, model.MonthRevenue{Month: month, Revenue: revenue})
	}
	*r = out
	return nil
}
