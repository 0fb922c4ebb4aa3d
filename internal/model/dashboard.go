package model

import "github.com/shopspring/decimal"

// DashboardStats aggregates the report endpoints shown on the dashboard.
type DashboardStats struct {
	OutOfStock           int
	BelowMinimum         int
	DemoUnits            int
	DemoUnitsOverdue     int
	MonthRevenue         decimal.Decimal
	TotalCustomers       int
	MaintenanceThisMonth int
	TopSellingProducts   []TopSellingProduct
	RecentTransactions   []RecentTransaction
	MonthlyRevenue       []MonthRevenue
}

// TopSellingProduct is one row of the top-selling report.
type TopSellingProduct struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// RecentTransaction is one row of the recent transactions report.
type RecentTransaction struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"megaion_order_number"`
	CompanyName string          `json:"company_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   Date            `json:"created_at"`
}

// MonthRevenue is revenue for one month.
type MonthRevenue struct {
	Month   string
	Revenue decimal.Decimal
}
