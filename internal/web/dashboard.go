package web

import (
	"context"
	"net/http"

	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/refdata"
)

// Home handles GET / by sending the operator to the dashboard.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Dashboard handles GET /dashboard. Customers get a plain landing page; staff
// get the report cards, loaded together.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := &struct {
		PageData
		Stats *model.DashboardStats
	}{PageData: page(r, "Dashboard", "dashboard")}

	if data.Session.IsCustomer() {
		s.Templates.Render(w, "dashboard.html", data)
		return
	}

	stats, err := s.loadDashboard(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data.Stats = stats
	s.Templates.Render(w, "dashboard.html", data)
}

func (s *Server) loadDashboard(ctx context.Context) (*model.DashboardStats, error) {
	var st model.DashboardStats
	var l refdata.Loader

	count := func(name, key string) func(context.Context) (int, error) {
		return func(ctx context.Context) (int, error) {
			return s.Backend.ReportCount(ctx, name, key)
		}
	}
	refdata.Add(&l, &st.OutOfStock, count(client.ReportOutOfStock, "out_of_stock_count"))
	refdata.Add(&l, &st.BelowMinimum, count(client.ReportBelowMinimum, "below_minimum_count"))
	refdata.Add(&l, &st.DemoUnits, count(client.ReportDemoUnits, "demo_unit_count"))
	refdata.Add(&l, &st.DemoUnitsOverdue, count(client.ReportDemoUnitsOverdue, "demo_unit_count"))
	refdata.Add(&l, &st.TotalCustomers, count(client.ReportTotalCustomers, "total_customers"))
	refdata.Add(&l, &st.MaintenanceThisMonth, count(client.ReportMaintenanceCount, "maintenance_count"))
	refdata.Add(&l, &st.MonthRevenue, s.Backend.MonthRevenue)
	refdata.Add(&l, &st.TopSellingProducts, s.Backend.TopSellingProducts)
	refdata.Add(&l, &st.RecentTransactions, s.Backend.RecentTransactions)
	refdata.Add(&l, &st.MonthlyRevenue, s.Backend.MonthlyRevenue)

	if err := l.Load(ctx); err != nil {
		return nil, err
	}
	return &st, nil
}
