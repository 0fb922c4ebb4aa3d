package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/erazemk/konzola/internal/export"
	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/refdata"
	"github.com/erazemk/konzola/internal/table"
	"github.com/erazemk/konzola/internal/workflow"
)

// orderRow is an order with its status color and action menu.
type orderRow struct {
	model.Order
	Color string
	Menu  []workflow.MenuItem
}

func orderRows(orders []model.Order, roles model.Roles, base string) []orderRow {
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		d := workflow.Decide(workflow.Order, o.StatusName(), roles)
		rows = append(rows, orderRow{
			Order: o,
			Color: d.Color,
			Menu:  workflow.Menu(d, fmt.Sprintf("%s/%d", base, o.ID)),
		})
	}
	return rows
}

func tabOrders(orders []model.Order, q url.Values) ([]table.Tab, []model.Order) {
	found := table.Search(orders, q.Get("q"), table.OrderFields)
	return table.Tabs(found, table.OrderTabs, q.Get("tab"), table.OrderStatus)
}

// OrdersPage handles GET /orders.
func (s *Server) OrdersPage(w http.ResponseWriter, r *http.Request) {
	s.ordersPage(w, r, "/orders", "Orders", "orders")
}

// CustomerOrdersPage handles GET /customerOrders, a customer's own orders.
func (s *Server) CustomerOrdersPage(w http.ResponseWriter, r *http.Request) {
	s.ordersPage(w, r, "/customerOrders", "My Orders", "customerOrders")
}

func (s *Server) ordersPage(w http.ResponseWriter, r *http.Request, base, title, active string) {
	orders, err := s.Backend.Orders(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sess := GetSession(r.Context())
	tabs, selected := tabOrders(orders, r.URL.Query())
	roles := sess.Roles
	if active == "customerOrders" {
		// Customers follow their orders but never move them.
		roles = nil
	}

	s.Templates.Render(w, "orders.html", &struct {
		PageData
		Base string
		Tabs []table.Tab
		Rows []orderRow
	}{
		PageData: page(r, title, active),
		Base:     base,
		Tabs:     tabs,
		Rows:     orderRows(selected, roles, base),
	})
}

// OrdersExport handles GET /orders/export.
func (s *Server) OrdersExport(w http.ResponseWriter, r *http.Request) {
	orders, err := s.Backend.Orders(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	_, selected := tabOrders(orders, r.URL.Query())
	writeExport(w, "Orders", export.OrderColumns, selected)
}

// OrderDetailPage handles GET /orders/{id}. With ?item=N the allocations of
// that line are loaded too.
func (s *Server) OrderDetailPage(w http.ResponseWriter, r *http.Request) {
	s.orderDetail(w, r, "/orders", "orders")
}

// CustomerOrderDetailPage handles GET /customerOrders/{id}.
func (s *Server) CustomerOrderDetailPage(w http.ResponseWriter, r *http.Request) {
	s.orderDetail(w, r, "/customerOrders", "customerOrders")
}

func (s *Server) orderDetail(w http.ResponseWriter, r *http.Request, base, active string) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return
	}

	var order *model.Order
	var allocations []model.Allocation
	var l refdata.Loader
	refdata.Add(&l, &order, func(ctx context.Context) (*model.Order, error) {
		return s.Backend.Order(ctx, id)
	})

	itemID, _ := parseID(r.URL.Query().Get("item"))
	if itemID > 0 {
		refdata.Add(&l, &allocations, func(ctx context.Context) ([]model.Allocation, error) {
			return s.Backend.OrderItemAllocations(ctx, id, itemID)
		})
	}
	if err := l.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}

	sess := GetSession(r.Context())
	var menu []workflow.MenuItem
	d := workflow.Decide(workflow.Order, order.StatusName(), sess.Roles)
	if active == "orders" {
		menu = workflow.Menu(d, fmt.Sprintf("%s/%d", base, id))
	}

	s.Templates.Render(w, "order_detail.html", &struct {
		PageData
		Base        string
		Order       *model.Order
		Color       string
		Menu        []workflow.MenuItem
		ItemID      int64
		Allocations []model.Allocation
	}{
		PageData:    page(r, "Order "+order.MegaionOrderNumber, active),
		Base:        base,
		Order:       order,
		Color:       d.Color,
		Menu:        menu,
		ItemID:      itemID,
		Allocations: allocations,
	})
}

// OrderStatusPage handles GET /orders/{id}/status?to=N.
func (s *Server) OrderStatusPage(w http.ResponseWriter, r *http.Request) {
	s.confirmStatus(w, r, s.orderTransition())
}

// OrderStatusSubmit handles POST /orders/{id}/status.
func (s *Server) OrderStatusSubmit(w http.ResponseWriter, r *http.Request) {
	s.submitStatus(w, r, s.orderTransition())
}
