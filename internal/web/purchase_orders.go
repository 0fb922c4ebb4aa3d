package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/export"
	"github.com/erazemk/konzola/internal/form"
	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/refdata"
	"github.com/erazemk/konzola/internal/table"
	"github.com/erazemk/konzola/internal/workflow"
)

// blankLines is how many empty lines the purchase order form offers.
const blankLines = 3

type purchaseOrderRow struct {
	model.PurchaseOrder
	Color string
	Menu  []workflow.MenuItem
}

func tabPurchaseOrders(pos []model.PurchaseOrder, q url.Values) ([]table.Tab, []model.PurchaseOrder) {
	found := table.Search(pos, q.Get("q"), table.PurchaseOrderFields)
	return table.Tabs(found, table.PurchaseOrderTabs, q.Get("tab"), table.PurchaseOrderStatus)
}

// PurchaseOrdersPage handles GET /purchaseOrders.
func (s *Server) PurchaseOrdersPage(w http.ResponseWriter, r *http.Request) {
	pos, err := s.Backend.PurchaseOrders(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sess := GetSession(r.Context())
	tabs, selected := tabPurchaseOrders(pos, r.URL.Query())
	rows := make([]purchaseOrderRow, 0, len(selected))
	for _, po := range selected {
		d := workflow.Decide(workflow.PurchaseOrder, po.StatusName(), sess.Roles)
		rows = append(rows, purchaseOrderRow{
			PurchaseOrder: po,
			Color:         d.Color,
			Menu:          workflow.Menu(d, fmt.Sprintf("/purchaseOrders/%d", po.ID)),
		})
	}

	s.Templates.Render(w, "purchase_orders.html", &struct {
		PageData
		Tabs []table.Tab
		Rows []purchaseOrderRow
	}{
		PageData: page(r, "Purchase Orders", "purchaseOrders"),
		Tabs:     tabs,
		Rows:     rows,
	})
}

// PurchaseOrdersExport handles GET /purchaseOrders/export.
func (s *Server) PurchaseOrdersExport(w http.ResponseWriter, r *http.Request) {
	pos, err := s.Backend.PurchaseOrders(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	_, selected := tabPurchaseOrders(pos, r.URL.Query())
	writeExport(w, "PurchaseOrders", export.PurchaseOrderColumns, selected)
}

// PurchaseOrderDetailPage handles GET /purchaseOrders/{id}.
func (s *Server) PurchaseOrderDetailPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return
	}
	po, err := s.Backend.PurchaseOrder(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sess := GetSession(r.Context())
	d := workflow.Decide(workflow.PurchaseOrder, po.StatusName(), sess.Roles)
	s.Templates.Render(w, "purchase_order_detail.html", &struct {
		PageData
		PO    *model.PurchaseOrder
		Color string
		Menu  []workflow.MenuItem
	}{
		PageData: page(r, "Purchase Order "+po.PONumber, "purchaseOrders"),
		PO:       po,
		Color:    d.Color,
		Menu:     workflow.Menu(d, fmt.Sprintf("/purchaseOrders/%d", id)),
	})
}

// PurchaseOrderStatusPage handles GET /purchaseOrders/{id}/status?to=N.
func (s *Server) PurchaseOrderStatusPage(w http.ResponseWriter, r *http.Request) {
	s.confirmStatus(w, r, s.purchaseOrderTransition())
}

// PurchaseOrderStatusSubmit handles POST /purchaseOrders/{id}/status.
func (s *Server) PurchaseOrderStatusSubmit(w http.ResponseWriter, r *http.Request) {
	s.submitStatus(w, r, s.purchaseOrderTransition())
}

// poLine is one prefilled line of the purchase order form.
type poLine struct {
	ProductID int64
	Quantity  string
	UnitPrice string
}

type purchaseOrderFormPage struct {
	PageData
	Suppliers  []model.Supplier
	Products   []model.Product
	Lines      []poLine
	Similar    []model.Product
	SupplierID int64
}

// newPurchaseOrderPage builds the form. Products are limited to the chosen
// supplier and the selected products' tag neighbours are suggested.
func (s *Server) newPurchaseOrderPage(ctx context.Context, r *http.Request, supplierID int64, lines []poLine) (*purchaseOrderFormPage, error) {
	var suppliers []model.Supplier
	var products []model.Product
	var l refdata.Loader
	refdata.Add(&l, &suppliers, s.Backend.Suppliers)
	refdata.Add(&l, &products, s.Backend.Products)
	if err := l.Load(ctx); err != nil {
		return nil, err
	}

	if supplierID > 0 {
		products = table.Filter(products, func(p model.Product) bool { return p.SupplierID == supplierID })
	}
	selected := make([]int64, 0, len(lines))
	for _, line := range lines {
		if line.ProductID > 0 {
			selected = append(selected, line.ProductID)
		}
	}
	for range blankLines {
		lines = append(lines, poLine{Quantity: "1"})
	}

	return &purchaseOrderFormPage{
		PageData:   page(r, "New Purchase Order", "purchaseOrders"),
		Suppliers:  suppliers,
		Products:   products,
		Lines:      lines,
		Similar:    form.SimilarProducts(products, selected),
		SupplierID: supplierID,
	}, nil
}

// PurchaseOrderNewPage handles GET /purchaseOrders/new. ?supplierId= and
// ?productId= (repeatable) preselect the supplier and lines.
func (s *Server) PurchaseOrderNewPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	supplierID, _ := parseID(q.Get("supplierId"))

	var lines []poLine
	for _, raw := range q["productId"] {
		if id, ok := parseID(raw); ok {
			lines = append(lines, poLine{ProductID: id, Quantity: "1"})
		}
	}

	data, err := s.newPurchaseOrderPage(r.Context(), r, supplierID, lines)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Templates.Render(w, "purchase_order_new.html", data)
}

// PurchaseOrderCreateSubmit handles POST /purchaseOrders.
func (s *Server) PurchaseOrderCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, "invalid form")
		return
	}

	products, err := s.Backend.Products(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	f := form.New(r.PostForm)
	payload := form.PurchaseOrder(f, products)
	if f.Valid() && len(payload.Items) == 0 {
		f.Errors.Add("product_id", form.MsgRequired)
	}

	errMsg := ""
	if f.Valid() {
		err := s.Backend.CreatePurchaseOrder(r.Context(), payload)
		if err == nil {
			slog.Info("purchase order created", "user_id", GetSession(r.Context()).User.ID,
				"supplier_id", payload.SupplierID, "items", payload.TotalItems)
			http.Redirect(w, r, "/purchaseOrders", http.StatusSeeOther)
			return
		}
		if client.IsUnauthorized(err) {
			s.fail(w, r, err)
			return
		}
		errMsg = client.Message(err)
	}

	var lines []poLine
	prices := r.PostForm["unit_price"]
	quantities := r.PostForm["quantity"]
	for i, raw := range r.PostForm["product_id"] {
		id, ok := parseID(raw)
		if !ok {
			continue
		}
		line := poLine{ProductID: id}
		if i < len(quantities) {
			line.Quantity = quantities[i]
		}
		if i < len(prices) {
			line.UnitPrice = prices[i]
		}
		lines = append(lines, line)
	}

	supplierID, _ := parseID(r.PostForm.Get("supplier_id"))
	data, err := s.newPurchaseOrderPage(r.Context(), r, supplierID, lines)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data.Values = r.PostForm
	data.Errors = f.Errors
	data.Error = errMsg
	s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "purchase_order_new.html", data)
}

// canReceive reports whether the operator may record deliveries for po.
func canReceive(po *model.PurchaseOrder, roles model.Roles) bool {
	for _, a := range workflow.Decide(workflow.PurchaseOrder, po.StatusName(), roles).Actions {
		if a.Navigate == "receive" {
			return true
		}
	}
	return false
}

type receivePage struct {
	PageData
	PO       *model.PurchaseOrder
	Item     *model.POItem
	Quantity int
}

// PurchaseOrderReceivePage handles GET /purchaseOrders/{id}/receive. With
// ?item=N the delivery form for that line is shown; for machines ?qty=
// sets how many serial fields it has.
func (s *Server) PurchaseOrderReceivePage(w http.ResponseWriter, r *http.Request) {
	po, ok := s.receivable(w, r)
	if !ok {
		return
	}

	data := &receivePage{PageData: page(r, "Receive "+po.PONumber, "purchaseOrders"), PO: po}
	if itemID, ok := parseID(r.URL.Query().Get("item")); ok {
		item, found := po.Item(itemID)
		if !found {
			s.badRequest(w, r, "unknown purchase order item")
			return
		}
		data.Item = item
		data.Quantity = receiveQuantity(r.URL.Query().Get("qty"), item)
	}
	s.Templates.Render(w, "receive.html", data)
}

func receiveQuantity(raw string, item *model.POItem) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		n = item.Outstanding()
	}
	return n
}

func (s *Server) receivable(w http.ResponseWriter, r *http.Request) (*model.PurchaseOrder, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return nil, false
	}
	po, err := s.Backend.PurchaseOrder(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	if !canReceive(po, GetSession(r.Context()).Roles) {
		s.forbidden(w, r)
		return nil, false
	}
	return po, true
}

// PurchaseOrderReceiveSubmit handles POST /purchaseOrders/{id}/receive.
func (s *Server) PurchaseOrderReceiveSubmit(w http.ResponseWriter, r *http.Request) {
	po, ok := s.receivable(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, "invalid form")
		return
	}
	itemID, _ := parseID(r.PostForm.Get("purchase_order_item_id"))
	item, found := po.Item(itemID)
	if !found {
		s.badRequest(w, r, "unknown purchase order item")
		return
	}

	f := form.New(r.PostForm)
	payload := form.Receive(f, *item)

	errMsg := ""
	if f.Valid() {
		err := s.Backend.ReceivePurchaseOrderItem(r.Context(), po.ID, payload)
		if err == nil {
			slog.Info("purchase order item received", "user_id", GetSession(r.Context()).User.ID,
				"purchase_order_id", po.ID, "item_id", item.ID, "quantity", payload.DeliveredQuantity)
			http.Redirect(w, r, fmt.Sprintf("/purchaseOrders/%d/receive", po.ID), http.StatusSeeOther)
			return
		}
		if client.IsUnauthorized(err) {
			s.fail(w, r, err)
			return
		}
		errMsg = client.Message(err)
	}

	data := &receivePage{
		PageData: page(r, "Receive "+po.PONumber, "purchaseOrders"),
		PO:       po,
		Item:     item,
		Quantity: receiveQuantity(r.PostForm.Get("delivered_quantity"), item),
	}
	data.Values = r.PostForm
	data.Errors = f.Errors
	data.Error = errMsg
	s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "receive.html", data)
}
