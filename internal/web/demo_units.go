package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/form"
	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/refdata"
	"github.com/erazemk/konzola/internal/table"
)

// DemoUnitsPage handles GET /demoUnits.
func (s *Server) DemoUnitsPage(w http.ResponseWriter, r *http.Request) {
	units, err := s.Backend.DemoUnits(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderDemoUnits(w, r, units, "")
}

func (s *Server) renderDemoUnits(w http.ResponseWriter, r *http.Request, units []model.DemoUnit, errMsg string) {
	q := r.URL.Query()
	found := table.Search(units, q.Get("q"), table.DemoUnitFields)
	tabs, rows := table.Tabs(found, table.DemoTabs, q.Get("tab"), table.DemoState)

	data := &struct {
		PageData
		Tabs []table.Tab
		Rows []model.DemoUnit
	}{
		PageData: page(r, "Demo Units", "demoUnits"),
		Tabs:     tabs,
		Rows:     rows,
	}
	data.Error = errMsg
	s.Templates.Render(w, "demo_units.html", data)
}

type demoUnitFormPage struct {
	PageData
	Unit      *model.DemoUnit
	Suppliers []model.Supplier
	Machines  []model.Product
	Stocks    []model.IncomingStock
	Companies []model.Company
	Users     []model.User
}

// loadDemoUnitForm loads the cascading choices: supplier, then the
// supplier's machines, then the chosen machine's available units.
func (s *Server) loadDemoUnitForm(r *http.Request, title string, values url.Values) (*demoUnitFormPage, error) {
	data := &demoUnitFormPage{PageData: page(r, title, "demoUnits")}
	data.Values = values

	var products []model.Product
	var l refdata.Loader
	refdata.Add(&l, &data.Suppliers, s.Backend.Suppliers)
	refdata.Add(&l, &products, s.Backend.Products)
	refdata.Add(&l, &data.Companies, s.Backend.Companies)
	refdata.Add(&l, &data.Users, s.Backend.Users)
	if productID, ok := parseID(values.Get("product_id")); ok {
		refdata.Add(&l, &data.Stocks, func(ctx context.Context) ([]model.IncomingStock, error) {
			return s.Backend.AvailableIncomingStocks(ctx, productID)
		})
	}
	if err := l.Load(r.Context()); err != nil {
		return nil, err
	}

	supplierID, _ := parseID(values.Get("supplier_id"))
	data.Machines = table.Filter(products, func(p model.Product) bool {
		return p.IsMachine && (supplierID == 0 || p.SupplierID == supplierID)
	})
	return data, nil
}

// DemoUnitNewPage handles GET /demoUnits/new.
func (s *Server) DemoUnitNewPage(w http.ResponseWriter, r *http.Request) {
	data, err := s.loadDemoUnitForm(r, "New Demo Unit", r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Templates.Render(w, "demo_unit_form.html", data)
}

// DemoUnitEditPage handles GET /demoUnits/{id}/edit.
func (s *Server) DemoUnitEditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return
	}
	units, err := s.Backend.DemoUnits(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var unit *model.DemoUnit
	for i := range units {
		if units[i].ID == id {
			unit = &units[i]
		}
	}
	if unit == nil {
		s.Templates.RenderStatus(w, http.StatusNotFound, "error.html", &PageData{
			Title:   "Not Found",
			Session: GetSession(r.Context()),
			Error:   "Demo unit not found.",
		})
		return
	}

	values := demoUnitValues(unit)
	for k, v := range r.URL.Query() {
		values[k] = v
	}
	data, err := s.loadDemoUnitForm(r, "Update Demo Unit", values)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data.Unit = unit
	if unit.IncomingStock != nil && len(data.Stocks) == 0 {
		// The lent unit is not available any more, so offer it explicitly.
		data.Stocks = []model.IncomingStock{*unit.IncomingStock}
	}
	s.Templates.Render(w, "demo_unit_form.html", data)
}

func demoUnitValues(d *model.DemoUnit) url.Values {
	v := url.Values{}
	if d.IncomingStock != nil {
		v.Set("product_id", fmt.Sprint(d.IncomingStock.ProductID))
		if d.IncomingStock.Product != nil && d.IncomingStock.Product.SupplierID > 0 {
			v.Set("supplier_id", fmt.Sprint(d.IncomingStock.Product.SupplierID))
		}
	}
	v.Set("incoming_stock_id", fmt.Sprint(d.IncomingStockID))
	v.Set("company_id", fmt.Sprint(d.CompanyID))
	v.Set("assigned_person_id", fmt.Sprint(d.AssignedPersonID))
	v.Set("demo_start", d.DemoStart.ISO())
	v.Set("demo_end", d.DemoEnd.ISO())
	v.Set("notes", d.Notes)
	return v
}

// DemoUnitCreateSubmit handles POST /demoUnits.
func (s *Server) DemoUnitCreateSubmit(w http.ResponseWriter, r *http.Request) {
	s.saveDemoUnit(w, r, 0)
}

// DemoUnitUpdateSubmit handles POST /demoUnits/{id}.
func (s *Server) DemoUnitUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return
	}
	s.saveDemoUnit(w, r, id)
}

func (s *Server) saveDemoUnit(w http.ResponseWriter, r *http.Request, id int64) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, "invalid form")
		return
	}
	f := form.New(r.PostForm)
	payload := form.DemoUnit(f, id == 0)

	errMsg := ""
	if f.Valid() {
		var err error
		if id == 0 {
			err = s.Backend.CreateDemoUnit(r.Context(), payload)
		} else {
			err = s.Backend.UpdateDemoUnit(r.Context(), id, payload)
		}
		if err == nil {
			slog.Info("demo unit saved", "user_id", GetSession(r.Context()).User.ID, "id", id,
				"incoming_stock_id", payload.IncomingStockID, "company_id", payload.CompanyID)
			http.Redirect(w, r, "/demoUnits", http.StatusSeeOther)
			return
		}
		if client.IsUnauthorized(err) {
			s.fail(w, r, err)
			return
		}
		errMsg = client.Message(err)
	}

	title := "New Demo Unit"
	if id > 0 {
		title = "Update Demo Unit"
	}
	data, err := s.loadDemoUnitForm(r, title, r.PostForm)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if id > 0 {
		data.Unit = &model.DemoUnit{ID: id}
	}
	data.Errors = f.Errors
	data.Error = errMsg
	s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "demo_unit_form.html", data)
}

// DemoUnitDeleteSubmit handles POST /demoUnits/{id}/delete.
func (s *Server) DemoUnitDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return
	}
	list, err := mutateList(r.Context(), func(ctx context.Context) error {
		return s.Backend.DeleteDemoUnit(ctx, id)
	}, s.Backend.DemoUnits)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	errMsg := ""
	if list.Error != nil {
		errMsg = client.Message(list.Error)
	} else {
		slog.Info("demo unit deleted", "user_id", GetSession(r.Context()).User.ID, "id", id)
	}
	s.renderDemoUnits(w, r, list.Rows, errMsg)
}
