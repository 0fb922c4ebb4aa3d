package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/export"
	"github.com/erazemk/konzola/internal/form"
	"github.com/erazemk/konzola/internal/imaging"
	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/refdata"
	"github.com/erazemk/konzola/internal/table"
)

// productRow is a product with its display-ready lot counts.
type productRow struct {
	model.Product
	Lots table.LotCounts
}

// filterProducts applies the list query: q, type, level, tag and the
// dashboard's defaultFilter shortcut.
func filterProducts(products []model.Product, q url.Values) []model.Product {
	level := q.Get("level")
	if level == "" {
		level = table.DefaultQuantityLevel(q.Get("defaultFilter"))
	}

	filters := []func(model.Product) bool{table.MachineFilter(q.Get("type"))}
	if level != "" {
		filters = append(filters, table.Equal(level, func(p model.Product) string { return p.QuantityLevel }))
	}
	if tag := q.Get("tag"); tag != "" {
		filters = append(filters, table.Contains(tag, func(p model.Product) []string { return p.TagNames() }))
	}

	rows := table.Search(products, q.Get("q"), table.ProductFields)
	return table.Filter(rows, table.All(filters...))
}

// ProductsPage handles GET /products.
func (s *Server) ProductsPage(w http.ResponseWriter, r *http.Request) {
	products, err := s.Backend.Products(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderProducts(w, r, products, "")
}

func (s *Server) renderProducts(w http.ResponseWriter, r *http.Request, products []model.Product, errMsg string) {
	q := r.URL.Query()
	if q.Get("level") == "" {
		q.Set("level", table.DefaultQuantityLevel(q.Get("defaultFilter")))
	}

	filtered := filterProducts(products, q)
	rows := make([]productRow, 0, len(filtered))
	for _, p := range filtered {
		rows = append(rows, productRow{Product: p, Lots: table.CountLots(p)})
	}

	data := &struct {
		PageData
		Rows   []productRow
		Tags   []string
		Levels []string
	}{
		PageData: page(r, "Products", "products"),
		Rows:     rows,
		Tags:     table.Distinct(products, func(p model.Product) []string { return p.TagNames() }),
		Levels: []string{
			model.QuantityLevelNoStock,
			model.QuantityLevelBelowMinimum,
			model.QuantityLevelAboveMinimum,
		},
	}
	data.Values = q
	data.Error = errMsg
	s.Templates.Render(w, "products.html", data)
}

// ProductsExport handles GET /products/export. The export honours the list
// filters.
func (s *Server) ProductsExport(w http.ResponseWriter, r *http.Request) {
	products, err := s.Backend.Products(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeExport(w, "Products", export.ProductColumns, filterProducts(products, r.URL.Query()))
}

type productFormPage struct {
	PageData
	Product *model.Product
	Refs    *productRefs
}

// ProductNewPage handles GET /products/new.
func (s *Server) ProductNewPage(w http.ResponseWriter, r *http.Request) {
	refs, err := s.loadProductRefs(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Templates.Render(w, "product_form.html", &productFormPage{
		PageData: page(r, "New Product", "products"),
		Refs:     refs,
	})
}

// ProductEditPage handles GET /products/{id}/edit.
func (s *Server) ProductEditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return
	}

	var product *model.Product
	var refs *productRefs
	var l refdata.Loader
	refdata.Add(&l, &product, func(ctx context.Context) (*model.Product, error) {
		return s.Backend.Product(ctx, id)
	})
	refdata.Add(&l, &refs, s.loadProductRefs)
	if err := l.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}

	data := &productFormPage{
		PageData: page(r, "Update Product", "products"),
		Product:  product,
		Refs:     refs,
	}
	data.Values = productValues(product)
	s.Templates.Render(w, "product_form.html", data)
}

// productValues fills the edit form from a product.
func productValues(p *model.Product) url.Values {
	v := url.Values{}
	v.Set("name", p.Name)
	v.Set("model", p.Model)
	v.Set("sku", p.SKU)
	v.Set("barcode", p.Barcode)
	v.Set("description", p.Description)
	if p.IsMachine {
		v.Set("is_machine", "on")
	}
	v.Set("minimum_quantity", fmt.Sprint(p.MinimumQuantity))
	if p.SupplierID > 0 {
		v.Set("supplier_id", fmt.Sprint(p.SupplierID))
	}
	for field, id := range map[string]*int64{
		"warehouse_id":    p.WarehouseID,
		"location_id":     p.LocationID,
		"product_unit_id": p.ProductUnitID,
	} {
		if id != nil {
			v.Set(field, fmt.Sprint(*id))
		}
	}
	for _, t := range p.Tags {
		v.Add("tags", fmt.Sprint(t.ID))
	}
	v.Set("supplier_price", p.SupplierPrice.String())
	v.Set("profit_margin", p.ProfitMargin.String())
	v.Set("default_selling_price", p.DefaultSellingPrice.String())
	return v
}

// photo reads the optional product photo from a multipart form.
func photo(r *http.Request) (*imaging.ProcessResult, error) {
	file, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return imaging.Process(file)
}

// ProductCreateSubmit handles POST /products.
func (s *Server) ProductCreateSubmit(w http.ResponseWriter, r *http.Request) {
	s.saveProduct(w, r, 0)
}

// ProductUpdateSubmit handles POST /products/{id}.
func (s *Server) ProductUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return
	}
	s.saveProduct(w, r, id)
}

func (s *Server) saveProduct(w http.ResponseWriter, r *http.Request, id int64) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUpload+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.badRequest(w, r, "upload too large")
		return
	}

	f := form.New(r.PostForm)
	payload := form.Product(f)
	img, imgErr := photo(r)
	if imgErr != nil {
		f.Errors.Add("image", imgErr.Error())
	}

	title := "New Product"
	if id > 0 {
		title = "Update Product"
	}
	rerender := func(code int, errMsg string) {
		refs, err := s.loadProductRefs(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		data := &productFormPage{PageData: page(r, title, "products"), Refs: refs}
		if id > 0 {
			data.Product = &model.Product{ID: id}
		}
		data.Values = r.PostForm
		data.Errors = f.Errors
		data.Error = errMsg
		s.Templates.RenderStatus(w, code, "product_form.html", data)
	}

	if !f.Valid() {
		rerender(http.StatusUnprocessableEntity, "")
		return
	}

	ctx := r.Context()
	if id == 0 {
		created, err := s.Backend.CreateProduct(ctx, payload)
		if err != nil {
			if client.IsUnauthorized(err) {
				s.fail(w, r, err)
				return
			}
			rerender(http.StatusBadGateway, client.Message(err))
			return
		}
		id = created.ID
		slog.Info("product created", "user_id", GetSession(ctx).User.ID, "product_id", id, "name", payload.Name)
	} else {
		if err := s.Backend.UpdateProduct(ctx, id, payload); err != nil {
			if client.IsUnauthorized(err) {
				s.fail(w, r, err)
				return
			}
			rerender(http.StatusBadGateway, client.Message(err))
			return
		}
		slog.Info("product updated", "user_id", GetSession(ctx).User.ID, "product_id", id)
	}

	if img != nil {
		if err := s.Backend.UploadProductImage(ctx, id, img.Data, img.MIME); err != nil {
			// The product itself is saved; report the photo problem on its page.
			slog.Error("failed to upload product image", "product_id", id, "error", err)
			http.Redirect(w, r, fmt.Sprintf("/products/%d?error=%s", id, url.QueryEscape("The photo could not be uploaded.")), http.StatusSeeOther)
			return
		}
	}
	http.Redirect(w, r, fmt.Sprintf("/products/%d", id), http.StatusSeeOther)
}

// ProductDetailPage handles GET /products/{id}: stock lots or serials and
// the stock movement log.
func (s *Server) ProductDetailPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return
	}

	var product *model.Product
	var logs []model.ProductLog
	var l refdata.Loader
	refdata.Add(&l, &product, func(ctx context.Context) (*model.Product, error) {
		return s.Backend.Product(ctx, id)
	})
	refdata.Add(&l, &logs, func(ctx context.Context) ([]model.ProductLog, error) {
		return s.Backend.ProductLogs(ctx, id)
	})
	if err := l.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}

	tabs, stocks := table.Tabs(product.IncomingStocks, table.LotTabs, r.URL.Query().Get("tab"), table.LotStatus)
	if product.IsMachine {
		tabs, stocks = nil, product.IncomingStocks
	}

	data := &struct {
		PageData
		Product *model.Product
		Lots    table.LotCounts
		Tabs    []table.Tab
		Stocks  []model.IncomingStock
		Logs    []model.ProductLog
	}{
		PageData: page(r, product.Name, "products"),
		Product:  product,
		Lots:     table.CountLots(*product),
		Tabs:     tabs,
		Stocks:   stocks,
		Logs:     logs,
	}
	data.Error = r.URL.Query().Get("error")
	s.Templates.Render(w, "product_detail.html", data)
}

// ProductDeleteSubmit handles POST /products/{id}/delete.
func (s *Server) ProductDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return
	}

	list, err := mutateList(r.Context(), func(ctx context.Context) error {
		return s.Backend.DeleteProduct(ctx, id)
	}, s.Backend.Products)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list.Error == nil {
		slog.Info("product deleted", "user_id", GetSession(r.Context()).User.ID, "product_id", id)
	}

	errMsg := ""
	if list.Error != nil {
		errMsg = client.Message(list.Error)
	}
	s.renderProducts(w, r, list.Rows, errMsg)
}
