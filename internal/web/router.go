package web

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/erazemk/konzola/internal/cart"
	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/metrics"
	"github.com/erazemk/konzola/internal/model"
	webembed "github.com/erazemk/konzola/web"
)

// Config carries the router's dependencies.
type Config struct {
	DB         *sql.DB
	Backend    *client.Client
	JWTSecret  string
	SealKey    *[32]byte
	SessionTTL time.Duration
	Metrics    *metrics.Metrics
	Secure     bool
	// Carts holds storefront carts; a fresh store is used when nil.
	Carts      *cart.Store
}

// NewRouter creates the web page router with all page routes registered.
func NewRouter(cfg Config) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	carts := cfg.Carts
	if carts == nil {
		carts = cart.NewStore()
	}

	s := &Server{
		DB:         cfg.DB,
		Backend:    cfg.Backend,
		Templates:  templates,
		JWTSecret:  cfg.JWTSecret,
		SealKey:    cfg.SealKey,
		SessionTTL: cfg.SessionTTL,
		Carts:      carts,
		Metrics:    cfg.Metrics,
		Secure:     cfg.Secure,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)

	// Authenticated routes. Every page below is also checked against the
	// operator's role menu.
	authed := func(h http.HandlerFunc) http.Handler {
		return s.CookieAuthMiddleware(s.RequireAccess(h))
	}
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	mux.Handle("POST /logout", s.CookieAuthMiddleware(http.HandlerFunc(s.Logout)))
	handle("GET /{$}", s.Home)
	handle("GET /dashboard", s.Dashboard)

	handle("GET /products", s.ProductsPage)
	handle("GET /products/export", s.ProductsExport)
	handle("GET /products/new", s.ProductNewPage)
	handle("POST /products", s.ProductCreateSubmit)
	handle("GET /products/{id}", s.ProductDetailPage)
	handle("GET /products/{id}/edit", s.ProductEditPage)
	handle("POST /products/{id}", s.ProductUpdateSubmit)
	handle("POST /products/{id}/delete", s.ProductDeleteSubmit)

	handle("GET /purchaseOrders", s.PurchaseOrdersPage)
	handle("GET /purchaseOrders/export", s.PurchaseOrdersExport)
	handle("GET /purchaseOrders/new", s.PurchaseOrderNewPage)
	handle("POST /purchaseOrders", s.PurchaseOrderCreateSubmit)
	handle("GET /purchaseOrders/{id}", s.PurchaseOrderDetailPage)
	handle("GET /purchaseOrders/{id}/status", s.PurchaseOrderStatusPage)
	handle("POST /purchaseOrders/{id}/status", s.PurchaseOrderStatusSubmit)
	handle("GET /purchaseOrders/{id}/receive", s.PurchaseOrderReceivePage)
	handle("POST /purchaseOrders/{id}/receive", s.PurchaseOrderReceiveSubmit)

	handle("GET /orders", s.OrdersPage)
	handle("GET /orders/export", s.OrdersExport)
	handle("GET /orders/{id}", s.OrderDetailPage)
	handle("GET /orders/{id}/status", s.OrderStatusPage)
	handle("POST /orders/{id}/status", s.OrderStatusSubmit)

	handle("GET /demoUnits", s.DemoUnitsPage)
	handle("GET /demoUnits/new", s.DemoUnitNewPage)
	handle("POST /demoUnits", s.DemoUnitCreateSubmit)
	handle("GET /demoUnits/{id}/edit", s.DemoUnitEditPage)
	handle("POST /demoUnits/{id}", s.DemoUnitUpdateSubmit)
	handle("POST /demoUnits/{id}/delete", s.DemoUnitDeleteSubmit)

	handle("GET /servicing", s.ServicingPage)
	handle("GET /servicing/export", s.ServicingExport)
	handle("GET /servicing/{serial}", s.ServiceRecordsPage)
	handle("POST /servicing/{serial}/{kind}", s.ServiceRecordCreateSubmit)
	handle("POST /servicing/{serial}/{kind}/{id}", s.ServiceRecordUpdateSubmit)
	handle("POST /servicing/{serial}/{kind}/{id}/delete", s.ServiceRecordDeleteSubmit)

	s.suppliers().register(s, handle)
	s.customers().register(s, handle)
	s.users().register(s, handle)
	s.registerNamed(model.KindLocations, "Locations", handle)
	s.registerNamed(model.KindWarehouses, "Warehouses", handle)
	s.registerNamed(model.KindProductUnits, "Product Units", handle)
	s.registerNamed(model.KindTags, "Tags", handle)

	handle("GET /ecommerce", s.ShopPage)
	handle("GET /ecommerce/cart", s.CartPage)
	handle("POST /ecommerce/cart", s.CartAddSubmit)
	handle("POST /ecommerce/cart/{id}", s.CartUpdateSubmit)
	handle("POST /ecommerce/checkout", s.CheckoutSubmit)

	handle("GET /customerOrders", s.CustomerOrdersPage)
	handle("GET /customerOrders/{id}", s.CustomerOrderDetailPage)

	return mux, nil
}
