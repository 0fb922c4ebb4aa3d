package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/erazemk/konzola/internal/model"
)

func setupBackend(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestNewRejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "ftp://example.com", "://bad"} {
		if _, err := New(u); err == nil {
			t.Errorf("New(%q): expected error", u)
		}
	}
}

func TestTokenReadPerRequest(t *testing.T) {
	var seen []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/statuses", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		writeJSON(w, []model.Status{{ID: 1, Name: "Pending"}})
	})
	c := setupBackend(t, mux)

	if _, err := c.Statuses(ContextWithToken(context.Background(), "first")); err != nil {
		t.Fatalf("Statuses: %v", err)
	}
	if _, err := c.Statuses(ContextWithToken(context.Background(), "second")); err != nil {
		t.Fatalf("Statuses: %v", err)
	}
	if _, err := c.Statuses(context.Background()); err != nil {
		t.Fatalf("Statuses: %v", err)
	}

	want := []string{"Bearer first", "Bearer second", ""}
	if len(seen) != len(want) {
		t.Fatalf("expected %d requests, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("request %d: expected Authorization %q, got %q", i, want[i], seen[i])
		}
	}
}

func TestRequestIDForwarded(t *testing.T) {
	var got string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/statuses", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		writeJSON(w, []model.Status{})
	})
	c := setupBackend(t, mux)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	if _, err := c.Statuses(ctx); err != nil {
		t.Fatalf("Statuses: %v", err)
	}
	if got != "req-1" {
		t.Errorf("expected X-Request-ID req-1, got %q", got)
	}
}

func TestAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, map[string]string{"message": "Unauthenticated."})
	})
	mux.HandleFunc("GET /api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such order", http.StatusNotFound)
	})
	c := setupBackend(t, mux)

	_, err := c.Orders(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Unauthenticated." {
		t.Errorf("unexpected error: %+v", apiErr)
	}
	if apiErr.Method != http.MethodGet || apiErr.Path != "/api/orders" {
		t.Errorf("unexpected method/path: %s %s", apiErr.Method, apiErr.Path)
	}
	if !IsUnauthorized(err) {
		t.Error("expected IsUnauthorized")
	}

	_, err = c.Order(context.Background(), 7)
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if Message(err) != "no such order" {
		t.Errorf("expected plain text message, got %q", Message(err))
	}
}

func TestTransportErrorWrapped(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	c, err := New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	server.Close()

	_, err = c.Orders(context.Background())
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure should not be an APIError: %v", err)
	}
	if !strings.Contains(err.Error(), "GET /api/orders") {
		t.Errorf("expected method and path in error, got %v", err)
	}
}

func TestContextCancelStopsRequest(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	c := setupBackend(t, mux)
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Orders(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestSchemaValidation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id": 1, "status": {"id": 1, "name": "Pending"}}, {"id": 2}]`)
	})
	mux.HandleFunc("GET /api/demoUnits", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"not": "a list"}`)
	})
	c := setupBackend(t, mux)

	_, err := c.Orders(context.Background())
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	var shapeErr *model.ShapeError
	if !errors.As(err, &shapeErr) || shapeErr.Field != "status" {
		t.Errorf("expected missing status, got %v", err)
	}

	_, err = c.DemoUnits(context.Background())
	if !errors.As(err, &schemaErr) {
		t.Errorf("expected *SchemaError for wrong shape, got %v", err)
	}
}

func TestOrdersNormalized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id": 1, "total_amount": "1500.50", "status": {"id": 1, "name": "Pending"}}]`)
	})
	c := setupBackend(t, mux)

	orders, err := c.Orders(context.Background())
	if err != nil {
		t.Fatalf("Orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].OrderItems == nil {
		t.Error("expected order items to be normalized to an empty slice")
	}
	if orders[0].TotalAmount.String() != "1500.5" {
		t.Errorf("expected total 1500.5, got %s", orders[0].TotalAmount)
	}
}

func TestStatusUpdateVerbs(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]int64
	}
	var calls []call
	record := func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int64
		json.NewDecoder(r.Body).Decode(&body)
		calls = append(calls, call{r.Method, r.URL.Path, body})
		w.WriteHeader(http.StatusNoContent)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/", record)
	c := setupBackend(t, mux)

	ctx := context.Background()
	if err := c.UpdateOrderStatus(ctx, 5, model.StatusApproved); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if err := c.UpdatePurchaseOrderStatus(ctx, 9, model.StatusForReceiving); err != nil {
		t.Fatalf("UpdatePurchaseOrderStatus: %v", err)
	}

	want := []call{
		{http.MethodPatch, "/api/orders/5/status", map[string]int64{"status_id": 2}},
		{http.MethodPut, "/api/purchaseOrders/9/status", map[string]int64{"status_id": 33}},
	}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(calls))
	}
	for i := range want {
		if calls[i].method != want[i].method || calls[i].path != want[i].path {
			t.Errorf("call %d: expected %s %s, got %s %s", i, want[i].method, want[i].path, calls[i].method, calls[i].path)
		}
		if calls[i].body["status_id"] != want[i].body["status_id"] {
			t.Errorf("call %d: expected status_id %d, got %d", i, want[i].body["status_id"], calls[i].body["status_id"])
		}
	}
}

func TestPurchaseOrdersEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/purchaseOrders", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"purchase_orders": [{"id": 3, "ponumber": "PO-3", "status": {"id": 33, "name": "For Receiving"}}]}`)
	})
	c := setupBackend(t, mux)

	pos, err := c.PurchaseOrders(context.Background())
	if err != nil {
		t.Fatalf("PurchaseOrders: %v", err)
	}
	if len(pos) != 1 || pos[0].PONumber != "PO-3" || pos[0].StatusName() != "For Receiving" {
		t.Errorf("unexpected purchase orders: %+v", pos)
	}
}

func TestServiceRecordsDateField(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/warrantyClaims/{serial}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("serial") != "SN 1" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `[{"id": 4, "serial_number": "SN 1", "claim_date": "2024-03-05", "description": "Fan", "performed_by": "Ana"}]`)
	})
	var posted map[string]any
	mux.HandleFunc("POST /api/calibrationRecords", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&posted)
		w.WriteHeader(http.StatusCreated)
	})
	c := setupBackend(t, mux)
	ctx := context.Background()

	records, err := c.ServiceRecords(ctx, model.ServiceWarranty, "SN 1")
	if err != nil {
		t.Fatalf("ServiceRecords: %v", err)
	}
	if len(records) != 1 || records[0].Date.ISO() != "2024-03-05" {
		t.Fatalf("expected claim date mapped onto Date, got %+v", records)
	}

	date, _ := model.ParseDate("2024-04-01")
	err = c.CreateServiceRecord(ctx, model.ServiceCalibration, model.ServiceRecord{
		SerialNumber: "SN 1", Date: date, Description: "Yearly", PerformedBy: "Ana",
	})
	if err != nil {
		t.Fatalf("CreateServiceRecord: %v", err)
	}
	if posted["calibration_date"] != "2024-04-01" {
		t.Errorf("expected calibration_date in payload, got %v", posted)
	}

	if _, err := c.ServiceRecords(ctx, "oil change", "SN 1"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestMonthlyRevenueKeepsOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/report/getMonthlyRevenue", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"monthly_revenue": {"March": "30.00", "January": 10, "February": "20.5"}}`)
	})
	mux.HandleFunc("GET /api/report/outOfStocks", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"out_of_stock_count": 4}`)
	})
	c := setupBackend(t, mux)
	ctx := context.Background()

	months, err := c.MonthlyRevenue(ctx)
	if err != nil {
		t.Fatalf("MonthlyRevenue: %v", err)
	}
	want := []string{"March", "January", "February"}
	if len(months) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(months))
	}
	for i, m := range want {
		if months[i].Month != m {
			t.Errorf("month %d: expected %s, got %s", i, m, months[i].Month)
		}
	}
	if months[2].Revenue.String() != "20.5" {
		t.Errorf("expected 20.5, got %s", months[2].Revenue)
	}

	n, err := c.ReportCount(ctx, ReportOutOfStock, "out_of_stock_count")
	if err != nil || n != 4 {
		t.Errorf("ReportCount: got %d, %v", n, err)
	}
	if _, err := c.ReportCount(ctx, ReportOutOfStock, "below_minimum_count"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestObserver(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/tags/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	var gotStatus int
	var gotPath string
	c, err := New(server.URL, WithObserver(func(method, path string, status int, elapsed time.Duration) {
		gotPath = method + " " + path
		gotStatus = status
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.DeleteNamed(context.Background(), model.KindTags, 3); err != nil {
		t.Fatalf("DeleteNamed: %v", err)
	}
	if gotPath != "DELETE /api/tags/3" || gotStatus != http.StatusNoContent {
		t.Errorf("observer saw %q %d", gotPath, gotStatus)
	}

	if err := c.DeleteNamed(context.Background(), "shelves", 3); err == nil {
		t.Error("expected error for unknown directory")
	}
}

func TestLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"message": "Invalid credentials"})
			return
		}
		io.WriteString(w, `{"token": "abc", "user": {"id": 1, "full_name": "Ana", "email": "ana@example.com", "roles": [{"name": "Admin"}]}}`)
	})
	c := setupBackend(t, mux)

	res, err := c.Login(context.Background(), "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "abc" || !res.User.Roles.Has(model.RoleAdmin) {
		t.Errorf("unexpected login result: %+v", res)
	}

	_, err = c.Login(context.Background(), "ana@example.com", "wrong")
	if Message(err) != "Invalid credentials" {
		t.Errorf("expected backend message, got %v", err)
	}
}
