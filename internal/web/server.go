package web

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/erazemk/konzola/internal/cart"
	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/metrics"
	"github.com/erazemk/konzola/internal/model"
)

// Server holds all dependencies for page handlers.
type Server struct {
	DB         *sql.DB
	Backend    *client.Client
	Templates  *Templates
	JWTSecret  string
	SealKey    *[32]byte
	SessionTTL time.Duration
	Carts      *cart.Store
	Metrics    *metrics.Metrics

	// Secure marks the session cookie Secure; set when served over TLS.
	Secure bool

	mu       sync.Mutex
	statuses *model.StatusCatalog
}

// Catalog returns the status labels. The backend list is fetched once and
// kept for the life of the process; until a fetch succeeds the built-in
// labels are used.
func (s *Server) Catalog(ctx context.Context) *model.StatusCatalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.statuses != nil {
		return s.statuses
	}
	statuses, err := s.Backend.Statuses(ctx)
	if err != nil || len(statuses) == 0 {
		if err != nil {
			slog.Warn("failed to load statuses, using defaults", "error", err)
		}
		return model.DefaultStatusCatalog()
	}
	s.statuses = model.NewStatusCatalog(statuses)
	return s.statuses
}

// fail renders a backend failure. An expired backend session ends the
// console session too.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if client.IsUnauthorized(err) {
		clearAuthCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}

	code := http.StatusBadGateway
	if client.IsNotFound(err) {
		code = http.StatusNotFound
	}
	slog.Error("request failed", "path", r.URL.Path, "request_id", client.RequestIDFromContext(r.Context()), "error", err)
	s.Templates.RenderStatus(w, code, "error.html", &PageData{
		Title:   "Error",
		Session: GetSession(r.Context()),
		Error:   client.Message(err),
	})
}

// forbidden renders the access denied page.
func (s *Server) forbidden(w http.ResponseWriter, r *http.Request) {
	s.Templates.RenderStatus(w, http.StatusForbidden, "error.html", &PageData{
		Title:   "Forbidden",
		Session: GetSession(r.Context()),
		Error:   "You do not have access to this page.",
	})
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	s.Templates.RenderStatus(w, http.StatusBadRequest, "error.html", &PageData{
		Title:   "Bad Request",
		Session: GetSession(r.Context()),
		Error:   msg,
	})
}

// page returns the base data for a page of the current session.
func page(r *http.Request, title, active string) PageData {
	return PageData{
		Title:   title,
		Session: GetSession(r.Context()),
		Active:  active,
		Values:  r.URL.Query(),
	}
}
