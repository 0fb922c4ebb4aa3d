package web

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/konzola/internal/auth"
	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/metrics"
	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/store"
	"github.com/erazemk/konzola/internal/workflow"
)

type webContextKey string

const sessionKey webContextKey = "session"

// Session is the read-only view of the signed-in operator, built per request
// from the session cookie.
type Session struct {
	ID      string
	User    model.User
	Roles   model.Roles
	Menu    []workflow.MenuEntry
	Catalog *model.StatusCatalog
	Claims  *auth.Claims
}

// IsCustomer reports whether the operator only holds the Customer role.
func (s *Session) IsCustomer() bool {
	return !s.Roles.IsStaff()
}

// Expires returns when the session cookie stops being valid, or the zero
// time when unknown.
func (s *Session) Expires() time.Time {
	if s.Claims == nil || s.Claims.ExpiresAt == nil {
		return time.Time{}
	}
	return s.Claims.ExpiresAt.Time
}

// Label returns the status label for id, or "".
func (s *Session) Label(id int64) string {
	label, _ := s.Catalog.Label(id)
	return label
}

// CookieAuthMiddleware validates JWT from cookie, checks session revocation,
// unseals the backend token and adds the session to the context.
func (s *Server) CookieAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value)
		if err != nil {
			clearAuthCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if revoked, err := sessionRevoked(r.Context(), s.DB, claims.ID); err != nil || revoked {
			if err != nil {
				slog.Error("failed to check session revocation", "error", err)
			}
			clearAuthCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		bearer, err := claims.BackendToken(s.SealKey)
		if err != nil {
			slog.Warn("unreadable session token", "user_id", claims.UserID, "error", err)
			clearAuthCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := client.ContextWithToken(r.Context(), bearer)
		user := claims.User()
		sess := &Session{
			ID:      claims.ID,
			User:    user,
			Roles:   user.Roles,
			Menu:    workflow.MenuForRoles(user.Roles),
			Catalog: s.Catalog(ctx),
			Claims:  claims,
		}
		ctx = context.WithValue(ctx, sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionRevoked(ctx context.Context, db *sql.DB, jti string) (bool, error) {
	if jti == "" {
		return true, nil
	}
	return store.IsSessionRevoked(ctx, db, jti)
}

// RequireAccess only lets operators whose roles list the route's menu root
// through.
func (s *Server) RequireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := GetSession(r.Context())
		if sess == nil || !workflow.CanAccess(sess.Roles, r.URL.Path) {
			s.forbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetSession retrieves the session from the request context.
func GetSession(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey).(*Session)
	return sess
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware assigns each request an id, forwards it to the backend,
// logs the request and records it in m when m is not nil.
func LoggingMiddleware(m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		r = r.WithContext(client.ContextWithRequestID(r.Context(), id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		if m != nil {
			m.ObserveRequest(route, rec.status, elapsed)
		}

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", elapsed.Round(time.Millisecond),
			"request_id", id,
		)
	})
}
