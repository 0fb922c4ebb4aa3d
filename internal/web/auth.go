package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/konzola/internal/auth"
	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/form"
	"github.com/erazemk/konzola/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Sign In"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, "invalid form")
		return
	}
	f := form.New(r.PostForm)
	f.Required("email", "password")
	f.Email("email")
	if !f.Valid() {
		s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "login.html", &PageData{
			Title:  "Sign In",
			Values: r.PostForm,
			Errors: f.Errors,
		})
		return
	}

	res, err := s.Backend.Login(r.Context(), f.Get("email"), f.Get("password"))
	if err != nil {
		msg := "Sign in failed."
		if client.IsUnauthorized(err) {
			msg = "Invalid email or password."
		} else {
			slog.Error("login failed", "email", f.Get("email"), "error", err)
		}
		s.Templates.RenderStatus(w, http.StatusUnauthorized, "login.html", &PageData{
			Title:  "Sign In",
			Error:  msg,
			Values: r.PostForm,
		})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, s.SealKey, res.User, res.Token, s.SessionTTL)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		s.Templates.RenderStatus(w, http.StatusInternalServerError, "login.html", &PageData{
			Title: "Sign In",
			Error: "Sign in failed.",
		})
		return
	}

	// Warm the status labels with the fresh backend token.
	s.Catalog(client.ContextWithToken(r.Context(), res.Token))

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = auth.TokenExpiry
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(ttl / time.Second),
	})

	slog.Info("user signed in", "user_id", res.User.ID, "roles", res.User.Roles)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout. The session id is revoked locally before the
// backend token is discarded, so a copied cookie stops working even if the
// backend call fails.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	sess := GetSession(r.Context())
	if sess != nil {
		expires := time.Now().Add(auth.TokenExpiry)
		if sess.Claims.ExpiresAt != nil {
			expires = sess.Claims.ExpiresAt.Time
		}
		if err := store.RevokeSession(r.Context(), s.DB, sess.ID, sess.User.ID, expires); err != nil {
			slog.Error("failed to revoke session", "error", err)
		}
		if err := s.Backend.Logout(r.Context()); err != nil && !client.IsUnauthorized(err) {
			slog.Warn("backend logout failed", "error", err)
		}
		s.Carts.Clear(sess.ID)
		slog.Info("user signed out", "user_id", sess.User.ID)
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
