package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/workflow"
)

// transition describes how to read and change the status of one entity.
type transition struct {
	entity workflow.Entity
	base   string
	status func(ctx context.Context, id int64) (string, error)
	update func(ctx context.Context, id, statusID int64) error
	// next returns where to go after a successful change.
	next func(id, statusID int64) string
}

func (s *Server) orderTransition() transition {
	return transition{
		entity: workflow.Order,
		base:   "/orders",
		status: func(ctx context.Context, id int64) (string, error) {
			o, err := s.Backend.Order(ctx, id)
			if err != nil {
				return "", err
			}
			return o.StatusName(), nil
		},
		update: s.Backend.UpdateOrderStatus,
		next: func(id, _ int64) string {
			return fmt.Sprintf("/orders/%d", id)
		},
	}
}

func (s *Server) purchaseOrderTransition() transition {
	return transition{
		entity: workflow.PurchaseOrder,
		base:   "/purchaseOrders",
		status: func(ctx context.Context, id int64) (string, error) {
			po, err := s.Backend.PurchaseOrder(ctx, id)
			if err != nil {
				return "", err
			}
			return po.StatusName(), nil
		},
		update: s.Backend.UpdatePurchaseOrderStatus,
		next: func(id, statusID int64) string {
			if statusID == model.StatusForReceiving {
				return fmt.Sprintf("/purchaseOrders/%d/receive", id)
			}
			return fmt.Sprintf("/purchaseOrders/%d", id)
		},
	}
}

// target reads the record id and requested status, and checks that the
// operator may make that change from the record's current status.
func (s *Server) target(w http.ResponseWriter, r *http.Request, t transition, raw string) (id, to int64, ok bool) {
	id, ok = pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return 0, 0, false
	}
	to, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || to <= 0 {
		s.badRequest(w, r, "invalid status")
		return 0, 0, false
	}

	status, err := t.status(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return 0, 0, false
	}
	sess := GetSession(r.Context())
	if !workflow.CanTarget(t.entity, status, sess.Roles, to) {
		slog.Warn("status change refused",
			"entity", string(t.entity), "id", id, "status", status, "target", to, "user_id", sess.User.ID)
		s.forbidden(w, r)
		return 0, 0, false
	}
	return id, to, true
}

// confirmStatus renders the confirmation prompt for GET .../{id}/status?to=N.
func (s *Server) confirmStatus(w http.ResponseWriter, r *http.Request, t transition) {
	id, to, ok := s.target(w, r, t, r.URL.Query().Get("to"))
	if !ok {
		return
	}
	sess := GetSession(r.Context())
	c := workflow.Confirm(t.entity, to, sess.Catalog)

	data := &struct {
		PageData
		Confirmation workflow.Confirmation
		Action       string
		Back         string
		Target       int64
		Danger       bool
	}{
		PageData:     page(r, c.Title, t.base[1:]),
		Confirmation: c,
		Action:       fmt.Sprintf("%s/%d/status", t.base, id),
		Back:         fmt.Sprintf("%s/%d", t.base, id),
		Target:       to,
		Danger:       to == model.StatusCancelled,
	}
	s.Templates.Render(w, "confirm.html", data)
}

// submitStatus handles POST .../{id}/status: one status update, then the
// record is shown again from the backend.
func (s *Server) submitStatus(w http.ResponseWriter, r *http.Request, t transition) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, "invalid form")
		return
	}
	id, to, ok := s.target(w, r, t, r.PostForm.Get("to"))
	if !ok {
		return
	}

	if err := t.update(r.Context(), id, to); err != nil {
		s.fail(w, r, err)
		return
	}
	if s.Metrics != nil {
		s.Metrics.ObserveTransition(string(t.entity), to)
	}
	slog.Info("status changed", "entity", string(t.entity), "id", id, "target", to, "user_id", GetSession(r.Context()).User.ID)
	http.Redirect(w, r, t.next(id, to), http.StatusSeeOther)
}
