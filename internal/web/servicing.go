package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/export"
	"github.com/erazemk/konzola/internal/form"
	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/table"
)

func filterServicing(machines []model.ServicingMachine, q url.Values) []model.ServicingMachine {
	found := table.Search(machines, q.Get("q"), table.ServicingFields)
	return table.Filter(found, table.ServicingFilter(q.Get("calibration") != "", q.Get("maintenance") != ""))
}

// ServicingPage handles GET /servicing.
func (s *Server) ServicingPage(w http.ResponseWriter, r *http.Request) {
	machines, err := s.Backend.ServicingMachines(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	calibration, maintenance := table.ServicingCounts(machines)

	s.Templates.Render(w, "servicing.html", &struct {
		PageData
		Rows        []model.ServicingMachine
		Calibration int
		Maintenance int
	}{
		PageData:    page(r, "Servicing", "servicing"),
		Rows:        filterServicing(machines, r.URL.Query()),
		Calibration: calibration,
		Maintenance: maintenance,
	})
}

// ServicingExport handles GET /servicing/export.
func (s *Server) ServicingExport(w http.ResponseWriter, r *http.Request) {
	machines, err := s.Backend.ServicingMachines(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeExport(w, "Servicing", export.ServicingColumns, filterServicing(machines, r.URL.Query()))
}

type serviceRecordsPage struct {
	PageData
	Serial  string
	Kind    string
	Kinds   []string
	Rows    []model.ServiceRecord
	Editing *model.ServiceRecord
}

func serviceKind(raw string) (string, bool) {
	if raw == "" {
		return model.ServiceMaintenance, true
	}
	return raw, slices.Contains(model.ServiceKinds, raw)
}

func (s *Server) renderServiceRecords(w http.ResponseWriter, r *http.Request, code int, serial, kind string, rows []model.ServiceRecord, f *form.Form, errMsg string) {
	data := &serviceRecordsPage{
		PageData: page(r, "Servicing "+serial, "servicing"),
		Serial:   serial,
		Kind:     kind,
		Kinds:    model.ServiceKinds,
		Rows:     rows,
	}
	if editID, ok := parseID(r.URL.Query().Get("edit")); ok {
		for i := range rows {
			if rows[i].ID == editID {
				data.Editing = &rows[i]
			}
		}
	}
	if f != nil {
		data.Errors = f.Errors
		data.Values = r.PostForm
	}
	data.Error = errMsg
	s.Templates.RenderStatus(w, code, "service_records.html", data)
}

func (s *Server) serviceFetch(kind, serial string) func(context.Context) ([]model.ServiceRecord, error) {
	return func(ctx context.Context) ([]model.ServiceRecord, error) {
		return s.Backend.ServiceRecords(ctx, kind, serial)
	}
}

// ServiceRecordsPage handles GET /servicing/{serial}?kind=: one log of a
// machine.
func (s *Server) ServiceRecordsPage(w http.ResponseWriter, r *http.Request) {
	serial := r.PathValue("serial")
	kind, ok := serviceKind(r.URL.Query().Get("kind"))
	if !ok {
		s.badRequest(w, r, "unknown servicing log")
		return
	}
	rows, err := s.Backend.ServiceRecords(r.Context(), kind, serial)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderServiceRecords(w, r, http.StatusOK, serial, kind, rows, nil, "")
}

// ServiceRecordCreateSubmit handles POST /servicing/{serial}/{kind}.
func (s *Server) ServiceRecordCreateSubmit(w http.ResponseWriter, r *http.Request) {
	s.saveServiceRecord(w, r, 0)
}

// ServiceRecordUpdateSubmit handles POST /servicing/{serial}/{kind}/{id}.
func (s *Server) ServiceRecordUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return
	}
	s.saveServiceRecord(w, r, id)
}

func (s *Server) saveServiceRecord(w http.ResponseWriter, r *http.Request, id int64) {
	serial := r.PathValue("serial")
	kind, ok := serviceKind(r.PathValue("kind"))
	if !ok {
		s.badRequest(w, r, "unknown servicing log")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, "invalid form")
		return
	}

	f := form.New(r.PostForm)
	rec := form.ServiceRecord(f, serial)
	rec.ID = id
	fetch := s.serviceFetch(kind, serial)

	if !f.Valid() {
		rows, err := fetch(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.renderServiceRecords(w, r, http.StatusUnprocessableEntity, serial, kind, rows, f, "")
		return
	}

	list, err := mutateList(r.Context(), func(ctx context.Context) error {
		if id == 0 {
			return s.Backend.CreateServiceRecord(ctx, kind, rec)
		}
		return s.Backend.UpdateServiceRecord(ctx, kind, rec)
	}, fetch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list.Error != nil {
		s.renderServiceRecords(w, r, http.StatusBadGateway, serial, kind, list.Rows, f, client.Message(list.Error))
		return
	}
	slog.Info("service record saved", "user_id", GetSession(r.Context()).User.ID, "kind", kind, "serial", serial, "id", id)
	s.renderServiceRecords(w, r, http.StatusOK, serial, kind, list.Rows, nil, "")
}

// ServiceRecordDeleteSubmit handles POST /servicing/{serial}/{kind}/{id}/delete.
func (s *Server) ServiceRecordDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	serial := r.PathValue("serial")
	kind, ok := serviceKind(r.PathValue("kind"))
	if !ok {
		s.badRequest(w, r, "unknown servicing log")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid id")
		return
	}

	list, err := mutateList(r.Context(), func(ctx context.Context) error {
		return s.Backend.DeleteServiceRecord(ctx, kind, id)
	}, s.serviceFetch(kind, serial))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	code, errMsg := http.StatusOK, ""
	if list.Error != nil {
		code, errMsg = http.StatusBadGateway, client.Message(list.Error)
	} else {
		slog.Info("service record deleted", "user_id", GetSession(r.Context()).User.ID, "kind", kind, "id", id)
	}
	s.renderServiceRecords(w, r, code, serial, kind, list.Rows, nil, errMsg)
}
