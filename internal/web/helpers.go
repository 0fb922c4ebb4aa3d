package web

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/export"
	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/refdata"
	"github.com/erazemk/konzola/internal/view"
)

// pathID parses the {name} path value as a positive id.
func pathID(r *http.Request, name string) (int64, bool) {
	return parseID(r.PathValue(name))
}

// listPage is the data of a list page whose rows can be changed in place.
type listPage[T any] struct {
	PageData
	Rows []T
}

// mutateList applies change to the collection behind fetch. The current rows
// are loaded first so a failed change can be shown above them; a successful
// change is followed by exactly one refetch. The returned error is set only
// when the page cannot be shown at all.
func mutateList[T any](ctx context.Context, change func(context.Context) error, fetch func(context.Context) ([]T, error)) (view.List[T], error) {
	prior := view.Load(ctx, fetch)
	if prior.Error != nil {
		return prior, prior.Error
	}
	next := prior.Mutate(ctx, change, fetch)
	if next.Error != nil {
		if client.IsUnauthorized(next.Error) {
			return next, next.Error
		}
		slog.Warn("mutation failed", "error", next.Error)
	}
	return next, nil
}

// productRefs are the lookups shared by product and purchase order forms.
type productRefs struct {
	Suppliers    []model.Supplier
	Warehouses   []model.Named
	Locations    []model.Named
	ProductUnits []model.Named
	Tags         []model.Named
}

func (s *Server) loadProductRefs(ctx context.Context) (*productRefs, error) {
	var refs productRefs
	var l refdata.Loader
	named := func(kind string) func(context.Context) ([]model.Named, error) {
		return func(ctx context.Context) ([]model.Named, error) {
			return s.Backend.Named(ctx, kind)
		}
	}
	refdata.Add(&l, &refs.Suppliers, s.Backend.Suppliers)
	refdata.Add(&l, &refs.Warehouses, named(model.KindWarehouses))
	refdata.Add(&l, &refs.Locations, named(model.KindLocations))
	refdata.Add(&l, &refs.ProductUnits, named(model.KindProductUnits))
	refdata.Add(&l, &refs.Tags, named(model.KindTags))
	if err := l.Load(ctx); err != nil {
		return nil, err
	}
	return &refs, nil
}

// writeExport streams rows as an XLSX download.
func writeExport[T any](w http.ResponseWriter, name string, cols []export.Column[T], rows []T) {
	var buf bytes.Buffer
	if err := export.Write(&buf, name, cols, rows); err != nil {
		slog.Error("failed to build export", "export", name, "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	filename := export.Filename(name, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "export", name, "error", err)
	}
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
