package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/konzola/internal/form"
	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/table"
	"github.com/erazemk/konzola/internal/workflow"
	webembed "github.com/erazemk/konzola/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"orderColor": func(status string) string {
			return workflow.Color(workflow.Order, status)
		},
		"poColor": func(status string) string {
			return workflow.Color(workflow.PurchaseOrder, status)
		},
		"comma": table.Comma,
		"money": table.Money,
		"date":  func(d model.Date) string { return d.Display() },
		"iso":   func(d model.Date) string { return d.ISO() },
		"join":  strings.Join,
		"deref": func(p *int64) int64 {
			if p == nil {
				return 0
			}
			return *p
		},
		"has": func(values url.Values, field, want string) bool {
			for _, v := range values[field] {
				if v == want {
					return true
				}
			}
			return false
		},
		"id": func(n int64) string { return fmt.Sprint(n) },
		"mul": func(d decimal.Decimal, n int) decimal.Decimal {
			return d.Mul(decimal.NewFromInt(int64(n)))
		},
		"serialField": form.SerialField,
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
		"kindLabel": model.ServiceKindLabel,
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages, err := fs.Glob(tfs, "*.html")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		if page == "layout.html" {
			continue
		}
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	ts.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code.
func (ts *Templates) RenderStatus(w http.ResponseWriter, code int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	buf.WriteTo(w)
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Session *Session
	Active  string
	Error   string
	Success string
	Values  url.Values
	Errors  form.Errors
}

// Value returns the submitted value of field, for refilling forms.
func (p *PageData) Value(field string) string {
	return p.Values.Get(field)
}

// Query returns the current filters as a query string, for export links.
func (p *PageData) Query() template.URL {
	if len(p.Values) == 0 {
		return ""
	}
	return template.URL("?" + p.Values.Encode())
}

// FieldError returns the validation message for field.
func (p *PageData) FieldError(field string) string {
	return p.Errors.Get(field)
}
