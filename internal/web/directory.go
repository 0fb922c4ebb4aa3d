package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/form"
	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/table"
)

// directory is a backend collection edited through list and form pages:
// suppliers, customers and users.
type directory[T any] struct {
	base   string
	title  string
	noun   string
	list   func(context.Context) ([]T, error)
	id     func(T) int64
	search func(T) []string
	values func(T) url.Values
	// read validates the submitted form and returns the payload.
	read   func(f *form.Form, create bool) any
	create func(context.Context, any) error
	update func(context.Context, int64, any) error
	remove func(context.Context, int64) error
	// refs loads extra choices for the form, such as companies for users.
	refs func(context.Context) (any, error)
}

type directoryFormPage[T any] struct {
	PageData
	Base   string
	Record *T
	Refs   any
}

func (d *directory[T]) template() string {
	return d.base[1:] + ".html"
}

func (d *directory[T]) formTemplate() string {
	return d.base[1:] + "_form.html"
}

func (d *directory[T]) render(s *Server, w http.ResponseWriter, r *http.Request, code int, rows []T, errMsg string) {
	data := &listPage[T]{
		PageData: page(r, d.title, d.base[1:]),
		Rows:     table.Search(rows, r.URL.Query().Get("q"), d.search),
	}
	data.Error = errMsg
	s.Templates.RenderStatus(w, code, d.template(), data)
}

func (d *directory[T]) listPage(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := d.list(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		d.render(s, w, r, http.StatusOK, rows, "")
	}
}

func (d *directory[T]) formPage(s *Server, w http.ResponseWriter, r *http.Request, code int, record *T, values url.Values, errs form.Errors, errMsg string) {
	title := "New " + d.noun
	if record != nil {
		title = "Update " + d.noun
	}
	data := &directoryFormPage[T]{
		PageData: page(r, title, d.base[1:]),
		Base:     d.base,
		Record:   record,
	}
	if d.refs != nil {
		refs, err := d.refs(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		data.Refs = refs
	}
	data.Values = values
	data.Errors = errs
	data.Error = errMsg
	s.Templates.RenderStatus(w, code, d.formTemplate(), data)
}

func (d *directory[T]) newPage(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.formPage(s, w, r, http.StatusOK, nil, r.URL.Query(), nil, "")
	}
}

// find loads the collection and picks the record with id; the backend has no
// single-record endpoint for these collections.
func (d *directory[T]) find(ctx context.Context, id int64) (*T, error) {
	rows, err := d.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if d.id(rows[i]) == id {
			return &rows[i], nil
		}
	}
	return nil, nil
}

func (d *directory[T]) editPage(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			s.badRequest(w, r, "invalid id")
			return
		}
		record, err := d.find(r.Context(), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if record == nil {
			s.Templates.RenderStatus(w, http.StatusNotFound, "error.html", &PageData{
				Title:   "Not Found",
				Session: GetSession(r.Context()),
				Error:   d.noun + " not found.",
			})
			return
		}
		d.formPage(s, w, r, http.StatusOK, record, d.values(*record), nil, "")
	}
}

func (d *directory[T]) save(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id int64
		if r.PathValue("id") != "" {
			var ok bool
			if id, ok = pathID(r, "id"); !ok {
				s.badRequest(w, r, "invalid id")
				return
			}
		}
		if err := r.ParseForm(); err != nil {
			s.badRequest(w, r, "invalid form")
			return
		}

		f := form.New(r.PostForm)
		payload := d.read(f, id == 0)

		var record *T
		if id > 0 {
			record = new(T)
		}
		if !f.Valid() {
			d.formPage(s, w, r, http.StatusUnprocessableEntity, record, r.PostForm, f.Errors, "")
			return
		}

		var err error
		if id == 0 {
			err = d.create(r.Context(), payload)
		} else {
			err = d.update(r.Context(), id, payload)
		}
		if err != nil {
			if client.IsUnauthorized(err) {
				s.fail(w, r, err)
				return
			}
			d.formPage(s, w, r, http.StatusBadGateway, record, r.PostForm, f.Errors, client.Message(err))
			return
		}

		slog.Info("record saved", "collection", d.base[1:], "id", id, "user_id", GetSession(r.Context()).User.ID)
		http.Redirect(w, r, d.base, http.StatusSeeOther)
	}
}

func (d *directory[T]) delete(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			s.badRequest(w, r, "invalid id")
			return
		}
		list, err := mutateList(r.Context(), func(ctx context.Context) error {
			return d.remove(ctx, id)
		}, d.list)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if list.Error != nil {
			d.render(s, w, r, http.StatusBadGateway, list.Rows, client.Message(list.Error))
			return
		}
		slog.Info("record deleted", "collection", d.base[1:], "id", id, "user_id", GetSession(r.Context()).User.ID)
		d.render(s, w, r, http.StatusOK, list.Rows, "")
	}
}

func (d *directory[T]) register(s *Server, handle func(pattern string, h http.HandlerFunc)) {
	handle("GET "+d.base, d.listPage(s))
	handle("GET "+d.base+"/new", d.newPage(s))
	handle("POST "+d.base, d.save(s))
	handle("GET "+d.base+"/{id}/edit", d.editPage(s))
	handle("POST "+d.base+"/{id}", d.save(s))
	handle("POST "+d.base+"/{id}/delete", d.delete(s))
}

func (s *Server) suppliers() *directory[model.Supplier] {
	return &directory[model.Supplier]{
		base:  "/suppliers",
		title: "Suppliers",
		noun:  "Supplier",
		list:  s.Backend.Suppliers,
		id:    func(v model.Supplier) int64 { return v.ID },
		search: func(v model.Supplier) []string {
			return []string{v.Name, v.Email, v.Phone}
		},
		values: func(v model.Supplier) url.Values {
			return url.Values{
				"name":         {v.Name},
				"contact_info": {v.ContactInfo},
				"email":        {v.Email},
				"phone":        {v.Phone},
				"address":      {v.Address},
			}
		},
		read:   func(f *form.Form, _ bool) any { return form.Supplier(f) },
		create: s.Backend.CreateSupplier,
		update: s.Backend.UpdateSupplier,
		remove: s.Backend.DeleteSupplier,
	}
}

func (s *Server) customers() *directory[model.Company] {
	return &directory[model.Company]{
		base:  "/customers",
		title: "Customers",
		noun:  "Customer",
		list:  s.Backend.Companies,
		id:    func(v model.Company) int64 { return v.ID },
		search: func(v model.Company) []string {
			return []string{v.Name, v.City, v.Country, v.EmailAddress, v.PrimaryContactName}
		},
		values: func(v model.Company) url.Values {
			vals := url.Values{
				"name":                  {v.Name},
				"contact_info":          {v.ContactInfo},
				"website_url":           {v.WebsiteURL},
				"industry":              {v.Industry},
				"address":               {v.Address},
				"city":                  {v.City},
				"country":               {v.Country},
				"zip_code":              {v.ZipCode},
				"phone_number":          {v.PhoneNumber},
				"email_address":         {v.EmailAddress},
				"primary_contact_name":  {v.PrimaryContactName},
				"primary_contact_phone": {v.PrimaryContactPhone},
				"primary_contact_email": {v.PrimaryContactEmail},
				"additional_info":       {v.AdditionalInfo},
			}
			for _, id := range v.UserIDs() {
				vals.Add("user_id", fmt.Sprint(id))
			}
			return vals
		},
		read:   func(f *form.Form, _ bool) any { return form.Company(f) },
		create: s.Backend.CreateCompany,
		update: s.Backend.UpdateCompany,
		remove: s.Backend.DeleteCompany,
		refs: func(ctx context.Context) (any, error) {
			users, err := s.Backend.Users(ctx)
			if err != nil {
				return nil, err
			}
			return table.Filter(users, func(u model.User) bool { return u.Roles.Has(model.RoleCustomer) }), nil
		},
	}
}

func (s *Server) users() *directory[model.User] {
	return &directory[model.User]{
		base:  "/users",
		title: "Users",
		noun:  "User",
		list:  s.Backend.Users,
		id:    func(v model.User) int64 { return v.ID },
		search: func(v model.User) []string {
			return []string{v.FullName, v.Email}
		},
		values: func(v model.User) url.Values {
			vals := url.Values{
				"full_name": {v.FullName},
				"email":     {v.Email},
				"roles":     v.Roles,
			}
			if v.CompanyID != nil {
				vals.Set("company_id", fmt.Sprint(*v.CompanyID))
			}
			return vals
		},
		read:   func(f *form.Form, create bool) any { return form.User(f, create) },
		create: s.Backend.CreateUser,
		update: s.Backend.UpdateUser,
		remove: s.Backend.DeleteUser,
		refs: func(ctx context.Context) (any, error) {
			companies, err := s.Backend.Companies(ctx)
			if err != nil {
				return nil, err
			}
			return &userRefs{Roles: model.AllRoles, Companies: companies}, nil
		},
	}
}

type userRefs struct {
	Roles     []string
	Companies []model.Company
}

// namedPage lists a name-only collection with inline create and rename.
type namedPage struct {
	PageData
	Kind    string
	Base    string
	Rows    []model.Named
	Editing int64
}

func (s *Server) renderNamed(w http.ResponseWriter, r *http.Request, code int, kind, title string, rows []model.Named, f *form.Form, errMsg string) {
	data := &namedPage{
		PageData: page(r, title, kind),
		Kind:     kind,
		Base:     "/" + kind,
		Rows:     table.Search(rows, r.URL.Query().Get("q"), func(n model.Named) []string { return []string{n.Name} }),
	}
	data.Editing, _ = parseID(r.URL.Query().Get("edit"))
	if f != nil {
		data.Values = r.PostForm
		data.Errors = f.Errors
	}
	data.Error = errMsg
	s.Templates.RenderStatus(w, code, "named.html", data)
}

func (s *Server) registerNamed(kind, title string, handle func(pattern string, h http.HandlerFunc)) {
	fetch := func(ctx context.Context) ([]model.Named, error) {
		return s.Backend.Named(ctx, kind)
	}

	handle("GET /"+kind, func(w http.ResponseWriter, r *http.Request) {
		rows, err := fetch(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.renderNamed(w, r, http.StatusOK, kind, title, rows, nil, "")
	})

	mutate := func(w http.ResponseWriter, r *http.Request, f *form.Form, change func(context.Context) error) {
		list, err := mutateList(r.Context(), change, fetch)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if list.Error != nil {
			s.renderNamed(w, r, http.StatusBadGateway, kind, title, list.Rows, f, client.Message(list.Error))
			return
		}
		slog.Info("record saved", "collection", kind, "user_id", GetSession(r.Context()).User.ID)
		s.renderNamed(w, r, http.StatusOK, kind, title, list.Rows, nil, "")
	}

	save := func(w http.ResponseWriter, r *http.Request) {
		var id int64
		if r.PathValue("id") != "" {
			var ok bool
			if id, ok = pathID(r, "id"); !ok {
				s.badRequest(w, r, "invalid id")
				return
			}
		}
		if err := r.ParseForm(); err != nil {
			s.badRequest(w, r, "invalid form")
			return
		}
		f := form.New(r.PostForm)
		name := form.Name(f)
		if !f.Valid() {
			rows, err := fetch(r.Context())
			if err != nil {
				s.fail(w, r, err)
				return
			}
			s.renderNamed(w, r, http.StatusUnprocessableEntity, kind, title, rows, f, "")
			return
		}
		mutate(w, r, f, func(ctx context.Context) error {
			if id == 0 {
				return s.Backend.CreateNamed(ctx, kind, name)
			}
			return s.Backend.UpdateNamed(ctx, kind, id, name)
		})
	}
	handle("POST /"+kind, save)
	handle("POST /"+kind+"/{id}", save)

	handle("POST /"+kind+"/{id}/delete", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			s.badRequest(w, r, "invalid id")
			return
		}
		mutate(w, r, nil, func(ctx context.Context) error {
			return s.Backend.DeleteNamed(ctx, kind, id)
		})
	})
}
