package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/erazemk/konzola/internal/cart"
	"github.com/erazemk/konzola/internal/client"
	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/table"
)

type shopPage struct {
	PageData
	Products []model.Product
	Lines    []cart.Line
	Total    string
	Count    int
}

func (s *Server) cartPage(r *http.Request, title string) *shopPage {
	sess := GetSession(r.Context())
	data := &shopPage{PageData: page(r, title, "ecommerce")}
	_ = s.Carts.With(sess.ID, sess.Expires(), func(c *cart.Cart) error {
		data.Lines = c.Lines()
		data.Total = table.Money(c.Total())
		data.Count = c.Len()
		return nil
	})
	return data
}

// ShopPage handles GET /ecommerce: the product catalogue with type filter
// and name search.
func (s *Server) ShopPage(w http.ResponseWriter, r *http.Request) {
	s.renderShop(w, r, http.StatusOK, "", "")
}

func (s *Server) renderShop(w http.ResponseWriter, r *http.Request, code int, errMsg, success string) {
	products, err := s.Backend.Products(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	found := table.Search(products, q.Get("q"), func(p model.Product) []string { return []string{p.Name} })

	data := s.cartPage(r, "Shop")
	data.Products = table.Filter(found, table.MachineFilter(q.Get("type")))
	data.Error = errMsg
	data.Success = success
	s.Templates.RenderStatus(w, code, "ecommerce.html", data)
}

// CartPage handles GET /ecommerce/cart.
func (s *Server) CartPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "cart.html", s.cartPage(r, "Cart"))
}

// CartAddSubmit handles POST /ecommerce/cart. The product is re-read so the
// cap uses the current available quantity.
func (s *Server) CartAddSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, "invalid form")
		return
	}
	id, ok := parseID(r.PostForm.Get("product_id"))
	if !ok {
		s.badRequest(w, r, "invalid product")
		return
	}
	product, err := s.Backend.Product(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sess := GetSession(r.Context())
	err = s.Carts.With(sess.ID, sess.Expires(), func(c *cart.Cart) error { return c.Add(*product) })
	if err != nil {
		s.renderShop(w, r, http.StatusConflict, cartMessage(err), "")
		return
	}
	s.renderShop(w, r, http.StatusOK, "", product.Name+" was added to the cart.")
}

// CartUpdateSubmit handles POST /ecommerce/cart/{id}: delta=+1/-1 or
// remove=1.
func (s *Server) CartUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.badRequest(w, r, "invalid product")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, "invalid form")
		return
	}

	sess := GetSession(r.Context())
	err := s.Carts.With(sess.ID, sess.Expires(), func(c *cart.Cart) error {
		if r.PostForm.Get("remove") != "" {
			c.Remove(id)
			return nil
		}
		delta, err := strconv.Atoi(r.PostForm.Get("delta"))
		if err != nil {
			return errors.New("invalid quantity change")
		}
		return c.Update(id, delta)
	})

	data := s.cartPage(r, "Cart")
	code := http.StatusOK
	if err != nil {
		code = http.StatusConflict
		data.Error = cartMessage(err)
	}
	s.Templates.RenderStatus(w, code, "cart.html", data)
}

// CheckoutSubmit handles POST /ecommerce/checkout: the cart becomes a pending
// order dated today and is emptied once the backend accepts it.
func (s *Server) CheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, "invalid form")
		return
	}

	sess := GetSession(r.Context())
	var payload cart.OrderPayload
	err := s.Carts.With(sess.ID, sess.Expires(), func(c *cart.Cart) error {
		var err error
		payload, err = c.Order(r.PostForm.Get("company_order_number"), time.Now())
		return err
	})
	if err == nil {
		err = s.Backend.CreateOrder(r.Context(), payload)
		if client.IsUnauthorized(err) {
			s.fail(w, r, err)
			return
		}
	}
	if err != nil {
		data := s.cartPage(r, "Cart")
		data.Values = r.PostForm
		data.Error = cartMessage(err)
		s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "cart.html", data)
		return
	}

	s.Carts.Clear(sess.ID)
	slog.Info("order placed", "user_id", sess.User.ID, "items", len(payload.OrderItems), "total", payload.TotalAmount.String())
	http.Redirect(w, r, "/customerOrders", http.StatusSeeOther)
}

func cartMessage(err error) string {
	var limit *cart.LimitError
	switch {
	case errors.As(err, &limit):
		return limit.Error()
	case errors.Is(err, cart.ErrNotAvailable):
		return "This item is not available."
	case errors.Is(err, cart.ErrEmpty):
		return "Your cart is empty."
	case errors.Is(err, cart.ErrOrderNumberRequired):
		return "Company order number is required."
	}
	return client.Message(err)
}
