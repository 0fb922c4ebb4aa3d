// Package cart implements the customer storefront cart. Quantities are
// capped by each product's available quantity.
package cart

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/konzola/internal/model"
)

// ErrNotAvailable is returned when adding a product with nothing in stock.
var ErrNotAvailable = errors.New("product is not available")

// LimitError is returned when a change would exceed the available quantity.
type LimitError struct {
	Available int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("You can only add up to %d of this item.", e.Available)
}

// Line is one product in the cart.
type Line struct {
	ProductID int64
	Name      string
	Model     string
	ImageURL  string
	Price     decimal.Decimal
	Available int
	Quantity  int
}

// Subtotal returns price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is one customer's cart. It is not safe for concurrent use; Store
// serializes access.
type Cart struct {
	lines   []Line
	expires time.Time
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Add puts one unit of p in the cart. It fails without changing the cart
// when p is unavailable or the cart already holds every available unit.
// The line's cap follows p's current available quantity.
func (c *Cart) Add(p model.Product) error {
	if p.AvailableQuantity <= 0 {
		return ErrNotAvailable
	}
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Available = p.AvailableQuantity
		return c.Update(p.ID, 1)
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Model:     p.Model,
		ImageURL:  p.ImageURL,
		Price:     p.DefaultSellingPrice,
		Available: p.AvailableQuantity,
		Quantity:  1,
	})
	return nil
}

// Update changes a line's quantity by delta. Lines reaching zero are
// removed. Increases past the available quantity fail without changes.
func (c *Cart) Update(productID int64, delta int) error {
	i := c.index(productID)
	if i < 0 {
		return fmt.Errorf("product %d is not in the cart", productID)
	}

	qty := c.lines[i].Quantity + delta
	if qty > c.lines[i].Available {
		return &LimitError{Available: c.lines[i].Available}
	}
	if qty <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Quantity = qty
	return nil
}

// Remove drops a line.
func (c *Cart) Remove(productID int64) {
	if i := c.index(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Total returns the sum of every line's subtotal.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) index(productID int64) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderPayload places an order for the cart's contents.
type OrderPayload struct {
	CompanyOrderNumber string          `json:"company_order_number"`
	OrderDate          model.Date      `json:"order_date"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	OrderItems         []OrderItem     `json:"order_items"`
	StatusID           int64           `json:"status_id"`
}

// ErrEmpty is returned when ordering from an empty cart.
var ErrEmpty = errors.New("cart is empty")

// ErrOrderNumberRequired is returned when no company order number is given.
var ErrOrderNumberRequired = errors.New("company order number is required")

// Order builds the pending order for the cart dated now.
func (c *Cart) Order(companyOrderNumber string, now time.Time) (OrderPayload, error) {
	if companyOrderNumber == "" {
		return OrderPayload{}, ErrOrderNumberRequired
	}
	if len(c.lines) == 0 {
		return OrderPayload{}, ErrEmpty
	}

	items := make([]OrderItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, OrderItem{
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.Price,
			TotalPrice: l.Subtotal(),
		})
	}
	return OrderPayload{
		CompanyOrderNumber: companyOrderNumber,
		OrderDate:          model.NewDate(now),
		TotalAmount:        c.Total(),
		OrderItems:         items,
		StatusID:           model.StatusPending,
	}, nil
}

// Store keeps one cart per session in memory.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// With runs fn with the cart of session, creating it when needed. The cart
// is dropped by Purge once expires has passed; a zero expires keeps it until
// Clear. Calls for the same store are serialized.
func (s *Store) With(session string, expires time.Time, fn func(*Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[session]
	if !ok {
		c = &Cart{}
		s.carts[session] = c
	}
	c.expires = expires
	err := fn(c)
	if len(c.lines) == 0 {
		delete(s.carts, session)
	}
	return err
}

// Clear drops the cart of session.
func (s *Store) Clear(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, session)
}

// Purge drops the carts of sessions that expired before now and returns how
// many were removed.
func (s *Store) Purge(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, c := range s.carts {
		if !c.expires.IsZero() && c.expires.Before(now) {
			delete(s.carts, id)
			n++
		}
	}
	return n
}

// Len returns the number of non-empty carts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}
