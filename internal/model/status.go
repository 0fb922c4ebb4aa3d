package model

// Status is a backend status record, referenced by orders, purchase orders
// and demo units.
type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Status ids the console sends when transitioning records.
const (
	StatusPending           int64 = 1
	StatusApproved          int64 = 2
	StatusDelivered         int64 = 11
	StatusCancelled         int64 = 12
	StatusPaid              int64 = 14
	StatusDemoOngoing       int64 = 26
	StatusForReceiving      int64 = 33
	StatusReadyToDeliver    int64 = 34
	StatusInTransit         int64 = 35
	StatusPartiallyReceived int64 = 36
)

// Status names as the backend spells them.
const (
	StatusNamePending           = "Pending"
	StatusNameApproved          = "Approved"
	StatusNameReadyToDeliver    = "Ready to Deliver"
	StatusNameInTransit         = "In-Transit"
	StatusNameDelivered         = "Delivered"
	StatusNamePaid              = "Paid"
	StatusNameCancelled         = "Cancelled"
	StatusNameForReceiving      = "For Receiving"
	StatusNamePartiallyReceived = "Partially Received"
)

// StatusCatalog maps status ids to display labels. It is built once and
// treated as read-only afterwards.
type StatusCatalog struct {
	labels map[int64]string
}

// DefaultStatusCatalog returns the labels known without asking the backend.
func DefaultStatusCatalog() *StatusCatalog {
	return NewStatusCatalog([]Status{
		{ID: StatusPending, Name: StatusNamePending},
		{ID: StatusApproved, Name: StatusNameApproved},
		{ID: StatusDelivered, Name: StatusNameDelivered},
		{ID: StatusCancelled, Name: StatusNameCancelled},
		{ID: StatusPaid, Name: StatusNamePaid},
		{ID: StatusForReceiving, Name: StatusNameForReceiving},
		{ID: StatusReadyToDeliver, Name: StatusNameReadyToDeliver},
		{ID: StatusInTransit, Name: StatusNameInTransit},
		{ID: StatusPartiallyReceived, Name: StatusNamePartiallyReceived},
	})
}

// NewStatusCatalog builds a catalog from backend status records.
func NewStatusCatalog(statuses []Status) *StatusCatalog {
	c := &StatusCatalog{labels: make(map[int64]string, len(statuses))}
	for _, s := range statuses {
		if s.ID > 0 && s.Name != "" {
			c.labels[s.ID] = s.Name
		}
	}
	return c
}

// Label returns the label for id and whether it is known.
func (c *StatusCatalog) Label(id int64) (string, bool) {
	if c == nil {
		return "", false
	}
	label, ok := c.labels[id]
	return label, ok
}

// Len returns the number of known statuses.
func (c *StatusCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.labels)
}

// StatusHistory is one step of an order's tracking timeline.
type StatusHistory struct {
	ID        int64  `json:"id"`
	Status    Status `json:"status"`
	CreatedAt Date   `json:"created_at"`
}
