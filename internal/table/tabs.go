package table

import "github.com/erazemk/konzola/internal/model"

// TabSpec declares one status tab. An empty Status matches every row.
type TabSpec struct {
	Key    string
	Label  string
	Status string
	Badge  bool
}

// Tab is a rendered tab with its row count.
type Tab struct {
	Key       string
	Label     string
	Count     int
	ShowBadge bool
	Active    bool
}

// OrderTabs are the tabs of the orders list.
var OrderTabs = []TabSpec{
	{Key: "pending", Label: "Pending", Status: model.StatusNamePending, Badge: true},
	{Key: "approved", Label: "Approved", Status: model.StatusNameApproved, Badge: true},
	{Key: "ready", Label: "Ready to Deliver", Status: model.StatusNameReadyToDeliver, Badge: true},
	{Key: "transit", Label: "In-Transit", Status: model.StatusNameInTransit, Badge: true},
	{Key: "delivered", Label: "Delivered", Status: model.StatusNameDelivered},
	{Key: "cancelled", Label: "Cancelled", Status: model.StatusNameCancelled},
	{Key: "all", Label: "All Orders"},
}

// PurchaseOrderTabs are the tabs of the purchase orders list.
var PurchaseOrderTabs = []TabSpec{
	{Key: "pending", Label: "Pending", Status: model.StatusNamePending},
	{Key: "approved", Label: "Approved", Status: model.StatusNameApproved},
	{Key: "receiving", Label: "For Receiving", Status: model.StatusNameForReceiving},
	{Key: "partial", Label: "Partially Received", Status: model.StatusNamePartiallyReceived},
	{Key: "delivered", Label: "Delivered", Status: model.StatusNameDelivered},
	{Key: "cancelled", Label: "Cancelled", Status: model.StatusNameCancelled},
	{Key: "all", Label: "All"},
}

// Tabs counts rows per tab and returns the rows of the active tab. An
// unknown active key selects the first tab.
func Tabs[T any](rows []T, specs []TabSpec, active string, status func(T) string) ([]Tab, []T) {
	if len(specs) == 0 {
		return nil, rows
	}

	activeIdx := 0
	for i, s := range specs {
		if s.Key == active {
			activeIdx = i
		}
	}

	tabs := make([]Tab, len(specs))
	var selected []T
	for i, s := range specs {
		match := Equal(s.Status, status)
		n := 0
		for _, row := range rows {
			if match(row) {
				n++
				if i == activeIdx {
					selected = append(selected, row)
				}
			}
		}
		tabs[i] = Tab{
			Key:       s.Key,
			Label:     s.Label,
			Count:     n,
			ShowBadge: s.Badge && n > 0,
			Active:    i == activeIdx,
		}
	}
	if selected == nil {
		selected = []T{}
	}
	return tabs, selected
}
