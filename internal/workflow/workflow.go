// Package workflow decides which status transitions an operator may trigger
// on orders and purchase orders, and how each status is colored.
package workflow

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erazemk/konzola/internal/model"
)

// Entity names a record type with a status workflow.
type Entity string

const (
	Order         Entity = "order"
	PurchaseOrder Entity = "purchase_order"
)

// Noun returns how the entity is named in prompts.
func (e Entity) Noun() string {
	if e == PurchaseOrder {
		return "Purchase Order"
	}
	return "Order"
}

// Status colors.
const (
	Green  = "green"
	Blue   = "blue"
	Purple = "purple"
	Red    = "red"
	Orange = "orange"
)

// Action is a transition offered to the operator. Actions with Navigate set
// open another page instead of changing status.
type Action struct {
	TargetStatusID int64
	Label          string
	Navigate       string
}

// Decision is what the operator can do with a record in a given status.
type Decision struct {
	Color      string
	Actions    []Action
	Cancelable bool
}

type rule struct {
	statuses []string
	roles    []string
	action   Action
	cancel   bool
}

type table struct {
	rules  []rule
	colors map[string]string
}

var cancelAction = Action{TargetStatusID: model.StatusCancelled, Label: "Cancelled"}

var tables = map[Entity]table{
	Order: {
		rules: []rule{
			{
				statuses: []string{model.StatusNamePending},
				roles:    []string{model.RoleSalesManager, model.RoleAdmin},
				action:   Action{TargetStatusID: model.StatusApproved, Label: "Approve"},
				cancel:   true,
			},
			{
				statuses: []string{model.StatusNameApproved},
				roles:    []string{model.RoleWarehouseStaff, model.RoleAdmin},
				action:   Action{TargetStatusID: model.StatusReadyToDeliver, Label: "Ready to Deliver"},
			},
			{
				statuses: []string{model.StatusNameReadyToDeliver},
				roles:    []string{model.RoleLogisticManager, model.RoleAdmin},
				action:   Action{TargetStatusID: model.StatusInTransit, Label: "In-Transit"},
			},
			{
				statuses: []string{model.StatusNameInTransit},
				roles:    []string{model.RoleLogisticManager, model.RoleAdmin},
				action:   Action{TargetStatusID: model.StatusDelivered, Label: "Delivered"},
			},
			{
				statuses: []string{model.StatusNameDelivered},
				roles:    []string{model.RoleFinance, model.RoleAdmin},
				action:   Action{TargetStatusID: model.StatusPaid, Label: "Paid"},
			},
		},
		colors: map[string]string{
			model.StatusNameApproved:       Green,
			model.StatusNameReadyToDeliver: Green,
			model.StatusNameInTransit:      Green,
			model.StatusNameDelivered:      Blue,
			model.StatusNamePaid:           Purple,
			model.StatusNameCancelled:      Red,
		},
	},
	PurchaseOrder: {
		rules: []rule{
			{
				statuses: []string{model.StatusNamePending},
				roles:    []string{model.RoleAdmin},
				action:   Action{TargetStatusID: model.StatusApproved, Label: "Approve"},
				cancel:   true,
			},
			{
				statuses: []string{model.StatusNameApproved},
				roles:    []string{model.RoleAdmin},
				action:   Action{TargetStatusID: model.StatusForReceiving, Label: "For Receiving"},
				cancel:   true,
			},
			{
				statuses: []string{model.StatusNameForReceiving, model.StatusNamePartiallyReceived},
				roles:    []string{model.RoleAdmin, model.RoleWarehouseStaff},
				action:   Action{Label: "Receive", Navigate: "receive"},
			},
			{
				statuses: []string{model.StatusNameDelivered},
				roles:    []string{model.RoleAdmin},
				action:   Action{TargetStatusID: model.StatusPaid, Label: "Paid"},
			},
		},
		colors: map[string]string{
			model.StatusNameApproved:          Green,
			model.StatusNameForReceiving:      Green,
			model.StatusNamePartiallyReceived: Green,
			model.StatusNameDelivered:         Blue,
			model.StatusNamePaid:              Purple,
			model.StatusNameCancelled:         Red,
		},
	},
}

// Decide returns the color and the actions available to an operator holding
// roles for a record of entity in status. Unknown entities and statuses are
// orange with no actions.
func Decide(entity Entity, status string, roles model.Roles) Decision {
	t, ok := tables[entity]
	if !ok {
		return Decision{Color: Orange}
	}

	d := Decision{Color: Orange}
	if color, ok := t.colors[status]; ok {
		d.Color = color
	}

	for _, r := range t.rules {
		if !slices.Contains(r.statuses, status) || !roles.HasAny(r.roles...) {
			continue
		}
		d.Actions = append(d.Actions, r.action)
		if r.cancel {
			d.Cancelable = true
		}
	}
	if d.Cancelable {
		d.Actions = append(d.Actions, cancelAction)
	}
	return d
}

// Color returns the color of status for entity.
func Color(entity Entity, status string) string {
	return Decide(entity, status, nil).Color
}

// CanTarget reports whether an operator holding roles may move a record of
// entity from status to targetID.
func CanTarget(entity Entity, status string, roles model.Roles, targetID int64) bool {
	if targetID <= 0 {
		return false
	}
	for _, a := range Decide(entity, status, roles).Actions {
		if a.Navigate == "" && a.TargetStatusID == targetID {
			return true
		}
	}
	return false
}

// MenuItem is one entry of a row's action menu.
type MenuItem struct {
	Label          string
	Href           string
	TargetStatusID int64
	Danger         bool
}

// Menu returns the action menu for a record: forward transitions first,
// then "View Details", then cancellation. base is the record's detail path.
func Menu(d Decision, base string) []MenuItem {
	var items []MenuItem
	var cancel *MenuItem
	for _, a := range d.Actions {
		item := MenuItem{Label: a.Label, TargetStatusID: a.TargetStatusID}
		if a.Navigate != "" {
			item.Href = base + "/" + a.Navigate
		} else {
			item.Href = fmt.Sprintf("%s/status?to=%d", base, a.TargetStatusID)
		}
		if a.TargetStatusID == model.StatusCancelled {
			item.Danger = true
			cancel = &item
			continue
		}
		items = append(items, item)
	}
	items = append(items, MenuItem{Label: "View Details", Href: base})
	if cancel != nil {
		items = append(items, *cancel)
	}
	return items
}

// Confirmation is the prompt shown before a transition is sent.
type Confirmation struct {
	Title string
	Body  string
	Label string
}

// Confirm builds the prompt for moving a record of entity to targetID. The
// label comes from the status catalog when known, else from the table.
func Confirm(entity Entity, targetID int64, catalog *model.StatusCatalog) Confirmation {
	label, ok := catalog.Label(targetID)
	if !ok {
		label = tableLabel(entity, targetID)
	}
	return Confirmation{
		Title: fmt.Sprintf("%s %s", label, entity.Noun()),
		Body:  fmt.Sprintf("Are you sure you want to %s this order?", strings.ToLower(label)),
		Label: label,
	}
}

func tableLabel(entity Entity, targetID int64) string {
	if targetID == model.StatusCancelled {
		return cancelAction.Label
	}
	for _, r := range tables[entity].rules {
		if r.action.TargetStatusID == targetID {
			return r.action.Label
		}
	}
	return fmt.Sprintf("Status %d", targetID)
}
