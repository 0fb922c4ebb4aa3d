package workflow

import (
	"testing"

	"github.com/erazemk/konzola/internal/model"
)

func TestDecideOrders(t *testing.T) {
	tests := []struct {
		status     string
		roles      model.Roles
		color      string
		targets    []int64
		cancelable bool
	}{
		{"Pending", model.Roles{"Sales Manager"}, Orange, []int64{2, 12}, true},
		{"Pending", model.Roles{"Admin"}, Orange, []int64{2, 12}, true},
		{"Pending", model.Roles{"Finance"}, Orange, nil, false},
		{"Approved", model.Roles{"Warehouse Staff"}, Green, []int64{34}, false},
		{"Approved", model.Roles{"Sales Manager"}, Green, nil, false},
		{"Ready to Deliver", model.Roles{"Logistic Manager"}, Green, []int64{35}, false},
		{"In-Transit", model.Roles{"Logistic Manager"}, Green, []int64{11}, false},
		{"In-Transit", model.Roles{"Admin"}, Green, []int64{11}, false},
		{"Delivered", model.Roles{"Finance"}, Blue, []int64{14}, false},
		{"Delivered", model.Roles{"Warehouse Staff"}, Blue, nil, false},
		{"Paid", model.Roles{"Admin"}, Purple, nil, false},
		{"Cancelled", model.Roles{"Admin"}, Red, nil, false},
		{"On Hold", model.Roles{"Admin"}, Orange, nil, false},
		{"Approved", nil, Green, nil, false},
	}

	for _, tt := range tests {
		d := Decide(Order, tt.status, tt.roles)
		if d.Color != tt.color {
			t.Errorf("%s/%v: expected color %s, got %s", tt.status, tt.roles, tt.color, d.Color)
		}
		if d.Cancelable != tt.cancelable {
			t.Errorf("%s/%v: expected cancelable %v", tt.status, tt.roles, tt.cancelable)
		}
		if len(d.Actions) != len(tt.targets) {
			t.Errorf("%s/%v: expected %d actions, got %+v", tt.status, tt.roles, len(tt.targets), d.Actions)
			continue
		}
		for i, target := range tt.targets {
			if d.Actions[i].TargetStatusID != target {
				t.Errorf("%s/%v: action %d expected target %d, got %d", tt.status, tt.roles, i, target, d.Actions[i].TargetStatusID)
			}
		}
	}
}

func TestPendingOrderSalesManagerLabels(t *testing.T) {
	d := Decide(Order, "Pending", model.Roles{"Sales Manager"})
	want := []string{"Approve", "Cancelled"}
	if len(d.Actions) != len(want) {
		t.Fatalf("expected %v, got %+v", want, d.Actions)
	}
	for i, label := range want {
		if d.Actions[i].Label != label {
			t.Errorf("action %d: expected %q, got %q", i, label, d.Actions[i].Label)
		}
	}
}

func TestDecidePurchaseOrders(t *testing.T) {
	tests := []struct {
		status   string
		roles    model.Roles
		color    string
		labels   []string
		navigate bool
	}{
		{"Pending", model.Roles{"Admin"}, Orange, []string{"Approve", "Cancelled"}, false},
		{"Pending", model.Roles{"Warehouse Staff"}, Orange, nil, false},
		{"Approved", model.Roles{"Admin"}, Green, []string{"For Receiving", "Cancelled"}, false},
		{"For Receiving", model.Roles{"Warehouse Staff"}, Green, []string{"Receive"}, true},
		{"Partially Received", model.Roles{"Admin"}, Green, []string{"Receive"}, true},
		{"Delivered", model.Roles{"Admin"}, Blue, []string{"Paid"}, false},
		{"Delivered", model.Roles{"Finance"}, Blue, nil, false},
		{"Paid", model.Roles{"Admin"}, Purple, nil, false},
		{"Cancelled", model.Roles{"Admin"}, Red, nil, false},
	}

	for _, tt := range tests {
		d := Decide(PurchaseOrder, tt.status, tt.roles)
		if d.Color != tt.color {
			t.Errorf("%s/%v: expected color %s, got %s", tt.status, tt.roles, tt.color, d.Color)
		}
		if len(d.Actions) != len(tt.labels) {
			t.Errorf("%s/%v: expected actions %v, got %+v", tt.status, tt.roles, tt.labels, d.Actions)
			continue
		}
		for i, label := range tt.labels {
			if d.Actions[i].Label != label {
				t.Errorf("%s/%v: action %d expected %q, got %q", tt.status, tt.roles, i, label, d.Actions[i].Label)
			}
		}
		if tt.navigate && d.Actions[0].TargetStatusID != 0 {
			t.Errorf("%s: receive must not change status", tt.status)
		}
	}
}

func TestDecideDoesNotShareState(t *testing.T) {
	d := Decide(Order, "Pending", model.Roles{"Admin"})
	d.Actions[0].Label = "mutated"

	again := Decide(Order, "Pending", model.Roles{"Admin"})
	if again.Actions[0].Label != "Approve" {
		t.Errorf("table was mutated through a decision: %q", again.Actions[0].Label)
	}
}

func TestCanTarget(t *testing.T) {
	admin := model.Roles{"Admin"}
	if !CanTarget(Order, "Pending", admin, model.StatusApproved) {
		t.Error("admin should approve pending orders")
	}
	if !CanTarget(Order, "Pending", admin, model.StatusCancelled) {
		t.Error("admin should cancel pending orders")
	}
	if CanTarget(Order, "Approved", admin, model.StatusCancelled) {
		t.Error("approved orders are not cancelable")
	}
	if CanTarget(Order, "Pending", model.Roles{"Finance"}, model.StatusApproved) {
		t.Error("finance cannot approve")
	}
	if CanTarget(PurchaseOrder, "For Receiving", admin, 0) {
		t.Error("navigation actions are not status targets")
	}
	if CanTarget(Order, "Delivered", model.Roles{"Finance"}, model.StatusDelivered) {
		t.Error("target must match the action")
	}
}

func TestMenu(t *testing.T) {
	d := Decide(Order, "Pending", model.Roles{"Admin"})
	items := Menu(d, "/orders/7")

	want := []string{"Approve", "View Details", "Cancelled"}
	if len(items) != len(want) {
		t.Fatalf("expected %v, got %+v", want, items)
	}
	for i, label := range want {
		if items[i].Label != label {
			t.Errorf("item %d: expected %q, got %q", i, label, items[i].Label)
		}
	}
	if items[0].Href != "/orders/7/status?to=2" {
		t.Errorf("unexpected approve href %q", items[0].Href)
	}
	if !items[2].Danger {
		t.Error("cancel should be marked danger")
	}

	view := Menu(Decide(Order, "Paid", model.Roles{"Admin"}), "/orders/7")
	if len(view) != 1 || view[0].Label != "View Details" {
		t.Errorf("expected view only, got %+v", view)
	}

	receive := Menu(Decide(PurchaseOrder, "For Receiving", model.Roles{"Warehouse Staff"}), "/purchaseOrders/3")
	if receive[0].Href != "/purchaseOrders/3/receive" {
		t.Errorf("unexpected receive href %q", receive[0].Href)
	}
}

func TestConfirm(t *testing.T) {
	catalog := model.NewStatusCatalog([]model.Status{{ID: 2, Name: "Approved"}})

	c := Confirm(Order, model.StatusApproved, catalog)
	if c.Title != "Approved Order" {
		t.Errorf("unexpected title %q", c.Title)
	}
	if c.Body != "Are you sure you want to approved this order?" {
		t.Errorf("unexpected body %q", c.Body)
	}

	c = Confirm(PurchaseOrder, model.StatusForReceiving, catalog)
	if c.Title != "For Receiving Purchase Order" {
		t.Errorf("unexpected title %q", c.Title)
	}
	if c.Body != "Are you sure you want to for receiving this order?" {
		t.Errorf("unexpected body %q", c.Body)
	}

	c = Confirm(Order, model.StatusCancelled, nil)
	if c.Title != "Cancelled Order" {
		t.Errorf("unexpected title %q", c.Title)
	}
}

func TestMenuForRoles(t *testing.T) {
	menu := MenuForRoles(model.Roles{"Warehouse Staff", "Sales Manager"})
	want := []string{"dashboard", "purchaseOrders", "orders"}
	if len(menu) != len(want) {
		t.Fatalf("expected %v, got %+v", want, menu)
	}
	for i, key := range want {
		if menu[i].Key != key {
			t.Errorf("entry %d: expected %s, got %s", i, key, menu[i].Key)
		}
	}

	if len(MenuForRoles(model.Roles{"Admin"})) != 12 {
		t.Errorf("expected 12 admin entries")
	}
	if len(MenuForRoles(nil)) != 0 {
		t.Error("expected empty menu without roles")
	}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		roles model.Roles
		path  string
		want  bool
	}{
		{model.Roles{"Admin"}, "/products/5", true},
		{model.Roles{"Admin"}, "/warehouses", true},
		{model.Roles{"Admin"}, "/ecommerce", false},
		{model.Roles{"Customer"}, "/ecommerce", true},
		{model.Roles{"Customer"}, "/orders", false},
		{model.Roles{"Finance"}, "/orders/1/status", true},
		{model.Roles{"Finance"}, "/purchaseOrders", false},
		{model.Roles{"Warehouse Staff"}, "/purchaseOrders/2/receive", true},
		{model.Roles{"Sales Manager"}, "/", true},
		{nil, "/dashboard", false},
	}
	for _, tt := range tests {
		if got := CanAccess(tt.roles, tt.path); got != tt.want {
			t.Errorf("CanAccess(%v, %q) = %v, want %v", tt.roles, tt.path, got, tt.want)
		}
	}
}
