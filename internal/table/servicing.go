package table

import "github.com/erazemk/konzola/internal/model"

// DemoTabs are the tabs of the demo units list.
var DemoTabs = []TabSpec{
	{Key: "all", Label: "All"},
	{Key: "overdue", Label: "Overdue", Status: "overdue", Badge: true},
}

// DemoState tabs a demo unit by whether it is overdue.
func DemoState(d model.DemoUnit) string {
	if d.IsOverdue {
		return "overdue"
	}
	return ""
}

// DemoUnitFields are the fields searched on the demo units list.
func DemoUnitFields(d model.DemoUnit) []string {
	return []string{d.DemoNumber, d.SerialNumber(), d.ProductName(), d.CompanyName()}
}

// ServicingFields are the fields searched on the servicing list.
func ServicingFields(m model.ServicingMachine) []string {
	return []string{m.SerialNumber, m.ReferenceNumber, m.CompanyName, m.ProductName}
}

// ServicingFilter keeps machines flagged for calibration and/or maintenance
// when the matching flag is set.
func ServicingFilter(calibration, maintenance bool) func(model.ServicingMachine) bool {
	return func(m model.ServicingMachine) bool {
		if calibration && !m.ForCalibration {
			return false
		}
		if maintenance && !m.ForMaintenance {
			return false
		}
		return true
	}
}

// ServicingCounts returns how many machines are due for calibration and for
// maintenance.
func ServicingCounts(machines []model.ServicingMachine) (calibration, maintenance int) {
	for _, m := range machines {
		if m.ForCalibration {
			calibration++
		}
		if m.ForMaintenance {
			maintenance++
		}
	}
	return calibration, maintenance
}

// OrderFields are the fields searched on the orders list.
func OrderFields(o model.Order) []string {
	return []string{o.MegaionOrderNumber, o.CompanyOrderNumber, o.CompanyName()}
}

// OrderStatus returns an order's status name for tabbing.
func OrderStatus(o model.Order) string { return o.StatusName() }

// PurchaseOrderFields are the fields searched on the purchase orders list.
func PurchaseOrderFields(po model.PurchaseOrder) []string {
	return []string{po.PONumber, po.SupplierName()}
}

// PurchaseOrderStatus returns a purchase order's status name for tabbing.
func PurchaseOrderStatus(po model.PurchaseOrder) string { return po.StatusName() }
