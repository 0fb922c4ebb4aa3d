package export

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/konzola/internal/model"
	"github.com/erazemk/konzola/internal/table"
)

func money(d decimal.Decimal) any {
	f, _ := d.Round(2).Float64()
	return f
}

// ProductColumns are the columns of the products export.
var ProductColumns = []Column[model.Product]{
	{Header: "Name", Width: 30, Value: func(p model.Product) any { return p.Name }},
	{Header: "Model", Width: 20, Value: func(p model.Product) any { return p.Model }},
	{Header: "SKU", Width: 16, Value: func(p model.Product) any { return p.SKU }},
	{Header: "Barcode", Width: 18, Value: func(p model.Product) any { return p.Barcode }},
	{Header: "Type", Value: func(p model.Product) any {
		if p.IsMachine {
			return "Machine"
		}
		return "Consumable"
	}},
	{Header: "Supplier", Width: 24, Value: func(p model.Product) any { return p.SupplierName() }},
	{Header: "Tags", Width: 24, Value: func(p model.Product) any { return strings.Join(p.TagNames(), ", ") }},
	{Header: "Available", Value: func(p model.Product) any { return p.AvailableQuantity }},
	{Header: "Minimum", Value: func(p model.Product) any { return p.MinimumQuantity }},
	{Header: "Level", Width: 16, Value: func(p model.Product) any { return p.QuantityLevel }},
	{Header: "Viable", Value: func(p model.Product) any { return table.CountLots(p).Viable }},
	{Header: "Expiring", Value: func(p model.Product) any { return table.CountLots(p).Expiring }},
	{Header: "Expired", Value: func(p model.Product) any { return table.CountLots(p).Expired }},
	{Header: "Selling Price", Width: 14, Value: func(p model.Product) any { return money(p.DefaultSellingPrice) }},
}

// OrderColumns are the columns of the orders export.
var OrderColumns = []Column[model.Order]{
	{Header: "Order No.", Width: 18, Value: func(o model.Order) any { return o.MegaionOrderNumber }},
	{Header: "Company Order No.", Width: 20, Value: func(o model.Order) any { return o.CompanyOrderNumber }},
	{Header: "Company", Width: 28, Value: func(o model.Order) any { return o.CompanyName() }},
	{Header: "Order Date", Width: 14, Value: func(o model.Order) any { return o.CreatedAt.ISO() }},
	{Header: "Total Items", Value: func(o model.Order) any { return len(o.OrderItems) }},
	{Header: "Amount", Width: 14, Value: func(o model.Order) any { return money(o.TotalAmount) }},
	{Header: "Status", Width: 16, Value: func(o model.Order) any { return o.StatusName() }},
}

// PurchaseOrderColumns are the columns of the purchase orders export.
var PurchaseOrderColumns = []Column[model.PurchaseOrder]{
	{Header: "PO No.", Width: 18, Value: func(po model.PurchaseOrder) any { return po.PONumber }},
	{Header: "Supplier", Width: 28, Value: func(po model.PurchaseOrder) any { return po.SupplierName() }},
	{Header: "Created", Width: 14, Value: func(po model.PurchaseOrder) any { return po.CreatedAt.ISO() }},
	{Header: "Total Items", Value: func(po model.PurchaseOrder) any { return po.TotalItems }},
	{Header: "Amount", Width: 14, Value: func(po model.PurchaseOrder) any { return money(po.TotalAmount) }},
	{Header: "Status", Width: 18, Value: func(po model.PurchaseOrder) any { return po.StatusName() }},
}

// ServicingColumns are the columns of the servicing export.
var ServicingColumns = []Column[model.ServicingMachine]{
	{Header: "Serial No.", Width: 18, Value: func(m model.ServicingMachine) any { return m.SerialNumber }},
	{Header: "Reference No.", Width: 18, Value: func(m model.ServicingMachine) any { return m.ReferenceNumber }},
	{Header: "Company", Width: 28, Value: func(m model.ServicingMachine) any { return m.CompanyName }},
	{Header: "Product", Width: 28, Value: func(m model.ServicingMachine) any { return m.ProductName }},
	{Header: "Released", Width: 14, Value: func(m model.ServicingMachine) any { return m.CreatedAt.ISO() }},
	{Header: "For Calibration", Value: func(m model.ServicingMachine) any { return yesNo(m.ForCalibration) }},
	{Header: "Calibration Date", Width: 16, Value: func(m model.ServicingMachine) any { return m.CalibrationDate.ISO() }},
	{Header: "For Maintenance", Value: func(m model.ServicingMachine) any { return yesNo(m.ForMaintenance) }},
	{Header: "Next Maintenance", Width: 16, Value: func(m model.ServicingMachine) any { return m.NextMaintenanceDate.ISO() }},
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
