package table

import (
	"strconv"

	"github.com/erazemk/konzola/internal/model"
)

// Product type filter values.
const (
	TypeAll         = "all"
	TypeConsumables = "consumables"
	TypeMachines    = "machines"
)

// MachineFilter keeps products of the requested type.
func MachineFilter(kind string) func(model.Product) bool {
	return func(p model.Product) bool {
		switch kind {
		case TypeConsumables:
			return !p.IsMachine
		case TypeMachines:
			return p.IsMachine
		}
		return true
	}
}

// DefaultQuantityLevel maps a dashboard shortcut to a quantity level filter.
func DefaultQuantityLevel(defaultFilter string) string {
	switch defaultFilter {
	case "no_stock":
		return model.QuantityLevelNoStock
	case "below_minimum":
		return model.QuantityLevelBelowMinimum
	case "above_minimum":
		return model.QuantityLevelAboveMinimum
	}
	return ""
}

// ProductFields are the fields searched on the products list.
func ProductFields(p model.Product) []string {
	return []string{p.Name, p.SKU, p.Barcode, p.Model}
}

// LotCounts are the per-status lot quantities of a consumable product, as
// displayed: "-" when nothing is available and "N/A" when no lot carries an
// expiration date.
type LotCounts struct {
	Viable   string
	Expiring string
	Expired  string
}

// CountLots sums the quantities of dated incoming stocks by status.
func CountLots(p model.Product) LotCounts {
	if p.AvailableQuantity == 0 {
		return LotCounts{"-", "-", "-"}
	}

	dated := 0
	sums := make(map[string]int)
	for _, s := range p.IncomingStocks {
		if s.ExpirationDate.IsZero() {
			continue
		}
		dated++
		sums[s.Status] += s.Quantity
	}
	if dated == 0 {
		return LotCounts{"N/A", "N/A", "N/A"}
	}
	return LotCounts{
		Viable:   strconv.Itoa(sums[model.LotStatusViable]),
		Expiring: strconv.Itoa(sums[model.LotStatusExpiring]),
		Expired:  strconv.Itoa(sums[model.LotStatusExpired]),
	}
}

// LotTabs are the incoming stock tabs on a consumable's inventory page.
var LotTabs = []TabSpec{
	{Key: "all", Label: "All"},
	{Key: "viable", Label: "Viable", Status: model.LotStatusViable},
	{Key: "expiring", Label: "Expiring", Status: model.LotStatusExpiring},
	{Key: "expired", Label: "Expired", Status: model.LotStatusExpired},
}

// LotStatus returns an incoming stock's status for tabbing.
func LotStatus(s model.IncomingStock) string { return s.Status }
