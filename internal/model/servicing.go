package model

// ServicingMachine is a released machine tracked for calibration and
// maintenance.
type ServicingMachine struct {
	SerialNumber        string  `json:"serial_number"`
	ReferenceNumber     string  `json:"reference_number"`
	CompanyName         string  `json:"company_name"`
	ProductName         string  `json:"product_name"`
	CreatedAt           Date    `json:"created_at"`
	ForCalibration      bool    `json:"for_calibration"`
	CalibrationDate     Date    `json:"calibration_date"`
	ForMaintenance      bool    `json:"for_maintenance"`
	NextMaintenanceDate Date    `json:"next_maintenance_date"`
	Type                string  `json:"type"`
	Status              *Status `json:"status"`
}

// Validate checks the shape the console relies on.
func (m *ServicingMachine) Validate() error {
	if m.SerialNumber == "" {
		return fieldError("servicing machine", "serial_number")
	}
	return nil
}

// Servicing log kinds. Each kind is an independent per-serial log.
const (
	ServiceMaintenance = "maintenance"
	ServiceCalibration = "calibration"
	ServiceWarranty    = "warranty"
)

// ServiceKinds lists the log kinds in display order.
var ServiceKinds = []string{ServiceMaintenance, ServiceCalibration, ServiceWarranty}

// ServiceRecord is one maintenance, calibration or warranty claim entry.
// The backend names the date field differently per kind; the client maps
// it onto Date.
type ServiceRecord struct {
	ID           int64  `json:"id"`
	SerialNumber string `json:"serial_number"`
	Date         Date   `json:"-"`
	Description  string `json:"description"`
	PerformedBy  string `json:"performed_by"`
}

// Validate checks the shape the console relies on.
func (r *ServiceRecord) Validate() error {
	if r.ID <= 0 {
		return fieldError("service record", "id")
	}
	return nil
}

// ServiceDateField returns the JSON name of the date field for kind.
func ServiceDateField(kind string) string {
	switch kind {
	case ServiceCalibration:
		return "calibration_date"
	case ServiceWarranty:
		return "claim_date"
	default:
		return "maintenance_date"
	}
}

// ServiceKindLabel returns the display label for kind.
func ServiceKindLabel(kind string) string {
	switch kind {
	case ServiceCalibration:
		return "Calibration"
	case ServiceWarranty:
		return "Warranty Claims"
	default:
		return "Maintenance"
	}
}
