package model

// DemoUnit is a machine on loan to a customer for a bounded trial period.
type DemoUnit struct {
	ID               int64          `json:"id"`
	DemoNumber       string         `json:"demo_number"`
	IncomingStockID  int64          `json:"incoming_stock_id"`
	IncomingStock    *IncomingStock `json:"incoming_stock"`
	CompanyID        int64          `json:"company_id"`
	Company          *Company       `json:"company"`
	DemoStart        Date           `json:"demo_start"`
	DemoEnd          Date           `json:"demo_end"`
	AssignedPersonID int64          `json:"assigned_person_id"`
	AssignedPerson   *User          `json:"assigned_person"`
	IsOverdue        bool           `json:"is_overdue"`
	Status           *Status        `json:"status"`
	Notes            string         `json:"notes"`
}

// Validate checks the shape the console relies on.
func (d *DemoUnit) Validate() error {
	if d.ID <= 0 {
		return fieldError("demo unit", "id")
	}
	return nil
}

// SerialNumber returns the serial of the lent unit or "".
func (d *DemoUnit) SerialNumber() string {
	if d.IncomingStock == nil {
		return ""
	}
	return d.IncomingStock.SerialNumber
}

// ProductName returns the name of the lent product or "".
func (d *DemoUnit) ProductName() string {
	if d.IncomingStock == nil || d.IncomingStock.Product == nil {
		return ""
	}
	return d.IncomingStock.Product.Name
}

// CompanyName returns the borrowing company's name or "".
func (d *DemoUnit) CompanyName() string {
	if d.Company == nil {
		return ""
	}
	return d.Company.Name
}

// AssignedPersonName returns the assignee's name or "".
func (d *DemoUnit) AssignedPersonName() string {
	if d.AssignedPerson == nil {
		return ""
	}
	return d.AssignedPerson.DisplayName()
}

// StatusName returns the current status name or "".
func (d *DemoUnit) StatusName() string {
	if d.Status == nil {
		return ""
	}
	return d.Status.Name
}
