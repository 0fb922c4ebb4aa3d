package model

// Named is a lookup record identified by name only: locations, warehouses,
// product units and tags.
type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Validate checks the shape the console relies on.
func (n *Named) Validate() error {
	if n.ID <= 0 {
		return fieldError("record", "id")
	}
	return nil
}

// Directory kinds backed by Named records.
const (
	KindLocations    = "locations"
	KindWarehouses   = "warehouses"
	KindProductUnits = "productUnits"
	KindTags         = "tags"
)

// Supplier provides stock to the business.
type Supplier struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Validate checks the shape the console relies on.
func (s *Supplier) Validate() error {
	if s.ID <= 0 {
		return fieldError("supplier", "id")
	}
	return nil
}

// Company is a customer organisation.
type Company struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Users               []User `json:"users,omitempty"`
	ContactInfo         string `json:"contact_info,omitempty"`
	WebsiteURL          string `json:"website_url,omitempty"`
	Industry            string `json:"industry,omitempty"`
	Address             string `json:"address,omitempty"`
	City                string `json:"city,omitempty"`
	Country             string `json:"country,omitempty"`
	ZipCode             string `json:"zip_code,omitempty"`
	PhoneNumber         string `json:"phone_number,omitempty"`
	EmailAddress        string `json:"email_address,omitempty"`
	PrimaryContactName  string `json:"primary_contact_name,omitempty"`
	PrimaryContactPhone string `json:"primary_contact_phone,omitempty"`
	PrimaryContactEmail string `json:"primary_contact_email,omitempty"`
	AdditionalInfo      string `json:"additional_info,omitempty"`
}

// Validate checks the shape the console relies on.
func (c *Company) Validate() error {
	if c.ID <= 0 {
		return fieldError("company", "id")
	}
	return nil
}

// UserIDs returns the ids of the users linked to the company.
func (c *Company) UserIDs() []int64 {
	ids := make([]int64, 0, len(c.Users))
	for _, u := range c.Users {
		ids = append(ids, u.ID)
	}
	return ids
}
