package form

import (
	"github.com/shopspring/decimal"

	"github.com/erazemk/konzola/internal/model"
)

// ProductPayload is sent to create or update a product. Every optional field
// is present and null when left empty.
type ProductPayload struct {
	Name                string           `json:"name"`
	Model               *string          `json:"model"`
	SKU                 *string          `json:"sku"`
	Barcode             *string          `json:"barcode"`
	Description         *string          `json:"description"`
	IsMachine           bool             `json:"is_machine"`
	MinimumQuantity     *int64           `json:"minimum_quantity"`
	SupplierID          *int64           `json:"supplier_id"`
	WarehouseID         *int64           `json:"warehouse_id"`
	LocationID          *int64           `json:"location_id"`
	ProductUnitID       *int64           `json:"product_unit_id"`
	Tags                []int64          `json:"tags"`
	SupplierPrice       *decimal.Decimal `json:"supplier_price"`
	ProfitMargin        *decimal.Decimal `json:"profit_margin"`
	DefaultSellingPrice *decimal.Decimal `json:"default_selling_price"`
}

// Product reads the product form.
func Product(f *Form) ProductPayload {
	f.Required("name")
	return ProductPayload{
		Name:                f.Get("name"),
		Model:               f.Optional("model"),
		SKU:                 f.Optional("sku"),
		Barcode:             f.Optional("barcode"),
		Description:         f.Optional("description"),
		IsMachine:           f.Bool("is_machine"),
		MinimumQuantity:     f.OptionalInt("minimum_quantity"),
		SupplierID:          f.OptionalInt("supplier_id"),
		WarehouseID:         f.OptionalInt("warehouse_id"),
		LocationID:          f.OptionalInt("location_id"),
		ProductUnitID:       f.OptionalInt("product_unit_id"),
		Tags:                f.IntList("tags"),
		SupplierPrice:       f.OptionalDecimal("supplier_price"),
		ProfitMargin:        f.OptionalDecimal("profit_margin"),
		DefaultSellingPrice: f.OptionalDecimal("default_selling_price"),
	}
}

// CompanyPayload is sent to create or update a customer company.
type CompanyPayload struct {
	Name                string  `json:"name"`
	UserIDs             []int64 `json:"user_id"`
	ContactInfo         *string `json:"contact_info"`
	WebsiteURL          *string `json:"website_url"`
	Industry            *string `json:"industry"`
	Address             *string `json:"address"`
	City                *string `json:"city"`
	Country             *string `json:"country"`
	ZipCode             *string `json:"zip_code"`
	PhoneNumber         *string `json:"phone_number"`
	EmailAddress        *string `json:"email_address"`
	PrimaryContactName  *string `json:"primary_contact_name"`
	PrimaryContactPhone *string `json:"primary_contact_phone"`
	PrimaryContactEmail *string `json:"primary_contact_email"`
	AdditionalInfo      *string `json:"additional_info"`
}

// Company reads the company form.
func Company(f *Form) CompanyPayload {
	f.Required("name", "user_id")
	f.Email("email_address")
	f.Email("primary_contact_email")
	return CompanyPayload{
		Name:                f.Get("name"),
		UserIDs:             f.IntList("user_id"),
		ContactInfo:         f.Optional("contact_info"),
		WebsiteURL:          f.Optional("website_url"),
		Industry:            f.Optional("industry"),
		Address:             f.Optional("address"),
		City:                f.Optional("city"),
		Country:             f.Optional("country"),
		ZipCode:             f.Optional("zip_code"),
		PhoneNumber:         f.Optional("phone_number"),
		EmailAddress:        f.Optional("email_address"),
		PrimaryContactName:  f.Optional("primary_contact_name"),
		PrimaryContactPhone: f.Optional("primary_contact_phone"),
		PrimaryContactEmail: f.Optional("primary_contact_email"),
		AdditionalInfo:      f.Optional("additional_info"),
	}
}

// SupplierPayload is sent to create or update a supplier.
type SupplierPayload struct {
	Name        string  `json:"name"`
	ContactInfo *string `json:"contact_info"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
}

// Supplier reads the supplier form.
func Supplier(f *Form) SupplierPayload {
	f.Required("name")
	f.Email("email")
	return SupplierPayload{
		Name:        f.Get("name"),
		ContactInfo: f.Optional("contact_info"),
		Email:       f.Optional("email"),
		Phone:       f.Optional("phone"),
		Address:     f.Optional("address"),
	}
}

// UserPayload is sent to create or update a user account. The password is
// only required when creating.
type UserPayload struct {
	FullName  string   `json:"full_name"`
	Email     string   `json:"email"`
	Password  *string  `json:"password,omitempty"`
	Roles     []string `json:"roles"`
	CompanyID *int64   `json:"company_id"`
}

// User reads the user form.
func User(f *Form, create bool) UserPayload {
	f.Required("full_name", "email", "roles")
	if create {
		f.Required("password")
	}
	f.Email("email")
	return UserPayload{
		FullName:  f.Get("full_name"),
		Email:     f.Get("email"),
		Password:  f.Optional("password"),
		Roles:     f.List("roles"),
		CompanyID: f.OptionalInt("company_id"),
	}
}

// Name reads the single-field form of name-only directories.
func Name(f *Form) string {
	f.Required("name")
	return f.Get("name")
}

// DemoUnitPayload is sent to lend a unit out or update the loan.
type DemoUnitPayload struct {
	IncomingStockID  int64   `json:"incoming_stock_id"`
	CompanyID        int64   `json:"company_id"`
	DemoStart        *string `json:"demo_start"`
	DemoEnd          *string `json:"demo_end"`
	AssignedPersonID int64   `json:"assigned_person_id"`
	Notes            string  `json:"notes"`
	StatusID         int64   `json:"status_id,omitempty"`
}

// DemoUnit reads the demo unit form. New loans start in the ongoing demo
// status.
func DemoUnit(f *Form, create bool) DemoUnitPayload {
	f.Required("incoming_stock_id", "company_id", "demo_start", "demo_end", "assigned_person_id", "notes")
	p := DemoUnitPayload{
		IncomingStockID:  f.Int("incoming_stock_id"),
		CompanyID:        f.Int("company_id"),
		DemoStart:        f.OptionalDate("demo_start"),
		DemoEnd:          f.OptionalDate("demo_end"),
		AssignedPersonID: f.Int("assigned_person_id"),
		Notes:            f.Get("notes"),
	}
	if create {
		p.StatusID = model.StatusDemoOngoing
	}
	return p
}

// ServiceRecord reads a maintenance, calibration or warranty claim form for
// the machine with serial.
func ServiceRecord(f *Form, serial string) model.ServiceRecord {
	f.Required("date", "description", "performed_by")
	return model.ServiceRecord{
		SerialNumber: serial,
		Date:         f.Date("date"),
		Description:  f.Get("description"),
		PerformedBy:  f.Get("performed_by"),
	}
}
