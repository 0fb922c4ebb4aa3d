package model

// User is a console operator or customer account as returned by the backend.
type User struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Roles     Roles  `json:"roles"`
	CompanyID *int64 `json:"company_id"`
}

// Validate checks the shape the console relies on.
func (u *User) Validate() error {
	if u.ID <= 0 {
		return fieldError("user", "id")
	}
	if u.Roles == nil {
		u.Roles = Roles{}
	}
	return nil
}

// DisplayName returns the full name, falling back to the email.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
