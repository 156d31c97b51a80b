package models

import "time"

type ContactType string

const (
	ContactCustomer          ContactType = "CUSTOMER"
	ContactPotentialCustomer ContactType = "POTENTIAL_CUSTOMER"
	ContactPartner           ContactType = "PARTNER"
	ContactPotentialPartner  ContactType = "POTENTIAL_PARTNER"
)

// Label is the human readable name of the contact type.
func (t ContactType) Label() string {
	switch t {
	case ContactCustomer:
		return "Customer"
	case ContactPotentialCustomer:
		return "Potential customer"
	case ContactPartner:
		return "Partner"
	case ContactPotentialPartner:
		return "Potential partner"
	default:
		return string(t)
	}
}

// Contact is a CRM contact. LeadScore is 0 until the server has computed it.
type Contact struct {
	ID          int64       `json:"id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	ContactType ContactType `json:"contact_type"`
	Notes       string      `json:"notes,omitempty"`
	LeadScore   int         `json:"lead_score"`
	CreatedAt   time.Time   `json:"created_at,omitzero"`
}

func (c Contact) FullName() string {
	return User{FirstName: c.FirstName, LastName: c.LastName}.FullName()
}

// Policy is an insurance policy held by a contact.
type Policy struct {
	ID           int64     `json:"id"`
	Contact      int64     `json:"contact"`
	PolicyType   string    `json:"policy_type"`
	PolicyNumber string    `json:"policy_number"`
	Provider     string    `json:"provider,omitempty"`
	Premium      float64   `json:"premium,omitempty"`
	StartDate    string    `json:"start_date,omitempty"`
	EndDate      string    `json:"end_date,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}
