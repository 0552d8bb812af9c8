package employee

import "time"

type Employee struct {
	ID                   string
	EmployeeCode         string
	FullName             string
	Email                *string
	AdmissionDate        time.Time
	Status               Status
	IBAN                 string
	SocialSecurityNumber string
	TaxID                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

