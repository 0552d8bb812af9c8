package vacation

import "time"

type Type string

const (
	TypeAnnual  Type = "ANNUAL"
	TypeUnpaid  Type = "UNPAID"
	TypeSpecial Type = "SPECIAL"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeAnnual, TypeUnpaid, TypeSpecial:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Request - a vacation request for a date range
type Request struct {
	ID           string
	EmployeeID   string
	StartDate    time.Time
	EndDate      time.Time
	BusinessDays int
	Type         Type
	Status       Status
	Reason       *string
	DecisionNote *string
	DecidedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
}

// BusinessDaysBetween counts Monday to Friday days in [start, end].
func BusinessDaysBetween(start, end time.Time) int {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}
