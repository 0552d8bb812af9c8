package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent            Status = "PRESENT"
	StatusJustifiedAbsence   Status = "JUSTIFIED_ABSENCE"
	StatusUnjustifiedAbsence Status = "UNJUSTIFIED_ABSENCE"
	StatusRestDay            Status = "REST_DAY"
	StatusHoliday            Status = "HOLIDAY"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusJustifiedAbsence, StatusUnjustifiedAbsence, StatusRestDay, StatusHoliday:
		return true
	}
	return false
}

// IsAbsence reports whether the status is one of the absence classifications.
func (s Status) IsAbsence() bool {
	return s == StatusJustifiedAbsence || s == StatusUnjustifiedAbsence
}

// Record - one attendance row per employee per calendar day
type Record struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	ClockIn          *time.Time
	ClockOut         *time.Time
	Status           Status
	NormalHours      decimal.Decimal
	Overtime50Hours  decimal.Decimal
	Overtime100Hours decimal.Decimal
	NightHours       decimal.Decimal
	Note             *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Totals - monthly labor totals consumed by the payroll calculation
type Totals struct {
	EmployeeID          string
	Month               int
	Year                int
	NormalOvertimeHours decimal.Decimal
	RestOvertimeHours   decimal.Decimal
	NightHours          decimal.Decimal
	UnjustifiedAbsences int
	DaysRecorded        int
}

// Aggregate reduces the records of one employee to the totals for month/year.
// Rows outside the calendar month are ignored; no rows yields zero totals.
func Aggregate(employeeID string, records []Record, month, year int) Totals {
	totals := Totals{
		EmployeeID:          employeeID,
		Month:               month,
		Year:                year,
		NormalOvertimeHours: decimal.Zero,
		RestOvertimeHours:   decimal.Zero,
		NightHours:          decimal.Zero,
	}

	for _, r := range records {
		if r.EmployeeID != employeeID || r.Date.Year() != year || int(r.Date.Month()) != month {
			continue
		}
		totals.DaysRecorded++
		totals.NormalOvertimeHours = totals.NormalOvertimeHours.Add(r.Overtime50Hours)
		totals.RestOvertimeHours = totals.RestOvertimeHours.Add(r.Overtime100Hours)
		totals.NightHours = totals.NightHours.Add(r.NightHours)
		if r.Status == StatusUnjustifiedAbsence {
			totals.UnjustifiedAbsences++
		}
	}

	return totals
}

// MonthRange returns the first day of the month and the first day of the next.
func MonthRange(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
