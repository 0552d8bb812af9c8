package attendance

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordAttendanceRequest struct {
	EmployeeID       string          `json:"employee_id"`
	Date             string          `json:"date"`
	ClockIn          *string         `json:"clock_in,omitempty"`
	ClockOut         *string         `json:"clock_out,omitempty"`
	Status           string          `json:"status"`
	NormalHours      decimal.Decimal `json:"normal_hours"`
	Overtime50Hours  decimal.Decimal `json:"overtime_50_hours"`
	Overtime100Hours decimal.Decimal `json:"overtime_100_hours"`
	NightHours       decimal.Decimal `json:"night_hours"`
	Note             *string         `json:"note,omitempty"`

	ParsedDate     time.Time  `json:"-"`
	ParsedClockIn  *time.Time `json:"-"`
	ParsedClockOut *time.Time `json:"-"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs.Add("date", "must be a date in YYYY-MM-DD format")
	}
	r.ParsedDate = date

	if !Status(r.Status).IsValid() {
		errs.Add("status", ErrInvalidStatus.Error())
	}

	r.ParsedClockIn, r.ParsedClockOut = nil, nil
	if r.ClockIn != nil {
		if t, ok := validator.IsValidDateTime(*r.ClockIn); ok {
			r.ParsedClockIn = &t
		} else {
			errs.Add("clock_in", "must be an RFC3339 timestamp")
		}
	}
	if r.ClockOut != nil {
		if t, ok := validator.IsValidDateTime(*r.ClockOut); ok {
			r.ParsedClockOut = &t
		} else {
			errs.Add("clock_out", "must be an RFC3339 timestamp")
		}
	}
	if r.ParsedClockIn != nil && r.ParsedClockOut != nil && r.ParsedClockOut.Before(*r.ParsedClockIn) {
		errs.Add("clock_out", ErrClockOutBeforeIn.Error())
	}

	hours := []struct {
		field string
		value decimal.Decimal
	}{
		{"normal_hours", r.NormalHours},
		{"overtime_50_hours", r.Overtime50Hours},
		{"overtime_100_hours", r.Overtime100Hours},
		{"night_hours", r.NightHours},
	}
	for _, h := range hours {
		if !validator.IsNonNegative(h.value) {
			errs.Add(h.field, "must be non-negative")
		}
	}

	return errs.Err()
}

type PeriodQuery struct {
	Month int
	Year  int
}

func (q PeriodQuery) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidPeriod(q.Month, q.Year) {
		errs.Add("period", "month must be 1-12 and year 2000-2100")
	}
	return errs.Err()
}

type AttendanceResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	Date             string          `json:"date"`
	ClockIn          *string         `json:"clock_in,omitempty"`
	ClockOut         *string         `json:"clock_out,omitempty"`
	Status           string          `json:"status"`
	NormalHours      decimal.Decimal `json:"normal_hours"`
	Overtime50Hours  decimal.Decimal `json:"overtime_50_hours"`
	Overtime100Hours decimal.Decimal `json:"overtime_100_hours"`
	NightHours       decimal.Decimal `json:"night_hours"`
	Note             *string         `json:"note,omitempty"`
}

func ToResponse(r Record) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		Date:             r.Date.Format(validator.DateLayout),
		Status:           string(r.Status),
		NormalHours:      r.NormalHours,
		Overtime50Hours:  r.Overtime50Hours,
		Overtime100Hours: r.Overtime100Hours,
		NightHours:       r.NightHours,
		Note:             r.Note,
	}
	if r.ClockIn != nil {
		s := r.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &s
	}
	if r.ClockOut != nil {
		s := r.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &s
	}
	return resp
}

type TotalsResponse struct {
	EmployeeID          string          `json:"employee_id"`
	Month               int             `json:"month"`
	Year                int             `json:"year"`
	NormalOvertimeHours decimal.Decimal `json:"normal_overtime_hours"`
	RestOvertimeHours   decimal.Decimal `json:"rest_overtime_hours"`
	NightHours          decimal.Decimal `json:"night_hours"`
	UnjustifiedAbsences int             `json:"unjustified_absences"`
	DaysRecorded        int             `json:"days_recorded"`
}

func ToTotalsResponse(t Totals) TotalsResponse {
	return TotalsResponse{
		EmployeeID:          t.EmployeeID,
		Month:               t.Month,
		Year:                t.Year,
		NormalOvertimeHours: t.NormalOvertimeHours,
		RestOvertimeHours:   t.RestOvertimeHours,
		NightHours:          t.NightHours,
		UnjustifiedAbsences: t.UnjustifiedAbsences,
		DaysRecorded:        t.DaysRecorded,
	}
}
