package report

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/vacation"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// NewPeriod describes the calendar month month/year.
func NewPeriod(month, year int, generatedAt time.Time) Period {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Month:       month,
		Year:        year,
		PeriodStart: start.Format(validator.DateLayout),
		PeriodEnd:   start.AddDate(0, 1, -1).Format(validator.DateLayout),
		GeneratedAt: generatedAt.Format(time.RFC3339),
	}
}

func BuildSocialSecurityMap(period Period, rows []SocialSecurityRow) SocialSecurityMap {
	m := SocialSecurityMap{
		Period:             period,
		Rows:               make([]SocialSecurityRow, 0, len(rows)),
		TotalBase:          decimal.Zero,
		TotalEmployeeShare: decimal.Zero,
		TotalEmployerShare: decimal.Zero,
		Total:              decimal.Zero,
	}
	for _, row := range rows {
		row.Total = row.EmployeeShare.Add(row.EmployerShare)
		m.Rows = append(m.Rows, row)
		m.TotalBase = m.TotalBase.Add(row.Base)
		m.TotalEmployeeShare = m.TotalEmployeeShare.Add(row.EmployeeShare)
		m.TotalEmployerShare = m.TotalEmployerShare.Add(row.EmployerShare)
		m.Total = m.Total.Add(row.Total)
	}
	return m
}

func BuildIncomeTaxMap(period Period, rows []IncomeTaxRow) IncomeTaxMap {
	m := IncomeTaxMap{
		Period:        period,
		Rows:          append([]IncomeTaxRow{}, rows...),
		TotalGross:    decimal.Zero,
		TotalTaxBase:  decimal.Zero,
		TotalWithheld: decimal.Zero,
	}
	for _, row := range rows {
		m.TotalGross = m.TotalGross.Add(row.GrossPay)
		m.TotalTaxBase = m.TotalTaxBase.Add(row.TaxBase)
		m.TotalWithheld = m.TotalWithheld.Add(row.TaxWithheld)
	}
	return m
}

// BuildVacationMap totals business days clipped to the period, so a request
// spanning two months counts in each month only for its own days.
func BuildVacationMap(period Period, rows []VacationRow) VacationMap {
	monthStart := time.Date(period.Year, time.Month(period.Month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	m := VacationMap{Period: period, Rows: make([]VacationRow, 0, len(rows))}
	seen := make(map[string]struct{})
	for _, row := range rows {
		from, to := row.StartDate, row.EndDate
		if from.Before(monthStart) {
			from = monthStart
		}
		if to.After(monthEnd) {
			to = monthEnd
		}
		row.DaysInPeriod = vacation.BusinessDaysBetween(from, to)

		m.Rows = append(m.Rows, row)
		seen[row.EmployeeID] = struct{}{}
		m.TotalBusinessDays += row.DaysInPeriod
	}
	m.EmployeesOnLeave = len(seen)
	return m
}

func BuildAbsenceReport(period Period, rows []AbsenceRow) AbsenceReport {
	r := AbsenceReport{Period: period, Rows: append([]AbsenceRow{}, rows...)}
	for _, row := range rows {
		switch row.Classification {
		case "JUSTIFIED_ABSENCE":
			r.Justified++
		case "UNJUSTIFIED_ABSENCE":
			r.Unjustified++
		}
	}
	return r
}

func BuildPayrollSummary(period Period, totals []StatusTotals) PayrollSummary {
	s := PayrollSummary{
		Period:          period,
		TotalGross:      decimal.Zero,
		TotalNet:        decimal.Zero,
		TotalEmployeeSS: decimal.Zero,
		TotalEmployerSS: decimal.Zero,
		TotalTax:        decimal.Zero,
	}
	for _, t := range totals {
		switch t.Status {
		case "PROCESSED":
			s.ProcessedCount += t.Count
		case "PAID":
			s.PaidCount += t.Count
		}
		s.Headcount += t.Count
		s.TotalGross = s.TotalGross.Add(t.Gross)
		s.TotalNet = s.TotalNet.Add(t.Net)
		s.TotalEmployeeSS = s.TotalEmployeeSS.Add(t.EmployeeSS)
		s.TotalEmployerSS = s.TotalEmployerSS.Add(t.EmployerSS)
		s.TotalTax = s.TotalTax.Add(t.Tax)
	}
	return s
}
