package payroll

import "errors"

var (
	ErrInvalidInput             = errors.New("invalid calculation input")
	ErrMissingConfiguration     = errors.New("no contribution config for payroll period")
	ErrAlreadyProcessed         = errors.New("payroll already processed for this period")
	ErrMissingContract          = errors.New("employee has no active contract")
	ErrPayrollRecordNotFound    = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyPaid = errors.New("payroll record already paid, cannot modify")
	ErrNothingToPay             = errors.New("no processed payroll records for this period")
	ErrInvalidPeriod            = errors.New("invalid payroll period")
)
