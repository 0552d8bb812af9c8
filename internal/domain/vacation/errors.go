package vacation

import "errors"

var (
	ErrVacationNotFound = errors.New("vacation request not found")
	ErrInvalidState     = errors.New("vacation request is not pending")
	ErrNoBusinessDays   = errors.New("vacation range contains no business days")
	ErrEmployeeNotFound = errors.New("employee not found")
)
