package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmployeeCodeExists      = errors.New("employee code already exists")
	ErrInvalidStatus           = errors.New("status must be ACTIVE or INACTIVE")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
)
