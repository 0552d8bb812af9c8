package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrClockOutBeforeIn   = errors.New("clock out must not be before clock in")
	ErrEmployeeNotFound   = errors.New("employee not found")
)
