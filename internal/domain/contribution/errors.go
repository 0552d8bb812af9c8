package contribution

import "errors"

var (
	ErrConfigNotFound          = errors.New("contribution config not found for period")
	ErrEmptyBrackets           = errors.New("tax bracket table must not be empty")
	ErrBracketsMustStartAtZero = errors.New("first tax bracket must start at 0")
	ErrBracketsNotAscending    = errors.New("tax bracket lower bounds must be strictly ascending")
	ErrInvalidBracketRate      = errors.New("tax bracket rate must be between 0 and 1")
	ErrInvalidBracketDeduction = errors.New("tax bracket fixed deduction must be non-negative")
)
