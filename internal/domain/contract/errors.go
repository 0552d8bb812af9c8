package contract

import "errors"

var (
	ErrContractNotFound     = errors.New("contract not found")
	ErrNoActiveContract     = errors.New("employee has no active contract")
	ErrActiveContractExists = errors.New("employee already has an active contract")
	ErrInvalidState         = errors.New("contract is not in a state that allows this operation")
	ErrInvalidContractType  = errors.New("invalid contract type")
)
