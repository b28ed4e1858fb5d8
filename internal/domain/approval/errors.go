package approval

import "errors"

var (
	ErrFlowNotFound        = errors.New("flow not found")
	ErrFormNotFound        = errors.New("approval form not found")
	ErrFormAlreadyResolved = errors.New("approval form already resolved")
	ErrInvalidOutcome      = errors.New("outcome must be approved or rejected")
	ErrInvalidFlowName     = errors.New("flow name is required")
	ErrInvalidFormName     = errors.New("form name is required")
)
