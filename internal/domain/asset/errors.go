package asset

import "errors"

var (
	ErrAssetNotFound          = errors.New("asset not found")
	ErrAssetAlreadyRetired    = errors.New("asset already retired")
	ErrRetirementPending      = errors.New("asset has a pending retirement request")
	ErrNotPendingRetirement   = errors.New("asset is not pending retirement")
	ErrApprovalMismatch       = errors.New("approval does not belong to the pending retirement")
	ErrInvalidTransition      = errors.New("invalid lifecycle transition")
	ErrInvalidClass           = errors.New("invalid asset class")
	ErrInvalidAssetNumber     = errors.New("asset number is required")
	ErrInvalidName            = errors.New("asset name is required")
	ErrInvalidLicenseCount    = errors.New("max license count must not be negative")
	ErrDuplicateAssetNumber   = errors.New("asset number already exists")
	ErrAssetNumberManaged     = errors.New("asset number is generated automatically for this class")
	ErrSoftwareNotFound       = errors.New("software not found")
	ErrPartNotFound           = errors.New("part not found")
	ErrDeviceNotFound         = errors.New("device not found")
	ErrNoRetireFlowConfigured = errors.New("no retire flow configured for asset class")
	ErrRetireFlowMissing      = errors.New("configured retire flow no longer exists")

	ErrRuleNotFound       = errors.New("asset number rule not found")
	ErrRuleNotBound       = errors.New("no asset number rule bound to class")
	ErrInvalidFormula     = errors.New("formula must contain the {number} placeholder")
	ErrInvalidRuleName    = errors.New("rule name is required")
	ErrInvalidIncrementLn = errors.New("auto increment length must be between 1 and 12")
)

var ErrConcurrentModification = errors.New("asset was modified concurrently")
