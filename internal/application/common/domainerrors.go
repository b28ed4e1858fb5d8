// Package common holds classification shared by the application use cases
// and the transports that render their errors.
package common

import (
	stderrors "errors"

	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/domain/setting"
	"github.com/assetdesk/assetdesk/internal/shared/errors"
)

// InternalErrorMessage is all a caller learns about a failure that is not
// part of the domain vocabulary.
const InternalErrorMessage = "internal error"

var (
	conflictErrors = []error{
		attachment.ErrDuplicateAttachment,
		attachment.ErrLicenseExhausted,
		attachment.ErrAttachmentAlreadyDetached,
		attachment.ErrDeviceAlreadyAssigned,
		attachment.ErrPartInUse,
		asset.ErrAssetAlreadyRetired,
		asset.ErrRetirementPending,
		asset.ErrNotPendingRetirement,
		asset.ErrApprovalMismatch,
		asset.ErrInvalidTransition,
		asset.ErrDuplicateAssetNumber,
		asset.ErrConcurrentModification,
		approval.ErrFormAlreadyResolved,
	}

	notFoundErrors = []error{
		asset.ErrAssetNotFound,
		asset.ErrSoftwareNotFound,
		asset.ErrPartNotFound,
		asset.ErrDeviceNotFound,
		asset.ErrRuleNotFound,
		attachment.ErrAttachmentNotFound,
		approval.ErrFlowNotFound,
		approval.ErrFormNotFound,
	}

	validationErrors = []error{
		asset.ErrNoRetireFlowConfigured,
		asset.ErrRetireFlowMissing,
		asset.ErrRuleNotBound,
		asset.ErrAssetNumberManaged,
		asset.ErrInvalidClass,
		asset.ErrInvalidAssetNumber,
		asset.ErrInvalidName,
		asset.ErrInvalidLicenseCount,
		asset.ErrInvalidFormula,
		asset.ErrInvalidRuleName,
		asset.ErrInvalidIncrementLn,
		attachment.ErrInvalidTargetKind,
		attachment.ErrInvalidTarget,
		attachment.ErrInvalidDevice,
		attachment.ErrNotADevice,
		approval.ErrInvalidOutcome,
		approval.ErrInvalidFlowName,
		approval.ErrInvalidFormName,
		setting.ErrInvalidValueType,
	}
)

// ToAppError translates domain sentinels into transport errors. Unknown
// errors are returned unchanged.
func ToAppError(err error) error {
	if err == nil || errors.IsAppError(err) {
		return err
	}
	switch {
	case matches(err, conflictErrors):
		return errors.NewConflictError(err.Error())
	case matches(err, notFoundErrors):
		return errors.NewNotFoundError(err.Error())
	case matches(err, validationErrors):
		return errors.NewValidationError(err.Error())
	}
	return err
}

// Describe is ToAppError for callers that must report err to a client
// without failing the request: anything outside the domain vocabulary
// becomes a generic internal error.
func Describe(err error) *errors.AppError {
	if appErr := errors.GetAppError(ToAppError(err)); appErr != nil {
		return appErr
	}
	return errors.NewInternalError(InternalErrorMessage)
}

func matches(err error, targets []error) bool {
	for _, target := range targets {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}
