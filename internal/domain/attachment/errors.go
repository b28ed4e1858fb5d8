package attachment

import "errors"

var (
	ErrAttachmentNotFound        = errors.New("attachment not found")
	ErrDuplicateAttachment       = errors.New("target is already attached to this device")
	ErrAttachmentAlreadyDetached = errors.New("attachment already detached")
	ErrLicenseExhausted          = errors.New("software license pool exhausted")
	ErrInvalidTargetKind         = errors.New("invalid attachment target kind")
	ErrInvalidTarget             = errors.New("attachment target id is required")
	ErrInvalidDevice             = errors.New("attachment device id is required")
	ErrNotADevice                = errors.New("attachments can only be made to devices")
	ErrDeviceAlreadyAssigned     = errors.New("device is already assigned to a user")
	ErrPartInUse                 = errors.New("part is attached to another device")
)
