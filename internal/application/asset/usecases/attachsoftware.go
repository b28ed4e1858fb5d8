package usecases

import (
	"context"
	"fmt"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
	"github.com/assetdesk/assetdesk/internal/application/asset/services"
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

type AttachSoftwareCommand struct {
	SoftwareID  uint
	DeviceIDs   []uint
	RequesterID uint
	Comment     string
}

// AttachSoftwareUseCase installs one software on several devices. Either
// every device gets a seat or none does.
type AttachSoftwareUseCase struct {
	tx     TransactionRunner
	ledger *services.AttachmentLedger
	logger logger.Interface
}

func NewAttachSoftwareUseCase(tx TransactionRunner, ledger *services.AttachmentLedger, logger logger.Interface) *AttachSoftwareUseCase {
	return &AttachSoftwareUseCase{tx: tx, ledger: ledger, logger: logger}
}

func (uc *AttachSoftwareUseCase) Execute(ctx context.Context, cmd AttachSoftwareCommand) ([]*dto.AttachmentDTO, error) {
	comment := utils.SanitizeComment(cmd.Comment)
	result := make([]*dto.AttachmentDTO, 0, len(cmd.DeviceIDs))

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		seen := make(map[uint]struct{}, len(cmd.DeviceIDs))
		for _, deviceID := range cmd.DeviceIDs {
			if _, dup := seen[deviceID]; dup {
				continue
			}
			seen[deviceID] = struct{}{}

			a, err := uc.ledger.Attach(ctx, services.AttachCommand{
				DeviceID:    deviceID,
				TargetKind:  attachment.TargetSoftware,
				TargetID:    cmd.SoftwareID,
				RequesterID: cmd.RequesterID,
				Comment:     comment,
			})
			if err != nil {
				return fmt.Errorf("device %d: %w", deviceID, err)
			}
			result = append(result, dto.ToAttachmentDTO(a))
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("failed to attach software to devices", "software_id", cmd.SoftwareID, "error", err)
		return nil, err
	}
	return result, nil
}
