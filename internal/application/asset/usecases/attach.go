package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
	"github.com/assetdesk/assetdesk/internal/application/asset/services"
	"github.com/assetdesk/assetdesk/internal/domain/attachment"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

type AttachCommand struct {
	DeviceID    uint
	TargetKind  string
	TargetID    uint
	RequesterID uint
	Comment     string
}

type AttachUseCase struct {
	ledger *services.AttachmentLedger
}

func NewAttachUseCase(ledger *services.AttachmentLedger) *AttachUseCase {
	return &AttachUseCase{ledger: ledger}
}

func (uc *AttachUseCase) Execute(ctx context.Context, cmd AttachCommand) (*dto.AttachmentDTO, error) {
	a, err := uc.ledger.Attach(ctx, services.AttachCommand{
		DeviceID:    cmd.DeviceID,
		TargetKind:  attachment.TargetKind(cmd.TargetKind),
		TargetID:    cmd.TargetID,
		RequesterID: cmd.RequesterID,
		Comment:     utils.SanitizeComment(cmd.Comment),
	})
	if err != nil {
		return nil, err
	}
	return dto.ToAttachmentDTO(a), nil
}
