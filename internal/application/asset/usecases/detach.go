package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
	"github.com/assetdesk/assetdesk/internal/application/asset/services"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

type DetachCommand struct {
	AttachmentID uint
	RequesterID  uint
	Comment      string
}

type DetachUseCase struct {
	ledger *services.AttachmentLedger
}

func NewDetachUseCase(ledger *services.AttachmentLedger) *DetachUseCase {
	return &DetachUseCase{ledger: ledger}
}

func (uc *DetachUseCase) Execute(ctx context.Context, cmd DetachCommand) (*dto.AttachmentDTO, error) {
	a, err := uc.ledger.Detach(ctx, cmd.AttachmentID, cmd.RequesterID, utils.SanitizeComment(cmd.Comment))
	if err != nil {
		return nil, err
	}
	return dto.ToAttachmentDTO(a), nil
}
