package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
	"github.com/assetdesk/assetdesk/internal/application/asset/services"
)

type ListAttachmentsUseCase struct {
	ledger *services.AttachmentLedger
}

func NewListAttachmentsUseCase(ledger *services.AttachmentLedger) *ListAttachmentsUseCase {
	return &ListAttachmentsUseCase{ledger: ledger}
}

func (uc *ListAttachmentsUseCase) Execute(ctx context.Context, deviceID uint, includeDetached bool) ([]*dto.AttachmentDTO, error) {
	list, err := uc.ledger.ListByDevice(ctx, deviceID, includeDetached)
	if err != nil {
		return nil, err
	}
	return dto.ToAttachmentDTOs(list), nil
}

type AttachmentHistoryUseCase struct {
	ledger *services.AttachmentLedger
}

func NewAttachmentHistoryUseCase(ledger *services.AttachmentLedger) *AttachmentHistoryUseCase {
	return &AttachmentHistoryUseCase{ledger: ledger}
}

func (uc *AttachmentHistoryUseCase) Execute(ctx context.Context, attachmentID uint) ([]*dto.HistoryEntryDTO, error) {
	entries, err := uc.ledger.History(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	return dto.ToHistoryDTOs(entries), nil
}
