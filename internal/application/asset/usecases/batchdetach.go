package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
	"github.com/assetdesk/assetdesk/internal/application/asset/services"
	appcommon "github.com/assetdesk/assetdesk/internal/application/common"
	"github.com/assetdesk/assetdesk/internal/shared/errors"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

type BatchDetachCommand struct {
	AttachmentIDs []uint
	RequesterID   uint
	Comment       string
}

// BatchDetachUseCase detaches each id in its own transaction and reports
// per-id results; one failure does not stop the rest. Item errors carry the
// domain message, or a generic one for failures outside the domain.
type BatchDetachUseCase struct {
	ledger *services.AttachmentLedger
	logger logger.Interface
}

func NewBatchDetachUseCase(ledger *services.AttachmentLedger, logger logger.Interface) *BatchDetachUseCase {
	return &BatchDetachUseCase{ledger: ledger, logger: logger}
}

func (uc *BatchDetachUseCase) Execute(ctx context.Context, cmd BatchDetachCommand) ([]*dto.BatchItemResultDTO, error) {
	comment := utils.SanitizeComment(cmd.Comment)
	results := make([]*dto.BatchItemResultDTO, 0, len(cmd.AttachmentIDs))
	failed := 0
	for _, id := range cmd.AttachmentIDs {
		item := &dto.BatchItemResultDTO{ID: id, OK: true}
		if _, err := uc.ledger.Detach(ctx, id, cmd.RequesterID, comment); err != nil {
			appErr := appcommon.Describe(err)
			if appErr.Type == errors.ErrorTypeInternal {
				uc.logger.Errorw("batch detach item failed", "attachment_id", id, "error", err)
			}
			item.OK = false
			item.Error = appErr.Message
			failed++
		}
		results = append(results, item)
	}
	uc.logger.Infow("batch detach finished", "requested", len(cmd.AttachmentIDs), "failed", failed)
	return results, nil
}
