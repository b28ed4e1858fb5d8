package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// DeleteFlowUseCase soft-deletes a flow. Classes still pointing at it fail
// later retire requests with asset.ErrRetireFlowMissing.
type DeleteFlowUseCase struct {
	flows  approval.FlowRepository
	logger logger.Interface
}

func NewDeleteFlowUseCase(flows approval.FlowRepository, logger logger.Interface) *DeleteFlowUseCase {
	return &DeleteFlowUseCase{flows: flows, logger: logger}
}

func (uc *DeleteFlowUseCase) Execute(ctx context.Context, flowID uint) error {
	if err := uc.flows.Delete(ctx, flowID); err != nil {
		return err
	}
	uc.logger.Infow("flow deleted", "flow_id", flowID)
	return nil
}
