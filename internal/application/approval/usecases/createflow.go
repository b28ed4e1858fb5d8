package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/approval/dto"
	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

type CreateFlowCommand struct {
	Name        string
	Description string
}

type CreateFlowUseCase struct {
	flows  approval.FlowRepository
	logger logger.Interface
}

func NewCreateFlowUseCase(flows approval.FlowRepository, logger logger.Interface) *CreateFlowUseCase {
	return &CreateFlowUseCase{flows: flows, logger: logger}
}

func (uc *CreateFlowUseCase) Execute(ctx context.Context, cmd CreateFlowCommand) (*dto.FlowDTO, error) {
	flow, err := approval.NewFlow(cmd.Name, cmd.Description)
	if err != nil {
		return nil, err
	}
	if err := uc.flows.Create(ctx, flow); err != nil {
		uc.logger.Errorw("failed to create flow", "name", cmd.Name, "error", err)
		return nil, err
	}
	uc.logger.Infow("flow created", "flow_id", flow.ID(), "name", flow.Name())
	return dto.ToFlowDTO(flow), nil
}
