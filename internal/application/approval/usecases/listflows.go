package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/approval/dto"
	"github.com/assetdesk/assetdesk/internal/domain/approval"
)

type ListFlowsUseCase struct {
	flows approval.FlowRepository
}

func NewListFlowsUseCase(flows approval.FlowRepository) *ListFlowsUseCase {
	return &ListFlowsUseCase{flows: flows}
}

func (uc *ListFlowsUseCase) Execute(ctx context.Context) ([]*dto.FlowDTO, error) {
	flows, err := uc.flows.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToFlowDTOs(flows), nil
}
