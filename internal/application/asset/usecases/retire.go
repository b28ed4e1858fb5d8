package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
	"github.com/assetdesk/assetdesk/internal/application/asset/services"
	"github.com/assetdesk/assetdesk/internal/shared/utils"
)

type RetireCommand struct {
	AssetID uint
	ActorID uint
	Comment string
}

type ForceRetireUseCase struct {
	coordinator *services.RetirementCoordinator
}

func NewForceRetireUseCase(coordinator *services.RetirementCoordinator) *ForceRetireUseCase {
	return &ForceRetireUseCase{coordinator: coordinator}
}

func (uc *ForceRetireUseCase) Execute(ctx context.Context, cmd RetireCommand) (*dto.AssetDTO, error) {
	a, err := uc.coordinator.ForceRetire(ctx, cmd.AssetID, cmd.ActorID, utils.SanitizeComment(cmd.Comment))
	if err != nil {
		return nil, err
	}
	return dto.ToAssetDTO(a), nil
}

type RequestRetireUseCase struct {
	coordinator *services.RetirementCoordinator
}

func NewRequestRetireUseCase(coordinator *services.RetirementCoordinator) *RequestRetireUseCase {
	return &RequestRetireUseCase{coordinator: coordinator}
}

func (uc *RequestRetireUseCase) Execute(ctx context.Context, cmd RetireCommand) (*dto.RetirementRequestDTO, error) {
	req, err := uc.coordinator.RequestFlowRetire(ctx, cmd.AssetID, cmd.ActorID, utils.SanitizeComment(cmd.Comment))
	if err != nil {
		return nil, err
	}
	return &dto.RetirementRequestDTO{
		ApprovalID: req.ApprovalID,
		AssetID:    req.AssetID,
		FlowID:     req.FlowID,
		FlowName:   req.FlowName,
	}, nil
}
