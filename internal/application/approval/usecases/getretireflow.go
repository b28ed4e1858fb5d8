package usecases

import (
	"context"
	"errors"

	"github.com/assetdesk/assetdesk/internal/application/approval/dto"
	approvalservices "github.com/assetdesk/assetdesk/internal/application/approval/services"
	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
)

type GetRetireFlowUseCase struct {
	gateway *approvalservices.Gateway
	flows   approval.FlowRepository
}

func NewGetRetireFlowUseCase(gateway *approvalservices.Gateway, flows approval.FlowRepository) *GetRetireFlowUseCase {
	return &GetRetireFlowUseCase{gateway: gateway, flows: flows}
}

func (uc *GetRetireFlowUseCase) Execute(ctx context.Context, class string) (*dto.RetireFlowDTO, error) {
	c := asset.Class(class)
	if !c.IsValid() {
		return nil, asset.ErrInvalidClass
	}

	flowID, err := uc.gateway.ConfiguredFlowID(ctx, c)
	if err != nil {
		return nil, err
	}
	result := &dto.RetireFlowDTO{Class: c.String(), FlowID: flowID}
	if flowID == 0 {
		return result, nil
	}

	flow, err := uc.flows.GetByID(ctx, flowID)
	switch {
	case errors.Is(err, approval.ErrFlowNotFound):
		result.Missing = true
	case err != nil:
		return nil, err
	default:
		result.FlowName = flow.Name()
	}
	return result, nil
}
