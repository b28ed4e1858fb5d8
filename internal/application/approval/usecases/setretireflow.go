package usecases

import (
	"context"
	"errors"
	"strconv"

	"github.com/assetdesk/assetdesk/internal/application/approval/dto"
	approvalservices "github.com/assetdesk/assetdesk/internal/application/approval/services"
	"github.com/assetdesk/assetdesk/internal/domain/approval"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/domain/setting"
	"github.com/assetdesk/assetdesk/internal/shared/constants"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

type SetRetireFlowCommand struct {
	Class string
	// FlowID 0 clears the binding.
	FlowID    uint
	UpdatedBy uint
}

type SetRetireFlowUseCase struct {
	settings setting.Repository
	flows    approval.FlowRepository
	logger   logger.Interface
}

func NewSetRetireFlowUseCase(settings setting.Repository, flows approval.FlowRepository, logger logger.Interface) *SetRetireFlowUseCase {
	return &SetRetireFlowUseCase{settings: settings, flows: flows, logger: logger}
}

func (uc *SetRetireFlowUseCase) Execute(ctx context.Context, cmd SetRetireFlowCommand) (*dto.RetireFlowDTO, error) {
	class := asset.Class(cmd.Class)
	if !class.IsValid() {
		return nil, asset.ErrInvalidClass
	}

	result := &dto.RetireFlowDTO{Class: class.String()}
	if cmd.FlowID != 0 {
		flow, err := uc.flows.GetByID(ctx, cmd.FlowID)
		if err != nil {
			return nil, err
		}
		result.FlowID = flow.ID()
		result.FlowName = flow.Name()
	}

	key := approvalservices.RetireFlowKey(class)
	s, err := uc.settings.GetByKey(ctx, constants.SettingCategoryAsset, key)
	if errors.Is(err, setting.ErrSettingNotFound) {
		s, err = setting.NewSystemSetting(constants.SettingCategoryAsset, key, setting.ValueTypeInt, "Approval flow gating "+class.String()+" retirement")
	}
	if err != nil {
		return nil, err
	}

	value := ""
	if cmd.FlowID != 0 {
		value = strconv.FormatUint(uint64(cmd.FlowID), 10)
	}
	if err := s.SetValue(value, cmd.UpdatedBy); err != nil {
		return nil, err
	}
	if err := uc.settings.Upsert(ctx, s); err != nil {
		return nil, err
	}

	uc.logger.Infow("retire flow configured", "class", class, "flow_id", cmd.FlowID, "updated_by", cmd.UpdatedBy)
	return result, nil
}
