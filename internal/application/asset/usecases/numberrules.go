package usecases

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/application/asset/dto"
	"github.com/assetdesk/assetdesk/internal/application/asset/services"
	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

type CreateNumberRuleCommand struct {
	Name                string
	Formula             string
	AutoIncrementLength int
}

type CreateNumberRuleUseCase struct {
	rules     asset.NumberRuleRepository
	allocator *services.NumberAllocator
	logger    logger.Interface
}

func NewCreateNumberRuleUseCase(rules asset.NumberRuleRepository, allocator *services.NumberAllocator, logger logger.Interface) *CreateNumberRuleUseCase {
	return &CreateNumberRuleUseCase{rules: rules, allocator: allocator, logger: logger}
}

func (uc *CreateNumberRuleUseCase) Execute(ctx context.Context, cmd CreateNumberRuleCommand) (*dto.NumberRuleDTO, error) {
	rule, err := asset.NewNumberRule(cmd.Name, cmd.Formula, cmd.AutoIncrementLength)
	if err != nil {
		return nil, err
	}
	if err := uc.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	uc.logger.Infow("asset number rule created", "rule_id", rule.ID(), "formula", rule.Formula())
	return dto.ToNumberRuleDTO(rule, uc.allocator.Generate(rule)), nil
}

type ListNumberRulesUseCase struct {
	rules     asset.NumberRuleRepository
	allocator *services.NumberAllocator
}

func NewListNumberRulesUseCase(rules asset.NumberRuleRepository, allocator *services.NumberAllocator) *ListNumberRulesUseCase {
	return &ListNumberRulesUseCase{rules: rules, allocator: allocator}
}

func (uc *ListNumberRulesUseCase) Execute(ctx context.Context) ([]*dto.NumberRuleDTO, error) {
	rules, err := uc.rules.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NumberRuleDTO, 0, len(rules))
	for _, r := range rules {
		out = append(out, dto.ToNumberRuleDTO(r, uc.allocator.Generate(r)))
	}
	return out, nil
}

type BindNumberRuleCommand struct {
	Class  string
	RuleID uint
	IsAuto bool
}

type BindNumberRuleUseCase struct {
	allocator *services.NumberAllocator
}

func NewBindNumberRuleUseCase(allocator *services.NumberAllocator) *BindNumberRuleUseCase {
	return &BindNumberRuleUseCase{allocator: allocator}
}

func (uc *BindNumberRuleUseCase) Execute(ctx context.Context, cmd BindNumberRuleCommand) (*dto.NumberRuleDTO, error) {
	rule, err := uc.allocator.SetAutoRule(ctx, asset.Class(cmd.Class), cmd.RuleID, cmd.IsAuto)
	if err != nil {
		return nil, err
	}
	return dto.ToNumberRuleDTO(rule, uc.allocator.Generate(rule)), nil
}

type UnbindNumberRuleUseCase struct {
	allocator *services.NumberAllocator
}

func NewUnbindNumberRuleUseCase(allocator *services.NumberAllocator) *UnbindNumberRuleUseCase {
	return &UnbindNumberRuleUseCase{allocator: allocator}
}

func (uc *UnbindNumberRuleUseCase) Execute(ctx context.Context, class string) error {
	return uc.allocator.ResetAutoRule(ctx, asset.Class(class))
}
