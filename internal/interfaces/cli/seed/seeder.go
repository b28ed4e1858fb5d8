package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	approvalUsecases "github.com/assetdesk/assetdesk/internal/application/approval/usecases"
	assetUsecases "github.com/assetdesk/assetdesk/internal/application/asset/usecases"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// File is the layout of a seed document.
type File struct {
	NumberRules []NumberRuleSeed `yaml:"number_rules"`
	Flows       []FlowSeed       `yaml:"flows"`
}

type NumberRuleSeed struct {
	Name                string    `yaml:"name"`
	Formula             string    `yaml:"formula"`
	AutoIncrementLength int       `yaml:"auto_increment_length"`
	Bind                *BindSeed `yaml:"bind"`
}

type BindSeed struct {
	Class  string `yaml:"class"`
	IsAuto bool   `yaml:"is_auto"`
}

type FlowSeed struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	RetireFor   []string `yaml:"retire_for"`
}

// Summary counts what a run changed.
type Summary struct {
	RulesCreated   int
	RulesSkipped   int
	RulesBound     int
	FlowsCreated   int
	FlowsSkipped   int
	RetireFlowsSet int
}

// Parse decodes a seed document, rejecting unknown keys.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Seeder applies a seed document through the regular use cases. Seeding is
// idempotent: rules and flows are matched by name, and a class that already
// has a number rule or retire flow keeps it.
type Seeder struct {
	createRule    assetUsecases.CreateNumberRuleExecutor
	listRules     assetUsecases.ListNumberRulesExecutor
	bindRule      assetUsecases.BindNumberRuleExecutor
	createFlow    approvalUsecases.CreateFlowExecutor
	listFlows     approvalUsecases.ListFlowsExecutor
	getRetireFlow approvalUsecases.GetRetireFlowExecutor
	setRetireFlow approvalUsecases.SetRetireFlowExecutor
	logger        logger.Interface
}

func NewSeeder(
	createRule assetUsecases.CreateNumberRuleExecutor,
	listRules assetUsecases.ListNumberRulesExecutor,
	bindRule assetUsecases.BindNumberRuleExecutor,
	createFlow approvalUsecases.CreateFlowExecutor,
	listFlows approvalUsecases.ListFlowsExecutor,
	getRetireFlow approvalUsecases.GetRetireFlowExecutor,
	setRetireFlow approvalUsecases.SetRetireFlowExecutor,
	logger logger.Interface,
) *Seeder {
	return &Seeder{
		createRule:    createRule,
		listRules:     listRules,
		bindRule:      bindRule,
		createFlow:    createFlow,
		listFlows:     listFlows,
		getRetireFlow: getRetireFlow,
		setRetireFlow: setRetireFlow,
		logger:        logger,
	}
}

func (s *Seeder) Run(ctx context.Context, f *File) (*Summary, error) {
	summary := &Summary{}
	if err := s.seedRules(ctx, f.NumberRules, summary); err != nil {
		return summary, err
	}
	if err := s.seedFlows(ctx, f.Flows, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *Seeder) seedRules(ctx context.Context, seeds []NumberRuleSeed, summary *Summary) error {
	if len(seeds) == 0 {
		return nil
	}

	existing, err := s.listRules.Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to list number rules: %w", err)
	}
	byName := make(map[string]uint, len(existing))
	boundClasses := make(map[string]bool)
	for _, r := range existing {
		byName[r.Name] = r.ID
		if r.Class != nil {
			boundClasses[*r.Class] = true
		}
	}

	for _, seed := range seeds {
		id, ok := byName[seed.Name]
		if ok {
			summary.RulesSkipped++
			s.logger.Infow("number rule already exists, skipping", "name", seed.Name, "rule_id", id)
		} else {
			created, err := s.createRule.Execute(ctx, assetUsecases.CreateNumberRuleCommand{
				Name:                seed.Name,
				Formula:             seed.Formula,
				AutoIncrementLength: seed.AutoIncrementLength,
			})
			if err != nil {
				return fmt.Errorf("failed to create number rule %q: %w", seed.Name, err)
			}
			id = created.ID
			byName[seed.Name] = id
			summary.RulesCreated++
			s.logger.Infow("number rule created", "name", seed.Name, "rule_id", id)
		}

		if seed.Bind == nil {
			continue
		}
		if boundClasses[seed.Bind.Class] {
			s.logger.Infow("class already has a number rule, keeping it", "class", seed.Bind.Class)
			continue
		}
		if _, err := s.bindRule.Execute(ctx, assetUsecases.BindNumberRuleCommand{
			Class:  seed.Bind.Class,
			RuleID: id,
			IsAuto: seed.Bind.IsAuto,
		}); err != nil {
			return fmt.Errorf("failed to bind number rule %q to %s: %w", seed.Name, seed.Bind.Class, err)
		}
		boundClasses[seed.Bind.Class] = true
		summary.RulesBound++
	}
	return nil
}

func (s *Seeder) seedFlows(ctx context.Context, seeds []FlowSeed, summary *Summary) error {
	if len(seeds) == 0 {
		return nil
	}

	existing, err := s.listFlows.Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to list flows: %w", err)
	}
	byName := make(map[string]uint, len(existing))
	for _, f := range existing {
		byName[f.Name] = f.ID
	}

	for _, seed := range seeds {
		id, ok := byName[seed.Name]
		if ok {
			summary.FlowsSkipped++
		} else {
			created, err := s.createFlow.Execute(ctx, approvalUsecases.CreateFlowCommand{
				Name:        seed.Name,
				Description: seed.Description,
			})
			if err != nil {
				return fmt.Errorf("failed to create flow %q: %w", seed.Name, err)
			}
			id = created.ID
			byName[seed.Name] = id
			summary.FlowsCreated++
			s.logger.Infow("approval flow created", "name", seed.Name, "flow_id", id)
		}

		for _, class := range seed.RetireFor {
			current, err := s.getRetireFlow.Execute(ctx, class)
			if err != nil {
				return fmt.Errorf("failed to read retire flow of %s: %w", class, err)
			}
			if current.FlowID != 0 && !current.Missing {
				s.logger.Infow("class already has a retire flow, keeping it", "class", class, "flow_id", current.FlowID)
				continue
			}
			if _, err := s.setRetireFlow.Execute(ctx, approvalUsecases.SetRetireFlowCommand{
				Class:  class,
				FlowID: id,
			}); err != nil {
				return fmt.Errorf("failed to set retire flow of %s: %w", class, err)
			}
			summary.RetireFlowsSet++
		}
	}
	return nil
}
