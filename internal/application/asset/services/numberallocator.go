package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
	"github.com/assetdesk/assetdesk/internal/infrastructure/metrics"
	"github.com/assetdesk/assetdesk/internal/shared/biztime"
	"github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// maxNumberSkips bounds how many already-taken numbers Allocate steps over,
// which happens when numbers were typed in before auto mode was enabled.
const maxNumberSkips = 100

// NumberAllocator issues asset numbers from the rule bound to a class. The
// rule row is locked for the whole generate+increment step, so concurrent
// creations never receive the same number.
type NumberAllocator struct {
	tx     TransactionRunner
	rules  asset.NumberRuleRepository
	tracks asset.NumberTrackRepository
	assets asset.Repository
	now    Clock
	logger logger.Interface
}

func NewNumberAllocator(
	tx TransactionRunner,
	rules asset.NumberRuleRepository,
	tracks asset.NumberTrackRepository,
	assets asset.Repository,
	logger logger.Interface,
) *NumberAllocator {
	return &NumberAllocator{
		tx:     tx,
		rules:  rules,
		tracks: tracks,
		assets: assets,
		now:    biztime.NowUTC,
		logger: logger,
	}
}

// IsAuto reports whether numbers for class are generated.
func (a *NumberAllocator) IsAuto(ctx context.Context, class asset.Class) (bool, error) {
	rule, err := a.rules.GetByClass(ctx, class)
	if errors.Is(err, asset.ErrRuleNotBound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rule.IsAuto(), nil
}

// Generate renders the next number of rule without reserving it.
func (a *NumberAllocator) Generate(rule *asset.NumberRule) string {
	return rule.Generate(a.now())
}

// IncrementCounter advances and persists the counter of rule.
func (a *NumberAllocator) IncrementCounter(ctx context.Context, rule *asset.NumberRule) error {
	rule.IncrementCounter()
	return a.rules.Update(ctx, rule)
}

// Allocate generates and reserves the next number for class. It must be
// called for classes in auto mode; anything else is asset.ErrRuleNotBound.
func (a *NumberAllocator) Allocate(ctx context.Context, class asset.Class) (string, uint, error) {
	var (
		number string
		ruleID uint
	)
	err := a.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		rule, err := a.rules.GetByClassForUpdate(ctx, class)
		if err != nil {
			return err
		}
		if !rule.IsAuto() {
			return fmt.Errorf("%w: rule %d is bound to %s in manual mode", asset.ErrRuleNotBound, rule.ID(), class)
		}

		for skipped := 0; ; skipped++ {
			candidate := a.Generate(rule)
			taken, err := a.assets.ExistsByNumber(ctx, class, candidate)
			if err != nil {
				return err
			}
			if err := a.IncrementCounter(ctx, rule); err != nil {
				return err
			}
			if !taken {
				number = candidate
				break
			}
			if skipped >= maxNumberSkips {
				return fmt.Errorf("%w: no free number after %d attempts", asset.ErrDuplicateAssetNumber, maxNumberSkips)
			}
			a.logger.Warnw("generated asset number already taken, skipping",
				"class", class,
				"asset_number", candidate,
			)
		}
		ruleID = rule.ID()
		db.AfterCommit(ctx, func() {
			metrics.AssetNumberCounter.WithLabelValues(class.String(), "auto").Inc()
		})
		return nil
	})
	if err != nil {
		return "", 0, err
	}
	return number, ruleID, nil
}

// Track records an issued number against its asset.
func (a *NumberAllocator) Track(ctx context.Context, created *asset.Asset, ruleID *uint) error {
	return a.tracks.Create(ctx, &asset.NumberTrack{
		AssetNumber: created.AssetNumber(),
		AssetID:     created.ID(),
		Class:       created.Class(),
		RuleID:      ruleID,
	})
}

// SetAutoRule binds ruleID to class, replacing any rule bound before.
func (a *NumberAllocator) SetAutoRule(ctx context.Context, class asset.Class, ruleID uint, isAuto bool) (*asset.NumberRule, error) {
	if !class.IsValid() {
		return nil, asset.ErrInvalidClass
	}
	var bound *asset.NumberRule
	err := a.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := a.rules.GetByClassForUpdate(ctx, class)
		switch {
		case errors.Is(err, asset.ErrRuleNotBound):
		case err != nil:
			return err
		case current.ID() != ruleID:
			current.Unbind()
			if err := a.rules.Update(ctx, current); err != nil {
				return err
			}
		}

		rule, err := a.rules.GetByIDForUpdate(ctx, ruleID)
		if err != nil {
			return err
		}
		if prev := rule.BoundClass(); prev != nil && *prev != class {
			a.logger.Infow("moving asset number rule to another class",
				"rule_id", ruleID,
				"from", *prev,
				"to", class,
			)
		}
		if err := rule.Bind(class, isAuto); err != nil {
			return err
		}
		if err := a.rules.Update(ctx, rule); err != nil {
			return err
		}
		bound = rule
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.Infow("asset number rule bound",
		"class", class,
		"rule_id", ruleID,
		"is_auto", isAuto,
	)
	return bound, nil
}

// ResetAutoRule unbinds whatever rule is bound to class. It is a no-op when
// nothing is bound.
func (a *NumberAllocator) ResetAutoRule(ctx context.Context, class asset.Class) error {
	if !class.IsValid() {
		return asset.ErrInvalidClass
	}
	return a.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		rule, err := a.rules.GetByClassForUpdate(ctx, class)
		if errors.Is(err, asset.ErrRuleNotBound) {
			return nil
		}
		if err != nil {
			return err
		}
		rule.Unbind()
		if err := a.rules.Update(ctx, rule); err != nil {
			return err
		}
		a.logger.Infow("asset number rule unbound", "class", class, "rule_id", rule.ID())
		return nil
	})
}
