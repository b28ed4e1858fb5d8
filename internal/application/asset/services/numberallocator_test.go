package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/domain/asset"
)

func (f *fixture) newRule(t *testing.T, formula string, length int, count int64) *asset.NumberRule {
	t.Helper()
	now := time.Now().UTC()
	rule := asset.ReconstructNumberRule(0, "rule "+formula, formula, length, count, nil, false, now, now)
	require.NoError(t, f.rules.Create(context.Background(), rule))
	return rule
}

func TestNumberAllocator_SequentialAllocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rule := f.newRule(t, "PC-{number}", 4, 5)
	_, err := f.allocator.SetAutoRule(ctx, asset.ClassDevice, rule.ID(), true)
	require.NoError(t, err)

	first, ruleID, err := f.allocator.Allocate(ctx, asset.ClassDevice)
	require.NoError(t, err)
	second, _, err := f.allocator.Allocate(ctx, asset.ClassDevice)
	require.NoError(t, err)

	assert.Equal(t, rule.ID(), ruleID)
	assert.Equal(t, "PC-0006", first)
	assert.Equal(t, "PC-0007", second)

	stored, err := f.rules.GetByID(ctx, rule.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(7), stored.AutoIncrementCount())
}

func TestNumberAllocator_SkipsTakenNumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rule := f.newRule(t, "SW-{number}", 3, 0)
	_, err := f.allocator.SetAutoRule(ctx, asset.ClassSoftware, rule.ID(), true)
	require.NoError(t, err)
	f.newAsset(t, asset.ClassSoftware, "SW-001", 0)

	number, _, err := f.allocator.Allocate(ctx, asset.ClassSoftware)
	require.NoError(t, err)
	assert.Equal(t, "SW-002", number)
}

func TestNumberAllocator_ManualModeIsNotAllocatable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rule := f.newRule(t, "PT-{number}", 3, 0)
	_, err := f.allocator.SetAutoRule(ctx, asset.ClassPart, rule.ID(), false)
	require.NoError(t, err)

	auto, err := f.allocator.IsAuto(ctx, asset.ClassPart)
	require.NoError(t, err)
	assert.False(t, auto)

	_, _, err = f.allocator.Allocate(ctx, asset.ClassPart)
	assert.ErrorIs(t, err, asset.ErrRuleNotBound)

	_, _, err = f.allocator.Allocate(ctx, asset.ClassDevice)
	assert.ErrorIs(t, err, asset.ErrRuleNotBound)
}

func TestNumberAllocator_RebindReplacesPreviousRule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	oldRule := f.newRule(t, "A-{number}", 3, 0)
	newRule := f.newRule(t, "B-{number}", 3, 0)

	_, err := f.allocator.SetAutoRule(ctx, asset.ClassDevice, oldRule.ID(), true)
	require.NoError(t, err)
	_, err = f.allocator.SetAutoRule(ctx, asset.ClassDevice, newRule.ID(), true)
	require.NoError(t, err)

	previous, err := f.rules.GetByID(ctx, oldRule.ID())
	require.NoError(t, err)
	assert.Nil(t, previous.BoundClass())

	number, _, err := f.allocator.Allocate(ctx, asset.ClassDevice)
	require.NoError(t, err)
	assert.Equal(t, "B-001", number)

	require.NoError(t, f.allocator.ResetAutoRule(ctx, asset.ClassDevice))
	auto, err := f.allocator.IsAuto(ctx, asset.ClassDevice)
	require.NoError(t, err)
	assert.False(t, auto)
	require.NoError(t, f.allocator.ResetAutoRule(ctx, asset.ClassDevice))
}

func TestNumberAllocator_ConcurrentAllocationsAreDistinct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rule := f.newRule(t, "PC-{number}", 4, 0)
	_, err := f.allocator.SetAutoRule(ctx, asset.ClassDevice, rule.ID(), true)
	require.NoError(t, err)

	const workers = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string]struct{}{}
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, _, err := f.allocator.Allocate(ctx, asset.ClassDevice)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			numbers[number] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, numbers, workers)
}
