package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/infrastructure/database/dbtest"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

const sampleSeed = `
number_rules:
  - name: Devices
    formula: "DEV-{year}-{number}"
    auto_increment_length: 4
    bind:
      class: device
      is_auto: true
  - name: Software
    formula: "SW-{number}"
    auto_increment_length: 3
flows:
  - name: IT retirement
    description: Two-step sign-off
    retire_for: [device, software]
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	require.Len(t, f.NumberRules, 2)
	assert.Equal(t, "DEV-{year}-{number}", f.NumberRules[0].Formula)
	require.NotNil(t, f.NumberRules[0].Bind)
	assert.True(t, f.NumberRules[0].Bind.IsAuto)
	assert.Nil(t, f.NumberRules[1].Bind)
	require.Len(t, f.Flows, 1)
	assert.Equal(t, []string{"device", "software"}, f.Flows[0].RetireFor)
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.NumberRules)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader("flowz: []\n"))
	assert.Error(t, err)
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	seeder := newSeeder(db, logger.NewNopLogger())
	ctx := context.Background()

	f, err := Parse(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	first, err := seeder.Run(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &Summary{RulesCreated: 2, RulesBound: 1, FlowsCreated: 1, RetireFlowsSet: 2}, first)

	second, err := seeder.Run(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &Summary{RulesSkipped: 2, FlowsSkipped: 1}, second)

	rules, err := seeder.listRules.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	current, err := seeder.getRetireFlow.Execute(ctx, "software")
	require.NoError(t, err)
	assert.Equal(t, "IT retirement", current.FlowName)
}

func TestSeeder_InvalidClassFails(t *testing.T) {
	seeder := newSeeder(dbtest.New(t), logger.NewNopLogger())

	_, err := seeder.Run(context.Background(), &File{
		Flows: []FlowSeed{{Name: "Broken", RetireFor: []string{"vehicle"}}},
	})
	assert.Error(t, err)
}
