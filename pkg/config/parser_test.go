package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.yaml")
	data := `
stages:
  - name: Cutting
    minDuration: 60000000000
    maxDuration: 120000000000
    chance: 1.0
  - name: Inspection
    minDuration: 60000000000
    maxDuration: 180000000000
    chance: 1.0
    reworkTo: Cutting
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.15, cfg.ReworkProbability)
	assert.Equal(t, 5, cfg.MaxReworks)
	assert.Equal(t, 500, cfg.Cases)
	assert.Equal(t, 500, cfg.BatchSizeMin)
	assert.Equal(t, 5000, cfg.BatchSizeMax)
	assert.NotEmpty(t, cfg.Resources)
	assert.False(t, cfg.StartDate.IsZero())
	assert.Len(t, cfg.Stages, 2)
}

func TestLoadConfigKeepsExplicitZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.yaml")
	data := `
reworkProbability: 0
maxReworks: 0
cases: 0
stages:
  - name: Cutting
    minDuration: 60000000000
    maxDuration: 120000000000
    chance: 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// An explicit zero is a choice, not an omission.
	assert.Equal(t, 0.0, cfg.ReworkProbability)
	assert.Equal(t, 0, cfg.MaxReworks)
	assert.Equal(t, 0, cfg.Cases)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *FlowConfig {
		return &FlowConfig{
			StartDate:         time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
			ReworkProbability: 0.15,
			MaxReworks:        5,
			Cases:             10,
			BatchSizeMin:      500,
			BatchSizeMax:      5000,
			Stages: []Stage{
				{Name: "A", MinDuration: time.Minute, MaxDuration: 2 * time.Minute, Chance: 1.0},
				{Name: "B", MinDuration: time.Minute, MaxDuration: 2 * time.Minute, Chance: 1.0, ReworkTo: "A"},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*FlowConfig)
		wantErr string
	}{
		{"valid", func(c *FlowConfig) {}, ""},
		{"empty stages is valid", func(c *FlowConfig) { c.Stages = nil }, ""},
		{"rework probability out of range", func(c *FlowConfig) { c.ReworkProbability = 1.5 }, "reworkProbability"},
		{"negative max reworks", func(c *FlowConfig) { c.MaxReworks = -1 }, "maxReworks"},
		{"negative jitter", func(c *FlowConfig) { c.StartJitter = -time.Minute }, "startJitter"},
		{"batch size range inverted", func(c *FlowConfig) { c.BatchSizeMax = 10 }, "batchSize"},
		{"bad cron expression", func(c *FlowConfig) { c.BatchSchedule = "not a cron" }, "cron"},
		{"unnamed stage", func(c *FlowConfig) { c.Stages[0].Name = "" }, "name is required"},
		{"duplicate stage", func(c *FlowConfig) { c.Stages[1].Name = "A"; c.Stages[1].ReworkTo = "" }, "duplicate"},
		{"negative duration", func(c *FlowConfig) { c.Stages[0].MinDuration = -time.Minute }, "minDuration"},
		{"max below min", func(c *FlowConfig) { c.Stages[0].MaxDuration = time.Second }, "maxDuration"},
		{"chance out of range", func(c *FlowConfig) { c.Stages[0].Chance = 2 }, "chance"},
		{"rework target must precede", func(c *FlowConfig) { c.Stages[0].ReworkTo = "B" }, "earlier stage"},
		{"rework target unknown", func(c *FlowConfig) { c.Stages[1].ReworkTo = "Z" }, "earlier stage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDefaultFlowIsValid(t *testing.T) {
	cfg := DefaultFlow()
	require.NoError(t, Validate(cfg))
	assert.Len(t, cfg.Stages, 11)

	// Every rework target must precede its stage.
	for i, s := range cfg.Stages {
		if s.ReworkTo == "" {
			continue
		}
		target := cfg.StageIndex(s.ReworkTo)
		assert.GreaterOrEqual(t, target, 0, "stage %s", s.Name)
		assert.Less(t, target, i, "stage %s", s.Name)
	}
}

func TestStageIndex(t *testing.T) {
	cfg := DefaultFlow()
	assert.Equal(t, 0, cfg.StageIndex("Raw Material Arrival"))
	assert.Equal(t, -1, cfg.StageIndex("Unknown"))
}
