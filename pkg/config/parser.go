package config

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	gerrors "github.com/gigalog/gigalog/pkg/errors"
)

// CronParser accepts standard 5-field cron expressions.
var CronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// LoadConfig loads and parses a flow configuration file.
func LoadConfig(filename string) (*FlowConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FlowConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg, data)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills unset sampling parameters. Zero is a meaningful
// value for reworkProbability, maxReworks and cases, so those defaults
// apply only when the key is absent from the document; a second decode
// with pointer fields tells the two apart. An empty stage list is left
// alone: it is valid input that yields an empty log.
func applyDefaults(cfg *FlowConfig, data []byte) {
	var set struct {
		ReworkProbability *float64 `yaml:"reworkProbability"`
		MaxReworks        *int     `yaml:"maxReworks"`
		Cases             *int     `yaml:"cases"`
	}
	_ = yaml.Unmarshal(data, &set)

	if cfg.StartDate.IsZero() {
		cfg.StartDate = time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
	}
	if set.ReworkProbability == nil {
		cfg.ReworkProbability = 0.15
	}
	if set.MaxReworks == nil {
		cfg.MaxReworks = 5
	}
	if set.Cases == nil {
		cfg.Cases = 500
	}
	if cfg.BatchSizeMin == 0 && cfg.BatchSizeMax == 0 {
		cfg.BatchSizeMin = 500
		cfg.BatchSizeMax = 5000
	}
	if len(cfg.Resources) == 0 {
		cfg.Resources = []string{"Worker A", "Worker B", "Machine X", "Machine Y", "Warehouse Staff 1"}
	}
}

// Validate checks a flow configuration. Rework targets must name a stage
// that precedes the reworking stage in the configured order.
func Validate(cfg *FlowConfig) error {
	if cfg.ReworkProbability < 0 || cfg.ReworkProbability > 1 {
		return gerrors.InvalidConfig("reworkProbability", "must be within [0,1]")
	}

	if cfg.MaxReworks < 0 {
		return gerrors.InvalidConfig("maxReworks", "must not be negative")
	}

	if cfg.Cases < 0 {
		return gerrors.InvalidConfig("cases", "must not be negative")
	}

	if cfg.StartJitter < 0 {
		return gerrors.InvalidConfig("startJitter", "must not be negative")
	}

	if cfg.BatchSizeMin <= 0 || cfg.BatchSizeMax < cfg.BatchSizeMin {
		return gerrors.InvalidConfig("batchSize", "range must satisfy 0 < min <= max")
	}

	if cfg.BatchSchedule != "" {
		if _, err := CronParser.Parse(cfg.BatchSchedule); err != nil {
			return gerrors.Wrap(err, gerrors.CodeInvalidConfig, "failed to parse batchSchedule cron expression")
		}
	}

	seen := make(map[string]int, len(cfg.Stages))
	for i, stage := range cfg.Stages {
		if stage.Name == "" {
			return gerrors.InvalidConfig(fmt.Sprintf("stages[%d].name", i), "name is required")
		}

		if _, dup := seen[stage.Name]; dup {
			return gerrors.InvalidConfig("stages", fmt.Sprintf("duplicate stage name %q", stage.Name))
		}

		if stage.MinDuration < 0 {
			return gerrors.InvalidConfig(fmt.Sprintf("stage %s", stage.Name), "minDuration must not be negative")
		}

		if stage.MaxDuration < stage.MinDuration {
			return gerrors.InvalidConfig(fmt.Sprintf("stage %s", stage.Name), "maxDuration must be >= minDuration")
		}

		if stage.Chance < 0 || stage.Chance > 1 {
			return gerrors.InvalidConfig(fmt.Sprintf("stage %s", stage.Name), "chance must be within [0,1]")
		}

		if stage.ReworkTo != "" {
			if _, ok := seen[stage.ReworkTo]; !ok {
				return gerrors.InvalidConfig(fmt.Sprintf("stage %s", stage.Name),
					fmt.Sprintf("reworkTo %q must name an earlier stage", stage.ReworkTo))
			}
		}

		seen[stage.Name] = i
	}

	return nil
}
