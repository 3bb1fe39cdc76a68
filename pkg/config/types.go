package config

import (
	"time"
)

// FlowConfig describes one production flow to simulate: the ordered stage
// list plus the sampling parameters shared by every generated case.
type FlowConfig struct {
	// StartDate anchors the log timeline. Case start times are derived
	// from it via BatchSchedule and StartJitter.
	StartDate time.Time `yaml:"startDate"`

	// BatchSchedule is an optional cron expression. When set, the i-th
	// case starts at the i-th schedule occurrence after StartDate.
	BatchSchedule string `yaml:"batchSchedule,omitempty"`

	// StartJitter is the maximum uniform random offset added to each
	// case's start time.
	StartJitter time.Duration `yaml:"startJitter"`

	// ReworkProbability applies at every stage that defines a rework
	// target.
	ReworkProbability float64 `yaml:"reworkProbability"`

	// MaxReworks caps rework emissions per case so loops terminate.
	MaxReworks int `yaml:"maxReworks"`

	Cases        int      `yaml:"cases"`
	Resources    []string `yaml:"resources"`
	BatchSizeMin int      `yaml:"batchSizeMin"`
	BatchSizeMax int      `yaml:"batchSizeMax"`

	Stages []Stage `yaml:"stages"`
}

// Stage is a single named process step in the flow.
type Stage struct {
	Name        string        `yaml:"name"`
	MinDuration time.Duration `yaml:"minDuration"`
	MaxDuration time.Duration `yaml:"maxDuration"`

	// Chance is the occurrence probability in [0,1]. Stages with a
	// chance below 1 may be skipped entirely for a given case.
	Chance float64 `yaml:"chance"`

	// ReworkTo names an earlier stage to loop back to when this stage
	// triggers rework. Empty means the stage never reworks.
	ReworkTo string `yaml:"reworkTo,omitempty"`
}

// StageIndex returns the position of the named stage, or -1.
func (c *FlowConfig) StageIndex(name string) int {
	for i, s := range c.Stages {
		if s.Name == name {
			return i
		}
	}
	return -1
}
