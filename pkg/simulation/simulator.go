// Package simulation generates synthetic production event logs by walking
// a configured stage flow with probabilistic skips and rework loops.
package simulation

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gigalog/gigalog/pkg/config"
	"github.com/gigalog/gigalog/pkg/eventlog"
)

// Generator runs the event-log simulation for one flow configuration.
// It owns a seeded RNG so runs are reproducible and independent.
type Generator struct {
	cfg      *config.FlowConfig
	rng      *rand.Rand
	schedule cron.Schedule

	// Progress, when set, is called once per completed case.
	Progress func()
}

// NewGenerator creates a generator for the given flow. The configuration
// must already be validated.
func NewGenerator(cfg *config.FlowConfig, seed int64) (*Generator, error) {
	g := &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}

	if cfg.BatchSchedule != "" {
		schedule, err := config.CronParser.Parse(cfg.BatchSchedule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse batch schedule: %w", err)
		}
		g.schedule = schedule
	}

	return g, nil
}

// Run generates numCases cases and returns the rows sorted by case id then
// timestamp. numCases <= 0 falls back to the configured case count. An
// empty stage list yields an empty log.
func (g *Generator) Run(numCases int) []eventlog.Event {
	if numCases <= 0 {
		numCases = g.cfg.Cases
	}

	events := []eventlog.Event{}
	scheduleCursor := g.cfg.StartDate

	for i := 0; i < numCases; i++ {
		start := scheduleCursor
		if g.schedule != nil {
			start = g.schedule.Next(scheduleCursor)
			scheduleCursor = start
		}
		if g.cfg.StartJitter > 0 {
			start = start.Add(time.Duration(g.rng.Int63n(int64(g.cfg.StartJitter))))
		}

		caseID := fmt.Sprintf("BATCH_%05d", i+1)
		events = append(events, g.generateCase(caseID, start)...)

		if g.Progress != nil {
			g.Progress()
		}
	}

	eventlog.Sort(events)
	return events
}

// generateCase walks the stage flow once. Each stage executes with its
// configured chance; a skipped stage does not break ordering of later
// stages. A stage with a rework target emits a REWORK_ row instead of its
// normal row with probability ReworkProbability and sends the case back to
// the target stage, at most MaxReworks times per case.
func (g *Generator) generateCase(caseID string, start time.Time) []eventlog.Event {
	var events []eventlog.Event
	clock := start
	batchSize := g.sampleBatchSize()
	reworks := 0

	for idx := 0; idx < len(g.cfg.Stages); {
		stage := g.cfg.Stages[idx]

		if stage.Chance < 1.0 && g.rng.Float64() >= stage.Chance {
			idx++
			continue
		}

		clock = clock.Add(g.sampleDuration(stage))

		if stage.ReworkTo != "" && reworks < g.cfg.MaxReworks && g.rng.Float64() < g.cfg.ReworkProbability {
			events = append(events, eventlog.Event{
				CaseID:    caseID,
				Activity:  eventlog.ReworkPrefix + stage.Name,
				Timestamp: clock,
				Resource:  g.sampleResource(),
				BatchSize: batchSize,
			})
			reworks++
			idx = g.cfg.StageIndex(stage.ReworkTo)
			continue
		}

		events = append(events, eventlog.Event{
			CaseID:    caseID,
			Activity:  stage.Name,
			Timestamp: clock,
			Resource:  g.sampleResource(),
			BatchSize: batchSize,
		})
		idx++
	}

	return events
}

func (g *Generator) sampleDuration(stage config.Stage) time.Duration {
	span := stage.MaxDuration - stage.MinDuration
	if span <= 0 {
		return stage.MinDuration
	}
	return stage.MinDuration + time.Duration(g.rng.Int63n(int64(span)))
}

func (g *Generator) sampleBatchSize() int {
	span := g.cfg.BatchSizeMax - g.cfg.BatchSizeMin
	if span <= 0 {
		return g.cfg.BatchSizeMin
	}
	return g.cfg.BatchSizeMin + g.rng.Intn(span+1)
}

func (g *Generator) sampleResource() string {
	if len(g.cfg.Resources) == 0 {
		return ""
	}
	return g.cfg.Resources[g.rng.Intn(len(g.cfg.Resources))]
}
