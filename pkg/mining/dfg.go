package mining

import (
	"fmt"
	"sort"
	"strings"
)

// Edge is one directly-follows relation.
type Edge struct {
	From string
	To   string
}

// Model is a discovered directly-follows model: activities with
// frequencies, the directly-follows edge set, and start/end activities.
type Model struct {
	Activities map[string]int
	Edges      map[Edge]int
	Start      map[string]int
	End        map[string]int
}

// Result carries conformance scores for a log against a model.
type Result struct {
	Fitness   float64
	Precision float64
}

// Miner is the process-discovery collaborator. Implementations own the
// discovery and conformance algorithms; callers own only the log
// adaptation and the interpretation of results.
type Miner interface {
	Discover(l *Log) (*Model, error)
	Conformance(l *Log, m *Model) (Result, error)
}

// DirectlyFollows is the baseline Miner: the model is the observed
// directly-follows graph. Inductive mining and alignment-based
// conformance are intentionally not implemented here.
type DirectlyFollows struct{}

// Discover builds the directly-follows model for a log.
func (DirectlyFollows) Discover(l *Log) (*Model, error) {
	if l == nil || len(l.Traces) == 0 {
		return nil, fmt.Errorf("cannot discover a model from an empty log")
	}

	m := &Model{
		Activities: make(map[string]int),
		Edges:      make(map[Edge]int),
		Start:      make(map[string]int),
		End:        make(map[string]int),
	}

	for _, t := range l.Traces {
		if len(t.Activities) == 0 {
			continue
		}
		m.Start[t.Activities[0]]++
		m.End[t.Activities[len(t.Activities)-1]]++
		for i, a := range t.Activities {
			m.Activities[a]++
			if i > 0 {
				m.Edges[Edge{From: t.Activities[i-1], To: a}]++
			}
		}
	}

	return m, nil
}

// Conformance scores a log against a model. Fitness is the weighted
// fraction of observed directly-follows pairs the model admits; precision
// is the fraction of model edges the log actually traverses.
func (DirectlyFollows) Conformance(l *Log, m *Model) (Result, error) {
	if m == nil {
		return Result{}, fmt.Errorf("nil model")
	}
	if l == nil || len(l.Traces) == 0 {
		return Result{}, fmt.Errorf("cannot check conformance of an empty log")
	}

	totalPairs := 0
	matchedPairs := 0
	traversed := make(map[Edge]bool)

	for _, t := range l.Traces {
		for i := 1; i < len(t.Activities); i++ {
			e := Edge{From: t.Activities[i-1], To: t.Activities[i]}
			totalPairs++
			if _, ok := m.Edges[e]; ok {
				matchedPairs++
				traversed[e] = true
			}
		}
	}

	res := Result{Fitness: 1, Precision: 1}
	if totalPairs > 0 {
		res.Fitness = float64(matchedPairs) / float64(totalPairs)
	}
	if len(m.Edges) > 0 {
		res.Precision = float64(len(traversed)) / float64(len(m.Edges))
	}
	return res, nil
}

// Variant is one distinct activity sequence and its case count.
type Variant struct {
	Activities []string
	Count      int
}

// Key renders the variant path as a single comparable string.
func (v Variant) Key() string {
	return strings.Join(v.Activities, " -> ")
}

// Variants returns the distinct traces of a log, most frequent first,
// ties broken by path.
func Variants(l *Log) []Variant {
	counts := make(map[string]int)
	paths := make(map[string][]string)
	for _, t := range l.Traces {
		key := strings.Join(t.Activities, "\x00")
		counts[key]++
		paths[key] = t.Activities
	}

	out := make([]Variant, 0, len(counts))
	for key, n := range counts {
		out = append(out, Variant{Activities: paths[key], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}
