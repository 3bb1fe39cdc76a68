package mining

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	gerrors "github.com/gigalog/gigalog/pkg/errors"
)

// ErrRendererUnavailable signals that the optional graphviz toolkit is not
// installed. Callers degrade to text-only output instead of aborting.
var ErrRendererUnavailable = gerrors.New(gerrors.CodeRendererUnavailable, "graphviz 'dot' binary not found on PATH")

// Renderer writes discovered models as Graphviz DOT and, when the dot
// binary is available, renders PNG images. The lookup and exec hooks are
// injectable so degraded mode is testable.
type Renderer struct {
	LookPath func(file string) (string, error)
	Run      func(name string, args ...string) error
}

// NewRenderer returns a renderer backed by the real dot binary.
func NewRenderer() *Renderer {
	return &Renderer{
		LookPath: exec.LookPath,
		Run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// WriteDOT writes the model as a Graphviz digraph. Edge labels carry
// traversal counts; start and end activities are marked.
func (r *Renderer) WriteDOT(m *Model, path string) error {
	var sb strings.Builder
	sb.WriteString("digraph process {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, style=rounded];\n")

	activities := make([]string, 0, len(m.Activities))
	for a := range m.Activities {
		activities = append(activities, a)
	}
	sort.Strings(activities)

	for _, a := range activities {
		attrs := fmt.Sprintf("label=%q", fmt.Sprintf("%s (%d)", a, m.Activities[a]))
		if _, ok := m.Start[a]; ok {
			attrs += ", color=darkgreen"
		}
		if _, ok := m.End[a]; ok {
			attrs += ", color=firebrick"
		}
		sb.WriteString(fmt.Sprintf("  %q [%s];\n", a, attrs))
	}

	edges := make([]Edge, 0, len(m.Edges))
	for e := range m.Edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	for _, e := range edges {
		sb.WriteString(fmt.Sprintf("  %q -> %q [label=\"%d\"];\n", e.From, e.To, m.Edges[e]))
	}
	sb.WriteString("}\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return gerrors.Wrapf(err, gerrors.CodeWriteFailed, "failed to write %s", path)
	}
	return nil
}

// RenderPNG renders a DOT file to PNG. Returns ErrRendererUnavailable
// when dot is not installed.
func (r *Renderer) RenderPNG(dotPath, pngPath string) error {
	dot, err := r.LookPath("dot")
	if err != nil {
		return ErrRendererUnavailable
	}
	if err := r.Run(dot, "-Tpng", "-o", pngPath, dotPath); err != nil {
		return gerrors.Wrap(err, gerrors.CodeWriteFailed, "dot rendering failed")
	}
	return nil
}
