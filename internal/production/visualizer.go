package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/immutablectx/internal/primitives"
)

// Timeline is the read side of a HistoryManager.
type Timeline[T any] interface {
	Entries() []T
	Index() int
}

// DefaultVisualizer renders history timelines and snapshots.
// Label names a snapshot node; nil uses its structural fingerprint.
type DefaultVisualizer[T any] struct {
	Label func(T) string
}

// ExportDOT generates Graphviz DOT source for the timeline: one node per
// entry in order, the cursor filled, redo entries dashed.
func (v *DefaultVisualizer[T]) ExportDOT(tl Timeline[T]) string {
	entries, index := tl.Entries(), tl.Index()

	var buf bytes.Buffer
	buf.WriteString("digraph History {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")

	for i, e := range entries {
		style := ""
		switch {
		case i == index:
			style = ` style="rounded,filled" fillcolor=lightgreen`
		case i > index:
			style = ` style="rounded,dashed"`
		}
		fmt.Fprintf(&buf, "  \"s%d\" [label=%q%s];\n", i, fmt.Sprintf("#%d %s", i, v.label(e)), style)
	}
	for i := 1; i < len(entries); i++ {
		fmt.Fprintf(&buf, "  \"s%d\" -> \"s%d\";\n", i-1, i)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func (v *DefaultVisualizer[T]) label(snapshot T) string {
	if v.Label != nil {
		return v.Label(snapshot)
	}
	return primitives.Fingerprint(snapshot)
}

// ExportJSON serializes a snapshot to indented JSON.
func (v *DefaultVisualizer[T]) ExportJSON(snapshot T) ([]byte, error) {
	return json.MarshalIndent(snapshot, "", "  ")
}

// ExportYAML serializes a snapshot to YAML.
func (v *DefaultVisualizer[T]) ExportYAML(snapshot T) ([]byte, error) {
	out, err := primitives.RenderYAML(snapshot)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
