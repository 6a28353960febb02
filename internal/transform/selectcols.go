package transform

import (
	"context"

	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/frame"
)

// selectExecutor projects the frame down to the requested columns, in the
// requested order. Names absent from the input schema are silently
// skipped in both the schema and the row projection.
type selectExecutor struct{}

func (e *selectExecutor) Kind() dag.Kind { return dag.KindSelect }

func (e *selectExecutor) Apply(_ context.Context, in *frame.DataFrame, cfg dag.Config) (*frame.DataFrame, error) {
	requested := cfg.Strings("columns")
	if len(requested) == 0 {
		return in, nil
	}

	kept := make([]frame.Column, 0, len(requested))
	for _, name := range requested {
		if c, ok := in.Column(name); ok {
			kept = append(kept, c)
		}
	}

	out := &frame.DataFrame{Columns: kept, Rows: make([]frame.Row, 0, len(in.Rows))}
	for _, row := range in.Rows {
		nr := make(frame.Row, len(kept))
		for _, c := range kept {
			if v, ok := row[c.Name]; ok {
				nr[c.Name] = v
			}
		}
		out.Rows = append(out.Rows, nr)
	}
	return out, nil
}
