package transform

import (
	"context"

	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/frame"
)

// reshapeExecutor unpivots (melts) wide data: every input row becomes one
// output row per pivot column, carrying all non-pivot cells unchanged plus
// the pivot column's name under keyColumn and its cell under valueColumn.
type reshapeExecutor struct{}

func (e *reshapeExecutor) Kind() dag.Kind { return dag.KindReshape }

func (e *reshapeExecutor) Apply(_ context.Context, in *frame.DataFrame, cfg dag.Config) (*frame.DataFrame, error) {
	keyCol := cfg.String("keyColumn")
	valueCol := cfg.String("valueColumn")
	pivots := cfg.Strings("pivotColumns")
	if keyCol == "" || valueCol == "" || len(pivots) == 0 {
		return in, nil
	}

	pivotSet := make(map[string]struct{}, len(pivots))
	for _, p := range pivots {
		pivotSet[p] = struct{}{}
	}

	columns := make([]frame.Column, 0, len(in.Columns)+2)
	for _, c := range in.Columns {
		if _, isPivot := pivotSet[c.Name]; !isPivot {
			columns = append(columns, c)
		}
	}
	columns = append(columns,
		frame.Column{Name: keyCol, Type: frame.TypeString},
		frame.Column{Name: valueCol, Type: valueColumnType(in, pivots)},
	)

	rows := make([]frame.Row, 0, len(in.Rows)*len(pivots))
	for _, row := range in.Rows {
		for _, pivot := range pivots {
			nr := make(frame.Row, len(columns))
			for k, v := range row {
				if _, isPivot := pivotSet[k]; !isPivot {
					nr[k] = v
				}
			}
			nr[keyCol] = pivot
			nr[valueCol] = row[pivot]
			rows = append(rows, nr)
		}
	}

	return &frame.DataFrame{Columns: columns, Rows: rows}, nil
}

// valueColumnType reports the advisory type for the melted value column:
// the declared type of the first pivot column found in the schema, else
// string.
func valueColumnType(in *frame.DataFrame, pivots []string) frame.Type {
	for _, p := range pivots {
		if c, ok := in.Column(p); ok {
			return c.Type
		}
	}
	return frame.TypeString
}
