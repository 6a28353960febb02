package transform

import (
	"context"
	"strings"

	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/frame"
)

// filterExecutor keeps rows matching a single-column predicate.
//
// Operator semantics follow the canvas contract: eq/neq compare loosely
// against the raw cell, gt/lt coerce both sides to numbers, contains and
// startsWith are case-insensitive string tests with null cells read as "".
type filterExecutor struct{}

func (e *filterExecutor) Kind() dag.Kind { return dag.KindFilter }

func (e *filterExecutor) Apply(_ context.Context, in *frame.DataFrame, cfg dag.Config) (*frame.DataFrame, error) {
	column := cfg.String("column")
	operator := cfg.String("operator")
	// Proposals may carry the comparison value as a number; coerce rather
	// than require a string.
	value := frame.ToString(cfg.Value("value"))
	if column == "" || operator == "" || value == "" {
		return in, nil
	}

	out := &frame.DataFrame{Columns: in.Columns, Rows: make([]frame.Row, 0, len(in.Rows))}
	for _, row := range in.Rows {
		if matches(row[column], operator, value) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

func matches(cell any, operator, value string) bool {
	switch operator {
	case "eq":
		return frame.LooseEqual(cell, value)
	case "neq":
		return !frame.LooseEqual(cell, value)
	case "gt", "lt":
		cn, cok := frame.ToNumber(cell)
		vn, vok := frame.ToNumber(value)
		if !cok || !vok {
			return false
		}
		if operator == "gt" {
			return cn > vn
		}
		return cn < vn
	case "contains":
		return strings.Contains(strings.ToLower(frame.ToString(cell)), strings.ToLower(value))
	case "startsWith":
		return strings.HasPrefix(strings.ToLower(frame.ToString(cell)), strings.ToLower(value))
	default:
		return false
	}
}
