package transform

import (
	"context"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/frame"
	"github.com/vk/flowgrid/internal/sandbox"
)

// computedColumnExecutor appends a new column whose cells come from a
// sandboxed single-row expression. A failure on one row yields a null cell
// for that row only; the batch is never aborted. The new column's type is
// inferred from the first non-null computed value.
type computedColumnExecutor struct {
	sandbox *sandbox.Sandbox
}

func (e *computedColumnExecutor) Kind() dag.Kind { return dag.KindComputedColumn }

func (e *computedColumnExecutor) Apply(ctx context.Context, in *frame.DataFrame, cfg dag.Config) (*frame.DataFrame, error) {
	name := cfg.String("newColumnName")
	expression := cfg.String("expression")
	if name == "" || expression == "" {
		return in, nil
	}

	re, err := e.sandbox.CompileRow(expression)
	if err != nil {
		return nil, err
	}

	logger := ctxlog.FromContext(ctx)
	rows := make([]frame.Row, len(in.Rows))
	colType := frame.Type("")
	for i, row := range in.Rows {
		nr := make(frame.Row, len(row)+1)
		for k, v := range row {
			nr[k] = v
		}
		v, evalErr := re.Eval(row)
		if evalErr != nil {
			logger.Debug("computed column expression failed for row", "row", i, "error", evalErr)
			v = nil
		}
		nr[name] = v
		rows[i] = nr

		if colType == "" && v != nil {
			colType = frame.InferType(v)
		}
	}
	if colType == "" {
		colType = frame.TypeString
	}

	columns := make([]frame.Column, len(in.Columns), len(in.Columns)+1)
	copy(columns, in.Columns)
	columns = append(columns, frame.Column{Name: name, Type: colType})

	return &frame.DataFrame{Columns: columns, Rows: rows}, nil
}
