package sandbox

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/frame"
)

// DefaultTransformCode is the identity snippet used when a transform node
// carries no code: it returns the upstream frame unchanged.
const DefaultTransformCode = "{ columns = columns, rows = rows }"

// codeFilename labels user code in parser diagnostics.
const codeFilename = "custom"

// Sandbox evaluates user-supplied HCL expressions over bound frame
// variables. The zero capability set is the point: the only inputs are the
// variables and the fixed function table below.
type Sandbox struct {
	funcs map[string]function.Function
}

// New returns a sandbox with the standard restricted function table.
func New() *Sandbox {
	return &Sandbox{funcs: funcTable()}
}

// funcTable is the closed set of functions exposed to user code. All come
// from the cty stdlib; none touch the host.
func funcTable() map[string]function.Function {
	return map[string]function.Function{
		"abs":      stdlib.AbsoluteFunc,
		"ceil":     stdlib.CeilFunc,
		"coalesce": stdlib.CoalesceFunc,
		"concat":   stdlib.ConcatFunc,
		"floor":    stdlib.FloorFunc,
		"format":   stdlib.FormatFunc,
		"length":   stdlib.LengthFunc,
		"lower":    stdlib.LowerFunc,
		"max":      stdlib.MaxFunc,
		"min":      stdlib.MinFunc,
		"strlen":   stdlib.StrlenFunc,
		"substr":   stdlib.SubstrFunc,
		"upper":    stdlib.UpperFunc,
	}
}

// Execute runs code against the upstream frame and returns the frame the
// code produced. The input is deep-copied before conversion, so user code
// can never mutate what sibling consumers observe. Failures come back as a
// *Error carrying the syntax/runtime/shape kind.
func (s *Sandbox) Execute(ctx context.Context, code string, in *frame.DataFrame) (*frame.DataFrame, error) {
	logger := ctxlog.FromContext(ctx)

	if code == "" {
		code = DefaultTransformCode
	}

	expr, diags := hclsyntax.ParseExpression([]byte(code), codeFilename, hcl.InitialPos)
	if diags.HasErrors() {
		msg, line, col := describeDiag(diags)
		return nil, syntaxError(msg, line, col)
	}

	in = in.Clone()
	rowsVal := rowsToCty(in.Rows)
	colsVal := columnsToCty(in.Columns)

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"rows":    rowsVal,
			"columns": colsVal,
			"input": cty.ObjectVal(map[string]cty.Value{
				"rows":    rowsVal,
				"columns": colsVal,
			}),
		},
		Functions: s.funcs,
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		msg, _, _ := describeDiag(diags)
		logger.Debug("custom code evaluation failed", "error", msg)
		return nil, runtimeError(msg)
	}

	out, serr := resultToFrame(val)
	if serr != nil {
		logger.Debug("custom code returned a malformed frame", "error", serr.Message)
		return nil, serr
	}
	return out, nil
}

// resultToFrame validates the evaluated value against the frame contract
// and converts it. The checks are deliberate and exhaustive: anything not
// shaped exactly like {columns: [{name, type}], rows: [...]} is a shape
// error, never a crash.
func resultToFrame(val cty.Value) (*frame.DataFrame, *Error) {
	raw, err := ctyToGo(val)
	if err != nil {
		return nil, shapeError(err.Error())
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, shapeError("custom code must return an object with 'rows' and 'columns'")
	}

	rawRows, ok := obj["rows"].([]any)
	if !ok {
		return nil, shapeError("returned value must have a 'rows' array")
	}
	rawCols, ok := obj["columns"].([]any)
	if !ok {
		return nil, shapeError("returned value must have a 'columns' array")
	}

	cols := make([]frame.Column, 0, len(rawCols))
	for i, rc := range rawCols {
		colObj, ok := rc.(map[string]any)
		if !ok {
			return nil, shapeError(fmt.Sprintf("column %d is not an object", i))
		}
		name, _ := colObj["name"].(string)
		typ, _ := colObj["type"].(string)
		if name == "" || typ == "" {
			return nil, shapeError(fmt.Sprintf("column %d must have 'name' and 'type'", i))
		}
		cols = append(cols, frame.Column{Name: name, Type: frame.Type(typ)})
	}

	rows := make([]frame.Row, 0, len(rawRows))
	for i, rr := range rawRows {
		rowObj, ok := rr.(map[string]any)
		if !ok {
			return nil, shapeError(fmt.Sprintf("row %d is not an object", i))
		}
		rows = append(rows, frame.Row(rowObj))
	}

	return &frame.DataFrame{Columns: cols, Rows: rows}, nil
}

// describeDiag flattens HCL diagnostics into a message plus a best-effort
// source position.
func describeDiag(diags hcl.Diagnostics) (msg string, line, col int) {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		msg = d.Summary
		if d.Detail != "" {
			msg = fmt.Sprintf("%s; %s", d.Summary, d.Detail)
		}
		if d.Subject != nil {
			line = d.Subject.Start.Line
			col = d.Subject.Start.Column
		}
		return msg, line, col
	}
	return diags.Error(), 0, 0
}
