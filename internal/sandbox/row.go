package sandbox

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/vk/flowgrid/internal/frame"
)

// RowExpr is a compiled single-row scalar expression, the restricted form
// of the sandbox used by computed columns: one expression, one bound `row`
// variable, a coerced scalar result.
type RowExpr struct {
	expr  hcl.Expression
	funcs map[string]function.Function
}

// CompileRow parses a per-row expression once so it can be evaluated
// against every row of a frame. Parse failures are syntax errors.
func (s *Sandbox) CompileRow(code string) (*RowExpr, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(code), codeFilename, hcl.InitialPos)
	if diags.HasErrors() {
		msg, line, col := describeDiag(diags)
		return nil, syntaxError(msg, line, col)
	}
	return &RowExpr{expr: expr, funcs: s.funcs}, nil
}

// Eval computes the expression for one row. A failure here is isolated to
// the row: callers turn it into a null cell rather than aborting the
// batch.
func (re *RowExpr) Eval(row frame.Row) (any, error) {
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"row": rowToCty(row)},
		Functions: re.funcs,
	}

	val, diags := re.expr.Value(evalCtx)
	if diags.HasErrors() {
		msg, _, _ := describeDiag(diags)
		return nil, runtimeError(msg)
	}

	out, err := ctyToGo(val)
	if err != nil {
		return nil, runtimeError(err.Error())
	}
	return out, nil
}
