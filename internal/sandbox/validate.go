package sandbox

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Validation is the result of a pre-execution syntax check, shaped for
// live editor feedback.
type Validation struct {
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// Validate parses code without evaluating it. It runs on every edit and
// must never execute side effects — parsing is the whole job. Empty code
// is always valid.
func Validate(code string) Validation {
	if strings.TrimSpace(code) == "" {
		return Validation{Valid: true}
	}

	_, diags := hclsyntax.ParseExpression([]byte(code), codeFilename, hcl.InitialPos)
	if !diags.HasErrors() {
		return Validation{Valid: true}
	}

	msg, line, col := describeDiag(diags)
	return Validation{Valid: false, Error: msg, Line: line, Column: col}
}
