package sandbox

import "fmt"

// ErrKind classifies a sandbox failure.
type ErrKind string

const (
	// KindSyntax marks code that failed to parse.
	KindSyntax ErrKind = "syntax"
	// KindRuntime marks code that parsed but failed during evaluation.
	KindRuntime ErrKind = "runtime"
	// KindShape marks code that evaluated to something other than a
	// well-formed frame.
	KindShape ErrKind = "shape"
)

// Error is the typed failure surfaced to the owning node. Line and Column
// are best-effort positions, populated for syntax errors.
type Error struct {
	Kind    ErrKind
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	if e.Kind == KindSyntax && e.Line > 0 {
		return fmt.Sprintf("%s error at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func syntaxError(msg string, line, column int) *Error {
	return &Error{Kind: KindSyntax, Message: msg, Line: line, Column: column}
}

func runtimeError(msg string) *Error {
	return &Error{Kind: KindRuntime, Message: msg}
}

func shapeError(msg string) *Error {
	return &Error{Kind: KindShape, Message: msg}
}
