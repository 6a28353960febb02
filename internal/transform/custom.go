package transform

import (
	"context"

	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/frame"
	"github.com/vk/flowgrid/internal/sandbox"
)

// transformExecutor is the generic escape hatch: it always runs through
// the sandbox, whether or not the node carries code. With no code the
// sandbox falls back to its documented identity snippet.
type transformExecutor struct {
	sandbox *sandbox.Sandbox
}

func (e *transformExecutor) Kind() dag.Kind { return dag.KindTransform }

func (e *transformExecutor) Apply(ctx context.Context, in *frame.DataFrame, _ dag.Config) (*frame.DataFrame, error) {
	return e.sandbox.Execute(ctx, "", in)
}
