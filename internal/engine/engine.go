package engine

import (
	"context"

	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/frame"
	"github.com/vk/flowgrid/internal/sandbox"
	"github.com/vk/flowgrid/internal/transform"
)

// Engine evaluates pipeline graphs. It owns the executor registry, the
// custom-code sandbox, and the published-output store. Safe for use from a
// single evaluating goroutine per run; the store itself is thread-safe.
type Engine struct {
	registry *transform.Registry
	sandbox  *sandbox.Sandbox
	store    *Store
}

// New wires an engine with a fresh sandbox, registry, and store.
func New() *Engine {
	sb := sandbox.New()
	return &Engine{
		registry: transform.NewRegistry(sb),
		sandbox:  sb,
		store:    NewStore(),
	}
}

// Store exposes the published-output store, where the UI reads per-node
// previews.
func (e *Engine) Store() *Store {
	return e.store
}

// ExecuteNode runs a single node outside a full graph run: the UI calls
// this to re-evaluate one node against a known upstream frame. Non-empty
// custom code overrides the config-driven executor regardless of kind.
func (e *Engine) ExecuteNode(ctx context.Context, kind dag.Kind, in *frame.DataFrame, cfg dag.Config, customCode string) (*frame.DataFrame, error) {
	if customCode != "" {
		return e.sandbox.Execute(ctx, customCode, in)
	}
	exec, err := e.registry.ExecutorFor(kind)
	if err != nil {
		return nil, err
	}
	return exec.Apply(ctx, in, cfg)
}
