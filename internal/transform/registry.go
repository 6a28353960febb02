package transform

import (
	"context"
	"fmt"

	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/frame"
	"github.com/vk/flowgrid/internal/sandbox"
)

// Executor runs one node kind.
type Executor interface {
	// Kind reports which node kind this executor serves.
	Kind() dag.Kind
	// Apply transforms the input frame under the node's config. It must
	// return a fresh frame (or the input itself only as an unmodified
	// passthrough) and must never throw for not-yet-configured nodes.
	Apply(ctx context.Context, in *frame.DataFrame, cfg dag.Config) (*frame.DataFrame, error)
}

// Registry maps the closed set of node kinds to their executors. The
// constructor registers every kind exactly once; asking for a kind outside
// the set is an error, never a silent no-op.
type Registry struct {
	executors map[dag.Kind]Executor
}

// NewRegistry builds the registry over the full kind set. The sandbox is
// needed by the computed-column and generic-transform executors.
func NewRegistry(sb *sandbox.Sandbox) *Registry {
	r := &Registry{executors: make(map[dag.Kind]Executor)}
	for _, e := range []Executor{
		&passthroughExecutor{kind: dag.KindSource},
		&passthroughExecutor{kind: dag.KindChart},
		&filterExecutor{},
		&groupByExecutor{},
		&sortExecutor{},
		&selectExecutor{},
		&computedColumnExecutor{sandbox: sb},
		&reshapeExecutor{},
		&transformExecutor{sandbox: sb},
	} {
		r.executors[e.Kind()] = e
	}
	// Adding a kind to the enum without an executor is a programming
	// error; fail at construction, not mid-run.
	for _, k := range dag.Kinds() {
		if _, ok := r.executors[k]; !ok {
			panic(fmt.Sprintf("transform: no executor registered for kind %q", k))
		}
	}
	return r
}

// ExecutorFor returns the executor for a kind.
func (r *Registry) ExecutorFor(kind dag.Kind) (Executor, error) {
	e, ok := r.executors[kind]
	if !ok {
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}
	return e, nil
}

// passthroughExecutor serves kinds with no tabular transform of their own:
// source nodes (the engine substitutes the loaded dataset) and chart nodes
// (rendering happens out of band through the render cache; their tabular
// output is their input).
type passthroughExecutor struct {
	kind dag.Kind
}

func (e *passthroughExecutor) Kind() dag.Kind { return e.kind }

func (e *passthroughExecutor) Apply(_ context.Context, in *frame.DataFrame, _ dag.Config) (*frame.DataFrame, error) {
	return in, nil
}
