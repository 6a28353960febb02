package engine

import (
	"context"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/frame"
)

// Result is the outcome of one run: per-node outputs, states, and errors,
// plus the evaluation order actually used.
type Result struct {
	// RunID identifies this run in the store's supersession bookkeeping.
	RunID int64
	// Order lists node ids in the order they were considered.
	Order []string
	// Outputs holds the frame each completed node produced.
	Outputs map[string]*frame.DataFrame
	// States holds each node's terminal state for this run.
	States map[string]dag.State
	// Errors holds the failure for every node in StateError.
	Errors map[string]error
}

// Run evaluates the whole graph. Source nodes take their dataset from
// sources, keyed by node id; every other node takes the output of its
// primary upstream. Nodes downstream of a failed node are marked pending
// and never executed; sibling branches continue independently.
//
// Run returns dag.ErrCycleDetected when the edge set cannot be fully
// ordered. The acyclic prefix still evaluates, and the nodes caught in the
// cycle are reported in StateError.
func (e *Engine) Run(ctx context.Context, nodes []dag.Node, edges []dag.Edge, sources map[string]*frame.DataFrame) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}

	res := &Result{
		RunID:   e.store.BeginRun(ids),
		Outputs: make(map[string]*frame.DataFrame, len(nodes)),
		States:  make(map[string]dag.State, len(nodes)),
		Errors:  make(map[string]error),
	}
	logger = logger.With("runID", res.RunID)

	ordered := dag.Sort(nodes, edges)
	cycle := len(ordered) < len(nodes)
	if cycle {
		logger.Error("Graph contains a cycle; evaluating acyclic prefix only.",
			"ordered", len(ordered), "total", len(nodes))
		inPrefix := make(map[string]struct{}, len(ordered))
		for _, n := range ordered {
			inPrefix[n.ID] = struct{}{}
		}
		for _, n := range nodes {
			if _, ok := inPrefix[n.ID]; !ok {
				res.States[n.ID] = dag.StateError
				res.Errors[n.ID] = dag.ErrCycleDetected
			}
		}
	}

	upstreams := dag.Upstreams(nodes, edges)

	for _, node := range ordered {
		res.Order = append(res.Order, node.ID)
		nodeLogger := logger.With("nodeID", node.ID, "kind", node.Kind)

		if ctx.Err() != nil {
			nodeLogger.Warn("Run canceled, marking node pending.")
			res.States[node.ID] = dag.StatePending
			continue
		}

		input, ok := e.resolveInput(node, upstreams[node.ID], sources, res)
		if !ok {
			nodeLogger.Warn("Upstream failed or pending, marking node pending.")
			res.States[node.ID] = dag.StatePending
			continue
		}

		res.States[node.ID] = dag.StateRunning
		out, err := e.ExecuteNode(ctx, node.Kind, input, node.Config, node.CustomCode)
		if err != nil {
			nodeLogger.Error("Node execution failed.", "error", err)
			res.States[node.ID] = dag.StateError
			res.Errors[node.ID] = err
			continue
		}

		if !e.store.Publish(node.ID, res.RunID, out) {
			nodeLogger.Debug("Discarding output of superseded run.")
		}
		res.Outputs[node.ID] = out
		res.States[node.ID] = dag.StateDone
		nodeLogger.Debug("Node execution succeeded.", "rows", len(out.Rows))
	}

	if cycle {
		return res, dag.ErrCycleDetected
	}
	return res, nil
}

// resolveInput picks the frame feeding a node: the loaded dataset for
// source nodes, otherwise the output of the node's primary upstream. The
// second return is false when an upstream failed or was left pending —
// downstream must not run on stale input.
func (e *Engine) resolveInput(node dag.Node, ups []string, sources map[string]*frame.DataFrame, res *Result) (*frame.DataFrame, bool) {
	if f, ok := sources[node.ID]; ok {
		return f, true
	}

	for _, up := range ups {
		switch res.States[up] {
		case dag.StateError, dag.StatePending:
			return nil, false
		}
	}

	if len(ups) > 0 {
		// Primary upstream is the first incoming edge.
		if f, ok := res.Outputs[ups[0]]; ok {
			return f, true
		}
		return nil, false
	}

	// A root node with no dataset: evaluate against an empty frame so the
	// preview shows a configured-but-unfed node instead of an error.
	return frame.New(), true
}
