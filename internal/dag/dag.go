package dag

import "errors"

// ErrCycleDetected is returned by callers of Sort when the edge set
// contains a cycle and the graph cannot be fully ordered.
var ErrCycleDetected = errors.New("dag: cycle detected, graph is not acyclic")

// Kind identifies one node variant. The set is closed: the transform
// registry registers exactly these kinds, and an unknown kind is an error
// rather than a silent no-op.
type Kind string

const (
	KindSource         Kind = "source"
	KindFilter         Kind = "filter"
	KindGroupBy        Kind = "groupBy"
	KindSort           Kind = "sort"
	KindSelect         Kind = "select"
	KindComputedColumn Kind = "computedColumn"
	KindReshape        Kind = "reshape"
	KindTransform      Kind = "transform"
	KindChart          Kind = "chart"
)

// Kinds lists every node kind the engine knows, in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindSource, KindFilter, KindGroupBy, KindSort, KindSelect,
		KindComputedColumn, KindReshape, KindTransform, KindChart,
	}
}

// State is a node's lifecycle state. Nodes arrive from the UI or from an
// AI proposal as proposed, become confirmed on user action, and are marked
// running/done/error by the engine during a run. Pending marks a node
// downstream of a failure: its effective input is stale, so it is neither
// executed nor given an output.
type State string

const (
	StateProposed  State = "proposed"
	StateConfirmed State = "confirmed"
	StateRunning   State = "running"
	StateDone      State = "done"
	StateError     State = "error"
	StatePending   State = "pending"
)

// Config is a node's kind-specific key/value payload, decoded from JSON.
type Config map[string]any

// String returns the value under key coerced to a string, or "" when the
// key is missing, nil, or not string-like. Executors treat "" as an
// unconfigured field.
func (c Config) String(key string) string {
	switch v := c[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

// Value returns the raw value under key, or nil.
func (c Config) Value(key string) any {
	return c[key]
}

// Strings returns the value under key as a string list. JSON decoding
// yields []any, so both that and []string are accepted; anything else is
// an empty list.
func (c Config) Strings(key string) []string {
	switch v := c[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Node is a single vertex in the pipeline graph.
type Node struct {
	// ID is the opaque, unique identifier the store and engine key on.
	ID string `json:"id"`
	// Kind selects the executor that runs this node.
	Kind Kind `json:"type"`
	// Label is the human-readable name shown on the canvas.
	Label string `json:"label,omitempty"`
	// Config holds the kind-specific configuration payload.
	Config Config `json:"config,omitempty"`
	// CustomCode, when non-empty, overrides the config-driven executor:
	// the node runs through the sandbox instead, whatever its kind.
	CustomCode string `json:"customCode,omitempty"`
	// State is the node's lifecycle state, owned by the surrounding store.
	State State `json:"state,omitempty"`
}

// Edge is a directed connection between two nodes. The graph is a DAG;
// each consuming node has one well-defined primary upstream in practice
// (multiple incoming edges are not semantically merged by any executor).
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}
