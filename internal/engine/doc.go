// Package engine turns a pipeline graph into per-node tabular results. A
// run evaluates nodes strictly in topological order: each node's single
// primary upstream output (or the loaded dataset, for source nodes) feeds
// the node's executor — or the sandbox, when the node carries custom code
// — and the result is published atomically per node for downstream nodes
// and for the on-canvas preview.
//
// A run may be superseded by a newer run while in flight. In-flight nodes
// finish, but their outputs are discarded instead of overwriting newer
// state.
package engine
