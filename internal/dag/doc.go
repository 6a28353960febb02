// Package dag holds the graph model of a pipeline: typed transformation
// nodes with configuration payloads, the directed edges between them, and
// the topological scheduler that orders nodes so every node's inputs are
// ready before it runs.
package dag
