// Package proposal adapts pipeline proposals from the AI collaborator
// into graph nodes and edges. Proposals arrive as an ordered node list
// with implicit chaining — node i feeds node i+1 — and are linearized
// here; edit proposals splice a linearized subgraph in place of the
// nodes the user had selected.
package proposal

import (
	"github.com/google/uuid"

	"github.com/vk/flowgrid/internal/dag"
)

// Step is one proposed node: a kind plus its configuration, optionally
// custom code and a display label.
type Step struct {
	Type       dag.Kind   `json:"type"`
	Config     dag.Config `json:"config,omitempty"`
	CustomCode string     `json:"customCode,omitempty"`
	Label      string     `json:"label,omitempty"`
}

// Pipeline is a full proposal from the AI collaborator.
type Pipeline struct {
	Nodes       []Step `json:"nodes"`
	Explanation string `json:"explanation,omitempty"`
}

// Edit is a proposal to replace part of an existing graph.
type Edit struct {
	SuggestedPipeline Pipeline `json:"suggestedPipeline"`
}

// Linearize turns a proposal into graph nodes and the implicit chain of
// edges between consecutive nodes. Every node arrives in the proposed
// state; ids are minted here.
func Linearize(p Pipeline) ([]dag.Node, []dag.Edge) {
	nodes := make([]dag.Node, len(p.Nodes))
	for i, step := range p.Nodes {
		nodes[i] = dag.Node{
			ID:         uuid.NewString(),
			Kind:       step.Type,
			Label:      step.Label,
			Config:     step.Config,
			CustomCode: step.CustomCode,
			State:      dag.StateProposed,
		}
	}

	edges := make([]dag.Edge, 0, max(len(nodes)-1, 0))
	for i := 1; i < len(nodes); i++ {
		edges = append(edges, dag.Edge{
			ID:     uuid.NewString(),
			Source: nodes[i-1].ID,
			Target: nodes[i].ID,
		})
	}
	return nodes, edges
}

// Splice replaces the selected nodes with the linearized pipeline,
// rewiring the boundary: edges that entered the selection now enter the
// first new node, edges that left it now leave the last new node. With an
// empty pipeline the selection is removed and the boundary is bridged
// directly. The inputs are not mutated.
func Splice(nodes []dag.Node, edges []dag.Edge, selected []string, p Pipeline) ([]dag.Node, []dag.Edge) {
	sel := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		sel[id] = struct{}{}
	}

	newNodes, newEdges := Linearize(p)

	keptNodes := make([]dag.Node, 0, len(nodes)+len(newNodes))
	for _, n := range nodes {
		if _, drop := sel[n.ID]; !drop {
			keptNodes = append(keptNodes, n)
		}
	}
	keptNodes = append(keptNodes, newNodes...)

	var incoming, outgoing []string
	keptEdges := make([]dag.Edge, 0, len(edges)+len(newEdges))
	for _, e := range edges {
		_, fromSel := sel[e.Source]
		_, toSel := sel[e.Target]
		switch {
		case !fromSel && !toSel:
			keptEdges = append(keptEdges, e)
		case !fromSel && toSel:
			incoming = append(incoming, e.Source)
		case fromSel && !toSel:
			outgoing = append(outgoing, e.Target)
		}
		// Edges fully inside the selection vanish with it.
	}
	keptEdges = append(keptEdges, newEdges...)

	if len(newNodes) > 0 {
		first, last := newNodes[0].ID, newNodes[len(newNodes)-1].ID
		for _, src := range incoming {
			keptEdges = append(keptEdges, dag.Edge{ID: uuid.NewString(), Source: src, Target: first})
		}
		for _, dst := range outgoing {
			keptEdges = append(keptEdges, dag.Edge{ID: uuid.NewString(), Source: last, Target: dst})
		}
		return keptNodes, keptEdges
	}

	// Nothing proposed: bridge predecessors straight to successors.
	for _, src := range incoming {
		for _, dst := range outgoing {
			keptEdges = append(keptEdges, dag.Edge{ID: uuid.NewString(), Source: src, Target: dst})
		}
	}
	return keptNodes, keptEdges
}
