package dag

// Sort orders nodes for evaluation using Kahn's algorithm: every node
// appears after all of its upstream dependencies. Ties among
// simultaneously-ready nodes break by FIFO queue order, seeded in input
// order — this has no semantic effect inside the DAG but keeps exported
// artifacts (generated scripts, previews) stable across runs.
//
// Edges that reference ids outside the node set are ignored; the UI may
// hold dangling edges mid-edit and they must not poison ordering.
//
// If the edge set contains a cycle the queue drains early and Sort returns
// only the emitted prefix. Callers detect len(result) < len(nodes) and
// treat it as ErrCycleDetected rather than silently dropping nodes.
func Sort(nodes []Node, edges []Edge) []Node {
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	inDegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		inDegree[n.ID] = 0
	}
	for _, e := range edges {
		if _, ok := byID[e.Source]; !ok {
			continue
		}
		if _, ok := byID[e.Target]; !ok {
			continue
		}
		inDegree[e.Target]++
		dependents[e.Source] = append(dependents[e.Source], e.Target)
	}

	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	ordered := make([]Node, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		ordered = append(ordered, byID[id])

		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	return ordered
}

// Upstreams returns, per node id, the source ids of its incoming edges in
// edge order. The first entry is the node's primary upstream.
func Upstreams(nodes []Node, edges []Edge) map[string][]string {
	byID := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = struct{}{}
	}
	up := make(map[string][]string, len(nodes))
	for _, e := range edges {
		if _, ok := byID[e.Source]; !ok {
			continue
		}
		if _, ok := byID[e.Target]; !ok {
			continue
		}
		up[e.Target] = append(up[e.Target], e.Source)
	}
	return up
}
