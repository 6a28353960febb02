package engine

import (
	"sync"

	"github.com/vk/flowgrid/internal/frame"
)

// Store holds the published per-node outputs across runs. One mutex guards
// the whole map: publication is atomic per node, so a reader can never
// observe a partial frame, and a stale run can never clobber a newer one.
type Store struct {
	mu     sync.Mutex
	runSeq int64
	// want records, per node id, the most recent run that is allowed to
	// publish for it. BeginRun stamps every node it covers.
	want    map[string]int64
	outputs map[string]*frame.DataFrame
}

// NewStore returns an empty output store.
func NewStore() *Store {
	return &Store{
		want:    make(map[string]int64),
		outputs: make(map[string]*frame.DataFrame),
	}
}

// BeginRun allocates a run id and stamps it on every node the run covers.
// From this moment any older in-flight run publishing for those nodes is
// stale and its results are dropped.
func (s *Store) BeginRun(nodeIDs []string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runSeq++
	for _, id := range nodeIDs {
		s.want[id] = s.runSeq
	}
	return s.runSeq
}

// Publish stores a node's output if runID is still the newest run stamped
// for that node. It reports whether the output was accepted.
func (s *Store) Publish(nodeID string, runID int64, f *frame.DataFrame) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.want[nodeID] != runID {
		return false
	}
	s.outputs[nodeID] = f
	return true
}

// Output returns the most recently published frame for a node.
func (s *Store) Output(nodeID string) (*frame.DataFrame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.outputs[nodeID]
	return f, ok
}
