package jamstage

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-tick timing and counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	trackTime    time.Duration
	traverseTime time.Duration
	armed        int
	evaluated    int
	removed      int
	active       int
	nodes        int
}

// debugLog writes tick stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug("tick",
		zap.Duration("tracks", stats.trackTime),
		zap.Duration("traverse", stats.traverseTime),
		zap.Int("armed", stats.armed),
		zap.Int("evaluated", stats.evaluated),
		zap.Int("removed", stats.removed),
		zap.Int("active", stats.active),
		zap.Int("nodes", stats.nodes),
	)
}

const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugCheckNode warns when a freshly created node sits too deep or its
// parent has too many children.
func (s *Scene) debugCheckNode(id NodeID) {
	if !s.debug || id.IsNil() {
		return
	}
	name, _ := s.graph.Name(id)
	if d := s.graph.depth(id); d > debugMaxTreeDepth {
		s.log.Warn("tree depth exceeds threshold",
			zap.String("node", name), zap.Int("depth", d), zap.Int("threshold", debugMaxTreeDepth))
	}
	parent, ok := s.graph.Parent(id)
	if !ok {
		return
	}
	if n := len(s.graph.Children(parent)); n > debugMaxChildCount {
		pname, _ := s.graph.Name(parent)
		s.log.Warn("child count exceeds threshold",
			zap.String("node", pname), zap.Int("children", n), zap.Int("threshold", debugMaxChildCount))
	}
}
