package jamstage

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedScene(debug bool) (*Scene, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewScene(DefaultConfig(), nil)
	s.SetLogger(zap.New(core))
	s.SetDebugMode(debug)
	return s, logs
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_TickStats(t *testing.T) {
	s, logs := observedScene(true)
	n := s.Graph().NewNode("n", s.Graph().Root())
	s.AddTrack(NewTrack("a", n, PropertyColor, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 0, 0))
	s.Tick(0)
	s.Tick(time.Millisecond)

	ticks := logs.FilterMessage("tick").All()
	if len(ticks) != 2 {
		t.Fatalf("tick entries = %d, want 2", len(ticks))
	}
	fields := ticks[1].ContextMap()
	if fields["evaluated"] != int64(1) || fields["removed"] != int64(1) || fields["nodes"] != int64(2) {
		t.Errorf("fields = %v", fields)
	}
	if fields["armed"] != int64(0) {
		t.Errorf("armed = %v, want 0", fields["armed"])
	}
}

func TestReleaseMode_NoTickStats(t *testing.T) {
	s, logs := observedScene(false)
	s.Tick(0)
	if n := logs.FilterMessage("tick").Len(); n != 0 {
		t.Errorf("tick entries = %d, want 0", n)
	}
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	s, logs := observedScene(true)

	// Build a chain deeper than debugMaxTreeDepth (32).
	current := s.Graph().Root()
	for i := 0; i < debugMaxTreeDepth+5; i++ {
		current = s.spawnMesh(fmt.Sprintf("depth_%d", i), current, nil, mgl32.Vec3{})
	}

	if logs.FilterMessage("tree depth exceeds threshold").Len() == 0 {
		t.Error("expected tree depth warning")
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	s, logs := observedScene(true)
	parent := s.Graph().NewNode("many_children", s.Graph().Root())
	for i := 0; i < debugMaxChildCount+1; i++ {
		s.spawnMesh(fmt.Sprintf("c_%d", i), parent, nil, mgl32.Vec3{})
	}

	entries := logs.FilterMessage("child count exceeds threshold").All()
	if len(entries) != 1 {
		t.Fatalf("warnings = %d, want 1", len(entries))
	}
	if entries[0].ContextMap()["node"] != "many_children" {
		t.Errorf("fields = %v", entries[0].ContextMap())
	}
}

func TestSetLoggerNil(t *testing.T) {
	s := NewScene(DefaultConfig(), nil)
	s.SetLogger(nil)
	s.SetDebugMode(true)
	s.Tick(0)
}

func TestBuildTwiceWarns(t *testing.T) {
	s, logs := observedScene(false)
	s.Build(InstrumentMelody)
	s.Build(InstrumentMelody)
	if logs.FilterMessage("scene already built").Len() != 1 {
		t.Error("expected a warning for the second Build")
	}
}
