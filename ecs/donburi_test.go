package ecs

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/jamstage"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitSelection(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []jamstage.SelectionEvent
	SelectionEventType.Subscribe(world, func(w donburi.World, e jamstage.SelectionEvent) {
		received = append(received, e)
	})

	sink.EmitSelection(jamstage.SelectionEvent{
		Kind:       jamstage.SelectionCell,
		Code:       "2:5",
		Instrument: jamstage.InstrumentDrums,
		Distance:   3.5,
	})
	sink.EmitSelection(jamstage.SelectionEvent{
		Kind:    jamstage.SelectionPause,
		Code:    jamstage.PauseCode,
		Playing: false,
	})

	// Events are queued; process them.
	SelectionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Kind != jamstage.SelectionCell || e0.Code != "2:5" || e0.Distance != 3.5 {
		t.Errorf("event 0: %+v", e0)
	}
	e1 := received[1]
	if e1.Kind != jamstage.SelectionPause || e1.Playing {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_DropsIgnored(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	count := 0
	SelectionEventType.Subscribe(world, func(w donburi.World, e jamstage.SelectionEvent) {
		count++
	})

	sink.EmitSelection(jamstage.SelectionEvent{Kind: jamstage.SelectionIgnored, Code: "9:99"})
	sink.EmitSelection(jamstage.SelectionEvent{Kind: jamstage.SelectionBar, Code: "bar:1"})
	events.ProcessAllEvents(world)

	if count != 1 {
		t.Errorf("expected 1 published event, got %d", count)
	}
	if sink.Ignored() != 1 {
		t.Errorf("Ignored = %d, want 1", sink.Ignored())
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	SelectionEventType.Subscribe(world, func(w donburi.World, e jamstage.SelectionEvent) {
		count1++
	})
	SelectionEventType.Subscribe(world, func(w donburi.World, e jamstage.SelectionEvent) {
		count2++
	})

	sink.EmitSelection(jamstage.SelectionEvent{Kind: jamstage.SelectionCell})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiSink_SceneSelection(t *testing.T) {
	world := donburi.NewWorld()
	s := jamstage.NewScene(jamstage.DefaultConfig(), nil)
	s.SetEventSink(NewDonburiSink(world))

	// The default camera sits at the origin looking down -Z.
	g := s.Graph()
	pad := g.NewNode("pad", g.Root())
	g.Translate(pad, mgl32.Vec3{0, 0, -5})
	s.AddPickable(jamstage.NewPickable("1:3", pad, mgl32.Vec3{0.5, 0.5, 0.5}))
	s.Tick(0)

	var received []jamstage.SelectionEvent
	SelectionEventType.Subscribe(world, func(w donburi.World, e jamstage.SelectionEvent) {
		received = append(received, e)
	})

	song := jamstage.NewSong()
	s.HandleSelection(song, nil)
	events.ProcessAllEvents(world)

	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	e := received[0]
	if e.Kind != jamstage.SelectionCell || e.Code != "1:3" || e.Node != pad {
		t.Errorf("event: %+v", e)
	}
	if math.Abs(float64(e.Distance-4.5)) > 1e-4 {
		t.Errorf("distance = %v, want 4.5", e.Distance)
	}
	if !song.Drums.Pattern[1][3] {
		t.Error("pad 1:3 should be toggled on")
	}
}
