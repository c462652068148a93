package ecs

import (
	"github.com/phanxgames/jamstage"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SelectionEventType is the Donburi event type for jamstage selections.
// Subscribe to this in your ECS systems to react to pad and pause clicks.
var SelectionEventType = events.NewEventType[jamstage.SelectionEvent]()

var _ jamstage.EventSink = (*DonburiSink)(nil)

// DonburiSink publishes the selections that changed something into a Donburi
// world. Clicks on codes that mean nothing for the local seat
// (SelectionIgnored) are dropped; Ignored counts them.
type DonburiSink struct {
	world   donburi.World
	ignored int
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Selections are published to SelectionEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world}
}

// EmitSelection queues event unless it is a SelectionIgnored.
func (s *DonburiSink) EmitSelection(event jamstage.SelectionEvent) {
	if event.Kind == jamstage.SelectionIgnored {
		s.ignored++
		return
	}
	SelectionEventType.Publish(s.world, event)
}

// Ignored returns how many selections were dropped.
func (s *DonburiSink) Ignored() int {
	return s.ignored
}
