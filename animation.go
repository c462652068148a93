package jamstage

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Property selects which vector of a node a Track writes.
type Property uint8

const (
	PropertyPosition Property = iota // resets the local matrix, then translates to the value
	PropertyColor                    // replaces the node color
)

// String returns the property name.
func (p Property) String() string {
	switch p {
	case PropertyPosition:
		return "position"
	case PropertyColor:
		return "color"
	default:
		return "unknown"
	}
}

// apply writes v to the property of node id. Returns false when the node is
// gone.
func (p Property) apply(g *Graph, id NodeID, v mgl32.Vec3) bool {
	switch p {
	case PropertyPosition:
		return g.ResetLocal(id) && g.Translate(id, v)
	case PropertyColor:
		return g.SetColor(id, v)
	default:
		return false
	}
}

// TrackState is the lifecycle stage of a Track.
type TrackState uint8

const (
	TrackPending TrackState = iota // not yet seen by a tick; start unresolved
	TrackArmed                     // start resolved but not reached
	TrackRunning                   // writing interpolated values
	TrackDone                      // reached the end value
)

// Track linearly interpolates one vector property of one node from From to
// To over Duration. The target is a weak reference: if the node disappears
// the track keeps its schedule but writes nothing.
//
// The start time is resolved on the first tick that observes the track, as
// that tick's time plus Delay. Nothing is written on that tick, nor on any
// later tick before the start time.
type Track struct {
	Name     string
	Target   NodeID
	Property Property
	From, To mgl32.Vec3
	Duration time.Duration
	Delay    time.Duration

	start     time.Duration
	needStart bool
	state     TrackState
	tweens    [3]*gween.Tween
}

// NewTrack creates a pending track.
func NewTrack(name string, target NodeID, prop Property, from, to mgl32.Vec3, duration, delay time.Duration) *Track {
	t := &Track{
		Name:      name,
		Target:    target,
		Property:  prop,
		From:      from,
		To:        to,
		Duration:  duration,
		Delay:     delay,
		needStart: true,
	}
	d := millis(duration)
	for i := range t.tweens {
		t.tweens[i] = gween.New(from[i], to[i], d, ease.Linear)
	}
	return t
}

// State returns the track's lifecycle stage.
func (t *Track) State() TrackState {
	return t.state
}

// Start returns the resolved start time. ok is false while pending.
func (t *Track) Start() (start time.Duration, ok bool) {
	return t.start, !t.needStart
}

// arm resolves the start time on the first observing tick.
func (t *Track) arm(now time.Duration) {
	t.start = now + t.Delay
	t.needStart = false
	t.state = TrackArmed
}

// progress returns the interpolated value at now and whether the end has
// been reached. Callers must not call it before the start time.
func (t *Track) progress(now time.Duration) (mgl32.Vec3, bool) {
	if t.Duration <= 0 {
		return t.To, true
	}
	elapsed := millis(now - t.start)
	var v mgl32.Vec3
	done := true
	for i, tw := range t.tweens {
		val, finished := tw.Set(elapsed)
		v[i] = val
		done = done && finished
	}
	return v, done
}

// evaluate writes the value at now to the target. It returns true exactly
// once, on the tick the track reaches its end value.
func (t *Track) evaluate(g *Graph, now time.Duration) bool {
	if t.needStart || t.state == TrackDone || now < t.start {
		return false
	}
	v, done := t.progress(now)
	t.Property.apply(g, t.Target, v)
	if done {
		t.state = TrackDone
		return true
	}
	t.state = TrackRunning
	return false
}

func millis(d time.Duration) float32 {
	return float32(d) / float32(time.Millisecond)
}
