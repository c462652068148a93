package jamstage

import (
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// EventSink is the interface for optional ECS integration.
// When set on a Scene, resolved selections are forwarded to it.
type EventSink interface {
	EmitSelection(event SelectionEvent)
}

// Scene is the top-level object that owns the node graph, the active tracks,
// the pickable controls, and the camera. The host constructs one, drives
// Tick from its frame loop, and routes pointer input to CameraMovement and
// HandleSelection. A Scene is not safe for concurrent use.
type Scene struct {
	cfg    Config
	graph  *Graph
	camera *Camera
	meshes MeshLibrary

	tracks    []*Track
	pickables []*Pickable
	hitBuf    []*Pickable
	drawBuf   []Drawable

	sink          EventSink
	pauseCallback func() bool
	log           *zap.Logger
	debug         bool

	width, height float32

	room roomState
}

// NewScene creates a scene with an empty graph rooted at "origin". meshes
// may be nil; nodes whose mesh is missing are built without geometry.
func NewScene(cfg Config, meshes MeshLibrary) *Scene {
	cam := NewCamera(cfg.Camera.FieldOfView, 1)
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far
	cam.Sensitivity = cfg.Camera.Sensitivity
	return &Scene{
		cfg:    cfg,
		graph:  NewGraph("origin"),
		camera: cam,
		meshes: meshes,
		log:    zap.NewNop(),
		room:   newRoomState(),
	}
}

// Graph returns the scene's node graph.
func (s *Scene) Graph() *Graph {
	return s.graph
}

// Camera returns the scene's viewpoint.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Config returns the configuration the scene was created with.
func (s *Scene) Config() Config {
	return s.cfg
}

// SetLogger replaces the scene logger. A nil logger silences the scene.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick stats
// and tree shape warnings are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetEventSink sets the optional ECS bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetPauseCallback sets the function invoked when the pause control is
// selected. It toggles playback and reports whether the session is playing
// afterwards.
func (s *Scene) SetPauseCallback(fn func() bool) {
	s.pauseCallback = fn
}

// --- Tracks ---

// AddTrack appends a track. Tracks are evaluated in insertion order, so a
// later track targeting the same property overrides an earlier one.
func (s *Scene) AddTrack(t *Track) {
	s.tracks = append(s.tracks, t)
}

// RemoveTrack removes the first track with the given name. Returns false if
// no track has that name.
func (s *Scene) RemoveTrack(name string) bool {
	for i, t := range s.tracks {
		if t.Name == name {
			s.tracks = slices.Delete(s.tracks, i, i+1)
			return true
		}
	}
	return false
}

// FindTrack returns the first track with the given name.
func (s *Scene) FindTrack(name string) (*Track, bool) {
	for _, t := range s.tracks {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Tracks returns the active tracks. The returned slice MUST NOT be mutated.
func (s *Scene) Tracks() []*Track {
	return s.tracks
}

// --- Pickables ---

// AddPickable registers a clickable region.
func (s *Scene) AddPickable(p *Pickable) {
	s.pickables = append(s.pickables, p)
}

// Pickables returns the registered regions. The returned slice MUST NOT be
// mutated.
func (s *Scene) Pickables() []*Pickable {
	return s.pickables
}

// --- Frame ---

// Tick advances the scene to now, the host's monotonic clock. In order it
// arms tracks seen for the first time, evaluates the others, drops every
// track that finished, and recomputes all world transforms.
func (s *Scene) Tick(now time.Duration) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	finished := 0
	for _, t := range s.tracks {
		if t.needStart {
			t.arm(now)
			stats.armed++
			continue
		}
		stats.evaluated++
		if t.evaluate(s.graph, now) {
			finished++
		}
	}
	if finished > 0 {
		s.tracks = slices.DeleteFunc(s.tracks, func(t *Track) bool {
			return t.state == TrackDone
		})
	}
	stats.removed = finished

	if s.debug {
		stats.trackTime = time.Since(t0)
		t0 = time.Now()
	}

	stats.nodes = s.graph.UpdateWorld()

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.active = len(s.tracks)
		s.debugLog(stats)
	}
}

// Drawables returns the renderer view of every mesh-bearing node in creation
// order. The returned slice is reused by the next call.
func (s *Scene) Drawables() []Drawable {
	s.drawBuf = s.graph.Drawables(s.drawBuf[:0])
	return s.drawBuf
}

// --- Viewport ---

// Resize records the viewport size and updates the camera aspect ratio.
func (s *Scene) Resize(width, height float32) {
	s.width, s.height = width, height
	if height > 0 {
		s.camera.SetAspectRatio(width / height)
	}
}

// Size returns the viewport size last passed to Resize.
func (s *Scene) Size() (width, height float32) {
	return s.width, s.height
}

// CameraMovement turns the camera by a pointer delta.
func (s *Scene) CameraMovement(dx, dy float32) {
	s.camera.HandleMovement(dx, dy)
}

// tagOffset is the point above a room origin where a participant's name
// tag is anchored.
var tagOffset = mgl32.Vec3{0.5, 4.75, -2.0}

// TagPositions returns the screen position of the name tag anchor of every
// seated remote participant that is in front of the camera.
func (s *Scene) TagPositions() map[Instrument]mgl32.Vec2 {
	out := make(map[Instrument]mgl32.Vec2)
	for _, instr := range Instruments {
		if !s.room.active[instr] || (s.room.built && instr == s.room.instrument) {
			continue
		}
		world, ok := s.graph.World(s.room.origins[instr])
		if !ok {
			continue
		}
		p := world.Mul4x1(tagOffset.Vec4(1)).Vec3()
		x, y, ok := s.camera.WorldToScreen(p, s.width, s.height)
		if !ok {
			continue
		}
		out[instr] = mgl32.Vec2{x, y}
	}
	return out
}
