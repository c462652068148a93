package jamstage

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Mesh names looked up in the scene's MeshLibrary.
const (
	MeshRoomPiece   = "room_piece"
	MeshDrumsStand  = "drums_stand"
	MeshMelodyStand = "melody_stand"
	MeshStandFront  = "stand_front"
	MeshStandArm    = "stand_arm"
	MeshSquarePad   = "square_pad"
	MeshRoundPad    = "round_pad"
	MeshDrumsBeat   = "drums_beat"
	MeshCharacter   = "char"
)

// DrumPadMesh returns the mesh name of the pads of a drum track.
func DrumPadMesh(track int) string {
	return "drums_pad" + strconv.Itoa(track)
}

// Control surface geometry, in the stand's local units.
const (
	bassSurface   = 1.23
	bassHalf      = bassSurface / 2
	bassColumn    = bassSurface / 17
	bassRow       = bassSurface / 10
	melodySurface = 1.275
	melodyHalf    = melodySurface / 2
	melodyColumn  = melodySurface / 11
	melodyBarSpan = 1.4
	melodyBarHalf = melodyBarSpan / 2
	melodyBarRow  = melodyBarSpan / 5
	drumStepAngle = 22.5 // degrees between consecutive drum steps
	surfaceHeight = 2.0
	surfaceTilt   = 45.0
	originOffset  = 16.3 // distance from the room center to an animator origin
)

// padHalfExtents is the pick box of a round or drum pad.
var padHalfExtents = mgl32.Vec3{0.05, 0.02, 0.05}

// padKey addresses a pad by (row, column) on the local control surface.
type padKey struct {
	row, col int
}

// standLayout places one synth stand in the room.
type standLayout struct {
	mesh string
	pos  mgl32.Vec3
	yaw  float32
	eye  mgl32.Vec3
}

var standLayouts = [instrumentCount]standLayout{
	InstrumentDrums:  {mesh: MeshDrumsStand, pos: mgl32.Vec3{13.476, 0, 0}, yaw: 90, eye: mgl32.Vec3{14.905, 3, 0}},
	InstrumentBass:   {mesh: MeshMelodyStand, pos: mgl32.Vec3{-6.74, 0, -11.67}, yaw: 210, eye: mgl32.Vec3{-7.45, 3, -12.9}},
	InstrumentMelody: {mesh: MeshMelodyStand, pos: mgl32.Vec3{-6.74, 0, 11.67}, yaw: -30, eye: mgl32.Vec3{-7.45, 3, 12.9}},
}

// roomState is what Build records about the room for later beat, refresh
// and selection handling.
type roomState struct {
	built      bool
	instrument Instrument
	playing    bool
	melodyBar  int

	pieces     [instrumentCount]NodeID
	fronts     [instrumentCount]NodeID
	stands     [instrumentCount]NodeID
	origins    [instrumentCount]NodeID
	characters [instrumentCount]NodeID
	active     [instrumentCount]bool

	pads           map[padKey]NodeID
	barPads        [MelodyBars]NodeID
	pause          NodeID
	beatIndicator  NodeID
	drumAnimators  [DrumTracks]NodeID
	bassAnimator   NodeID
	melodyAnimator NodeID
}

func newRoomState() roomState {
	return roomState{playing: true, pads: make(map[padKey]NodeID)}
}

// Instrument returns the seat the scene was built for.
func (s *Scene) Instrument() Instrument {
	return s.room.instrument
}

// MelodyBar returns the melody bar currently being edited.
func (s *Scene) MelodyBar() int {
	return s.room.melodyBar
}

// Pad returns the node of the local control pad at (row, col).
func (s *Scene) Pad(row, col int) (NodeID, bool) {
	id, ok := s.room.pads[padKey{row, col}]
	return id, ok
}

// spawn creates a node carrying the named library mesh.
func (s *Scene) spawn(name string, parent NodeID, mesh string, color mgl32.Vec3) NodeID {
	return s.spawnMesh(name, parent, s.meshes.Get(mesh), color)
}

func (s *Scene) spawnMesh(name string, parent NodeID, mesh *Mesh, color mgl32.Vec3) NodeID {
	id := s.graph.NewMeshNode(name, parent, mesh, color)
	s.debugCheckNode(id)
	return id
}

// Build populates the room for the local seat instr: the room shell, the
// three synth stands, the local pause control and control surface, the beat
// indicator and the per-seat animators. It positions the camera behind the
// local stand. Build only runs once per scene; later calls return false.
func (s *Scene) Build(instr Instrument) bool {
	r := &s.room
	if r.built {
		s.log.Warn("scene already built", zap.Stringer("instrument", r.instrument))
		return false
	}
	if int(instr) >= instrumentCount {
		return false
	}
	r.built = true
	r.instrument = instr
	g := s.graph
	p := s.cfg.Palette
	root := g.Root()

	for i := 0; i < 3; i++ {
		piece := s.spawn(fmt.Sprintf("Room_%d", i), root, MeshRoomPiece, p.Room)
		g.Rotate(piece, float32(i*120), AxisY)
	}
	for i, in := range Instruments {
		piece := s.spawn(in.String()+"_room", root, MeshRoomPiece, p.Black)
		g.Rotate(piece, float32(i*120+60), AxisY)
		r.pieces[in] = piece
	}

	for _, in := range Instruments {
		l := standLayouts[in]
		stand := s.spawn(in.String()+"_synth", root, l.mesh, p.Black)
		g.Translate(stand, l.pos)
		g.Rotate(stand, l.yaw, AxisY)
		r.stands[in] = stand
		r.fronts[in] = s.spawn(in.String()+"_front", stand, MeshStandFront, p.Black)
	}

	own := r.stands[instr]
	s.spawn("stand_arm", own, MeshStandArm, p.Black)
	pause := s.spawn("pause", own, MeshSquarePad, p.Playing)
	g.Translate(pause, mgl32.Vec3{-1.45, 1.65, 1.32})
	g.Rotate(pause, -45, AxisZ)
	g.Rotate(pause, 90, AxisY)
	r.pause = pause
	s.AddPickable(NewPickable(PauseCode, pause, mgl32.Vec3{0.2, 0.02, 0.25}))

	s.camera.Initialize(standLayouts[instr].eye, mgl32.Vec3{})
	switch instr {
	case InstrumentDrums:
		s.buildDrumsControl(own)
	case InstrumentBass:
		s.buildBassControl(own)
	case InstrumentMelody:
		s.buildMelodyControl(own)
	}

	s.buildAnimators()
	s.graph.UpdateWorld()
	s.log.Debug("scene built", zap.Stringer("instrument", instr), zap.Int("nodes", g.Len()),
		zap.Int("pickables", len(s.pickables)))
	return true
}

func (s *Scene) buildDrumsControl(stand NodeID) {
	g := s.graph
	p := s.cfg.Palette
	parent := g.NewNode("drumPad_parent", stand)
	g.Translate(parent, mgl32.Vec3{0, surfaceHeight, 0})
	g.Rotate(parent, surfaceTilt, AxisX)
	for i := 0; i < DrumTracks; i++ {
		// Tracks sit on concentric rings; the two outer tracks share a ring
		// and are split left and right of the step spoke.
		var x, z float32
		switch i {
		case 0:
			z = 0.23
		case 1:
			z = 0.404
		case 2:
			x, z = -0.0533, 0.628
		case 3:
			x, z = 0.0533, 0.628
		}
		for j := 0; j < Steps; j++ {
			pad := s.spawn(fmt.Sprintf("drumPad_%d:%d", i, j), parent, DrumPadMesh(i), p.OffPad)
			g.Rotate(pad, -drumStepAngle*float32(j), AxisY)
			g.Translate(pad, mgl32.Vec3{x, 0, -z})
			s.room.pads[padKey{i, j}] = pad
			s.AddPickable(NewPickable(cellCode(strconv.Itoa(i), j), pad, padHalfExtents))
		}
	}
	s.room.beatIndicator = s.spawn("BeatIndicator", parent, MeshDrumsBeat, p.Indicator(InstrumentDrums))
}

func (s *Scene) buildBassControl(stand NodeID) {
	g := s.graph
	p := s.cfg.Palette
	padMesh := NewBoxMesh(0.035, 0.05, bassRow)
	beatMesh := NewBoxMesh(bassRow-0.04, 0.025, 1.2)
	for i := 0; i < BassLevels; i++ {
		for j := 0; j < Steps; j++ {
			x := float32(-bassHalf + bassColumn*float64(j+1))
			z := float32(bassHalf - bassRow*float64(i+1))
			pad := s.spawnMesh(fmt.Sprintf("bassPad_%d:%d", i, j), stand, padMesh, p.OffPad)
			g.Translate(pad, mgl32.Vec3{0, surfaceHeight, 0})
			g.Rotate(pad, surfaceTilt, AxisX)
			g.Translate(pad, mgl32.Vec3{x, 0, z})
			s.room.pads[padKey{i, j}] = pad
			s.AddPickable(NewPickable(cellCode(bassLevelCode(i), j), pad, mgl32.Vec3{0.04, 0.02, 0.05}))
		}
	}
	beat := s.spawnMesh("BeatIndicator", stand, beatMesh, p.Indicator(InstrumentBass))
	g.Translate(beat, mgl32.Vec3{bassHalf - bassColumn*8, surfaceHeight, 0})
	g.Rotate(beat, surfaceTilt, AxisX)
	g.Translate(beat, mgl32.Vec3{bassColumn * 5, 0, 0})
	s.room.beatIndicator = beat
}

func (s *Scene) buildMelodyControl(stand NodeID) {
	g := s.graph
	p := s.cfg.Palette
	for i := 0; i < MelodyNotes; i++ {
		for j := 0; j < MelodySteps; j++ {
			x := float32(-melodyHalf + melodyColumn*float64(j+1))
			z := float32(-melodyHalf + melodyColumn*float64(i+1))
			pad := s.spawn(fmt.Sprintf("melodyPad_%d:%d", i, j), stand, MeshRoundPad, p.OffPad)
			g.Translate(pad, mgl32.Vec3{0, surfaceHeight, 0})
			g.Rotate(pad, surfaceTilt, AxisX)
			g.Translate(pad, mgl32.Vec3{x, 0, z})
			s.room.pads[padKey{i, j}] = pad
			s.AddPickable(NewPickable(cellCode(strconv.Itoa(i), j), pad, padHalfExtents))
		}
	}
	for i := 0; i < MelodyBars; i++ {
		x := float32(-melodyHalf + melodyColumn*9 + melodyColumn/2)
		z := float32(-melodyBarHalf + melodyBarRow*float64(i+1))
		color := p.OffPad
		if i == 0 {
			color = p.Melody
		}
		bar := s.spawn(fmt.Sprintf("melodyBarPad_%d", i), stand, MeshSquarePad, color)
		g.Translate(bar, mgl32.Vec3{0, surfaceHeight, 0})
		g.Rotate(bar, surfaceTilt, AxisX)
		g.Translate(bar, mgl32.Vec3{x, 0, z})
		s.room.barPads[i] = bar
		s.AddPickable(NewPickable(cellCode(barCodePrefix, i), bar, mgl32.Vec3{0.1, 0.02, 0.125}))
	}
	beat := s.spawnMesh("BeatIndicator", stand, NewBoxMesh(melodyColumn, 0.015, 1.3), p.Indicator(InstrumentMelody))
	g.Translate(beat, mgl32.Vec3{0, surfaceHeight, 0})
	g.Rotate(beat, surfaceTilt, AxisX)
	s.room.beatIndicator = beat
}

// buildAnimators creates one origin per seat facing into the room, and under
// it the nodes that bounce, glide and float with the music.
func (s *Scene) buildAnimators() {
	g := s.graph
	black := s.cfg.Palette.Black
	r := &s.room
	for _, in := range Instruments {
		origin := g.NewNode(in.String()+"_origin", r.pieces[in])
		g.Rotate(origin, 30, AxisY)
		g.Translate(origin, mgl32.Vec3{0, 0, originOffset})
		r.origins[in] = origin
	}

	drumMesh := NewBoxMesh(4, 10, 1)
	for i := 0; i < DrumTracks; i++ {
		n := s.spawnMesh(fmt.Sprintf("drumsAnimators_%d", i), r.origins[InstrumentDrums], drumMesh, black)
		g.Translate(n, drumAnimatorRest(i))
		r.drumAnimators[i] = n
	}

	r.bassAnimator = s.spawnMesh("bassAnimators_0", r.origins[InstrumentBass], NewBoxMesh(12, 1, 1), black)
	g.Translate(r.bassAnimator, mgl32.Vec3{0, 5, 0})

	r.melodyAnimator = s.spawnMesh("melodyAnimator", r.origins[InstrumentMelody], NewSphereMesh(1, 16), black)
	g.Translate(r.melodyAnimator, mgl32.Vec3{-8, 1.5, 0.25})
}

// drumAnimatorX is the lateral slot of the animator of drum track i.
func drumAnimatorX(i int) float32 {
	return 6 - float32(i)*4
}

func drumAnimatorRest(i int) mgl32.Vec3 {
	return mgl32.Vec3{drumAnimatorX(i), -4, 0}
}
