package jamstage

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Refresh brings the scene in line with song: seats that gained a
// participant fade in (and show a character for remote seats), seats that
// lost one fade out, and every local pad is recolored from the pattern.
// Call it whenever the song changes, not every frame. Refresh does nothing
// before Build; the first Refresh after Build picks up every seated
// participant.
func (s *Scene) Refresh(song *Song) {
	if song == nil || !s.room.built {
		return
	}
	for _, instr := range Instruments {
		seated := song.User(instr) != ""
		switch {
		case seated && !s.room.active[instr]:
			s.seatTaken(instr, song.User(instr))
		case !seated && s.room.active[instr]:
			s.seatFreed(instr)
		}
	}
	s.recolorPads(song)
}

// SeatActive reports whether instr had a participant at the last Refresh.
func (s *Scene) SeatActive(instr Instrument) bool {
	return int(instr) < instrumentCount && s.room.active[instr]
}

// Character returns the avatar node spawned for a remote participant.
func (s *Scene) Character(instr Instrument) (NodeID, bool) {
	if int(instr) >= instrumentCount {
		return NodeID{}, false
	}
	id := s.room.characters[instr]
	return id, s.graph.Contains(id)
}

func (s *Scene) seatTaken(instr Instrument, user string) {
	r := &s.room
	r.active[instr] = true
	name := instr.String()
	s.RemoveTrack(name + "_room_off")
	s.RemoveTrack(name + "_front_off")
	s.fadeSeat(instr, "_on", s.cfg.Palette.Black, s.cfg.Palette.Instrument(instr), s.cfg.FadeIn)

	if instr != r.instrument {
		g := s.graph
		char := s.spawn(name+"_char", r.pieces[instr], MeshCharacter, s.cfg.Palette.Guest)
		g.Rotate(char, 30, AxisY)
		g.Translate(char, mgl32.Vec3{0, 0, 14})
		g.Rotate(char, 180, AxisY)
		r.characters[instr] = char
	}
	s.log.Debug("seat taken", zap.Stringer("instrument", instr), zap.String("user", user))
}

func (s *Scene) seatFreed(instr Instrument) {
	r := &s.room
	r.active[instr] = false
	name := instr.String()
	s.RemoveTrack(name + "_room_on")
	s.RemoveTrack(name + "_front_on")
	s.fadeSeat(instr, "_off", s.cfg.Palette.Instrument(instr), s.cfg.Palette.Black, s.cfg.FadeOut)

	if s.graph.Remove(r.characters[instr]) {
		r.characters[instr] = NodeID{}
	}
	s.log.Debug("seat freed", zap.Stringer("instrument", instr))
}

// fadeSeat schedules the color fade of a seat's room piece and stand front.
func (s *Scene) fadeSeat(instr Instrument, suffix string, from, to mgl32.Vec3, d time.Duration) {
	name := instr.String()
	s.AddTrack(NewTrack(name+"_room"+suffix, s.room.pieces[instr], PropertyColor, from, to, d, 0))
	s.AddTrack(NewTrack(name+"_front"+suffix, s.room.fronts[instr], PropertyColor, from, to, d, 0))
}

// recolorPads paints the local control surface from the local part.
func (s *Scene) recolorPads(song *Song) {
	r := &s.room
	if !r.built {
		return
	}
	p := s.cfg.Palette
	paint := func(row, col int, lit bool, color mgl32.Vec3) {
		c := p.OffPad
		if lit {
			c = color
		}
		s.graph.SetColor(r.pads[padKey{row, col}], c)
	}
	switch r.instrument {
	case InstrumentDrums:
		for i := 0; i < DrumTracks; i++ {
			for j := 0; j < Steps; j++ {
				paint(i, j, bool(song.Drums.Pattern[i][j]), p.Drums)
			}
		}
	case InstrumentBass:
		for i := 0; i < BassLevels; i++ {
			for j := 0; j < Steps; j++ {
				paint(i, j, bassLit(song.Bass.Pattern[j], i), p.Bass)
			}
		}
	case InstrumentMelody:
		for i := 0; i < MelodyNotes; i++ {
			for j := 0; j < MelodySteps; j++ {
				v := song.Melody.Pattern[r.melodyBar][j]
				paint(i, j, !v.IsRest() && int(v) == i, p.Melody)
			}
		}
	}
}

// bassLit reports whether row lies on the bar drawn from the center row (4)
// to the step's level.
func bassLit(step BassStep, row int) bool {
	if step.IsRest() {
		return false
	}
	v := int(step)
	return (v <= 4 && row >= v && row <= 4) || (v >= 4 && row <= v && row >= 4)
}
