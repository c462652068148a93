package jamstage

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Animator travel, in animator-origin units.
const (
	drumBounceHigh = 4.0
	bassBaseline   = 5.0
	bassRestDepth  = 0.25
	melodyRestZ    = 1.5
	melodyLeft     = -8.0
	melodyNoteGap  = 1.6
	melodyBase     = 1.5
	melodyBarRise  = 2.25
)

// BeatUpdate advances the beat indicator to beat of bar and schedules the
// animator tracks that carry the music until the next beat. timeBetween is
// the duration of one beat. Out-of-range positions and an unbuilt scene are
// ignored.
func (s *Scene) BeatUpdate(beat, bar int, timeBetween time.Duration, song *Song) {
	r := &s.room
	if !r.built || song == nil || beat < 0 || beat >= Steps || bar < 0 || bar >= MelodyBars {
		return
	}
	s.moveBeatIndicator(beat, bar)

	next := (beat + 1) % Steps
	quarter := timeBetween / 4
	s.scheduleDrums(song, beat, next, quarter)
	s.scheduleBass(song, beat, next, timeBetween)
	if beat%2 == 0 {
		s.scheduleMelody(song, beat, bar, quarter)
	}
}

func (s *Scene) moveBeatIndicator(beat, bar int) {
	g := s.graph
	r := &s.room
	ind := r.beatIndicator
	g.ResetLocal(ind)
	switch r.instrument {
	case InstrumentDrums:
		g.Rotate(ind, -drumStepAngle*float32(beat), AxisY)
	case InstrumentBass:
		x := float32(-bassHalf + bassColumn*float64(beat+1))
		g.Translate(ind, mgl32.Vec3{x, surfaceHeight, 0})
		g.Rotate(ind, surfaceTilt, AxisX)
	case InstrumentMelody:
		x := float32(-melodyHalf + melodyColumn*float64(beat/2+1))
		g.Translate(ind, mgl32.Vec3{0, surfaceHeight, 0})
		g.Rotate(ind, surfaceTilt, AxisX)
		g.Translate(ind, mgl32.Vec3{x, 0, 0})
		if r.melodyBar == bar {
			g.SetColor(ind, s.cfg.Palette.Indicator(InstrumentMelody))
		} else {
			g.SetColor(ind, s.cfg.Palette.Black)
		}
	}
}

// scheduleDrums drops the animator of every track hit on this beat, and
// raises it again during the last quarter if the track hits on the next.
func (s *Scene) scheduleDrums(song *Song, beat, next int, quarter time.Duration) {
	for i := 0; i < DrumTracks; i++ {
		anim := s.room.drumAnimators[i]
		x := drumAnimatorX(i)
		up := mgl32.Vec3{x, drumBounceHigh, 0}
		down := mgl32.Vec3{x, -drumBounceHigh, 0}
		if song.Drums.Pattern[i][beat] {
			s.AddTrack(NewTrack(fmt.Sprintf("drumsBeat_%d", i), anim, PropertyPosition,
				up, down, quarter*3, 0))
		}
		if song.Drums.Pattern[i][next] {
			s.AddTrack(NewTrack(fmt.Sprintf("drumsPreBeat_%d", i), anim, PropertyPosition,
				down, up, quarter, quarter*3))
		}
	}
}

// scheduleBass glides the bass bar between this beat's level and the next,
// sinking it back into the wall on rests.
func (s *Scene) scheduleBass(song *Song, beat, next int, timeBetween time.Duration) {
	anim := s.room.bassAnimator
	v, n := song.Bass.Pattern[beat], song.Bass.Pattern[next]
	if v.IsRest() && n.IsRest() {
		s.graph.ResetLocal(anim)
		s.graph.Translate(anim, mgl32.Vec3{0, 0, bassRestDepth})
		return
	}
	vy := bassBaseline + bassOffset(v)
	ny := bassBaseline + bassOffset(n)
	var from, to mgl32.Vec3
	switch {
	case v.IsRest():
		from, to = mgl32.Vec3{0, ny, bassRestDepth}, mgl32.Vec3{0, ny, 0}
	case n.IsRest():
		from, to = mgl32.Vec3{0, vy, 0}, mgl32.Vec3{0, vy, bassRestDepth}
	default:
		from, to = mgl32.Vec3{0, vy, 0}, mgl32.Vec3{0, ny, 0}
	}
	s.AddTrack(NewTrack("bassAnimator", anim, PropertyPosition, from, to, timeBetween, 0))
}

// bassOffset centers the bass levels around level 4.
func bassOffset(step BassStep) float32 {
	if step.IsRest() {
		return 0
	}
	return float32(step) - 4
}

// scheduleMelody floats the melody sphere from this half-bar's note to the
// next, wrapping across bars. It runs on even beats only.
func (s *Scene) scheduleMelody(song *Song, beat, bar int, quarter time.Duration) {
	anim := s.room.melodyAnimator
	b := beat / 2
	nb, nextBar := b+1, bar
	if nb == MelodySteps {
		nb = 0
		nextBar = (bar + 1) % MelodyBars
	}
	v := song.Melody.Pattern[bar][b]
	n := song.Melody.Pattern[nextBar][nb]
	if v.IsRest() && n.IsRest() {
		s.graph.ResetLocal(anim)
		s.graph.Translate(anim, mgl32.Vec3{0, 0, melodyRestZ})
		return
	}
	here := mgl32.Vec3{melodyX(v), melodyY(bar), 0}
	there := mgl32.Vec3{melodyX(n), melodyY(nextBar), 0}
	var from, to mgl32.Vec3
	switch {
	case v.IsRest():
		from, to = there.Add(mgl32.Vec3{0, 0, melodyRestZ}), there
	case n.IsRest():
		from, to = here, here.Add(mgl32.Vec3{0, 0, melodyRestZ})
	default:
		from, to = here, there
	}
	s.AddTrack(NewTrack("melodyAnimator", anim, PropertyPosition, from, to, quarter*8, 0))
}

func melodyX(step MelodyStep) float32 {
	if step.IsRest() {
		return 0
	}
	return melodyLeft + float32(step)*melodyNoteGap
}

func melodyY(bar int) float32 {
	return melodyBase + float32(bar)*melodyBarRise
}
