package jamstage

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// PauseCode is the pickable code of the transport control.
const PauseCode = "pause"

// barCodePrefix prefixes the codes of the melody bar selectors.
const barCodePrefix = "bar"

// cellCode formats a pad code as "row:col".
func cellCode(row string, col int) string {
	return row + ":" + strconv.Itoa(col)
}

// bassLevelCode formats a bass level as its wire value, e.g. "0.375".
func bassLevelCode(level int) string {
	return strconv.FormatFloat(float64(level)*BassLevelStep, 'g', -1, 64)
}

// SelectionKind classifies what a resolved selection did.
type SelectionKind uint8

const (
	SelectionPause   SelectionKind = iota // toggled playback
	SelectionCell                         // changed one pattern cell
	SelectionBar                          // switched the edited melody bar
	SelectionIgnored                      // hit a code that means nothing for this seat
)

// SelectionEvent describes a resolved selection.
type SelectionEvent struct {
	Kind       SelectionKind
	Code       string
	Instrument Instrument
	Node       NodeID
	Distance   float32
	// Playing is the transport state after a SelectionPause.
	Playing bool
}

// PickRay tests every pickable against ray and returns the nearest hit.
func (s *Scene) PickRay(ray Ray) (*Pickable, bool) {
	s.hitBuf = s.hitBuf[:0]
	for _, p := range s.pickables {
		if p.Test(s.graph, ray) {
			s.hitBuf = append(s.hitBuf, p)
		}
	}
	hit := nearestHit(s.hitBuf)
	return hit, hit != nil
}

// Pick returns the nearest pickable under the camera's crosshair.
func (s *Scene) Pick() (*Pickable, bool) {
	return s.PickRay(s.camera.PickingRay())
}

// HandleSelection resolves a click at the crosshair. The pause control
// toggles playback through the pause callback; a pad flips exactly one cell
// of the local part in song, recolors the pads and calls onChange with the
// local instrument and the updated song. Misses do nothing.
func (s *Scene) HandleSelection(song *Song, onChange func(Instrument, *Song)) {
	hit, ok := s.Pick()
	if !ok {
		return
	}
	ev := SelectionEvent{
		Code:       hit.Code,
		Instrument: s.room.instrument,
		Node:       hit.Node,
		Distance:   hit.Distance,
	}
	if hit.Code == PauseCode {
		ev.Kind = SelectionPause
		ev.Playing = s.togglePause(hit)
	} else {
		ev.Kind = s.applyCode(hit.Code, song)
		switch ev.Kind {
		case SelectionCell:
			s.recolorPads(song)
			if onChange != nil {
				onChange(s.room.instrument, song)
			}
		case SelectionBar:
			s.recolorPads(song)
		}
	}
	s.log.Debug("selection",
		zap.String("code", ev.Code),
		zap.Uint8("kind", uint8(ev.Kind)),
		zap.Float32("distance", ev.Distance))
	if s.sink != nil {
		s.sink.EmitSelection(ev)
	}
}

// togglePause flips playback and recolors the pause control. Without a
// pause callback the transport state is left as is.
func (s *Scene) togglePause(hit *Pickable) bool {
	r := &s.room
	if s.pauseCallback == nil {
		s.log.Debug("pause selected without a pause callback")
		return r.playing
	}
	r.playing = s.pauseCallback()
	color := s.cfg.Palette.Paused
	if r.playing {
		color = s.cfg.Palette.Playing
	}
	s.graph.SetColor(hit.Node, color)
	return r.playing
}

// applyCode decodes a pad code for the local seat and mutates song.
func (s *Scene) applyCode(code string, song *Song) SelectionKind {
	if song == nil {
		return SelectionIgnored
	}
	row, colText, ok := strings.Cut(code, ":")
	col, err := strconv.Atoi(colText)
	if !ok || err != nil {
		s.log.Debug("malformed pad code", zap.String("code", code))
		return SelectionIgnored
	}
	r := &s.room
	changed := false
	switch r.instrument {
	case InstrumentDrums:
		if track, err := strconv.Atoi(row); err == nil {
			changed = song.Drums.Toggle(track, col)
		}
	case InstrumentBass:
		if v, err := strconv.ParseFloat(row, 64); err == nil {
			if level, ok := bassLevelFromValue(v); ok {
				changed = song.Bass.Select(int(level), col)
			}
		}
	case InstrumentMelody:
		if row == barCodePrefix {
			if col < 0 || col >= MelodyBars {
				break
			}
			s.selectMelodyBar(col)
			return SelectionBar
		}
		if note, err := strconv.Atoi(row); err == nil {
			changed = song.Melody.Toggle(r.melodyBar, note, col)
		}
	}
	if !changed {
		s.log.Debug("pad code ignored", zap.String("code", code), zap.Stringer("instrument", r.instrument))
		return SelectionIgnored
	}
	return SelectionCell
}

// selectMelodyBar makes bar the edited melody bar and lights its selector.
func (s *Scene) selectMelodyBar(bar int) {
	r := &s.room
	r.melodyBar = bar
	p := s.cfg.Palette
	for i, id := range r.barPads {
		c := p.OffPad
		if i == bar {
			c = p.Melody
		}
		s.graph.SetColor(id, c)
	}
}
