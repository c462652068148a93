package jamstage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Pattern dimensions.
const (
	Steps       = 16 // steps per pattern for drums and bass
	DrumTracks  = 4
	BassLevels  = 9 // levels 0..8, value = level * BassLevelStep
	MelodyBars  = 4
	MelodySteps = 8
	MelodyNotes = 10 // notes 0..9
)

// BassLevelStep is the value increment between adjacent bass levels.
const BassLevelStep = 0.125

// restToken is the wire value of an empty step.
const restToken = `"-"`

// DrumStep is one cell of the drum grid. On the wire it is "x" or "-".
type DrumStep bool

// MarshalJSON implements json.Marshaler.
func (s DrumStep) MarshalJSON() ([]byte, error) {
	if s {
		return []byte(`"x"`), nil
	}
	return []byte(restToken), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *DrumStep) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"x"`:
		*s = true
	case restToken:
		*s = false
	default:
		return fmt.Errorf("jamstage: invalid drum step %s", data)
	}
	return nil
}

// BassStep is one step of the bass line: a level in [0, BassLevels) or
// BassRest. On the wire it is the level's value (level * 0.125) or "-".
type BassStep int8

// BassRest marks a silent bass step.
const BassRest BassStep = -1

// IsRest reports whether the step is silent.
func (s BassStep) IsRest() bool {
	return s < 0
}

// Value returns level * BassLevelStep. Meaningless for a rest.
func (s BassStep) Value() float64 {
	return float64(s) * BassLevelStep
}

// bassLevelFromValue maps a wire value back to a level.
func bassLevelFromValue(v float64) (BassStep, bool) {
	level := math.Round(v / BassLevelStep)
	if level < 0 || level >= BassLevels || math.Abs(level*BassLevelStep-v) > 1e-6 {
		return BassRest, false
	}
	return BassStep(level), true
}

// MarshalJSON implements json.Marshaler.
func (s BassStep) MarshalJSON() ([]byte, error) {
	if s.IsRest() {
		return []byte(restToken), nil
	}
	return json.Marshal(s.Value())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *BassStep) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte(restToken)) {
		*s = BassRest
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("jamstage: invalid bass step %s: %w", data, err)
	}
	level, ok := bassLevelFromValue(v)
	if !ok {
		return fmt.Errorf("jamstage: bass value %v is not a level", v)
	}
	*s = level
	return nil
}

// MelodyStep is one step of a melody bar: a note in [0, MelodyNotes) or
// MelodyRest. On the wire it is the note number or "-".
type MelodyStep int8

// MelodyRest marks a silent melody step.
const MelodyRest MelodyStep = -1

// IsRest reports whether the step is silent.
func (s MelodyStep) IsRest() bool {
	return s < 0
}

// MarshalJSON implements json.Marshaler.
func (s MelodyStep) MarshalJSON() ([]byte, error) {
	if s.IsRest() {
		return []byte(restToken), nil
	}
	return json.Marshal(int(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *MelodyStep) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte(restToken)) {
		*s = MelodyRest
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("jamstage: invalid melody step %s: %w", data, err)
	}
	if v < 0 || v >= MelodyNotes {
		return fmt.Errorf("jamstage: melody note %d out of range", v)
	}
	*s = MelodyStep(v)
	return nil
}

// DrumsPart is the drum seat: one row of steps per drum track.
type DrumsPart struct {
	User    string                      `json:"user"`
	Pattern [DrumTracks][Steps]DrumStep `json:"pattern"`
}

// Toggle flips the cell at (track, step). Tracks 2 and 3 are mutually
// exclusive: switching one on clears the other at the same step. Returns
// false if the cell is out of range.
func (p *DrumsPart) Toggle(track, step int) bool {
	if track < 0 || track >= DrumTracks || step < 0 || step >= Steps {
		return false
	}
	on := !p.Pattern[track][step]
	p.Pattern[track][step] = DrumStep(on)
	if on {
		switch track {
		case 2:
			p.Pattern[3][step] = false
		case 3:
			p.Pattern[2][step] = false
		}
	}
	return true
}

// BassPart is the bass seat.
type BassPart struct {
	User    string          `json:"user"`
	Pattern [Steps]BassStep `json:"pattern"`
}

// Select sets the step to level, or rests it if it already holds level.
// Returns false if the cell is out of range.
func (p *BassPart) Select(level, step int) bool {
	if level < 0 || level >= BassLevels || step < 0 || step >= Steps {
		return false
	}
	if p.Pattern[step] == BassStep(level) {
		p.Pattern[step] = BassRest
	} else {
		p.Pattern[step] = BassStep(level)
	}
	return true
}

// MelodyPart is the melody seat.
type MelodyPart struct {
	User    string                              `json:"user"`
	Pattern [MelodyBars][MelodySteps]MelodyStep `json:"pattern"`
}

// Toggle sets the step of bar to note, or rests it if it already holds note.
// Returns false if the cell is out of range.
func (p *MelodyPart) Toggle(bar, note, step int) bool {
	if bar < 0 || bar >= MelodyBars || note < 0 || note >= MelodyNotes || step < 0 || step >= MelodySteps {
		return false
	}
	if p.Pattern[bar][step] == MelodyStep(note) {
		p.Pattern[bar][step] = MelodyRest
	} else {
		p.Pattern[bar][step] = MelodyStep(note)
	}
	return true
}

// Song is the shared session state. The scene reads it to color controls
// and writes single-cell changes back; the host owns and distributes it.
type Song struct {
	Drums  DrumsPart  `json:"drums"`
	Bass   BassPart   `json:"bass"`
	Melody MelodyPart `json:"melody"`
}

// NewSong returns an empty song: no users, every step silent.
func NewSong() *Song {
	s := &Song{}
	for i := range s.Bass.Pattern {
		s.Bass.Pattern[i] = BassRest
	}
	for b := range s.Melody.Pattern {
		for i := range s.Melody.Pattern[b] {
			s.Melody.Pattern[b][i] = MelodyRest
		}
	}
	return s
}

// User returns the participant seated at instr, empty if the seat is free.
func (s *Song) User(instr Instrument) string {
	switch instr {
	case InstrumentDrums:
		return s.Drums.User
	case InstrumentBass:
		return s.Bass.User
	case InstrumentMelody:
		return s.Melody.User
	default:
		return ""
	}
}

// SetUser seats user at instr. An empty user frees the seat.
func (s *Song) SetUser(instr Instrument, user string) {
	switch instr {
	case InstrumentDrums:
		s.Drums.User = user
	case InstrumentBass:
		s.Bass.User = user
	case InstrumentMelody:
		s.Melody.User = user
	}
}
