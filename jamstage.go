package jamstage

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Instrument identifies one of the three seats of a jam session.
type Instrument uint8

const (
	InstrumentDrums  Instrument = iota // 4-track, 16-step drum grid
	InstrumentBass                     // 16-step continuous bass line
	InstrumentMelody                   // 4 bars of 8 graded melody notes
)

const instrumentCount = 3

// Instruments lists every instrument in seat order.
var Instruments = [instrumentCount]Instrument{InstrumentDrums, InstrumentBass, InstrumentMelody}

var instrumentNames = [instrumentCount]string{"drums", "bass", "melody"}

// String returns the wire name of the instrument.
func (i Instrument) String() string {
	if int(i) < len(instrumentNames) {
		return instrumentNames[i]
	}
	return fmt.Sprintf("Instrument(%d)", uint8(i))
}

// ParseInstrument resolves a wire name such as "bass".
func ParseInstrument(name string) (Instrument, bool) {
	for i, n := range instrumentNames {
		if n == name {
			return Instrument(i), true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (i Instrument) MarshalText() ([]byte, error) {
	if int(i) >= len(instrumentNames) {
		return nil, fmt.Errorf("jamstage: unknown instrument %d", uint8(i))
	}
	return []byte(instrumentNames[i]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Instrument) UnmarshalText(text []byte) error {
	v, ok := ParseInstrument(string(text))
	if !ok {
		return fmt.Errorf("jamstage: unknown instrument %q", text)
	}
	*i = v
	return nil
}

// Axis vectors used when composing local transforms.
var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// Drawable is the renderer's view of one mesh-bearing node.
type Drawable struct {
	Node  NodeID
	Name  string
	World mgl32.Mat4
	Color mgl32.Vec3
	Mesh  *Mesh
}
