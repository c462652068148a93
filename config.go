package jamstage

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Palette holds every color the scene assigns. Components are in [0, 1].
type Palette struct {
	OffPad  mgl32.Vec3 `yaml:"off_pad"`
	Drums   mgl32.Vec3 `yaml:"drums"`
	Bass    mgl32.Vec3 `yaml:"bass"`
	Melody  mgl32.Vec3 `yaml:"melody"`
	Black   mgl32.Vec3 `yaml:"black"`
	Playing mgl32.Vec3 `yaml:"playing"`
	Paused  mgl32.Vec3 `yaml:"paused"`
	Room    mgl32.Vec3 `yaml:"room"`
	Guest   mgl32.Vec3 `yaml:"guest"`
	// IndicatorShade is subtracted from an instrument color for its beat
	// indicator.
	IndicatorShade mgl32.Vec3 `yaml:"indicator_shade"`
}

// Instrument returns the seat color of instr.
func (p Palette) Instrument(instr Instrument) mgl32.Vec3 {
	switch instr {
	case InstrumentBass:
		return p.Bass
	case InstrumentMelody:
		return p.Melody
	default:
		return p.Drums
	}
}

// Indicator returns the beat indicator color of instr.
func (p Palette) Indicator(instr Instrument) mgl32.Vec3 {
	return p.Instrument(instr).Sub(p.IndicatorShade)
}

// CameraConfig configures the viewpoint.
type CameraConfig struct {
	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float32 `yaml:"field_of_view"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	// Sensitivity is degrees turned per unit of pointer delta.
	Sensitivity float32 `yaml:"sensitivity"`
}

// Config configures a Scene.
type Config struct {
	Palette Palette      `yaml:"palette"`
	Camera  CameraConfig `yaml:"camera"`
	// FadeIn is how long a seat takes to light up when a participant joins.
	FadeIn time.Duration `yaml:"fade_in"`
	// FadeOut is how long a seat takes to go dark when its participant leaves.
	FadeOut time.Duration `yaml:"fade_out"`
}

// DefaultConfig returns the stock palette and timings.
func DefaultConfig() Config {
	return Config{
		Palette: Palette{
			OffPad:         mgl32.Vec3{0.75, 0.75, 0.75},
			Drums:          mgl32.Vec3{0.87, 0.13, 0.18},
			Bass:           mgl32.Vec3{0.07, 0.53, 0.16},
			Melody:         mgl32.Vec3{0.47, 0.12, 0.78},
			Black:          mgl32.Vec3{0.1, 0.1, 0.1},
			Playing:        mgl32.Vec3{0.071, 0.478, 0.702},
			Paused:         mgl32.Vec3{0.0313, 0.2313, 0.3372},
			Room:           mgl32.Vec3{0.3, 0.3, 0.3},
			Guest:          mgl32.Vec3{0.75, 0.75, 0.75},
			IndicatorShade: mgl32.Vec3{0.13, 0.13, 0.13},
		},
		Camera: CameraConfig{
			FieldOfView: 60,
			Near:        0.1,
			Far:         100,
			Sensitivity: 0.1,
		},
		FadeIn:  1500 * time.Millisecond,
		FadeOut: 1000 * time.Millisecond,
	}
}

// LoadConfig decodes YAML over DefaultConfig, so a document only needs the
// keys it changes.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that would make the scene misbehave.
func (c Config) Validate() error {
	cam := c.Camera
	if cam.FieldOfView <= 0 || cam.FieldOfView >= 180 {
		return errors.Errorf("invalid config: field_of_view %v outside (0, 180)", cam.FieldOfView)
	}
	if cam.Near <= 0 {
		return errors.Errorf("invalid config: near %v must be positive", cam.Near)
	}
	if cam.Far <= cam.Near {
		return errors.Errorf("invalid config: far %v must exceed near %v", cam.Far, cam.Near)
	}
	if c.FadeIn < 0 || c.FadeOut < 0 {
		return errors.Errorf("invalid config: negative fade (in %v, out %v)", c.FadeIn, c.FadeOut)
	}
	return nil
}
