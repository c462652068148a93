package jamstage

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a session script.
type scriptStep struct {
	Action string  `json:"action"`
	DX     float32 `json:"dx,omitempty"`
	DY     float32 `json:"dy,omitempty"`
	Width  float32 `json:"width,omitempty"`
	Height float32 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// sessionScript is the top-level JSON structure for a session script.
type sessionScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script actions.
const (
	actionLook   = "look"
	actionSelect = "select"
	actionWait   = "wait"
	actionResize = "resize"
)

// ScriptRunner replays camera moves and selections against a Scene across
// frames, for automated walkthroughs of a built room.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON session script:
//
//	{"steps": [
//	  {"action": "resize", "width": 1280, "height": 720},
//	  {"action": "look", "dx": -40, "dy": 12},
//	  {"action": "select"},
//	  {"action": "wait", "frames": 30}
//	]}
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script sessionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse session script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse session script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case actionLook, actionSelect, actionWait:
		case actionResize:
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("parse session script: step %d: resize needs a positive size", i)
			}
		default:
			return nil, fmt.Errorf("parse session script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame, executing at most one action.
// Selections go through Scene.HandleSelection with song and onChange.
func (r *ScriptRunner) Step(s *Scene, song *Song, onChange func(Instrument, *Song)) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case actionLook:
		s.CameraMovement(st.DX, st.DY)
	case actionSelect:
		s.HandleSelection(song, onChange)
	case actionResize:
		s.Resize(st.Width, st.Height)
	case actionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
