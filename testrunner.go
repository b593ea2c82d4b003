package launcher

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a test script. Coordinates are viewport
// pixels unless Norm is set, in which case X/Y (and the drag endpoints) are
// normalized and mapped through the current origin when the step runs.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Norm   bool    `json:"norm,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"press":      true,
	"release":    true,
	"drag":       true,
	"wait":       true,
}

// ScriptRunner sequences injected pointer input and screenshots across
// frames for automated visual checks. Attach it with Screen.SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON test script of the form
//
//	{"steps": [{"action": "click", "norm": true, "x": 0.25, "y": 0.1},
//	           {"action": "wait", "frames": 10},
//	           {"action": "screenshot", "label": "clicked"}]}
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether every step has run and its input has drained.
func (r *ScriptRunner) Done() bool { return r.done }

// step advances the runner by one frame. Called from Screen.Update before
// the overlay consumes input.
func (r *ScriptRunner) step(s *Screen) {
	if r.done {
		return
	}
	ov := s.overlay
	if ov.Injecting() {
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

	pt := func(x, y float64) (float64, float64) {
		if !st.Norm {
			return x, y
		}
		p := ToPixel(s.Origin(), Norm{X: x, Y: y})
		return p.Left, p.Top
	}

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		ov.InjectClick(pt(st.X, st.Y))
	case "press":
		ov.InjectPress(pt(st.X, st.Y))
	case "release":
		ov.InjectRelease(pt(st.X, st.Y))
	case "drag":
		fx, fy := pt(st.FromX, st.FromY)
		tx, ty := pt(st.ToX, st.ToY)
		ov.InjectDrag(fx, fy, tx, ty, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !ov.Injecting() {
		r.done = true
	}
}
