package grove

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action  string  `json:"action"`
	Pointer int     `json:"pointer,omitempty"`
	Pressed bool    `json:"pressed,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

var knownActions = map[string]bool{
	"press": true, "move": true, "release": true, "click": true,
	"drag": true, "touch": true, "wait": true,
}

// ScriptRunner replays scripted pointer input across frames, for automated
// gesture testing. Attach it to a Stage via SetScriptRunner.
//
//	{"steps": [
//		{"action": "touch", "pointer": 0, "x": 100, "y": 100, "pressed": true},
//		{"action": "touch", "pointer": 1, "x": 200, "y": 100, "pressed": true},
//		{"action": "touch", "pointer": 1, "x": 260, "y": 100, "pressed": true},
//		{"action": "wait", "frames": 3},
//		{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 10, "frames": 6}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadGestureScript parses a JSON gesture script and returns a ScriptRunner
// ready to be attached to a Stage via SetScriptRunner.
func LoadGestureScript(jsonData []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "touch" && !validPointer(st.Pointer) {
			return nil, fmt.Errorf("parse gesture script: step %d: pointer %d out of range", i, st.Pointer)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the stage. The runner's step
// method is called from Stage.Update before input is processed each frame.
func (s *Stage) SetScriptRunner(runner *ScriptRunner) {
	s.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Consecutive press/move/release/touch
// steps are queued together so a multi-pointer gesture can be scripted.
func (r *ScriptRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}

	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++

		switch st.Action {
		case "press":
			s.InjectPress(st.X, st.Y)
		case "move":
			s.InjectMove(st.X, st.Y)
		case "release":
			s.InjectRelease(st.X, st.Y)
		case "touch":
			s.InjectTouch(st.Pointer, st.X, st.Y, st.Pressed)
		case "click":
			s.InjectClick(st.X, st.Y)
		case "drag":
			s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
		case "wait":
			if st.Frames > 0 {
				r.waitCount = st.Frames - 1 // this frame counts as one
			}
		}
		if st.Action == "wait" || st.Action == "click" || st.Action == "drag" {
			break
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
