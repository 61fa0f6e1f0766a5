package tactile

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a touch script.
type scriptStep struct {
	Action string   `json:"action"`
	ID     int32    `json:"id,omitempty"`
	IDs    [2]int32 `json:"ids,omitempty"`
	Screen int32    `json:"screen,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	// Pinch geometry
	FromSpread float64 `json:"fromSpread,omitempty"`
	ToSpread   float64 `json:"toSpread,omitempty"`
	Angle      float64 `json:"angle,omitempty"`
	Rotate     float64 `json:"rotate,omitempty"`
	Frames     int     `json:"frames,omitempty"`
}

// TouchScript is a recorded sequence of touch actions, loaded from JSON:
//
//	{"steps": [
//		{"action": "tap", "id": 1, "x": 100, "y": 200},
//		{"action": "wait", "frames": 30},
//		{"action": "drag", "id": 2, "fromX": 10, "fromY": 10, "toX": 200, "toY": 10, "frames": 12},
//		{"action": "pinch", "ids": [3, 4], "x": 300, "y": 300, "fromSpread": 50, "toSpread": 120, "frames": 20}
//	]}
//
// Actions are down, move, up, tap, drag, pinch, and wait.
type TouchScript struct {
	Steps []scriptStep `json:"steps"`
}

// LoadTouchScript parses a JSON touch script.
func LoadTouchScript(jsonData []byte) (*TouchScript, error) {
	var script TouchScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse touch script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse touch script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "down", "move", "up", "tap", "drag", "pinch", "wait":
		default:
			return nil, fmt.Errorf("parse touch script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &script, nil
}

// Len returns the number of steps.
func (s *TouchScript) Len() int { return len(s.Steps) }

// ScriptRunner plays a TouchScript through an Injector one frame at a time.
type ScriptRunner struct {
	script    *TouchScript
	in        *Injector
	cursor    int
	waitCount int
	done      bool
}

// NewScriptRunner creates a runner that plays script into in.
func NewScriptRunner(script *TouchScript, in *Injector) *ScriptRunner {
	return &ScriptRunner{script: script, in: in}
}

// Done reports whether all steps have been executed and their touches
// delivered.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step() {
	if r.done {
		return
	}
	// Let queued frames drain before starting the next step.
	if r.in.Pending() > 0 {
		r.in.Step()
		r.checkDone()
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.in.Step()
		r.checkDone()
		return
	}
	if r.cursor >= len(r.script.Steps) {
		r.done = true
		return
	}

	st := r.script.Steps[r.cursor]
	r.cursor++
	r.enqueue(st)
	r.in.Step()
	r.checkDone()
}

// Run steps until the script is done and returns the number of frames it
// took.
func (r *ScriptRunner) Run() int {
	frames := 0
	for !r.done {
		r.Step()
		frames++
	}
	return frames
}

func (r *ScriptRunner) checkDone() {
	if r.cursor >= len(r.script.Steps) && r.waitCount == 0 && r.in.Pending() == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) enqueue(st scriptStep) {
	pos := Vec2{st.X, st.Y}
	single := func(state TouchState) TouchFrame {
		return TouchFrame{{ID: st.ID, Screen: st.Screen, State: state, Position: pos}}
	}
	switch st.Action {
	case "down":
		r.in.Enqueue(single(TouchDown))
	case "move":
		r.in.Enqueue(single(TouchMoved))
	case "up":
		r.in.Enqueue(single(TouchUp))
	case "tap":
		r.in.Enqueue(SyntheticTap(st.ID, st.Screen, pos)...)
	case "drag":
		r.in.Enqueue(SyntheticDrag(st.ID, st.Screen,
			Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, st.Frames)...)
	case "pinch":
		r.in.Enqueue(SyntheticPinch(st.IDs, st.Screen, pos,
			st.FromSpread, st.ToSpread, st.Angle, st.Rotate, st.Frames)...)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
}
