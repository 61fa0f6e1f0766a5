package tactile

import (
	"testing"
	"time"
)

func TestLoadTouchScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "tap", "id": 1, "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "drag", "id": 2, "fromX": 10, "fromY": 10, "toX": 50, "toY": 10, "frames": 5},
			{"action": "pinch", "ids": [3, 4], "x": 50, "y": 50, "fromSpread": 10, "toSpread": 20, "frames": 4}
		]
	}`)

	script, err := LoadTouchScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script.Len() != 4 {
		t.Fatalf("steps = %d, want 4", script.Len())
	}
	if st := script.Steps[0]; st.Action != "tap" || st.ID != 1 || st.X != 100 || st.Y != 200 {
		t.Errorf("step 0 = %+v", st)
	}
	if st := script.Steps[2]; st.Frames != 5 || st.ToX != 50 {
		t.Errorf("step 2 = %+v", st)
	}
	if st := script.Steps[3]; st.IDs != [2]int32{3, 4} || st.ToSpread != 20 {
		t.Errorf("step 3 = %+v", st)
	}
}

func TestLoadTouchScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"no steps", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "screenshot"}]}`},
	}
	for _, tt := range tests {
		if _, err := LoadTouchScript([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestScriptRunnerDoubleTap(t *testing.T) {
	m, _, root := newTestManager()
	s := addNode(root, "s", 0, 0, 200, 200)
	tap := NewTapGesture(TapConfig{})
	var seen []GestureState
	tap.OnUpdate = func(g *TapGesture) { seen = append(seen, g.State()) }
	m.Add(tap, s)

	script, err := LoadTouchScript([]byte(`{"steps": [
		{"action": "tap", "id": 1, "x": 20, "y": 20},
		{"action": "wait", "frames": 5},
		{"action": "tap", "id": 2, "x": 25, "y": 20}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner := NewScriptRunner(script, NewInjector(m))
	frames := runner.Run()

	if !runner.Done() {
		t.Error("runner should be done")
	}
	// tap (2) + wait (5) + tap (2)
	if frames != 9 {
		t.Errorf("frames = %d, want 9", frames)
	}
	want := []GestureState{StateEnded, StateDoubleTapped}
	if !statesEqual(seen, want) {
		t.Errorf("updates = %v, want %v", seen, want)
	}
}

func TestScriptRunnerRawSteps(t *testing.T) {
	m, _, root := newTestManager()
	s := addNode(root, "s", 0, 0, 200, 200)
	long := NewLongTapGesture(LongTapConfig{MinDuration: 100 * time.Millisecond})
	fired := 0
	long.OnUpdate = func(*LongTapGesture) { fired++ }
	m.Add(long, s)

	script, err := LoadTouchScript([]byte(`{"steps": [
		{"action": "down", "id": 1, "x": 20, "y": 20},
		{"action": "move", "id": 1, "x": 22, "y": 20},
		{"action": "wait", "frames": 10},
		{"action": "up", "id": 1, "x": 22, "y": 20}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	NewScriptRunner(script, NewInjector(m)).Run()
	if fired != 1 {
		t.Errorf("long tap fired %d times, want 1", fired)
	}
	if m.IsActive() {
		t.Error("all touches should be released")
	}
}
