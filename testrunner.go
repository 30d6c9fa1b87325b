package pixelgrid

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// scriptStep is a single action in a grid script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

var errNoSteps = errors.New("no steps")

// TestRunner sequences injected input, resizes and screenshots across ticks
// for automated runs. Attach to a Grid via SetTestRunner.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON script and returns a TestRunner ready to be
// attached to a Grid via SetTestRunner.
//
//	{"steps": [
//	  {"action": "move", "x": 120, "y": 80},
//	  {"action": "wait", "frames": 10},
//	  {"action": "screenshot", "label": "hovered"},
//	  {"action": "click", "x": 120, "y": 80}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", errNoSteps)
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "screenshot", "click", "tap", "move", "path", "leave", "wait":
		case "resize":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("parse test script: step %d: resize needs width and height", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: s.Steps}, nil
}

// LoadTestScriptFile reads and parses a script file.
func LoadTestScriptFile(path string) (*TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test script: %w", err)
	}
	return LoadTestScript(data)
}

// SetTestRunner attaches a TestRunner to the grid. The runner's step method
// is called from Grid.Update before input is processed each tick. Attaching
// a runner switches the grid to scripted input.
func (g *Grid) SetTestRunner(runner *TestRunner) {
	g.testRunner = runner
	g.scripted = runner != nil
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick. Called from Grid.Update.
func (r *TestRunner) step(g *Grid) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
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
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "tap":
		g.InjectTap(st.X, st.Y)
	case "move":
		g.InjectMove(st.X, st.Y)
	case "path":
		g.InjectPath(st.X, st.Y, st.ToX, st.ToY, st.Frames)
	case "leave":
		g.InjectLeave()
	case "resize":
		// In a window the next Layout call picks up the new size.
		if g.resizeWindow != nil {
			g.resizeWindow(int(st.Width), int(st.Height))
			break
		}
		if err := g.Resize(Viewport{W: st.Width, H: st.Height}); err != nil {
			g.fail(err)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
