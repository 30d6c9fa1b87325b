package pixelgrid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "resize", "width": 600, "height": 800},
			{"action": "wait", "frames": 3}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Width != 600 || runner.steps[2].Height != 800 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"unknown action", `{"steps": [{"action": "drag"}]}`},
		{"resize without size", `{"steps": [{"action": "resize"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if !errors.Is(err, errNoSteps) {
		t.Errorf("err = %v, want errNoSteps", err)
	}
}

func TestLoadTestScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.json")
	if err := os.WriteFile(path, []byte(`{"steps": [{"action": "leave"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTestScriptFile(path); err != nil {
		t.Fatal(err)
	}
}

func TestRunnerStep_Click(t *testing.T) {
	g, rec := newTestGrid(t, 12, Viewport{W: 1200, H: 800}, nil)
	x, y := center(g.Tiles()[5].Rect)

	runner := &TestRunner{steps: []scriptStep{{Action: "click", X: x, Y: y}}}
	g.SetTestRunner(runner)

	// First tick: the click is queued and consumed.
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if len(rec.opened) != 1 || rec.opened[0] != g.Tiles()[5].Link {
		t.Fatalf("opened = %v, want tile 5's link once", rec.opened)
	}
	if runner.Done() {
		t.Error("runner done before the queue was observed drained")
	}
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
	if len(rec.opened) != 1 {
		t.Errorf("opened %d times, want 1", len(rec.opened))
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	g, _ := newTestGrid(t, 1, Viewport{W: 1200, H: 800}, nil)
	runner := &TestRunner{steps: []scriptStep{
		{Action: "wait", Frames: 3},
		{Action: "leave"},
	}}

	// Tick 1 executes the wait; ticks 2 and 3 count down.
	for i := 0; i < 3; i++ {
		runner.step(g)
		if runner.Done() {
			t.Fatalf("done during wait at tick %d", i+1)
		}
	}
	if runner.cursor != 1 {
		t.Fatalf("cursor = %d during wait, want 1", runner.cursor)
	}
	runner.step(g) // executes leave
	if runner.cursor != 2 {
		t.Errorf("cursor = %d, want 2", runner.cursor)
	}
}

func TestRunnerStep_Resize(t *testing.T) {
	g, _ := newTestGrid(t, 4, Viewport{W: 1200, H: 800}, nil)
	runner := &TestRunner{steps: []scriptStep{{Action: "resize", Width: 600, Height: 900}}}
	g.SetTestRunner(runner)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if g.Viewport() != (Viewport{600, 900}) || !g.Mobile() {
		t.Errorf("viewport = %v mobile = %v", g.Viewport(), g.Mobile())
	}
}

func TestRunnerStep_ResizeWindow(t *testing.T) {
	g, _ := newTestGrid(t, 4, Viewport{W: 1200, H: 800}, nil)
	var got [2]int
	g.resizeWindow = func(w, h int) { got = [2]int{w, h} }
	g.SetTestRunner(&TestRunner{steps: []scriptStep{{Action: "resize", Width: 600, Height: 900}}})
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if got != [2]int{600, 900} {
		t.Errorf("window resized to %v, want [600 900]", got)
	}
	// The layout follows the window, not the script.
	if g.Viewport() != (Viewport{1200, 800}) {
		t.Errorf("viewport = %v before the window reports its new size", g.Viewport())
	}
	g.Layout(600, 900)
	if g.Viewport() != (Viewport{600, 900}) || !g.Mobile() {
		t.Errorf("viewport = %v mobile = %v after Layout", g.Viewport(), g.Mobile())
	}
}

func TestRunHeadless_ResizeReallocatesFrame(t *testing.T) {
	g, _ := newTestGrid(t, 4, Viewport{W: 1200, H: 800}, nil)
	g.SetTestRunner(&TestRunner{steps: []scriptStep{
		{Action: "wait", Frames: 2},
		{Action: "resize", Width: 600, Height: 900},
		{Action: "wait", Frames: 2},
	}})

	var sizes [][2]int
	err := RunHeadless(g, Viewport{W: 1200, H: 800}, 20, func(_ int, frame *SoftSurface) error {
		w, h := frame.Size()
		sizes = append(sizes, [2]int{w, h})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(sizes) == 0 {
		t.Fatal("no frames")
	}
	if sizes[0] != [2]int{1200, 800} {
		t.Errorf("first frame = %v, want [1200 800]", sizes[0])
	}
	if last := sizes[len(sizes)-1]; last != [2]int{600, 900} {
		t.Errorf("last frame = %v, want [600 900]", last)
	}
}

func TestRunHeadless_Script(t *testing.T) {
	g, rec := newTestGrid(t, 4, Viewport{W: 1200, H: 800}, nil)
	dir := t.TempDir()
	g.ScreenshotDir = dir

	x, y := center(g.Tiles()[2].Rect)
	g.SetTestRunner(&TestRunner{steps: []scriptStep{
		{Action: "move", X: x, Y: y},
		{Action: "wait", Frames: 5},
		{Action: "screenshot", Label: "hovered"},
		{Action: "click", X: x, Y: y},
	}})

	frames := 0
	err := RunHeadless(g, Viewport{W: 1200, H: 800}, 100, func(int, *SoftSurface) error {
		frames++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if frames >= 100 {
		t.Error("run did not stop when the script finished")
	}
	if len(rec.opened) != 1 {
		t.Errorf("opened = %v, want one link", rec.opened)
	}
	if g.Tiles()[2].Raise == 0 {
		t.Error("hovered tile not raised")
	}
	shots, _ := filepath.Glob(filepath.Join(dir, "*_hovered.png"))
	if len(shots) != 1 {
		t.Errorf("screenshots = %v, want one", shots)
	}
}

func TestRunHeadless_NeedsSoftBackend(t *testing.T) {
	images, links := testImages(1)
	cfg := DefaultConfig()
	cfg.Links = links
	g, err := NewGrid(images, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := RunHeadless(g, Viewport{W: 100, H: 100}, 1, nil); !errors.Is(err, ErrHeadlessBackend) {
		t.Errorf("err = %v, want ErrHeadlessBackend", err)
	}
}
