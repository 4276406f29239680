package stage

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// script is the top-level YAML structure for a script.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

var errNoSteps = errors.New("no steps")

// ScriptRunner sequences scrolls, window resizes and pointer moves across
// frames, replaying a visit to the page. Feed it to Game through RunConfig or
// drive it headless with Replay.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	// OnMark is called for "mark" steps with the step label.
	OnMark func(label string)
}

// LoadScript parses a YAML script and returns a runner ready to step.
//
//	steps:
//	  - action: resize
//	    width: 800
//	    height: 600
//	  - action: scroll
//	    y: 400
//	  - action: wait
//	    frames: 3
func LoadScript(r io.Reader) (*ScriptRunner, error) {
	var sc script
	if err := yaml.NewDecoder(r).Decode(&sc); err != nil {
		return nil, fmt.Errorf("stage: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("stage: parse script: %w", errNoSteps)
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "scroll", "resize", "move", "sweep", "frame", "wait", "mark", "screenshot":
		default:
			return nil, fmt.Errorf("stage: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// ParseScript is LoadScript over a byte slice.
func ParseScript(data []byte) (*ScriptRunner, error) {
	return LoadScript(bytes.NewReader(data))
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Call it before Manager.Frame.
func (r *ScriptRunner) Step(m *Manager) {
	if r.done {
		return
	}
	// Wait for pending pointer samples to drain before advancing.
	if m.input.Injected() > 0 {
		return
	}
	// Count down wait frames.
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
	case "scroll":
		m.Scroll(st.Y)
	case "resize":
		m.ResizeWindow(st.Width, st.Height)
	case "move":
		m.input.InjectMove(st.X, st.Y)
	case "sweep":
		m.input.InjectSweep(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "frame":
		// Consumes this frame only.
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		m.Screenshot(st.Label)
	case "mark":
		if r.OnMark != nil {
			r.OnMark(st.Label)
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && m.input.Injected() == 0 {
		r.done = true
	}
}

// Replay runs the script headless: each frame it steps the runner, applies
// one queued pointer sample and calls Frame, advancing time by frameMs from
// start. It stops when the script is done or after maxFrames frames and
// returns the timestamp of the last frame.
func Replay(m *Manager, r *ScriptRunner, start, frameMs float64, maxFrames int) float64 {
	t := start
	for i := 0; i < maxFrames && !r.Done(); i++ {
		r.Step(m)
		m.input.popInjected()
		m.Frame(t)
		t += frameMs
	}
	return t - frameMs
}
