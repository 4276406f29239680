// Package config loads the page manifest: the window, the log level, the
// laid-out elements of the page and the renders mounted onto them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid manifest")

// Manifest is the top-level document.
type Manifest struct {
	Window   Window    `yaml:"window"`
	Log      Log       `yaml:"log"`
	Elements []Element `yaml:"elements"`
	Renders  []Render  `yaml:"renders"`
	// Music names the audio tracks offered by the visualizer, by id.
	Music map[string]string `yaml:"music,omitempty"`
}

// Window configures the game window.
type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	Debug     bool   `yaml:"debug"`
}

// Log configures the logger.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Encoding is json or console.
	Encoding string `yaml:"encoding"`
}

// Element is a box of the page. X and Y are relative to the parent element.
type Element struct {
	ID       string    `yaml:"id"`
	X        float64   `yaml:"x"`
	Y        float64   `yaml:"y"`
	Width    float64   `yaml:"width"`
	Height   float64   `yaml:"height"`
	Children []Element `yaml:"children,omitempty"`
}

// Render mounts a scene onto a canvas element. Unset flags take their
// defaults: gated, default rendering, responsive, frame time.
type Render struct {
	Name     string `yaml:"name"`
	Canvas   string `yaml:"canvas"`
	Scene    string `yaml:"scene"`
	Observer string `yaml:"observer,omitempty"`

	DisableWhenNotVisible *bool `yaml:"disableWhenNotVisible,omitempty"`
	UseDefaultRendering   *bool `yaml:"useDefaultRendering,omitempty"`
	Responsive            *bool `yaml:"responsive,omitempty"`
	UseClock              *bool `yaml:"useClock,omitempty"`

	// ClearColor is r, g, b, a in [0, 1].
	ClearColor []float64 `yaml:"clearColor,omitempty"`
}

// Gated reports whether the render pauses while hidden (default true).
func (r Render) Gated() bool { return boolOr(r.DisableWhenNotVisible, true) }

// DefaultRendering reports whether the render draws the scene graph itself
// (default true).
func (r Render) DefaultRendering() bool { return boolOr(r.UseDefaultRendering, true) }

// IsResponsive reports whether the render follows resizes (default true).
func (r Render) IsResponsive() bool { return boolOr(r.Responsive, true) }

// Clocked reports whether the render receives clock seconds (default false).
func (r Render) Clocked() bool { return boolOr(r.UseClock, false) }

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Default returns a manifest with only the window and log defaults set.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Window.Title == "" {
		m.Window.Title = "portfolio"
	}
	if m.Window.Width == 0 {
		m.Window.Width = 1280
	}
	if m.Window.Height == 0 {
		m.Window.Height = 720
	}
	if m.Log.Level == "" {
		m.Log.Level = "info"
	}
	if m.Log.Encoding == "" {
		m.Log.Encoding = "json"
	}
}

// Load decodes a YAML manifest, applies defaults and validates it.
func Load(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: empty manifest: %w", ErrInvalid)
		}
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Parse is Load over a byte slice.
func Parse(data []byte) (*Manifest, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile reads and loads the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks ids, references and sizes. All problems are reported
// together.
func (m *Manifest) Validate() error {
	var errs []error
	if m.Window.Width < 0 || m.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("config: window size %dx%d: %w", m.Window.Width, m.Window.Height, ErrInvalid))
	}
	switch m.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: log level %q: %w", m.Log.Level, ErrInvalid))
	}
	switch m.Log.Encoding {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("config: log encoding %q: %w", m.Log.Encoding, ErrInvalid))
	}

	ids := make(map[string]bool)
	var walk func(els []Element)
	walk = func(els []Element) {
		for _, el := range els {
			switch {
			case el.ID == "":
				errs = append(errs, fmt.Errorf("config: element without id: %w", ErrInvalid))
			case ids[el.ID]:
				errs = append(errs, fmt.Errorf("config: duplicate element %q: %w", el.ID, ErrInvalid))
			}
			ids[el.ID] = true
			if el.Width < 0 || el.Height < 0 {
				errs = append(errs, fmt.Errorf("config: element %q has negative size: %w", el.ID, ErrInvalid))
			}
			walk(el.Children)
		}
	}
	walk(m.Elements)

	for i, r := range m.Renders {
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("config: render %d has no name: %w", i, ErrInvalid))
		}
		if r.Scene == "" {
			errs = append(errs, fmt.Errorf("config: render %q has no scene: %w", r.Name, ErrInvalid))
		}
		if r.Observer != "" && !ids[r.Observer] {
			errs = append(errs, fmt.Errorf("config: render %q observes unknown element %q: %w", r.Name, r.Observer, ErrInvalid))
		}
		if n := len(r.ClearColor); n != 0 && n != 4 {
			errs = append(errs, fmt.Errorf("config: render %q clearColor needs 4 components, got %d: %w", r.Name, n, ErrInvalid))
		}
	}
	return errors.Join(errs...)
}
