package stage

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rayportfolio/stage/config"
)

// SceneRegistry maps the scene names used in manifests to scene classes.
type SceneRegistry map[string]SceneClass

// Mount builds the document described by manifest and initializes every
// render in order. A failing render does not stop the others; all failures
// are returned joined.
//
// A render without a canvas id is skipped like Init without a canvas. A
// canvas id the document does not contain fails with ErrNoCanvas.
func (m *Manager) Mount(manifest *config.Manifest, scenes SceneRegistry) error {
	if manifest == nil {
		return fmt.Errorf("stage: mount: nil manifest: %w", ErrInvalidManifest)
	}
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("stage: mount: %w: %w", ErrInvalidManifest, err)
	}
	for _, el := range manifest.Elements {
		m.addElement(el, nil)
	}

	var errs []error
	for _, r := range manifest.Renders {
		if err := m.mountRender(r, scenes); err != nil {
			m.logger.Error("render not mounted", zap.String("render", r.Name), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) addElement(el config.Element, parent *Box) {
	rect := Rect{X: el.X, Y: el.Y, Width: el.Width, Height: el.Height}
	if parent != nil {
		rect = rect.Offset(parent.Rect.X, parent.Rect.Y)
	}
	b := m.doc.NewBox(el.ID, parent, rect)
	for _, child := range el.Children {
		m.addElement(child, b)
	}
}

func (m *Manager) mountRender(r config.Render, scenes SceneRegistry) error {
	if r.Canvas == "" {
		m.logger.Warn("render has no canvas, skipped", zap.String("render", r.Name))
		return nil
	}
	class, ok := scenes[r.Scene]
	if !ok {
		return fmt.Errorf("stage: mount %q: scene %q: %w", r.Name, r.Scene, ErrUnknownScene)
	}
	canvas := m.doc.ElementByID(r.Canvas)
	if canvas == nil {
		return fmt.Errorf("stage: mount %q: canvas %q: %w", r.Name, r.Canvas, ErrNoCanvas)
	}

	opts := DefaultOptions()
	opts.DisableWhenNotVisible = r.Gated()
	opts.UseDefaultRendering = r.DefaultRendering()
	opts.Responsive = r.IsResponsive()
	opts.UseClock = r.Clocked()
	if r.Observer != "" {
		el := m.doc.ElementByID(r.Observer)
		if el == nil {
			return fmt.Errorf("stage: mount %q: observer %q: %w", r.Name, r.Observer, ErrMissingElement)
		}
		opts.ObserverElement = el
	}
	if len(r.ClearColor) == 4 {
		opts.Renderer.ClearColor = Color{R: r.ClearColor[0], G: r.ClearColor[1], B: r.ClearColor[2], A: r.ClearColor[3]}
	}
	return m.Init(InitArgs{Name: r.Name, Canvas: canvas, SceneClass: class}, WithOptions(opts))
}
