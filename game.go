package stage

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Resizable lets the user resize the window.
	Resizable bool
	// ScrollSpeed is the page distance per wheel notch. Zero means 40.
	ScrollSpeed float64
	// Script, when set, is stepped every frame. The game ends when it is done
	// and ExitOnScriptEnd is set.
	Script          *ScriptRunner
	ExitOnScriptEnd bool
}

// Game adapts a Manager to ebiten.Game. Update drives the shared frame loop;
// Draw composites every canvas surface at its page position.
type Game struct {
	m      *Manager
	cfg    RunConfig
	start  time.Time
	w, h   int
	fps    *FPSPanel
	logger *zap.Logger
}

// NewGame wraps m. The frame clock starts with the first Update.
func NewGame(m *Manager, cfg RunConfig) *Game {
	if cfg.ScrollSpeed == 0 {
		cfg.ScrollSpeed = 40
	}
	g := &Game{m: m, cfg: cfg, logger: m.Logger()}
	if m.Debug() {
		g.fps = NewFPSPanel()
	}
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.start.IsZero() {
		g.start = time.Now()
	}
	if g.cfg.Script != nil {
		g.cfg.Script.Step(g.m)
		if g.cfg.ExitOnScriptEnd && g.cfg.Script.Done() {
			g.logger.Info("script finished")
			return ebiten.Termination
		}
	}
	g.m.Input().Poll()
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.m.Scroll(g.m.Document().Viewport().Y - dy*g.cfg.ScrollSpeed)
	}

	t := float64(time.Since(g.start)) / float64(time.Millisecond)
	g.m.Frame(t)

	if g.fps != nil {
		renders, rendered := g.m.LastFrame()
		g.fps.Update(1/float64(ebiten.TPS()), renders, rendered)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	vp := g.m.Document().Viewport()
	var op ebiten.DrawImageOptions
	for _, r := range g.m.Registrations() {
		s, ok := r.Renderer().(Surfacer)
		if !ok {
			continue
		}
		img := s.Surface()
		if img == nil {
			continue
		}
		b := r.Canvas().Bounds()
		if !b.Intersects(vp) {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Translate(b.X-vp.X, b.Y-vp.Y)
		screen.DrawImage(img, &op)
	}
	if g.fps != nil {
		g.fps.Draw(screen)
	}
	g.m.flushScreenshots(screen)
}

// Layout implements ebiten.Game. A change of the outside size resizes the
// viewport and every responsive registration.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.m.ResizeWindow(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives m until the window closes or the script ends.
func Run(m *Manager, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("stage: run: window size must be positive")
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	err := ebiten.RunGame(NewGame(m, cfg))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
