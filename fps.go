package stage

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// FPSPanel displays the current FPS and TPS plus how many renders ran.
// The panel image is refreshed every ~0.5 seconds.
type FPSPanel struct {
	img        *ebiten.Image
	lastUpdate float64
}

// NewFPSPanel creates the panel. Its image is allocated on the first Update.
func NewFPSPanel() *FPSPanel {
	return &FPSPanel{lastUpdate: 0.5}
}

// Update redraws the panel when half a second has passed.
func (p *FPSPanel) Update(dt float64, renders, rendered int) {
	p.lastUpdate += dt
	if p.lastUpdate < 0.5 {
		return
	}
	p.lastUpdate = 0
	if p.img == nil {
		// 120x48 is enough for three short lines
		p.img = ebiten.NewImage(120, 48)
	}

	p.img.Clear()
	// Semi-transparent background for readability
	p.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(p.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nRenders: %d/%d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), rendered, renders))
}

// Draw composites the panel at the top left of dst.
func (p *FPSPanel) Draw(dst *ebiten.Image) {
	if p.img == nil {
		return
	}
	dst.DrawImage(p.img, nil)
}
