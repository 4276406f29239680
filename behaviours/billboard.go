package behaviours

import (
	"io/fs"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/rayportfolio/stage"
)

// Billboard exports one camera facing sprite. The image is either given up
// front or loaded from FS during Awake through the scene loading manager.
type Billboard struct {
	stage.MonoBehaviour

	sprite *stage.Object
	fsys   fs.FS
	url    string
	err    error
}

// NewBillboard returns a constructor for a billboard drawing img at pos with
// the given world size.
func NewBillboard(img *ebiten.Image, pos math32.Vector3, size float32) stage.NewComponentFunc {
	return func(base stage.MonoBehaviour) (stage.Component, error) {
		b := &Billboard{MonoBehaviour: base, sprite: stage.NewSprite("billboard", img)}
		b.sprite.Position = pos
		b.sprite.Size = size
		return b, nil
	}
}

// LoadBillboard returns a constructor for a billboard whose image is decoded
// from url in fsys. A failed load leaves the sprite without an image, which
// the renderer skips.
func LoadBillboard(fsys fs.FS, url string, pos math32.Vector3, size float32) stage.NewComponentFunc {
	return func(base stage.MonoBehaviour) (stage.Component, error) {
		b := &Billboard{MonoBehaviour: base, sprite: stage.NewSprite(url, nil), fsys: fsys, url: url}
		b.sprite.Position = pos
		b.sprite.Size = size
		return b, nil
	}
}

// Awake starts the image load, if any.
func (b *Billboard) Awake() error {
	if b.url == "" {
		return nil
	}
	var lm *stage.LoadingManager
	if s := b.Scene(); s != nil {
		lm = s.Loading()
	}
	loader := &stage.ImageLoader{FS: b.fsys, Manager: lm}
	loader.Load(b.url,
		func(img *ebiten.Image) { b.sprite.Image = img },
		func(err error) { b.err = err },
	)
	return nil
}

// Export implements stage.Exporter.
func (b *Billboard) Export() *stage.Object {
	return b.sprite
}

// Sprite returns the exported sprite.
func (b *Billboard) Sprite() *stage.Object {
	return b.sprite
}

// Err returns the load error, if the image failed to load.
func (b *Billboard) Err() error {
	return b.err
}
