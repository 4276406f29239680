package main

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rayportfolio/stage"
	"github.com/rayportfolio/stage/behaviours"
	"github.com/rayportfolio/stage/music"
)

const (
	bubbleCount  = 24
	bubbleSpread = 12
	meterBars    = 32
)

var bubbleColors = []color.NRGBA{
	{R: 255, G: 79, B: 120, A: 200},
	{R: 64, G: 160, B: 255, A: 200},
	{R: 255, G: 214, B: 79, A: 200},
	{R: 120, G: 230, B: 170, A: 200},
}

// bubbleScene is the hero: a cloud of soft discs drifting in from below,
// with the camera following the pointer.
func bubbleScene() stage.SceneDefinition {
	cam := stage.NewPerspectiveCamera(75)
	cam.View.Position = math32.Vec3(0, 0, 20)

	rng := rand.New(rand.NewPCG(7, 11))
	images := make([]*ebiten.Image, len(bubbleColors))
	for i, c := range bubbleColors {
		images[i] = ebiten.NewImageFromImage(disc(64, c))
	}

	var comps []stage.ComponentDef
	for i := 0; i < bubbleCount; i++ {
		pos := math32.Vec3(
			(rng.Float32()*2-1)*bubbleSpread,
			(rng.Float32()*2-1)*bubbleSpread/2,
			(rng.Float32()*2-1)*bubbleSpread/2,
		)
		size := 0.5 + rng.Float32()*1.5
		comps = append(comps, stage.ComponentDef{
			Key: "bubble-" + strconv.Itoa(i),
			New: behaviours.NewBillboard(images[i%len(images)], pos, size),
		})
	}
	comps = append(comps, stage.ComponentDef{Key: "tween", New: behaviours.NewTweenIn(math32.Vec3(0, -8, 0), 1.2)})

	return &stage.BasicScene{
		EntityDefs: []stage.EntityDef{
			{Key: "bubbles", Components: comps},
			{Key: "camera", Components: []stage.ComponentDef{{Key: "panner", New: behaviours.NewCameraPanner}}},
		},
		CameraSet: map[string]stage.Camera{stage.DefaultCameraKey: cam},
	}
}

// disc draws a filled circle with a soft edge.
func disc(size int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r)
			a := math.Max(0, math.Min(1, r-d))
			if a == 0 {
				continue
			}
			px := c
			px.A = uint8(float64(c.A) * a)
			img.SetNRGBA(x, y, px)
		}
	}
	return img
}

// visualizerScene plays the selected track and shows its spectrum as a row
// of bars.
func visualizerScene(store *music.Store, controls *music.Controls, opener music.TrackOpener, tracks []string) stage.SceneClass {
	return func() stage.SceneDefinition {
		cam := stage.NewPerspectiveCamera(60)
		cam.View.Position = math32.Vec3(0, 0, 12)
		return &stage.BasicScene{
			EntityDefs: []stage.EntityDef{
				{Key: "meter", Components: []stage.ComponentDef{{Key: "bars", New: newSpectrumBars(store)}}},
				{Key: "music", Components: []stage.ComponentDef{
					{Key: "player", New: music.NewPlayer(store, opener)},
					{Key: "keys", New: newKeyControls(controls, tracks)},
				}},
			},
			CameraSet: map[string]stage.Camera{stage.DefaultCameraKey: cam},
		}
	}
}

// spectrumBars sizes one sprite per group of frequency bins.
type spectrumBars struct {
	stage.MonoBehaviour

	store  *music.Store
	group  *stage.Object
	bars   []*stage.Object
	invert bool
}

func newSpectrumBars(store *music.Store) stage.NewComponentFunc {
	return func(base stage.MonoBehaviour) (stage.Component, error) {
		pixel := ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
		b := &spectrumBars{MonoBehaviour: base, store: store, group: stage.NewGroup("bars")}
		for i := 0; i < meterBars; i++ {
			bar := stage.NewSprite("bar", pixel)
			bar.Position = math32.Vec3(float32(i)-meterBars/2+0.5, 0, 0)
			bar.Size = 0.1
			b.group.AddChild(bar)
			b.bars = append(b.bars, bar)
		}
		return b, nil
	}
}

func (b *spectrumBars) Start() error {
	b.store.Frequency.Subscribe(b.onSpectrum)
	b.store.Invert.Subscribe(func(on bool) { b.invert = on })
	return nil
}

func (b *spectrumBars) Export() *stage.Object { return b.group }

func (b *spectrumBars) onSpectrum(s music.Spectrum) {
	if len(s.Frequency) == 0 {
		return
	}
	per := max(1, len(s.Frequency)/len(b.bars))
	for i, bar := range b.bars {
		lo := i * per
		if lo >= len(s.Frequency) {
			break
		}
		hi := min(lo+per, len(s.Frequency))
		var sum int
		for _, v := range s.Frequency[lo:hi] {
			sum += int(v)
		}
		level := float32(sum) / float32(hi-lo) / 255
		bar.Size = 0.1 + level*0.9
		y := level * 2
		if b.invert {
			y = -y
		}
		bar.Position.Y = y
	}
}

// keyControls maps space to play and pause, tab to the next track and i to
// inverting the waves.
type keyControls struct {
	stage.MonoBehaviour

	controls *music.Controls
	tracks   []string
}

func newKeyControls(controls *music.Controls, tracks []string) stage.NewComponentFunc {
	return func(base stage.MonoBehaviour) (stage.Component, error) {
		return &keyControls{MonoBehaviour: base, controls: controls, tracks: tracks}, nil
	}
}

func (k *keyControls) Update(float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		k.controls.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		k.controls.Select(nextTrack(k.tracks, k.controls.Selected()))
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		k.controls.SetInvert(!k.controls.Inverted())
	}
}

// tracks returns the track files ordered by id.
func tracks(byID map[string]string) []string {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = byID[id]
	}
	return out
}

func firstTrack(byID map[string]string) string {
	if t := tracks(byID); len(t) > 0 {
		return t[0]
	}
	return ""
}

func nextTrack(tracks []string, current string) string {
	if len(tracks) == 0 {
		return ""
	}
	for i, t := range tracks {
		if t == current {
			return tracks[(i+1)%len(tracks)]
		}
	}
	return tracks[0]
}
