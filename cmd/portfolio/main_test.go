package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayportfolio/stage"
	"github.com/rayportfolio/stage/config"
	"github.com/rayportfolio/stage/music"
)

type silentOpener struct{ opened []string }

func (o *silentOpener) Open(sound string, _ *music.Analyser) (music.Track, error) {
	o.opened = append(o.opened, sound)
	return silentTrack{}, nil
}

type silentTrack struct{}

func (silentTrack) Play()             {}
func (silentTrack) Pause()            {}
func (silentTrack) SetVolume(float64) {}
func (silentTrack) Close() error      { return nil }

func TestDefaultPageMounts(t *testing.T) {
	manifest, err := loadManifest("")
	require.NoError(t, err)
	assert.Equal(t, []string{"music/glitch.mp3", "music/lofi.ogg"}, tracks(manifest.Music))

	store := music.NewStore()
	controls := provideControls(store, manifest)
	opener := &silentOpener{}
	m := stage.NewManager()
	require.NoError(t, m.Mount(manifest, provideScenes(store, controls, opener, manifest)))
	require.Len(t, m.Registrations(), 2)

	m.ResizeWindow(1280, 720)
	m.Frame(0)
	m.Frame(16)

	controls.Toggle()
	assert.Equal(t, []string{"music/glitch.mp3"}, opener.opened)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(config.Log{Level: "debug", Encoding: "json"})
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = newLogger(config.Log{Level: "loud", Encoding: "json"})
	assert.Error(t, err)
}

func TestNextTrack(t *testing.T) {
	list := []string{"a", "b", "c"}
	assert.Equal(t, "b", nextTrack(list, "a"))
	assert.Equal(t, "a", nextTrack(list, "c"))
	assert.Equal(t, "a", nextTrack(list, "zzz"))
	assert.Equal(t, "", nextTrack(nil, "a"))
	assert.Equal(t, "", firstTrack(nil))
}

func TestSpectrumBars(t *testing.T) {
	store := music.NewStore()
	c, err := newSpectrumBars(store)(stage.MonoBehaviour{})
	require.NoError(t, err)
	bars := c.(*spectrumBars)
	require.NoError(t, bars.Start())
	require.Equal(t, meterBars, bars.Export().NumChildren())

	freq := make([]uint8, 256)
	for i := 0; i < 8; i++ {
		freq[i] = 255
	}
	store.Frequency.Next(music.Spectrum{Frequency: freq})
	assert.InDelta(t, 1.0, bars.bars[0].Size, 1e-6)
	assert.InDelta(t, 2.0, bars.bars[0].Position.Y, 1e-6)
	assert.InDelta(t, 0.1, bars.bars[1].Size, 1e-6)

	store.Invert.Next(true)
	store.Frequency.Next(music.Spectrum{Frequency: freq})
	assert.InDelta(t, -2.0, bars.bars[0].Position.Y, 1e-6)
}
