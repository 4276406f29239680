package music

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayportfolio/stage"
)

type fakeTrack struct {
	name    string
	playing bool
	volume  float64
	closed  bool
}

func (t *fakeTrack) Play()               { t.playing = true }
func (t *fakeTrack) Pause()              { t.playing = false }
func (t *fakeTrack) SetVolume(v float64) { t.volume = v }

func (t *fakeTrack) Close() error {
	t.closed = true
	t.playing = false
	return nil
}

type fakeOpener struct {
	opened   []*fakeTrack
	fail     map[string]error
	attempts int
}

func (o *fakeOpener) Open(sound string, _ *Analyser) (Track, error) {
	o.attempts++
	if err := o.fail[sound]; err != nil {
		return nil, err
	}
	t := &fakeTrack{name: sound}
	o.opened = append(o.opened, t)
	return t, nil
}

type storeLog struct {
	playing []bool
	loading []bool
}

func watch(s *Store) *storeLog {
	l := &storeLog{}
	s.IsPlaying.Subscribe(func(v bool) { l.playing = append(l.playing, v) })
	s.IsLoading.Subscribe(func(v bool) { l.loading = append(l.loading, v) })
	return l
}

func newStartedPlayer(t *testing.T, store *Store, opener TrackOpener) *Player {
	t.Helper()
	c, err := NewPlayer(store, opener)(stage.MonoBehaviour{})
	require.NoError(t, err)
	p := c.(*Player)
	require.NoError(t, p.Start())
	return p
}

func TestStoreActions(t *testing.T) {
	s := NewStore()
	var got []Selection
	s.Upload.Subscribe(func(v Selection) { got = append(got, v) })
	s.SetMusic("a.mp3")
	s.UnsetMusic()
	assert.Equal(t, []Selection{{Sound: "a.mp3"}, {Sound: ""}}, got)
}

func TestControlsToggleResendsSelection(t *testing.T) {
	s := NewStore()
	var events []string
	s.PlayToggle.Subscribe(func(v bool) {
		if v {
			events = append(events, "play")
		} else {
			events = append(events, "pause")
		}
	})
	s.Upload.Subscribe(func(v Selection) { events = append(events, v.Sound) })

	c := NewControls(s, "a.mp3")
	c.Toggle()
	c.Toggle()
	c.Select("b.mp3")
	assert.Equal(t, []string{"play", "a.mp3", "pause", "a.mp3", "b.mp3"}, events)
	assert.False(t, c.Playing())
	assert.Equal(t, "b.mp3", c.Selected())

	var inverted []bool
	s.Invert.Subscribe(func(v bool) { inverted = append(inverted, v) })
	c.SetInvert(true)
	assert.Equal(t, []bool{true}, inverted)
	assert.True(t, c.Inverted())
}

func TestPlayerPlaysSelection(t *testing.T) {
	store := NewStore()
	log := watch(store)
	opener := &fakeOpener{}
	p := newStartedPlayer(t, store, opener)

	store.SetMusic("a.mp3")
	require.Len(t, opener.opened, 1)
	a := opener.opened[0]
	assert.True(t, a.playing)
	assert.Equal(t, DefaultVolume, a.volume)
	assert.Equal(t, []bool{true, false}, log.loading)
	assert.Equal(t, []bool{true}, log.playing)
	assert.Equal(t, "a.mp3", p.Music())

	store.SetMusic("a.mp3")
	assert.Len(t, opener.opened, 1, "same sound is ignored")

	store.SetMusic("b.mp3")
	require.Len(t, opener.opened, 2)
	assert.True(t, a.closed)
	assert.True(t, opener.opened[1].playing)
	assert.Equal(t, 1, store.PlayToggle.Len(), "toggles are subscribed once")
}

func TestPlayerUnsetStops(t *testing.T) {
	store := NewStore()
	opener := &fakeOpener{}
	newStartedPlayer(t, store, opener)
	store.SetMusic("a.mp3")

	log := watch(store)
	store.UnsetMusic()
	assert.True(t, opener.opened[0].closed)
	assert.Len(t, opener.opened, 1, "an empty sound is not opened")
	assert.Equal(t, []bool{false}, log.playing)
	assert.Empty(t, log.loading)
}

func TestPlayerToggle(t *testing.T) {
	store := NewStore()
	opener := &fakeOpener{}
	newStartedPlayer(t, store, opener)
	log := watch(store)

	store.PlayToggle.Next(true)
	assert.Empty(t, log.playing, "no track, nothing to toggle")

	store.SetMusic("a.mp3")
	store.PlayToggle.Next(false)
	assert.False(t, opener.opened[0].playing)
	store.PlayToggle.Next(true)
	assert.True(t, opener.opened[0].playing)
	assert.Equal(t, []bool{true, false, true}, log.playing)
}

func TestPlayerOpenFailure(t *testing.T) {
	store := NewStore()
	log := watch(store)
	opener := &fakeOpener{fail: map[string]error{"broken.mp3": errors.New("corrupt")}}

	loading := stage.NewLoadingManager(nil)
	var failed []string
	loading.OnError(func(url string, err error) { failed = append(failed, url) })
	def := &stage.BasicScene{EntityDefs: []stage.EntityDef{{Key: "music", Components: []stage.ComponentDef{
		{Key: "player", New: NewPlayer(store, opener)},
	}}}}
	s := stage.NewScene(def, stage.SceneContext{Loading: loading})
	require.NoError(t, s.Awake())
	require.NoError(t, s.Start())

	store.SetMusic("broken.mp3")
	assert.Empty(t, opener.opened)
	assert.Equal(t, []bool{false}, log.playing)
	assert.Equal(t, []bool{true, false}, log.loading)
	assert.Equal(t, []string{"broken.mp3"}, failed)
	assert.False(t, loading.Loading())
}

func TestPlayerRetriesAfterOpenFailure(t *testing.T) {
	store := NewStore()
	opener := &fakeOpener{fail: map[string]error{"a.mp3": errors.New("offline")}}
	p := newStartedPlayer(t, store, opener)

	store.SetMusic("a.mp3")
	assert.Equal(t, 1, opener.attempts)
	assert.Empty(t, p.Music(), "a failed sound is not kept as the selection")

	delete(opener.fail, "a.mp3")
	controls := NewControls(store, "a.mp3")
	controls.Toggle()
	assert.Equal(t, 2, opener.attempts, "re-sending the same sound retries")
	require.Len(t, opener.opened, 1)
	assert.True(t, opener.opened[0].playing)
	assert.Equal(t, "a.mp3", p.Music())
}

func TestPlayerPublishesSpectrum(t *testing.T) {
	store := NewStore()
	p := newStartedPlayer(t, store, &fakeOpener{})
	var got []Spectrum
	store.Frequency.Subscribe(func(s Spectrum) { got = append(got, s) })

	p.Update(0)
	p.Update(16)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Frequency, DefaultFFTSize/2)
	assert.Zero(t, got[0].Average)
}

func TestPlayerClose(t *testing.T) {
	store := NewStore()
	opener := &fakeOpener{}
	p := newStartedPlayer(t, store, opener)
	store.SetMusic("a.mp3")

	require.NoError(t, p.Close())
	assert.True(t, opener.opened[0].closed)
	assert.Zero(t, store.Upload.Len())
	assert.Zero(t, store.PlayToggle.Len())

	store.SetMusic("b.mp3")
	assert.Len(t, opener.opened, 1)
}

func TestAnalyserSize(t *testing.T) {
	assert.Equal(t, 512, NewAnalyser(500).FFTSize())
	assert.Equal(t, 32, NewAnalyser(4).FFTSize())
	assert.Equal(t, 256, NewAnalyser(512).Bins())
}

func TestAnalyserSilence(t *testing.T) {
	a := NewAnalyser(DefaultFFTSize)
	s := a.Spectrum()
	assert.Len(t, s.Frequency, 256)
	for _, v := range s.Frequency {
		assert.Zero(t, v)
	}
	assert.Zero(t, s.Average)
}

func TestAnalyserPeak(t *testing.T) {
	const n, bin = DefaultFFTSize, 32
	a := NewAnalyser(n)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * bin * float64(i) / n)
	}
	a.Write(samples)

	var s Spectrum
	for i := 0; i < 60; i++ {
		s = a.Spectrum()
	}
	assert.Equal(t, uint8(255), s.Frequency[bin])
	assert.Less(t, s.Frequency[bin-2], uint8(255), "main lobe falls off")
	assert.Less(t, s.Frequency[128], uint8(64), "far bins carry almost no energy")
	assert.Greater(t, s.Average, 0.0)

	a.Reset()
	for i := 0; i < 200; i++ {
		s = a.Spectrum()
	}
	assert.Zero(t, s.Frequency[bin], "levels decay after reset")
}

func TestTapReaderSplitsFrames(t *testing.T) {
	var data bytes.Buffer
	for _, f := range [][2]int16{{16384, 16384}, {-32768, 0}, {0, 8192}} {
		require.NoError(t, binary.Write(&data, binary.LittleEndian, f))
	}
	want := append([]byte(nil), data.Bytes()...)

	a := NewAnalyser(32)
	got, err := io.ReadAll(newTapReader(iotest.OneByteReader(&data), a))
	require.NoError(t, err)
	assert.Equal(t, want, got, "bytes pass through unchanged")

	assert.Equal(t, 3, a.pos)
	assert.InDelta(t, 0.5, a.ring[0], 1e-9)
	assert.InDelta(t, -0.5, a.ring[1], 1e-9)
	assert.InDelta(t, 0.125, a.ring[2], 1e-9)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"loop.mp3", "mp3"},
		{"dir/LOOP.WAV", "wav"},
		{"a.ogg", "ogg"},
		{"a.flac", ""},
		{"noext", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, format(tt.name), tt.name)
	}
	_, err := decode("a.flac", DefaultSampleRate, bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
