package music

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DefaultSampleRate is used when no audio context exists yet.
const DefaultSampleRate = 44100

// ErrUnsupportedFormat is returned for sounds that are not mp3, wav or ogg.
var ErrUnsupportedFormat = errors.New("music: unsupported audio format")

// EbitenOpener opens tracks from FS and plays them on an ebiten audio
// context, looping forever.
type EbitenOpener struct {
	FS      fs.FS
	Context *audio.Context
}

// NewEbitenOpener returns an opener on the current audio context, creating
// one at DefaultSampleRate if none exists. Only one context may exist per
// process.
func NewEbitenOpener(fsys fs.FS) *EbitenOpener {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(DefaultSampleRate)
	}
	return &EbitenOpener{FS: fsys, Context: ctx}
}

type stream interface {
	io.ReadSeeker
	Length() int64
}

// Open decodes sound by its extension and returns a paused looping track
// whose samples flow through a.
func (o *EbitenOpener) Open(sound string, a *Analyser) (Track, error) {
	data, err := fs.ReadFile(o.FS, sound)
	if err != nil {
		return nil, fmt.Errorf("music: open %q: %w", sound, err)
	}
	s, err := decode(sound, o.Context.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("music: decode %q: %w", sound, err)
	}
	loop := audio.NewInfiniteLoop(s, s.Length())
	p, err := o.Context.NewPlayer(newTapReader(loop, a))
	if err != nil {
		return nil, fmt.Errorf("music: player %q: %w", sound, err)
	}
	return &ebitenTrack{p: p}, nil
}

func decode(name string, sampleRate int, r io.ReadSeeker) (stream, error) {
	switch format(name) {
	case "mp3":
		return mp3.DecodeWithSampleRate(sampleRate, r)
	case "wav":
		return wav.DecodeWithSampleRate(sampleRate, r)
	case "ogg":
		return vorbis.DecodeWithSampleRate(sampleRate, r)
	}
	return nil, ErrUnsupportedFormat
}

// format maps a file name to the decoder that reads it.
func format(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".mp3":
		return "mp3"
	case ".wav", ".wave":
		return "wav"
	case ".ogg", ".oga":
		return "ogg"
	}
	return ""
}

type ebitenTrack struct {
	p *audio.Player
}

func (t *ebitenTrack) Play()               { t.p.Play() }
func (t *ebitenTrack) Pause()              { t.p.Pause() }
func (t *ebitenTrack) SetVolume(v float64) { t.p.SetVolume(v) }
func (t *ebitenTrack) Close() error        { return t.p.Close() }
