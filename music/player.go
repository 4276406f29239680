package music

import (
	"go.uber.org/zap"

	"github.com/rayportfolio/stage"
	"github.com/rayportfolio/stage/signal"
)

// DefaultVolume is the volume a track starts at.
const DefaultVolume = 0.5

// Track is an opened, looping sound.
type Track interface {
	Play()
	Pause()
	SetVolume(v float64)
	Close() error
}

// TrackOpener opens a sound by name. Decoded samples are written to a while
// the track plays.
type TrackOpener interface {
	Open(sound string, a *Analyser) (Track, error)
}

// Player plays the sound selected through the store and publishes its
// spectrum on Store.Frequency every update.
type Player struct {
	stage.MonoBehaviour

	Store  *Store
	Opener TrackOpener
	Volume float64

	analyser *Analyser
	music    string
	track    Track
	subs     []*signal.Subscription
}

// NewPlayer returns a constructor for a player bound to store.
func NewPlayer(store *Store, opener TrackOpener) stage.NewComponentFunc {
	return func(base stage.MonoBehaviour) (stage.Component, error) {
		return &Player{
			MonoBehaviour: base,
			Store:         store,
			Opener:        opener,
			Volume:        DefaultVolume,
			analyser:      NewAnalyser(DefaultFFTSize),
		}, nil
	}
}

// Start subscribes to track selection and play toggles.
func (p *Player) Start() error {
	p.subs = append(p.subs,
		p.Store.Upload.Subscribe(p.onUpload),
		p.Store.PlayToggle.Subscribe(p.onToggle),
	)
	return nil
}

// Update publishes the current spectrum.
func (p *Player) Update(float64) {
	p.Store.Frequency.Next(p.analyser.Spectrum())
}

// Analyser returns the analyser fed by the playing track.
func (p *Player) Analyser() *Analyser { return p.analyser }

// Music returns the selected sound.
func (p *Player) Music() string { return p.music }

// Close unsubscribes from the store and closes the current track.
func (p *Player) Close() error {
	for _, s := range p.subs {
		s.Unsubscribe()
	}
	p.subs = nil
	return p.stop()
}

func (p *Player) onUpload(t Selection) {
	if t.Sound == p.music {
		return
	}
	p.music = t.Sound
	if p.music == "" {
		if err := p.stop(); err != nil {
			p.logger().Warn("closing track", zap.Error(err))
		}
		p.Store.IsPlaying.Next(false)
		return
	}
	p.play()
}

func (p *Player) onToggle(play bool) {
	if p.track == nil {
		return
	}
	if play {
		p.track.Play()
	} else {
		p.track.Pause()
		p.analyser.Reset()
	}
	p.Store.IsPlaying.Next(play)
}

func (p *Player) play() {
	p.Store.IsLoading.Next(true)
	if err := p.stop(); err != nil {
		p.logger().Warn("closing track", zap.Error(err))
	}

	lm := p.loading()
	if lm != nil {
		lm.ItemStart(p.music)
	}
	track, err := p.Opener.Open(p.music, p.analyser)
	if err != nil {
		p.logger().Error("track not opened", zap.String("sound", p.music), zap.Error(err))
		if lm != nil {
			lm.ItemError(p.music, err)
			lm.ItemEnd(p.music)
		}
		// Forget the selection so choosing the same sound again retries.
		p.music = ""
		p.Store.IsPlaying.Next(false)
		p.Store.IsLoading.Next(false)
		return
	}
	p.track = track
	track.SetVolume(p.Volume)
	track.Play()
	if lm != nil {
		lm.ItemEnd(p.music)
	}
	p.logger().Info("playing", zap.String("sound", p.music))
	p.Store.IsPlaying.Next(true)
	p.Store.IsLoading.Next(false)
}

func (p *Player) stop() error {
	if p.track == nil {
		return nil
	}
	err := p.track.Close()
	p.track = nil
	p.analyser.Reset()
	return err
}

func (p *Player) logger() *zap.Logger {
	if s := p.Scene(); s != nil {
		return s.Logger()
	}
	return zap.NewNop()
}

func (p *Player) loading() *stage.LoadingManager {
	if s := p.Scene(); s != nil {
		return s.Loading()
	}
	return nil
}
