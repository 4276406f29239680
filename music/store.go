package music

import "github.com/rayportfolio/stage/signal"

// Selection names the sound to play. An empty Sound stops playback.
type Selection struct {
	Sound string
}

// Spectrum is one analysis frame of the playing track.
type Spectrum struct {
	// Average is the mean of Frequency.
	Average float64
	// Frequency holds one byte-scaled magnitude per frequency bin.
	Frequency []uint8
}

// Store is the set of subjects connecting the player with the page.
type Store struct {
	Upload     *signal.Subject[Selection]
	Frequency  *signal.Subject[Spectrum]
	PlayToggle *signal.Subject[bool]
	IsPlaying  *signal.Subject[bool]
	IsLoading  *signal.Subject[bool]
	Invert     *signal.Subject[bool]
}

// NewStore returns a store with fresh subjects.
func NewStore() *Store {
	return &Store{
		Upload:     signal.New[Selection](),
		Frequency:  signal.New[Spectrum](),
		PlayToggle: signal.New[bool](),
		IsPlaying:  signal.New[bool](),
		IsLoading:  signal.New[bool](),
		Invert:     signal.New[bool](),
	}
}

// SetMusic selects sound.
func (s *Store) SetMusic(sound string) {
	s.Upload.Next(Selection{Sound: sound})
}

// UnsetMusic clears the selection, which stops the player.
func (s *Store) UnsetMusic() {
	s.Upload.Next(Selection{})
}

// Controls is the state of the play button and the track selector.
type Controls struct {
	store    *Store
	selected string
	playing  bool
	inverted bool
}

// NewControls returns controls with selected preselected and playback off.
func NewControls(store *Store, selected string) *Controls {
	return &Controls{store: store, selected: selected}
}

// Select changes the track. The player switches immediately.
func (c *Controls) Select(sound string) {
	c.selected = sound
	c.store.SetMusic(sound)
}

// Selected returns the selected track.
func (c *Controls) Selected() string { return c.selected }

// Toggle flips play and pause, then re-sends the selection so the first
// toggle starts the track.
func (c *Controls) Toggle() {
	c.playing = !c.playing
	c.store.PlayToggle.Next(c.playing)
	c.store.SetMusic(c.selected)
}

// Playing reports the requested play state.
func (c *Controls) Playing() bool { return c.playing }

// SetInvert flips the waves of the visualizer.
func (c *Controls) SetInvert(on bool) {
	c.inverted = on
	c.store.Invert.Next(on)
}

// Inverted reports the last SetInvert value.
func (c *Controls) Inverted() bool { return c.inverted }
