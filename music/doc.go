// Package music holds the non-visual half of the sound wave visualizer: a
// store of signal subjects shared with the page controls, and a Player
// component that plays the selected track and publishes its spectrum every
// frame.
package music
