package stage

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame timing and render metrics.
// Timing is only populated when the manager runs in debug mode.
type frameStats struct {
	renders  int
	rendered int
	elapsed  time.Duration
}

// debugLog writes frame stats at debug level.
func (m *Manager) debugLog(stats frameStats) {
	if !m.debug {
		return
	}
	m.logger.Debug("frame",
		zap.Int("renders", stats.renders),
		zap.Int("rendered", stats.rendered),
		zap.Int("gated", stats.renders-stats.rendered),
		zap.Duration("elapsed", stats.elapsed),
	)
}

// LastFrame returns how many registrations existed and how many rendered in
// the last Frame call.
func (m *Manager) LastFrame() (renders, rendered int) {
	return m.lastFrame.renders, m.lastFrame.rendered
}

// debugMaxGraphDepth is the scene graph depth above which a warning is logged.
const debugMaxGraphDepth = 32

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

// debugCheckGraphDepth warns when the graph is suspiciously deep or wide.
func debugCheckGraphDepth(logger *zap.Logger, root *Object) {
	var walk func(o *Object, depth int)
	maxDepth := 0
	walk = func(o *Object, depth int) {
		if depth > maxDepth {
			maxDepth = depth
		}
		if len(o.children) > debugMaxChildCount {
			logger.Warn("object has many children",
				zap.String("object", o.Name),
				zap.Int("children", len(o.children)),
				zap.Int("threshold", debugMaxChildCount),
			)
		}
		for _, c := range o.children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	if maxDepth > debugMaxGraphDepth {
		logger.Warn("scene graph is deep",
			zap.Int("depth", maxDepth),
			zap.Int("threshold", debugMaxGraphDepth),
		)
	}
}
