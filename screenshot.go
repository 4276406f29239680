package stage

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// DefaultScreenshotDir is where screenshots go unless WithScreenshotDir is set.
const DefaultScreenshotDir = "screenshots"

// WithScreenshotDir sets the directory screenshots are written to.
func WithScreenshotDir(dir string) ManagerOption {
	return func(m *Manager) { m.screenshotDir = dir }
}

// Screenshot queues a labeled screenshot of the composited window to be
// captured at the end of the next Game.Draw. The resulting PNG is written to
// the screenshot directory with a timestamped filename.
func (m *Manager) Screenshot(label string) {
	m.screenshotQueue = append(m.screenshotQueue, label)
}

// flushScreenshots captures the composited frame for every queued label and
// writes each as a PNG file. Called at the end of Game.Draw.
func (m *Manager) flushScreenshots(screen *ebiten.Image) {
	if len(m.screenshotQueue) == 0 {
		return
	}

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Error("screenshot dir", zap.String("dir", m.screenshotDir), zap.Error(err))
		m.screenshotQueue = m.screenshotQueue[:0]
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	img := straightAlpha(pixels, w, h)

	stamp := time.Now().Format("20060102_150405")

	for _, label := range m.screenshotQueue {
		safe := sanitizeLabel(label)
		path := fmt.Sprintf("%s/%s_%s.png", m.screenshotDir, stamp, safe)
		if err := writePNG(path, img); err != nil {
			m.logger.Error("screenshot", zap.String("path", path), zap.Error(err))
			continue
		}
		m.logger.Info("screenshot written", zap.String("path", path))
	}

	m.screenshotQueue = m.screenshotQueue[:0]
}

// straightAlpha converts premultiplied RGBA pixels, as read back from an
// ebiten image, into a straight-alpha NRGBA image.
func straightAlpha(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pixels)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = uint8(min(int(img.Pix[i+c])*255/a, 255))
		}
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
