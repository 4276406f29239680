package stage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LoadingManager tracks outstanding asset loads shared by every scene and
// reports when all of them have finished.
type LoadingManager struct {
	loaded int
	total  int

	onStart    func(url string, loaded, total int)
	onLoad     func()
	onProgress func(url string, loaded, total int)
	onError    func(url string, err error)

	logger *zap.Logger
}

// NewLoadingManager creates a manager with no callbacks. A nil logger is
// replaced by a no-op logger.
func NewLoadingManager(logger *zap.Logger) *LoadingManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoadingManager{logger: logger}
}

// OnStart sets the callback run when the first of a batch of items starts.
func (l *LoadingManager) OnStart(fn func(url string, loaded, total int)) { l.onStart = fn }

// OnLoad sets the callback run when every started item has ended. It
// replaces any earlier callback.
func (l *LoadingManager) OnLoad(fn func()) { l.onLoad = fn }

// OnProgress sets the callback run after each item ends.
func (l *LoadingManager) OnProgress(fn func(url string, loaded, total int)) { l.onProgress = fn }

// OnError sets the callback run when an item fails.
func (l *LoadingManager) OnError(fn func(url string, err error)) { l.onError = fn }

// Loading reports whether items are outstanding.
func (l *LoadingManager) Loading() bool {
	return l.loaded < l.total
}

// Progress returns the number of ended and started items of the current batch.
func (l *LoadingManager) Progress() (loaded, total int) {
	return l.loaded, l.total
}

// ItemStart records that url began loading.
func (l *LoadingManager) ItemStart(url string) {
	if !l.Loading() {
		l.loaded, l.total = 0, 0
	}
	l.total++
	if l.total-l.loaded == 1 && l.onStart != nil {
		l.onStart(url, l.loaded, l.total)
	}
}

// ItemEnd records that url finished, successfully or not. The batch
// completes when every started item has ended.
func (l *LoadingManager) ItemEnd(url string) {
	if !l.Loading() {
		return
	}
	l.loaded++
	if l.onProgress != nil {
		l.onProgress(url, l.loaded, l.total)
	}
	if l.loaded == l.total {
		l.logger.Debug("assets loaded", zap.Int("count", l.total))
		if l.onLoad != nil {
			l.onLoad()
		}
	}
}

// ItemError records that url failed. ItemEnd must still be called.
func (l *LoadingManager) ItemError(url string, err error) {
	l.logger.Warn("asset failed", zap.String("url", url), zap.Error(err))
	if l.onError != nil {
		l.onError(url, err)
	}
}

// ImageLoader decodes PNG and JPEG files from FS into ebiten images, reporting
// to Manager.
type ImageLoader struct {
	FS      fs.FS
	Manager *LoadingManager
}

// Load decodes url and hands the result to onLoad, or the error to onError.
// Either callback may be nil.
func (il *ImageLoader) Load(url string, onLoad func(*ebiten.Image), onError func(error)) {
	il.start(url)
	img, err := il.decode(url)
	if err != nil {
		il.fail(url, err)
		if onError != nil {
			onError(err)
		}
		il.end(url)
		return
	}
	eimg := ebiten.NewImageFromImage(img)
	if onLoad != nil {
		onLoad(eimg)
	}
	il.end(url)
}

// Preload decodes every url concurrently and converts the results on the
// calling goroutine. The first decode error cancels the rest and is returned.
func (il *ImageLoader) Preload(ctx context.Context, urls ...string) (map[string]*ebiten.Image, error) {
	for _, u := range urls {
		il.start(u)
	}
	decoded := make([]image.Image, len(urls))
	errs := make([]error, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			img, err := il.decode(u)
			if err != nil {
				errs[i] = err
				return err
			}
			decoded[i] = img
			return nil
		})
	}
	waitErr := g.Wait()

	out := make(map[string]*ebiten.Image, len(urls))
	for i, u := range urls {
		switch {
		case errs[i] != nil:
			il.fail(u, errs[i])
		case decoded[i] != nil:
			out[u] = ebiten.NewImageFromImage(decoded[i])
		}
		il.end(u)
	}
	if waitErr != nil {
		return out, waitErr
	}
	return out, nil
}

func (il *ImageLoader) decode(url string) (image.Image, error) {
	if il.FS == nil {
		return nil, fmt.Errorf("stage: load %q: no file system", url)
	}
	f, err := il.FS.Open(url)
	if err != nil {
		return nil, fmt.Errorf("stage: load %q: %w", url, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("stage: decode %q: %w", url, err)
	}
	return img, nil
}

func (il *ImageLoader) start(url string) {
	if il.Manager != nil {
		il.Manager.ItemStart(url)
	}
}

func (il *ImageLoader) end(url string) {
	if il.Manager != nil {
		il.Manager.ItemEnd(url)
	}
}

func (il *ImageLoader) fail(url string, err error) {
	if il.Manager != nil {
		il.Manager.ItemError(url, err)
	}
}
