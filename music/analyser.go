package music

import (
	"math"
	"math/bits"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Analyser defaults, matching a web audio AnalyserNode.
const (
	DefaultFFTSize   = 512
	DefaultSmoothing = 0.8
	DefaultMinDB     = -100
	DefaultMaxDB     = -30
)

// Analyser turns the most recent FFTSize mono samples into a byte-scaled
// magnitude spectrum. Samples arrive from the audio goroutine through Write;
// Spectrum is read from the frame loop.
type Analyser struct {
	mu sync.Mutex

	size  int
	ring  []float64
	pos   int
	level []float64

	window []float64
	seq    []float64
	coeff  []complex128
	fft    *fourier.FFT

	smoothing    float64
	minDB, maxDB float64
}

// NewAnalyser creates an analyser over fftSize samples. fftSize is rounded up
// to a power of two, minimum 32.
func NewAnalyser(fftSize int) *Analyser {
	if fftSize < 32 {
		fftSize = 32
	}
	if fftSize&(fftSize-1) != 0 {
		fftSize = 1 << bits.Len(uint(fftSize))
	}
	a := &Analyser{
		size:      fftSize,
		ring:      make([]float64, fftSize),
		level:     make([]float64, fftSize/2),
		window:    make([]float64, fftSize),
		seq:       make([]float64, fftSize),
		coeff:     make([]complex128, fftSize/2+1),
		fft:       fourier.NewFFT(fftSize),
		smoothing: DefaultSmoothing,
		minDB:     DefaultMinDB,
		maxDB:     DefaultMaxDB,
	}
	for i := range a.window {
		a.window[i] = 1
	}
	window.Blackman(a.window)
	return a
}

// FFTSize returns the analysis window length.
func (a *Analyser) FFTSize() int { return a.size }

// Bins returns the number of frequency bins, half the FFT size.
func (a *Analyser) Bins() int { return a.size / 2 }

// Write appends mono samples in [-1, 1].
func (a *Analyser) Write(samples []float64) {
	a.mu.Lock()
	for _, s := range samples {
		a.ring[a.pos] = s
		a.pos = (a.pos + 1) % a.size
	}
	a.mu.Unlock()
}

// Reset zeroes the sample window. The smoothed levels decay from their
// current values on the following frames.
func (a *Analyser) Reset() {
	a.mu.Lock()
	clear(a.ring)
	a.pos = 0
	a.mu.Unlock()
}

// Spectrum analyses the current window.
func (a *Analyser) Spectrum() Spectrum {
	a.mu.Lock()
	for i := 0; i < a.size; i++ {
		a.seq[i] = a.ring[(a.pos+i)%a.size] * a.window[i]
	}
	a.mu.Unlock()

	a.fft.Coefficients(a.coeff, a.seq)

	out := make([]uint8, len(a.level))
	var sum float64
	scale := 255 / (a.maxDB - a.minDB)
	for k := range a.level {
		mag := cmplx.Abs(a.coeff[k]) / float64(a.size)
		a.level[k] = a.smoothing*a.level[k] + (1-a.smoothing)*mag
		v := 0.0
		if a.level[k] > 0 {
			v = (20*math.Log10(a.level[k]) - a.minDB) * scale
		}
		v = math.Max(0, math.Min(255, v))
		out[k] = uint8(v)
		sum += float64(out[k])
	}
	return Spectrum{Average: sum / float64(len(out)), Frequency: out}
}
