package music

import (
	"encoding/binary"
	"io"
)

// bytesPerFrame is one 16-bit little-endian stereo frame, the format ebiten
// audio players read.
const bytesPerFrame = 4

// tapReader passes an audio stream through unchanged while feeding its
// samples, mixed down to mono, to an analyser.
type tapReader struct {
	src   io.Reader
	sink  *Analyser
	carry []byte
	buf   []float64
}

func newTapReader(src io.Reader, sink *Analyser) *tapReader {
	return &tapReader{src: src, sink: sink}
}

func (t *tapReader) Read(p []byte) (int, error) {
	n, err := t.src.Read(p)
	if n > 0 && t.sink != nil {
		t.feed(p[:n])
	}
	return n, err
}

func (t *tapReader) feed(b []byte) {
	if len(t.carry) > 0 {
		need := bytesPerFrame - len(t.carry)
		if len(b) < need {
			t.carry = append(t.carry, b...)
			return
		}
		t.carry = append(t.carry, b[:need]...)
		b = b[need:]
		t.buf = append(t.buf[:0], mono(t.carry))
		t.sink.Write(t.buf)
		t.carry = t.carry[:0]
	}
	t.buf = t.buf[:0]
	for len(b) >= bytesPerFrame {
		t.buf = append(t.buf, mono(b[:bytesPerFrame]))
		b = b[bytesPerFrame:]
	}
	if len(t.buf) > 0 {
		t.sink.Write(t.buf)
	}
	t.carry = append(t.carry, b...)
}

func mono(frame []byte) float64 {
	l := int16(binary.LittleEndian.Uint16(frame[0:2]))
	r := int16(binary.LittleEndian.Uint16(frame[2:4]))
	return (float64(l) + float64(r)) / 2 / 32768
}
