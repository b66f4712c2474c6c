package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
)

// DefaultFormat matches what Google Translate TTS returns (24 kHz mono)
var DefaultFormat = beep.Format{SampleRate: 24000, NumChannels: 1, Precision: 2}

const resampleQuality = 4

// SegmentKind tells speech and silence apart in a buffer timeline
type SegmentKind int

const (
	SegmentSpeech SegmentKind = iota
	SegmentPause
)

// Segment is one appended piece of a buffer
type Segment struct {
	Kind    SegmentKind
	Samples int
}

// Buffer is an appendable PCM buffer with a fixed format.
// It keeps the timeline of what was appended next to the samples.
type Buffer struct {
	buf      *beep.Buffer
	segments []Segment
}

// NewBuffer creates an empty buffer
func NewBuffer(format beep.Format) *Buffer {
	return &Buffer{buf: beep.NewBuffer(format)}
}

// Format returns the buffer sample format
func (b *Buffer) Format() beep.Format {
	return b.buf.Format()
}

// AppendClip drains s into the buffer, resampling it when its rate differs
func (b *Buffer) AppendClip(s beep.Streamer, format beep.Format) error {
	var src beep.Streamer = s
	if format.SampleRate != b.Format().SampleRate {
		src = beep.Resample(resampleQuality, format.SampleRate, b.Format().SampleRate, s)
	}
	before := b.buf.Len()
	b.buf.Append(src)
	if err := s.Err(); err != nil {
		return fmt.Errorf("read clip: %w", err)
	}
	b.segments = append(b.segments, Segment{Kind: SegmentSpeech, Samples: b.buf.Len() - before})
	return nil
}

// AppendSilence appends d of silence
func (b *Buffer) AppendSilence(d time.Duration) {
	n := 0
	if d > 0 {
		n = b.Format().SampleRate.N(d)
	}
	before := b.buf.Len()
	if n > 0 {
		b.buf.Append(generators.Silence(n))
	}
	b.segments = append(b.segments, Segment{Kind: SegmentPause, Samples: b.buf.Len() - before})
}

// Len returns the number of samples
func (b *Buffer) Len() int {
	return b.buf.Len()
}

// Duration returns the playback length
func (b *Buffer) Duration() time.Duration {
	return b.Format().SampleRate.D(b.buf.Len())
}

// Segments returns a copy of the appended timeline
func (b *Buffer) Segments() []Segment {
	out := make([]Segment, len(b.segments))
	copy(out, b.segments)
	return out
}

// Streamer returns a streamer over the whole buffer
func (b *Buffer) Streamer() beep.StreamSeeker {
	return b.buf.Streamer(0, b.buf.Len())
}
