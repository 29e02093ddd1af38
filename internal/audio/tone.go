// Package audio implements the hit tone synthesizer and the speech engine
// used as the round's side channel.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// Ramp is an exponential transition between two strictly positive values,
// the way an audio parameter ramps between set points.
type Ramp struct {
	From, To float64
}

// At returns the value at fraction t in [0, 1] of the ramp.
func (r Ramp) At(t float64) float64 {
	if t <= 0 || r.From <= 0 || r.To <= 0 {
		return r.From
	}
	if t >= 1 {
		return r.To
	}
	return r.From * math.Pow(r.To/r.From, t)
}

// ToneSpec describes a generated tone: a frequency sweep gated by a gain envelope.
type ToneSpec struct {
	Wave      WaveType
	Frequency Ramp // Hz
	Gain      Ramp
	Duration  time.Duration
}

// LaserTone is the descending hit tone.
var LaserTone = ToneSpec{
	Wave:      WaveSaw,
	Frequency: Ramp{From: 880, To: 110},
	Gain:      Ramp{From: 0.1, To: 0.001},
	Duration:  150 * time.Millisecond,
}

// sweep generates a ToneSpec sample by sample.
type sweep struct {
	spec     ToneSpec
	rate     beep.SampleRate
	phase    float64
	position int
	duration int
}

// NewTone creates a streamer that plays spec once at rate.
func NewTone(spec ToneSpec, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		spec:     spec,
		rate:     rate,
		duration: rate.N(spec.Duration),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.duration)

		var val float64
		switch s.spec.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			if s.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (s.phase - 0.5)
		}
		val *= s.spec.Gain.At(t)

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		s.phase += s.spec.Frequency.At(t) / float64(s.rate)
		s.phase = s.phase - math.Floor(s.phase) // Keep in [0, 1)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
