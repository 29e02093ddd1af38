package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// ErrSynthClosed is returned by Resume after Close.
var ErrSynthClosed = errors.New("synth closed")

const bufferDuration = 100 * time.Millisecond

// Output is the device a Synth plays through. speakerOutput is the
// default; tests substitute a recorder.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }
func (speakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}

type synthState int

const (
	synthSuspended synthState = iota
	synthRunning
	synthFailed
	synthClosed
)

// Synth plays generated tones. It starts suspended and opens the output on
// Resume or on the first tone. Failures disable it silently.
type Synth struct {
	mu     sync.Mutex
	state  synthState
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer
	out    Output
	logger *log.Logger
}

// SynthOption configures a Synth.
type SynthOption func(*Synth)

// WithOutput replaces the speaker.
func WithOutput(out Output) SynthOption {
	return func(s *Synth) { s.out = out }
}

// WithLogger sets the logger used for degraded-audio warnings.
func WithLogger(l *log.Logger) SynthOption {
	return func(s *Synth) { s.logger = l }
}

// NewSynth creates a suspended synth. volume is linear in [0, 1].
func NewSynth(sampleRate int, volume float64, opts ...SynthOption) *Synth {
	s := &Synth{
		rate:   beep.SampleRate(sampleRate),
		volume: volume,
		mixer:  &beep.Mixer{},
		out:    speakerOutput{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resume opens the output. It is a no-op when already running.
func (s *Synth) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumeLocked()
}

func (s *Synth) resumeLocked() error {
	switch s.state {
	case synthRunning:
		return nil
	case synthClosed:
		return ErrSynthClosed
	case synthFailed:
		return errors.New("audio output unavailable")
	}
	if err := s.out.Init(s.rate, s.rate.N(bufferDuration)); err != nil {
		s.state = synthFailed
		return fmt.Errorf("failed to open audio output: %w", err)
	}
	s.out.Play(s.mixer)
	s.state = synthRunning
	return nil
}

// PlayHit plays the laser tone. Errors are logged, never returned.
func (s *Synth) PlayHit() {
	s.Play(LaserTone)
}

// Play starts spec on the mixer, resuming the output if needed.
func (s *Synth) Play(spec ToneSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == synthSuspended {
		if err := s.resumeLocked(); err != nil {
			s.logger.Warn("audio disabled", "err", err)
			return
		}
	}
	if s.state != synthRunning {
		return
	}

	tone := s.withVolume(NewTone(spec, s.rate))
	s.out.Lock()
	s.mixer.Add(tone)
	s.out.Unlock()
}

func (s *Synth) withVolume(st beep.Streamer) beep.Streamer {
	if s.volume <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(s.volume), Silent: false}
}

// Close releases the output. Safe to call more than once.
func (s *Synth) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == synthRunning {
		s.out.Lock()
		s.mixer.Clear()
		s.out.Unlock()
		s.out.Close()
	}
	s.state = synthClosed
	return nil
}
