package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// ErrNoSpeechBackend is returned when no speech program is installed.
var ErrNoSpeechBackend = errors.New("no speech backend found")

// defaultWordsPerMinute is the speaking rate of every supported backend at rate 1.
const defaultWordsPerMinute = 175

const queueSize = 16

// Backend is a speech program found on the host.
type Backend struct {
	Name string
	Path string
}

// backendOrder is the detection priority.
var backendOrder = []string{"espeak-ng", "espeak", "say"}

// DetectBackend searches for an installed speech program. When preferred is
// set only that program is considered.
// Priority: espeak-ng > espeak > say
func DetectBackend(preferred string) (Backend, error) {
	names := backendOrder
	if preferred != "" {
		names = []string{preferred}
	}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return Backend{Name: name, Path: path}, nil
		}
	}
	return Backend{}, ErrNoSpeechBackend
}

// Voice is one voice reported by the backend.
type Voice struct {
	Name string
	Lang string // BCP 47-ish tag as printed by the backend
}

// Runner executes a program and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

type utterance struct {
	text string
	lang string
	gen  uint64
}

// Engine speaks utterances one after another on a worker goroutine.
// Voices are listed asynchronously after construction; until they arrive
// the backend's default voice is used.
type Engine struct {
	backend Backend
	rate    float64
	run     Runner
	logger  *log.Logger

	queue chan utterance

	mu            sync.Mutex
	gen           uint64
	cancelCurrent context.CancelFunc
	voices        []Voice
	matcher       language.Matcher

	voicesReady chan struct{}
	ctx         context.Context
	stop        context.CancelFunc
	wg          sync.WaitGroup
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRunner replaces process execution.
func WithRunner(r Runner) EngineOption {
	return func(e *Engine) { e.run = r }
}

// WithSpeechLogger sets the engine logger.
func WithSpeechLogger(l *log.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine starts an engine on backend. rate scales the default speaking rate.
func NewEngine(backend Backend, rate float64, opts ...EngineOption) *Engine {
	ctx, stop := context.WithCancel(context.Background())
	e := &Engine{
		backend:     backend,
		rate:        rate,
		run:         execRunner,
		logger:      log.Default(),
		queue:       make(chan utterance, queueSize),
		voicesReady: make(chan struct{}),
		ctx:         ctx,
		stop:        stop,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.wg.Add(2)
	go e.loadVoices()
	go e.worker()
	return e
}

// Speak queues text in language lang. It never blocks; when the queue is
// full the utterance is dropped.
func (e *Engine) Speak(text, lang string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	e.mu.Lock()
	u := utterance{text: text, lang: lang, gen: e.gen}
	e.mu.Unlock()

	select {
	case e.queue <- u:
	default:
		e.logger.Debug("speech queue full, dropping utterance", "lang", lang)
	}
}

// Cancel drops queued utterances and stops the one being spoken.
func (e *Engine) Cancel() {
	e.mu.Lock()
	e.gen++
	if e.cancelCurrent != nil {
		e.cancelCurrent()
	}
	e.mu.Unlock()

	for {
		select {
		case <-e.queue:
		default:
			return
		}
	}
}

// Close stops the engine and waits for its goroutines.
func (e *Engine) Close() error {
	e.Cancel()
	e.stop()
	e.wg.Wait()
	return nil
}

// Voices returns the voices known so far.
func (e *Engine) Voices() []Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Voice, len(e.voices))
	copy(out, e.voices)
	return out
}

// VoicesChanged is closed once the voice list has been loaded (or failed to load).
func (e *Engine) VoicesChanged() <-chan struct{} {
	return e.voicesReady
}

func (e *Engine) loadVoices() {
	defer e.wg.Done()
	defer close(e.voicesReady)

	out, err := e.run(e.ctx, e.backend.Path, voiceListArgs(e.backend.Name)...)
	if err != nil {
		e.logger.Debug("voice list unavailable", "backend", e.backend.Name, "err", err)
		return
	}
	voices := parseVoices(e.backend.Name, string(out))
	e.setVoices(voices)
	e.logger.Debug("voices loaded", "backend", e.backend.Name, "count", len(voices))
}

func (e *Engine) setVoices(voices []Voice) {
	tags := make([]language.Tag, 0, len(voices))
	kept := voices[:0]
	for _, v := range voices {
		tag, err := language.Parse(strings.ReplaceAll(v.Lang, "_", "-"))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		kept = append(kept, v)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.voices = kept
	if len(tags) > 0 {
		e.matcher = language.NewMatcher(tags)
	} else {
		e.matcher = nil
	}
}

// VoiceFor returns the voice best matching lang, or false when voices are
// not loaded or none is close enough.
func (e *Engine) VoiceFor(lang string) (Voice, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.matcher == nil {
		return Voice{}, false
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return Voice{}, false
	}
	_, idx, conf := e.matcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(e.voices) {
		return Voice{}, false
	}
	return e.voices[idx], true
}

func (e *Engine) worker() {
	defer e.wg.Done()
	for {
		select {
		case <-e.ctx.Done():
			return
		case u := <-e.queue:
			e.speak(u)
		}
	}
}

func (e *Engine) speak(u utterance) {
	e.mu.Lock()
	if u.gen != e.gen {
		e.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(e.ctx)
	e.cancelCurrent = cancel
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.cancelCurrent = nil
		e.mu.Unlock()
		cancel()
	}()

	voice, _ := e.VoiceFor(u.lang)
	args := speakArgs(e.backend.Name, voice, e.rate, u.text)
	if _, err := e.run(ctx, e.backend.Path, args...); err != nil && ctx.Err() == nil {
		e.logger.Debug("speech failed", "backend", e.backend.Name, "lang", u.lang, "err", err)
	}
}

func wordsPerMinute(rate float64) string {
	if rate <= 0 {
		rate = 1
	}
	return strconv.Itoa(int(defaultWordsPerMinute * rate))
}

func speakArgs(backend string, v Voice, rate float64, text string) []string {
	var args []string
	switch backend {
	case "say":
		if v.Name != "" {
			args = append(args, "-v", v.Name)
		}
		args = append(args, "-r", wordsPerMinute(rate), "--", text)
	default:
		if v.Name != "" {
			args = append(args, "-v", v.Name)
		}
		args = append(args, "-s", wordsPerMinute(rate), "--", text)
	}
	return args
}

func voiceListArgs(backend string) []string {
	if backend == "say" {
		return []string{"-v", "?"}
	}
	return []string{"--voices"}
}

// sayVoiceLine matches "Name  xx_YY  # sample sentence".
var sayVoiceLine = regexp.MustCompile(`^(.+?)\s+([a-z]{2,3}[_-][A-Za-z0-9]+)\s+#`)

// parseVoices reads the voice listing of a backend.
func parseVoices(backend, out string) []Voice {
	var voices []Voice
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if backend == "say" {
			m := sayVoiceLine.FindStringSubmatch(line)
			if m != nil {
				voices = append(voices, Voice{Name: strings.TrimSpace(m[1]), Lang: m[2]})
			}
			continue
		}
		// espeak: "Pty Language Age/Gender VoiceName File Other"
		if i == 0 && strings.HasPrefix(line, "Pty") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{Name: fields[1], Lang: fields[1]})
	}
	return voices
}

// String implements fmt.Stringer for log output.
func (v Voice) String() string {
	return fmt.Sprintf("%s (%s)", v.Name, v.Lang)
}
