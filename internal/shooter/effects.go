package shooter

// Tone plays the hit sound. Close releases the output device.
type Tone interface {
	PlayHit()
	Close() error
}

// Voice speaks text in a language tag such as "zh-TW".
type Voice interface {
	Speak(text, lang string)
	Cancel()
}

//go:generate mockgen -source=effects.go -destination=mock/effects_mock.go -package=mock_shooter

type silent struct{}

func (silent) PlayHit()          {}
func (silent) Close() error      { return nil }
func (silent) Speak(_, _ string) {}
func (silent) Cancel()           {}

// safely runs a side-channel call, logging instead of propagating a panic.
func (r *Round) safely(what string, fn func()) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("side effect failed", "effect", what, "panic", p)
		}
	}()
	fn()
}
