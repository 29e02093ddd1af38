package audio

// Nop is a silent tone synth and speech engine for hosts without audio,
// such as SSH sessions.
type Nop struct{}

func (Nop) PlayHit() {}

func (Nop) Close() error { return nil }

func (Nop) Speak(_, _ string) {}

func (Nop) Cancel() {}
