// Package config centralizes all tunable game parameters.
package config

import "time"

// Depth space. Depth decreases toward the viewer.
const (
	MaxDepth = 2000.0 // Far plane for stars
	SpawnZ   = 1800.0 // Depth at which targets appear
	ScreenZ  = 50.0   // Viewer threshold: a target reaching it is a miss
	Focal    = 800.0  // Perspective constant: scale = Focal / depth
	MinDepth = 1.0    // Divisor floor for projection
)

// Motion. Per-frame quantities are expressed for a 60 Hz frame and scaled by
// the real frame delta.
const (
	ReferenceFPS   = 60.0
	Speed          = 1.5 * ReferenceFPS // Depth units per second
	MaxFrameDelta  = 100 * time.Millisecond
	ParticleDecay  = 0.03 // Life lost per reference frame
	BeamDecay      = 0.1  // Beam life lost per reference frame
	ShakeDamping   = 0.9  // Shake multiplier per reference frame
	ShakeCutoff    = 0.5  // Shake below this snaps to zero
	CrashShake     = 20.0 // Shake on a depth-crossing miss
	WrongShake     = 5.0  // Shake on an unmatched submit
	BurstParticles = 25
	BurstSpeed     = 20.0 // Particle velocity spread per reference frame
)

// Spawning.
const (
	MaxTargets      = 3
	SpawnCooldown   = 2000 * time.Millisecond
	OverlayDuration = 2000 * time.Millisecond
	SpawnSpreadX    = 2500.0
	SpawnSpreadY    = 1200.0
)

// Stars.
const (
	StarCount      = 400
	StarSpread     = 4000.0
	StarMaxSize    = 2.0
	StarAccentRate = 0.2 // Fraction of stars drawn cyan
)

// Target box in world units, scaled by perspective.
const (
	TargetBoxWidth  = 280.0
	TargetBoxHeight = 140.0
	TargetTextLift  = 25.0
)

// Virtual viewport. The round simulates in virtual pixels; the canvas maps
// them onto terminal cells.
const (
	VirtualWidth     = 1280
	MinVirtualHeight = 360
)

// Speech.
const (
	SpeechRate = 0.9
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Max render resolution; larger terminals are centered with a border.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Input
const (
	MaxInputLength = 48 // Runes accepted in the answer line
)
