// Package stabilize smooths the per-frame classification stream for UI use:
// majority-vote debouncing of the emitted label, exponential smoothing of
// the confidence value, and the per-finger hysteresis state that keeps curl
// decisions from flickering at their thresholds.
package stabilize

import "github.com/ayusman/mudra/internal/sign"

// Config holds the stabilizer tuning knobs.
type Config struct {
	// WindowSize is how many recent raw labels the debounce window holds.
	WindowSize int
	// Consensus is the fraction of the window a label must occupy to be
	// promoted to stable (majority policy).
	Consensus float64
	// Policy selects the debounce rule: "majority" or "consecutive".
	Policy string
	// ConsecutiveK is how many identical raw labels in a row flip the
	// stable label (consecutive policy).
	ConsecutiveK int
	// Alpha is the exponential smoothing factor for confidence.
	Alpha float64
}

// DefaultConfig returns the reference stabilizer tuning.
func DefaultConfig() Config {
	return Config{
		WindowSize:   7,
		Consensus:    0.55,
		Policy:       "majority",
		ConsecutiveK: 3,
		Alpha:        0.15,
	}
}

// Output is the stabilized label and confidence for one frame.
type Output struct {
	// Label is the current stable letter, empty when none.
	Label string
	// Confidence is the exponentially smoothed confidence.
	Confidence float64
}

// Stabilizer carries all cross-frame state for one hand stream: the rolling
// label window, the last accepted stable label, the smoothed confidence,
// and the hysteresis state of each finger. It is owned by exactly one frame
// loop and is not safe for concurrent use.
type Stabilizer struct {
	cfg    Config
	policy Policy

	window   []string
	stable   string
	smoothed float64

	curls [sign.NumFingers]sign.CurlState
	thumb ThumbPlacement
}

// New creates a Stabilizer with the given configuration. Zero or negative
// fields fall back to defaults.
func New(cfg Config) *Stabilizer {
	def := DefaultConfig()
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = def.WindowSize
	}
	if cfg.Consensus <= 0 {
		cfg.Consensus = def.Consensus
	}
	if cfg.ConsecutiveK <= 0 {
		cfg.ConsecutiveK = def.ConsecutiveK
	}
	if cfg.Alpha <= 0 {
		cfg.Alpha = def.Alpha
	}

	var policy Policy
	if cfg.Policy == "consecutive" {
		policy = &ConsecutivePolicy{K: cfg.ConsecutiveK}
	} else {
		policy = &MajorityPolicy{Consensus: cfg.Consensus}
	}

	return &Stabilizer{
		cfg:    cfg,
		policy: policy,
		window: make([]string, 0, cfg.WindowSize),
	}
}

// Observe feeds one frame's raw match into the stabilizer and returns the
// stabilized output. An empty label means the matcher saw no gesture this
// frame; it still occupies a window slot so absence can vote too.
func (s *Stabilizer) Observe(label string, confidence float64) Output {
	if len(s.window) >= s.cfg.WindowSize {
		copy(s.window, s.window[1:])
		s.window = s.window[:len(s.window)-1]
	}
	s.window = append(s.window, label)

	s.stable = s.policy.Promote(s.window, s.stable)
	s.smoothed = s.smoothed*(1-s.cfg.Alpha) + confidence*s.cfg.Alpha

	return Output{Label: s.stable, Confidence: s.smoothed}
}

// ObserveNone feeds a no-detection frame. The confidence keeps decaying
// toward zero instead of freezing on the last value, so a vanished hand
// fades out rather than sticking.
func (s *Stabilizer) ObserveNone() Output {
	return s.Observe("", 0)
}

// CurlStates returns each finger's curl state from the previous frame,
// for threshold hysteresis in feature extraction.
func (s *Stabilizer) CurlStates() [sign.NumFingers]sign.CurlState {
	return s.curls
}

// SetCurlStates records this frame's curl states.
func (s *Stabilizer) SetCurlStates(curls [sign.NumFingers]sign.CurlState) {
	s.curls = curls
}

// Thumb returns the thumb placement tracker.
func (s *Stabilizer) Thumb() *ThumbPlacement {
	return &s.thumb
}

// Stable returns the current stable label without feeding a frame.
func (s *Stabilizer) Stable() string {
	return s.stable
}

// Reset clears all cross-frame state. Called on stream loss so a returning
// hand starts from a clean slate.
func (s *Stabilizer) Reset() {
	s.window = s.window[:0]
	s.stable = ""
	s.smoothed = 0
	s.curls = [sign.NumFingers]sign.CurlState{}
	s.thumb = ThumbPlacement{}
}
