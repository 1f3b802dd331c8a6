// Package recognize wires the per-frame pipeline together: landmarks in,
// stabilized letter and confidence out.
package recognize

import (
	"fmt"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/sign"
	"github.com/ayusman/mudra/internal/stabilize"
)

// Result is the per-frame output record consumed by the UI. Label is nil
// while no stable letter is recognized. FingerStates is a human-readable
// diagnostic of the current hand, for live feedback only; matching never
// reads it.
type Result struct {
	Label        *string  `json:"label"`
	Confidence   float64  `json:"confidence"`
	FingerStates []string `json:"fingerStates"`
}

// Recognizer runs the frame pipeline for a single hand stream. It owns the
// only cross-frame state (the stabilizer) and must be driven by exactly one
// goroutine, one frame at a time.
type Recognizer struct {
	thresholds sign.Thresholds
	scorer     sign.Scorer
	stab       *stabilize.Stabilizer
}

// New creates a Recognizer from its three collaborators.
func New(thresholds sign.Thresholds, scorer sign.Scorer, stab *stabilize.Stabilizer) *Recognizer {
	return &Recognizer{
		thresholds: thresholds,
		scorer:     scorer,
		stab:       stab,
	}
}

// NewDefault creates a Recognizer over the built-in library with reference
// tuning.
func NewDefault() *Recognizer {
	return New(
		sign.DefaultThresholds(),
		sign.NewHybridScorer(sign.DefaultLibrary(), 0.6),
		stabilize.New(stabilize.DefaultConfig()),
	)
}

// Process runs one frame through the pipeline. Only the first detected
// hand is consumed. No hands, or a hand with an invalid landmark set, is
// the routine no-detection case: the stabilizer keeps decaying and the
// result degrades toward a nil label instead of returning an error.
func (r *Recognizer) Process(hands []detector.HandLandmarks) Result {
	if len(hands) == 0 {
		return r.ProcessNone()
	}

	hand := &hands[0]
	features := sign.Extract(hand, r.thresholds, r.stab.CurlStates())
	if !features.Valid {
		return r.ProcessNone()
	}
	r.stab.SetCurlStates(features.Curls)
	thumbSide := r.stab.Thumb().Update(features.ThumbDepth)

	match := r.scorer.Match(features)

	// The tracker's own confidence in the hand scales the match: a barely
	// tracked hand should not produce a confident letter.
	raw := match.Confidence * hand.Score
	out := r.stab.Observe(match.Letter, raw)

	return Result{
		Label:        labelPtr(out.Label),
		Confidence:   out.Confidence,
		FingerStates: describeFingers(features, thumbSide),
	}
}

// ProcessNone feeds a no-detection frame. The caller is responsible for
// calling this when the frame source stops delivering hands, so confidence
// decays instead of freezing on stale state.
func (r *Recognizer) ProcessNone() Result {
	out := r.stab.ObserveNone()
	return Result{
		Label:      labelPtr(out.Label),
		Confidence: out.Confidence,
	}
}

// Reset clears all cross-frame state, for stream loss or camera restart.
func (r *Recognizer) Reset() {
	r.stab.Reset()
}

func labelPtr(label string) *string {
	if label == "" {
		return nil
	}
	return &label
}

// describeFingers renders the live feedback strings, one per finger plus
// one line per active shape predicate.
func describeFingers(f sign.Features, thumbSide stabilize.ThumbSide) []string {
	states := make([]string, 0, int(sign.NumFingers)+3)

	for finger := sign.Thumb; finger < sign.NumFingers; finger++ {
		desc := fmt.Sprintf("%s %s", finger, f.Curls[finger])
		if finger == sign.Thumb && thumbSide != stabilize.ThumbAtSide {
			desc = fmt.Sprintf("Thumb %s Fingers", thumbSide)
		}
		states = append(states, desc)
	}

	if f.Pinch {
		states = append(states, fmt.Sprintf("Thumb Touching %s", f.PinchWith))
	}
	if f.Circle {
		states = append(states, "Fingers Circled")
	}

	pairNames := [3][2]sign.Finger{
		{sign.Index, sign.Middle},
		{sign.Middle, sign.Ring},
		{sign.Ring, sign.Pinky},
	}
	for i, rel := range f.Pairs {
		if rel == sign.PairCrossed {
			states = append(states, fmt.Sprintf("%s Crossing %s", pairNames[i][0], pairNames[i][1]))
		}
	}

	return states
}
