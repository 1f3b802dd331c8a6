package sign

import (
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/geom"
)

// CurlState is the discrete flexion state of one finger.
type CurlState int

const (
	// CurlClosed means the fingertip has collapsed inward against the palm.
	CurlClosed CurlState = iota
	// CurlFolded means the finger is curled but the tip is still net outward
	// from the wrist.
	CurlFolded
	// CurlExtended means the finger is straightened.
	CurlExtended
)

// String returns a human-readable state name for diagnostics.
func (c CurlState) String() string {
	switch c {
	case CurlExtended:
		return "Extended"
	case CurlFolded:
		return "Folded"
	}
	return "Closed"
}

// FingerThresholds are the curl decision boundaries for one finger, as
// multiples of the wrist-to-knuckle reference distance.
type FingerThresholds struct {
	// Enter is the ratio at which a finger becomes Extended.
	Enter float64
	// Exit is the looser ratio below which an Extended finger leaves the
	// state. Exit < Enter gives the boundary hysteresis so single-frame
	// noise cannot flicker the state.
	Exit float64
	// Fold separates Folded (ratio at or above) from Closed (below) once a
	// finger is not extended.
	Fold float64
}

// Thresholds are the tunable decision boundaries of the feature extractor.
// Distances in the predicate thresholds are fractions of palm size (the
// wrist to index-knuckle distance), which makes them depth-invariant.
type Thresholds struct {
	Fingers  [NumFingers]FingerThresholds
	Pinch    float64
	Circle   float64
	Together float64
	Spread   float64
}

// DefaultThresholds returns the reference tuning. The thumb is measured
// against the index-knuckle distance rather than its own base, so its band
// sits lower than the finger band.
func DefaultThresholds() Thresholds {
	t := Thresholds{
		Pinch:    0.35,
		Circle:   0.45,
		Together: 0.35,
		Spread:   0.60,
	}
	for f := Index; f < NumFingers; f++ {
		t.Fingers[f] = FingerThresholds{Enter: 1.25, Exit: 1.10, Fold: 0.85}
	}
	t.Fingers[Thumb] = FingerThresholds{Enter: 1.10, Exit: 0.95, Fold: 0.85}
	return t
}

// PairRelation describes the lateral relationship of two adjacent fingers.
type PairRelation int

const (
	PairNeutral PairRelation = iota
	PairTogether
	PairSpread
	PairCrossed
)

// Features is the per-frame output of the extractor. All cross-frame state
// (hysteresis) is injected by the caller through the prev argument of
// Extract; the extractor itself is stateless.
type Features struct {
	// Valid is false when the landmark set was rejected; all other fields
	// then hold the degenerate all-closed values.
	Valid bool

	Curls      [NumFingers]CurlState
	Ratios     [NumFingers]float64
	Directions [NumFingers]geom.Vec3 // hand-frame, unit; meaningful when Extended

	// PalmSize is the wrist to index-knuckle distance, the scale reference
	// for every predicate.
	PalmSize float64

	// ThumbDepth is the palm-normal offset of the thumb tip from the index
	// knuckle, in palm sizes. Positive is palm-side (thumb over the
	// fingers), negative is knuckle-side.
	ThumbDepth float64

	Pinch     bool
	PinchWith Finger // fingertip nearest the thumb when Pinch is set
	Circle    bool
	Pairs     [3]PairRelation // index-middle, middle-ring, ring-pinky

	// Points is the wrist-origin, palm-scaled landmark snapshot used by
	// template scoring.
	Points []geom.Vec3
}

// classifyCurl assigns the curl state for one finger given its ratio and the
// state it held last frame. Once Extended, the finger stays Extended until
// the ratio drops below the looser Exit threshold.
func classifyCurl(ratio float64, prev CurlState, th FingerThresholds) CurlState {
	enter := th.Enter
	if prev == CurlExtended {
		enter = th.Exit
	}
	switch {
	case ratio >= enter:
		return CurlExtended
	case ratio >= th.Fold:
		return CurlFolded
	default:
		return CurlClosed
	}
}

// Extract computes the full feature set for one frame. prev carries each
// finger's curl state from the previous frame for hysteresis; the zero value
// (all Closed) is correct for a fresh stream. An invalid landmark set yields
// a degenerate all-closed feature set so matching degrades to "no gesture"
// instead of erroring.
func Extract(hand *detector.HandLandmarks, th Thresholds, prev [NumFingers]CurlState) Features {
	if !hand.Valid() {
		return Features{}
	}

	world := hand.World
	wrist := world[detector.Wrist]
	palm := geom.Distance(wrist, world[detector.IndexMCP])
	if palm < 1e-10 {
		return Features{}
	}

	basis := BasisFrom(world)

	f := Features{
		Valid:    true,
		PalmSize: palm,
		Points:   hand.Normalize(),
	}

	for finger := Thumb; finger < NumFingers; finger++ {
		base := world[finger.Base()]
		tip := world[finger.Tip()]

		// The thumb's own base sits too close to the wrist for a usable
		// ratio; its reach is judged against the index knuckle instead.
		ref := world[finger.Base()]
		if finger == Thumb {
			ref = world[detector.IndexMCP]
		}

		refDist := geom.Distance(wrist, ref)
		ratio := 0.0
		if refDist > 1e-10 {
			ratio = geom.Distance(wrist, tip) / refDist
		}

		f.Ratios[finger] = ratio
		f.Curls[finger] = classifyCurl(ratio, prev[finger], th.Fingers[finger])
		f.Directions[finger] = basis.Local(tip.Sub(base).Normalize())
	}

	f.ThumbDepth = world[detector.ThumbTip].Sub(world[detector.IndexMCP]).Dot(basis.Z) / palm
	extractPredicates(&f, world, th)

	return f
}

// extractPredicates fills the pairwise-distance predicates: pinch, circle,
// and adjacent-finger together/spread/crossed relations.
func extractPredicates(f *Features, world []geom.Vec3, th Thresholds) {
	thumbTip := world[detector.ThumbTip]
	palm := f.PalmSize

	// Pinch: thumb tip within a fraction of palm size of some fingertip.
	nearest := Index
	nearestDist := geom.Distance(thumbTip, world[Index.Tip()])
	total := nearestDist
	for finger := Middle; finger < NumFingers; finger++ {
		d := geom.Distance(thumbTip, world[finger.Tip()])
		total += d
		if d < nearestDist {
			nearestDist = d
			nearest = finger
		}
	}
	if nearestDist < th.Pinch*palm {
		f.Pinch = true
		f.PinchWith = nearest
	}

	// Circle: all four fingertips gathered around the thumb tip.
	f.Circle = total/4 < th.Circle*palm

	// Adjacent pairs, ordered thumb-side first. Crossed is detected by tip
	// order along the knuckle bar: the thumb-side tip landing nearer the
	// pinky knuckle than its neighbor means the fingers have swapped.
	pinkyKnuckle := world[detector.PinkyMCP]
	pairs := [3][2]Finger{{Index, Middle}, {Middle, Ring}, {Ring, Pinky}}
	for i, pair := range pairs {
		tipA := world[pair[0].Tip()]
		tipB := world[pair[1].Tip()]
		gap := geom.Distance(tipA, tipB) / palm

		switch {
		case gap < th.Together:
			if geom.Distance(tipA, pinkyKnuckle) < geom.Distance(tipB, pinkyKnuckle) {
				f.Pairs[i] = PairCrossed
			} else {
				f.Pairs[i] = PairTogether
			}
		case gap > th.Spread:
			f.Pairs[i] = PairSpread
		}
	}
}
