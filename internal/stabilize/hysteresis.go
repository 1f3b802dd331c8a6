package stabilize

// ThumbSide describes where the thumb tip sits relative to the palm plane:
// out to the side, over the curled fingers (palm side), or behind the
// knuckles. It refines diagnostics for fist-family poses whose curl
// patterns are identical.
type ThumbSide int

const (
	ThumbAtSide ThumbSide = iota
	ThumbOver
	ThumbUnder
)

// String returns the placement name for diagnostics.
func (t ThumbSide) String() string {
	switch t {
	case ThumbOver:
		return "Over"
	case ThumbUnder:
		return "Under"
	}
	return "Side"
}

// Thumb placement decision boundaries, in palm sizes along the palm normal.
// Entering Over or Under takes a larger excursion than staying there, the
// same asymmetry the curl thresholds use.
const (
	thumbEnterDepth = 0.15
	thumbExitDepth  = 0.05
)

// ThumbPlacement is the level-triggered state machine for thumb placement.
// The zero value starts at ThumbAtSide.
type ThumbPlacement struct {
	state ThumbSide
}

// Update feeds this frame's thumb depth (palm-normal offset of the thumb
// tip from the index knuckle, in palm sizes) and returns the new state.
// Positive depth is the palm side.
func (t *ThumbPlacement) Update(depth float64) ThumbSide {
	switch t.state {
	case ThumbOver:
		if depth < thumbExitDepth {
			t.state = ThumbAtSide
		}
	case ThumbUnder:
		if depth > -thumbExitDepth {
			t.state = ThumbAtSide
		}
	default:
		if depth >= thumbEnterDepth {
			t.state = ThumbOver
		} else if depth <= -thumbEnterDepth {
			t.state = ThumbUnder
		}
	}
	return t.state
}

// State returns the current placement without feeding a frame.
func (t *ThumbPlacement) State() ThumbSide {
	return t.state
}
