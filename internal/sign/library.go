package sign

import "github.com/ayusman/mudra/internal/geom"

// Requirement is what a letter definition demands of one finger's curl.
type Requirement int

const (
	// Any accepts every curl state.
	Any Requirement = iota
	// MustBeOpen requires the finger to be Extended.
	MustBeOpen
	// MustBeClosed requires the finger to be curled; a fully Closed finger
	// satisfies it outright, a Folded one gets partial credit.
	MustBeClosed
)

// String returns the requirement name, used by the letters API.
func (r Requirement) String() string {
	switch r {
	case MustBeOpen:
		return "open"
	case MustBeClosed:
		return "closed"
	}
	return "any"
}

// Definition is one canonical letter pose: a curl requirement per finger,
// optional per-finger direction vectors in hand-frame coordinates, and
// optional shape gates for poses that curl alone cannot express.
type Definition struct {
	Letter string
	Curls  [NumFingers]Requirement

	// Directions holds canonical hand-frame unit vectors for fingers whose
	// pointing direction matters. Hand-frame X runs index-to-pinky along
	// the knuckles, so "thumb side" is -X for either hand.
	Directions map[Finger]geom.Vec3

	// RequirePinch gates the definition on the thumb touching a fingertip.
	RequirePinch bool
	// RequireCircle gates the definition on all fingertips gathering
	// around the thumb.
	RequireCircle bool
}

// DefaultLibrary returns the built-in letter poses, covering the statically
// distinguishable fingerspelling letters. Entries are ordered by descending
// closed-finger count: score ties resolve toward the earlier entry, and the
// more constrained pose is the safer claim.
func DefaultLibrary() []Definition {
	dir := func(x, y, z float64) geom.Vec3 {
		return geom.Vec3{X: x, Y: y, Z: z}.Normalize()
	}
	thumbSide := dir(-0.98, 0.21, 0)

	return []Definition{
		{
			Letter: "E",
			Curls:  [NumFingers]Requirement{MustBeClosed, MustBeClosed, MustBeClosed, MustBeClosed, MustBeClosed},
		},
		{
			Letter: "A",
			Curls:  [NumFingers]Requirement{MustBeOpen, MustBeClosed, MustBeClosed, MustBeClosed, MustBeClosed},
			Directions: map[Finger]geom.Vec3{
				Thumb: thumbSide,
			},
		},
		{
			Letter: "I",
			Curls:  [NumFingers]Requirement{MustBeClosed, MustBeClosed, MustBeClosed, MustBeClosed, MustBeOpen},
			Directions: map[Finger]geom.Vec3{
				Pinky: dir(0, 1, 0),
			},
		},
		{
			Letter: "Y",
			Curls:  [NumFingers]Requirement{MustBeOpen, MustBeClosed, MustBeClosed, MustBeClosed, MustBeOpen},
			Directions: map[Finger]geom.Vec3{
				Thumb: thumbSide,
				Pinky: dir(0.20, 0.98, 0),
			},
		},
		{
			Letter: "L",
			Curls:  [NumFingers]Requirement{MustBeOpen, MustBeOpen, MustBeClosed, MustBeClosed, MustBeClosed},
			Directions: map[Finger]geom.Vec3{
				Thumb: thumbSide,
				Index: dir(-0.18, 0.98, 0),
			},
		},
		{
			Letter: "D",
			Curls:  [NumFingers]Requirement{Any, MustBeOpen, MustBeClosed, MustBeClosed, MustBeClosed},
			Directions: map[Finger]geom.Vec3{
				Index: dir(-0.18, 0.98, 0),
			},
		},
		{
			Letter: "U",
			Curls:  [NumFingers]Requirement{Any, MustBeOpen, MustBeOpen, MustBeClosed, MustBeClosed},
			Directions: map[Finger]geom.Vec3{
				Index:  dir(-0.15, 0.99, 0),
				Middle: dir(-0.13, 0.99, 0),
			},
		},
		{
			Letter: "V",
			Curls:  [NumFingers]Requirement{Any, MustBeOpen, MustBeOpen, MustBeClosed, MustBeClosed},
			Directions: map[Finger]geom.Vec3{
				Index:  dir(-0.38, 0.92, 0),
				Middle: dir(0.05, 1, 0),
			},
		},
		{
			Letter: "W",
			Curls:  [NumFingers]Requirement{Any, MustBeOpen, MustBeOpen, MustBeOpen, MustBeClosed},
			Directions: map[Finger]geom.Vec3{
				Index:  dir(-0.18, 0.98, 0),
				Middle: dir(-0.13, 0.99, 0),
				Ring:   dir(-0.08, 0.98, 0),
			},
		},
		{
			Letter:       "F",
			Curls:        [NumFingers]Requirement{Any, MustBeClosed, MustBeOpen, MustBeOpen, MustBeOpen},
			RequirePinch: true,
			Directions: map[Finger]geom.Vec3{
				Middle: dir(-0.13, 0.99, 0),
				Ring:   dir(-0.08, 0.98, 0),
				Pinky:  dir(-0.03, 1, 0),
			},
		},
		{
			Letter: "B",
			Curls:  [NumFingers]Requirement{MustBeClosed, MustBeOpen, MustBeOpen, MustBeOpen, MustBeOpen},
			Directions: map[Finger]geom.Vec3{
				Index:  dir(-0.18, 0.98, 0),
				Middle: dir(-0.13, 0.99, 0),
				Ring:   dir(-0.08, 0.98, 0),
				Pinky:  dir(-0.03, 1, 0),
			},
		},
		{
			Letter:        "O",
			Curls:         [NumFingers]Requirement{Any, Any, Any, Any, Any},
			RequireCircle: true,
		},
	}
}
