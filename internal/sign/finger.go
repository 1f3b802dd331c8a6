// Package sign implements the geometric pose-classification engine for
// fingerspelled letters: a hand-local coordinate frame, per-finger curl and
// direction features, and scoring against a library of canonical letter poses.
package sign

import "github.com/ayusman/mudra/internal/detector"

// Finger identifies one of the five fingers.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// String returns the finger name for diagnostics.
func (f Finger) String() string {
	switch f {
	case Thumb:
		return "Thumb"
	case Index:
		return "Index"
	case Middle:
		return "Middle"
	case Ring:
		return "Ring"
	case Pinky:
		return "Pinky"
	}
	return "Unknown"
}

// fingerIndices maps a finger to its base and tip landmark indices.
// The thumb uses the CMC joint as its base; the other fingers use the MCP.
var fingerIndices = [NumFingers]struct{ Base, Tip int }{
	Thumb:  {detector.ThumbCMC, detector.ThumbTip},
	Index:  {detector.IndexMCP, detector.IndexTip},
	Middle: {detector.MiddleMCP, detector.MiddleTip},
	Ring:   {detector.RingMCP, detector.RingTip},
	Pinky:  {detector.PinkyMCP, detector.PinkyTip},
}

// Base returns the landmark index of the finger's base joint.
func (f Finger) Base() int { return fingerIndices[f].Base }

// Tip returns the landmark index of the finger's fingertip.
func (f Finger) Tip() int { return fingerIndices[f].Tip }
