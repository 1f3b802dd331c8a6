// Package detector provides hand tracking interfaces and landmark types for
// fingerspelling recognition.
package detector

import "github.com/ayusman/mudra/internal/geom"

// Hand landmark indices following the MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// HandLandmarks holds one tracked hand as reported by the hand tracker.
// World points are metric, hand-relative coordinates and drive recognition;
// Image points are normalized [0,1] frame coordinates used only for overlay
// drawing in the UI.
type HandLandmarks struct {
	World      []geom.Vec3 `json:"world"`
	Image      []geom.Vec3 `json:"image"`
	Handedness string      `json:"handedness"` // "Left" or "Right"
	Score      float64     `json:"score"`
}

// Valid reports whether the landmark set carries the full 21 world points.
// Anything less is rejected as invalid input rather than partially consumed.
func (h *HandLandmarks) Valid() bool {
	return h != nil && len(h.World) >= NumLandmarks
}

// Normalize returns a copy of the world landmarks translated so the wrist is
// at the origin and scaled so the wrist-to-middle-knuckle distance is 1.0.
// Returns nil for an invalid landmark set.
func (h *HandLandmarks) Normalize() []geom.Vec3 {
	if !h.Valid() {
		return nil
	}

	wrist := h.World[Wrist]
	normalized := make([]geom.Vec3, NumLandmarks)
	for i := 0; i < NumLandmarks; i++ {
		normalized[i] = h.World[i].Sub(wrist)
	}

	scale := normalized[MiddleMCP].Length()
	if scale < 1e-10 {
		return normalized
	}

	for i := range normalized {
		normalized[i] = normalized[i].Scale(1 / scale)
	}
	return normalized
}
