package sign

import (
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/geom"
)

// Basis is an orthonormal hand-local coordinate frame. X runs along the
// knuckle bar from the index toward the pinky knuckle, Z is the palm normal,
// Y points up along the fingers. Finger directions expressed in this frame
// are invariant to hand translation and, to a good approximation, to wrist
// rotation.
type Basis struct {
	X geom.Vec3
	Y geom.Vec3
	Z geom.Vec3
}

// BasisFrom derives the hand frame from the current landmark set. The frame
// is anchored to the rigid knuckle row rather than any finger segment, so
// finger flexion (the signal being measured) cannot rotate the frame that
// measures it.
func BasisFrom(world []geom.Vec3) Basis {
	x := world[detector.PinkyMCP].Sub(world[detector.IndexMCP]).Normalize()
	z := x.Cross(world[detector.IndexMCP].Sub(world[detector.Wrist])).Normalize()
	y := z.Cross(x).Normalize()
	return Basis{X: x, Y: y, Z: z}
}

// Local expresses a world-space vector in the hand frame.
func (b Basis) Local(v geom.Vec3) geom.Vec3 {
	return geom.Vec3{X: v.Dot(b.X), Y: v.Dot(b.Y), Z: v.Dot(b.Z)}
}
