package sign

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/geom"
)

func TestBasisFrom_Orthonormal(t *testing.T) {
	hand := detector.FlatHandLandmarks()
	b := BasisFrom(hand.World)

	for name, v := range map[string]geom.Vec3{"X": b.X, "Y": b.Y, "Z": b.Z} {
		if math.Abs(v.Length()-1.0) > 1e-9 {
			t.Errorf("%s should be unit length, got %f", name, v.Length())
		}
	}

	if dot := b.X.Dot(b.Y); math.Abs(dot) > 1e-9 {
		t.Errorf("X.Y should be orthogonal, got dot %g", dot)
	}
	if dot := b.X.Dot(b.Z); math.Abs(dot) > 1e-9 {
		t.Errorf("X.Z should be orthogonal, got dot %g", dot)
	}
	if dot := b.Y.Dot(b.Z); math.Abs(dot) > 1e-9 {
		t.Errorf("Y.Z should be orthogonal, got dot %g", dot)
	}
}

func TestBasisFrom_PalmNormal(t *testing.T) {
	// The fixtures hold the hand flat in the XY plane with the palm toward
	// the camera, so the palm normal must point along -Z.
	hand := detector.FlatHandLandmarks()
	b := BasisFrom(hand.World)

	if b.Z.Z > -0.99 {
		t.Errorf("palm normal should point along -Z, got %v", b.Z)
	}
}

// rotateZ rotates a point about the Z axis by the given angle.
func rotateZ(v geom.Vec3, angle float64) geom.Vec3 {
	sin, cos := math.Sincos(angle)
	return geom.Vec3{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
		Z: v.Z,
	}
}

func TestBasis_RotationInvariance(t *testing.T) {
	// Finger directions expressed in the hand frame must not change when the
	// whole hand rotates.
	hand := detector.PointingLandmarks()
	world := hand.World

	b := BasisFrom(world)
	indexDir := world[detector.IndexTip].Sub(world[detector.IndexMCP]).Normalize()
	local := b.Local(indexDir)

	rotated := make([]geom.Vec3, len(world))
	for i, p := range world {
		rotated[i] = rotateZ(p, math.Pi/5)
	}

	rb := BasisFrom(rotated)
	rotatedDir := rotated[detector.IndexTip].Sub(rotated[detector.IndexMCP]).Normalize()
	rotatedLocal := rb.Local(rotatedDir)

	if geom.Distance(local, rotatedLocal) > 1e-9 {
		t.Errorf("hand-frame direction changed under rotation: %v vs %v", local, rotatedLocal)
	}
}

func TestBasis_Local(t *testing.T) {
	hand := detector.FlatHandLandmarks()
	b := BasisFrom(hand.World)

	// The basis vectors themselves must map to the coordinate axes.
	if got := b.Local(b.X); geom.Distance(got, geom.Vec3{X: 1}) > 1e-9 {
		t.Errorf("Local(X) = %v, want (1,0,0)", got)
	}
	if got := b.Local(b.Y); geom.Distance(got, geom.Vec3{Y: 1}) > 1e-9 {
		t.Errorf("Local(Y) = %v, want (0,1,0)", got)
	}
	if got := b.Local(b.Z); geom.Distance(got, geom.Vec3{Z: 1}) > 1e-9 {
		t.Errorf("Local(Z) = %v, want (0,0,1)", got)
	}
}
