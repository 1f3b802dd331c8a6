package detector

import "github.com/ayusman/mudra/internal/geom"

// Synthetic hand poses for the mock detector, the simulator, and tests.
// All poses use a right hand with the wrist at the origin, fingers pointing
// along +Y and the palm facing the camera. Knuckle spacing is metric and
// matches a typical adult hand (~9.5cm wrist to middle knuckle).

// Knuckle row and thumb base shared by every pose.
var (
	poseWrist     = geom.Vec3{X: 0, Y: 0, Z: 0}
	poseThumbCMC  = geom.Vec3{X: 0.025, Y: 0.030, Z: 0}
	poseIndexMCP  = geom.Vec3{X: 0.030, Y: 0.090, Z: 0}
	poseMiddleMCP = geom.Vec3{X: 0.010, Y: 0.095, Z: 0}
	poseRingMCP   = geom.Vec3{X: -0.010, Y: 0.090, Z: 0}
	posePinkyMCP  = geom.Vec3{X: -0.030, Y: 0.082, Z: 0}
)

// chainExtended lays out PIP/DIP/TIP along dir from the knuckle.
func chainExtended(mcp, dir geom.Vec3) (pip, dip, tip geom.Vec3) {
	d := dir.Normalize()
	return mcp.Add(d.Scale(0.035)), mcp.Add(d.Scale(0.065)), mcp.Add(d.Scale(0.095))
}

// chainFolded curls the finger so the tip hovers just past the knuckle,
// displaced toward the palm. The tip is still net outward from the wrist.
func chainFolded(mcp geom.Vec3) (pip, dip, tip geom.Vec3) {
	return mcp.Add(geom.Vec3{Y: 0.030, Z: -0.010}),
		mcp.Add(geom.Vec3{Y: 0.025, Z: -0.025}),
		mcp.Add(geom.Vec3{Y: 0.010, Z: -0.030})
}

// chainClosed collapses the tip well inside the knuckle radius, against the palm.
func chainClosed(mcp geom.Vec3) (pip, dip, tip geom.Vec3) {
	return mcp.Add(geom.Vec3{Y: 0.020, Z: -0.020}),
		mcp.Scale(0.75).Add(geom.Vec3{Z: -0.028}),
		mcp.Scale(0.6).Add(geom.Vec3{Z: -0.025})
}

// Thumb joint chains (MCP, IP, TIP).
var (
	thumbSide = [3]geom.Vec3{
		{X: 0.045, Y: 0.040, Z: 0},
		{X: 0.070, Y: 0.048, Z: 0},
		{X: 0.095, Y: 0.055, Z: 0},
	}
	thumbTucked = [3]geom.Vec3{
		{X: 0.035, Y: 0.045, Z: -0.010},
		{X: 0.022, Y: 0.055, Z: -0.018},
		{X: 0.010, Y: 0.062, Z: -0.020},
	}
	thumbFoldedOver = [3]geom.Vec3{
		{X: 0.030, Y: 0.050, Z: -0.015},
		{X: 0.018, Y: 0.066, Z: -0.025},
		{X: 0.005, Y: 0.078, Z: -0.032},
	}
	thumbPinching = [3]geom.Vec3{
		{X: 0.040, Y: 0.060, Z: -0.010},
		{X: 0.036, Y: 0.080, Z: -0.022},
		{X: 0.028, Y: 0.096, Z: -0.029},
	}
	thumbCircled = [3]geom.Vec3{
		{X: 0.038, Y: 0.062, Z: -0.012},
		{X: 0.026, Y: 0.082, Z: -0.022},
		{X: 0.012, Y: 0.098, Z: -0.028},
	}
)

// fingerState describes how one of the four fingers is posed.
type fingerState struct {
	extended bool
	folded   bool
	dir      geom.Vec3 // used when extended
}

var (
	up        = geom.Vec3{Y: 1}
	upIndex   = geom.Vec3{X: 0.05, Y: 1}
	upRing    = geom.Vec3{X: -0.05, Y: 1}
	upPinky   = geom.Vec3{X: -0.10, Y: 1}
	splayedIn = geom.Vec3{X: 0.25, Y: 0.968}  // index spread thumb-ward
	splayedMi = geom.Vec3{X: -0.18, Y: 0.984} // middle leaning pinky-ward
	upTiltedP = geom.Vec3{X: -0.30, Y: 0.95}  // pinky flared out
)

func ext(dir geom.Vec3) fingerState { return fingerState{extended: true, dir: dir} }
func folded() fingerState           { return fingerState{folded: true} }
func closed() fingerState           { return fingerState{} }

// buildPose assembles a full 21-landmark right hand.
func buildPose(thumb [3]geom.Vec3, index, middle, ring, pinky fingerState) HandLandmarks {
	world := make([]geom.Vec3, NumLandmarks)
	world[Wrist] = poseWrist
	world[ThumbCMC] = poseThumbCMC
	world[ThumbMCP] = thumb[0]
	world[ThumbIP] = thumb[1]
	world[ThumbTip] = thumb[2]

	place := func(mcpIdx int, mcp geom.Vec3, st fingerState) {
		world[mcpIdx] = mcp
		var pip, dip, tip geom.Vec3
		switch {
		case st.extended:
			pip, dip, tip = chainExtended(mcp, st.dir)
		case st.folded:
			pip, dip, tip = chainFolded(mcp)
		default:
			pip, dip, tip = chainClosed(mcp)
		}
		world[mcpIdx+1], world[mcpIdx+2], world[mcpIdx+3] = pip, dip, tip
	}

	place(IndexMCP, poseIndexMCP, index)
	place(MiddleMCP, poseMiddleMCP, middle)
	place(RingMCP, poseRingMCP, ring)
	place(PinkyMCP, posePinkyMCP, pinky)

	image := make([]geom.Vec3, NumLandmarks)
	for i, p := range world {
		// Cheap metric-to-frame projection, good enough for overlay fixtures.
		image[i] = geom.Vec3{X: 0.5 - p.X*3, Y: 0.85 - p.Y*3, Z: p.Z}
	}

	return HandLandmarks{
		World:      world,
		Image:      image,
		Handedness: "Right",
		Score:      0.95,
	}
}

// FistLandmarks is a closed fist with the thumb resting against its side:
// the letter A.
func FistLandmarks() HandLandmarks {
	return buildPose(thumbSide, closed(), closed(), closed(), closed())
}

// FlatHandLandmarks is a flat open hand with the thumb tucked across the
// palm: the letter B.
func FlatHandLandmarks() HandLandmarks {
	return buildPose(thumbTucked, ext(upIndex), ext(up), ext(upRing), ext(upPinky))
}

// TuckedFistLandmarks is a fist with the thumb wrapped over the fingers:
// the letter E.
func TuckedFistLandmarks() HandLandmarks {
	return buildPose(thumbTucked, closed(), closed(), closed(), closed())
}

// PointingLandmarks is an index finger pointing up with the rest closed:
// the letter D.
func PointingLandmarks() HandLandmarks {
	return buildPose(thumbTucked, ext(upIndex), closed(), closed(), closed())
}

// LShapeLandmarks is an index finger up and the thumb out to the side:
// the letter L.
func LShapeLandmarks() HandLandmarks {
	return buildPose(thumbSide, ext(upIndex), closed(), closed(), closed())
}

// PinkyUpLandmarks is a raised pinky with everything else closed:
// the letter I.
func PinkyUpLandmarks() HandLandmarks {
	return buildPose(thumbFoldedOver, closed(), closed(), closed(), ext(upPinky))
}

// HangLooseLandmarks is thumb and pinky out, the rest closed: the letter Y.
func HangLooseLandmarks() HandLandmarks {
	return buildPose(thumbSide, closed(), closed(), closed(), ext(upTiltedP))
}

// TwoUpLandmarks is index and middle extended together: the letter U.
func TwoUpLandmarks() HandLandmarks {
	together := geom.Vec3{X: 0.02, Y: 1}
	return buildPose(thumbTucked, ext(together), ext(up), closed(), closed())
}

// VictoryLandmarks is index and middle extended and spread: the letter V.
func VictoryLandmarks() HandLandmarks {
	return buildPose(thumbTucked, ext(splayedIn), ext(splayedMi), closed(), closed())
}

// ThreeUpLandmarks is index, middle and ring extended: the letter W.
func ThreeUpLandmarks() HandLandmarks {
	return buildPose(thumbTucked, ext(upIndex), ext(up), ext(upRing), closed())
}

// PinchLandmarks is thumb and index tips touching with the remaining fingers
// extended: the letter F.
func PinchLandmarks() HandLandmarks {
	return buildPose(thumbPinching, folded(), ext(up), ext(upRing), ext(upPinky))
}

// RingShapeLandmarks is all fingertips curled toward the thumb tip forming a
// ring: the letter O.
func RingShapeLandmarks() HandLandmarks {
	return buildPose(thumbCircled, folded(), folded(), folded(), folded())
}

// TruncatedLandmarks is an intentionally invalid landmark set with fewer
// than 21 points.
func TruncatedLandmarks() HandLandmarks {
	full := FlatHandLandmarks()
	return HandLandmarks{
		World:      full.World[:10],
		Image:      full.Image[:10],
		Handedness: full.Handedness,
		Score:      full.Score,
	}
}
