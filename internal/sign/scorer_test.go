package sign

import (
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func TestHybridScorer_RecognizesSamplePoses(t *testing.T) {
	cases := []struct {
		name string
		hand detector.HandLandmarks
		want string
	}{
		{"fist with thumb at side", detector.FistLandmarks(), "A"},
		{"flat hand", detector.FlatHandLandmarks(), "B"},
		{"fist with thumb tucked", detector.TuckedFistLandmarks(), "E"},
		{"index pointing up", detector.PointingLandmarks(), "D"},
		{"thumb and index L shape", detector.LShapeLandmarks(), "L"},
		{"pinky up", detector.PinkyUpLandmarks(), "I"},
		{"hang loose", detector.HangLooseLandmarks(), "Y"},
		{"index and middle together", detector.TwoUpLandmarks(), "U"},
		{"index and middle spread", detector.VictoryLandmarks(), "V"},
		{"three fingers up", detector.ThreeUpLandmarks(), "W"},
		{"thumb touching index", detector.PinchLandmarks(), "F"},
		{"fingertips circled", detector.RingShapeLandmarks(), "O"},
	}

	scorer := NewHybridScorer(DefaultLibrary(), 0.6)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Extract(&tc.hand, DefaultThresholds(), [NumFingers]CurlState{})
			result := scorer.Match(f)

			if result.Letter != tc.want {
				t.Fatalf("matched %q (%.3f), want %q", result.Letter, result.Confidence, tc.want)
			}
			if result.Confidence < 0.6 {
				t.Errorf("confidence %.3f below acceptance", result.Confidence)
			}
		})
	}
}

func TestHybridScorer_InvalidFeatures(t *testing.T) {
	scorer := NewHybridScorer(DefaultLibrary(), 0.6)

	result := scorer.Match(Features{})
	if result.Letter != "" || result.Confidence != 0 {
		t.Errorf("invalid features should not match, got %+v", result)
	}
}

func TestHybridScorer_BelowAcceptReturnsEmpty(t *testing.T) {
	// With an extreme acceptance threshold even a good pose is rejected
	// rather than reported as the best of a bad set.
	scorer := NewHybridScorer(DefaultLibrary(), 0.999)

	hand := detector.PinkyUpLandmarks()
	f := Extract(&hand, DefaultThresholds(), [NumFingers]CurlState{})

	result := scorer.Match(f)
	if result.Letter != "" {
		t.Errorf("expected no match above threshold 0.999, got %q (%.3f)", result.Letter, result.Confidence)
	}
}

func TestHybridScorer_Similarity(t *testing.T) {
	scorer := NewHybridScorer(DefaultLibrary(), 0.6)

	hand := detector.FistLandmarks()
	f := Extract(&hand, DefaultThresholds(), [NumFingers]CurlState{})

	a := scorer.Similarity("A", f)
	e := scorer.Similarity("E", f)
	if a <= e {
		t.Errorf("fist with side thumb should score A over E: A=%.3f E=%.3f", a, e)
	}

	if got := scorer.Similarity("Z", f); got != 0 {
		t.Errorf("unknown letter should score zero, got %.3f", got)
	}

	if got := scorer.Similarity("A", Features{}); got != 0 {
		t.Errorf("invalid features should score zero, got %.3f", got)
	}
}

func TestHybridScorer_GatesZeroUnmatchedPoses(t *testing.T) {
	scorer := NewHybridScorer(DefaultLibrary(), 0.6)

	// F requires a pinch; a flat hand has none, so F scores exactly zero
	// regardless of how its curl pattern fares.
	hand := detector.FlatHandLandmarks()
	f := Extract(&hand, DefaultThresholds(), [NumFingers]CurlState{})

	if got := scorer.Similarity("F", f); got != 0 {
		t.Errorf("pinch-gated letter should score zero without a pinch, got %.3f", got)
	}
	if got := scorer.Similarity("O", f); got != 0 {
		t.Errorf("circle-gated letter should score zero without a circle, got %.3f", got)
	}
}

func TestHybridScorer_DirectionSeparatesEqualCurls(t *testing.T) {
	// U and V share the same curl pattern; only finger directions separate
	// them, so each pose must score its own letter higher.
	scorer := NewHybridScorer(DefaultLibrary(), 0.6)
	th := DefaultThresholds()

	uHand := detector.TwoUpLandmarks()
	uf := Extract(&uHand, th, [NumFingers]CurlState{})
	if u, v := scorer.Similarity("U", uf), scorer.Similarity("V", uf); u <= v {
		t.Errorf("together pose should prefer U: U=%.3f V=%.3f", u, v)
	}

	vHand := detector.VictoryLandmarks()
	vf := Extract(&vHand, th, [NumFingers]CurlState{})
	if u, v := scorer.Similarity("U", vf), scorer.Similarity("V", vf); v <= u {
		t.Errorf("spread pose should prefer V: U=%.3f V=%.3f", u, v)
	}
}

func TestHybridScorer_EarlierEntryWinsTies(t *testing.T) {
	// A tucked fist satisfies both E (all closed) and the circle-gated O
	// (all Any) perfectly; E sits earlier in the library and must win.
	scorer := NewHybridScorer(DefaultLibrary(), 0.6)

	hand := detector.TuckedFistLandmarks()
	f := Extract(&hand, DefaultThresholds(), [NumFingers]CurlState{})

	e := scorer.Similarity("E", f)
	o := scorer.Similarity("O", f)
	if e != o {
		t.Fatalf("pose should tie E and O (E=%.3f O=%.3f)", e, o)
	}

	result := scorer.Match(f)
	if result.Letter != "E" {
		t.Errorf("tie should resolve to the earlier library entry E, got %q", result.Letter)
	}
}

func TestCurlScore_FoldedCredit(t *testing.T) {
	def := Definition{
		Letter: "X",
		Curls:  [NumFingers]Requirement{Any, MustBeClosed, Any, Any, Any},
	}

	closed := Features{Valid: true}
	closed.Curls[Index] = CurlClosed
	folded := Features{Valid: true}
	folded.Curls[Index] = CurlFolded
	open := Features{Valid: true}
	open.Curls[Index] = CurlExtended

	fullScore := curlScore(&def, closed)
	partScore := curlScore(&def, folded)
	failScore := curlScore(&def, open)

	if fullScore <= partScore || partScore <= failScore {
		t.Errorf("folded should earn partial credit: closed=%.3f folded=%.3f open=%.3f",
			fullScore, partScore, failScore)
	}
}
