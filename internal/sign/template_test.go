package sign

import (
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

// snapshotTemplate captures a fixture pose as a stored template.
func snapshotTemplate(t *testing.T, letter string, hand detector.HandLandmarks, tolerance float64) Template {
	t.Helper()
	points := hand.Normalize()
	if points == nil {
		t.Fatalf("fixture for %s should normalize", letter)
	}
	return Template{Letter: letter, Points: points, Tolerance: tolerance}
}

func TestTemplateScorer_ExactMatch(t *testing.T) {
	scorer := NewTemplateScorer([]Template{
		snapshotTemplate(t, "A", detector.FistLandmarks(), 1.0),
		snapshotTemplate(t, "B", detector.FlatHandLandmarks(), 1.0),
	})

	hand := detector.FlatHandLandmarks()
	f := Extract(&hand, DefaultThresholds(), [NumFingers]CurlState{})

	result := scorer.Match(f)
	if result.Letter != "B" {
		t.Fatalf("matched %q, want B", result.Letter)
	}
	// An identical snapshot has zero distance and a score of exactly 1.
	if result.Confidence != 1.0 {
		t.Errorf("exact match should score 1.0, got %f", result.Confidence)
	}
}

func TestTemplateScorer_NearestWins(t *testing.T) {
	scorer := NewTemplateScorer([]Template{
		snapshotTemplate(t, "A", detector.FistLandmarks(), 10),
		snapshotTemplate(t, "B", detector.FlatHandLandmarks(), 10),
	})

	hand := detector.FistLandmarks()
	f := Extract(&hand, DefaultThresholds(), [NumFingers]CurlState{})

	result := scorer.Match(f)
	if result.Letter != "A" {
		t.Errorf("fist should match the fist template, got %q", result.Letter)
	}
}

func TestTemplateScorer_ToleranceRejects(t *testing.T) {
	// A tolerance of zero rejects everything but an identical pose.
	scorer := NewTemplateScorer([]Template{
		snapshotTemplate(t, "A", detector.FistLandmarks(), 0),
	})

	hand := detector.FlatHandLandmarks()
	f := Extract(&hand, DefaultThresholds(), [NumFingers]CurlState{})

	result := scorer.Match(f)
	if result.Letter != "" {
		t.Errorf("pose outside tolerance should not match, got %q", result.Letter)
	}
}

func TestTemplateScorer_InvalidFeatures(t *testing.T) {
	scorer := NewTemplateScorer([]Template{
		snapshotTemplate(t, "A", detector.FistLandmarks(), 1.0),
	})

	result := scorer.Match(Features{})
	if result.Letter != "" {
		t.Errorf("invalid features should not match, got %q", result.Letter)
	}
}

func TestReferenceTemplates_CoverLibrary(t *testing.T) {
	templates := ReferenceTemplates()
	if len(templates) != len(DefaultLibrary()) {
		t.Fatalf("expected one template per library letter, got %d", len(templates))
	}

	scorer := NewTemplateScorer(templates)
	for _, tmpl := range templates {
		if len(tmpl.Points) != detector.NumLandmarks {
			t.Errorf("%s: template has %d points, want %d", tmpl.Letter, len(tmpl.Points), detector.NumLandmarks)
			continue
		}

		result := scorer.Match(Features{Valid: true, Points: tmpl.Points})
		if result.Letter != tmpl.Letter {
			t.Errorf("reference pose for %s matched %q", tmpl.Letter, result.Letter)
		}
		if result.Confidence < 0.999 {
			t.Errorf("%s: exact reference match should score ~1.0, got %f", tmpl.Letter, result.Confidence)
		}
	}
}

func TestTemplateScorer_AddRemove(t *testing.T) {
	scorer := NewTemplateScorer(nil)
	scorer.Add(snapshotTemplate(t, "A", detector.FistLandmarks(), 1.0))
	scorer.Add(snapshotTemplate(t, "B", detector.FlatHandLandmarks(), 1.0))

	hand := detector.FistLandmarks()
	f := Extract(&hand, DefaultThresholds(), [NumFingers]CurlState{})

	if result := scorer.Match(f); result.Letter != "A" {
		t.Fatalf("expected A before removal, got %q", result.Letter)
	}

	scorer.Remove("A")
	if result := scorer.Match(f); result.Letter == "A" {
		t.Error("removed letter should no longer match")
	}
}
