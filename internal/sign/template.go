package sign

import (
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/geom"
)

// Template is a stored landmark snapshot for nearest-template scoring:
// wrist-origin, palm-scaled points captured from a reference pose.
type Template struct {
	Letter    string
	Points    []geom.Vec3
	Tolerance float64 // maximum summed distance for a match
}

// TemplateScorer is an alternative matching strategy: instead of curl and
// direction features it compares the normalized landmark cloud against
// stored reference snapshots and takes the nearest. Simpler and tunable per
// letter, at the cost of needing a captured snapshot for every pose.
type TemplateScorer struct {
	templates []Template
}

// NewTemplateScorer creates a TemplateScorer over the given snapshots.
func NewTemplateScorer(templates []Template) *TemplateScorer {
	return &TemplateScorer{templates: templates}
}

// Add registers another template.
func (s *TemplateScorer) Add(t Template) {
	s.templates = append(s.templates, t)
}

// Remove drops all templates for the given letter.
func (s *TemplateScorer) Remove(letter string) {
	kept := s.templates[:0]
	for _, t := range s.templates {
		if t.Letter != letter {
			kept = append(kept, t)
		}
	}
	s.templates = kept
}

// DefaultTemplateTolerance is the maximum summed landmark distance for the
// reference snapshots: roughly 0.2 palm units of slack per landmark.
const DefaultTemplateTolerance = 4.0

// ReferenceTemplates returns snapshot templates for every built-in library
// letter, captured from the synthetic reference poses.
func ReferenceTemplates() []Template {
	poses := []struct {
		letter string
		hand   detector.HandLandmarks
	}{
		{"E", detector.TuckedFistLandmarks()},
		{"A", detector.FistLandmarks()},
		{"I", detector.PinkyUpLandmarks()},
		{"Y", detector.HangLooseLandmarks()},
		{"L", detector.LShapeLandmarks()},
		{"D", detector.PointingLandmarks()},
		{"U", detector.TwoUpLandmarks()},
		{"V", detector.VictoryLandmarks()},
		{"W", detector.ThreeUpLandmarks()},
		{"F", detector.PinchLandmarks()},
		{"B", detector.FlatHandLandmarks()},
		{"O", detector.RingShapeLandmarks()},
	}

	templates := make([]Template, 0, len(poses))
	for _, p := range poses {
		templates = append(templates, Template{
			Letter:    p.letter,
			Points:    p.hand.Normalize(),
			Tolerance: DefaultTemplateTolerance,
		})
	}
	return templates
}

// Match finds the nearest template within tolerance. Score is 1/(1+distance)
// so an exact geometric match approaches 1.0.
func (s *TemplateScorer) Match(f Features) Result {
	if !f.Valid || len(f.Points) == 0 {
		return Result{}
	}

	best := Result{}
	for i := range s.templates {
		t := &s.templates[i]
		dist := cloudDistance(f.Points, t.Points)
		if dist > t.Tolerance {
			continue
		}

		score := 1.0 / (1.0 + dist)
		if score > best.Confidence {
			best = Result{Letter: t.Letter, Confidence: score}
		}
	}
	return best
}

// cloudDistance sums the point-to-point Euclidean distances between two
// landmark clouds, over their common prefix.
func cloudDistance(a, b []geom.Vec3) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var total float64
	for i := 0; i < n; i++ {
		total += geom.Distance(a[i], b[i])
	}
	return total
}
