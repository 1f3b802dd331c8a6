package sign

// Result is the outcome of matching one frame's features against the
// library. Letter is empty when nothing scored above the acceptance
// threshold.
type Result struct {
	Letter     string
	Confidence float64
}

// Scorer matches extracted features against a letter library. Strategies
// are interchangeable behind this interface.
type Scorer interface {
	Match(f Features) Result
}

// Scoring weights for the hybrid strategy. Direction carries more weight
// than curl because it is what separates poses with identical curl patterns;
// curl still acts as a gate, since a failed requirement zeroes that finger's
// contribution entirely.
const (
	curlWeight      = 0.4
	directionWeight = 0.6

	// foldedCredit is the partial pass a Folded finger earns against a
	// MustBeClosed requirement: curled enough to not be open, not collapsed
	// enough to fully satisfy closed.
	foldedCredit = 0.5
)

// HybridScorer scores curl-pattern compatibility blended with cosine
// similarity of finger directions.
type HybridScorer struct {
	Library []Definition
	// Accept is the minimum score for a match to be reported at all.
	// The best of a bad set is still no match: during transitions between
	// poses every definition scores poorly, and reporting one anyway would
	// flash wrong letters at the UI.
	Accept float64
}

// NewHybridScorer creates the reference scorer over the given library.
func NewHybridScorer(library []Definition, accept float64) *HybridScorer {
	return &HybridScorer{Library: library, Accept: accept}
}

// Match scores every definition and returns the best, or an empty result if
// the best is below the acceptance threshold. Comparison is strictly
// greater-than, so earlier library entries win exact ties.
func (s *HybridScorer) Match(f Features) Result {
	if !f.Valid {
		return Result{}
	}

	best := Result{}
	for i := range s.Library {
		score := s.score(&s.Library[i], f)
		if score > best.Confidence {
			best = Result{Letter: s.Library[i].Letter, Confidence: score}
		}
	}

	if best.Confidence < s.Accept {
		return Result{}
	}
	return best
}

// Similarity returns the score of features against one named letter.
// An unknown letter scores zero; it is not an error.
func (s *HybridScorer) Similarity(letter string, f Features) float64 {
	if !f.Valid {
		return 0
	}
	for i := range s.Library {
		if s.Library[i].Letter == letter {
			return s.score(&s.Library[i], f)
		}
	}
	return 0
}

func (s *HybridScorer) score(def *Definition, f Features) float64 {
	if def.RequirePinch && !f.Pinch {
		return 0
	}
	if def.RequireCircle && !f.Circle {
		return 0
	}

	curl := curlScore(def, f)

	dir, ok := directionScore(def, f)
	if !ok {
		return curl
	}
	return curlWeight*curl + directionWeight*dir
}

// curlScore is the fraction of fingers passing their requirement.
func curlScore(def *Definition, f Features) float64 {
	var total float64
	for finger := Thumb; finger < NumFingers; finger++ {
		switch def.Curls[finger] {
		case Any:
			total++
		case MustBeOpen:
			if f.Curls[finger] == CurlExtended {
				total++
			}
		case MustBeClosed:
			switch f.Curls[finger] {
			case CurlClosed:
				total++
			case CurlFolded:
				total += foldedCredit
			}
		}
	}
	return total / float64(NumFingers)
}

// directionScore averages cosine similarity over the definition's specified
// fingers, remapped from [-1,1] to [0,1]. Fingers that are not currently
// extended are skipped: a curled finger's tip-to-base direction is noise,
// not signal. Returns ok=false when the definition specifies no directions
// or none of the specified fingers are extended.
func directionScore(def *Definition, f Features) (float64, bool) {
	if len(def.Directions) == 0 {
		return 0, false
	}

	var sum float64
	var n int
	for finger, canonical := range def.Directions {
		if f.Curls[finger] != CurlExtended {
			continue
		}
		sum += f.Directions[finger].Dot(canonical)
		n++
	}
	if n == 0 {
		return 0, false
	}

	avg := sum / float64(n)
	return (avg + 1) / 2, true
}
