package stabilize

// Policy decides, from the rolling window of raw labels, what the stable
// label should be. prev is the current stable label; returning it unchanged
// is the sticky no-decision case.
type Policy interface {
	Promote(window []string, prev string) string
}

// MajorityPolicy promotes the most frequent label in the window once its
// share of the window meets the consensus ratio. With no consensus the
// previous stable label is retained, which is what keeps the output from
// toggling during ambiguous frames. A consensus of empty labels clears the
// stable label instead.
type MajorityPolicy struct {
	Consensus float64
}

// Promote implements Policy.
func (p *MajorityPolicy) Promote(window []string, prev string) string {
	if len(window) == 0 {
		return prev
	}

	counts := make(map[string]int, len(window))
	best := ""
	bestCount := 0
	// Walk the window in order so ties go to the earliest-seen label,
	// keeping promotion deterministic.
	for _, label := range window {
		counts[label]++
		if counts[label] > bestCount {
			best, bestCount = label, counts[label]
		}
	}

	if float64(bestCount)/float64(len(window)) < p.Consensus {
		return prev
	}
	return best
}

// ConsecutivePolicy flips the stable label after K identical raw labels in
// a row. It is the majority rule with window=K and consensus=1.0: less
// noise-tolerant, but it reacts K frames after a clean pose change instead
// of waiting for a window majority.
type ConsecutivePolicy struct {
	K int
}

// Promote implements Policy.
func (p *ConsecutivePolicy) Promote(window []string, prev string) string {
	if len(window) < p.K {
		return prev
	}

	tail := window[len(window)-p.K:]
	candidate := tail[0]
	for _, label := range tail[1:] {
		if label != candidate {
			return prev
		}
	}
	return candidate
}
