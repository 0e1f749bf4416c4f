package ga

// MatchRecord is one completed match as persisted: round plus the two
// individual IDs, the UCI move list, result and termination reason.
// Matches are never mutated after creation.
type MatchRecord struct {
	Round       int
	WhiteID     uint64
	BlackID     uint64
	Result      string
	Termination string
	Moves       []string
}

// Pair is an unordered pairing of two individual IDs, canonicalized so
// A < B, used as a PairingHistory key and as pairings.json's pairs
// entry shape.
type Pair struct {
	A, B uint64
}

// NewPair canonicalizes (x, y) into a Pair with A < B.
func NewPair(x, y uint64) Pair {
	if x < y {
		return Pair{A: x, B: y}
	}
	return Pair{A: y, B: x}
}

// PairingHistory is the set of individual-ID pairs that have already
// met in the current generation, used to forbid rematches. It resets
// at the start of every generation.
type PairingHistory struct {
	pairs map[Pair]bool
}

// NewPairingHistory returns an empty history.
func NewPairingHistory() *PairingHistory {
	return &PairingHistory{pairs: make(map[Pair]bool)}
}

// Has reports whether a and b have already been paired.
func (h *PairingHistory) Has(a, b uint64) bool {
	return h.pairs[NewPair(a, b)]
}

// Add records that a and b have now played each other.
func (h *PairingHistory) Add(a, b uint64) {
	h.pairs[NewPair(a, b)] = true
}

// Pairs returns every recorded pair, in no particular order.
func (h *PairingHistory) Pairs() []Pair {
	var out = make([]Pair, 0, len(h.pairs))
	for p := range h.pairs {
		out = append(out, p)
	}
	return out
}

// Len reports how many distinct pairs have been recorded.
func (h *PairingHistory) Len() int {
	return len(h.pairs)
}

// GenerationStats summarizes one finalized generation, the row shape
// generation_stats.csv appends.
type GenerationStats struct {
	Generation  int
	Individuals int
	Matches     int
	WhiteWins   int
	BlackWins   int
	Draws       int
	TopElo      float64
	AvgElo      float64
	LowElo      float64
}

// ComputeStats derives a GenerationStats row from a finalized
// population and its generation's match records.
func ComputeStats(generation int, individuals []Individual, matches []MatchRecord) GenerationStats {
	var stats = GenerationStats{Generation: generation, Individuals: len(individuals), Matches: len(matches)}
	if len(individuals) > 0 {
		var sum, top, low = 0.0, individuals[0].Elo, individuals[0].Elo
		for _, ind := range individuals {
			sum += ind.Elo
			if ind.Elo > top {
				top = ind.Elo
			}
			if ind.Elo < low {
				low = ind.Elo
			}
		}
		stats.TopElo = top
		stats.LowElo = low
		stats.AvgElo = sum / float64(len(individuals))
	}
	for _, m := range matches {
		switch m.Result {
		case "1-0":
			stats.WhiteWins++
		case "0-1":
			stats.BlackWins++
		default:
			stats.Draws++
		}
	}
	return stats
}
