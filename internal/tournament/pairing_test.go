package tournament

import (
	"testing"

	"github.com/wizardbeard/chessevolve/internal/ga"
)

func makeIndividuals(n int) []ga.Individual {
	var out = make([]ga.Individual, n)
	for i := range out {
		out[i] = ga.Individual{ID: uint64(i + 1), Elo: 1200 + float64(n-i)}
	}
	return out
}

func TestPairRoundPairsTopHalfWithBottomHalf(t *testing.T) {
	individuals := makeIndividuals(8)
	history := ga.NewPairingHistory()
	pairings, byes := PairRound(individuals, history, 0)

	if len(byes) != 0 {
		t.Fatalf("expected no byes for an even population, got %v", byes)
	}
	if len(pairings) != 4 {
		t.Fatalf("expected 4 pairings for 8 individuals, got %d", len(pairings))
	}

	seen := make(map[uint64]bool)
	for _, p := range pairings {
		if seen[p.WhiteID] || seen[p.BlackID] {
			t.Fatalf("individual appears in more than one pairing: %+v", p)
		}
		seen[p.WhiteID] = true
		seen[p.BlackID] = true
		// makeIndividuals rates lower IDs higher, so IDs 1-4 are the top half.
		if (p.WhiteID <= 4) == (p.BlackID <= 4) {
			t.Fatalf("expected each pairing to join the top half with the bottom half: %+v", p)
		}
	}
	if len(seen) != 8 {
		t.Fatalf("expected every individual paired exactly once, got %d", len(seen))
	}
}

func TestPairRoundGrantsByeForOddPopulation(t *testing.T) {
	individuals := makeIndividuals(7)
	history := ga.NewPairingHistory()
	pairings, byes := PairRound(individuals, history, 0)

	if len(byes) != 1 {
		t.Fatalf("expected exactly one bye for an odd population, got %v", byes)
	}
	if len(pairings) != 3 {
		t.Fatalf("expected 3 pairings for 7 individuals, got %d", len(pairings))
	}
}

func TestPairRoundAvoidsRematches(t *testing.T) {
	individuals := makeIndividuals(4)
	history := ga.NewPairingHistory()

	firstPairings, _ := PairRound(individuals, history, 0)
	for _, p := range firstPairings {
		history.Add(p.WhiteID, p.BlackID)
	}

	secondPairings, byes := PairRound(individuals, history, 1)
	for _, p := range secondPairings {
		if history.Has(p.WhiteID, p.BlackID) {
			var rematched = false
			for _, fp := range firstPairings {
				if (fp.WhiteID == p.WhiteID && fp.BlackID == p.BlackID) ||
					(fp.WhiteID == p.BlackID && fp.BlackID == p.WhiteID) {
					rematched = true
				}
			}
			if rematched && len(byes) == 0 {
				t.Fatalf("round 2 repeated a round 1 pairing with no byes granted: %+v", p)
			}
		}
	}
}

func TestPairRoundAlternatesColourByRoundParity(t *testing.T) {
	individuals := makeIndividuals(2)
	history := ga.NewPairingHistory()

	evenRound, _ := PairRound(individuals, history, 0)
	oddRound, _ := PairRound(individuals, history, 1)

	if len(evenRound) != 1 || len(oddRound) != 1 {
		t.Fatalf("expected exactly one pairing per round for 2 individuals")
	}
	if evenRound[0].WhiteID == oddRound[0].WhiteID {
		t.Fatalf("expected colours to swap between an even and an odd round")
	}
}
