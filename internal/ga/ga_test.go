package ga

import (
	"math/rand"
	"testing"

	"github.com/wizardbeard/chessevolve/internal/config"
)

func TestNewInitialPopulationHasUniqueIDsAndStartingElo(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	pop := NewInitialPopulation(32, rnd)
	if len(pop.Individuals) != 32 {
		t.Fatalf("expected 32 individuals, got %d", len(pop.Individuals))
	}
	seen := make(map[uint64]bool)
	for _, ind := range pop.Individuals {
		if seen[ind.ID] {
			t.Fatalf("duplicate individual ID %d", ind.ID)
		}
		seen[ind.ID] = true
		if ind.Elo != StartingElo {
			t.Fatalf("expected starting ELO %v, got %v", StartingElo, ind.Elo)
		}
		if len(ind.ParentIDs) != 0 {
			t.Fatalf("generation 0 individual should have no parents, got %v", ind.ParentIDs)
		}
	}
}

func TestSortByEloDescBreaksTiesByID(t *testing.T) {
	individuals := []Individual{
		{ID: 3, Elo: 1200},
		{ID: 1, Elo: 1300},
		{ID: 2, Elo: 1200},
	}
	SortByEloDesc(individuals)
	if individuals[0].ID != 1 {
		t.Fatalf("expected highest-ELO individual first, got ID %d", individuals[0].ID)
	}
	if individuals[1].ID != 2 || individuals[2].ID != 3 {
		t.Fatalf("expected tie broken by ascending ID, got order %v, %v", individuals[1].ID, individuals[2].ID)
	}
}

func TestEliteSetAugmentsWhenFewQualify(t *testing.T) {
	individuals := []Individual{
		{ID: 1, Elo: 1100},
		{ID: 2, Elo: 1150},
		{ID: 3, Elo: 1190},
	}
	elite := EliteSet(individuals, StartingElo)
	if len(elite) != 2 {
		t.Fatalf("expected augmentation to top two when none exceed starting ELO, got %d", len(elite))
	}
	if elite[0].ID != 3 || elite[1].ID != 2 {
		t.Fatalf("expected top two by ELO, got %v", elite)
	}
}

func TestEliteSetKeepsEveryoneAboveStarting(t *testing.T) {
	individuals := []Individual{
		{ID: 1, Elo: 1250},
		{ID: 2, Elo: 1150},
		{ID: 3, Elo: 1300},
	}
	elite := EliteSet(individuals, StartingElo)
	if len(elite) != 2 {
		t.Fatalf("expected 2 individuals above starting ELO, got %d", len(elite))
	}
	for _, e := range elite {
		if e.Elo <= StartingElo {
			t.Fatalf("elite set included a below-starting-ELO individual: %+v", e)
		}
	}
}

func TestNextGenerationPreservesSizeAndResetsEloForElite(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	var finalized []Individual
	for i := 0; i < 10; i++ {
		finalized = append(finalized, NewIndividual(config.Random(rnd), 3, nil))
	}
	finalized[0].Elo = 1400
	finalized[1].Elo = 1350

	next := NextGeneration(finalized, 10, StartingElo, 0.1, rnd)
	if len(next.Individuals) != 10 {
		t.Fatalf("expected population size preserved at 10, got %d", len(next.Individuals))
	}
	if next.Generation != 4 {
		t.Fatalf("expected generation incremented to 4, got %d", next.Generation)
	}
	seen := make(map[uint64]bool)
	for _, ind := range next.Individuals {
		if seen[ind.ID] {
			t.Fatalf("duplicate ID %d in next generation", ind.ID)
		}
		seen[ind.ID] = true
		if ind.Elo != StartingElo {
			t.Fatalf("expected every new-generation individual reset to starting ELO, got %v", ind.Elo)
		}
		for _, oldID := range finalized {
			if ind.ID == oldID.ID {
				t.Fatalf("next generation individual reused an old ID: %d", ind.ID)
			}
		}
	}
}

func TestPairingHistoryIsSymmetric(t *testing.T) {
	h := NewPairingHistory()
	h.Add(5, 9)
	if !h.Has(5, 9) || !h.Has(9, 5) {
		t.Fatal("expected Has to be symmetric regardless of argument order")
	}
	if h.Has(5, 10) {
		t.Fatal("unrelated pair should not be recorded")
	}
	if h.Len() != 1 {
		t.Fatalf("expected 1 recorded pair, got %d", h.Len())
	}
}

func TestComputeStatsCountsResultsAndEloBounds(t *testing.T) {
	individuals := []Individual{
		{ID: 1, Elo: 1300},
		{ID: 2, Elo: 1100},
		{ID: 3, Elo: 1200},
	}
	matches := []MatchRecord{
		{WhiteID: 1, BlackID: 2, Result: "1-0"},
		{WhiteID: 2, BlackID: 3, Result: "0-1"},
		{WhiteID: 1, BlackID: 3, Result: "1/2-1/2"},
	}
	stats := ComputeStats(5, individuals, matches)
	if stats.Individuals != 3 || stats.Matches != 3 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.WhiteWins != 1 || stats.BlackWins != 1 || stats.Draws != 1 {
		t.Fatalf("unexpected result tally: %+v", stats)
	}
	if stats.TopElo != 1300 || stats.LowElo != 1100 {
		t.Fatalf("unexpected elo bounds: %+v", stats)
	}
}
