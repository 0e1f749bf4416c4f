// Package ga is the GA Driver: population initialization, elitism
// selection, uniform crossover and per-gene mutation, and the record
// types (Individual, MatchRecord, PairingHistory, GenerationStats)
// that the Tournament Controller and Persistence layer share.
package ga

import (
	"encoding/binary"
	"slices"

	"github.com/google/uuid"

	"github.com/wizardbeard/chessevolve/internal/config"
)

// StartingElo is every individual's rating at birth.
const StartingElo = 1200.0

// Individual is one population member: a chromosome plus lineage and
// rating. It is immutable except for Elo, which only the Tournament
// Controller mutates, one match result at a time, and Flagged, which
// the Tournament Controller sets.
type Individual struct {
	ID         uint64
	Config     config.SearchConfig
	Elo        float64
	Generation int
	ParentIDs  []uint64

	// Flagged marks an individual whose engine panicked twice in the
	// same match (a WorkerPanic that survived the Tournament
	// Controller's one retry), so it stays visibly distinct in the
	// persisted population from an individual that simply lost or
	// drew on the board. Reset to false for every newly bred
	// individual, the same as Elo resets to StartingElo.
	Flagged bool
}

// NewID mints a process- and machine-unique 64-bit individual ID from
// a fresh UUID, so IDs stay unique across resumed runs without a
// shared counter that a crash could desynchronize.
func NewID() uint64 {
	var u = uuid.New()
	return binary.BigEndian.Uint64(u[:8])
}

// NewIndividual builds a freshly-born individual: fresh ID, starting
// ELO, the given chromosome, generation and parentage.
func NewIndividual(cfg config.SearchConfig, generation int, parents []uint64) Individual {
	return Individual{
		ID:         NewID(),
		Config:     cfg,
		Elo:        StartingElo,
		Generation: generation,
		ParentIDs:  append([]uint64(nil), parents...),
	}
}

// SortByEloDesc orders individuals by descending ELO, ties broken by
// ascending ID — the ranking both Dutch-Swiss pairing and elitism
// selection use. Sorts in place.
func SortByEloDesc(individuals []Individual) {
	slices.SortFunc(individuals, func(a, b Individual) int {
		if a.Elo != b.Elo {
			if a.Elo > b.Elo {
				return -1
			}
			return 1
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}

// CloneWithFreshID copies ind's chromosome into a new individual born
// in toGeneration, resetting ELO to StartingElo and recording ind's ID
// as its sole parent. Used to carry elites forward by genotype, not by
// rating.
func CloneWithFreshID(ind Individual, toGeneration int) Individual {
	return NewIndividual(ind.Config, toGeneration, []uint64{ind.ID})
}
