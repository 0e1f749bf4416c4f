// Package persist implements the persistence contract: every match
// and every generation boundary is written atomically (temp file plus
// rename) so a run can resume after a crash without losing state. The
// primary backend is the JSON/JSONL/CSV file layout the external
// interfaces name; an optional SQLite-backed Store behind the
// "sqlite" build tag offers the same contract for callers who want
// queryable match history instead of JSONL scanning.
package persist

import "github.com/wizardbeard/chessevolve/internal/ga"

// Store is the persistence contract the Tournament Controller and GA
// Driver write through. Every method must be safe to call from the
// single controller goroutine that owns ELO updates and pairing
// history; Store implementations do not need their own locking beyond
// that guarantee.
type Store interface {
	// SaveMatch appends one completed match to generation genIndex's
	// match log.
	SaveMatch(genIndex int, rec ga.MatchRecord) error

	// SavePopulation atomically overwrites generation genIndex's
	// population snapshot (current ELOs included).
	SavePopulation(genIndex int, pop ga.Population) error

	// SavePairings atomically overwrites generation genIndex's
	// pairing history.
	SavePairings(genIndex int, history *ga.PairingHistory) error

	// AppendGenerationStats appends one finalized-generation row. A
	// generation is only complete once this has been called for it.
	AppendGenerationStats(stats ga.GenerationStats) error

	// LoadGeneration restores generation genIndex's population,
	// completed matches and pairing history. found is false if no
	// population snapshot exists for that generation.
	LoadGeneration(genIndex int) (pop ga.Population, matches []ga.MatchRecord, history *ga.PairingHistory, found bool, err error)

	// LatestGeneration reports the highest generation index with a
	// population snapshot on disk. found is false for a fresh run.
	LatestGeneration() (genIndex int, found bool, err error)

	// GenerationComplete reports whether genIndex's stats row has
	// already been appended; a generation only counts as complete once
	// its stats row is written.
	GenerationComplete(genIndex int) (bool, error)
}
