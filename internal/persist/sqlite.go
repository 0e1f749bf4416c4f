//go:build sqlite

package persist

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/wizardbeard/chessevolve/internal/config"
	"github.com/wizardbeard/chessevolve/internal/ga"
)

// SQLiteStore is an alternative Store backend for callers who want
// queryable match history instead of scanning matches.jsonl by hand.
// It is only compiled in with the "sqlite" build tag, matching the
// optional-backend pattern of keeping a pure-SQL driver out of the
// default dependency graph.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// newSQLiteStore opens (and migrates) a SQLite database at path.
func newSQLiteStore(path string) (Store, error) {
	if path == "" {
		return nil, errors.New("persist: sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persist: open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("persist: ping sqlite: %w", err)
	}
	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{path: path, db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS populations (
			generation INTEGER PRIMARY KEY,
			payload    BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS pairings (
			generation INTEGER PRIMARY KEY,
			payload    BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS matches (
			generation  INTEGER NOT NULL,
			round       INTEGER NOT NULL,
			white_id    INTEGER NOT NULL,
			black_id    INTEGER NOT NULL,
			result      TEXT NOT NULL,
			termination TEXT NOT NULL,
			moves       TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_generation ON matches(generation);
		CREATE TABLE IF NOT EXISTS generation_stats (
			generation  INTEGER PRIMARY KEY,
			individuals INTEGER NOT NULL,
			matches     INTEGER NOT NULL,
			white_wins  INTEGER NOT NULL,
			black_wins  INTEGER NOT NULL,
			draws       INTEGER NOT NULL,
			top_elo     REAL NOT NULL,
			avg_elo     REAL NOT NULL,
			low_elo     REAL NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("persist: create tables: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveMatch implements Store.
func (s *SQLiteStore) SaveMatch(genIndex int, rec ga.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	movesJSON, err := json.Marshal(rec.Moves)
	if err != nil {
		return fmt.Errorf("persist: marshal moves: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO matches (generation, round, white_id, black_id, result, termination, moves)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, genIndex, rec.Round, rec.WhiteID, rec.BlackID, rec.Result, rec.Termination, string(movesJSON))
	if err != nil {
		return fmt.Errorf("persist: insert match: %w", err)
	}
	return nil
}

// SavePopulation implements Store.
func (s *SQLiteStore) SavePopulation(genIndex int, pop ga.Population) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(encodablePopulation(pop))
	if err != nil {
		return fmt.Errorf("persist: marshal population: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO populations (generation, payload) VALUES (?, ?)
		ON CONFLICT(generation) DO UPDATE SET payload = excluded.payload
	`, genIndex, payload)
	if err != nil {
		return fmt.Errorf("persist: upsert population: %w", err)
	}
	return nil
}

// SavePairings implements Store.
func (s *SQLiteStore) SavePairings(genIndex int, history *ga.PairingHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pairs [][2]uint64
	for _, p := range history.Pairs() {
		pairs = append(pairs, [2]uint64{p.A, p.B})
	}
	payload, err := json.Marshal(pairs)
	if err != nil {
		return fmt.Errorf("persist: marshal pairings: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO pairings (generation, payload) VALUES (?, ?)
		ON CONFLICT(generation) DO UPDATE SET payload = excluded.payload
	`, genIndex, payload)
	if err != nil {
		return fmt.Errorf("persist: upsert pairings: %w", err)
	}
	return nil
}

// AppendGenerationStats implements Store.
func (s *SQLiteStore) AppendGenerationStats(stats ga.GenerationStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO generation_stats (generation, individuals, matches, white_wins, black_wins, draws, top_elo, avg_elo, low_elo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(generation) DO UPDATE SET
			individuals = excluded.individuals, matches = excluded.matches,
			white_wins = excluded.white_wins, black_wins = excluded.black_wins,
			draws = excluded.draws, top_elo = excluded.top_elo,
			avg_elo = excluded.avg_elo, low_elo = excluded.low_elo
	`, stats.Generation, stats.Individuals, stats.Matches, stats.WhiteWins, stats.BlackWins,
		stats.Draws, stats.TopElo, stats.AvgElo, stats.LowElo)
	if err != nil {
		return fmt.Errorf("persist: upsert generation stats: %w", err)
	}
	return nil
}

// LoadGeneration implements Store.
func (s *SQLiteStore) LoadGeneration(genIndex int) (ga.Population, []ga.MatchRecord, *ga.PairingHistory, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM populations WHERE generation = ?`, genIndex).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return ga.Population{}, nil, nil, false, nil
	}
	if err != nil {
		return ga.Population{}, nil, nil, false, fmt.Errorf("persist: select population: %w", err)
	}
	var ep encodedPopulation
	if err := json.Unmarshal(payload, &ep); err != nil {
		return ga.Population{}, nil, nil, false, fmt.Errorf("persist: decode population: %w", err)
	}
	var pop = decodablePopulation(ep)

	rows, err := s.db.Query(`
		SELECT round, white_id, black_id, result, termination, moves
		FROM matches WHERE generation = ? ORDER BY rowid
	`, genIndex)
	if err != nil {
		return ga.Population{}, nil, nil, false, fmt.Errorf("persist: select matches: %w", err)
	}
	defer rows.Close()

	var matches []ga.MatchRecord
	for rows.Next() {
		var rec ga.MatchRecord
		var movesJSON string
		if err := rows.Scan(&rec.Round, &rec.WhiteID, &rec.BlackID, &rec.Result, &rec.Termination, &movesJSON); err != nil {
			return ga.Population{}, nil, nil, false, fmt.Errorf("persist: scan match: %w", err)
		}
		if err := json.Unmarshal([]byte(movesJSON), &rec.Moves); err != nil {
			return ga.Population{}, nil, nil, false, fmt.Errorf("persist: decode moves: %w", err)
		}
		matches = append(matches, rec)
	}
	if err := rows.Err(); err != nil {
		return ga.Population{}, nil, nil, false, fmt.Errorf("persist: iterate matches: %w", err)
	}

	var history = ga.NewPairingHistory()
	var pairPayload []byte
	err = s.db.QueryRow(`SELECT payload FROM pairings WHERE generation = ?`, genIndex).Scan(&pairPayload)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return ga.Population{}, nil, nil, false, fmt.Errorf("persist: select pairings: %w", err)
	}
	if err == nil {
		var pairs [][2]uint64
		if err := json.Unmarshal(pairPayload, &pairs); err != nil {
			return ga.Population{}, nil, nil, false, fmt.Errorf("persist: decode pairings: %w", err)
		}
		for _, p := range pairs {
			history.Add(p[0], p[1])
		}
	}

	return pop, matches, history, true, nil
}

// LatestGeneration implements Store.
func (s *SQLiteStore) LatestGeneration() (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(generation) FROM populations`).Scan(&latest)
	if err != nil {
		return 0, false, fmt.Errorf("persist: select latest generation: %w", err)
	}
	if !latest.Valid {
		return 0, false, nil
	}
	return int(latest.Int64), true, nil
}

// GenerationComplete implements Store.
func (s *SQLiteStore) GenerationComplete(genIndex int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM generation_stats WHERE generation = ?`, genIndex).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("persist: count generation stats: %w", err)
	}
	return count > 0, nil
}

type encodedIndividual struct {
	ID      uint64                 `json:"id"`
	Parents []uint64               `json:"parents"`
	Elo     float64                `json:"elo"`
	Chrom   map[string]interface{} `json:"chromosome"`
	Flagged bool                   `json:"flagged,omitempty"`
}

type encodedPopulation struct {
	Generation  int                 `json:"generation"`
	Individuals []encodedIndividual `json:"individuals"`
}

func encodablePopulation(pop ga.Population) encodedPopulation {
	var out = encodedPopulation{Generation: pop.Generation, Individuals: make([]encodedIndividual, len(pop.Individuals))}
	for i, ind := range pop.Individuals {
		out.Individuals[i] = encodedIndividual{
			ID:      ind.ID,
			Parents: ind.ParentIDs,
			Elo:     ind.Elo,
			Chrom:   ind.Config.AsGeneMap(),
			Flagged: ind.Flagged,
		}
	}
	return out
}

func decodablePopulation(ep encodedPopulation) ga.Population {
	var pop = ga.Population{Generation: ep.Generation, Individuals: make([]ga.Individual, len(ep.Individuals))}
	for i, ei := range ep.Individuals {
		pop.Individuals[i] = ga.Individual{
			ID:         ei.ID,
			Elo:        ei.Elo,
			Generation: ep.Generation,
			ParentIDs:  ei.Parents,
			Config:     config.FromGeneMap(ei.Chrom),
			Flagged:    ei.Flagged,
		}
	}
	return pop
}
