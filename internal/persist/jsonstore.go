package persist

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wizardbeard/chessevolve/internal/config"
	"github.com/wizardbeard/chessevolve/internal/ga"
)

// JSONStore is the primary Store backend: population.json,
// matches.jsonl, pairings.json and generation_stats.csv under a root
// evolution directory, written the way the external-interfaces
// section names them.
type JSONStore struct {
	root string
	mu   sync.Mutex
}

// NewJSONStore returns a Store rooted at dir (created if absent).
// dir conventionally ends in "evolution".
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persist: create root: %w", err)
	}
	return &JSONStore{root: dir}, nil
}

func (s *JSONStore) genDir(genIndex int) string {
	return filepath.Join(s.root, fmt.Sprintf("gen_%d", genIndex))
}

type jsonIndividual struct {
	ID      uint64                 `json:"id"`
	Parents []uint64               `json:"parents"`
	Elo     float64                `json:"elo"`
	Chrom   map[string]interface{} `json:"chromosome"`
	Flagged bool                   `json:"flagged,omitempty"`
}

type jsonPopulation struct {
	Generation  int              `json:"generation"`
	Individuals []jsonIndividual `json:"individuals"`
}

type jsonMatch struct {
	Round       int      `json:"round"`
	WhiteID     uint64   `json:"white_id"`
	BlackID     uint64   `json:"black_id"`
	Result      string   `json:"result"`
	Termination string   `json:"termination"`
	Moves       []string `json:"moves"`
}

type jsonPairings struct {
	Pairs [][2]uint64 `json:"pairs"`
}

// SavePopulation implements Store.
func (s *JSONStore) SavePopulation(genIndex int, pop ga.Population) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out = jsonPopulation{Generation: pop.Generation, Individuals: make([]jsonIndividual, len(pop.Individuals))}
	for i, ind := range pop.Individuals {
		out.Individuals[i] = jsonIndividual{
			ID:      ind.ID,
			Parents: ind.ParentIDs,
			Elo:     ind.Elo,
			Chrom:   ind.Config.AsGeneMap(),
			Flagged: ind.Flagged,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("persist: marshal population: %w", err)
	}
	return writeFileAtomic(filepath.Join(s.genDir(genIndex), "population.json"), data)
}

// SavePairings implements Store.
func (s *JSONStore) SavePairings(genIndex int, history *ga.PairingHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out = jsonPairings{}
	for _, p := range history.Pairs() {
		out.Pairs = append(out.Pairs, [2]uint64{p.A, p.B})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("persist: marshal pairings: %w", err)
	}
	return writeFileAtomic(filepath.Join(s.genDir(genIndex), "pairings.json"), data)
}

// SaveMatch implements Store: appends one JSON line to matches.jsonl,
// rewriting the whole file through a temp+rename so a crash mid-write
// never leaves a half-written line.
func (s *JSONStore) SaveMatch(genIndex int, rec ga.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var path = filepath.Join(s.genDir(genIndex), "matches.jsonl")
	existing, err := readFileIfExists(path)
	if err != nil {
		return fmt.Errorf("persist: read matches log: %w", err)
	}

	line, err := json.Marshal(jsonMatch{
		Round:       rec.Round,
		WhiteID:     rec.WhiteID,
		BlackID:     rec.BlackID,
		Result:      rec.Result,
		Termination: rec.Termination,
		Moves:       rec.Moves,
	})
	if err != nil {
		return fmt.Errorf("persist: marshal match: %w", err)
	}

	var updated = append(existing, line...)
	updated = append(updated, '\n')
	return writeFileAtomic(path, updated)
}

// AppendGenerationStats implements Store.
func (s *JSONStore) AppendGenerationStats(stats ga.GenerationStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var path = filepath.Join(s.root, "generation_stats.csv")
	var header = []string{"generation", "individuals", "matches", "white_wins", "black_wins", "draws", "top_elo", "avg_elo", "low_elo"}
	var row = []string{
		strconv.Itoa(stats.Generation),
		strconv.Itoa(stats.Individuals),
		strconv.Itoa(stats.Matches),
		strconv.Itoa(stats.WhiteWins),
		strconv.Itoa(stats.BlackWins),
		strconv.Itoa(stats.Draws),
		strconv.FormatFloat(stats.TopElo, 'f', 2, 64),
		strconv.FormatFloat(stats.AvgElo, 'f', 2, 64),
		strconv.FormatFloat(stats.LowElo, 'f', 2, 64),
	}

	existing, err := readFileIfExists(path)
	if err != nil {
		return fmt.Errorf("persist: read generation stats: %w", err)
	}

	var buf strings.Builder
	if len(existing) > 0 {
		buf.Write(existing)
	} else {
		var w = csv.NewWriter(&buf)
		_ = w.Write(header)
		w.Flush()
	}
	var w = csv.NewWriter(&buf)
	_ = w.Write(row)
	w.Flush()

	return writeFileAtomic(path, []byte(buf.String()))
}

// LoadGeneration implements Store.
func (s *JSONStore) LoadGeneration(genIndex int) (ga.Population, []ga.MatchRecord, *ga.PairingHistory, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var popPath = filepath.Join(s.genDir(genIndex), "population.json")
	data, err := readFileIfExists(popPath)
	if err != nil {
		return ga.Population{}, nil, nil, false, fmt.Errorf("persist: read population: %w", err)
	}
	if data == nil {
		return ga.Population{}, nil, nil, false, nil
	}

	var jp jsonPopulation
	if err := json.Unmarshal(data, &jp); err != nil {
		return ga.Population{}, nil, nil, false, fmt.Errorf("persist: decode population: %w", err)
	}
	var pop = ga.Population{Generation: jp.Generation, Individuals: make([]ga.Individual, len(jp.Individuals))}
	for i, ji := range jp.Individuals {
		pop.Individuals[i] = ga.Individual{
			ID:         ji.ID,
			Elo:        ji.Elo,
			Generation: jp.Generation,
			ParentIDs:  ji.Parents,
			Config:     config.FromGeneMap(ji.Chrom),
			Flagged:    ji.Flagged,
		}
	}

	var matches []ga.MatchRecord
	matchData, err := readFileIfExists(filepath.Join(s.genDir(genIndex), "matches.jsonl"))
	if err != nil {
		return ga.Population{}, nil, nil, false, fmt.Errorf("persist: read matches: %w", err)
	}
	for _, line := range splitLines(matchData) {
		if len(line) == 0 {
			continue
		}
		var jm jsonMatch
		if err := json.Unmarshal(line, &jm); err != nil {
			return ga.Population{}, nil, nil, false, fmt.Errorf("persist: decode match: %w", err)
		}
		matches = append(matches, ga.MatchRecord{
			Round: jm.Round, WhiteID: jm.WhiteID, BlackID: jm.BlackID,
			Result: jm.Result, Termination: jm.Termination, Moves: jm.Moves,
		})
	}

	var history = ga.NewPairingHistory()
	pairData, err := readFileIfExists(filepath.Join(s.genDir(genIndex), "pairings.json"))
	if err != nil {
		return ga.Population{}, nil, nil, false, fmt.Errorf("persist: read pairings: %w", err)
	}
	if pairData != nil {
		var jp2 jsonPairings
		if err := json.Unmarshal(pairData, &jp2); err != nil {
			return ga.Population{}, nil, nil, false, fmt.Errorf("persist: decode pairings: %w", err)
		}
		for _, p := range jp2.Pairs {
			history.Add(p[0], p[1])
		}
	}

	return pop, matches, history, true, nil
}

// LatestGeneration implements Store.
func (s *JSONStore) LatestGeneration() (int, bool, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("persist: list root: %w", err)
	}
	var found = false
	var latest = -1
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(e.Name(), "gen_%d", &n); err == nil {
			if n > latest {
				latest = n
				found = true
			}
		}
	}
	return latest, found, nil
}

// GenerationComplete implements Store.
func (s *JSONStore) GenerationComplete(genIndex int) (bool, error) {
	data, err := readFileIfExists(filepath.Join(s.root, "generation_stats.csv"))
	if err != nil {
		return false, fmt.Errorf("persist: read generation stats: %w", err)
	}
	if data == nil {
		return false, nil
	}
	r := csv.NewReader(strings.NewReader(string(data)))
	records, err := r.ReadAll()
	if err != nil {
		return false, fmt.Errorf("persist: parse generation stats: %w", err)
	}
	for i, row := range records {
		if i == 0 || len(row) == 0 {
			continue
		}
		if row[0] == strconv.Itoa(genIndex) {
			return true, nil
		}
	}
	return false, nil
}

// writeFileAtomic writes data to a temp file in path's directory and
// renames it into place, retrying transient IOFailures up to 3 times
// with a 100ms backoff before giving up fatally.
func writeFileAtomic(path string, data []byte) error {
	var dir = filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: mkdir %s: %w", dir, err)
	}

	var lastErr error
	for attempt := 0; attempt <= 3; attempt++ {
		if attempt > 0 {
			time.Sleep(100 * time.Millisecond)
		}
		tmp, err := os.CreateTemp(dir, ".tmp-*")
		if err != nil {
			lastErr = err
			continue
		}
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			lastErr = err
			continue
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			lastErr = err
			continue
		}
		if err := os.Rename(tmp.Name(), path); err != nil {
			os.Remove(tmp.Name())
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("persist: write %s after 3 retries: %w", path, lastErr)
}

func readFileIfExists(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	var start = 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, data[start:i])
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
