// Package tournament is the Tournament Controller: Dutch-Swiss
// pairing, a bounded worker pool that plays matches concurrently, and
// ELO updates serialized through the single goroutine that owns the
// Pairing History and the population's ratings.
package tournament

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/wizardbeard/chessevolve/internal/ga"
	"github.com/wizardbeard/chessevolve/internal/match"
	"github.com/wizardbeard/chessevolve/internal/persist"
)

// Config holds the controller's per-run settings: how many rounds a
// generation plays, how many matches run concurrently, the K-factor
// and the per-match move cap.
type Config struct {
	Rounds      int
	Concurrency int
	K           float64
	MoveCap     int
}

// DefaultConfig holds the chromosome-independent tournament defaults:
// 7 rounds and the standard K=32 ELO update.
func DefaultConfig() Config {
	return Config{
		Rounds:      7,
		Concurrency: 4,
		K:           DefaultK,
		MoveCap:     match.DefaultMoveCap,
	}
}

// RoundSummary is one round's won/lost/drawn tally plus bye count.
type RoundSummary struct {
	Round     int
	Matches   int
	WhiteWins int
	BlackWins int
	Draws     int
	Byes      int
}

type matchJob struct {
	round int
	white ga.Individual
	black ga.Individual
}

type matchOutcome struct {
	job     matchJob
	outcome match.Outcome
	// flagged is set when both attempts at this match panicked, so the
	// match's two individuals need to be marked for investigation
	// rather than just scored a draw.
	flagged bool
}

// RunGeneration plays cfg.Rounds rounds of Dutch-Swiss tournament over
// pop, updating ELO after every match and persisting through store
// after every match and at the generation boundary. history carries
// forward pairings already recorded this generation (non-empty on
// resume); startRound is the first round not yet fully played, and
// priorMatches carries forward any matches already persisted for
// rounds before startRound so the generation's final stats count them.
// logger receives one line per match and one summary line per round.
func RunGeneration(
	ctx context.Context,
	store persist.Store,
	logger *log.Logger,
	pop ga.Population,
	history *ga.PairingHistory,
	cfg Config,
	startRound int,
	priorMatches []ga.MatchRecord,
) (ga.Population, []ga.MatchRecord, error) {
	if cfg.Rounds <= 0 {
		cfg = DefaultConfig()
	}
	if history == nil {
		history = ga.NewPairingHistory()
	}
	if startRound <= 0 {
		startRound = 1
	}

	var allMatches = append([]ga.MatchRecord(nil), priorMatches...)
	var ratings = make(map[uint64]float64, len(pop.Individuals))
	for _, ind := range pop.Individuals {
		ratings[ind.ID] = ind.Elo
	}

	for round := startRound; round <= cfg.Rounds; round++ {
		var ranked = rankedIndividuals(pop, ratings)
		pairings, byes := PairRound(ranked, history, round)
		for _, b := range byes {
			logger.Printf("[tournament] gen %d round %d: %d bye (0.5, no ELO change)", pop.Generation, round, b)
		}

		var jobs = make([]matchJob, 0, len(pairings))
		for _, p := range pairings {
			white, _ := pop.ByID(p.WhiteID)
			black, _ := pop.ByID(p.BlackID)
			white.Elo = ratings[white.ID]
			black.Elo = ratings[black.ID]
			jobs = append(jobs, matchJob{round: round, white: white, black: black})
			history.Add(p.WhiteID, p.BlackID)
		}

		results, err := runRound(ctx, store, pop.Generation, cfg, jobs)
		if err != nil {
			return pop, allMatches, err
		}

		var summary = RoundSummary{Round: round}
		for _, mo := range results {
			var rec, whiteScore, blackScore = applyResult(mo, cfg.K, ratings)
			allMatches = append(allMatches, rec)
			summary.Matches++
			switch {
			case whiteScore > blackScore:
				summary.WhiteWins++
			case blackScore > whiteScore:
				summary.BlackWins++
			default:
				summary.Draws++
			}
			if mo.flagged {
				flagForInvestigation(&pop, mo.job.white.ID)
				flagForInvestigation(&pop, mo.job.black.ID)
				logger.Printf("[tournament] gen %d round %d: individuals %d and %d flagged for investigation (worker panicked twice)",
					pop.Generation, round, mo.job.white.ID, mo.job.black.ID)
			}
			if err := store.SaveMatch(pop.Generation, rec); err != nil {
				return pop, allMatches, fmt.Errorf("tournament: %w", err)
			}
		}
		summary.Byes = len(byes)
		logger.Printf("[tournament] gen %d round %d done: %s matches, %d-%d-%d, %d byes",
			pop.Generation, round, humanize.Comma(int64(summary.Matches)),
			summary.WhiteWins, summary.BlackWins, summary.Draws, summary.Byes)

		for i := range pop.Individuals {
			pop.Individuals[i].Elo = ratings[pop.Individuals[i].ID]
		}
		if err := store.SavePopulation(pop.Generation, pop); err != nil {
			return pop, allMatches, fmt.Errorf("tournament: %w", err)
		}
		if err := store.SavePairings(pop.Generation, history); err != nil {
			return pop, allMatches, fmt.Errorf("tournament: %w", err)
		}
	}

	for i := range pop.Individuals {
		pop.Individuals[i].Elo = ratings[pop.Individuals[i].ID]
	}

	var stats = ga.ComputeStats(pop.Generation, pop.Individuals, allMatches)
	if err := store.AppendGenerationStats(stats); err != nil {
		return pop, allMatches, fmt.Errorf("tournament: %w", err)
	}
	logger.Printf("[tournament] gen %d finalized: top elo %s, avg elo %s",
		pop.Generation, humanize.Ftoa(stats.TopElo), humanize.Ftoa(stats.AvgElo))

	return pop, allMatches, nil
}

// flagForInvestigation sets Flagged on the population member with the
// given ID, in place, so a later SavePopulation persists the marker.
func flagForInvestigation(pop *ga.Population, id uint64) {
	for i := range pop.Individuals {
		if pop.Individuals[i].ID == id {
			pop.Individuals[i].Flagged = true
			return
		}
	}
}

func rankedIndividuals(pop ga.Population, ratings map[uint64]float64) []ga.Individual {
	var out = make([]ga.Individual, len(pop.Individuals))
	copy(out, pop.Individuals)
	for i := range out {
		out[i].Elo = ratings[out[i].ID]
	}
	return out
}

// runRound dispatches jobs across cfg.Concurrency workers: a bounded
// job channel, an errgroup carrying ctx cancellation to every worker,
// and a WaitGroup that closes the result channel once every worker
// has drained its input.
func runRound(ctx context.Context, store persist.Store, genIndex int, cfg Config, jobs []matchJob) ([]matchOutcome, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	var concurrency = cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	g, ctx := errgroup.WithContext(ctx)
	var jobCh = make(chan matchJob)
	var resultCh = make(chan matchOutcome)

	g.Go(func() error {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobCh <- job:
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playMatches(ctx, genIndex, cfg, jobCh, resultCh)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(resultCh)
		return nil
	})

	var results = make([]matchOutcome, 0, len(jobs))
	var collectDone = make(chan struct{})
	go func() {
		defer close(collectDone)
		for r := range resultCh {
			results = append(results, r)
		}
	}()

	var err = g.Wait()
	<-collectDone
	if err != nil {
		return results, fmt.Errorf("tournament: %w", err)
	}
	return results, nil
}

// playMatches is one worker: it runs Match Runner to completion for
// every job on jobCh and forwards every outcome to resultCh. Only
// ctx cancellation aborts the worker; a single match's invariant
// violation is turned into a recorded draw by playOneWithRetry so one
// bad match never takes down the rest of the round.
func playMatches(ctx context.Context, genIndex int, cfg Config, jobCh <-chan matchJob, resultCh chan<- matchOutcome) error {
	for job := range jobCh {
		var outcome, flagged = playOneWithRetry(ctx, cfg, job)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case resultCh <- matchOutcome{job: job, outcome: outcome, flagged: flagged}:
		}
	}
	return nil
}

// playOneWithRetry runs one match, retrying once if the Searcher
// panics (WorkerPanic in the error design's terms) and recording the
// match as a drawn "engine_error" if it panics twice or returns an
// invariant-violation error either time — forward progress over a
// single match always wins out over aborting the generation. flagged
// is true only when a panic survived the retry, marking both players
// for investigation rather than an ordinary illegal-move draw.
func playOneWithRetry(ctx context.Context, cfg Config, job matchJob) (outcome match.Outcome, flagged bool) {
	var opening = OpeningForRound(job.round)
	outcome, panicked, err := playRecovered(ctx, job, cfg, opening)
	if panicked {
		outcome, panicked, err = playRecovered(ctx, job, cfg, opening)
	}
	if err != nil {
		return match.Outcome{Result: match.Draw, Termination: "engine_error"}, panicked
	}
	return outcome, false
}

// playRecovered isolates one match's panic, converting it into a
// value the caller can act on instead of taking down the whole
// worker pool.
func playRecovered(ctx context.Context, job matchJob, cfg Config, opening string) (outcome match.Outcome, panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			err = fmt.Errorf("tournament: worker panic: %v", r)
		}
	}()
	outcome, err = match.Play(ctx, job.white.Config, job.black.Config, opening, cfg.MoveCap)
	return outcome, false, err
}

// applyResult updates ratings in place for the two players in mo's
// match and returns the persisted MatchRecord plus each side's score,
// applying the standard ELO formula with the same rating both sides
// read before either update is written.
func applyResult(mo matchOutcome, k float64, ratings map[uint64]float64) (rec ga.MatchRecord, whiteScore, blackScore float64) {
	var job = mo.job
	var result = mo.outcome.Result.String()
	whiteScore, blackScore = scoresFor(result)

	var rWhite, rBlack = ratings[job.white.ID], ratings[job.black.ID]
	var eWhite = ExpectedScore(rWhite, rBlack)
	var eBlack = 1 - eWhite
	ratings[job.white.ID] = UpdatedElo(rWhite, whiteScore, eWhite, k)
	ratings[job.black.ID] = UpdatedElo(rBlack, blackScore, eBlack, k)

	rec = ga.MatchRecord{
		Round:       job.round,
		WhiteID:     job.white.ID,
		BlackID:     job.black.ID,
		Result:      result,
		Termination: mo.outcome.Termination,
		Moves:       match.MoveStrings(mo.outcome.Moves),
	}
	return rec, whiteScore, blackScore
}
