// Command evolve is the process entrypoint: it wires Config through
// the GA Driver, the Tournament Controller and Persistence.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"

	"github.com/wizardbeard/chessevolve/internal/ga"
	"github.com/wizardbeard/chessevolve/internal/match"
	"github.com/wizardbeard/chessevolve/internal/persist"
	"github.com/wizardbeard/chessevolve/internal/tournament"
)

// Config is the only configuration surface this system has: the
// population size, rounds per generation, starting ELO, K-factor and
// mutation rate, plus the worker count and persistence directory and
// backend a caller picks.
type Config struct {
	PopulationSize int
	Rounds         int
	StartingElo    float64
	K              float64
	MutationRate   float64
	Concurrency    int
	MoveCap        int
	Generations    int
	StoreBackend   string
	StoreDir       string
	Seed           int64
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	var err = run()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	flag.IntVar(&cfg.PopulationSize, "population", ga.DefaultPopulationSize, "individuals per generation")
	flag.IntVar(&cfg.Rounds, "rounds", 7, "Swiss rounds per generation")
	flag.Float64Var(&cfg.StartingElo, "starting-elo", ga.StartingElo, "ELO every individual starts (and is reset to) at")
	flag.Float64Var(&cfg.K, "k-factor", tournament.DefaultK, "ELO K-factor")
	flag.Float64Var(&cfg.MutationRate, "mutation-rate", 0.1, "per-gene mutation probability")
	flag.IntVar(&cfg.Concurrency, "concurrency", 4, "concurrent matches")
	flag.IntVar(&cfg.MoveCap, "move-cap", match.DefaultMoveCap, "ply cap per match")
	flag.IntVar(&cfg.Generations, "generations", 0, "generations to run (0 = run until cancelled)")
	flag.StringVar(&cfg.StoreBackend, "store", "json", "persistence backend: json or sqlite")
	flag.StringVar(&cfg.StoreDir, "dir", "evolution", "persistence root directory (or sqlite file path)")
	flag.Int64Var(&cfg.Seed, "seed", 1, "GA random seed")
	flag.Parse()

	log.Printf("%+v", cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	store, err := persist.NewStore(cfg.StoreBackend, cfg.StoreDir)
	if err != nil {
		return err
	}

	return evolve(ctx, store, cfg)
}

func evolve(ctx context.Context, store persist.Store, cfg Config) error {
	var rnd = rand.New(rand.NewSource(cfg.Seed))
	var logger = log.New(os.Stderr, "", log.LstdFlags)

	pop, history, startRound, priorMatches, err := loadOrInit(store, cfg, rnd)
	if err != nil {
		return err
	}

	var tcfg = tournament.Config{
		Rounds:      cfg.Rounds,
		Concurrency: cfg.Concurrency,
		K:           cfg.K,
		MoveCap:     cfg.MoveCap,
	}

	for generationsPlayed := 0; cfg.Generations == 0 || generationsPlayed < cfg.Generations; generationsPlayed++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		logger.Printf("[evolve] starting generation %d with %d individuals", pop.Generation, len(pop.Individuals))
		finalized, _, err := tournament.RunGeneration(ctx, store, logger, pop, history, tcfg, startRound, priorMatches)
		if err != nil {
			return err
		}

		pop = ga.NextGeneration(finalized.Individuals, cfg.PopulationSize, cfg.StartingElo, cfg.MutationRate, rnd)
		history = ga.NewPairingHistory()
		startRound = 1
		priorMatches = nil
	}
	return nil
}

// loadOrInit resumes from the highest gen_n directory the store
// knows about, or builds a fresh generation-0 population when none
// exists, following the GA Driver's documented resume rule: a
// generation with fewer matches.jsonl entries than rounds*P/2 resumes
// from the next unplayed round rather than restarting the whole
// generation from scratch.
func loadOrInit(store persist.Store, cfg Config, rnd *rand.Rand) (ga.Population, *ga.PairingHistory, int, []ga.MatchRecord, error) {
	latest, found, err := store.LatestGeneration()
	if err != nil {
		return ga.Population{}, nil, 0, nil, err
	}
	if !found {
		return ga.NewInitialPopulation(cfg.PopulationSize, rnd), ga.NewPairingHistory(), 1, nil, nil
	}

	pop, matches, history, _, err := store.LoadGeneration(latest)
	if err != nil {
		return ga.Population{}, nil, 0, nil, err
	}

	complete, err := store.GenerationComplete(latest)
	if err != nil {
		return ga.Population{}, nil, 0, nil, err
	}
	if complete {
		var next = ga.NextGeneration(pop.Individuals, cfg.PopulationSize, cfg.StartingElo, cfg.MutationRate, rnd)
		return next, ga.NewPairingHistory(), 1, nil, nil
	}

	var matchesPerRound = len(pop.Individuals) / 2
	var startRound = 1
	if matchesPerRound > 0 {
		startRound = len(matches)/matchesPerRound + 1
	}
	return pop, history, startRound, matches, nil
}
