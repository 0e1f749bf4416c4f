// Package config defines SearchConfig, the chromosome the GA Driver
// evolves: the fixed set of genes that together parameterize one
// Searcher/Evaluator pairing. Nothing in this package knows about
// chess; it only knows gene names, ranges and how to clamp, randomize,
// cross and mutate them.
package config

import "math/rand"

// SearchConfig is the GA chromosome. Every field is a gene; adding a
// field here means adding it to every function below (Default, Clamp,
// Random, Crossover, MutateWithRate, AsGeneMap and FromGeneMap), or it
// silently drops out of evolution.
type SearchConfig struct {
	SearchDepth       int
	NullMoveReduction int
	LMRThreshold      int
	FutilityMargin    int

	EnableQuiescence  bool
	EnableNMP         bool
	EnableLMR         bool
	EnableFutility    bool
	EnableSEEOrdering bool
	EnableKiller      bool
	EnableHistory     bool

	WMaterial      int
	WPST           int
	WMobility      int
	WPawnStructure int
	WKingSafety    int
	WPiecePlacement int
	WDevelopment   int
	WThreats       int
	WSpace         int
	WTempo         int
}

// intGeneRange bounds an integer gene (inclusive).
type intGeneRange struct {
	min, max int
}

var (
	rangeSearchDepth       = intGeneRange{1, 8}
	rangeNullMoveReduction = intGeneRange{2, 4}
	rangeLMRThreshold      = intGeneRange{2, 6}
	rangeFutilityMargin    = intGeneRange{0, 500}
	rangeWeight            = intGeneRange{0, 400}
)

func (r intGeneRange) clamp(v int) int {
	if v < r.min {
		return r.min
	}
	if v > r.max {
		return r.max
	}
	return v
}

// Default returns the nominal configuration: every weight at 100,
// every boolean enabled, and engine knobs at reasonable middle values.
// Used as the baseline for tests and as a sanity check outside the GA.
func Default() SearchConfig {
	return SearchConfig{
		SearchDepth:       4,
		NullMoveReduction: 2,
		LMRThreshold:      3,
		FutilityMargin:    150,

		EnableQuiescence:  true,
		EnableNMP:         true,
		EnableLMR:         true,
		EnableFutility:    true,
		EnableSEEOrdering: true,
		EnableKiller:      true,
		EnableHistory:     true,

		WMaterial:       100,
		WPST:            100,
		WMobility:       100,
		WPawnStructure:  100,
		WKingSafety:     100,
		WPiecePlacement: 100,
		WDevelopment:    100,
		WThreats:        100,
		WSpace:          100,
		WTempo:          100,
	}
}

// Clamp forces every gene back into its legal range in place. Called
// after crossover and mutation so an out-of-range intermediate value
// never escapes into a persisted Individual.
func (c *SearchConfig) Clamp() {
	c.SearchDepth = rangeSearchDepth.clamp(c.SearchDepth)
	c.NullMoveReduction = rangeNullMoveReduction.clamp(c.NullMoveReduction)
	c.LMRThreshold = rangeLMRThreshold.clamp(c.LMRThreshold)
	c.FutilityMargin = rangeFutilityMargin.clamp(c.FutilityMargin)

	c.WMaterial = rangeWeight.clamp(c.WMaterial)
	c.WPST = rangeWeight.clamp(c.WPST)
	c.WMobility = rangeWeight.clamp(c.WMobility)
	c.WPawnStructure = rangeWeight.clamp(c.WPawnStructure)
	c.WKingSafety = rangeWeight.clamp(c.WKingSafety)
	c.WPiecePlacement = rangeWeight.clamp(c.WPiecePlacement)
	c.WDevelopment = rangeWeight.clamp(c.WDevelopment)
	c.WThreats = rangeWeight.clamp(c.WThreats)
	c.WSpace = rangeWeight.clamp(c.WSpace)
	c.WTempo = rangeWeight.clamp(c.WTempo)
}

// Random produces an initial-population individual: booleans
// uniformly random, integers uniform in range, weights uniform in
// [50, 150].
func Random(rnd *rand.Rand) SearchConfig {
	return SearchConfig{
		SearchDepth:       rangeSearchDepth.min + rnd.Intn(rangeSearchDepth.max-rangeSearchDepth.min+1),
		NullMoveReduction: rangeNullMoveReduction.min + rnd.Intn(rangeNullMoveReduction.max-rangeNullMoveReduction.min+1),
		LMRThreshold:      rangeLMRThreshold.min + rnd.Intn(rangeLMRThreshold.max-rangeLMRThreshold.min+1),
		FutilityMargin:    rangeFutilityMargin.min + rnd.Intn(rangeFutilityMargin.max-rangeFutilityMargin.min+1),

		EnableQuiescence:  rnd.Intn(2) == 1,
		EnableNMP:         rnd.Intn(2) == 1,
		EnableLMR:         rnd.Intn(2) == 1,
		EnableFutility:    rnd.Intn(2) == 1,
		EnableSEEOrdering: rnd.Intn(2) == 1,
		EnableKiller:      rnd.Intn(2) == 1,
		EnableHistory:     rnd.Intn(2) == 1,

		WMaterial:       50 + rnd.Intn(101),
		WPST:            50 + rnd.Intn(101),
		WMobility:       50 + rnd.Intn(101),
		WPawnStructure:  50 + rnd.Intn(101),
		WKingSafety:     50 + rnd.Intn(101),
		WPiecePlacement: 50 + rnd.Intn(101),
		WDevelopment:    50 + rnd.Intn(101),
		WThreats:        50 + rnd.Intn(101),
		WSpace:          50 + rnd.Intn(101),
		WTempo:          50 + rnd.Intn(101),
	}
}

// Crossover performs per-gene uniform crossover between two parents:
// for each gene independently, the child inherits a's value or b's
// value with equal probability.
func Crossover(a, b SearchConfig, rnd *rand.Rand) SearchConfig {
	pick := func(fromA bool, x, y int) int {
		if fromA {
			return x
		}
		return y
	}
	pickBool := func(fromA bool, x, y bool) bool {
		if fromA {
			return x
		}
		return y
	}
	coin := func() bool { return rnd.Intn(2) == 0 }

	return SearchConfig{
		SearchDepth:       pick(coin(), a.SearchDepth, b.SearchDepth),
		NullMoveReduction: pick(coin(), a.NullMoveReduction, b.NullMoveReduction),
		LMRThreshold:      pick(coin(), a.LMRThreshold, b.LMRThreshold),
		FutilityMargin:    pick(coin(), a.FutilityMargin, b.FutilityMargin),

		EnableQuiescence:  pickBool(coin(), a.EnableQuiescence, b.EnableQuiescence),
		EnableNMP:         pickBool(coin(), a.EnableNMP, b.EnableNMP),
		EnableLMR:         pickBool(coin(), a.EnableLMR, b.EnableLMR),
		EnableFutility:    pickBool(coin(), a.EnableFutility, b.EnableFutility),
		EnableSEEOrdering: pickBool(coin(), a.EnableSEEOrdering, b.EnableSEEOrdering),
		EnableKiller:      pickBool(coin(), a.EnableKiller, b.EnableKiller),
		EnableHistory:     pickBool(coin(), a.EnableHistory, b.EnableHistory),

		WMaterial:       pick(coin(), a.WMaterial, b.WMaterial),
		WPST:            pick(coin(), a.WPST, b.WPST),
		WMobility:       pick(coin(), a.WMobility, b.WMobility),
		WPawnStructure:  pick(coin(), a.WPawnStructure, b.WPawnStructure),
		WKingSafety:     pick(coin(), a.WKingSafety, b.WKingSafety),
		WPiecePlacement: pick(coin(), a.WPiecePlacement, b.WPiecePlacement),
		WDevelopment:    pick(coin(), a.WDevelopment, b.WDevelopment),
		WThreats:        pick(coin(), a.WThreats, b.WThreats),
		WSpace:          pick(coin(), a.WSpace, b.WSpace),
		WTempo:          pick(coin(), a.WTempo, b.WTempo),
	}
}

const mutationProbability = 0.1

// Mutate returns a perturbed copy of c at the default 0.1 mutation
// probability; c itself is passed by value and left unchanged.
// Numeric genes are scaled by a factor drawn from U(0.8, 1.2) and
// re-clamped; boolean genes are flipped.
func Mutate(c SearchConfig, rnd *rand.Rand) SearchConfig {
	return MutateWithRate(c, mutationProbability, rnd)
}

// MutateWithRate is Mutate with the per-gene mutation probability read
// from rate instead of the hardcoded default, for callers plumbing it
// through as a run-time configuration input.
func MutateWithRate(c SearchConfig, rate float64, rnd *rand.Rand) SearchConfig {
	jitter := func(v int) int {
		if rnd.Float64() >= rate {
			return v
		}
		factor := 0.8 + rnd.Float64()*0.4
		return int(float64(v) * factor)
	}
	flip := func(v bool) bool {
		if rnd.Float64() >= rate {
			return v
		}
		return !v
	}

	c.SearchDepth = jitter(c.SearchDepth)
	c.NullMoveReduction = jitter(c.NullMoveReduction)
	c.LMRThreshold = jitter(c.LMRThreshold)
	c.FutilityMargin = jitter(c.FutilityMargin)

	c.EnableQuiescence = flip(c.EnableQuiescence)
	c.EnableNMP = flip(c.EnableNMP)
	c.EnableLMR = flip(c.EnableLMR)
	c.EnableFutility = flip(c.EnableFutility)
	c.EnableSEEOrdering = flip(c.EnableSEEOrdering)
	c.EnableKiller = flip(c.EnableKiller)
	c.EnableHistory = flip(c.EnableHistory)

	c.WMaterial = jitter(c.WMaterial)
	c.WPST = jitter(c.WPST)
	c.WMobility = jitter(c.WMobility)
	c.WPawnStructure = jitter(c.WPawnStructure)
	c.WKingSafety = jitter(c.WKingSafety)
	c.WPiecePlacement = jitter(c.WPiecePlacement)
	c.WDevelopment = jitter(c.WDevelopment)
	c.WThreats = jitter(c.WThreats)
	c.WSpace = jitter(c.WSpace)
	c.WTempo = jitter(c.WTempo)

	c.Clamp()
	return c
}

// AsGeneMap renders the chromosome as a name-value map for JSON
// persistence (population.json's chromosome object).
func (c SearchConfig) AsGeneMap() map[string]interface{} {
	return map[string]interface{}{
		"search_depth":        c.SearchDepth,
		"null_move_reduction":  c.NullMoveReduction,
		"lmr_threshold":        c.LMRThreshold,
		"futility_margin":      c.FutilityMargin,
		"enable_quiescence":    c.EnableQuiescence,
		"enable_nmp":           c.EnableNMP,
		"enable_lmr":           c.EnableLMR,
		"enable_futility":      c.EnableFutility,
		"enable_see_ordering":  c.EnableSEEOrdering,
		"enable_killer":        c.EnableKiller,
		"enable_history":       c.EnableHistory,
		"w_material":           c.WMaterial,
		"w_pst":                c.WPST,
		"w_mobility":           c.WMobility,
		"w_pawn_structure":     c.WPawnStructure,
		"w_king_safety":        c.WKingSafety,
		"w_piece_placement":    c.WPiecePlacement,
		"w_development":        c.WDevelopment,
		"w_threats":            c.WThreats,
		"w_space":              c.WSpace,
		"w_tempo":              c.WTempo,
	}
}

// FromGeneMap rebuilds a SearchConfig from the map AsGeneMap produces,
// the inverse used when reloading population.json. Values arriving
// through encoding/json are float64 for numbers and bool for
// booleans; both forms are accepted so a map built directly in Go
// (as in tests) also round-trips.
func FromGeneMap(m map[string]interface{}) SearchConfig {
	var geneInt = func(key string) int {
		switch v := m[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		default:
			return 0
		}
	}
	var geneBool = func(key string) bool {
		v, _ := m[key].(bool)
		return v
	}

	var c = SearchConfig{
		SearchDepth:       geneInt("search_depth"),
		NullMoveReduction: geneInt("null_move_reduction"),
		LMRThreshold:      geneInt("lmr_threshold"),
		FutilityMargin:    geneInt("futility_margin"),

		EnableQuiescence:  geneBool("enable_quiescence"),
		EnableNMP:         geneBool("enable_nmp"),
		EnableLMR:         geneBool("enable_lmr"),
		EnableFutility:    geneBool("enable_futility"),
		EnableSEEOrdering: geneBool("enable_see_ordering"),
		EnableKiller:      geneBool("enable_killer"),
		EnableHistory:     geneBool("enable_history"),

		WMaterial:       geneInt("w_material"),
		WPST:            geneInt("w_pst"),
		WMobility:       geneInt("w_mobility"),
		WPawnStructure:  geneInt("w_pawn_structure"),
		WKingSafety:     geneInt("w_king_safety"),
		WPiecePlacement: geneInt("w_piece_placement"),
		WDevelopment:    geneInt("w_development"),
		WThreats:        geneInt("w_threats"),
		WSpace:          geneInt("w_space"),
		WTempo:          geneInt("w_tempo"),
	}
	c.Clamp()
	return c
}
