package ga

import (
	"math/rand"

	"github.com/wizardbeard/chessevolve/internal/config"
)

// EliteSet selects the elite of a finalized generation: every
// individual whose final ELO exceeds startingElo, augmented with the
// top two by ELO if that set has fewer than two members. The returned
// slice is sorted by descending ELO.
func EliteSet(individuals []Individual, startingElo float64) []Individual {
	var ranked = append([]Individual(nil), individuals...)
	SortByEloDesc(ranked)

	var elite []Individual
	for _, ind := range ranked {
		if ind.Elo > startingElo {
			elite = append(elite, ind)
		}
	}
	if len(elite) < 2 {
		var want = 2
		if want > len(ranked) {
			want = len(ranked)
		}
		elite = append([]Individual(nil), ranked[:want]...)
	}
	return elite
}

// NextGeneration produces the population replacing a finalized one:
// every elite individual is copied forward with a fresh ID and ELO
// reset to startingElo, and the remaining size-len(elite) slots are
// filled by uniform-crossover offspring of two elite parents (picked
// with replacement across slots, without replacement within one
// offspring), each gene independently mutated with probability
// mutationRate.
func NextGeneration(finalized []Individual, size int, startingElo, mutationRate float64, rnd *rand.Rand) Population {
	var elite = EliteSet(finalized, startingElo)
	var toGeneration = 0
	if len(finalized) > 0 {
		toGeneration = finalized[0].Generation + 1
	}

	if size <= 0 {
		size = len(finalized)
	}
	if size <= 0 {
		size = DefaultPopulationSize
	}

	var next = make([]Individual, 0, size)
	for _, e := range elite {
		next = append(next, CloneWithFreshID(e, toGeneration))
		if len(next) >= size {
			break
		}
	}

	for len(next) < size {
		var a, b = pickTwoParents(elite, rnd)
		var childCfg = config.Crossover(a.Config, b.Config, rnd)
		childCfg = config.MutateWithRate(childCfg, mutationRate, rnd)
		next = append(next, NewIndividual(childCfg, toGeneration, []uint64{a.ID, b.ID}))
	}

	return Population{Generation: toGeneration, Individuals: next}
}

// pickTwoParents picks two distinct parents uniformly at random from
// elite (with replacement across calls, without replacement within
// one call). If elite has only one member, both parents are it — a
// self-cross, which still yields a valid (if unvaried) offspring.
func pickTwoParents(elite []Individual, rnd *rand.Rand) (Individual, Individual) {
	var a = elite[rnd.Intn(len(elite))]
	if len(elite) == 1 {
		return a, a
	}
	var b = elite[rnd.Intn(len(elite))]
	for b.ID == a.ID {
		b = elite[rnd.Intn(len(elite))]
	}
	return a, b
}
