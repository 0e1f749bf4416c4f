package ga

import (
	"math/rand"

	"github.com/wizardbeard/chessevolve/internal/config"
)

// DefaultPopulationSize is the population size used when a caller's
// Config leaves it at zero.
const DefaultPopulationSize = 32

// Population is one generation's full roster plus its index.
type Population struct {
	Generation  int
	Individuals []Individual
}

// NewInitialPopulation builds generation 0: size individuals, each
// with a uniformly random chromosome and no parents.
func NewInitialPopulation(size int, rnd *rand.Rand) Population {
	if size <= 0 {
		size = DefaultPopulationSize
	}
	var individuals = make([]Individual, size)
	for i := range individuals {
		individuals[i] = NewIndividual(config.Random(rnd), 0, nil)
	}
	return Population{Generation: 0, Individuals: individuals}
}

// ByID looks up an individual by ID within the population. ok is
// false if no individual carries that ID.
func (pop Population) ByID(id uint64) (Individual, bool) {
	for _, ind := range pop.Individuals {
		if ind.ID == id {
			return ind, true
		}
	}
	return Individual{}, false
}
