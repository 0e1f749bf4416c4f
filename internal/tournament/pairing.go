package tournament

import (
	"slices"

	"github.com/wizardbeard/chessevolve/internal/ga"
)

// Pairing is one round's assignment of colours to a pair of
// individuals.
type Pairing struct {
	WhiteID uint64
	BlackID uint64
}

// PairRound runs Dutch-Swiss pairing over individuals for one round:
// sort by descending ELO (ties by ascending ID), split into top and
// bottom halves, pair top_i with bottom_i. A pairing already recorded
// in history is swapped for the first compatible partner within the
// same half; an individual with no compatible partner left receives a
// bye instead of a pairing. round selects which half plays White, so
// colour assignment alternates across rounds.
func PairRound(individuals []ga.Individual, history *ga.PairingHistory, round int) (pairings []Pairing, byes []uint64) {
	var ranked = slices.Clone(individuals)
	ga.SortByEloDesc(ranked)

	if len(ranked)%2 == 1 {
		byes = append(byes, ranked[len(ranked)-1].ID)
		ranked = ranked[:len(ranked)-1]
	}
	if len(ranked) == 0 {
		return nil, byes
	}

	var half = len(ranked) / 2
	var top = ranked[:half]
	var bottom = slices.Clone(ranked[half:])
	var usedBottom = make([]bool, len(bottom))

	for i, t := range top {
		var matched = false
		for offset := 0; offset < len(bottom); offset++ {
			var j = (i + offset) % len(bottom)
			if usedBottom[j] {
				continue
			}
			var b = bottom[j]
			if history.Has(t.ID, b.ID) {
				continue
			}
			pairings = append(pairings, colourPair(t.ID, b.ID, round))
			usedBottom[j] = true
			matched = true
			break
		}
		if !matched {
			byes = append(byes, t.ID)
		}
	}

	var leftover []ga.Individual
	for j, used := range usedBottom {
		if !used {
			leftover = append(leftover, bottom[j])
		}
	}
	for len(leftover) > 0 {
		var a = leftover[0]
		leftover = leftover[1:]
		var matched = false
		for k := 0; k < len(leftover); k++ {
			if !history.Has(a.ID, leftover[k].ID) {
				pairings = append(pairings, colourPair(a.ID, leftover[k].ID, round))
				leftover = slices.Delete(leftover, k, k+1)
				matched = true
				break
			}
		}
		if !matched {
			byes = append(byes, a.ID)
		}
	}

	return pairings, byes
}

// colourPair assigns White/Black between a and b, alternating by
// round parity so neither individual's score group systematically
// favours one colour across a generation.
func colourPair(a, b uint64, round int) Pairing {
	if round%2 == 0 {
		return Pairing{WhiteID: a, BlackID: b}
	}
	return Pairing{WhiteID: b, BlackID: a}
}
