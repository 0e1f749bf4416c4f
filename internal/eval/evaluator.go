// Package eval computes a centipawn score for a position under a
// given configuration, the way the engine's eval packages (Counter's
// tapered material+PST evaluator, generalized with weighted heuristic
// components) compute a score for a fixed weight set.
package eval

import (
	"github.com/wizardbeard/chessevolve/internal/board"
	"github.com/wizardbeard/chessevolve/internal/config"
)

// Evaluate runs the full scoring algorithm: material+PST
// scaled by w_material/w_pst, eight heuristic components scaled by
// their own weights and averaged, returned from the side-to-move's
// perspective. The result is always a deterministic integer; no
// floating point value escapes this function.
func Evaluate(p *board.Position, cfg config.SearchConfig) int {
	var phase = gamePhase(p)
	var material, pstSum Score

	for sq := board.SquareA1; sq <= board.SquareH8; sq++ {
		pieceType, white := p.PieceAt(sq)
		if pieceType == board.Empty {
			continue
		}
		var sign = 1
		if !white {
			sign = -1
		}
		material = material.add(Score{Mg: sign * pieceValue[pieceType], Eg: sign * pieceValue[pieceType]})
		var s = pstScore(pieceType, sq, white)
		if !white {
			s = Score{Mg: -s.Mg, Eg: -s.Eg}
		}
		pstSum = pstSum.add(s)
	}

	var materialCp = interpolate(material, phase)
	var pstCp = interpolate(pstSum, phase)

	var sCore = cfg.WMaterial*materialCp/100 + cfg.WPST*pstCp/100

	type weightedComponent struct {
		weight int
		value  int
	}
	var components = [8]weightedComponent{
		{cfg.WPawnStructure, pawnStructure(p)},
		{cfg.WMobility, mobility(p)},
		{cfg.WKingSafety, kingSafety(p)},
		{cfg.WPiecePlacement, piecePlacement(p)},
		{cfg.WDevelopment, development(p, phase)},
		{cfg.WThreats, threats(p)},
		{cfg.WSpace, space(p)},
		{cfg.WTempo, tempo(p)},
	}

	var weightedSum, weightTotal int
	for _, c := range components {
		weightedSum += c.weight * c.value
		weightTotal += c.weight
	}
	if weightTotal < 1 {
		weightTotal = 1
	}
	var sHeur = weightedSum / weightTotal

	var total = sCore + sHeur
	if !p.WhiteMove {
		total = -total
	}
	return total
}
