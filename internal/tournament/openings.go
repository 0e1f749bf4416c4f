package tournament

// builtinOpenings is a small fixed set of balanced middlegame-adjacent
// FENs, so consecutive rounds in a generation don't all replay the
// mirror-image of the same starting position. PGN opening-book
// reading stays out of scope; this is just a rotation over literal
// FEN strings.
var builtinOpenings = []string{
	"rn1q1rk1/1p2ppbp/p1p2np1/3p4/2PP2b1/1PNBPN2/P4PPP/R1BQ1RK1 w - - 1 9",
	"r1b1kb1r/1pq2ppp/p1nppn2/8/3NP1P1/2N4P/PPP2PB1/R1BQK2R w KQkq - 2 9",
	"r1bq1rk1/pp1nppbp/3p1np1/8/P2p1B2/4PN1P/1PP1BPP1/RN1Q1RK1 w - - 0 9",
	"r1bqk2r/p3bpp1/1pn1pn1p/2pp4/3P3B/2PBPN2/PP1N1PPP/R2QK2R w KQkq - 0 9",
	"r2qk2r/p1pp1ppp/b1p2n2/8/2P5/6P1/PP1QPP1P/RN2KB1R w KQkq - 1 9",
	"r1bqr1k1/pppp1ppp/2n2n2/2bN4/2P1p2N/6P1/PP1PPPBP/R1BQ1RK1 w - - 6 9",
	"r1bq1rk1/1p3ppp/2n1pn2/p1bp4/2P5/P3PN2/1P1NBPPP/R1BQK2R w KQ - 2 9",
}

// OpeningForRound rotates through builtinOpenings by round index,
// wrapping around. Round 0 always plays the standard initial position
// so depth-1 determinism tests have a known starting point.
func OpeningForRound(round int) string {
	if round <= 0 {
		return ""
	}
	return builtinOpenings[(round-1)%len(builtinOpenings)]
}
