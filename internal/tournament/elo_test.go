package tournament

import "testing"

func TestExpectedScoreIsHalfForEqualRatings(t *testing.T) {
	e := ExpectedScore(1200, 1200)
	if e != 0.5 {
		t.Fatalf("expected 0.5 for equal ratings, got %v", e)
	}
}

func TestExpectedScoreFavorsHigherRating(t *testing.T) {
	e := ExpectedScore(1400, 1200)
	if e <= 0.5 {
		t.Fatalf("expected higher-rated player to have expected score above 0.5, got %v", e)
	}
}

func TestUpdatedEloMovesTowardActualScore(t *testing.T) {
	r := UpdatedElo(1200, 1, 0.5, DefaultK)
	if r <= 1200 {
		t.Fatalf("expected rating to rise after a win at even expectation, got %v", r)
	}
	r = UpdatedElo(1200, 0, 0.5, DefaultK)
	if r >= 1200 {
		t.Fatalf("expected rating to fall after a loss, got %v", r)
	}
}

func TestEloSumIsPreservedAcrossAMatch(t *testing.T) {
	var rWhite, rBlack = 1250.0, 1180.0
	var eWhite = ExpectedScore(rWhite, rBlack)
	var eBlack = 1 - eWhite

	for _, result := range []string{"1-0", "0-1", "1/2-1/2"} {
		sWhite, sBlack := scoresFor(result)
		newWhite := UpdatedElo(rWhite, sWhite, eWhite, DefaultK)
		newBlack := UpdatedElo(rBlack, sBlack, eBlack, DefaultK)
		var deltaSum = (newWhite - rWhite) + (newBlack - rBlack)
		if deltaSum > 1e-6 || deltaSum < -1e-6 {
			t.Fatalf("result %q: expected ELO deltas to sum to ~0, got %v", result, deltaSum)
		}
	}
}

func TestScoresForMapsEveryResult(t *testing.T) {
	cases := []struct {
		result               string
		wantWhite, wantBlack float64
	}{
		{"1-0", 1, 0},
		{"0-1", 0, 1},
		{"1/2-1/2", 0.5, 0.5},
	}
	for _, c := range cases {
		w, b := scoresFor(c.result)
		if w != c.wantWhite || b != c.wantBlack {
			t.Errorf("scoresFor(%q) = %v, %v; want %v, %v", c.result, w, b, c.wantWhite, c.wantBlack)
		}
	}
}
