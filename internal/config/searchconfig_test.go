package config

import (
	"math/rand"
	"testing"
)

func TestRandomWithinRanges(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		c := Random(rnd)
		if c.SearchDepth < 1 || c.SearchDepth > 8 {
			t.Fatalf("SearchDepth out of range: %d", c.SearchDepth)
		}
		if c.NullMoveReduction < 2 || c.NullMoveReduction > 4 {
			t.Fatalf("NullMoveReduction out of range: %d", c.NullMoveReduction)
		}
		if c.LMRThreshold < 2 || c.LMRThreshold > 6 {
			t.Fatalf("LMRThreshold out of range: %d", c.LMRThreshold)
		}
		if c.FutilityMargin < 0 || c.FutilityMargin > 500 {
			t.Fatalf("FutilityMargin out of range: %d", c.FutilityMargin)
		}
		if c.WMaterial < 50 || c.WMaterial > 150 {
			t.Fatalf("WMaterial out of initial range: %d", c.WMaterial)
		}
	}
}

func TestMutateStaysInRange(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	c := Default()
	for i := 0; i < 1000; i++ {
		c = Mutate(c, rnd)
		if c.SearchDepth < 1 || c.SearchDepth > 8 {
			t.Fatalf("SearchDepth escaped range after mutation: %d", c.SearchDepth)
		}
		if c.WKingSafety < 0 || c.WKingSafety > 400 {
			t.Fatalf("WKingSafety escaped range after mutation: %d", c.WKingSafety)
		}
	}
}

func TestCrossoverPicksParentValues(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	a := Default()
	b := Default()
	b.SearchDepth = 8
	b.WTempo = 400
	for i := 0; i < 50; i++ {
		child := Crossover(a, b, rnd)
		if child.SearchDepth != a.SearchDepth && child.SearchDepth != b.SearchDepth {
			t.Fatalf("child gene not inherited from either parent: %d", child.SearchDepth)
		}
		if child.WTempo != a.WTempo && child.WTempo != b.WTempo {
			t.Fatalf("child gene not inherited from either parent: %d", child.WTempo)
		}
	}
}

func TestClampEnforcesBounds(t *testing.T) {
	c := SearchConfig{SearchDepth: 99, FutilityMargin: -5, WMaterial: 1000}
	c.Clamp()
	if c.SearchDepth != 8 {
		t.Fatalf("expected SearchDepth clamped to 8, got %d", c.SearchDepth)
	}
	if c.FutilityMargin != 0 {
		t.Fatalf("expected FutilityMargin clamped to 0, got %d", c.FutilityMargin)
	}
	if c.WMaterial != 400 {
		t.Fatalf("expected WMaterial clamped to 400, got %d", c.WMaterial)
	}
}
