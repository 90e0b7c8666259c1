package random

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash53(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"", 3338908027751811},
		{"a", 7929297801672961},
		{"hello", 4625896200565286},
		{"PRESIDENT WOODROW WILSON", 5757219731893543},
	}
	for _, tt := range tests {
		got := Hash53(tt.in)
		assert.Equal(t, tt.want, got, "Hash53(%q)", tt.in)
		assert.Less(t, got, uint64(1)<<53)
	}
}

func TestHashToSeed(t *testing.T) {
	assert.Equal(t, uint32(755199271), HashToSeed("PRESIDENT WOODROW WILSON"))
	assert.Equal(t, HashToSeed("same input"), HashToSeed("same input"))
	assert.NotEqual(t, HashToSeed("seed1"), HashToSeed("seed2"))
}

func TestGenerator_Sequence(t *testing.T) {
	t.Run("seed 0", func(t *testing.T) {
		g := New(0)
		assert.InDelta(t, 0.26642920868471265, g.Float64(), 1e-15)
		assert.InDelta(t, 0.0003297457005828619, g.Float64(), 1e-15)
		assert.InDelta(t, 0.2232720274478197, g.Float64(), 1e-15)
	})

	t.Run("string seed", func(t *testing.T) {
		g := NewFromString("PRESIDENT WOODROW WILSON")
		assert.InDelta(t, 0.8506100284866989, g.Float64(), 1e-15)
		assert.InDelta(t, 0.27733876975253224, g.Float64(), 1e-15)
		assert.InDelta(t, 0.9517123035620898, g.Float64(), 1e-15)
	})

	t.Run("zero value equals seed 0", func(t *testing.T) {
		var zero Generator
		seeded := New(0)
		for i := 0; i < 10; i++ {
			require.Equal(t, seeded.Float64(), zero.Float64())
		}
	})
}

func TestGenerator_Deterministic(t *testing.T) {
	for _, seed := range []uint32{0, 1, 42, 1 << 31, ^uint32(0)} {
		a, b := New(seed), New(seed)
		for i := 0; i < 100; i++ {
			va, vb := a.Float64(), b.Float64()
			require.Equal(t, va, vb, "seed %d draw %d", seed, i)
			require.GreaterOrEqual(t, va, 0.0)
			require.Less(t, va, 1.0)
		}
	}
}

func TestGenerator_CopyForks(t *testing.T) {
	g := New(42)
	g.Float64()
	fork := g
	assert.Equal(t, g.Float64(), fork.Float64())
	assert.Equal(t, g.State(), fork.State())
}

func TestStep(t *testing.T) {
	state, v := Step(0)
	assert.Equal(t, golden, state)
	assert.InDelta(t, 0.26642920868471265, v, 1e-15)

	g := New(7)
	next, want := Step(7)
	assert.Equal(t, want, g.Float64())
	assert.Equal(t, next, g.State())
}

func TestIntBetween(t *testing.T) {
	t.Run("jitter fixture", func(t *testing.T) {
		var got []int64
		for attempt := 1; attempt <= 4; attempt++ {
			got = append(got, IntBetween(0, 50, fmt.Sprintf("TOAD STROGANOFF%d", attempt)))
		}
		assert.Equal(t, []int64{24, 17, 15, 19}, got)
	})

	t.Run("dice", func(t *testing.T) {
		var got []int64
		for i := 1; i <= 5; i++ {
			got = append(got, IntBetween(1, 6, fmt.Sprintf("dice%d", i)))
		}
		assert.Equal(t, []int64{5, 2, 4, 4, 3}, got)
	})

	t.Run("single value range", func(t *testing.T) {
		assert.Equal(t, int64(10), IntBetween(10, 10, "x"))
	})

	t.Run("rounds bounds inward", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			n := IntBetween(0.2, 2.8, fmt.Sprint(i))
			require.GreaterOrEqual(t, n, int64(1))
			require.LessOrEqual(t, n, int64(2))
		}
	})

	t.Run("empty range", func(t *testing.T) {
		g := New(3)
		assert.Equal(t, int64(5), g.IntBetween(5, 4))
		assert.Equal(t, uint32(3), g.State())
	})

	t.Run("unseeded stays in range", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			n := IntBetween(0, 50, "")
			require.GreaterOrEqual(t, n, int64(0))
			require.LessOrEqual(t, n, int64(50))
		}
	})
}

func TestNewFromTime(t *testing.T) {
	ts := time.Unix(1700000000, 123456789)
	a, b := NewFromTime(ts), NewFromTime(ts)
	assert.Equal(t, a.Float64(), b.Float64())
	assert.Equal(t, uint32(ts.UnixNano()), NewFromTime(ts).State())
}
