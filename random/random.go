package random

import (
	"math"
	"time"
	"unicode/utf16"
)

// golden is the Weyl increment added to the state before every draw.
const golden uint32 = 0x6D2B79F5

// Hash53 hashes s into a 53-bit value (cyrb53). s is consumed as UTF-16 code
// units, so non-ASCII input hashes the same way as in browsers and Node.
func Hash53(s string) uint64 {
	h1 := uint32(0xdeadbeef)
	h2 := uint32(0x41c6ce57)
	for _, ch := range utf16.Encode([]rune(s)) {
		c := uint32(ch)
		h1 = (h1 ^ c) * 2654435761
		h2 = (h2 ^ c) * 1597334677
	}
	h1 = (h1^h1>>16)*2246822507 ^ (h2^h2>>13)*3266489909
	h2 = (h2^h2>>16)*2246822507 ^ (h1^h1>>13)*3266489909
	return uint64(h2&0x1fffff)<<32 | uint64(h1)
}

// HashToSeed maps s to a generator seed. It is the low 32 bits of Hash53.
func HashToSeed(s string) uint32 {
	return uint32(Hash53(s))
}

// Step advances state by one draw and returns the new state together with the
// drawn value in [0, 1).
func Step(state uint32) (uint32, float64) {
	state += golden
	t := state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return state, float64(t^t>>14) / (1 << 32)
}

// Generator is a mulberry32 pseudo-random generator.
//
// The zero value is a valid generator seeded with 0. A Generator is a plain
// value: copying it forks the sequence, and it must not be shared between
// goroutines without external synchronization.
type Generator struct {
	state uint32
}

// New returns a Generator seeded with seed.
func New(seed uint32) Generator {
	return Generator{state: seed}
}

// NewFromString returns a Generator seeded with HashToSeed(s).
func NewFromString(s string) Generator {
	return New(HashToSeed(s))
}

// NewFromTime returns a Generator seeded from t.
func NewFromTime(t time.Time) Generator {
	return New(uint32(t.UnixNano()))
}

// State returns the current internal state.
func (g Generator) State() uint32 {
	return g.state
}

// Float64 returns the next value in [0, 1).
func (g *Generator) Float64() float64 {
	var v float64
	g.state, v = Step(g.state)
	return v
}

// IntBetween returns an integer in [ceil(min), floor(max)] using one draw.
// If the range is empty, ceil(min) is returned without advancing g.
func (g *Generator) IntBetween(min, max float64) int64 {
	min = math.Ceil(min)
	max = math.Floor(max)
	if max < min {
		return int64(min)
	}
	return int64(math.Floor(g.Float64()*(max-min+1) + min))
}

// IntBetween returns an integer in [ceil(min), floor(max)].
//
// A non-empty seed makes the result reproducible: the same min, max and seed
// always give the same value. An empty seed draws from a generator seeded with
// the current time.
func IntBetween(min, max float64, seed string) int64 {
	var g Generator
	if seed != "" {
		g = NewFromString(seed)
	} else {
		g = NewFromTime(time.Now())
	}
	return g.IntBetween(min, max)
}
