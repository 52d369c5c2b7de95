// Package stochastic produces the exploration term added to each state
// update. Randomness is injected so tests can run with a seeded source
// while production uses a crypto-seeded one.
package stochastic

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"sync"
)

// DefaultStdDev is the standard deviation of the exploration draw.
const DefaultStdDev = 0.1

// #region source

// Source supplies normally distributed values. *math/rand.Rand satisfies it.
type Source interface {
	NormFloat64() float64
}

// lockedSource serializes draws so a single generator can serve
// concurrent compute cycles.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) NormFloat64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.NormFloat64()
}

// NewLockedSource returns a seeded source that is safe for concurrent use.
func NewLockedSource(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// #endregion source

// #region generator

// Generator draws zero-mean normal perturbations with a fixed standard
// deviation. The draw is intentionally unbounded: only the scaled
// contribution is kept small, and the final state is clamped downstream.
type Generator struct {
	src    Source
	stddev float64
}

// NewGenerator validates and builds a generator. A nil source or negative
// standard deviation is a construction-time configuration error.
func NewGenerator(src Source, stddev float64) (*Generator, error) {
	if src == nil {
		return nil, errors.New("stochastic: nil randomness source")
	}
	if stddev < 0 {
		return nil, fmt.Errorf("stochastic: negative standard deviation %f", stddev)
	}
	return &Generator{src: src, stddev: stddev}, nil
}

// Draw returns one perturbation sample.
func (g *Generator) Draw() float64 {
	return g.stddev * g.src.NormFloat64()
}

// StdDev returns the configured standard deviation.
func (g *Generator) StdDev() float64 {
	return g.stddev
}

// #endregion generator
