// Package sampler selects a contiguous window of price rows at a random offset.
package sampler

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/stockcast/internal/domain"
)

// Sampler picks windows of rows starting at a uniformly random offset.
type Sampler struct {
	rnd *rand.Rand
}

// Option defines a function to configure the Sampler.
type Option func(*Sampler)

// WithRand sets the random source used to choose offsets.
func WithRand(r *rand.Rand) Option {
	return func(s *Sampler) {
		s.rnd = r
	}
}

// WithSeed makes offsets reproducible for the given seed.
func WithSeed(seed uint64) Option {
	return func(s *Sampler) {
		s.rnd = rand.New(rand.NewPCG(seed, seed))
	}
}

// New creates a Sampler seeded from the runtime random source unless overridden.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Sample returns windowSize consecutive rows starting at a random offset in
// [0, len(rows)-windowSize]. Rows are expected to be ordered by date; the order
// is not verified. The returned slice does not share memory with rows.
func (s *Sampler) Sample(rows []domain.Row, windowSize int) ([]domain.Row, error) {
	if windowSize < 1 {
		return nil, errors.Wrapf(domain.ErrInvalidWindowSize, "got %d", windowSize)
	}
	if len(rows) < windowSize {
		return nil, errors.Wrapf(domain.ErrDataInsufficient, "have %d rows, need %d", len(rows), windowSize)
	}

	offset := s.rnd.IntN(len(rows) - windowSize + 1)

	window := make([]domain.Row, windowSize)
	copy(window, rows[offset:offset+windowSize])

	return window, nil
}
