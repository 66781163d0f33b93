// Package testutil provides deterministic fixtures for kernel tests.
package testutil

import (
	"math/rand"

	"github.com/AlexVanMeegen/nest-simulator/model"
)

// RNG encapsulates a seeded random number generator.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GeneratePositions generates num random positions strictly inside the box
// [lowerLeft, lowerLeft+extent).
func (r *RNG) GeneratePositions(num int, lowerLeft, extent model.Position) []model.Position {
	positions := make([]model.Position, num)
	for i := range positions {
		p := make(model.Position, lowerLeft.Dim())
		for d := range p {
			p[d] = lowerLeft[d] + r.rand.Float64()*extent[d]
		}
		positions[i] = p
	}
	return positions
}
