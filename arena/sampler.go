// Package arena provides constrained spatial sampling over the play disk.
package arena

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/rush/components"
)

// Sampler draws gem spawn candidates inside a circular arena.
type Sampler struct {
	rng           *rand.Rand
	radius        float32
	groundHeight  float32
	minSeparation float32
	retries       int
	rareChance    float32
	epicChance    float32
}

// NewSampler creates a sampler for an arena of the given radius.
func NewSampler(rng *rand.Rand, radius, groundHeight, minSeparation float32, retries int, rareChance, epicChance float32) *Sampler {
	if retries < 1 {
		retries = 1
	}
	return &Sampler{
		rng:           rng,
		radius:        radius,
		groundHeight:  groundHeight,
		minSeparation: minSeparation,
		retries:       retries,
		rareChance:    rareChance,
		epicChance:    epicChance,
	}
}

// SampleGround draws a landed spawn position at ground height.
// The candidate must keep the minimum XZ separation from every position in
// existing; after the retry budget is exhausted the sample is rejected
// (ok=false) and the caller tolerates the under-fill.
func (s *Sampler) SampleGround(existing []components.Position, allowRare bool) (components.Position, components.Tier, bool) {
	for i := 0; i < s.retries; i++ {
		pos := s.randomDiskPoint(s.groundHeight)
		if s.clearOf(pos, existing) {
			return pos, s.drawTier(allowRare), true
		}
	}
	return components.Position{}, components.TierCommon, false
}

// SampleAirborne draws a falling spawn position at the given altitude.
// Airborne gems may overlap in XZ; they separate vertically during descent,
// so no separation check applies.
func (s *Sampler) SampleAirborne(height float32, allowRare bool) (components.Position, components.Tier) {
	pos := s.randomDiskPoint(height)
	return pos, s.drawTier(allowRare)
}

// randomDiskPoint draws a point with uniform areal density over the disk.
// Radius is sqrt(u)*R: a plain uniform radius would cluster toward the center.
func (s *Sampler) randomDiskPoint(height float32) components.Position {
	angle := s.rng.Float64() * 2 * math.Pi
	r := math.Sqrt(s.rng.Float64()) * float64(s.radius)
	return components.Position{
		X: float32(math.Cos(angle) * r),
		Y: height,
		Z: float32(math.Sin(angle) * r),
	}
}

// clearOf reports whether the candidate keeps minSeparation from all existing
// positions in the XZ plane.
func (s *Sampler) clearOf(p components.Position, existing []components.Position) bool {
	minSq := s.minSeparation * s.minSeparation
	for i := range existing {
		dx := existing[i].X - p.X
		dz := existing[i].Z - p.Z
		if dx*dx+dz*dz < minSq {
			return false
		}
	}
	return true
}

// drawTier rolls rarity. Rare and epic are independent draws, so a gem can
// test positive for both; epic takes precedence. The draws are intentionally
// not mutually exclusive.
func (s *Sampler) drawTier(allowRare bool) components.Tier {
	if !allowRare {
		return components.TierCommon
	}
	rare := s.rng.Float32() < s.rareChance
	epic := s.rng.Float32() < s.epicChance
	switch {
	case epic:
		return components.TierEpic
	case rare:
		return components.TierRare
	default:
		return components.TierCommon
	}
}
