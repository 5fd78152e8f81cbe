// Package components defines ECS components for the game.
package components

// Position represents an entity's world position, Y up.
type Position struct {
	X, Y, Z float32
}

// Fall holds vertical velocity for airborne gems.
// VY is zero once the gem has landed.
type Fall struct {
	VY float32
}

// Tier is a gem's rarity class.
type Tier uint8

const (
	TierCommon Tier = iota
	TierRare
	TierEpic
)

// Value returns the score awarded for collecting a gem of this tier.
func (t Tier) Value() int {
	switch t {
	case TierRare:
		return 2
	case TierEpic:
		return 5
	default:
		return 1
	}
}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierRare:
		return "rare"
	case TierEpic:
		return "epic"
	default:
		return "common"
	}
}

// Phase is a gem's lifecycle phase. Only landed gems are collectible.
type Phase uint8

const (
	PhaseFalling Phase = iota
	PhaseLanded
)

// Gem holds collectible-specific state.
type Gem struct {
	Tier  Tier
	Phase Phase
}
