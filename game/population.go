package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rush/components"
	"github.com/pthm-cable/rush/session"
	"github.com/pthm-cable/rush/telemetry"
)

// targetPopulation returns the gem count the maintenance pass aims for. The
// target rises as the round timer falls, so the arena gets denser toward the
// finish.
func (g *Game) targetPopulation() int {
	pop := g.cfg.Population
	target := pop.BaseTarget + int(g.roundProgress()*float64(pop.EndTarget-pop.BaseTarget))
	if target < pop.MinTarget {
		target = pop.MinTarget
	}
	return target
}

// roundProgress reports how far the round timer has run, in [0, 1].
func (g *Game) roundProgress() float64 {
	duration := g.cfg.Session.Duration
	if duration <= 0 {
		return 0
	}
	p := 1 - float64(g.sess.Readout().TimeRemaining)/float64(duration)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

// seedPopulation fills the arena to the opening target. Round reset only.
func (g *Game) seedPopulation() {
	g.spawnGround(g.cfg.Population.BaseTarget, telemetry.SpawnGround)
}

// maintainPopulation tops the ground population up toward the current
// target. Injections per pass are capped so a deep deficit refills over
// several passes instead of appearing all at once.
func (g *Game) maintainPopulation() {
	if g.sess.Phase() != session.PhasePlaying {
		return
	}

	deficit := g.targetPopulation() - g.gemCount
	if deficit <= 0 {
		return
	}

	// Injection pressure rises with the round: early passes trickle at half
	// the cap, late passes refill at the full cap.
	limit := int(float64(g.cfg.Population.SpawnCap)*(0.5+0.5*g.roundProgress()) + 0.5)
	if limit < 1 {
		limit = 1
	}
	if deficit > limit {
		deficit = limit
	}
	g.spawnGround(deficit, telemetry.SpawnGround)
}

// maybeBurst drops a wave of airborne gems. The scheduler debounces the
// interval; bursts grow as the round progresses.
func (g *Game) maybeBurst() {
	if g.sess.Phase() != session.PhasePlaying {
		return
	}

	pop := g.cfg.Population
	size := pop.BurstBaseSize + int(g.roundProgress()*float64(pop.BurstMaxBonus))
	g.spawnBurst(size)
}

// onCollected reacts to a pickup with a replacement batch: the immediate
// deficit, a bonus on every score milestone, and extra pressure in the
// closing seconds.
func (g *Game) onCollected(prevScore, newScore int) {
	pop := g.cfg.Population

	batch := g.targetPopulation() - g.gemCount
	if batch < 0 {
		batch = 0
	}
	if batch > pop.SpawnCap {
		batch = pop.SpawnCap
	}

	if pop.MilestoneEvery > 0 && prevScore/pop.MilestoneEvery < newScore/pop.MilestoneEvery {
		batch += pop.MilestoneSpawns
	}

	switch remaining := g.sess.Readout().TimeRemaining; {
	case remaining <= 10:
		batch += 2
	case remaining <= 20:
		batch++
	}

	g.spawnGround(batch, telemetry.SpawnReplacement)
}

// spawnGround places n landed gems, respecting the separation constraint.
// Rejected placements are dropped: a short-lived hole in the arena beats a
// visible overlap.
func (g *Game) spawnGround(n int, kind telemetry.SpawnKind) {
	existing := g.gemPositions()
	for i := 0; i < n; i++ {
		pos, tier, ok := g.sampler.SampleGround(existing, true)
		if !ok {
			g.collector.RecordRejection()
			continue
		}
		fall := components.Fall{}
		gem := components.Gem{Tier: tier, Phase: components.PhaseLanded}
		g.gemMapper.NewEntity(&pos, &fall, &gem)
		g.gemCount++
		g.collector.RecordSpawn(kind)
		existing = append(existing, pos)
	}
}

// spawnBurst drops n falling gems at random altitude. No separation check:
// airborne gems spread during descent.
func (g *Game) spawnBurst(n int) {
	gems := g.cfg.Gems
	for i := 0; i < n; i++ {
		alt := float32(gems.BurstAltMin + g.rng.Float64()*(gems.BurstAltMax-gems.BurstAltMin))
		pos, tier := g.sampler.SampleAirborne(alt, true)
		fall := components.Fall{}
		gem := components.Gem{Tier: tier, Phase: components.PhaseFalling}
		g.gemMapper.NewEntity(&pos, &fall, &gem)
		g.gemCount++
		g.collector.RecordSpawn(telemetry.SpawnBurst)
	}
}

// tickFalling integrates gravity for airborne gems and lands them on the
// ground plane.
func (g *Game) tickFalling() {
	if g.sess.Phase() != session.PhasePlaying {
		return
	}

	dt := float32(g.cfg.Population.PhysicsTick)
	gravity := g.cfg.Derived.Gravity32
	ground := g.cfg.Derived.GroundHeight32

	query := g.gemFilter.Query()
	for query.Next() {
		pos, fall, gem := query.Get()
		if gem.Phase != components.PhaseFalling {
			continue
		}

		fall.VY += gravity * dt
		pos.Y -= fall.VY * dt
		if pos.Y <= ground {
			pos.Y = ground
			fall.VY = 0
			gem.Phase = components.PhaseLanded
		}
	}
}

// collectGems picks up landed gems within reach of the avatar. Two passes:
// the query must finish before the world is mutated.
func (g *Game) collectGems() {
	av := g.avatar.State().Pos
	reach := g.cfg.Derived.CollectRadius32
	reachSq := reach * reach

	type pickup struct {
		entity ecs.Entity
		tier   components.Tier
	}
	var collected []pickup

	query := g.gemFilter.Query()
	for query.Next() {
		pos, _, gem := query.Get()
		if gem.Phase != components.PhaseLanded {
			continue
		}
		dx := pos.X - av.X
		dz := pos.Z - av.Z
		if dx*dx+dz*dz <= reachSq {
			collected = append(collected, pickup{entity: query.Entity(), tier: gem.Tier})
		}
	}

	for _, p := range collected {
		g.gemMapper.Remove(p.entity)
		g.gemCount--

		prev := g.sess.Score()
		if g.sess.Collect(p.tier) == 0 {
			continue
		}
		score := g.sess.Score()
		g.avatar.SetScore(score)
		g.collector.RecordCollection(p.tier, g.sch.Now())
		g.onCollected(prev, score)
	}
}

// clearGems removes every gem from the world.
func (g *Game) clearGems() {
	var all []ecs.Entity
	query := g.gemFilter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		g.gemMapper.Remove(e)
	}
	g.gemCount = 0
}

// gemPositions snapshots current gem positions for separation checks.
func (g *Game) gemPositions() []components.Position {
	out := make([]components.Position, 0, g.gemCount)
	query := g.gemFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		out = append(out, *pos)
	}
	return out
}
