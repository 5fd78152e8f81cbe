package telemetry

import "github.com/pthm-cable/rush/components"

// SpawnKind classifies how a gem entered the arena.
type SpawnKind uint8

const (
	SpawnGround      SpawnKind = iota // maintenance / initial seeding
	SpawnBurst                        // periodic airborne burst
	SpawnReplacement                  // collection-driven replacement batch
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	commonCollected   int
	rareCollected     int
	epicCollected     int
	pointsEarned      int
	groundSpawns      int
	burstSpawns       int
	replacementSpawns int
	rejections        int

	// Pickup pacing: sim-time stamps become intervals at flush
	lastPickupAt float64
	intervals    []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		lastPickupAt:        -1,
	}
}

// RecordCollection records a gem pickup worth the given points.
func (c *Collector) RecordCollection(tier components.Tier, simTime float64) {
	switch tier {
	case components.TierEpic:
		c.epicCollected++
	case components.TierRare:
		c.rareCollected++
	default:
		c.commonCollected++
	}
	c.pointsEarned += tier.Value()

	if c.lastPickupAt >= 0 {
		c.intervals = append(c.intervals, simTime-c.lastPickupAt)
	}
	c.lastPickupAt = simTime
}

// RecordSpawn records a gem entering the arena.
func (c *Collector) RecordSpawn(kind SpawnKind) {
	switch kind {
	case SpawnBurst:
		c.burstSpawns++
	case SpawnReplacement:
		c.replacementSpawns++
	default:
		c.groundSpawns++
	}
}

// RecordRejection records a placement that exhausted its separation retries.
func (c *Collector) RecordRejection() {
	c.rejections++
}

// ResetPacing clears the pickup interval chain. Called on round reset so the
// first pickup of a new round doesn't inherit a cross-round interval.
func (c *Collector) ResetPacing() {
	c.lastPickupAt = -1
	c.intervals = c.intervals[:0]
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the session state sampled at window end.
func (c *Collector) Flush(currentTick int32, phase string, score, population int) WindowStats {
	mean, std, p50, p90 := ComputeIntervalStats(c.intervals)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Phase:      phase,
		Score:      score,
		Population: population,

		CommonCollected: c.commonCollected,
		RareCollected:   c.rareCollected,
		EpicCollected:   c.epicCollected,
		PointsEarned:    c.pointsEarned,

		GroundSpawns:      c.groundSpawns,
		BurstSpawns:       c.burstSpawns,
		ReplacementSpawns: c.replacementSpawns,

		Rejections: c.rejections,

		IntervalMean: mean,
		IntervalStd:  std,
		IntervalP50:  p50,
		IntervalP90:  p90,
	}

	// Reset for next window; the pickup chain carries across windows.
	c.windowStartTick = currentTick
	c.commonCollected = 0
	c.rareCollected = 0
	c.epicCollected = 0
	c.pointsEarned = 0
	c.groundSpawns = 0
	c.burstSpawns = 0
	c.replacementSpawns = 0
	c.rejections = 0
	c.intervals = c.intervals[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
