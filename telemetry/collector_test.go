package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/rush/components"
)

func TestCollectorWindowing(t *testing.T) {
	// 10 second windows at 60 Hz
	c := NewCollector(10.0, 1.0/60.0)

	if c.WindowDurationTicks() != 600 {
		t.Errorf("expected 600 ticks per window, got %d", c.WindowDurationTicks())
	}

	if c.ShouldFlush(599) {
		t.Error("should not flush before window end")
	}
	if !c.ShouldFlush(600) {
		t.Error("should flush at window end")
	}

	c.Flush(600, "playing", 0, 0)
	if c.ShouldFlush(900) {
		t.Error("flush should restart the window")
	}
	if !c.ShouldFlush(1200) {
		t.Error("second window should end 600 ticks after the first flush")
	}
}

func TestCollectorCountsByTierAndKind(t *testing.T) {
	c := NewCollector(10.0, 1.0/60.0)

	c.RecordCollection(components.TierCommon, 1.0)
	c.RecordCollection(components.TierCommon, 2.0)
	c.RecordCollection(components.TierRare, 3.0)
	c.RecordCollection(components.TierEpic, 4.0)
	c.RecordSpawn(SpawnGround)
	c.RecordSpawn(SpawnBurst)
	c.RecordSpawn(SpawnBurst)
	c.RecordSpawn(SpawnReplacement)
	c.RecordRejection()

	s := c.Flush(600, "playing", 9, 24)

	if s.CommonCollected != 2 || s.RareCollected != 1 || s.EpicCollected != 1 {
		t.Errorf("tier counts %d/%d/%d, want 2/1/1",
			s.CommonCollected, s.RareCollected, s.EpicCollected)
	}
	if s.PointsEarned != 9 {
		t.Errorf("points earned %d, want 9", s.PointsEarned)
	}
	if s.GroundSpawns != 1 || s.BurstSpawns != 2 || s.ReplacementSpawns != 1 {
		t.Errorf("spawn counts %d/%d/%d, want 1/2/1",
			s.GroundSpawns, s.BurstSpawns, s.ReplacementSpawns)
	}
	if s.Rejections != 1 {
		t.Errorf("rejections %d, want 1", s.Rejections)
	}
	if s.Score != 9 || s.Population != 24 || s.Phase != "playing" {
		t.Errorf("session snapshot %d/%d/%q", s.Score, s.Population, s.Phase)
	}
}

func TestCollectorFlushResetsCounters(t *testing.T) {
	c := NewCollector(10.0, 1.0/60.0)

	c.RecordCollection(components.TierEpic, 1.0)
	c.RecordSpawn(SpawnBurst)
	c.Flush(600, "playing", 5, 20)

	s := c.Flush(1200, "playing", 5, 20)
	if s.EpicCollected != 0 || s.BurstSpawns != 0 || s.PointsEarned != 0 {
		t.Errorf("counters survived flush: %+v", s)
	}
	if s.WindowStartTick != 600 || s.WindowEndTick != 1200 {
		t.Errorf("window bounds %d-%d, want 600-1200", s.WindowStartTick, s.WindowEndTick)
	}
}

func TestCollectorPickupIntervals(t *testing.T) {
	c := NewCollector(10.0, 1.0/60.0)

	// Pickups at 1s, 3s, 6s: intervals 2 and 3.
	c.RecordCollection(components.TierCommon, 1.0)
	c.RecordCollection(components.TierCommon, 3.0)
	c.RecordCollection(components.TierCommon, 6.0)

	s := c.Flush(600, "playing", 3, 20)
	if math.Abs(s.IntervalMean-2.5) > 0.001 {
		t.Errorf("interval mean %v, want 2.5", s.IntervalMean)
	}
}

func TestCollectorIntervalChainSpansWindows(t *testing.T) {
	c := NewCollector(10.0, 1.0/60.0)

	c.RecordCollection(components.TierCommon, 9.0)
	c.Flush(600, "playing", 1, 20)

	// The first pickup of the next window pairs with the last of the
	// previous one.
	c.RecordCollection(components.TierCommon, 12.0)
	s := c.Flush(1200, "playing", 2, 20)
	if math.Abs(s.IntervalMean-3.0) > 0.001 {
		t.Errorf("cross-window interval %v, want 3.0", s.IntervalMean)
	}
}

func TestCollectorResetPacing(t *testing.T) {
	c := NewCollector(10.0, 1.0/60.0)

	c.RecordCollection(components.TierCommon, 50.0)
	c.ResetPacing()

	// After a round reset the next pickup starts a fresh chain.
	c.RecordCollection(components.TierCommon, 52.0)
	s := c.Flush(600, "playing", 1, 20)
	if s.IntervalMean != 0 {
		t.Errorf("interval chain crossed a round reset: %v", s.IntervalMean)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	// Degenerate window shorter than one tick clamps to one tick.
	c := NewCollector(0.001, 1.0/60.0)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("expected 1 tick minimum, got %d", c.WindowDurationTicks())
	}
}
