package telemetry

import (
	"math"
	"testing"
)

func TestComputeIntervalStats(t *testing.T) {
	intervals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, std, p50, p90 := ComputeIntervalStats(intervals)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}

	// Sample standard deviation: sqrt(82.5/9)
	if math.Abs(std-3.0277) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", std)
	}

	// Empirical quantiles pick actual samples
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}
}

func TestComputeIntervalStatsEmpty(t *testing.T) {
	mean, std, p50, p90 := ComputeIntervalStats([]float64{})

	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty sample should return all zeros")
	}
}

func TestComputeIntervalStatsSingle(t *testing.T) {
	mean, std, p50, p90 := ComputeIntervalStats([]float64{2.5})

	if mean != 2.5 || p50 != 2.5 || p90 != 2.5 {
		t.Errorf("single sample: mean=%v p50=%v p90=%v, want 2.5", mean, p50, p90)
	}
	if std != 0 {
		t.Errorf("single-sample std = %v, want 0", std)
	}
}

func TestComputeIntervalStatsUnsortedInput(t *testing.T) {
	// Quantiles must not depend on input order.
	a, _, ap50, _ := ComputeIntervalStats([]float64{3, 1, 2})
	b, _, bp50, _ := ComputeIntervalStats([]float64{1, 2, 3})

	if a != b || ap50 != bp50 {
		t.Errorf("order-dependent stats: (%v,%v) vs (%v,%v)", a, ap50, b, bp50)
	}
}
