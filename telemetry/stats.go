package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Session state at window end
	Phase      string `csv:"phase"`
	Score      int    `csv:"score"`
	Population int    `csv:"population"`

	// Collections during window
	CommonCollected int `csv:"common_collected"`
	RareCollected   int `csv:"rare_collected"`
	EpicCollected   int `csv:"epic_collected"`
	PointsEarned    int `csv:"points_earned"`

	// Spawns during window
	GroundSpawns      int `csv:"ground_spawns"`
	BurstSpawns       int `csv:"burst_spawns"`
	ReplacementSpawns int `csv:"replacement_spawns"`

	// Placement rejections (separation retries exhausted)
	Rejections int `csv:"rejections"`

	// Collection pacing (seconds between pickups within the window)
	IntervalMean float64 `csv:"interval_mean"`
	IntervalStd  float64 `csv:"interval_std"`
	IntervalP50  float64 `csv:"interval_p50"`
	IntervalP90  float64 `csv:"interval_p90"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("phase", s.Phase),
		slog.Int("score", s.Score),
		slog.Int("population", s.Population),
		slog.Int("common", s.CommonCollected),
		slog.Int("rare", s.RareCollected),
		slog.Int("epic", s.EpicCollected),
		slog.Int("ground_spawns", s.GroundSpawns),
		slog.Int("burst_spawns", s.BurstSpawns),
		slog.Int("replacement_spawns", s.ReplacementSpawns),
		slog.Int("rejections", s.Rejections),
		slog.Float64("interval_mean", s.IntervalMean),
	)
}

// ComputeIntervalStats aggregates pickup intervals: mean, standard deviation
// and empirical quantiles. Returns zeros for an empty sample.
func ComputeIntervalStats(intervals []float64) (mean, std, p50, p90 float64) {
	n := len(intervals)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(intervals, nil)
	if n > 1 {
		std = stat.StdDev(intervals, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, intervals)
	sort.Float64s(sorted)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p50, p90
}
