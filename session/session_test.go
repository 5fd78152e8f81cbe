package session

import (
	"testing"

	"github.com/pthm-cable/rush/components"
	"github.com/pthm-cable/rush/sched"
)

func testConfig() Config {
	return Config{
		Duration: 60,
		Timeline: DefaultTimeline(0.6, 1.2, 2.2, 3.2, 4.2, 4.9),
	}
}

// advance steps the scheduler in small fixed ticks, like the game loop does.
func advance(sch *sched.Sched, seconds float64) {
	const dt = 1.0 / 60.0
	steps := int(seconds/dt) + 1
	for i := 0; i < steps; i++ {
		sch.Advance(dt)
	}
}

func newPlaying(t *testing.T) (*Session, *sched.Sched) {
	t.Helper()
	sch := sched.New()
	s := New(testConfig(), sch, nil)
	s.Begin()
	advance(sch, 5)
	if s.Phase() != PhasePlaying {
		t.Fatalf("setup: expected playing after countdown, got %v", s.Phase())
	}
	return s, sch
}

func TestFullPhaseWalk(t *testing.T) {
	sch := sched.New()
	s := New(testConfig(), sch, nil)

	if s.Phase() != PhaseStart {
		t.Fatalf("expected start, got %v", s.Phase())
	}

	s.Begin()
	if s.Phase() != PhaseCountdown {
		t.Fatalf("expected countdown, got %v", s.Phase())
	}

	advance(sch, 5)
	if s.Phase() != PhasePlaying {
		t.Fatalf("expected playing, got %v", s.Phase())
	}

	advance(sch, 61)
	if s.Phase() != PhaseGameOver {
		t.Fatalf("expected game over, got %v", s.Phase())
	}

	s.Restart()
	if s.Phase() != PhaseCountdown {
		t.Fatalf("expected countdown after restart, got %v", s.Phase())
	}
}

func TestIllegalTransitionsIgnored(t *testing.T) {
	sch := sched.New()
	s := New(testConfig(), sch, nil)

	s.Restart() // not game over yet
	if s.Phase() != PhaseStart {
		t.Errorf("restart from start should be ignored, got %v", s.Phase())
	}

	s.Begin()
	s.Begin() // already counting down
	if s.Phase() != PhaseCountdown {
		t.Errorf("double begin should be ignored, got %v", s.Phase())
	}

	advance(sch, 5)
	s.Begin() // playing
	if s.Phase() != PhasePlaying {
		t.Errorf("begin during play should be ignored, got %v", s.Phase())
	}
}

func TestCountdownCueOrder(t *testing.T) {
	sch := sched.New()
	s := New(testConfig(), sch, nil)
	s.Begin()

	var seen []string
	last := ""
	for sch.Now() < 5 {
		sch.Advance(1.0 / 60.0)
		if cue := s.Readout().Cue; cue != last {
			seen = append(seen, cue)
			last = cue
		}
	}

	want := []string{"3", "2", "1", "Go!", ""}
	if len(seen) != len(want) {
		t.Fatalf("cue sequence %q, want %q", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cue %d = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestTimerReachesGameOver(t *testing.T) {
	s, sch := newPlaying(t)

	// After 59 timer ticks the round is still live.
	advance(sch, 59)
	if s.Phase() != PhasePlaying {
		t.Fatalf("expected still playing, got %v", s.Phase())
	}
	if got := s.Readout().TimeRemaining; got < 1 || got > 2 {
		t.Errorf("time remaining %d near the end, want 1", got)
	}

	advance(sch, 2)
	if s.Phase() != PhaseGameOver {
		t.Fatalf("expected game over, got %v", s.Phase())
	}
	if got := s.Readout().TimeRemaining; got != 0 {
		t.Errorf("time remaining %d after game over, want 0", got)
	}
}

func TestTimerStopsAfterGameOver(t *testing.T) {
	s, sch := newPlaying(t)
	advance(sch, 62)
	if s.Phase() != PhaseGameOver {
		t.Fatal("setup: expected game over")
	}

	// The cancelled timer must not keep decrementing.
	advance(sch, 30)
	if got := s.Readout().TimeRemaining; got != 0 {
		t.Errorf("time remaining drifted to %d after game over", got)
	}
}

func TestCollectScoresByTier(t *testing.T) {
	s, _ := newPlaying(t)

	s.Collect(components.TierCommon)
	s.Collect(components.TierRare)
	s.Collect(components.TierEpic)
	s.Collect(components.TierCommon)

	if got := s.Score(); got != 9 {
		t.Errorf("score %d, want 9", got)
	}
}

func TestCollectOutsidePlayingIgnored(t *testing.T) {
	sch := sched.New()
	s := New(testConfig(), sch, nil)

	if v := s.Collect(components.TierEpic); v != 0 {
		t.Errorf("collect before play credited %d", v)
	}

	s.Begin()
	s.Collect(components.TierEpic) // countdown
	advance(sch, 5)
	advance(sch, 62)
	s.Collect(components.TierEpic) // game over

	if got := s.Score(); got != 0 {
		t.Errorf("score %d from out-of-phase collects, want 0", got)
	}
}

func TestRoundResetHookFiresEachCountdown(t *testing.T) {
	sch := sched.New()
	resets := 0
	s := New(testConfig(), sch, func() { resets++ })

	s.Begin()
	if resets != 1 {
		t.Fatalf("resets = %d after begin, want 1", resets)
	}

	advance(sch, 5)
	s.Collect(components.TierEpic)
	advance(sch, 62)
	s.Restart()

	if resets != 2 {
		t.Errorf("resets = %d after restart, want 2", resets)
	}
	if s.Score() != 0 {
		t.Errorf("score %d carried across rounds, want 0", s.Score())
	}
	if got := s.Readout().TimeRemaining; got != 60 {
		t.Errorf("time remaining %d after restart, want 60", got)
	}
}

func TestRestartCancelsStaleCountdown(t *testing.T) {
	sch := sched.New()
	s := New(testConfig(), sch, nil)
	s.Begin()
	advance(sch, 5)
	advance(sch, 62)

	s.Restart()
	advance(sch, 5)
	if s.Phase() != PhasePlaying {
		t.Fatalf("expected playing after second countdown, got %v", s.Phase())
	}
	if got := s.Readout().TimeRemaining; got < 59 {
		t.Errorf("stale timer ticked during countdown: %d", got)
	}
}
