// Package session implements the round lifecycle state machine.
//
// A session walks Start → Countdown → Playing → GameOver → Countdown → …
// Countdown plays a scripted cue timeline before gameplay goes live; Playing
// runs a one-second round timer. All timing goes through the shared
// scheduler, so the session is deterministic under simulated time.
package session

import (
	"log/slog"

	"github.com/pthm-cable/rush/components"
	"github.com/pthm-cable/rush/sched"
)

// Phase is the session lifecycle state.
type Phase uint8

const (
	PhaseStart Phase = iota
	PhaseCountdown
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Cue is one step of the countdown timeline: a HUD label that appears at a
// fixed offset from Countdown entry. An empty label clears the overlay.
type Cue struct {
	Label  string
	Offset float64 // seconds since Countdown entry
}

// Config holds session timing.
type Config struct {
	Duration int   // playing time in seconds
	Timeline []Cue // ordered by offset; the last cue ends the countdown
}

// Session owns the phase, score and round timer. All mutation happens on the
// tick goroutine via the scheduler; nothing here is safe for concurrent use.
type Session struct {
	cfg Config
	sch *sched.Sched

	// onRoundReset fires on every Countdown entry, before the timeline
	// starts. The game wires avatar, population and camera resets here.
	onRoundReset func()

	phase          Phase
	score          int
	timeRemaining  int
	cue            string
	countdownStart float64

	// tasks scoped to the current phase; cancelled on exit.
	tasks []*sched.Task
}

// Readout is the HUD-facing view of the session.
type Readout struct {
	Phase         Phase
	Score         int
	TimeRemaining int
	Cue           string
}

// New creates a session in the Start phase.
func New(cfg Config, sch *sched.Sched, onRoundReset func()) *Session {
	return &Session{
		cfg:           cfg,
		sch:           sch,
		onRoundReset:  onRoundReset,
		phase:         PhaseStart,
		timeRemaining: cfg.Duration,
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the accumulated round score.
func (s *Session) Score() int {
	return s.score
}

// Readout returns the HUD view.
func (s *Session) Readout() Readout {
	return Readout{
		Phase:         s.phase,
		Score:         s.score,
		TimeRemaining: s.timeRemaining,
		Cue:           s.cue,
	}
}

// CountdownElapsed returns seconds since Countdown entry. Zero outside the
// Countdown phase; the camera sweep keys off it.
func (s *Session) CountdownElapsed() float64 {
	if s.phase != PhaseCountdown {
		return 0
	}
	return s.sch.Now() - s.countdownStart
}

// Begin starts the first round from the title screen.
func (s *Session) Begin() {
	if s.phase != PhaseStart {
		slog.Warn("session_illegal_transition", "op", "begin", "phase", s.phase.String())
		return
	}
	s.enterCountdown()
}

// Restart starts the next round after a game over.
func (s *Session) Restart() {
	if s.phase != PhaseGameOver {
		slog.Warn("session_illegal_transition", "op", "restart", "phase", s.phase.String())
		return
	}
	s.enterCountdown()
}

// Collect credits a picked-up gem. The only score mutation; ignored outside
// Playing so a gem touched during the game-over freeze frame scores nothing.
func (s *Session) Collect(tier components.Tier) int {
	if s.phase != PhasePlaying {
		return 0
	}
	v := tier.Value()
	s.score += v
	return v
}

func (s *Session) enterCountdown() {
	s.cancelTasks()
	s.phase = PhaseCountdown
	s.score = 0
	s.timeRemaining = s.cfg.Duration
	s.countdownStart = s.sch.Now()

	if s.onRoundReset != nil {
		s.onRoundReset()
	}

	// One driver walks the cue list; the final cue flips to Playing.
	last := len(s.cfg.Timeline) - 1
	for i, cue := range s.cfg.Timeline {
		label := cue.Label
		final := i == last
		s.tasks = append(s.tasks, s.sch.Once(cue.Offset, func() {
			s.cue = label
			if final {
				s.enterPlaying()
			}
		}))
	}
	slog.Info("session_countdown", "cues", len(s.cfg.Timeline))
}

func (s *Session) enterPlaying() {
	s.cancelTasks()
	s.phase = PhasePlaying
	s.cue = ""
	s.tasks = append(s.tasks, s.sch.Repeating(1, s.tick))
	slog.Info("session_playing", "duration", s.cfg.Duration)
}

// tick is the 1 Hz round timer.
func (s *Session) tick() {
	s.timeRemaining--
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.enterGameOver()
	}
}

func (s *Session) enterGameOver() {
	s.cancelTasks()
	s.phase = PhaseGameOver
	slog.Info("session_game_over", "score", s.score)
}

// cancelTasks cancels everything scoped to the outgoing phase.
func (s *Session) cancelTasks() {
	for _, t := range s.tasks {
		t.Cancel()
	}
	s.tasks = s.tasks[:0]
}

// DefaultTimeline builds the standard cue list from countdown offsets: a
// black hold at zero, a fade, the spoken count, "Go!", then a clear that
// starts play.
func DefaultTimeline(fade, three, two, one, goAt, clear float64) []Cue {
	return []Cue{
		{Label: "", Offset: 0},
		{Label: "", Offset: fade},
		{Label: "3", Offset: three},
		{Label: "2", Offset: two},
		{Label: "1", Offset: one},
		{Label: "Go!", Offset: goAt},
		{Label: "", Offset: clear},
	}
}
