// Package game wires the simulation together: gem population over an ECS
// world, avatar kinematics, orbit camera, session lifecycle and telemetry,
// advanced by a fixed-step tick loop.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rush/arena"
	"github.com/pthm-cable/rush/avatar"
	"github.com/pthm-cable/rush/camerarig"
	"github.com/pthm-cable/rush/components"
	"github.com/pthm-cable/rush/config"
	"github.com/pthm-cable/rush/sched"
	"github.com/pthm-cable/rush/session"
	"github.com/pthm-cable/rush/telemetry"
)

// DT is the fixed simulation step in seconds.
const DT = 1.0 / 60.0

// Options configures game construction.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// GemView is one entry of the per-tick render snapshot.
type GemView struct {
	Pos   components.Position
	Tier  components.Tier
	Phase components.Phase
}

// Game holds the complete game state.
type Game struct {
	cfg *config.Config

	world     *ecs.World
	rng       *rand.Rand
	gemMapper *ecs.Map3[components.Position, components.Fall, components.Gem]
	gemFilter *ecs.Filter3[components.Position, components.Fall, components.Gem]

	sch     *sched.Sched
	sampler *arena.Sampler
	avatar  *avatar.Controller
	rig     *camerarig.Rig
	sess    *session.Session

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	// Per-tick snapshot consumed by the renderer; rebuilt after mutation
	// so drawing never touches the live world.
	snapshot []GemView

	tick           int32
	gemCount       int
	gameOverTicks  int
	paused         bool
	headless       bool
	stepsPerUpdate int

	// Input staged by polling, consumed by the step
	input avatar.Input

	width, height float32
}

// NewGame creates a game with default options and a fixed seed.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42, StepsPerUpdate: 1})
}

// NewGameWithOptions creates a game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:       cfg,
		world:     world,
		rng:       rng,
		gemMapper: ecs.NewMap3[components.Position, components.Fall, components.Gem](world),
		gemFilter: ecs.NewFilter3[components.Position, components.Fall, components.Gem](world),

		sch: sched.New(),

		headless:       opts.Headless,
		stepsPerUpdate: opts.StepsPerUpdate,
		logStats:       opts.LogStats,
		width:          cfg.Derived.ScreenW32,
		height:         cfg.Derived.ScreenH32,
	}

	g.sampler = arena.NewSampler(rng,
		cfg.Derived.Radius32,
		cfg.Derived.GroundHeight32,
		cfg.Derived.MinSeparation32,
		cfg.Arena.SampleRetries,
		float32(cfg.Gems.RareChance),
		float32(cfg.Gems.EpicChance),
	)

	g.avatar = avatar.NewController(avatar.Config{
		Accel:            float32(cfg.Avatar.Accel),
		BaseCeiling:      float32(cfg.Avatar.BaseCeiling),
		CeilingPerPoint:  float32(cfg.Avatar.CeilingPerPoint),
		TurnRate:         float32(cfg.Avatar.TurnRate),
		ReversalDot:      float32(cfg.Avatar.ReversalDot),
		ReversalPenalty:  float32(cfg.Avatar.ReversalPenalty),
		MinTurnSpeed:     float32(cfg.Avatar.MinTurnSpeed),
		GlideDamping:     float32(cfg.Avatar.GlideDamping),
		DecelBase:        float32(cfg.Avatar.DecelBase),
		DecelFloor:       float32(cfg.Avatar.DecelFloor),
		DecelScale:       float32(cfg.Avatar.DecelScale),
		BoundaryPenalty:  float32(cfg.Avatar.BoundaryPenalty),
		ManeuverDuration: float32(cfg.Avatar.ManeuverDuration),
		Boundary:         cfg.Derived.Radius32,
		Height:           cfg.Derived.GroundHeight32,
	})

	g.rig = camerarig.New(camerarig.Config{
		Distance:       float32(cfg.Camera.Distance),
		MinDistance:    float32(cfg.Camera.MinDistance),
		MaxDistance:    float32(cfg.Camera.MaxDistance),
		Height:         float32(cfg.Camera.Height),
		PosSmoothing:   float32(cfg.Camera.PosSmoothing),
		LookSmoothing:  float32(cfg.Camera.LookSmoothing),
		YawSensitivity: float32(cfg.Camera.YawSensitivity),
		ZoomStep:       float32(cfg.Camera.ZoomStep),
	}, g.avatarTarget())

	cd := cfg.Session.Countdown
	g.sess = session.New(session.Config{
		Duration: cfg.Session.Duration,
		Timeline: session.DefaultTimeline(cd.Fade, cd.Three, cd.Two, cd.One, cd.Go, cd.Clear),
	}, g.sch, g.onRoundReset)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, DT)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.output = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	// Population upkeep runs for the life of the game, gated on the
	// Playing phase inside each callback.
	g.sch.Repeating(cfg.Population.BurstInterval, g.maybeBurst)
	g.sch.Repeating(cfg.Population.MaintainPeriod, g.maintainPopulation)
	g.sch.Repeating(cfg.Population.PhysicsTick, g.tickFalling)

	if opts.Headless {
		// No title screen without a window.
		g.sess.Begin()
	}

	return g
}

// Update advances the graphical game: poll input, then run simulation steps.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// headlessRestartDelay is how long a finished round lingers in game over
// before a headless run starts the next one, in seconds.
const headlessRestartDelay = 3.0

// UpdateHeadless advances the simulation without touching raylib. With
// nobody at the keyboard, finished rounds restart on their own so soak runs
// cycle through the full session lifecycle.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()

		if g.sess.Phase() != session.PhaseGameOver {
			g.gameOverTicks = 0
			continue
		}
		g.gameOverTicks++
		if float64(g.gameOverTicks)*DT >= headlessRestartDelay {
			g.gameOverTicks = 0
			g.sess.Restart()
		}
	}
}

// step runs a single fixed tick.
func (g *Game) step() {
	g.sch.Advance(DT)

	if g.sess.Phase() == session.PhasePlaying {
		g.avatar.Update(g.input, DT)
		g.collectGems()
	}
	// Maneuvers are edge-triggered; held keys persist across sub-steps.
	g.input.Maneuver = avatar.ManeuverNone

	g.rig.SnapYaw(g.avatar.TakeYawSnap())
	g.rig.Update(g.avatarTarget(), DT)

	g.rebuildSnapshot()
	g.flushTelemetry()

	g.tick++
}

// onRoundReset fires at every Countdown entry: clear the arena, recenter the
// avatar and camera, reseed the opening population.
func (g *Game) onRoundReset() {
	g.clearGems()
	g.avatar.Reset()
	g.rig.Reset(g.avatarTarget())
	g.collector.ResetPacing()
	g.seedPopulation()
}

// avatarTarget converts the avatar position for the camera rig.
func (g *Game) avatarTarget() camerarig.Vec3 {
	p := g.avatar.State().Pos
	return camerarig.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// rebuildSnapshot recopies gem state for the renderer.
func (g *Game) rebuildSnapshot() {
	g.snapshot = g.snapshot[:0]
	query := g.gemFilter.Query()
	for query.Next() {
		pos, _, gem := query.Get()
		g.snapshot = append(g.snapshot, GemView{Pos: *pos, Tier: gem.Tier, Phase: gem.Phase})
	}
}

// flushTelemetry emits a stats window when due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}
	r := g.sess.Readout()
	stats := g.collector.Flush(g.tick, r.Phase.String(), r.Score, g.gemCount)

	if g.logStats {
		slog.Info("window_stats", "stats", stats)
	}
	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	}
}

// Snapshot returns the current render view of the gems.
func (g *Game) Snapshot() []GemView {
	return g.snapshot
}

// Session returns the session state machine.
func (g *Game) Session() *session.Session {
	return g.sess
}

// Avatar returns the avatar pose.
func (g *Game) Avatar() avatar.State {
	return g.avatar.State()
}

// GemCount returns the live gem population.
func (g *Game) GemCount() int {
	return g.gemCount
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Unload releases output resources.
func (g *Game) Unload() {
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
