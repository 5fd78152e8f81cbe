// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Arena      ArenaConfig      `yaml:"arena"`
	Gems       GemsConfig       `yaml:"gems"`
	Population PopulationConfig `yaml:"population"`
	Avatar     AvatarConfig     `yaml:"avatar"`
	Camera     CameraConfig     `yaml:"camera"`
	Session    SessionConfig    `yaml:"session"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds arena geometry parameters.
type ArenaConfig struct {
	Radius        float64 `yaml:"radius"`         // Playable disk radius in world units
	GroundHeight  float64 `yaml:"ground_height"`  // Y of landed gems
	MinSeparation float64 `yaml:"min_separation"` // Pairwise XZ spacing for ground spawns
	SampleRetries int     `yaml:"sample_retries"` // Placement attempts before giving up
}

// GemsConfig holds collectible parameters.
type GemsConfig struct {
	RareChance    float64 `yaml:"rare_chance"`    // Independent Bernoulli draw
	EpicChance    float64 `yaml:"epic_chance"`    // Independent draw; epic wins when both hit
	CollectRadius float64 `yaml:"collect_radius"` // Planar XZ pickup distance
	Gravity       float64 `yaml:"gravity"`        // Downward acceleration for falling gems
	BurstAltMin   float64 `yaml:"burst_alt_min"`  // Airborne spawn altitude range
	BurstAltMax   float64 `yaml:"burst_alt_max"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	BaseTarget      int     `yaml:"base_target"`      // Target population at session start
	EndTarget       int     `yaml:"end_target"`       // Target population as the timer reaches zero
	MinTarget       int     `yaml:"min_target"`       // Floor for the target function
	BurstInterval   float64 `yaml:"burst_interval"`   // Debounce between airborne bursts, seconds
	BurstBaseSize   int     `yaml:"burst_base_size"`  // Burst size at session start
	BurstMaxBonus   int     `yaml:"burst_max_bonus"`  // Extra burst size at full progress
	SpawnCap        int     `yaml:"spawn_cap"`        // Max ground injections per maintenance pass
	MaintainPeriod  float64 `yaml:"maintain_period"`  // Seconds between maintenance passes
	PhysicsTick     float64 `yaml:"physics_tick"`     // Seconds between falling-gem integrations
	MilestoneEvery  int     `yaml:"milestone_every"`  // Score milestone granting bonus spawns
	MilestoneSpawns int     `yaml:"milestone_spawns"` // Bonus replacement spawns per milestone
}

// AvatarConfig holds avatar kinematics parameters.
type AvatarConfig struct {
	Accel            float64 `yaml:"accel"`             // Units/s² toward the ceiling
	BaseCeiling      float64 `yaml:"base_ceiling"`      // Speed ceiling at score 0
	CeilingPerPoint  float64 `yaml:"ceiling_per_point"` // Ceiling growth per score point
	TurnRate         float64 `yaml:"turn_rate"`         // Max heading change, radians/s
	ReversalDot      float64 `yaml:"reversal_dot"`      // Dot threshold triggering a snap turn
	ReversalPenalty  float64 `yaml:"reversal_penalty"`  // Speed multiplier on snap turn
	MinTurnSpeed     float64 `yaml:"min_turn_speed"`    // Speed below which reversals don't snap
	GlideDamping     float64 `yaml:"glide_damping"`     // Exponential decay rate with no input
	DecelBase        float64 `yaml:"decel_base"`        // Deceleration at standstill, units/s²
	DecelFloor       float64 `yaml:"decel_floor"`       // Minimum deceleration, units/s²
	DecelScale       float64 `yaml:"decel_scale"`       // Deceleration shrink per unit of speed
	BoundaryPenalty  float64 `yaml:"boundary_penalty"`  // Speed multiplier on rim contact
	ManeuverDuration float64 `yaml:"maneuver_duration"` // Seconds for a full 180° maneuver
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance       float64 `yaml:"distance"`        // Default orbit distance
	MinDistance    float64 `yaml:"min_distance"`    // Zoom clamp
	MaxDistance    float64 `yaml:"max_distance"`
	Height         float64 `yaml:"height"`          // Orbit height above the avatar
	PosSmoothing   float64 `yaml:"pos_smoothing"`   // Position lag rate, 1/s
	LookSmoothing  float64 `yaml:"look_smoothing"`  // Look-at lag rate, 1/s
	YawSensitivity float64 `yaml:"yaw_sensitivity"` // Radians per pointer pixel
	ZoomStep       float64 `yaml:"zoom_step"`       // Distance change per wheel notch
}

// SessionConfig holds session timing parameters.
type SessionConfig struct {
	Duration  int             `yaml:"duration"` // Playing time in seconds
	Countdown CountdownConfig `yaml:"countdown"`
}

// CountdownConfig holds the scripted countdown timeline offsets in seconds.
// The sequence begins with a black hold at offset zero; Playing begins at Clear.
type CountdownConfig struct {
	Fade  float64 `yaml:"fade"`
	Three float64 `yaml:"three"`
	Two   float64 `yaml:"two"`
	One   float64 `yaml:"one"`
	Go    float64 `yaml:"go"`
	Clear float64 `yaml:"clear"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Radius32        float32
	GroundHeight32  float32
	MinSeparation32 float32
	CollectRadius32 float32
	Gravity32       float32
	ScreenW32       float32
	ScreenH32       float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Radius32 = float32(c.Arena.Radius)
	c.Derived.GroundHeight32 = float32(c.Arena.GroundHeight)
	c.Derived.MinSeparation32 = float32(c.Arena.MinSeparation)
	c.Derived.CollectRadius32 = float32(c.Gems.CollectRadius)
	c.Derived.Gravity32 = float32(c.Gems.Gravity)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
