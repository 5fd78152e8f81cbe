// Package avatar implements the kinematic avatar controller.
//
// The controller integrates held-key input into position and heading each
// tick: bounded-rate steering with an instant snap on strongly opposed input,
// score-scaled speed ceiling, circular arena containment, and four timed 180°
// maneuvers. It is pure math over float32; rendering and input polling live
// in the game package.
package avatar

import (
	"math"

	"github.com/pthm-cable/rush/components"
)

// Maneuver identifies a player-triggered timed 180° turn.
type Maneuver uint8

const (
	ManeuverNone Maneuver = iota
	ManeuverLeft
	ManeuverRight
	ManeuverForward
	ManeuverBackward
)

// String returns the maneuver name.
func (m Maneuver) String() string {
	switch m {
	case ManeuverLeft:
		return "left"
	case ManeuverRight:
		return "right"
	case ManeuverForward:
		return "forward"
	case ManeuverBackward:
		return "backward"
	default:
		return "none"
	}
}

// Input is one tick's worth of control state.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool

	// Yaw is the camera orbit angle; held keys are interpreted relative
	// to it so "forward" always means away from the camera.
	Yaw float32

	// Maneuver requests a timed 180° turn this tick. Ignored while one
	// is already in progress.
	Maneuver Maneuver
}

// Config holds the controller's tuning parameters.
type Config struct {
	Accel            float32 // units/s² toward the ceiling
	BaseCeiling      float32 // speed ceiling at score 0
	CeilingPerPoint  float32 // ceiling growth per score point
	TurnRate         float32 // max heading change, radians/s
	ReversalDot      float32 // dot threshold triggering a snap turn
	ReversalPenalty  float32 // speed multiplier applied on a snap turn
	MinTurnSpeed     float32 // below this speed reversals steer normally
	GlideDamping     float32 // exponential speed decay with no input
	DecelBase        float32 // deceleration at standstill, units/s²
	DecelFloor       float32 // deceleration never drops below this
	DecelScale       float32 // deceleration shrink per unit of speed
	BoundaryPenalty  float32 // speed multiplier on rim contact
	ManeuverDuration float32 // seconds for a full maneuver
	Boundary         float32 // arena radius
	Height           float32 // fixed Y of the avatar
}

// State is a read-only view of the avatar pose.
type State struct {
	Pos              components.Position
	Heading          float32 // facing angle, radians, in the XZ plane
	Speed            float32
	SpeedCeiling     float32
	Maneuver         Maneuver
	ManeuverProgress float32 // 0 when idle, in [0,1] while turning
}

// Controller owns and mutates the avatar state. All mutation happens inside
// Update; everything else reads.
type Controller struct {
	cfg Config

	pos     components.Position
	heading float32
	dirX    float32 // last movement direction, unit XZ vector
	dirZ    float32
	speed   float32

	score   int
	ceiling float32

	maneuver      Maneuver
	maneuverT     float32
	maneuverStart float32 // heading when the maneuver began
	maneuverSign  float32

	pendingYawSnap float32
}

// NewController creates a controller at the arena center facing +Z.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	c.Reset()
	return c
}

// Reset recenters the avatar and clears all motion state.
func (c *Controller) Reset() {
	c.pos = components.Position{X: 0, Y: c.cfg.Height, Z: 0}
	c.heading = 0
	c.dirX = 0
	c.dirZ = 1
	c.speed = 0
	c.score = 0
	c.ceiling = c.cfg.BaseCeiling
	c.maneuver = ManeuverNone
	c.maneuverT = 0
	c.pendingYawSnap = 0
}

// SetScore feeds the score-derived speed ceiling. The ceiling never shrinks.
func (c *Controller) SetScore(score int) {
	if score < c.score {
		return
	}
	c.score = score
	c.ceiling = c.cfg.BaseCeiling + c.cfg.CeilingPerPoint*float32(score)
}

// State returns the current pose.
func (c *Controller) State() State {
	return State{
		Pos:              c.pos,
		Heading:          c.heading,
		Speed:            c.speed,
		SpeedCeiling:     c.ceiling,
		Maneuver:         c.maneuver,
		ManeuverProgress: c.maneuverT,
	}
}

// TakeYawSnap returns the camera yaw adjustment produced by completed
// maneuvers since the last call, and clears it. The camera rig applies it so
// the orbit stays behind the avatar after a 180.
func (c *Controller) TakeYawSnap() float32 {
	snap := c.pendingYawSnap
	c.pendingYawSnap = 0
	return snap
}

// Update advances the avatar by one tick.
func (c *Controller) Update(in Input, dt float32) {
	if c.maneuver != ManeuverNone {
		c.advanceManeuver(dt)
		c.integrate(dt, false)
		return
	}

	if in.Maneuver != ManeuverNone {
		c.beginManeuver(in.Maneuver)
		c.integrate(dt, false)
		return
	}

	dx, dz, hasInput := desiredDirection(in)
	if hasInput {
		c.steer(dx, dz, dt)
		c.speed += c.cfg.Accel * dt
		if c.speed > c.ceiling {
			c.speed = c.ceiling
		}
	} else {
		c.decelerate(dt)
	}
	c.integrate(dt, !hasInput)
}

// desiredDirection combines held keys into a camera-relative world direction.
// Opposed keys cancel to zero length, which is treated as no input — the zero
// vector is never normalized.
func desiredDirection(in Input) (float32, float32, bool) {
	var fwd, strafe float32
	if in.Forward {
		fwd++
	}
	if in.Backward {
		fwd--
	}
	if in.Right {
		strafe++
	}
	if in.Left {
		strafe--
	}
	if fwd == 0 && strafe == 0 {
		return 0, 0, false
	}

	// Local space: forward is +Z rotated by the camera yaw, screen right is
	// forward crossed with up, so at yaw 0 right points toward -X.
	sin := float32(math.Sin(float64(in.Yaw)))
	cos := float32(math.Cos(float64(in.Yaw)))
	dx := -strafe*cos + fwd*sin
	dz := strafe*sin + fwd*cos

	mag := float32(math.Sqrt(float64(dx*dx + dz*dz)))
	return dx / mag, dz / mag, true
}

// steer turns the current direction toward the desired one. A strongly
// opposed input above the minimum speed snaps instantly with a speed penalty
// instead of interpolating; the discontinuity is deliberate so reversals
// feel like a foot-plant, not a wide arc.
func (c *Controller) steer(dx, dz, dt float32) {
	dot := dx*c.dirX + dz*c.dirZ
	target := float32(math.Atan2(float64(dx), float64(dz)))

	if dot < c.cfg.ReversalDot && c.speed > c.cfg.MinTurnSpeed {
		c.heading = target
		c.dirX = dx
		c.dirZ = dz
		c.speed *= c.cfg.ReversalPenalty
		return
	}

	c.heading = rotateToward(c.heading, target, c.cfg.TurnRate*dt)
	c.dirX = float32(math.Sin(float64(c.heading)))
	c.dirZ = float32(math.Cos(float64(c.heading)))
}

// decelerate applies the no-input speed decay. The rate shrinks as speed
// grows so high-speed glides persist, but never drops below the floor so
// speed can't plateau short of zero.
func (c *Controller) decelerate(dt float32) {
	decel := c.cfg.DecelBase - c.cfg.DecelScale*c.speed
	if decel < c.cfg.DecelFloor {
		decel = c.cfg.DecelFloor
	}
	c.speed -= decel * dt
	if c.speed < 0 {
		c.speed = 0
	}
}

// integrate advances the position along the movement direction and contains
// it inside the boundary circle.
func (c *Controller) integrate(dt float32, gliding bool) {
	if gliding {
		// Glide: continue along the last direction with damped speed.
		c.speed *= float32(math.Exp(float64(-c.cfg.GlideDamping * dt)))
	}
	if c.speed == 0 {
		return
	}

	nx := c.pos.X + c.dirX*c.speed*dt
	nz := c.pos.Z + c.dirZ*c.speed*dt

	distSq := nx*nx + nz*nz
	r := c.cfg.Boundary
	if distSq > r*r {
		// Clamp to the rim by angle and bleed off some speed: a soft
		// bounce rather than a hard stop.
		dist := float32(math.Sqrt(float64(distSq)))
		nx = nx / dist * r
		nz = nz / dist * r
		c.speed *= c.cfg.BoundaryPenalty
	}

	c.pos.X = nx
	c.pos.Z = nz
}

// beginManeuver starts a timed 180° turn. Maneuvers are mutually exclusive;
// the caller has already checked none is in progress.
func (c *Controller) beginManeuver(m Maneuver) {
	c.maneuver = m
	c.maneuverT = 0
	c.maneuverStart = c.heading
	switch m {
	case ManeuverRight, ManeuverBackward:
		c.maneuverSign = -1
	default:
		c.maneuverSign = 1
	}
}

// advanceManeuver progresses the eased rotation and finalizes on completion.
func (c *Controller) advanceManeuver(dt float32) {
	c.maneuverT += dt / c.cfg.ManeuverDuration
	if c.maneuverT < 1 {
		eased := float32(math.Sin(float64(c.maneuverT) * math.Pi / 2))
		c.heading = normalizeAngle(c.maneuverStart + c.maneuverSign*math.Pi*eased)
		return
	}

	c.maneuverT = 0
	c.heading = normalizeAngle(c.maneuverStart + c.maneuverSign*math.Pi)
	c.pendingYawSnap += c.maneuverSign * math.Pi

	if c.maneuver == ManeuverForward || c.maneuver == ManeuverBackward {
		// Forward/backward variants also reverse travel, not just facing.
		c.dirX = -c.dirX
		c.dirZ = -c.dirZ
	}
	c.maneuver = ManeuverNone
}

// rotateToward rotates angle toward target by at most maxDelta, without
// overshooting, along the shorter arc.
func rotateToward(angle, target, maxDelta float32) float32 {
	diff := normalizeAngle(target - angle)
	if diff > maxDelta {
		diff = maxDelta
	} else if diff < -maxDelta {
		diff = -maxDelta
	}
	return normalizeAngle(angle + diff)
}

// normalizeAngle wraps angle to [-pi, pi].
func normalizeAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
