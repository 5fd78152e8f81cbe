// Package camerarig provides the third-person orbit camera.
//
// The rig derives an eye and look-at point from the avatar position each
// tick: a pointer-controlled orbit angle, a scroll-adjustable distance, and
// exponential lag smoothing on both points. It is pure math over float32
// vectors; the game package converts the pose to raylib's camera type.
package camerarig

import "math"

// Vec3 is a world-space point or offset.
type Vec3 struct {
	X, Y, Z float32
}

// Config holds the rig's tuning parameters.
type Config struct {
	Distance       float32 // default orbit distance
	MinDistance    float32 // zoom clamp
	MaxDistance    float32
	Height         float32 // orbit height above the target
	PosSmoothing   float32 // eye lag rate, 1/s
	LookSmoothing  float32 // look-at lag rate, 1/s
	YawSensitivity float32 // radians per pointer pixel
	ZoomStep       float32 // distance change per wheel notch
}

// Rig tracks the orbit state and the smoothed camera pose.
type Rig struct {
	cfg Config

	yaw      float32 // orbit angle around the target, radians
	distance float32

	eye  Vec3
	look Vec3

	// snapped suppresses smoothing for one tick after a hard pose
	// change so the camera doesn't visibly sweep across the arena.
	snapped bool
}

// New creates a rig at the default angle and distance, posed on target.
func New(cfg Config, target Vec3) *Rig {
	r := &Rig{cfg: cfg}
	r.Reset(target)
	return r
}

// Reset restores the default orbit and snaps the pose onto the target.
func (r *Rig) Reset(target Vec3) {
	r.yaw = 0
	r.distance = r.cfg.Distance
	r.look = target
	r.eye = r.idealEye(target)
	r.snapped = true
}

// Yaw returns the current orbit angle. Input interprets held movement keys
// relative to it.
func (r *Rig) Yaw() float32 {
	return r.yaw
}

// Eye returns the smoothed camera position.
func (r *Rig) Eye() Vec3 {
	return r.eye
}

// Look returns the smoothed look-at point.
func (r *Rig) Look() Vec3 {
	return r.look
}

// Rotate adds pointer movement to the orbit angle.
func (r *Rig) Rotate(pixels float32) {
	r.yaw = normalizeAngle(r.yaw + pixels*r.cfg.YawSensitivity)
}

// SnapYaw shifts the orbit angle instantly. Used when the avatar completes
// a 180° maneuver so the camera stays behind it.
func (r *Rig) SnapYaw(delta float32) {
	if delta == 0 {
		return
	}
	r.yaw = normalizeAngle(r.yaw + delta)
	r.snapped = true
}

// Zoom adjusts the orbit distance by wheel notches, clamped to the limits.
func (r *Rig) Zoom(notches float32) {
	r.distance = clamp(r.distance-notches*r.cfg.ZoomStep, r.cfg.MinDistance, r.cfg.MaxDistance)
}

// Update advances the smoothed pose toward the ideal orbit point.
func (r *Rig) Update(target Vec3, dt float32) {
	ideal := r.idealEye(target)
	if r.snapped {
		r.eye = ideal
		r.look = target
		r.snapped = false
		return
	}

	pa := smoothFactor(r.cfg.PosSmoothing, dt)
	la := smoothFactor(r.cfg.LookSmoothing, dt)
	r.eye = lerp3(r.eye, ideal, pa)
	r.look = lerp3(r.look, target, la)
}

// CountdownPose returns the scripted crane sweep played during the countdown:
// the camera starts high and wide above the arena and descends onto the
// default orbit pose over the sweep duration. The returned pose is absolute;
// callers feed it to the renderer directly without smoothing.
func (r *Rig) CountdownPose(target Vec3, elapsed, duration float32) (eye, look Vec3) {
	if duration <= 0 {
		return r.idealEye(target), target
	}
	t := clamp(elapsed/duration, 0, 1)
	// Ease out so the final approach is gentle.
	t = 1 - (1-t)*(1-t)

	startYaw := r.yaw + math.Pi/2
	startDist := r.cfg.MaxDistance * 2
	startHeight := r.cfg.Height * 6

	yaw := startYaw + (r.yaw-startYaw)*t
	dist := startDist + (r.distance-startDist)*t
	height := startHeight + (r.cfg.Height-startHeight)*t

	eye = orbitPoint(target, yaw, dist, height)
	look = target
	return eye, look
}

// idealEye is the unsmoothed orbit position for the current angle/distance.
func (r *Rig) idealEye(target Vec3) Vec3 {
	return orbitPoint(target, r.yaw, r.distance, r.cfg.Height)
}

// orbitPoint places the eye behind the target: at yaw 0 the camera sits on
// the -Z side looking toward +Z, matching the avatar's default facing.
func orbitPoint(target Vec3, yaw, distance, height float32) Vec3 {
	sin := float32(math.Sin(float64(yaw)))
	cos := float32(math.Cos(float64(yaw)))
	return Vec3{
		X: target.X - sin*distance,
		Y: target.Y + height,
		Z: target.Z - cos*distance,
	}
}

// smoothFactor converts a lag rate into a framerate-independent lerp factor.
func smoothFactor(rate, dt float32) float32 {
	return 1 - float32(math.Exp(float64(-rate*dt)))
}

// lerp3 interpolates component-wise.
func lerp3(a, b Vec3, t float32) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
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

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
