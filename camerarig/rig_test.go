package camerarig

import (
	"math"
	"testing"
)

func testConfig() Config {
	return Config{
		Distance:       16,
		MinDistance:    8,
		MaxDistance:    30,
		Height:         7,
		PosSmoothing:   8,
		LookSmoothing:  10,
		YawSensitivity: 0.004,
		ZoomStep:       1.5,
	}
}

const dt = float32(1.0 / 60.0)

func dist3(a, b Vec3) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func TestNewIsPosedOnTarget(t *testing.T) {
	target := Vec3{X: 0, Y: 1, Z: 0}
	r := New(testConfig(), target)

	// At yaw 0 the eye sits behind the target on -Z, raised by height.
	eye := r.Eye()
	if math.Abs(float64(eye.Z-(-16))) > 0.01 || math.Abs(float64(eye.Y-8)) > 0.01 {
		t.Errorf("expected eye near (0, 8, -16), got %+v", eye)
	}
	if r.Look() != target {
		t.Errorf("expected look at target, got %+v", r.Look())
	}
}

func TestZoomClamp(t *testing.T) {
	r := New(testConfig(), Vec3{})

	r.Zoom(100) // way past min
	r.Update(Vec3{}, dt)
	if d := dist3(r.Eye(), Vec3{}); d > float64(8+7)+0.5 {
		t.Errorf("zoom-in should clamp at min distance, eye %f away", d)
	}

	r.Zoom(-100) // way past max
	for i := 0; i < 600; i++ {
		r.Update(Vec3{}, dt)
	}
	// Converged eye distance in the horizontal plane equals max distance.
	eye := r.Eye()
	horiz := math.Hypot(float64(eye.X), float64(eye.Z))
	if math.Abs(horiz-30) > 0.1 {
		t.Errorf("zoom-out should clamp at max distance, got %f", horiz)
	}
}

func TestUpdateConverges(t *testing.T) {
	r := New(testConfig(), Vec3{})
	target := Vec3{X: 20, Y: 1, Z: 5}

	prev := dist3(r.Look(), target)
	for i := 0; i < 300; i++ {
		r.Update(target, dt)
		cur := dist3(r.Look(), target)
		if cur > prev+1e-6 {
			t.Fatalf("tick %d: look-at diverged, %f -> %f", i, prev, cur)
		}
		prev = cur
	}
	if prev > 0.01 {
		t.Errorf("look-at did not converge, still %f away", prev)
	}
}

func TestSmoothingLags(t *testing.T) {
	r := New(testConfig(), Vec3{})
	// Construction snaps the pose; one settled tick arms smoothing.
	r.Update(Vec3{}, dt)

	target := Vec3{X: 50}

	// One tick toward a distant target must not teleport.
	r.Update(target, dt)
	if d := dist3(r.Look(), target); d < 40 {
		t.Errorf("look-at moved too far in one tick, %f remaining", d)
	}
}

func TestRotateMovesOrbit(t *testing.T) {
	r := New(testConfig(), Vec3{})

	r.Rotate(100) // 100 px * 0.004 = 0.4 rad
	if math.Abs(float64(r.Yaw()-0.4)) > 1e-5 {
		t.Errorf("expected yaw 0.4, got %f", r.Yaw())
	}

	// The ideal eye swings around the target; after convergence the eye
	// keeps its distance but changes direction.
	for i := 0; i < 600; i++ {
		r.Update(Vec3{}, dt)
	}
	eye := r.Eye()
	if eye.X > -0.1 {
		t.Errorf("positive yaw should move the eye toward -X, got %+v", eye)
	}
	horiz := math.Hypot(float64(eye.X), float64(eye.Z))
	if math.Abs(horiz-16) > 0.1 {
		t.Errorf("orbit distance changed during rotation: %f", horiz)
	}
}

func TestSnapYawSkipsSmoothing(t *testing.T) {
	r := New(testConfig(), Vec3{})
	r.Update(Vec3{}, dt)

	r.SnapYaw(math.Pi)
	r.Update(Vec3{}, dt)

	// After a snap the eye is on the ideal orbit immediately: at yaw pi
	// it sits on the +Z side.
	eye := r.Eye()
	if math.Abs(float64(eye.Z-16)) > 0.01 {
		t.Errorf("expected eye snapped to +Z side, got %+v", eye)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	r := New(testConfig(), Vec3{})
	r.Rotate(500)
	r.Zoom(-5)
	for i := 0; i < 60; i++ {
		r.Update(Vec3{X: 30}, dt)
	}

	r.Reset(Vec3{})
	if r.Yaw() != 0 {
		t.Errorf("expected yaw 0 after reset, got %f", r.Yaw())
	}
	eye := r.Eye()
	if math.Abs(float64(eye.Z-(-16))) > 0.01 {
		t.Errorf("expected default orbit after reset, got %+v", eye)
	}
}

func TestCountdownPoseDescends(t *testing.T) {
	target := Vec3{Y: 1}
	r := New(testConfig(), target)

	eyeStart, _ := r.CountdownPose(target, 0, 5)
	eyeMid, _ := r.CountdownPose(target, 2.5, 5)
	eyeEnd, look := r.CountdownPose(target, 5, 5)

	if eyeStart.Y <= eyeMid.Y || eyeMid.Y <= eyeEnd.Y {
		t.Errorf("sweep should descend: %f, %f, %f", eyeStart.Y, eyeMid.Y, eyeEnd.Y)
	}
	if look != target {
		t.Errorf("sweep should look at the target, got %+v", look)
	}

	// The sweep lands exactly on the default orbit pose.
	if d := dist3(eyeEnd, r.Eye()); d > 0.01 {
		t.Errorf("sweep end %f away from the orbit pose", d)
	}
}

func TestCountdownPoseClampsElapsed(t *testing.T) {
	r := New(testConfig(), Vec3{})

	late, _ := r.CountdownPose(Vec3{}, 99, 5)
	end, _ := r.CountdownPose(Vec3{}, 5, 5)
	if late != end {
		t.Errorf("pose past the sweep end should hold: %+v vs %+v", late, end)
	}
}
