package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rush/camerarig"
	"github.com/pthm-cable/rush/components"
	"github.com/pthm-cable/rush/session"
)

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	eye, look := g.cameraPose()
	cam := rl.Camera3D{
		Position:   rl.Vector3{X: eye.X, Y: eye.Y, Z: eye.Z},
		Target:     rl.Vector3{X: look.X, Y: look.Y, Z: look.Z},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       55,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam)
	g.drawArena()
	g.drawGems()
	g.drawAvatar()
	rl.EndMode3D()

	g.drawOverlay()
	g.drawHUD()

	rl.EndDrawing()
}

// cameraPose picks the scripted countdown sweep or the live orbit pose.
func (g *Game) cameraPose() (camerarig.Vec3, camerarig.Vec3) {
	if g.sess.Phase() == session.PhaseCountdown {
		elapsed := float32(g.sess.CountdownElapsed())
		duration := float32(g.cfg.Session.Countdown.Clear)
		return g.rig.CountdownPose(g.avatarTarget(), elapsed, duration)
	}
	return g.rig.Eye(), g.rig.Look()
}

// drawArena renders the ground disk and the boundary ring.
func (g *Game) drawArena() {
	radius := g.cfg.Derived.Radius32

	// Thin cylinder as the ground disk
	rl.DrawCylinder(rl.Vector3{X: 0, Y: -0.25, Z: 0}, radius, radius, 0.25, 48, rl.DarkGreen)
	rl.DrawCircle3D(rl.Vector3{X: 0, Y: 0.05, Z: 0}, radius,
		rl.Vector3{X: 1, Y: 0, Z: 0}, 90, rl.RayWhite)
}

// drawGems renders the snapshot, colored by tier.
func (g *Game) drawGems() {
	for _, gem := range g.snapshot {
		center := rl.Vector3{X: gem.Pos.X, Y: gem.Pos.Y, Z: gem.Pos.Z}

		var color rl.Color
		switch gem.Tier {
		case components.TierEpic:
			color = rl.Purple
		case components.TierRare:
			color = rl.SkyBlue
		default:
			color = rl.Gold
		}
		if gem.Phase == components.PhaseFalling {
			// Falling gems read as incoming: dimmed with a drop line
			color.A = 170
			rl.DrawLine3D(center, rl.Vector3{X: gem.Pos.X, Y: 0, Z: gem.Pos.Z}, rl.Fade(color, 0.3))
		}
		rl.DrawSphere(center, 0.7, color)
	}
}

// drawAvatar renders the player body with a heading marker.
func (g *Game) drawAvatar() {
	s := g.avatar.State()
	body := rl.Vector3{X: s.Pos.X, Y: s.Pos.Y + 0.6, Z: s.Pos.Z}

	rl.DrawCapsule(
		rl.Vector3{X: s.Pos.X, Y: s.Pos.Y + 0.3, Z: s.Pos.Z},
		rl.Vector3{X: s.Pos.X, Y: s.Pos.Y + 1.4, Z: s.Pos.Z},
		0.6, 8, 8, rl.Orange,
	)

	// Nose cone shows facing
	dx := sin32(s.Heading)
	dz := cos32(s.Heading)
	nose := rl.Vector3{X: s.Pos.X + dx*1.2, Y: s.Pos.Y + 0.6, Z: s.Pos.Z + dz*1.2}
	rl.DrawLine3D(body, nose, rl.RayWhite)
	rl.DrawSphere(nose, 0.15, rl.RayWhite)
}

// drawOverlay renders the countdown fade and cue text.
func (g *Game) drawOverlay() {
	r := g.sess.Readout()

	switch r.Phase {
	case session.PhaseStart:
		g.drawCenteredText("GEM RUSH", 60, -40, rl.RayWhite)
		g.drawCenteredText("press ENTER", 24, 20, rl.LightGray)

	case session.PhaseCountdown:
		elapsed := g.sess.CountdownElapsed()
		fadeEnd := g.cfg.Session.Countdown.Fade
		alpha := float32(1.0)
		if fadeEnd > 0 {
			alpha = 1 - float32(elapsed/fadeEnd)
		}
		if alpha > 0 {
			rl.DrawRectangle(0, 0, int32(g.width), int32(g.height), rl.Fade(rl.Black, alpha))
		}
		if r.Cue != "" {
			g.drawCenteredText(r.Cue, 96, 0, rl.RayWhite)
		}

	case session.PhaseGameOver:
		rl.DrawRectangle(0, 0, int32(g.width), int32(g.height), rl.Fade(rl.Black, 0.55))
		g.drawCenteredText("TIME!", 72, -60, rl.RayWhite)
		g.drawCenteredText(fmt.Sprintf("score %d", r.Score), 40, 10, rl.Gold)
		g.drawCenteredText("press ENTER to go again", 22, 70, rl.LightGray)
	}

	if g.paused {
		g.drawCenteredText("PAUSED", 40, 0, rl.Yellow)
	}
}

// drawCenteredText draws text horizontally centered, offset from mid-screen.
func (g *Game) drawCenteredText(text string, size int32, yOffset int32, color rl.Color) {
	w := rl.MeasureText(text, size)
	x := (int32(g.width) - w) / 2
	y := int32(g.height)/2 + yOffset - size/2
	rl.DrawText(text, x, y, size, color)
}

func sin32(a float32) float32 {
	return float32(math.Sin(float64(a)))
}

func cos32(a float32) float32 {
	return float32(math.Cos(float64(a)))
}
