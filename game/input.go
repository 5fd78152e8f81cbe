package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rush/avatar"
	"github.com/pthm-cable/rush/session"
)

// handleInput polls raylib and stages one tick of input. Graphical mode only.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyEnter) {
		switch g.sess.Phase() {
		case session.PhaseStart:
			g.sess.Begin()
		case session.PhaseGameOver:
			g.sess.Restart()
		}
	}

	in := avatar.Input{Yaw: g.rig.Yaw()}
	if rl.IsKeyDown(rl.KeyW) {
		in.Forward = true
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Backward = true
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Left = true
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Right = true
	}

	// Arrow keys trigger 180° maneuvers
	switch {
	case rl.IsKeyPressed(rl.KeyLeft):
		in.Maneuver = avatar.ManeuverLeft
	case rl.IsKeyPressed(rl.KeyRight):
		in.Maneuver = avatar.ManeuverRight
	case rl.IsKeyPressed(rl.KeyUp):
		in.Maneuver = avatar.ManeuverForward
	case rl.IsKeyPressed(rl.KeyDown):
		in.Maneuver = avatar.ManeuverBackward
	}
	g.input = in

	// Camera orbit follows horizontal pointer movement
	if delta := rl.GetMouseDelta(); delta.X != 0 {
		g.rig.Rotate(delta.X)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.rig.Zoom(wheel)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.rig.Reset(g.avatarTarget())
	}
}
