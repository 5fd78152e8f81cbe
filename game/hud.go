package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rush/session"
)

// drawHUD renders the score strip and the session controls.
func (g *Game) drawHUD() {
	r := g.sess.Readout()

	rl.DrawText(fmt.Sprintf("Score: %d", r.Score), 10, 10, 28, rl.Gold)
	rl.DrawText(fmt.Sprintf("Time: %d", r.TimeRemaining), 10, 44, 28, timerColor(r.TimeRemaining))
	rl.DrawText(fmt.Sprintf("Gems: %d", g.gemCount), 10, 78, 18, rl.LightGray)

	a := g.avatar.State()
	rl.DrawText(fmt.Sprintf("Speed: %.1f / %.1f", a.Speed, a.SpeedCeiling), 10, 100, 18, rl.LightGray)

	// Session button mirrors the Enter key
	switch r.Phase {
	case session.PhaseStart:
		if gui.Button(g.buttonRect(), "Start") {
			g.sess.Begin()
		}
	case session.PhaseGameOver:
		if gui.Button(g.buttonRect(), "Play Again") {
			g.sess.Restart()
		}
	}
}

func (g *Game) buttonRect() rl.Rectangle {
	return rl.Rectangle{
		X:      g.width/2 - 80,
		Y:      g.height - 90,
		Width:  160,
		Height: 36,
	}
}

// timerColor shifts the clock toward red in the closing seconds.
func timerColor(remaining int) rl.Color {
	switch {
	case remaining <= 10:
		return rl.Red
	case remaining <= 20:
		return rl.Orange
	default:
		return rl.RayWhite
	}
}
