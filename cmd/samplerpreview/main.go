// Sampler preview tool - interactive top-down view of gem placement.
//
// Regenerates a full arena seed with the current slider values so spacing
// and tier odds can be tuned visually before touching defaults.yaml.
//
// Usage: go run ./cmd/samplerpreview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rush/arena"
	"github.com/pthm-cable/rush/components"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

// SamplerParams holds the placement parameters under tuning.
type SamplerParams struct {
	Radius        float32
	MinSeparation float32
	Count         int
	RareChance    float32
	EpicChance    float32
	Seed          int64
}

type placed struct {
	pos  components.Position
	tier components.Tier
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Sampler Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := SamplerParams{
		Radius:        90,
		MinSeparation: 6,
		Count:         24,
		RareChance:    0.15,
		EpicChance:    0.05,
		Seed:          42,
	}

	var gems []placed
	var rejected int
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			gems, rejected = generate(params)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		drawArena(params, gems)

		rl.DrawText(fmt.Sprintf("placed: %d  rejected: %d", len(gems), rejected),
			15, previewSize+30, 18, rl.LightGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Placement Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		rl.DrawText("Min separation", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSep := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "20",
			params.MinSeparation, 0, 20,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.MinSeparation), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if newSep != params.MinSeparation {
			params.MinSeparation = newSep
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Gem count", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCount := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "200",
			float32(params.Count), 1, 200,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Count), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if int(newCount) != params.Count {
			params.Count = int(newCount)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Rare chance", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRare := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.5",
			params.RareChance, 0, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.RareChance), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if newRare != params.RareChance {
			params.RareChance = newRare
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Epic chance", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newEpic := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.25",
			params.EpicChance, 0, 0.25,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.EpicChance), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if newEpic != params.EpicChance {
			params.EpicChance = newEpic
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reseed") {
			params.Seed++
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset") {
			params = SamplerParams{
				Radius:        90,
				MinSeparation: 6,
				Count:         24,
				RareChance:    0.15,
				EpicChance:    0.05,
				Seed:          42,
			}
			needsRegen = true
		}

		rl.EndDrawing()
	}
}

// generate seeds a fresh arena with the current parameters.
func generate(p SamplerParams) ([]placed, int) {
	rng := rand.New(rand.NewSource(p.Seed))
	s := arena.NewSampler(rng, p.Radius, 0.5, p.MinSeparation, 50, p.RareChance, p.EpicChance)

	var gems []placed
	var existing []components.Position
	rejected := 0
	for i := 0; i < p.Count; i++ {
		pos, tier, ok := s.SampleGround(existing, true)
		if !ok {
			rejected++
			continue
		}
		gems = append(gems, placed{pos: pos, tier: tier})
		existing = append(existing, pos)
	}
	return gems, rejected
}

// drawArena projects the disk top-down into the preview square.
func drawArena(p SamplerParams, gems []placed) {
	cx := float32(10 + previewSize/2)
	cy := float32(10 + previewSize/2)
	scale := float32(previewSize/2-10) / p.Radius

	rl.DrawCircleLines(int32(cx), int32(cy), p.Radius*scale, rl.RayWhite)

	for _, g := range gems {
		var color rl.Color
		switch g.tier {
		case components.TierEpic:
			color = rl.Purple
		case components.TierRare:
			color = rl.SkyBlue
		default:
			color = rl.Gold
		}
		sx := cx + g.pos.X*scale
		sy := cy + g.pos.Z*scale
		rl.DrawCircle(int32(sx), int32(sy), 4, color)
		// Separation ring shows the exclusion zone to spot near-misses
		rl.DrawCircleLines(int32(sx), int32(sy), p.MinSeparation*scale/2, rl.Fade(color, 0.25))
	}
}
