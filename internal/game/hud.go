package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mazerunner/internal/vmath"
)

const statusDuration = 2.0 // seconds

// DrawUI draws the text overlay on top of the uploaded frame.
func (g *Game) DrawUI() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	rl.DrawFPS(screenW-100, 10)
	rl.DrawText("Arrows/WASD move, mouse to look, M map, Tab settings, F5 reload, Esc quit",
		10, screenH-30, 18, rl.LightGray)

	if g.statusMsg != "" && rl.GetTime()-g.statusTime < statusDuration {
		rl.DrawText(g.statusMsg, 10, screenH-55, 18, rl.Yellow)
	}

	if g.SettingsOpen {
		pose := g.Controller.Pose
		rl.DrawText(fmt.Sprintf("Pos: (%.1f, %.1f)  Angle: %.1f", pose.Pos.X, pose.Pos.Y, vmath.Degrees(pose.Angle)),
			screenW-360, 40, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Update: %.2f ms", g.updateMs), screenW-360, 60, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Render: %.2f ms", g.renderMs), screenW-360, 80, 16, rl.Green)
	}
}
