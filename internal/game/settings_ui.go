package game

import (
	"fmt"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"mazerunner/internal/audio"
	"mazerunner/internal/render"
	"mazerunner/internal/vmath"
)

// Theme colors
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 230)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
)

func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

const (
	panelX     = 20
	panelY     = 20
	panelW     = 320
	rowHeight  = 28
	labelWidth = 120
)

// drawSettings draws the Tab panel and applies changes immediately.
func (g *Game) drawSettings() {
	rows := 9
	rl.DrawRectangle(panelX, panelY, panelW, int32(rows*rowHeight+40), colorBgPanel)
	rl.DrawRectangleLines(panelX, panelY, panelW, int32(rows*rowHeight+40), colorAccent)
	rl.DrawText("Settings", panelX+10, panelY+8, 20, colorTextPrimary)

	y := float32(panelY + 40)
	row := func() rl.Rectangle {
		r := rl.Rectangle{X: panelX + labelWidth, Y: y, Width: panelW - labelWidth - 50, Height: 20}
		y += rowHeight
		return r
	}
	label := func(text string) {
		rl.DrawText(text, panelX+10, int32(y)+3, 15, colorTextSecondary)
	}

	c := g.Controller

	label("FOV")
	fovDeg := float32(vmath.Degrees(c.Pose.FOV))
	fovDeg = gui.Slider(row(), "", fmt.Sprintf("%.0f", fovDeg), fovDeg, 30, 150)
	c.SetFOV(vmath.Radians(float64(fovDeg)))

	label("Mouse")
	sens := float32(c.Settings.MouseSensitivity * 1000)
	sens = gui.Slider(row(), "", fmt.Sprintf("%.1f", sens), sens, 0.5, 20)
	c.Settings.MouseSensitivity = float64(sens) / 1000

	label("Speed")
	speed := float32(c.Settings.MoveSpeed)
	speed = gui.Slider(row(), "", fmt.Sprintf("%.1f", speed), speed, 1, 20)
	c.Settings.MoveSpeed = float64(speed)

	label("Projection")
	proj := float32(g.Renderer.Options.ProjectionDistance)
	proj = gui.Slider(row(), "", fmt.Sprintf("%.0f", proj), proj, 20, 400)
	g.Renderer.Options.ProjectionDistance = float64(proj)

	label("Music")
	vol := audio.Volume()
	if v := gui.Slider(row(), "", fmt.Sprintf("%.2f", vol), vol, 0, 1); v != vol {
		audio.SetVolume(v)
	}

	g.Renderer.Options.FisheyeCorrection = gui.CheckBox(row(), "Fisheye correction", g.Renderer.Options.FisheyeCorrection)

	pinned := gui.CheckBox(row(), "Pin textures to walls", g.Renderer.Options.Mapping == render.MapWallSurface)
	if pinned {
		g.Renderer.Options.Mapping = render.MapWallSurface
	} else {
		g.Renderer.Options.Mapping = render.MapScreenColumn
	}

	g.ShowMinimap = gui.CheckBox(row(), "Minimap", g.ShowMinimap)

	if gui.Button(row(), "Save") {
		g.saveSettings()
	}
}

// saveSettings copies the live settings into the config and writes it out.
func (g *Game) saveSettings() {
	cfg := g.Config
	c := g.Controller
	cfg.SetFOV(c.Pose.FOV)
	cfg.Player.MouseSensitivity = c.Settings.MouseSensitivity
	cfg.Player.MoveSpeed = c.Settings.MoveSpeed
	cfg.Render.ProjectionDistance = g.Renderer.Options.ProjectionDistance
	cfg.Render.FisheyeCorrection = g.Renderer.Options.FisheyeCorrection
	cfg.Render.TextureMapping = g.Renderer.Options.Mapping.String()
	cfg.Minimap.Enabled = g.ShowMinimap
	cfg.Assets.MusicVolume = float64(audio.Volume())

	if g.ConfigPath == "" {
		g.setStatus("No config path to save to")
		return
	}
	if err := cfg.Save(g.ConfigPath); err != nil {
		log.Printf("save settings: %v", err)
		g.setStatus("Save failed")
		return
	}
	log.Printf("Saved settings to %s", g.ConfigPath)
	g.setStatus("Settings saved")
}
