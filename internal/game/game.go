package game

import (
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mazerunner/internal/assets"
	"mazerunner/internal/audio"
	"mazerunner/internal/config"
	"mazerunner/internal/player"
	"mazerunner/internal/render"
	"mazerunner/internal/world"
)

// Game is the windowed frontend: one maze, one player, one raylib window.
type Game struct {
	Config     *config.Config
	ConfigPath string

	Grid       *world.Grid
	Controller *player.Controller
	Renderer   *render.Renderer
	Frame      *render.Framebuffer

	ShowMinimap  bool
	SettingsOpen bool

	screen  rl.Texture2D
	minimap render.Minimap

	// Debug timing (ms)
	updateMs float64
	renderMs float64

	statusMsg  string
	statusTime float64
}

// New loads the maze and textures named by cfg. Nothing here needs a window.
func New(cfg *config.Config, configPath string) (*Game, error) {
	grid, err := world.LoadMaze(cfg.Maze.Path)
	if err != nil {
		return nil, err
	}

	textures, err := assets.LoadTextureSet(cfg.TexturePaths(), cfg.Assets.DefaultTexture)
	if err != nil {
		return nil, fmt.Errorf("load textures: %w", err)
	}

	caster := cfg.Caster()
	fb := render.NewFramebuffer(cfg.Window.Width, cfg.Window.Height)
	fb.SetBackground(cfg.Background())

	return &Game{
		Config:      cfg,
		ConfigPath:  configPath,
		Grid:        grid,
		Controller:  player.NewController(cfg.StartPose(grid), cfg.PlayerSettings(), caster),
		Renderer:    render.NewRenderer(caster, textures, cfg.RenderOptions()),
		Frame:       fb,
		ShowMinimap: cfg.Minimap.Enabled,
		minimap:     cfg.MinimapOptions(),
	}, nil
}

// Run opens the window and plays until it is closed.
func (g *Game) Run() error {
	rl.InitWindow(int32(g.Frame.Width), int32(g.Frame.Height), g.Config.Window.Title)
	defer rl.CloseWindow()

	rl.DisableCursor()
	initRayguiStyle()

	audio.Init()
	defer audio.Close()
	if music := g.Config.Assets.Music; music != "" {
		if err := audio.PlayMusic(music, float32(g.Config.Assets.MusicVolume)); err != nil {
			log.Printf("music disabled: %v", err)
		}
	}

	img := rl.GenImageColor(g.Frame.Width, g.Frame.Height, rl.Black)
	g.screen = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(g.screen)

	frameDelay := g.Config.Window.FrameDelay.Duration
	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
		audio.Update()
		time.Sleep(frameDelay)
	}
	assets.Unload()
	return nil
}

// Update handles hotkeys and moves the player for one frame.
func (g *Game) Update() {
	updateStart := time.Now()

	if rl.IsKeyPressed(rl.KeyTab) {
		g.SettingsOpen = !g.SettingsOpen
		if g.SettingsOpen {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.ShowMinimap = !g.ShowMinimap
	}
	if rl.IsKeyPressed(rl.KeyP) {
		audio.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.ReloadMaze()
	}

	g.Controller.Update(g.Grid, decodeInput(pollDevices(!g.SettingsOpen)))

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// ReloadMaze rereads the maze file. On failure the current maze stays.
func (g *Game) ReloadMaze() {
	grid, err := world.LoadMaze(g.Config.Maze.Path)
	if err != nil {
		log.Printf("reload maze: %v", err)
		g.setStatus("Maze reload failed")
		return
	}
	g.Grid = grid
	if g.Renderer.Caster.Collides(grid, g.Controller.Pose.Pos) {
		g.Controller.Pose = g.Config.StartPose(grid)
	}
	log.Printf("Reloaded maze %s (%d rows)", g.Config.Maze.Path, grid.Rows())
	g.setStatus("Maze reloaded")
}

// Draw renders the view into the framebuffer and uploads it to the screen texture.
func (g *Game) Draw() {
	renderStart := time.Now()
	g.Frame.Clear()
	g.Renderer.Render3D(g.Frame, g.Grid, g.Controller.Pose)
	if g.ShowMinimap {
		g.Renderer.RenderMinimap(g.Frame, g.Grid, g.Controller.Pose, g.minimap)
	}
	rl.UpdateTexture(g.screen, g.Frame.Pixels)
	g.renderMs = float64(time.Since(renderStart).Microseconds()) / 1000.0

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTexture(g.screen, 0, 0, rl.White)
	g.DrawUI()
	if g.SettingsOpen {
		g.drawSettings()
	}
	rl.EndDrawing()
}

func (g *Game) setStatus(msg string) {
	g.statusMsg = msg
	g.statusTime = rl.GetTime()
}
