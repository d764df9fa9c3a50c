package tty

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"mazerunner/internal/config"
	"mazerunner/internal/player"
	"mazerunner/internal/render"
	"mazerunner/internal/vmath"
	"mazerunner/internal/world"
)

const (
	hudRows           = 1
	defaultFrameDelay = 16 * time.Millisecond
)

// App runs the maze on a terminal screen.
type App struct {
	Screen     tcell.Screen
	Config     *config.Config
	Grid       *world.Grid
	Controller *player.Controller
	Renderer   *render.Renderer
	Frame      *render.Framebuffer

	ShowMinimap bool
	Music       *Music

	minimap render.Minimap
	stats   render.FrameStats
	status  string
}

// NewApp loads the maze and textures named by cfg and sizes the
// framebuffer to the screen. The screen must already be initialised.
func NewApp(screen tcell.Screen, cfg *config.Config) (*App, error) {
	grid, err := world.LoadMaze(cfg.Maze.Path)
	if err != nil {
		return nil, err
	}
	textures, err := render.LoadTextureSet(cfg.TexturePaths(), cfg.Assets.DefaultTexture, render.FileLoader)
	if err != nil {
		return nil, fmt.Errorf("load textures: %w", err)
	}

	cols, rows := screen.Size()
	w, h := FramebufferSize(cols, rows, hudRows)
	fb := render.NewFramebuffer(w, h)
	fb.SetBackground(cfg.Background())

	caster := cfg.Caster()
	minimap := cfg.MinimapOptions()
	// Terminal pixels are coarse, so keep the map small.
	minimap.X, minimap.Y = 1, 1
	minimap.Scale /= 4

	return &App{
		Screen:      screen,
		Config:      cfg,
		Grid:        grid,
		Controller:  player.NewController(cfg.StartPose(grid), cfg.PlayerSettings(), caster),
		Renderer:    render.NewRenderer(caster, textures, cfg.RenderOptions()),
		Frame:       fb,
		ShowMinimap: cfg.Minimap.Enabled,
		minimap:     minimap,
	}, nil
}

// HandleEvent applies one terminal event. It returns false when the app
// should quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		in, action := MapKey(ev)
		switch action {
		case ActionQuit:
			return false
		case ActionToggleMinimap:
			a.ShowMinimap = !a.ShowMinimap
		case ActionReload:
			a.ReloadMaze()
		case ActionToggleMusic:
			a.Music.TogglePause()
		}
		if hasMovement(in) {
			a.Controller.Update(a.Grid, in)
		}
	case *tcell.EventResize:
		a.Resize()
		a.Screen.Sync()
	}
	return true
}

// Resize matches the framebuffer to the current screen size.
func (a *App) Resize() {
	cols, rows := a.Screen.Size()
	w, h := FramebufferSize(cols, rows, hudRows)
	if w != a.Frame.Width || h != a.Frame.Height {
		a.Frame.Resize(w, h)
	}
}

// ReloadMaze rereads the maze file. On failure the current maze stays.
func (a *App) ReloadMaze() {
	grid, err := world.LoadMaze(a.Config.Maze.Path)
	if err != nil {
		log.Printf("reload maze: %v", err)
		a.status = "reload failed"
		return
	}
	a.Grid = grid
	if a.Renderer.Caster.Collides(grid, a.Controller.Pose.Pos) {
		a.Controller.Pose = a.Config.StartPose(grid)
	}
	a.status = "maze reloaded"
}

// Draw renders one frame and shows it.
func (a *App) Draw(now time.Time) {
	a.Frame.Clear()
	a.Renderer.Render3D(a.Frame, a.Grid, a.Controller.Pose)
	if a.ShowMinimap {
		a.Renderer.RenderMinimap(a.Frame, a.Grid, a.Controller.Pose, a.minimap)
	}

	a.Screen.Clear()
	Present(a.Screen, a.Frame, hudRows)
	a.drawHUD()
	a.Screen.Show()
	a.stats.Tick(now)
}

func (a *App) drawHUD() {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	pose := a.Controller.Pose
	text := fmt.Sprintf("FPS %3.0f | %.0f,%.0f %3.0f° | arrows/wasd move  m map  r reload  p music  q quit",
		a.stats.FPS(), pose.Pos.X, pose.Pos.Y, vmath.Degrees(pose.Angle))
	if a.status != "" {
		text += " | " + a.status
	}
	drawText(a.Screen, 0, 0, style, text)
}

// Frames is the number of frames drawn so far.
func (a *App) Frames() uint64 {
	return a.stats.Frames
}

// Run draws frames until ctx is cancelled or a quit key is pressed.
func (a *App) Run(ctx context.Context) error {
	delay := a.Config.Window.FrameDelay.Duration
	if delay <= 0 {
		delay = defaultFrameDelay
	}
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	a.Draw(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventChan:
			if !a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.Draw(now)
		}
	}
}
