package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"mazerunner/internal/physics"
	"mazerunner/internal/player"
	"mazerunner/internal/render"
	"mazerunner/internal/vmath"
	"mazerunner/internal/world"
)

const DefaultConfigPath = "config/mazerunner.json"

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Config is everything the game reads at startup.
type Config struct {
	Window  WindowConfig  `json:"window"`
	Maze    MazeConfig    `json:"maze"`
	Raycast CasterConfig  `json:"caster"`
	Render  RenderConfig  `json:"render"`
	Player  PlayerConfig  `json:"player"`
	Minimap MinimapConfig `json:"minimap"`
	Assets  AssetsConfig  `json:"assets"`
}

type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	// FrameDelay is slept after every presented frame.
	FrameDelay Duration `json:"frame_delay"`
}

type MazeConfig struct {
	Path      string  `json:"path"`
	BlockSize float64 `json:"block_size"`
}

type CasterConfig struct {
	StepSize    float64 `json:"step_size"`
	MaxDistance float64 `json:"max_distance"`
}

type RenderConfig struct {
	ProjectionDistance float64 `json:"projection_distance"`
	MinDistance        float64 `json:"min_distance"`
	FisheyeCorrection  bool    `json:"fisheye_correction"`
	TextureMapping     string  `json:"texture_mapping"`
	Workers            int     `json:"workers"`
	Background         string  `json:"background"`
}

type PlayerConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// UseSpawn starts the player on the maze's spawn marker when it has one.
	UseSpawn         bool    `json:"use_spawn"`
	AngleDeg         float64 `json:"angle_deg"`
	FOVDeg           float64 `json:"fov_deg"`
	MoveSpeed        float64 `json:"move_speed"`
	RotationSpeedDeg float64 `json:"rotation_speed_deg"`
	StickDeadzone    float64 `json:"stick_deadzone"`
	MouseSensitivity float64 `json:"mouse_sensitivity"`
}

type MinimapConfig struct {
	Enabled bool    `json:"enabled"`
	Scale   float64 `json:"scale"`
	Rays    int     `json:"rays"`
}

type AssetsConfig struct {
	// Textures maps a wall marker ("+", "-" or "|") to an image path.
	Textures       map[string]string `json:"textures,omitempty"`
	DefaultTexture string            `json:"default_texture,omitempty"`
	Music          string            `json:"music,omitempty"`
	MusicVolume    float64           `json:"music_volume"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1300,
			Height:     900,
			Title:      "Maze Runner",
			FrameDelay: Duration{16 * time.Millisecond},
		},
		Maze: MazeConfig{
			Path:      "assets/maze.txt",
			BlockSize: 100,
		},
		Raycast: CasterConfig{
			StepSize:    physics.DefaultStepSize,
			MaxDistance: physics.DefaultMaxDistance,
		},
		Render: RenderConfig{
			ProjectionDistance: 80,
			MinDistance:        1,
			TextureMapping:     "screen",
			Workers:            1,
			Background:         "#333355",
		},
		Player: PlayerConfig{
			X:                150,
			Y:                150,
			AngleDeg:         60,
			FOVDeg:           60,
			MoveSpeed:        5,
			RotationSpeedDeg: 180.0 / 35,
			StickDeadzone:    0.1,
			MouseSensitivity: 0.004,
		},
		Minimap: MinimapConfig{
			Scale: 0.2,
			Rays:  5,
		},
		Assets: AssetsConfig{
			MusicVolume: 0.5,
		},
	}
}

// Load reads a JSON config over the defaults, so omitted fields keep their
// default values.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to the defaults when the file does
// not exist. Any other problem is an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes c as indented JSON. path must end in .json.
func (c *Config) Save(path string) error {
	if ext := filepath.Ext(path); ext != ".json" {
		return fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0,
		"window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.FrameDelay.Duration >= 0, "frame_delay must not be negative, got %s", c.Window.FrameDelay)
	check(c.Maze.Path != "", "maze path is empty")
	check(c.Maze.BlockSize > 0, "block_size must be positive, got %g", c.Maze.BlockSize)
	check(c.Raycast.StepSize > 0, "step_size must be positive, got %g", c.Raycast.StepSize)
	check(c.Raycast.MaxDistance > 0, "max_distance must be positive, got %g", c.Raycast.MaxDistance)
	check(c.Render.ProjectionDistance > 0, "projection_distance must be positive, got %g", c.Render.ProjectionDistance)
	check(c.Render.MinDistance > 0, "min_distance must be positive, got %g", c.Render.MinDistance)
	check(c.Render.Workers >= 0, "workers must not be negative, got %d", c.Render.Workers)
	check(c.Player.FOVDeg > 0 && c.Player.FOVDeg < 180, "fov_deg must be in (0, 180), got %g", c.Player.FOVDeg)
	check(c.Player.MoveSpeed >= 0, "move_speed must not be negative, got %g", c.Player.MoveSpeed)
	check(c.Player.StickDeadzone >= 0 && c.Player.StickDeadzone < 1,
		"stick_deadzone must be in [0, 1), got %g", c.Player.StickDeadzone)
	check(c.Minimap.Scale > 0, "minimap scale must be positive, got %g", c.Minimap.Scale)
	check(c.Minimap.Rays >= 0, "minimap rays must not be negative, got %d", c.Minimap.Rays)
	check(c.Assets.MusicVolume >= 0 && c.Assets.MusicVolume <= 1,
		"music_volume must be in [0, 1], got %g", c.Assets.MusicVolume)

	if _, err := render.ParseTextureMapping(c.Render.TextureMapping); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseColor(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	for key := range c.Assets.Textures {
		if _, err := wallKey(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Caster builds the ray marcher from the maze and caster sections.
func (c *Config) Caster() physics.Caster {
	return physics.Caster{
		BlockSize:   c.Maze.BlockSize,
		StepSize:    c.Raycast.StepSize,
		MaxDistance: c.Raycast.MaxDistance,
	}
}

// RenderOptions converts the render section. Workers is at least 1.
func (c *Config) RenderOptions() render.Options {
	mapping, _ := render.ParseTextureMapping(c.Render.TextureMapping)
	return render.Options{
		ProjectionDistance: c.Render.ProjectionDistance,
		MinDistance:        c.Render.MinDistance,
		FisheyeCorrection:  c.Render.FisheyeCorrection,
		Mapping:            mapping,
		Workers:            max(c.Render.Workers, 1),
	}
}

// PlayerSettings converts the player section, turning degrees into radians.
func (c *Config) PlayerSettings() player.Settings {
	s := player.DefaultSettings()
	s.MoveSpeed = c.Player.MoveSpeed
	s.RotationSpeed = vmath.Radians(c.Player.RotationSpeedDeg)
	s.StickDeadzone = c.Player.StickDeadzone
	s.MouseSensitivity = c.Player.MouseSensitivity
	return s
}

// MinimapOptions returns the overlay placement.
func (c *Config) MinimapOptions() render.Minimap {
	m := render.DefaultMinimap()
	m.Scale = c.Minimap.Scale
	m.Rays = c.Minimap.Rays
	return m
}

// StartPose places the player on the grid's spawn marker when UseSpawn is
// set and the grid has one, otherwise at the configured coordinates.
func (c *Config) StartPose(g *world.Grid) player.Pose {
	pos := vmath.Vec2{X: c.Player.X, Y: c.Player.Y}
	if c.Player.UseSpawn && g != nil {
		if p, ok := g.SpawnPoint(c.Maze.BlockSize); ok {
			pos = p
		}
	}
	return player.Pose{
		Pos:   pos,
		Angle: vmath.Radians(c.Player.AngleDeg),
		FOV:   vmath.Radians(c.Player.FOVDeg),
	}
}

// Background is the colour behind the walls.
func (c *Config) Background() color.RGBA {
	bg, err := ParseColor(c.Render.Background)
	if err != nil {
		return color.RGBA{A: 0xFF}
	}
	return bg
}

// TexturePaths maps configured texture paths to their wall kinds. Keys that
// are not wall markers are skipped; Validate reports them.
func (c *Config) TexturePaths() map[world.Cell]string {
	paths := make(map[world.Cell]string, len(c.Assets.Textures))
	for key, path := range c.Assets.Textures {
		cell, err := wallKey(key)
		if err != nil {
			continue
		}
		paths[cell] = path
	}
	return paths
}

func wallKey(key string) (world.Cell, error) {
	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || size != len(key) {
		return world.Empty, fmt.Errorf("texture key %q is not a single wall marker", key)
	}
	cell, err := world.ParseCell(r)
	if err != nil || !cell.IsWall() {
		return world.Empty, fmt.Errorf("texture key %q is not a wall marker", key)
	}
	return cell, nil
}

// SetFOV stores a field of view given in radians.
func (c *Config) SetFOV(fov float64) {
	c.Player.FOVDeg = math.Round(vmath.Degrees(fov)*100) / 100
}

// ParseColor parses "#RRGGBB" or "RRGGBB" into an opaque colour.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// Duration is a time.Duration written as a string such as "16ms" in JSON.
type Duration struct {
	time.Duration
}

// MarshalJSON writes the duration in time.Duration.String form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case float64:
		d.Duration = time.Duration(v)
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}
