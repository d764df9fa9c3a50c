package config

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazerunner/internal/render"
	"mazerunner/internal/vmath"
	"mazerunner/internal/world"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 16*time.Millisecond, cfg.Window.FrameDelay.Duration)
	assert.Equal(t, 100.0, cfg.Maze.BlockSize)
	assert.Equal(t, color.RGBA{R: 0x33, G: 0x33, B: 0x55, A: 0xFF}, cfg.Background())

	opts := cfg.RenderOptions()
	assert.Equal(t, render.DefaultOptions(), opts)

	s := cfg.PlayerSettings()
	assert.InDelta(t, math.Pi/35, s.RotationSpeed, 1e-12)
	assert.Equal(t, 5.0, s.MoveSpeed)

	c := cfg.Caster()
	assert.Equal(t, 100.0, c.BlockSize)
	assert.Equal(t, 5.0, c.StepSize)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "game.json", `{
  "window": {"frame_delay": "33ms"},
  "maze": {"block_size": 64},
  "render": {"fisheye_correction": true, "texture_mapping": "wall", "workers": 4},
  "player": {"fov_deg": 90},
  "assets": {"textures": {"+": "corner.png", "|": "side.png"}}
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 33*time.Millisecond, cfg.Window.FrameDelay.Duration)
	assert.Equal(t, 1300, cfg.Window.Width, "omitted fields keep defaults")
	assert.Equal(t, 64.0, cfg.Caster().BlockSize)

	opts := cfg.RenderOptions()
	assert.True(t, opts.FisheyeCorrection)
	assert.Equal(t, render.MapWallSurface, opts.Mapping)
	assert.Equal(t, 4, opts.Workers)

	assert.InDelta(t, math.Pi/2, cfg.StartPose(nil).FOV, 1e-12)
	assert.Equal(t, map[world.Cell]string{
		world.WallCorner:   "corner.png",
		world.WallVertical: "side.png",
	}, cfg.TexturePaths())
}

func TestLoadRejectsBadFiles(t *testing.T) {
	_, err := Load(writeConfig(t, "game.yaml", "{}"))
	assert.ErrorContains(t, err, ".json extension")

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "broken.json", "{"))
	assert.ErrorContains(t, err, "parse config JSON")

	_, err = Load(writeConfig(t, "big.json", `{"maze": {"path": "`+strings.Repeat("a", maxFileSize)+`"}}`))
	assert.ErrorContains(t, err, "too large")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadOrDefault(writeConfig(t, "bad.json", `{"maze": {"block_size": -1}}`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"block size", func(c *Config) { c.Maze.BlockSize = 0 }, "block_size"},
		{"step size", func(c *Config) { c.Raycast.StepSize = -5 }, "step_size"},
		{"max distance", func(c *Config) { c.Raycast.MaxDistance = 0 }, "max_distance"},
		{"window", func(c *Config) { c.Window.Height = 0 }, "window size"},
		{"fov", func(c *Config) { c.Player.FOVDeg = 180 }, "fov_deg"},
		{"mapping", func(c *Config) { c.Render.TextureMapping = "floor" }, "texture mapping"},
		{"background", func(c *Config) { c.Render.Background = "#12" }, "background"},
		{"texture key", func(c *Config) { c.Assets.Textures = map[string]string{"x": "a.png"} }, `texture key "x"`},
		{"empty texture key", func(c *Config) { c.Assets.Textures = map[string]string{" ": "a.png"} }, "wall marker"},
		{"volume", func(c *Config) { c.Assets.MusicVolume = 2 }, "music_volume"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestStartPose(t *testing.T) {
	g := world.MustParse("+---+\n| p |\n+---+")
	cfg := Default()
	cfg.Maze.BlockSize = 10

	pose := cfg.StartPose(g)
	assert.Equal(t, vmath.Vec2{X: 150, Y: 150}, pose.Pos, "spawn marker ignored unless enabled")
	assert.InDelta(t, math.Pi/3, pose.Angle, 1e-12)

	cfg.Player.UseSpawn = true
	assert.Equal(t, vmath.Vec2{X: 25, Y: 15}, cfg.StartPose(g).Pos)

	noSpawn := world.MustParse("+-+\n| |\n+-+")
	assert.Equal(t, vmath.Vec2{X: 150, Y: 150}, cfg.StartPose(noSpawn).Pos)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Render.FisheyeCorrection = true
	cfg.SetFOV(math.Pi / 2)
	path := filepath.Join(t.TempDir(), "saved.json")

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
	assert.Equal(t, 90.0, loaded.Player.FOVDeg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"frame_delay": "16ms"`)

	assert.Error(t, cfg.Save(filepath.Join(t.TempDir(), "saved.txt")))
}

func TestDurationAcceptsNanoseconds(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`1000000`)))
	assert.Equal(t, time.Millisecond, d.Duration)

	assert.Error(t, d.UnmarshalJSON([]byte(`"soon"`)))
	assert.Error(t, d.UnmarshalJSON([]byte(`true`)))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#C86450")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xC8, G: 0x64, B: 0x50, A: 0xFF}, c)

	c, err = ParseColor("ffffff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, c)

	_, err = ParseColor("#GGGGGG")
	assert.Error(t, err)
}

func TestStockConfigAndMaze(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultConfigPath))
	require.NoError(t, err)

	g, err := world.LoadMaze(filepath.Join("..", "..", cfg.Maze.Path))
	require.NoError(t, err)

	pose := cfg.StartPose(g)
	assert.False(t, cfg.Caster().Collides(g, pose.Pos), "stock start must be open floor")
	assert.Equal(t, vmath.Vec2{X: 150, Y: 150}, pose.Pos)
}
