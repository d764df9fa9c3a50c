package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazerunner/internal/physics"
	"mazerunner/internal/player"
	"mazerunner/internal/vmath"
	"mazerunner/internal/world"
)

// bigRoom is 11x11 cells; with block size 10 its inside spans 10..100.
const bigRoom = "" +
	"+---------+\n" +
	"|         |\n" +
	"|         |\n" +
	"|         |\n" +
	"|         |\n" +
	"|         |\n" +
	"|         |\n" +
	"|         |\n" +
	"|         |\n" +
	"|         |\n" +
	"+---------+"

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bg    = color.RGBA{R: 0x33, G: 0x33, B: 0x55, A: 255}
)

func centrePose() player.Pose {
	return player.Pose{Pos: vmath.Vec2{X: 55, Y: 55}, Angle: 0, FOV: math.Pi / 3}
}

func newFB(w, h int) *Framebuffer {
	fb := NewFramebuffer(w, h)
	fb.SetBackground(bg)
	fb.Clear()
	return fb
}

func columnPixels(fb *Framebuffer, x int) int {
	n := 0
	for y := 0; y < fb.Height; y++ {
		if fb.At(x, y) != bg {
			n++
		}
	}
	return n
}

func TestRayAngleSweep(t *testing.T) {
	fov := math.Pi / 3
	assert.InDelta(t, 1-fov/2, RayAngle(1, fov, 0, 10), 1e-12)
	assert.InDelta(t, 1.0, RayAngle(1, fov, 5, 10), 1e-12)
	assert.Less(t, RayAngle(1, fov, 9, 10), 1+fov/2)

	prev := RayAngle(0, fov, 0, 100)
	for i := 1; i < 100; i++ {
		a := RayAngle(0, fov, i, 100)
		assert.InDelta(t, fov/100, a-prev, 1e-12)
		prev = a
	}
}

func TestNearerWallsAreTaller(t *testing.T) {
	for _, d := range []float64{1, 5, 10, 50, 100, 500} {
		assert.Greater(t, StakeHeight(450, d, 80), StakeHeight(450, d*1.5, 80), "distance %v", d)
	}
	assert.InDelta(t, 450.0, StakeHeight(450, 80, 80), 1e-9)
}

func TestProjectClipsInsteadOfClamping(t *testing.T) {
	r := NewRenderer(physics.NewCaster(10), nil, DefaultOptions())

	s, ok := r.Project(80, 100)
	require.True(t, ok)
	assert.Equal(t, 25, s.Top)
	assert.Equal(t, 75, s.Bottom)
	assert.InDelta(t, 50.0, s.Height, 1e-9)

	_, ok = r.Project(10, 100)
	assert.False(t, ok, "a 400px stake does not fit in 100px")

	_, ok = r.Project(0, 100)
	assert.False(t, ok)
}

func TestRender3DDrawsCentreColumn(t *testing.T) {
	g := world.MustParse(bigRoom)
	r := NewRenderer(physics.NewCaster(10), nil, DefaultOptions())
	fb := newFB(16, 40)

	r.Render3D(fb, g, centrePose())

	assert.Equal(t, ColorVertical, fb.At(8, 20))
	assert.Equal(t, bg, fb.At(8, 0))
	assert.Equal(t, bg, fb.At(8, 39))
	for x := 0; x < fb.Width; x++ {
		assert.Positive(t, columnPixels(fb, x), "column %d", x)
	}
}

func TestRender3DSkipsClippedColumns(t *testing.T) {
	g := world.MustParse(bigRoom)
	r := NewRenderer(physics.NewCaster(10), nil, DefaultOptions())
	fb := newFB(16, 40)

	pose := centrePose()
	pose.Pos.X = 96
	r.Render3D(fb, g, pose)

	assert.Zero(t, columnPixels(fb, 8))
}

func TestRender3DSkipsNoHitRays(t *testing.T) {
	g := world.MustParse(bigRoom)
	r := NewRenderer(physics.Caster{BlockSize: 10, StepSize: 5, MaxDistance: 10}, nil, DefaultOptions())
	fb := newFB(16, 40)

	r.Render3D(fb, g, centrePose())

	for x := 0; x < fb.Width; x++ {
		assert.Zero(t, columnPixels(fb, x), "column %d", x)
	}
}

func TestRender3DOpenMazeUsesFallback(t *testing.T) {
	// The middle row has no right-hand wall, so the centre ray leaves the maze.
	g := world.MustParse("+---------+\n|          \n+---------+")
	r := NewRenderer(physics.NewCaster(10), nil, DefaultOptions())
	fb := newFB(8, 400)
	pose := player.Pose{Pos: vmath.Vec2{X: 15, Y: 15}, Angle: 0, FOV: math.Pi / 3}

	hit := r.Caster.Cast(g, pose.Pos, 0, nil)
	require.Equal(t, physics.ImpactOutside, hit.Impact)

	r.Render3D(fb, g, pose)

	assert.Equal(t, ColorFallback, fb.At(4, 200))
	assert.Positive(t, columnPixels(fb, 4))
}

func TestRender3DInsideWallDrawsNothing(t *testing.T) {
	g := world.MustParse(bigRoom)
	pose := centrePose()
	pose.Pos = vmath.Vec2{X: 5, Y: 5}

	for _, minDist := range []float64{1, 0} {
		opts := DefaultOptions()
		opts.MinDistance = minDist
		r := NewRenderer(physics.NewCaster(10), nil, opts)
		fb := newFB(16, 40)

		assert.NotPanics(t, func() { r.Render3D(fb, g, pose) }, "min distance %v", minDist)
		for x := 0; x < fb.Width; x++ {
			assert.Zero(t, columnPixels(fb, x), "min distance %v, column %d", minDist, x)
		}
	}
}

func TestScreenColumnTextureTiling(t *testing.T) {
	g := world.MustParse(bigRoom)
	tex, err := NewPixelTexture(4, 1, []color.RGBA{red, green, blue, white})
	require.NoError(t, err)
	set := DefaultTextureSet()
	set.Set(world.WallVertical, tex)
	r := NewRenderer(physics.NewCaster(10), set, DefaultOptions())
	fb := newFB(16, 40)

	r.Render3D(fb, g, centrePose())

	want := []color.RGBA{red, green, blue, white}
	for x := 0; x < fb.Width; x++ {
		assert.Equal(t, want[x%4], fb.At(x, 20), "column %d", x)
	}
}

func TestWallSurfaceTextureMapping(t *testing.T) {
	g := world.MustParse(bigRoom)
	tex, err := NewPixelTexture(4, 1, []color.RGBA{red, green, blue, white})
	require.NoError(t, err)
	set := DefaultTextureSet()
	set.Set(world.WallVertical, tex)
	opts := DefaultOptions()
	opts.Mapping = MapWallSurface
	r := NewRenderer(physics.NewCaster(10), set, opts)
	fb := newFB(16, 40)

	r.Render3D(fb, g, centrePose())

	// The centre ray strikes y=55, halfway along the wall cell.
	assert.Equal(t, blue, fb.At(8, 20))
}

func TestTextureRowsSpanTheStake(t *testing.T) {
	g := world.MustParse(bigRoom)
	tex, err := NewPixelTexture(1, 2, []color.RGBA{red, blue})
	require.NoError(t, err)
	set := DefaultTextureSet()
	set.Set(world.WallVertical, tex)
	r := NewRenderer(physics.NewCaster(10), set, DefaultOptions())
	fb := newFB(16, 40)

	r.Render3D(fb, g, centrePose())

	hit := r.Caster.Cast(g, centrePose().Pos, 0, nil)
	s, ok := r.Project(hit.Distance, fb.Height)
	require.True(t, ok)
	assert.Equal(t, red, fb.At(8, s.Top))
	assert.Equal(t, blue, fb.At(8, s.Bottom-1))
}

func TestFisheyeCorrectionStretchesEdges(t *testing.T) {
	g := world.MustParse(bigRoom)
	plain := NewRenderer(physics.NewCaster(10), nil, DefaultOptions())
	opts := DefaultOptions()
	opts.FisheyeCorrection = true
	corrected := NewRenderer(physics.NewCaster(10), nil, opts)

	a, b := newFB(16, 40), newFB(16, 40)
	plain.Render3D(a, g, centrePose())
	corrected.Render3D(b, g, centrePose())

	assert.Greater(t, columnPixels(b, 0), columnPixels(a, 0))
	assert.Equal(t, columnPixels(a, 8), columnPixels(b, 8))
}

func TestParallelRenderMatchesSerial(t *testing.T) {
	g := world.MustParse(bigRoom)
	serial := NewRenderer(physics.NewCaster(10), nil, DefaultOptions())
	opts := DefaultOptions()
	opts.Workers = 4
	parallel := NewRenderer(physics.NewCaster(10), nil, opts)

	pose := player.Pose{Pos: vmath.Vec2{X: 31, Y: 74}, Angle: 0.7, FOV: math.Pi / 2}
	a, b := newFB(123, 60), newFB(123, 60)
	serial.Render3D(a, g, pose)
	parallel.Render3D(b, g, pose)

	assert.Equal(t, a.Pixels, b.Pixels)
}

func TestTextureMappingParse(t *testing.T) {
	m, err := ParseTextureMapping("wall")
	require.NoError(t, err)
	assert.Equal(t, MapWallSurface, m)
	assert.Equal(t, "wall", m.String())

	m, err = ParseTextureMapping("")
	require.NoError(t, err)
	assert.Equal(t, MapScreenColumn, m)

	_, err = ParseTextureMapping("floor")
	assert.Error(t, err)
}
