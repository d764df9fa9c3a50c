package render

import (
	"image/color"
	"math"

	"mazerunner/internal/physics"
	"mazerunner/internal/player"
	"mazerunner/internal/world"
)

// Minimap places and styles the top-down overlay.
type Minimap struct {
	X, Y  int
	Scale float64
	// Rays is the number of rays fanned across the field of view.
	Rays int

	PlayerColor color.RGBA
	RayColor    color.RGBA
}

// DefaultMinimap places a fifth-scale map near the top-left corner.
func DefaultMinimap() Minimap {
	return Minimap{
		X:           8,
		Y:           8,
		Scale:       0.2,
		Rays:        5,
		PlayerColor: color.RGBA{R: 0xFF, G: 0xDD, B: 0x00, A: 0xFF},
		RayColor:    color.RGBA{R: 0xFF, G: 0xDD, B: 0xDD, A: 0xFF},
	}
}

// RenderMinimap draws the maze from above with the player and a sparse ray fan.
// Walls take the top-left colour of their texture.
func (r *Renderer) RenderMinimap(fb *Framebuffer, g *world.Grid, pose player.Pose, m Minimap) {
	cell := r.Caster.BlockSize * m.Scale
	size := int(math.Ceil(cell))
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(row); col++ {
			c, _ := g.At(col, row)
			if !c.IsWall() {
				continue
			}
			x := m.X + int(float64(col)*cell)
			y := m.Y + int(float64(row)*cell)
			fb.FillRect(x, y, size, size, r.Textures.For(c).At(0, 0))
		}
	}

	trace := physics.PlotFunc(func(x, y int) {
		fb.Point(m.X+int(float64(x)*m.Scale), m.Y+int(float64(y)*m.Scale), m.RayColor)
	})
	for i := 0; i < m.Rays; i++ {
		r.Caster.Cast(g, pose.Pos, RayAngle(pose.Angle, pose.FOV, i, m.Rays), trace)
	}

	px := m.X + int(pose.Pos.X*m.Scale)
	py := m.Y + int(pose.Pos.Y*m.Scale)
	fb.FillRect(px-1, py-1, 3, 3, m.PlayerColor)
}
