package physics

import (
	"math"

	"mazerunner/internal/vmath"
	"mazerunner/internal/world"
)

const (
	// DefaultStepSize is the march increment in coordinate units. Smaller
	// steps resolve corners better at a linear cost per ray.
	DefaultStepSize = 5.0
	// DefaultMaxDistance bounds a single march.
	DefaultMaxDistance = 20000.0
)

// Impact says how a march ended.
type Impact uint8

const (
	// ImpactNone: MaxDistance was reached without leaving the maze or hitting a wall.
	ImpactNone Impact = iota
	// ImpactWall: the ray stopped inside a wall cell.
	ImpactWall
	// ImpactOutside: the ray left the maze bounds.
	ImpactOutside
)

// String returns a lower-case name for the impact kind.
func (i Impact) String() string {
	switch i {
	case ImpactWall:
		return "wall"
	case ImpactOutside:
		return "outside"
	}
	return "none"
}

// Face is the side of the struck cell the ray came through.
type Face uint8

const (
	FaceUnknown Face = iota
	// FaceVertical is a wall face running along the Y axis (entered across a column boundary).
	FaceVertical
	// FaceHorizontal is a wall face running along the X axis (entered across a row boundary).
	FaceHorizontal
)

// Intersect is the result of a single ray march.
type Intersect struct {
	Distance float64
	Cell     world.Cell
	Impact   Impact
	Point    vmath.Vec2
	Col, Row int
	Face     Face
}

// Hit reports whether the ray stopped on a wall.
func (i Intersect) Hit() bool {
	return i.Impact == ImpactWall
}

// WallOffset returns how far along the struck face the hit landed, in [0, blockSize).
func (i Intersect) WallOffset(blockSize float64) float64 {
	v := i.Point.X
	if i.Face == FaceVertical {
		v = i.Point.Y
	}
	off := math.Mod(v, blockSize)
	if off < 0 {
		off += blockSize
	}
	return off
}

// Plotter receives every empty point a ray passes through.
type Plotter interface {
	Plot(x, y int)
}

// PlotFunc adapts a function to Plotter.
type PlotFunc func(x, y int)

func (f PlotFunc) Plot(x, y int) { f(x, y) }

// Caster marches rays and tests collisions over a Grid. The same BlockSize
// must be used for both or movement and rendering disagree about walls.
type Caster struct {
	BlockSize   float64
	StepSize    float64
	MaxDistance float64
}

// NewCaster returns a Caster with the default step and distance bound.
func NewCaster(blockSize float64) Caster {
	return Caster{
		BlockSize:   blockSize,
		StepSize:    DefaultStepSize,
		MaxDistance: DefaultMaxDistance,
	}
}

func (c Caster) step() float64 {
	if c.StepSize > 0 {
		return c.StepSize
	}
	return DefaultStepSize
}

func (c Caster) maxDistance() float64 {
	if c.MaxDistance > 0 {
		return c.MaxDistance
	}
	return DefaultMaxDistance
}

// Cast marches from origin along angle until the point leaves the maze or
// enters a wall cell. If trace is non-nil every empty point visited is plotted.
func (c Caster) Cast(g *world.Grid, origin vmath.Vec2, angle float64, trace Plotter) Intersect {
	dir := vmath.FromAngle(angle)
	step := c.step()
	limit := c.maxDistance()

	prevCol, prevRow := g.Locate(origin, c.BlockSize)
	d := 0.0
	for {
		p := origin.Add(dir.Scale(d))
		col, row := g.Locate(p, c.BlockSize)

		cell, inside := g.At(col, row)
		if !inside {
			return Intersect{Distance: d, Cell: world.Empty, Impact: ImpactOutside, Point: p, Col: col, Row: row}
		}
		if cell.IsWall() {
			return Intersect{
				Distance: d,
				Cell:     cell,
				Impact:   ImpactWall,
				Point:    p,
				Col:      col,
				Row:      row,
				Face:     faceBetween(prevCol, prevRow, col, row, dir),
			}
		}

		if trace != nil {
			trace.Plot(int(math.Floor(p.X)), int(math.Floor(p.Y)))
		}

		prevCol, prevRow = col, row
		d += step
		if d > limit {
			return Intersect{Distance: d, Cell: world.Empty, Impact: ImpactNone, Point: origin.Add(dir.Scale(d)), Col: col, Row: row}
		}
	}
}

// faceBetween guesses the face crossed going from the last empty cell into
// the struck one. A diagonal jump past a corner picks the axis the ray
// travels along more steeply.
func faceBetween(prevCol, prevRow, col, row int, dir vmath.Vec2) Face {
	switch {
	case prevCol != col && prevRow == row:
		return FaceVertical
	case prevRow != row && prevCol == col:
		return FaceHorizontal
	case prevCol != col && prevRow != row:
		if math.Abs(dir.X) >= math.Abs(dir.Y) {
			return FaceVertical
		}
		return FaceHorizontal
	}
	return FaceUnknown
}

// CastRay marches a ray with the default step size and distance bound.
func CastRay(g *world.Grid, origin vmath.Vec2, angle, blockSize float64, trace Plotter) Intersect {
	return NewCaster(blockSize).Cast(g, origin, angle, trace)
}
