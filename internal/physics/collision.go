package physics

import (
	"mazerunner/internal/vmath"
	"mazerunner/internal/world"
)

// Collides reports whether pos lies inside a wall cell. Positions outside the
// maze never collide.
func (c Caster) Collides(g *world.Grid, pos vmath.Vec2) bool {
	cell, inside := g.Lookup(pos, c.BlockSize)
	return inside && cell.IsWall()
}

// CheckCollision is Collides for a one-off block size.
func CheckCollision(g *world.Grid, pos vmath.Vec2, blockSize float64) bool {
	return Caster{BlockSize: blockSize}.Collides(g, pos)
}
