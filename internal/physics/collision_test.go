package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mazerunner/internal/vmath"
	"mazerunner/internal/world"
)

func TestCollidesMatchesCells(t *testing.T) {
	g := world.MustParse("+-+-+\n|   |\n+ + +\n|\n")
	c := Caster{BlockSize: 10}

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(row); col++ {
			cell, _ := g.At(col, row)
			// Sample a few points strictly inside the cell.
			for _, off := range []vmath.Vec2{{X: 0.5, Y: 0.5}, {X: 5, Y: 5}, {X: 9.5, Y: 9.5}, {X: 0.1, Y: 9.9}} {
				pos := vmath.Vec2{X: float64(col)*10 + off.X, Y: float64(row)*10 + off.Y}
				assert.Equal(t, cell.IsWall(), c.Collides(g, pos), "cell (%d,%d) at %v", col, row, pos)
			}
		}
	}
}

func TestCollidesOutsideIsPermissive(t *testing.T) {
	g := world.MustParse("+-+\n| |\n+-+")

	for _, pos := range []vmath.Vec2{
		{X: -1, Y: 5},
		{X: 5, Y: -1},
		{X: -20, Y: -20},
		{X: 30, Y: 5},
		{X: 5, Y: 30},
		{X: 1000, Y: 1000},
	} {
		assert.False(t, CheckCollision(g, pos, 10), "pos %v", pos)
	}
}

func TestCollidesRaggedRow(t *testing.T) {
	// Row 3 holds a single wall; anything to its right is outside.
	g := world.MustParse("+-+-+\n|   |\n+ + +\n|\n")

	assert.True(t, CheckCollision(g, vmath.Vec2{X: 5, Y: 35}, 10))
	assert.False(t, CheckCollision(g, vmath.Vec2{X: 25, Y: 35}, 10))
}

func TestCollisionAgreesWithCast(t *testing.T) {
	g := world.MustParse(corridor)
	c := NewCaster(10)

	hit := c.Cast(g, vmath.Vec2{X: 15, Y: 15}, 0, nil)

	assert.True(t, c.Collides(g, hit.Point))
	before := vmath.Vec2{X: hit.Point.X - c.StepSize, Y: hit.Point.Y}
	assert.False(t, c.Collides(g, before))
}
