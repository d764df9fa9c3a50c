package world

import (
	"math"
	"strings"

	"mazerunner/internal/vmath"
)

// Grid is the maze: rows of cells, possibly of different lengths.
// A Grid is never mutated after construction; reloading a maze builds a new one.
type Grid struct {
	rows [][]Cell

	spawnCol, spawnRow int
	hasSpawn           bool
}

// NewGrid copies rows into a new Grid.
func NewGrid(rows [][]Cell) *Grid {
	g := &Grid{rows: make([][]Cell, len(rows))}
	for i, row := range rows {
		g.rows[i] = append([]Cell(nil), row...)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return len(g.rows)
}

// Cols returns the length of the given row, 0 when the row does not exist.
func (g *Grid) Cols(row int) int {
	if row < 0 || row >= len(g.rows) {
		return 0
	}
	return len(g.rows[row])
}

// At returns the cell at (col, row). ok is false outside the maze.
func (g *Grid) At(col, row int) (Cell, bool) {
	if row < 0 || row >= len(g.rows) {
		return Empty, false
	}
	if col < 0 || col >= len(g.rows[row]) {
		return Empty, false
	}
	return g.rows[row][col], true
}

// Locate converts a coordinate-space position into cell indices. It does
// not depend on the grid's contents; it hangs off Grid so callers resolve
// positions and cells through the same value. Negative coordinates give
// negative indices, which At treats as outside.
func (g *Grid) Locate(pos vmath.Vec2, blockSize float64) (col, row int) {
	return int(math.Floor(pos.X / blockSize)), int(math.Floor(pos.Y / blockSize))
}

// Lookup returns the cell under pos. Ray marching and collision both go
// through here so they always agree on where the walls are.
func (g *Grid) Lookup(pos vmath.Vec2, blockSize float64) (Cell, bool) {
	col, row := g.Locate(pos, blockSize)
	return g.At(col, row)
}

// Spawn returns the cell marked with the spawn marker, if any.
func (g *Grid) Spawn() (col, row int, ok bool) {
	return g.spawnCol, g.spawnRow, g.hasSpawn
}

// SpawnPoint returns the centre of the spawn cell in coordinate space.
func (g *Grid) SpawnPoint(blockSize float64) (vmath.Vec2, bool) {
	if !g.hasSpawn {
		return vmath.Vec2{}, false
	}
	return vmath.Vec2{
		X: (float64(g.spawnCol) + 0.5) * blockSize,
		Y: (float64(g.spawnRow) + 0.5) * blockSize,
	}, true
}

// String renders the grid back into maze text.
func (g *Grid) String() string {
	var b strings.Builder
	for r, row := range g.rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, cell := range row {
			if g.hasSpawn && r == g.spawnRow && c == g.spawnCol {
				b.WriteRune(SpawnMarker)
				continue
			}
			b.WriteRune(cell.Rune())
		}
	}
	return b.String()
}
