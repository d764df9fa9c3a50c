package world

import "fmt"

// Cell is one square of the maze. Everything other than Empty is a wall.
type Cell uint8

const (
	Empty Cell = iota
	WallCorner
	WallHorizontal
	WallVertical
)

// SpawnMarker marks the player start in maze text. The cell itself is Empty.
const SpawnMarker = 'p'

var cellRunes = map[Cell]rune{
	Empty:          ' ',
	WallCorner:     '+',
	WallHorizontal: '-',
	WallVertical:   '|',
}

// Walls lists every wall kind in a stable order.
var Walls = []Cell{WallCorner, WallHorizontal, WallVertical}

// ParseCell maps a maze text rune to its cell. Space and tab are empty.
func ParseCell(r rune) (Cell, error) {
	switch r {
	case ' ', '\t':
		return Empty, nil
	case '+':
		return WallCorner, nil
	case '-':
		return WallHorizontal, nil
	case '|':
		return WallVertical, nil
	}
	return Empty, fmt.Errorf("unknown cell marker %q", r)
}

// IsWall reports whether c blocks rays and movement.
func (c Cell) IsWall() bool {
	return c != Empty
}

// Rune returns the maze text representation of the cell.
func (c Cell) Rune() rune {
	if r, ok := cellRunes[c]; ok {
		return r
	}
	return '?'
}

// String names the cell kind for logs and test failures.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "Empty"
	case WallCorner:
		return "WallCorner"
	case WallHorizontal:
		return "WallHorizontal"
	case WallVertical:
		return "WallVertical"
	}
	return fmt.Sprintf("Cell(%d)", uint8(c))
}
