package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyMaze is returned for input with no maze rows.
var ErrEmptyMaze = errors.New("maze has no rows")

// Parse reads maze text: one row per line, one cell per rune.
// Trailing blank lines are dropped; blank lines inside the maze stay as
// zero-length rows.
func Parse(r io.Reader) (*Grid, error) {
	g := &Grid{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		row := make([]Cell, 0, len(text))
		col := 0
		for _, ch := range text {
			if ch == SpawnMarker {
				if g.hasSpawn {
					return nil, fmt.Errorf("line %d col %d: second spawn marker (first at line %d col %d)",
						line, col+1, g.spawnRow+1, g.spawnCol+1)
				}
				g.spawnCol, g.spawnRow, g.hasSpawn = col, len(g.rows), true
				row = append(row, Empty)
				col++
				continue
			}
			cell, err := ParseCell(ch)
			if err != nil {
				return nil, fmt.Errorf("line %d col %d: %w", line, col+1, err)
			}
			row = append(row, cell)
			col++
		}
		g.rows = append(g.rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read maze: %w", err)
	}

	for len(g.rows) > 0 && len(g.rows[len(g.rows)-1]) == 0 {
		g.rows = g.rows[:len(g.rows)-1]
	}
	if len(g.rows) == 0 {
		return nil, ErrEmptyMaze
	}
	return g, nil
}

// ParseString parses maze text held in memory.
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}

// MustParse is ParseString for fixed mazes known to be valid.
func MustParse(s string) *Grid {
	g, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return g
}

// LoadMaze reads and parses a maze file.
func LoadMaze(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maze: %w", err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse maze %s: %w", path, err)
	}
	return g, nil
}
