// Package board models the square letter grid the solver walks.
package board

import (
	"fmt"
	"strings"
	"unicode"
)

// QuTile is the rune stored for a "qu" tile.
const QuTile = 'q'

// Grid is a square board stored row-major.
type Grid struct {
	Tiles []rune
	Size  int
}

// New wraps tiles in a Grid, checking that they fill a square.
func New(tiles []rune) (Grid, error) {
	size := 0
	for size*size < len(tiles) {
		size++
	}
	if size*size != len(tiles) {
		return Grid{}, fmt.Errorf("%d tiles do not form a square board", len(tiles))
	}
	return Grid{Tiles: tiles, Size: size}, nil
}

// Index converts a row and column to a position in Tiles.
func (g Grid) Index(row, col int) int {
	return row*g.Size + col
}

// Coords converts a position in Tiles to its row and column.
func (g Grid) Coords(i int) (row, col int) {
	return i / g.Size, i % g.Size
}

func (g Grid) InBounds(row, col int) bool {
	return 0 <= row && row < g.Size && 0 <= col && col < g.Size
}

func (g Grid) At(i int) rune {
	return g.Tiles[i]
}

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors calls f with the position of every tile adjacent to i,
// diagonals included.  Directions that leave the board are skipped one at a
// time; the rest are still visited.
func (g Grid) Neighbors(i int, f func(j int)) {
	r, c := g.Coords(i)
	for _, d := range directions {
		nr, nc := r+d[0], c+d[1]
		if !g.InBounds(nr, nc) {
			continue
		}
		f(g.Index(nr, nc))
	}
}

// ExpandQu spells out every 'q' in a collected path as "qu".
func ExpandQu(s string) string {
	return strings.ReplaceAll(s, string(QuTile), "qu")
}

func (g Grid) DisplayString() string {
	b := strings.Builder{}

	b.WriteRune('┌')
	for c := 0; c < g.Size; c++ {
		b.WriteString("───")
	}
	b.WriteRune('┐')
	b.WriteRune('\n')

	for r := 0; r < g.Size; r++ {
		b.WriteRune('│')
		for c := 0; c < g.Size; c++ {
			t := g.Tiles[g.Index(r, c)]
			if t == QuTile {
				b.WriteString(" Qu")
			} else {
				b.WriteString(fmt.Sprintf(" %c ", unicode.ToUpper(t)))
			}
		}
		b.WriteRune('│')
		b.WriteRune('\n')
	}

	b.WriteRune('└')
	for c := 0; c < g.Size; c++ {
		b.WriteString("───")
	}
	b.WriteRune('┘')
	b.WriteRune('\n')

	return b.String()
}
