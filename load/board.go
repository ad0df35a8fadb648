// Package load reads boards and dictionaries from their text formats.
package load

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"row-major.net/boggle/board"

	"github.com/golang/glog"
)

// Tokens splits board text on whitespace.  Each token must be a single
// letter or "qu", which is stored as board.QuTile.  Other tokens are logged
// and dropped.
func Tokens(contents string) []rune {
	tiles := []rune{}
	for _, word := range strings.Fields(strings.ToLower(contents)) {
		if utf8.RuneCountInString(word) == 1 {
			r, _ := utf8.DecodeRuneInString(word)
			tiles = append(tiles, r)
			continue
		}
		if word == "qu" {
			tiles = append(tiles, board.QuTile)
			continue
		}
		glog.Warningf("Invalid tile in board: %q", word)
	}
	return tiles
}

// NearestSquare returns the edge length of the square board whose tile
// count is closest to n.  Ties go to the larger board.
func NearestSquare(n int) int {
	s := 0
	for (s+1)*(s+1) <= n {
		s++
	}
	if n-s*s < (s+1)*(s+1)-n {
		return s
	}
	return s + 1
}

// Board reads a board from r.
func Board(r io.Reader) (board.Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return board.Grid{}, NewError(KindIO, "while reading board", err)
	}

	tiles := Tokens(string(data))

	g, err := board.New(tiles)
	if err != nil {
		s := NearestSquare(len(tiles))
		glog.Warningf("Board size: %d, likely wanted size: %dx%d", len(tiles), s, s)
		return board.Grid{}, NewError(
			KindInvalidBoard,
			fmt.Sprintf("board has %d tiles, which is not a perfect square; nearest valid board is %dx%d (%d tiles)", len(tiles), s, s, s*s),
			nil,
		)
	}

	return g, nil
}

// BoardFromFile reads the board stored at path.
func BoardFromFile(path string) (board.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return board.Grid{}, NewError(KindIO, fmt.Sprintf("while opening board %q", path), err)
	}
	defer f.Close()

	return Board(f)
}
