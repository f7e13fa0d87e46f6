package output

import (
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Diagram draws a position as text, rank 1 at the top and rank 8 (White's
// home rank) at the bottom. White pieces are upper case, Black lower case
// and empty squares are dots.
func Diagram(placements []chess.Placement) string {
	var grid [chess.BoardSize][chess.BoardSize]byte
	for r := range grid {
		for f := range grid[r] {
			grid[r][f] = '.'
		}
	}
	for _, p := range placements {
		if !p.Square.Valid() {
			continue
		}
		letter := p.Kind.Letter()
		if p.Colour == chess.Black {
			letter += 'a' - 'A'
		}
		grid[p.Square.Rank-1][p.Square.File-1] = letter
	}

	var b strings.Builder
	b.WriteString("   1 2 3 4 5 6 7 8\n")
	for r := range grid {
		b.WriteByte(byte('1' + r))
		b.WriteString(" ")
		for f := range grid[r] {
			b.WriteByte(' ')
			b.WriteByte(grid[r][f])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
