package chess

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Square is a (rank, file) coordinate, each in 1..8.
type Square struct {
	Rank int
	File int
}

// Sq builds a square from rank and file.
func Sq(rank, file int) Square {
	return Square{Rank: rank, File: file}
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.Rank >= 1 && s.Rank <= BoardSize && s.File >= 1 && s.File <= BoardSize
}

// Offset returns the square dr ranks and df files away. The result may be
// off the board.
func (s Square) Offset(dr, df int) Square {
	return Square{Rank: s.Rank + dr, File: s.File + df}
}

// String renders the square as rank digit followed by file digit.
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Rank, s.File)
	}
	return fmt.Sprintf("%d%d", s.Rank, s.File)
}

// Coordinate renders the square in coordinate notation, e.g. "e2". Rank 8
// of the engine is rank 1 of the coordinate board.
func (s Square) Coordinate() string {
	if !s.Valid() {
		return s.String()
	}
	return fmt.Sprintf("%c%d", 'a'+s.File-1, BoardSize+1-s.Rank)
}

// ParseSquare parses the two-digit rank-file form produced by String.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, fmt.Errorf("square %q: want two digits: %w", text, errors.ErrOutOfBounds)
	}
	sq := Square{Rank: int(text[0]) - '0', File: int(text[1]) - '0'}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("square %q: %w", text, errors.ErrOutOfBounds)
	}
	return sq, nil
}

// index maps a valid square to its slot in the occupancy array.
func (s Square) index() int {
	return (s.Rank-1)*BoardSize + (s.File - 1)
}
