// Package chess provides core chess types and the board occupancy map.
//
// Squares use the engine's own orientation: rank 8 is White's home rank and
// rank 1 is Black's. Files run 1..8 and keep the usual queen/king layout, so
// both kings start on file 5.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Kind represents a chess piece type.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// IsSliding reports whether the kind moves along open lines.
func (k Kind) IsSliding() bool {
	return k == Rook || k == Bishop || k == Queen
}

// IsPromotion reports whether a pawn may promote to the kind.
func (k Kind) IsPromotion() bool {
	return k == Queen || k == Rook || k == Bishop || k == Knight
}

// KindFromLetter maps an upper or lower case piece letter to its kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoKind
}

// Board dimensions and the fixed files used by castling.
const (
	BoardSize = 8

	KingFile          = 5
	KingsideRookFile  = 8
	QueensideRookFile = 1
)

// HomeRank returns the back rank a colour starts on.
func HomeRank(colour Colour) int {
	if colour == White {
		return 8
	}
	return 1
}

// PawnStartRank returns the rank a colour's pawns start on.
func PawnStartRank(colour Colour) int {
	if colour == White {
		return 7
	}
	return 2
}

// PromotionRank returns the far back rank for a colour's pawns.
func PromotionRank(colour Colour) int {
	return HomeRank(colour.Opposite())
}

// Forward returns the rank step of a colour's pawn advance:
// -1 for White, +1 for Black.
func Forward(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}

// PieceID identifies a piece for the lifetime of a board. Zero is never a
// valid ID.
type PieceID int

// Piece is a coloured piece standing on a square.
type Piece struct {
	ID     PieceID
	Colour Colour
	Kind   Kind
	Square Square
}

// Placement is the read-only view of one occupied square.
type Placement struct {
	Square Square
	Colour Colour
	Kind   Kind
}
