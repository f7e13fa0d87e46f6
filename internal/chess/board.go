package chess

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Board is the set of pieces on the board and the occupancy of each square.
// It has no knowledge of chess rules; it only keeps the invariant that a
// square holds at most one piece and that kings are never removed.
type Board struct {
	// occupant[i] is the ID on the square with index i, zero when empty.
	occupant [BoardSize * BoardSize]PieceID
	pieces   map[PieceID]Piece
	nextID   PieceID
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{
		pieces: make(map[PieceID]Piece),
		nextID: 1,
	}
}

// NewInitialBoard creates a board with the standard 32-piece setup.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition clears the board and places the standard setup.
// White occupies ranks 8 and 7, Black ranks 1 and 2.
func (b *Board) SetupInitialPosition() {
	b.occupant = [BoardSize * BoardSize]PieceID{}
	b.pieces = make(map[PieceID]Piece)
	b.nextID = 1

	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for _, colour := range []Colour{White, Black} {
		for file := 1; file <= BoardSize; file++ {
			b.mustPlace(colour, backRank[file-1], Sq(HomeRank(colour), file))
			b.mustPlace(colour, Pawn, Sq(PawnStartRank(colour), file))
		}
	}
}

func (b *Board) mustPlace(colour Colour, kind Kind, sq Square) {
	if _, err := b.Place(colour, kind, sq); err != nil {
		panic(err)
	}
}

// Place puts a new piece on an empty square and returns its ID.
func (b *Board) Place(colour Colour, kind Kind, sq Square) (PieceID, error) {
	if !sq.Valid() {
		return 0, fmt.Errorf("place on %s: %w", sq, errors.ErrOutOfBounds)
	}
	if kind < Pawn || kind > King {
		return 0, fmt.Errorf("place %v: %w", kind, errors.ErrNoSuchPiece)
	}
	if b.occupant[sq.index()] != 0 {
		return 0, fmt.Errorf("place on %s: %w", sq, errors.ErrSquareOccupied)
	}
	id := b.nextID
	b.nextID++
	b.pieces[id] = Piece{ID: id, Colour: colour, Kind: kind, Square: sq}
	b.occupant[sq.index()] = id
	return id, nil
}

// PieceAt returns the piece on a square, if any.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	id := b.occupant[sq.index()]
	if id == 0 {
		return Piece{}, false
	}
	return b.pieces[id], true
}

// IsEmpty reports whether a valid square holds no piece. Off-board squares
// are not empty.
func (b *Board) IsEmpty(sq Square) bool {
	return sq.Valid() && b.occupant[sq.index()] == 0
}

// Piece returns the piece with the given ID.
func (b *Board) Piece(id PieceID) (Piece, bool) {
	p, ok := b.pieces[id]
	return p, ok
}

// AllPieces yields every piece on the board in ID order.
func (b *Board) AllPieces() iter.Seq[Piece] {
	return func(yield func(Piece) bool) {
		for _, id := range slices.Sorted(maps.Keys(b.pieces)) {
			if !yield(b.pieces[id]) {
				return
			}
		}
	}
}

// PiecesOf returns the pieces of one colour in ID order.
func (b *Board) PiecesOf(colour Colour) []Piece {
	var out []Piece
	for p := range b.AllPieces() {
		if p.Colour == colour {
			out = append(out, p)
		}
	}
	return out
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	return len(b.pieces)
}

// King returns the king of the given colour.
func (b *Board) King(colour Colour) (Piece, bool) {
	for _, p := range b.pieces {
		if p.Kind == King && p.Colour == colour {
			return p, true
		}
	}
	return Piece{}, false
}

// Apply moves a piece to an empty square. Captures are made by removing
// the captured piece first.
func (b *Board) Apply(id PieceID, to Square) error {
	p, ok := b.pieces[id]
	if !ok {
		return fmt.Errorf("apply piece %d: %w", id, errors.ErrNoSuchPiece)
	}
	if !to.Valid() {
		return fmt.Errorf("apply to %s: %w", to, errors.ErrOutOfBounds)
	}
	if occ := b.occupant[to.index()]; occ != 0 && occ != id {
		return fmt.Errorf("apply to %s: %w", to, errors.ErrSquareOccupied)
	}
	b.occupant[p.Square.index()] = 0
	p.Square = to
	b.occupant[to.index()] = id
	b.pieces[id] = p
	return nil
}

// Remove takes a piece off the board. Kings cannot be removed.
func (b *Board) Remove(id PieceID) error {
	p, ok := b.pieces[id]
	if !ok {
		return fmt.Errorf("remove piece %d: %w", id, errors.ErrNoSuchPiece)
	}
	if p.Kind == King {
		return fmt.Errorf("remove %v king on %s: %w", p.Colour, p.Square, errors.ErrKingRemoval)
	}
	b.occupant[p.Square.index()] = 0
	delete(b.pieces, id)
	return nil
}

// Promote changes the kind of a piece in place.
func (b *Board) Promote(id PieceID, kind Kind) error {
	p, ok := b.pieces[id]
	if !ok {
		return fmt.Errorf("promote piece %d: %w", id, errors.ErrNoSuchPiece)
	}
	if !kind.IsPromotion() {
		return fmt.Errorf("promote to %v: %w", kind, errors.ErrInvalidPromotionKind)
	}
	p.Kind = kind
	b.pieces[id] = p
	return nil
}

// Snapshot returns every occupied square in rank then file order.
func (b *Board) Snapshot() []Placement {
	out := make([]Placement, 0, len(b.pieces))
	for rank := 1; rank <= BoardSize; rank++ {
		for file := 1; file <= BoardSize; file++ {
			if p, ok := b.PieceAt(Sq(rank, file)); ok {
				out = append(out, Placement{Square: p.Square, Colour: p.Colour, Kind: p.Kind})
			}
		}
	}
	return out
}

// Copy creates a deep copy of the board. Piece IDs are preserved.
func (b *Board) Copy() *Board {
	return &Board{
		occupant: b.occupant,
		pieces:   maps.Clone(b.pieces),
		nextID:   b.nextID,
	}
}
