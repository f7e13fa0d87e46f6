// Package engine provides chess move validation, attack analysis and the
// turn engine that drives a game from one position to the next.
package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Flank selects the rook a king castles with.
type Flank int

const (
	Kingside Flank = iota
	Queenside
)

// String returns the string representation of a flank.
func (f Flank) String() string {
	if f == Kingside {
		return "kingside"
	}
	return "queenside"
}

// rookFile returns the file the flank's rook starts on.
func (f Flank) rookFile() int {
	if f == Kingside {
		return chess.KingsideRookFile
	}
	return chess.QueensideRookFile
}

// kingStep returns the file direction the king travels when castling.
func (f Flank) kingStep() int {
	if f == Kingside {
		return 1
	}
	return -1
}

// CastlingRights records which kings and corner rooks have moved. A set
// flag permanently forbids castling on the affected flank.
type CastlingRights struct {
	WhiteKingMoved          bool
	BlackKingMoved          bool
	WhiteKingsideRookMoved  bool
	WhiteQueensideRookMoved bool
	BlackKingsideRookMoved  bool
	BlackQueensideRookMoved bool
}

// Allows reports whether neither the king nor the flank's rook has moved.
func (c CastlingRights) Allows(colour chess.Colour, flank Flank) bool {
	if colour == chess.White {
		if c.WhiteKingMoved {
			return false
		}
		if flank == Kingside {
			return !c.WhiteKingsideRookMoved
		}
		return !c.WhiteQueensideRookMoved
	}
	if c.BlackKingMoved {
		return false
	}
	if flank == Kingside {
		return !c.BlackKingsideRookMoved
	}
	return !c.BlackQueensideRookMoved
}

func (c *CastlingRights) markKingMoved(colour chess.Colour) {
	if colour == chess.White {
		c.WhiteKingMoved = true
	} else {
		c.BlackKingMoved = true
	}
}

func (c *CastlingRights) markRookMoved(colour chess.Colour, flank Flank) {
	switch {
	case colour == chess.White && flank == Kingside:
		c.WhiteKingsideRookMoved = true
	case colour == chess.White:
		c.WhiteQueensideRookMoved = true
	case flank == Kingside:
		c.BlackKingsideRookMoved = true
	default:
		c.BlackQueensideRookMoved = true
	}
}

// updateForSquare clears rights tied to a corner square when a piece leaves
// it or is captured on it.
func (c *CastlingRights) updateForSquare(sq chess.Square) {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if sq.Rank != chess.HomeRank(colour) {
			continue
		}
		switch sq.File {
		case chess.KingsideRookFile:
			c.markRookMoved(colour, Kingside)
		case chess.QueensideRookFile:
			c.markRookMoved(colour, Queenside)
		}
	}
}

// RightsFromBoard derives castling rights from piece placement: a king or
// corner rook away from its starting square counts as moved.
func RightsFromBoard(b *chess.Board) CastlingRights {
	var c CastlingRights
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		home := chess.HomeRank(colour)
		if !holds(b, chess.Sq(home, chess.KingFile), colour, chess.King) {
			c.markKingMoved(colour)
		}
		if !holds(b, chess.Sq(home, chess.KingsideRookFile), colour, chess.Rook) {
			c.markRookMoved(colour, Kingside)
		}
		if !holds(b, chess.Sq(home, chess.QueensideRookFile), colour, chess.Rook) {
			c.markRookMoved(colour, Queenside)
		}
	}
	return c
}

func holds(b *chess.Board, sq chess.Square, colour chess.Colour, kind chess.Kind) bool {
	p, ok := b.PieceAt(sq)
	return ok && p.Colour == colour && p.Kind == kind
}

// Position is everything move legality depends on: the board, the side to
// move, castling rights and the en passant target. Rule functions treat it
// as read-only.
type Position struct {
	Board    *chess.Board
	Turn     chess.Colour
	Castling CastlingRights

	// Is an en passant capture possible? If so then EPSquare is the
	// square a capturing pawn lands on.
	EnPassant bool
	EPSquare  chess.Square
}

// withBoard returns a position sharing everything but the board.
func (p *Position) withBoard(b *chess.Board) *Position {
	cp := *p
	cp.Board = b
	return &cp
}
