package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// epCaptureRank is the rank a colour's pawn must stand on to capture en
// passant.
func epCaptureRank(colour chess.Colour) int {
	enemy := colour.Opposite()
	return chess.PawnStartRank(enemy) + 2*chess.Forward(enemy)
}

// epVictimSquare is where the pawn taken by an en passant capture stands.
func epVictimSquare(from, to chess.Square) chess.Square {
	return chess.Sq(from.Rank, to.File)
}

func pawnRuling(pos *Position, pawn chess.Piece, to chess.Square, intent Intent) Ruling {
	from := pawn.Square
	fwd := chess.Forward(pawn.Colour)
	dr := to.Rank - from.Rank
	df := to.File - from.File

	if intent == ForCheckTest {
		if dr == fwd && abs(df) == 1 {
			return legal(Ordinary)
		}
		return notApplicable()
	}

	arrival := Ordinary
	if to.Rank == chess.PromotionRank(pawn.Colour) {
		arrival = Promotion
	}

	switch {
	case df == 0 && dr == fwd:
		if !pos.Board.IsEmpty(to) {
			return illegal(fmt.Errorf("pawn advance to %s: %w", to, errors.ErrPathObstructed))
		}
		return legal(arrival)

	case df == 0 && dr == 2*fwd:
		if from.Rank != chess.PawnStartRank(pawn.Colour) {
			return illegal(fmt.Errorf("pawn on %s has left its start rank: %w", from, errors.ErrShapeInvalid))
		}
		if !pos.Board.IsEmpty(from.Offset(fwd, 0)) || !pos.Board.IsEmpty(to) {
			return illegal(fmt.Errorf("pawn double advance to %s: %w", to, errors.ErrPathObstructed))
		}
		return legal(DoubleAdvance)

	case abs(df) == 1 && dr == fwd:
		if !pos.Board.IsEmpty(to) {
			return legal(arrival)
		}
		victim, ok := pos.Board.PieceAt(epVictimSquare(from, to))
		adjacentPawn := ok && victim.Kind == chess.Pawn && victim.Colour != pawn.Colour
		if pos.EnPassant && to == pos.EPSquare && adjacentPawn {
			return legal(EnPassant)
		}
		if adjacentPawn && from.Rank == epCaptureRank(pawn.Colour) {
			return illegal(fmt.Errorf("pawn on %s: %w", victim.Square, errors.ErrEnPassantWindowExpired))
		}
		return illegal(fmt.Errorf("pawn to empty %s: %w", to, errors.ErrShapeInvalid))
	}
	return notApplicable()
}
