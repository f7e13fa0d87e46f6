package engine

import (
	"slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// AttackersOf returns the pieces of colour `by` that attack sq, in piece ID
// order.
func AttackersOf(pos *Position, sq chess.Square, by chess.Colour) []chess.Piece {
	var attackers []chess.Piece
	for _, p := range pos.Board.PiecesOf(by) {
		if p.Square == sq {
			continue
		}
		if IsLegal(pos, p, sq, ForCheckTest).Verdict == Legal {
			attackers = append(attackers, p)
		}
	}
	return attackers
}

// IsSquareAttacked reports whether any piece of colour `by` attacks sq.
func IsSquareAttacked(pos *Position, sq chess.Square, by chess.Colour) bool {
	for p := range pos.Board.AllPieces() {
		if p.Colour != by || p.Square == sq {
			continue
		}
		if IsLegal(pos, p, sq, ForCheckTest).Verdict == Legal {
			return true
		}
	}
	return false
}

// InterposingSquares returns the squares between a sliding checker and the
// king it attacks, ordered from the checker. Knight and pawn checks cannot
// be blocked, so the result is empty for them.
func InterposingSquares(checker chess.Piece, kingSq chess.Square) []chess.Square {
	if !checker.Kind.IsSliding() {
		return nil
	}
	return between(checker.Square, kingSq)
}

// CheckStatus lists the pieces giving check and, for a single sliding
// checker, the squares a defender may block on.
type CheckStatus struct {
	Checkers  []chess.Piece
	Interpose []chess.Square
}

// InCheck reports whether at least one piece gives check.
func (c CheckStatus) InCheck() bool {
	return len(c.Checkers) > 0
}

// Double reports a double check, where only a king move can help.
func (c CheckStatus) Double() bool {
	return len(c.Checkers) > 1
}

func (c CheckStatus) clone() CheckStatus {
	return CheckStatus{
		Checkers:  slices.Clone(c.Checkers),
		Interpose: slices.Clone(c.Interpose),
	}
}

// DetectCheck computes the check status of colour's king.
func DetectCheck(pos *Position, colour chess.Colour) CheckStatus {
	king, ok := pos.Board.King(colour)
	if !ok {
		return CheckStatus{}
	}
	status := CheckStatus{Checkers: AttackersOf(pos, king.Square, colour.Opposite())}
	if len(status.Checkers) == 1 {
		status.Interpose = InterposingSquares(status.Checkers[0], king.Square)
	}
	return status
}

// PinLine reports whether piece is pinned against its own king. A piece is
// pinned when it is the only piece between its king and an enemy slider on
// a shared line. The returned line runs from next to the king up to and
// including the pinning piece; those are the only squares the pinned piece
// may move to.
func PinLine(pos *Position, piece chess.Piece) ([]chess.Square, bool) {
	if piece.Kind == chess.King {
		return nil, false
	}
	king, ok := pos.Board.King(piece.Colour)
	if !ok {
		return nil, false
	}
	dr, df, ok := direction(king.Square, piece.Square)
	if !ok || !isPathClear(pos.Board, king.Square, piece.Square) {
		return nil, false
	}

	line := between(king.Square, piece.Square)
	line = append(line, piece.Square)
	for sq := piece.Square.Offset(dr, df); sq.Valid(); sq = sq.Offset(dr, df) {
		line = append(line, sq)
		occ, ok := pos.Board.PieceAt(sq)
		if !ok {
			continue
		}
		if occ.Colour != piece.Colour && slidesAlong(occ.Kind, isStraight(dr, df)) {
			return line, true
		}
		return nil, false
	}
	return nil, false
}
