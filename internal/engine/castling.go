package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// castleRuling handles a king stepping two files along its home rank. Any
// other king move is NotApplicable and falls through to the ordinary rule.
func castleRuling(pos *Position, king chess.Piece, to chess.Square) Ruling {
	home := chess.Sq(chess.HomeRank(king.Colour), chess.KingFile)
	if king.Square != home || to.Rank != home.Rank || abs(to.File-home.File) != 2 {
		return notApplicable()
	}

	flank := Kingside
	special := CastleKingside
	if to.File < home.File {
		flank = Queenside
		special = CastleQueenside
	}

	if !pos.Castling.Allows(king.Colour, flank) {
		return illegal(errors.Wrapf(errors.ErrCastlingPrecondition, "%v %s: king or rook has moved", king.Colour, flank))
	}
	rookFrom, _ := castleRookSquares(king.Colour, flank)
	if !holds(pos.Board, rookFrom, king.Colour, chess.Rook) {
		return illegal(errors.Wrapf(errors.ErrCastlingPrecondition, "%v %s: no rook on %s", king.Colour, flank, rookFrom))
	}
	if !isPathClear(pos.Board, home, rookFrom) {
		return illegal(errors.Wrapf(errors.ErrCastlingPrecondition, "%v %s: path to rook blocked", king.Colour, flank))
	}

	enemy := king.Colour.Opposite()
	for _, sq := range []chess.Square{home, home.Offset(0, flank.kingStep()), to} {
		if IsSquareAttacked(pos, sq, enemy) {
			return illegal(errors.Wrapf(errors.ErrCastlingPrecondition, "%v %s: %s is attacked", king.Colour, flank, sq))
		}
	}
	return legal(special)
}

// castleRookSquares returns where the flank's rook starts and where it
// lands beside the castled king.
func castleRookSquares(colour chess.Colour, flank Flank) (from, to chess.Square) {
	rank := chess.HomeRank(colour)
	return chess.Sq(rank, flank.rookFile()), chess.Sq(rank, chess.KingFile+flank.kingStep())
}

// flankOf maps a castling move to its flank.
func flankOf(s Special) Flank {
	if s == CastleQueenside {
		return Queenside
	}
	return Kingside
}
