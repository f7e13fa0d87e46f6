package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Intent selects how a rule is evaluated.
type Intent int

const (
	// ForMove evaluates a real move attempt: occupancy of the destination
	// matters and kings must end up safe.
	ForMove Intent = iota
	// ForCheckTest asks only whether the piece attacks the destination. It
	// ignores what stands there, never considers castling or en passant and
	// has no side effects.
	ForCheckTest
)

// Verdict is the outcome of evaluating one piece rule.
type Verdict int

const (
	// NotApplicable means the rule does not cover this geometry and the
	// next rule should be tried.
	NotApplicable Verdict = iota
	Legal
	Illegal
)

// String returns the string representation of a verdict.
func (v Verdict) String() string {
	switch v {
	case Legal:
		return "Legal"
	case Illegal:
		return "Illegal"
	}
	return "NotApplicable"
}

// Special flags a legal move that needs more than a plain relocation.
type Special int

const (
	Ordinary Special = iota
	DoubleAdvance
	EnPassant
	Promotion
	CastleKingside
	CastleQueenside
)

// IsCastle reports whether the move is a castle on either flank.
func (s Special) IsCastle() bool {
	return s == CastleKingside || s == CastleQueenside
}

// Ruling is the tagged result of a rule evaluation. Reason is set only for
// Illegal rulings.
type Ruling struct {
	Verdict Verdict
	Reason  error
	Special Special
}

func legal(special Special) Ruling {
	return Ruling{Verdict: Legal, Special: special}
}

func illegal(reason error) Ruling {
	return Ruling{Verdict: Illegal, Reason: reason}
}

func notApplicable() Ruling {
	return Ruling{Verdict: NotApplicable}
}

// IsLegal evaluates whether piece may reach `to` under the rules of its
// kind. With ForMove the side-to-move, pin and check restrictions of the
// turn engine are not applied here; king safety for the king's own moves is.
// The result is never NotApplicable.
func IsLegal(pos *Position, piece chess.Piece, to chess.Square, intent Intent) Ruling {
	from := piece.Square
	if !from.Valid() || !to.Valid() {
		return illegal(fmt.Errorf("%s to %s: %w", from, to, errors.ErrOutOfBounds))
	}
	if from == to {
		return illegal(errors.ErrShapeInvalid)
	}

	if intent == ForMove {
		if occ, ok := pos.Board.PieceAt(to); ok {
			if occ.Colour == piece.Colour {
				return illegal(errors.ErrFriendlyOccupied)
			}
			if occ.Kind == chess.King {
				return illegal(errors.ErrKingCapture)
			}
		}
	}

	var r Ruling
	switch piece.Kind {
	case chess.Pawn:
		r = pawnRuling(pos, piece, to, intent)
	case chess.Knight:
		r = knightRuling(piece, to)
	case chess.Bishop, chess.Rook, chess.Queen:
		r = slidingRuling(pos, piece, to)
	case chess.King:
		r = kingRuling(pos, piece, to, intent)
	default:
		r = illegal(fmt.Errorf("piece %d has kind %v: %w", piece.ID, piece.Kind, errors.ErrNoSuchPiece))
	}

	if r.Verdict == NotApplicable {
		return illegal(fmt.Errorf("%v from %s to %s: %w", piece.Kind, from, to, errors.ErrShapeInvalid))
	}
	return r
}

func knightRuling(piece chess.Piece, to chess.Square) Ruling {
	dr := abs(to.Rank - piece.Square.Rank)
	df := abs(to.File - piece.Square.File)
	if (dr == 1 && df == 2) || (dr == 2 && df == 1) {
		return legal(Ordinary)
	}
	return notApplicable()
}

// slidingRuling covers rooks, bishops and queens. Any piece between the
// endpoints blocks, whatever its colour.
func slidingRuling(pos *Position, piece chess.Piece, to chess.Square) Ruling {
	dr, df, ok := direction(piece.Square, to)
	if !ok || !slidesAlong(piece.Kind, isStraight(dr, df)) {
		return notApplicable()
	}
	if !isPathClear(pos.Board, piece.Square, to) {
		return illegal(fmt.Errorf("%v from %s to %s: %w", piece.Kind, piece.Square, to, errors.ErrPathObstructed))
	}
	return legal(Ordinary)
}

func kingRuling(pos *Position, king chess.Piece, to chess.Square, intent Intent) Ruling {
	if intent == ForMove {
		if r := castleRuling(pos, king, to); r.Verdict != NotApplicable {
			return r
		}
	}

	if abs(to.Rank-king.Square.Rank) > 1 || abs(to.File-king.Square.File) > 1 {
		return notApplicable()
	}
	if intent == ForCheckTest {
		return legal(Ordinary)
	}

	sim, err := simulate(pos, king, to, nil)
	if err != nil {
		return illegal(err)
	}
	if IsSquareAttacked(sim, to, king.Colour.Opposite()) {
		return illegal(fmt.Errorf("king to %s: %w", to, errors.ErrWouldExposeOwnKing))
	}
	return legal(Ordinary)
}

// simulate returns a position in which piece has moved to `to`, taking
// whatever stood there and, for en passant, the pawn on victim. The moving
// piece leaves its origin, so lines through it open up.
func simulate(pos *Position, piece chess.Piece, to chess.Square, victim *chess.Square) (*Position, error) {
	board := pos.Board.Copy()
	if occ, ok := board.PieceAt(to); ok {
		if err := board.Remove(occ.ID); err != nil {
			return nil, err
		}
	}
	if victim != nil {
		if occ, ok := board.PieceAt(*victim); ok {
			if err := board.Remove(occ.ID); err != nil {
				return nil, err
			}
		}
	}
	if err := board.Apply(piece.ID, to); err != nil {
		return nil, err
	}
	return pos.withBoard(board), nil
}
