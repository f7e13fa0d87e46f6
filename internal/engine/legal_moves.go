package engine

import (
	"fmt"
	"slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// plannedMove is a validated move waiting to be applied.
type plannedMove struct {
	piece   chess.Piece
	from    chess.Square
	to      chess.Square
	special Special

	// captured is the piece removed by the move, if any. For en passant
	// it stands beside `from`, not on `to`.
	captured *chess.Piece
}

// validateMove checks a move for the side to move in pos, given that
// side's current check status. It never modifies pos.
func validateMove(pos *Position, check CheckStatus, from, to chess.Square) (plannedMove, error) {
	if !from.Valid() || !to.Valid() {
		return plannedMove{}, fmt.Errorf("%s-%s: %w", from, to, errors.ErrOutOfBounds)
	}
	piece, ok := pos.Board.PieceAt(from)
	if !ok {
		return plannedMove{}, errors.ErrEmptyOrigin
	}
	if piece.Colour != pos.Turn {
		return plannedMove{}, fmt.Errorf("%v piece with %v to move: %w", piece.Colour, pos.Turn, errors.ErrWrongTurn)
	}

	r := IsLegal(pos, piece, to, ForMove)
	if r.Verdict != Legal {
		return plannedMove{}, r.Reason
	}

	mv := plannedMove{piece: piece, from: from, to: to, special: r.Special}
	victimSq := to
	if r.Special == EnPassant {
		victimSq = epVictimSquare(from, to)
	}
	if occ, ok := pos.Board.PieceAt(victimSq); ok {
		mv.captured = &occ
	}

	if piece.Kind != chess.King {
		if err := restrictToKingSafety(pos, check, mv); err != nil {
			return plannedMove{}, err
		}
	}
	return mv, nil
}

// restrictToKingSafety applies the check and pin restrictions to a
// non-king move.
func restrictToKingSafety(pos *Position, check CheckStatus, mv plannedMove) error {
	if check.Double() {
		return errors.Wrap(errors.ErrWouldExposeOwnKing, "double check")
	}

	if line, pinned := PinLine(pos, mv.piece); pinned && !slices.Contains(line, mv.to) {
		return errors.Wrapf(errors.ErrWouldExposeOwnKing, "%v on %s is pinned", mv.piece.Kind, mv.from)
	}

	if check.InCheck() {
		checker := check.Checkers[0]
		resolves := mv.to == checker.Square || slices.Contains(check.Interpose, mv.to)
		if mv.special == EnPassant && mv.captured != nil && mv.captured.ID == checker.ID {
			resolves = true
		}
		if !resolves {
			return errors.Wrapf(errors.ErrWouldExposeOwnKing, "check from %v on %s not met", checker.Kind, checker.Square)
		}
	}

	// En passant empties two squares on one rank, which the pin scan
	// above cannot see.
	if mv.special == EnPassant {
		victim := mv.captured.Square
		sim, err := simulate(pos, mv.piece, mv.to, &victim)
		if err != nil {
			return err
		}
		king, _ := sim.Board.King(mv.piece.Colour)
		if IsSquareAttacked(sim, king.Square, mv.piece.Colour.Opposite()) {
			return errors.Wrap(errors.ErrWouldExposeOwnKing, "en passant opens a line to the king")
		}
	}
	return nil
}

// hasLegalMove reports whether the side to move has any legal move. In
// check it only tries king moves and, for a single checker, moves that
// capture or block the checker.
func hasLegalMove(pos *Position, check CheckStatus) bool {
	king, ok := pos.Board.King(pos.Turn)
	if !ok {
		return false
	}
	for _, off := range kingOffsets {
		to := king.Square.Offset(off[0], off[1])
		if !to.Valid() {
			continue
		}
		if _, err := validateMove(pos, check, king.Square, to); err == nil {
			return true
		}
	}
	if check.Double() {
		return false
	}

	var targets []chess.Square
	if check.InCheck() {
		checker := check.Checkers[0]
		targets = append(slices.Clone(check.Interpose), checker.Square)
		if checker.Kind == chess.Pawn && pos.EnPassant {
			targets = append(targets, pos.EPSquare)
		}
	} else {
		targets = allSquares()
	}

	for _, p := range pos.Board.PiecesOf(pos.Turn) {
		if p.Kind == chess.King && check.InCheck() {
			continue
		}
		for _, to := range targets {
			if _, err := validateMove(pos, check, p.Square, to); err == nil {
				return true
			}
		}
	}
	return false
}

// legalDestinations lists every square the piece on from may move to.
func legalDestinations(pos *Position, check CheckStatus, from chess.Square) []chess.Square {
	var out []chess.Square
	for _, to := range allSquares() {
		if _, err := validateMove(pos, check, from, to); err == nil {
			out = append(out, to)
		}
	}
	return out
}

// allSquares returns the 64 squares in rank then file order.
func allSquares() []chess.Square {
	squares := make([]chess.Square, 0, chess.BoardSize*chess.BoardSize)
	for rank := 1; rank <= chess.BoardSize; rank++ {
		for file := 1; file <= chess.BoardSize; file++ {
			squares = append(squares, chess.Sq(rank, file))
		}
	}
	return squares
}
