// Package errors provides sentinel errors and error types for the rules engine.
// Every move rejection reason is a sentinel so callers can inspect a
// rejection with errors.Is() after it has been wrapped with move context.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Rejection reasons for a move attempt. A rejected move leaves the game
// untouched; none of these are fatal.
var (
	// ErrOutOfBounds indicates a square outside the 8x8 board.
	ErrOutOfBounds = errors.New("square out of bounds")

	// ErrEmptyOrigin indicates there is no piece on the origin square.
	ErrEmptyOrigin = errors.New("no piece on origin square")

	// ErrWrongTurn indicates the piece does not belong to the side to move.
	ErrWrongTurn = errors.New("not this side's turn")

	// ErrFriendlyOccupied indicates the destination holds a piece of the mover's colour.
	ErrFriendlyOccupied = errors.New("destination occupied by friendly piece")

	// ErrShapeInvalid indicates the geometry fails the piece's movement pattern.
	ErrShapeInvalid = errors.New("invalid movement for piece")

	// ErrPathObstructed indicates a piece stands between origin and destination.
	ErrPathObstructed = errors.New("path obstructed")

	// ErrWouldExposeOwnKing indicates the move leaves or places the mover's king in check.
	ErrWouldExposeOwnKing = errors.New("move would leave own king in check")

	// ErrCastlingPrecondition indicates rights were lost or the path is blocked or attacked.
	ErrCastlingPrecondition = errors.New("castling precondition unmet")

	// ErrEnPassantWindowExpired indicates an en passant capture one move too late.
	ErrEnPassantWindowExpired = errors.New("en passant window expired")

	// ErrKingCapture indicates an attempt to capture a king.
	ErrKingCapture = errors.New("kings cannot be captured")

	// ErrGameAlreadyOver indicates the game has reached a terminal outcome.
	ErrGameAlreadyOver = errors.New("game already over")

	// ErrPromotionPending indicates a move is waiting for its promotion choice.
	ErrPromotionPending = errors.New("promotion choice pending")

	// ErrNoPendingPromotion indicates a promotion choice with no move waiting for one.
	ErrNoPendingPromotion = errors.New("no promotion pending")

	// ErrInvalidPromotionKind indicates a promotion choice other than queen, rook, bishop or knight.
	ErrInvalidPromotionKind = errors.New("invalid promotion kind")
)

// Board integrity errors. These signal misuse of the board API rather than
// an illegal move.
var (
	// ErrSquareOccupied indicates a placement or move onto an occupied square.
	ErrSquareOccupied = errors.New("square occupied")

	// ErrNoSuchPiece indicates an unknown piece ID.
	ErrNoSuchPiece = errors.New("no such piece")

	// ErrKingRemoval indicates an attempt to remove a king from the board.
	ErrKingRemoval = errors.New("kings are never removed")

	// ErrInvalidPosition indicates a starting position no game can be played from.
	ErrInvalidPosition = errors.New("invalid position")
)

// Harness errors.
var (
	// ErrParseFailure indicates a malformed move script.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps a rejection reason with the context of the attempted move.
// It supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err    error  // The underlying rejection reason
	GameID string // Game identity (if known)
	PlyNum int    // 1-based ply the move would have been (0 if not applicable)
	From   string // Origin square text
	To     string // Destination square text
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.GameID != "" {
		parts = append(parts, "game "+e.GameID)
	}
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("move %s-%s", e.From, e.To))
	}

	context := strings.Join(parts, ", ")
	switch {
	case context == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a move script error with file location context.
type ParseError struct {
	Err      error  // The underlying error
	File     string // Source file name
	Line     int    // Line number (1-based)
	Column   int    // Column number (1-based)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.File != "" || e.Line > 0 {
		loc := e.File
		if e.Line > 0 {
			loc += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				loc += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, strings.TrimPrefix(loc, ":"))
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}
	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
