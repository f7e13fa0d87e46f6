package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// MustSquare parses a two-digit rank-file square such as "75".
func MustSquare(t *testing.T, text string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(text)
	if err != nil {
		t.Fatalf("bad square %q: %v", text, err)
	}
	return sq
}

// Pieces builds placements from compact tokens: colour letter (W or B),
// piece letter, square. "WK85" is the White king on rank 8 file 5.
func Pieces(t *testing.T, tokens ...string) []chess.Placement {
	t.Helper()
	out := make([]chess.Placement, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) != 4 {
			t.Fatalf("bad piece token %q", tok)
		}
		colour := chess.White
		switch tok[0] {
		case 'W':
		case 'B':
			colour = chess.Black
		default:
			t.Fatalf("bad colour in piece token %q", tok)
		}
		kind := chess.KindFromLetter(tok[1])
		if kind == chess.NoKind {
			t.Fatalf("bad kind in piece token %q", tok)
		}
		out = append(out, chess.Placement{Square: MustSquare(t, tok[2:]), Colour: colour, Kind: kind})
	}
	return out
}

// NewBoard places the given pieces on an empty board.
func NewBoard(t *testing.T, placements []chess.Placement) *chess.Board {
	t.Helper()
	b := chess.NewBoard()
	for _, p := range placements {
		if _, err := b.Place(p.Colour, p.Kind, p.Square); err != nil {
			t.Fatalf("placing %v %v: %v", p.Colour, p.Kind, err)
		}
	}
	return b
}

// NewGame starts a game from the given pieces with turn to move.
func NewGame(t *testing.T, turn chess.Colour, placements []chess.Placement, opts ...engine.Option) *engine.Game {
	t.Helper()
	g, err := engine.NewGameFromBoard(NewBoard(t, placements), turn, opts...)
	if err != nil {
		t.Fatalf("NewGameFromBoard() error: %v", err)
	}
	return g
}

// TryMove submits a move written as "75-55" and returns the result,
// accepted or not.
func TryMove(t *testing.T, g *engine.Game, move string) engine.MoveResult {
	t.Helper()
	from, to, ok := strings.Cut(move, "-")
	if !ok {
		t.Fatalf("bad move %q", move)
	}
	return g.Move(MustSquare(t, from), MustSquare(t, to))
}

// MustMove submits a move and fails the test if it is rejected.
func MustMove(t *testing.T, g *engine.Game, move string) engine.MoveResult {
	t.Helper()
	res := TryMove(t, g, move)
	if !res.Accepted {
		t.Fatalf("move %s rejected: %v", move, res.Reason)
	}
	return res
}

// Play submits each move in order with MustMove and returns the last result.
func Play(t *testing.T, g *engine.Game, moves ...string) engine.MoveResult {
	t.Helper()
	var res engine.MoveResult
	for _, m := range moves {
		res = MustMove(t, g, m)
	}
	return res
}
