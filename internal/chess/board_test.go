package chess

import (
	"errors"
	"testing"

	rerrors "github.com/lgbarn/chess-rules-go/internal/errors"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	if got := b.Count(); got != 0 {
		t.Errorf("Count() = %d; want 0", got)
	}
	for rank := 1; rank <= BoardSize; rank++ {
		for file := 1; file <= BoardSize; file++ {
			if !b.IsEmpty(Sq(rank, file)) {
				t.Errorf("IsEmpty(%s) = false; want true", Sq(rank, file))
			}
		}
	}
	if b.IsEmpty(Sq(0, 4)) {
		t.Error("IsEmpty on an off-board square = true; want false")
	}
}

func TestSetupInitialPosition(t *testing.T) {
	b := NewInitialBoard()

	tests := []struct {
		name   string
		sq     Square
		colour Colour
		kind   Kind
	}{
		{"white rook file 1", Sq(8, 1), White, Rook},
		{"white knight file 2", Sq(8, 2), White, Knight},
		{"white bishop file 3", Sq(8, 3), White, Bishop},
		{"white queen file 4", Sq(8, 4), White, Queen},
		{"white king file 5", Sq(8, 5), White, King},
		{"white rook file 8", Sq(8, 8), White, Rook},
		{"white pawn file 1", Sq(7, 1), White, Pawn},
		{"white pawn file 5", Sq(7, 5), White, Pawn},
		{"black pawn file 5", Sq(2, 5), Black, Pawn},
		{"black pawn file 8", Sq(2, 8), Black, Pawn},
		{"black rook file 1", Sq(1, 1), Black, Rook},
		{"black queen file 4", Sq(1, 4), Black, Queen},
		{"black king file 5", Sq(1, 5), Black, King},
		{"black knight file 7", Sq(1, 7), Black, Knight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := b.PieceAt(tt.sq)
			if !ok {
				t.Fatalf("PieceAt(%s) = empty; want %v %v", tt.sq, tt.colour, tt.kind)
			}
			if p.Colour != tt.colour || p.Kind != tt.kind {
				t.Errorf("PieceAt(%s) = %v %v; want %v %v", tt.sq, p.Colour, p.Kind, tt.colour, tt.kind)
			}
			if p.Square != tt.sq {
				t.Errorf("piece square = %s; want %s", p.Square, tt.sq)
			}
		})
	}

	t.Run("counts", func(t *testing.T) {
		if got := b.Count(); got != 32 {
			t.Errorf("Count() = %d; want 32", got)
		}
		if got := len(b.PiecesOf(White)); got != 16 {
			t.Errorf("len(PiecesOf(White)) = %d; want 16", got)
		}
		if got := len(b.PiecesOf(Black)); got != 16 {
			t.Errorf("len(PiecesOf(Black)) = %d; want 16", got)
		}
	})

	t.Run("middle ranks empty", func(t *testing.T) {
		for rank := 3; rank <= 6; rank++ {
			for file := 1; file <= BoardSize; file++ {
				if !b.IsEmpty(Sq(rank, file)) {
					t.Errorf("IsEmpty(%s) = false; want true", Sq(rank, file))
				}
			}
		}
	})
}

func TestBoardPlace(t *testing.T) {
	b := NewBoard()
	if _, err := b.Place(White, King, Sq(8, 5)); err != nil {
		t.Fatalf("Place() error: %v", err)
	}

	tests := []struct {
		name    string
		kind    Kind
		sq      Square
		wantErr error
	}{
		{"occupied", Queen, Sq(8, 5), rerrors.ErrSquareOccupied},
		{"off board", Queen, Sq(9, 1), rerrors.ErrOutOfBounds},
		{"no kind", NoKind, Sq(4, 4), rerrors.ErrNoSuchPiece},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Place(White, tt.kind, tt.sq)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Place() error = %v; want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoardApplyRemovePromote(t *testing.T) {
	b := NewBoard()
	pawn, _ := b.Place(White, Pawn, Sq(2, 3))
	knight, _ := b.Place(Black, Knight, Sq(1, 2))
	king, _ := b.Place(Black, King, Sq(1, 5))

	t.Run("apply onto occupied square fails", func(t *testing.T) {
		if err := b.Apply(pawn, Sq(1, 2)); !errors.Is(err, rerrors.ErrSquareOccupied) {
			t.Errorf("Apply() error = %v; want ErrSquareOccupied", err)
		}
	})

	t.Run("capture by remove then apply", func(t *testing.T) {
		if err := b.Remove(knight); err != nil {
			t.Fatalf("Remove() error: %v", err)
		}
		if err := b.Apply(pawn, Sq(1, 2)); err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
		p, ok := b.PieceAt(Sq(1, 2))
		if !ok || p.ID != pawn {
			t.Errorf("PieceAt(12) = %+v; want pawn %d", p, pawn)
		}
		if !b.IsEmpty(Sq(2, 3)) {
			t.Error("origin square still occupied after Apply")
		}
		if got := b.Count(); got != 2 {
			t.Errorf("Count() = %d; want 2", got)
		}
	})

	t.Run("promote", func(t *testing.T) {
		if err := b.Promote(pawn, Knight); err != nil {
			t.Fatalf("Promote() error: %v", err)
		}
		if p, _ := b.Piece(pawn); p.Kind != Knight {
			t.Errorf("kind after Promote = %v; want Knight", p.Kind)
		}
		if err := b.Promote(pawn, King); !errors.Is(err, rerrors.ErrInvalidPromotionKind) {
			t.Errorf("Promote(King) error = %v; want ErrInvalidPromotionKind", err)
		}
	})

	t.Run("king is never removed", func(t *testing.T) {
		if err := b.Remove(king); !errors.Is(err, rerrors.ErrKingRemoval) {
			t.Errorf("Remove(king) error = %v; want ErrKingRemoval", err)
		}
		if _, ok := b.King(Black); !ok {
			t.Error("King(Black) missing after refused removal")
		}
	})
}

func TestBoardCopyIsIndependent(t *testing.T) {
	b := NewInitialBoard()
	c := b.Copy()

	p, _ := c.PieceAt(Sq(7, 5))
	if err := c.Apply(p.ID, Sq(5, 5)); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	if b.IsEmpty(Sq(7, 5)) {
		t.Error("original board changed after mutating the copy")
	}
	if c.IsEmpty(Sq(5, 5)) {
		t.Error("copy not updated")
	}
}

func TestSnapshotOrder(t *testing.T) {
	b := NewBoard()
	_, _ = b.Place(White, King, Sq(8, 5))
	_, _ = b.Place(Black, King, Sq(1, 5))
	_, _ = b.Place(Black, Rook, Sq(1, 1))

	got := b.Snapshot()
	want := []Placement{
		{Sq(1, 1), Black, Rook},
		{Sq(1, 5), Black, King},
		{Sq(8, 5), White, King},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Snapshot()) = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Snapshot()[%d] = %+v; want %+v", i, got[i], want[i])
		}
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in      string
		want    Square
		wantErr bool
	}{
		{"75", Sq(7, 5), false},
		{"11", Sq(1, 1), false},
		{"88", Sq(8, 8), false},
		{"09", Square{}, true},
		{"e4", Square{}, true},
		{"7", Square{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSquare(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSquare(%q) error = %v; wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSquare(%q) = %v; want %v", tt.in, got, tt.want)
			}
			if err == nil && got.String() != tt.in {
				t.Errorf("String() = %q; want %q", got.String(), tt.in)
			}
		})
	}
}

func TestSquareCoordinate(t *testing.T) {
	tests := []struct {
		sq   Square
		want string
	}{
		{Sq(7, 5), "e2"},
		{Sq(8, 1), "a1"},
		{Sq(1, 8), "h8"},
		{Sq(5, 4), "d4"},
		{Sq(9, 1), "(9,1)"},
	}
	for _, tt := range tests {
		if got := tt.sq.Coordinate(); got != tt.want {
			t.Errorf("%v.Coordinate() = %q; want %q", tt.sq, got, tt.want)
		}
	}
}

func TestColourAndKindHelpers(t *testing.T) {
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Error("Opposite() does not swap colours")
	}
	if PromotionRank(White) != 1 || PromotionRank(Black) != 8 {
		t.Errorf("PromotionRank = %d/%d; want 1/8", PromotionRank(White), PromotionRank(Black))
	}
	if Forward(White) != -1 || Forward(Black) != 1 {
		t.Error("Forward() has wrong direction")
	}
	for _, k := range []Kind{Queen, Rook, Bishop, Knight} {
		if !k.IsPromotion() {
			t.Errorf("%v.IsPromotion() = false; want true", k)
		}
	}
	if King.IsPromotion() || Pawn.IsPromotion() {
		t.Error("King or Pawn accepted as promotion kind")
	}
	if KindFromLetter('n') != Knight || KindFromLetter('x') != NoKind {
		t.Error("KindFromLetter mismatch")
	}
}
