package engine

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Game is the turn engine. It owns the board and is the only writer of the
// game state: a move is validated, applied to a copy of the board and
// swapped in whole, so a rejected or failed move never leaves a trace.
//
// Game is safe for concurrent use; a clock goroutine may call
// NotifyTimeExpired while another goroutine submits moves.
type Game struct {
	mu sync.Mutex

	id      string
	pos     Position
	check   CheckStatus
	outcome Outcome
	phase   Phase
	history []Ply

	resolver       PromotionResolver
	deferPromotion bool
	pending        *plannedMove
	choosing       *plannedMove

	logFile   io.Writer
	verbosity int
}

// Option configures a Game.
type Option func(*Game)

// WithPromotionResolver installs the resolver consulted when a pawn reaches
// the far back rank.
func WithPromotionResolver(r PromotionResolver) Option {
	return func(g *Game) {
		if r != nil {
			g.resolver = r
		}
	}
}

// WithDeferredPromotion makes promoting moves stop in the
// AwaitingPromotion phase until ResolvePromotion is called.
func WithDeferredPromotion() Option {
	return func(g *Game) {
		g.deferPromotion = true
	}
}

// WithLog sets the diagnostic writer. At verbosity 2 and above every move
// attempt, clock signal and terminal transition is logged.
func WithLog(w io.Writer, verbosity int) Option {
	return func(g *Game) {
		g.logFile = w
		g.verbosity = verbosity
	}
}

// WithID overrides the generated game ID.
func WithID(id string) Option {
	return func(g *Game) {
		g.id = id
	}
}

// WithCastlingRights overrides the castling rights of a new game.
func WithCastlingRights(c CastlingRights) Option {
	return func(g *Game) {
		g.pos.Castling = c
	}
}

// WithEnPassant arms en passant onto sq for the first move.
func WithEnPassant(sq chess.Square) Option {
	return func(g *Game) {
		g.pos.EnPassant = true
		g.pos.EPSquare = sq
	}
}

// NewGame creates a game from the standard setup with White to move.
func NewGame(opts ...Option) *Game {
	g, err := NewGameFromBoard(chess.NewInitialBoard(), chess.White, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// NewGameFromBoard creates a game from an arbitrary position. The board must
// hold exactly one king per colour and the side not to move must not be in
// check. Castling rights default to those implied by the placement. The
// game takes ownership of board.
func NewGameFromBoard(board *chess.Board, turn chess.Colour, opts ...Option) (*Game, error) {
	kings := map[chess.Colour]int{}
	for p := range board.AllPieces() {
		if p.Kind == chess.King {
			kings[p.Colour]++
		}
	}
	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return nil, fmt.Errorf("%d white and %d black kings: %w", kings[chess.White], kings[chess.Black], errors.ErrInvalidPosition)
	}

	g := &Game{
		id:       uuid.NewString(),
		pos:      Position{Board: board, Turn: turn, Castling: RightsFromBoard(board)},
		resolver: DefaultResolver,
	}
	for _, opt := range opts {
		opt(g)
	}

	if DetectCheck(&g.pos, turn.Opposite()).InCheck() {
		return nil, fmt.Errorf("%v is in check with %v to move: %w", turn.Opposite(), turn, errors.ErrInvalidPosition)
	}

	g.check = DetectCheck(&g.pos, turn)
	g.settle()
	return g, nil
}

// settle runs the checkmate search for the side to move and sets the
// outcome and phase. It returns the terminal event, if any.
func (g *Game) settle() (Event, bool) {
	g.phase = PhaseCheckmateSearch
	if hasLegalMove(&g.pos, g.check) {
		g.phase = PhaseAwaitingMove
		return 0, false
	}
	g.phase = PhaseTerminal
	if g.check.InCheck() {
		g.outcome = Checkmate(g.pos.Turn)
		return EventCheckmate, true
	}
	g.outcome = Outcome{Status: OutcomeStalemate}
	return EventStalemate, true
}

// Move requests the move of the piece on from to `to` for the side to
// move. A rejected move changes nothing.
//
// The promotion resolver is consulted without holding the game lock, so it
// may query the game. Other moves are refused while it decides.
func (g *Game) Move(from, to chess.Square) MoveResult {
	g.mu.Lock()
	mv, res := g.propose(from, to)
	g.mu.Unlock()
	if mv == nil {
		return res
	}

	kind := g.resolver.RequestPromotionChoice(mv.piece.Colour, to)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.choosing != mv {
		return g.reject(from, to, errors.ErrGameAlreadyOver)
	}
	g.choosing = nil
	g.phase = PhaseAwaitingMove
	if !kind.IsPromotion() {
		return g.reject(from, to, errors.Wrapf(errors.ErrInvalidPromotionKind, "resolver chose %v", kind))
	}
	return g.commit(*mv, kind)
}

// propose validates a move with the lock held. Anything but a promotion
// handed to the resolver is settled here and returned as a result; for
// that promotion it returns the move, now reserved in g.choosing.
func (g *Game) propose(from, to chess.Square) (*plannedMove, MoveResult) {
	if g.outcome.IsTerminal() {
		return nil, g.reject(from, to, errors.ErrGameAlreadyOver)
	}
	if g.pending != nil || g.choosing != nil {
		return nil, g.reject(from, to, errors.ErrPromotionPending)
	}

	mv, err := validateMove(&g.pos, g.check, from, to)
	if err != nil {
		return nil, g.reject(from, to, err)
	}

	if mv.special != Promotion {
		return nil, g.commit(mv, chess.NoKind)
	}
	g.phase = PhaseAwaitingPromotion
	if g.deferPromotion {
		g.pending = &mv
		g.logf("%s: %v %s-%s awaits promotion choice\n", g.id, mv.piece.Colour, from, to)
		return nil, MoveResult{Accepted: true, Outcome: g.outcome, PromotionPending: true}
	}
	g.choosing = &mv
	return &mv, MoveResult{}
}

// ResolvePromotion completes a move left waiting by WithDeferredPromotion.
// An invalid kind is rejected and the move keeps waiting.
func (g *Game) ResolvePromotion(kind chess.Kind) MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.outcome.IsTerminal() {
		return g.reject(chess.Square{}, chess.Square{}, errors.ErrGameAlreadyOver)
	}
	if g.pending == nil {
		return g.reject(chess.Square{}, chess.Square{}, errors.ErrNoPendingPromotion)
	}
	mv := *g.pending
	if !kind.IsPromotion() {
		return g.reject(mv.from, mv.to, errors.Wrapf(errors.ErrInvalidPromotionKind, "%v", kind))
	}
	return g.commit(mv, kind)
}

// NotifyTimeExpired ends the game on time for colour. It reports false and
// does nothing when the game is already over.
func (g *Game) NotifyTimeExpired(colour chess.Colour) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.outcome.IsTerminal() {
		g.logf("%s: ignored time expiry for %v, game already %v\n", g.id, colour, g.outcome)
		return false
	}
	g.outcome = TimeExpired(colour)
	g.phase = PhaseTerminal
	g.pending = nil
	g.choosing = nil
	g.logf("%s: %v\n", g.id, g.outcome)
	return true
}

// commit applies a validated move. promotion is the chosen kind for a
// promoting move and NoKind otherwise.
func (g *Game) commit(mv plannedMove, promotion chess.Kind) MoveResult {
	board := g.pos.Board.Copy()
	events := []Event{EventMoved}
	captured := chess.NoKind

	if mv.captured != nil {
		if err := board.Remove(mv.captured.ID); err != nil {
			return g.reject(mv.from, mv.to, err)
		}
		captured = mv.captured.Kind
		if mv.special == EnPassant {
			events = append(events, EventEnPassantCaptured)
		} else {
			events = append(events, EventCaptured)
		}
	}
	if err := board.Apply(mv.piece.ID, mv.to); err != nil {
		return g.reject(mv.from, mv.to, err)
	}

	rights := g.pos.Castling
	if mv.special.IsCastle() {
		rookFrom, rookTo := castleRookSquares(mv.piece.Colour, flankOf(mv.special))
		rook, _ := board.PieceAt(rookFrom)
		if err := board.Apply(rook.ID, rookTo); err != nil {
			return g.reject(mv.from, mv.to, err)
		}
		rights.markRookMoved(mv.piece.Colour, flankOf(mv.special))
		events = append(events, EventCastled)
	}
	if mv.special == Promotion {
		if err := board.Promote(mv.piece.ID, promotion); err != nil {
			return g.reject(mv.from, mv.to, err)
		}
		events = append(events, EventPromoted)
	}
	if mv.piece.Kind == chess.King {
		rights.markKingMoved(mv.piece.Colour)
	}
	rights.updateForSquare(mv.from)
	rights.updateForSquare(mv.to)

	next := Position{Board: board, Turn: mv.piece.Colour.Opposite(), Castling: rights}
	if mv.special == DoubleAdvance {
		next.EnPassant = true
		next.EPSquare = mv.from.Offset(chess.Forward(mv.piece.Colour), 0)
	}

	g.pos = next
	g.pending = nil
	g.check = DetectCheck(&g.pos, g.pos.Turn)
	if g.check.InCheck() {
		events = append(events, EventChecked)
	}
	if ev, over := g.settle(); over {
		events = append(events, ev)
	}

	ply := Ply{
		Number:    len(g.history) + 1,
		Colour:    mv.piece.Colour,
		Kind:      mv.piece.Kind,
		From:      mv.from,
		To:        mv.to,
		Captured:  captured,
		Promotion: promotion,
		Events:    events,
	}
	g.history = append(g.history, ply)
	g.logf("%s: ply %d %v %v %s %v\n", g.id, ply.Number, ply.Colour, ply.Kind, ply, events)
	if g.outcome.IsTerminal() {
		g.logf("%s: %v\n", g.id, g.outcome)
	}

	return MoveResult{Accepted: true, Events: slices.Clone(events), Outcome: g.outcome}
}

func (g *Game) reject(from, to chess.Square, reason error) MoveResult {
	err := &errors.MoveError{
		Err:    reason,
		GameID: g.id,
		PlyNum: len(g.history) + 1,
	}
	if from.Valid() || to.Valid() {
		err.From, err.To = from.String(), to.String()
	}
	g.logf("%s: rejected %v\n", g.id, err)
	return MoveResult{Reason: err, Outcome: g.outcome}
}

func (g *Game) logf(format string, args ...interface{}) {
	if g.logFile == nil || g.verbosity < 2 {
		return
	}
	fmt.Fprintf(g.logFile, format, args...)
}

// ID returns the game identity.
func (g *Game) ID() string {
	return g.id
}

// Snapshot returns every occupied square in rank then file order.
func (g *Game) Snapshot() []chess.Placement {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.Board.Snapshot()
}

// PieceAt returns the piece on a square, if any.
func (g *Game) PieceAt(sq chess.Square) (chess.Piece, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.Board.PieceAt(sq)
}

// PieceCount returns the number of pieces on the board.
func (g *Game) PieceCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.Board.Count()
}

// CurrentTurn returns the side to move.
func (g *Game) CurrentTurn() chess.Colour {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.Turn
}

// Outcome returns the current outcome.
func (g *Game) Outcome() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcome
}

// Phase returns the turn engine's phase.
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// IsSquareUnderAttack reports whether any piece of colour `by` attacks sq.
func (g *Game) IsSquareUnderAttack(sq chess.Square, by chess.Colour) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !sq.Valid() {
		return false
	}
	return IsSquareAttacked(&g.pos, sq, by)
}

// CheckStatus returns the check status of the side to move.
func (g *Game) CheckStatus() CheckStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.check.clone()
}

// History returns the accepted plies in order.
func (g *Game) History() []Ply {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Ply, len(g.history))
	for i, p := range g.history {
		p.Events = slices.Clone(p.Events)
		out[i] = p
	}
	return out
}

// CastlingRights returns the current castling rights.
func (g *Game) CastlingRights() CastlingRights {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.Castling
}

// EnPassantTarget returns the square an en passant capture may land on
// this move, if any.
func (g *Game) EnPassantTarget() (chess.Square, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.EPSquare, g.pos.EnPassant
}

// PendingPromotion returns the destination of a move awaiting its
// promotion choice.
func (g *Game) PendingPromotion() (chess.Square, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return chess.Square{}, false
	}
	return g.pending.to, true
}

// LegalMoves lists the squares the side-to-move piece on from may move to.
// It is empty for an opponent's piece, an empty square or a finished game.
func (g *Game) LegalMoves(from chess.Square) []chess.Square {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.outcome.IsTerminal() || g.pending != nil {
		return nil
	}
	return legalDestinations(&g.pos, g.check, from)
}
