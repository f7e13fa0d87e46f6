// Package replay drives an engine.Game through a parsed move script and
// records what happened.
package replay

import (
	"fmt"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/script"
)

// Options controls a replay.
type Options struct {
	// PromotionDefault is used when a promoting move names no kind.
	PromotionDefault chess.Kind

	// StopOnReject ends the replay at the first rejected instruction.
	StopOnReject bool

	LogFile   io.Writer
	Verbosity int
}

// DefaultOptions returns options that promote to a queen and keep going
// after rejections.
func DefaultOptions() Options {
	return Options{PromotionDefault: chess.Queen}
}

// Rejection records an instruction the game refused.
type Rejection struct {
	Line        int
	Column      int
	Instruction string
	Reason      error
}

// Report is the result of replaying one script.
type Report struct {
	Name       string
	GameID     string
	Plies      []engine.Ply
	Rejections []Rejection
	Outcome    engine.Outcome
	Final      []chess.Placement
	Turn       chess.Colour
	Stopped    bool
}

// Rejected reports whether any instruction was refused.
func (r *Report) Rejected() bool {
	return len(r.Rejections) > 0
}

// Run replays s. Rejected instructions are recorded in the report, not
// returned as errors; an error means the game could not be set up.
func Run(s *script.Script, opts Options) (*Report, error) {
	if !opts.PromotionDefault.IsPromotion() {
		return nil, fmt.Errorf("promotion default %v: %w", opts.PromotionDefault, errors.ErrInvalidConfig)
	}

	g, err := newGame(s, opts)
	if err != nil {
		return nil, fmt.Errorf("setting up %s: %w", s.Name, err)
	}

	r := &Report{Name: s.Name, GameID: g.ID()}
	for _, instr := range s.Instructions {
		if reason := step(g, instr, opts.PromotionDefault); reason != nil {
			r.Rejections = append(r.Rejections, Rejection{
				Line:        instr.Line,
				Column:      instr.Column,
				Instruction: instr.String(),
				Reason:      reason,
			})
			if opts.StopOnReject {
				r.Stopped = true
				break
			}
		}
	}

	r.Plies = g.History()
	r.Outcome = g.Outcome()
	r.Final = g.Snapshot()
	r.Turn = g.CurrentTurn()

	if opts.LogFile != nil && opts.Verbosity > 0 {
		fmt.Fprintf(opts.LogFile, "%s: %d plies, %d rejected, %v\n",
			r.Name, len(r.Plies), len(r.Rejections), r.Outcome)
	}
	return r, nil
}

func newGame(s *script.Script, opts Options) (*engine.Game, error) {
	gameOpts := []engine.Option{engine.WithDeferredPromotion()}
	if opts.LogFile != nil {
		gameOpts = append(gameOpts, engine.WithLog(opts.LogFile, opts.Verbosity))
	}
	if s.Setup == nil {
		return engine.NewGame(gameOpts...), nil
	}

	board := chess.NewBoard()
	for _, p := range s.Setup {
		if _, err := board.Place(p.Colour, p.Kind, p.Square); err != nil {
			return nil, errors.Wrapf(err, "placing %v %v on %s", p.Colour, p.Kind, p.Square)
		}
	}
	return engine.NewGameFromBoard(board, s.SetupTurn, gameOpts...)
}

// step applies one instruction and returns the rejection reason, if any.
func step(g *engine.Game, instr script.Instruction, promotionDefault chess.Kind) error {
	if instr.Op == script.OpTimeout {
		if !g.NotifyTimeExpired(instr.Colour) {
			return errors.Wrapf(errors.ErrGameAlreadyOver, "time expiry for %v", instr.Colour)
		}
		return nil
	}

	if instr.Promotion != chess.NoKind && !promotes(g, instr.From, instr.To) {
		return errors.Wrapf(errors.ErrInvalidPromotionKind, "%s does not promote", instr)
	}

	res := g.Move(instr.From, instr.To)
	if !res.Accepted {
		return res.Reason
	}
	if !res.PromotionPending {
		return nil
	}

	kind := instr.Promotion
	if kind == chess.NoKind {
		kind = promotionDefault
	}
	if res = g.ResolvePromotion(kind); !res.Accepted {
		return res.Reason
	}
	return nil
}

// promotes reports whether the piece on from is a pawn heading for its
// promotion rank.
func promotes(g *engine.Game, from, to chess.Square) bool {
	p, ok := g.PieceAt(from)
	return ok && p.Kind == chess.Pawn && to.Rank == chess.PromotionRank(p.Colour)
}
