package engine

import (
	"fmt"
	"slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// OutcomeStatus is how a game stands.
type OutcomeStatus int

const (
	OutcomeInProgress OutcomeStatus = iota
	OutcomeCheckmate
	OutcomeStalemate
	OutcomeTimeExpired
)

// Outcome is the result of a game. Side is the colour that was mated or ran
// out of time; it is meaningless for the other statuses.
type Outcome struct {
	Status OutcomeStatus
	Side   chess.Colour
}

// Checkmate returns the outcome where colour is mated.
func Checkmate(colour chess.Colour) Outcome {
	return Outcome{Status: OutcomeCheckmate, Side: colour}
}

// TimeExpired returns the outcome where colour ran out of time.
func TimeExpired(colour chess.Colour) Outcome {
	return Outcome{Status: OutcomeTimeExpired, Side: colour}
}

// IsTerminal reports whether the game is over.
func (o Outcome) IsTerminal() bool {
	return o.Status != OutcomeInProgress
}

// Winner returns the winning colour, if the game has one.
func (o Outcome) Winner() (chess.Colour, bool) {
	switch o.Status {
	case OutcomeCheckmate, OutcomeTimeExpired:
		return o.Side.Opposite(), true
	}
	return chess.White, false
}

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o.Status {
	case OutcomeCheckmate:
		return fmt.Sprintf("Checkmate(%v)", o.Side)
	case OutcomeTimeExpired:
		return fmt.Sprintf("TimeExpired(%v)", o.Side)
	case OutcomeStalemate:
		return "Stalemate"
	}
	return "InProgress"
}

// Phase is the state of the turn engine.
type Phase int

const (
	PhaseAwaitingMove Phase = iota
	PhaseAwaitingPromotion
	PhaseCheckmateSearch
	PhaseTerminal
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPromotion:
		return "AwaitingPromotion"
	case PhaseCheckmateSearch:
		return "CheckmateSearch"
	case PhaseTerminal:
		return "Terminal"
	}
	return "AwaitingMove"
}

// Event is something that happened during an accepted move. Several events
// may come from one move.
type Event int

const (
	EventMoved Event = iota
	EventCaptured
	EventCastled
	EventEnPassantCaptured
	EventPromoted
	EventChecked
	EventCheckmate
	EventStalemate
)

var eventNames = []string{
	"Moved", "Captured", "Castled", "EnPassantCaptured",
	"Promoted", "Checked", "Checkmate", "Stalemate",
}

// String returns the string representation of an event.
func (e Event) String() string {
	if e >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// MoveResult reports the effect of a move request. A rejected request has
// Accepted false, a non-nil Reason and no events; the game is unchanged.
// PromotionPending is set when the move waits for ResolvePromotion.
type MoveResult struct {
	Accepted         bool
	Reason           error
	Events           []Event
	Outcome          Outcome
	PromotionPending bool
}

// Has reports whether the result carries the event.
func (r MoveResult) Has(e Event) bool {
	return slices.Contains(r.Events, e)
}

// Ply is one accepted move in the game record.
type Ply struct {
	Number    int
	Colour    chess.Colour
	Kind      chess.Kind
	From      chess.Square
	To        chess.Square
	Captured  chess.Kind
	Promotion chess.Kind
	Events    []Event
}

// String renders the ply in move script form, e.g. "72-81=N".
func (p Ply) String() string {
	s := fmt.Sprintf("%s-%s", p.From, p.To)
	if p.Promotion != chess.NoKind {
		s += "=" + string(p.Promotion.Letter())
	}
	return s
}
