package output

import (
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/replay"
)

// JSONReport represents a replay report in JSON format.
type JSONReport struct {
	Name       string          `json:"name"`
	GameID     string          `json:"gameId"`
	Outcome    string          `json:"outcome"`
	Winner     string          `json:"winner,omitempty"`
	Turn       string          `json:"turn"`
	PlyCount   int             `json:"plyCount"`
	Plies      []JSONPly       `json:"plies,omitempty"`
	Rejections []JSONRejection `json:"rejections,omitempty"`
	Stopped    bool            `json:"stopped,omitempty"`
	Final      []JSONPiece     `json:"final,omitempty"`
}

// JSONPly represents an accepted move in JSON format.
type JSONPly struct {
	Number    int      `json:"number"`
	Colour    string   `json:"colour"` // "white" or "black"
	Move      string   `json:"move"`
	UCI       string   `json:"uci"`
	Piece     string   `json:"piece"`
	Captured  string   `json:"captured,omitempty"`
	Promotion string   `json:"promotion,omitempty"`
	Events    []string `json:"events,omitempty"`
}

// JSONRejection represents a refused script instruction.
type JSONRejection struct {
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Instruction string `json:"instruction"`
	Reason      string `json:"reason"`
}

// JSONPiece represents an occupied square of the final position.
type JSONPiece struct {
	Square string `json:"square"`
	Colour string `json:"colour"`
	Piece  string `json:"piece"`
}

// JSONOutput holds multiple reports for array output.
type JSONOutput struct {
	Reports []*JSONReport `json:"reports"`
}

// ReportToJSON converts a replay report to JSON format. The ply list
// follows cfg.ShowHistory and the final position cfg.ShowBoard.
func ReportToJSON(r *replay.Report, cfg *config.OutputConfig) *JSONReport {
	jr := &JSONReport{
		Name:     r.Name,
		GameID:   r.GameID,
		Outcome:  r.Outcome.String(),
		Turn:     colourName(r.Turn),
		PlyCount: len(r.Plies),
		Stopped:  r.Stopped,
	}
	if winner, ok := r.Outcome.Winner(); ok {
		jr.Winner = colourName(winner)
	}

	if cfg.ShowHistory {
		jr.Plies = make([]JSONPly, 0, len(r.Plies))
		for _, p := range r.Plies {
			jr.Plies = append(jr.Plies, plyToJSON(p))
		}
	}

	for _, rej := range r.Rejections {
		jr.Rejections = append(jr.Rejections, JSONRejection{
			Line:        rej.Line,
			Column:      rej.Column,
			Instruction: rej.Instruction,
			Reason:      rej.Reason.Error(),
		})
	}

	if cfg.ShowBoard {
		for _, p := range r.Final {
			jr.Final = append(jr.Final, JSONPiece{
				Square: p.Square.String(),
				Colour: colourName(p.Colour),
				Piece:  kindName(p.Kind),
			})
		}
	}
	return jr
}

func plyToJSON(p engine.Ply) JSONPly {
	jp := JSONPly{
		Number:    p.Number,
		Colour:    colourName(p.Colour),
		Move:      p.String(),
		UCI:       p.From.Coordinate() + p.To.Coordinate(),
		Piece:     kindName(p.Kind),
		Captured:  kindName(p.Captured),
		Promotion: kindName(p.Promotion),
	}
	if p.Promotion != chess.NoKind {
		jp.UCI += strings.ToLower(string(p.Promotion.Letter()))
	}
	for _, e := range p.Events {
		jp.Events = append(jp.Events, e.String())
	}
	return jp
}

// colourName returns "white" or "black".
func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}

// kindName returns the kind as a lower case word, or "" for NoKind.
func kindName(k chess.Kind) string {
	if k == chess.NoKind {
		return ""
	}
	return strings.ToLower(k.String())
}
