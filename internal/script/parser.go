package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Op is the kind of a script instruction.
type Op int

const (
	OpMove Op = iota
	OpTimeout
)

// Instruction is one step of a script.
type Instruction struct {
	Op     Op
	Line   int
	Column int
	Text   string

	// OpMove
	From      chess.Square
	To        chess.Square
	Promotion chess.Kind // NoKind when the move names none

	// OpTimeout
	Colour chess.Colour
}

// Script is a parsed move script.
type Script struct {
	Name string

	// Setup, when non-nil, replaces the standard start position; SetupTurn
	// is then the side to move.
	Setup     []chess.Placement
	SetupTurn chess.Colour

	Instructions []Instruction
}

// Parser builds scripts from lexer output.
type Parser struct {
	lexer *Lexer
	name  string
}

// NewParser creates a parser. name labels the scripts and error locations.
func NewParser(r io.Reader, name string) *Parser {
	return &Parser{lexer: NewLexer(r), name: name}
}

// ParseAll reads every script in the input. Scripts after the first are
// named with a "#n" suffix, n counting from 1; empty blocks take no number. An input with no instructions and no setup
// yields no scripts.
func (p *Parser) ParseAll() ([]*Script, error) {
	var scripts []*Script
	current := &Script{Name: p.name}
	flush := func() {
		if current.Setup != nil || len(current.Instructions) > 0 {
			scripts = append(scripts, current)
		}
	}

	for {
		words, ok, err := p.lexer.nextLine()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p.name, err)
		}
		if !ok {
			break
		}
		if len(words) == 0 {
			continue
		}

		switch words[0].text {
		case "---":
			if len(words) > 1 {
				return nil, p.errorAt(words[1], "end of line", quote(words[1].text))
			}
			flush()
			current = &Script{Name: p.name}
			if len(scripts) > 0 {
				current.Name = fmt.Sprintf("%s#%d", p.name, len(scripts))
			}
			continue
		case "setup":
			if current.Setup != nil || len(current.Instructions) > 0 {
				return nil, p.errorAt(words[0], "setup before the first move", "setup")
			}
			if err := p.parseSetup(current, words); err != nil {
				return nil, err
			}
			continue
		}

		for _, w := range words {
			instr, err := p.parseInstruction(w)
			if err != nil {
				return nil, err
			}
			current.Instructions = append(current.Instructions, instr)
		}
	}
	flush()
	return scripts, nil
}

// Parse reads a single script. Inputs holding several scripts are
// rejected.
func (p *Parser) Parse() (*Script, error) {
	scripts, err := p.ParseAll()
	if err != nil {
		return nil, err
	}
	switch len(scripts) {
	case 0:
		return &Script{Name: p.name}, nil
	case 1:
		return scripts[0], nil
	}
	return nil, &errors.ParseError{Err: errors.ErrParseFailure, File: p.name, Expected: "one script", Got: fmt.Sprintf("%d scripts", len(scripts))}
}

// ParseString is a convenience wrapper parsing a single script from text.
func ParseString(text, name string) (*Script, error) {
	return NewParser(strings.NewReader(text), name).Parse()
}

// parseSetup handles "setup <white|black> <piece>...", where each piece is
// colour letter, kind letter and square, e.g. "WK85".
func (p *Parser) parseSetup(s *Script, words []word) error {
	if len(words) < 2 {
		return p.errorAt(words[0], "side to move", "end of line")
	}
	turn, ok := parseColour(words[1].text)
	if !ok {
		return p.errorAt(words[1], "white or black", quote(words[1].text))
	}
	s.SetupTurn = turn
	s.Setup = []chess.Placement{}

	for _, w := range words[2:] {
		placement, ok := parsePlacement(w.text)
		if !ok {
			return p.errorAt(w, "piece such as WK85", quote(w.text))
		}
		s.Setup = append(s.Setup, placement)
	}
	return nil
}

func (p *Parser) parseInstruction(w word) (Instruction, error) {
	instr := Instruction{Line: w.line, Column: w.column, Text: w.text}

	if side, ok := strings.CutPrefix(w.text, "timeout:"); ok {
		colour, ok := parseColour(side)
		if !ok {
			return instr, p.errorAt(w, "timeout:white or timeout:black", quote(w.text))
		}
		instr.Op = OpTimeout
		instr.Colour = colour
		return instr, nil
	}

	move, promo, hasPromo := strings.Cut(w.text, "=")
	from, to, ok := strings.Cut(move, "-")
	if !ok {
		return instr, p.errorAt(w, "move such as 75-55", quote(w.text))
	}
	var err error
	if instr.From, err = chess.ParseSquare(from); err != nil {
		return instr, p.errorAt(w, "origin square", quote(from))
	}
	if instr.To, err = chess.ParseSquare(to); err != nil {
		return instr, p.errorAt(w, "destination square", quote(to))
	}
	if hasPromo {
		if len(promo) != 1 || !chess.KindFromLetter(promo[0]).IsPromotion() {
			return instr, p.errorAt(w, "promotion Q, R, B or N", quote(promo))
		}
		instr.Promotion = chess.KindFromLetter(promo[0])
	}
	instr.Op = OpMove
	return instr, nil
}

func (p *Parser) errorAt(w word, expected, got string) error {
	return &errors.ParseError{
		Err:      errors.ErrParseFailure,
		File:     p.name,
		Line:     w.line,
		Column:   w.column,
		Expected: expected,
		Got:      got,
	}
}

func parseColour(text string) (chess.Colour, bool) {
	switch strings.ToLower(text) {
	case "white":
		return chess.White, true
	case "black":
		return chess.Black, true
	}
	return chess.White, false
}

func parsePlacement(text string) (chess.Placement, bool) {
	if len(text) != 4 {
		return chess.Placement{}, false
	}
	var colour chess.Colour
	switch text[0] {
	case 'W':
		colour = chess.White
	case 'B':
		colour = chess.Black
	default:
		return chess.Placement{}, false
	}
	kind := chess.KindFromLetter(text[1])
	sq, err := chess.ParseSquare(text[2:])
	if kind == chess.NoKind || err != nil {
		return chess.Placement{}, false
	}
	return chess.Placement{Square: sq, Colour: colour, Kind: kind}, true
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// String renders an instruction in script form.
func (i Instruction) String() string {
	if i.Op == OpTimeout {
		return "timeout:" + strings.ToLower(i.Colour.String())
	}
	s := fmt.Sprintf("%s-%s", i.From, i.To)
	if i.Promotion != chess.NoKind {
		s += "=" + string(i.Promotion.Letter())
	}
	return s
}
