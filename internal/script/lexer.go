// Package script reads move scripts: line-oriented text that drives a game
// without a user interface.
//
// A script is a sequence of whitespace-separated tokens. Moves are written
// in engine numbering as "RF-RF", optionally followed by "=Q", "=R", "=B"
// or "=N". "timeout:white" and "timeout:black" inject a clock expiry. A
// line starting with "setup" replaces the standard start position, and a
// line holding only "---" starts the next script. "#" comments run to the
// end of the line.
package script

import (
	"bufio"
	"io"
	"strings"
)

// word is one whitespace-separated token and where it starts.
type word struct {
	text   string
	line   int
	column int
}

// Lexer splits script input into words, line by line.
type Lexer struct {
	reader  *bufio.Reader
	lineNum int
	eof     bool
}

// NewLexer creates a lexer reading from r.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// nextLine returns the words of the next line with its comment removed.
// ok is false once the input is exhausted.
func (l *Lexer) nextLine() (words []word, ok bool, err error) {
	if l.eof {
		return nil, false, nil
	}
	line, err := l.reader.ReadString('\n')
	if err == io.EOF {
		l.eof = true
		if line == "" {
			return nil, false, nil
		}
	} else if err != nil {
		return nil, false, err
	}
	l.lineNum++

	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return splitWords(line, l.lineNum), true, nil
}

// splitWords breaks a line on spaces and tabs, keeping 1-based columns.
func splitWords(line string, lineNum int) []word {
	var words []word
	start := -1
	for i := 0; i <= len(line); i++ {
		blank := i == len(line) || line[i] == ' ' || line[i] == '\t' || line[i] == '\r' || line[i] == '\n'
		switch {
		case blank && start >= 0:
			words = append(words, word{text: line[start:i], line: lineNum, column: start + 1})
			start = -1
		case !blank && start < 0:
			start = i
		}
	}
	return words
}
