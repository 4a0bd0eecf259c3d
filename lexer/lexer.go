// Package lexer implements the ambiguous, set-valued tokeniser: it never
// fails, and at every source position it records every lexical category that
// plausibly matches there, leaving disambiguation to the parser.
package lexer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wes-sleeman/mithril/token"
)

// Stream maps a byte start-offset to the set of tokens that begin there.
// Keys are sparse: a position with no candidate (skipped whitespace, or a
// byte matching no category) has no entry.
type Stream map[int]map[token.Token]struct{}

func newStream() Stream {
	return make(Stream)
}

func (s Stream) add(pos int, t token.Token) {
	set, ok := s[pos]
	if !ok {
		set = make(map[token.Token]struct{})
		s[pos] = set
	}
	set[t] = struct{}{}
}

// Offsets returns every key of the stream in increasing order.
func (s Stream) Offsets() []int {
	offsets := make([]int, 0, len(s))
	for pos := range s {
		offsets = append(offsets, pos)
	}
	sort.Ints(offsets)

	return offsets
}

// At returns the candidate set starting at pos, sorted for determinism, or
// nil if pos is not a key.
func (s Stream) At(pos int) []token.Token {
	set, ok := s[pos]
	if !ok {
		return nil
	}
	out := make([]token.Token, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}

		return out[i].Lexeme < out[j].Lexeme
	})

	return out
}

// MalformedEscapeError reports an escape sequence the lexer does not
// recognise inside a character or string literal. The lexer never aborts on
// one of these; it collects the error alongside the stream instead.
type MalformedEscapeError struct {
	Pos  int
	Char byte
}

func (e MalformedEscapeError) Error() string {
	return fmt.Sprintf("at byte %d: unrecognised escape sequence `\\%c`", e.Pos, e.Char)
}

var knownEscapes = map[byte]bool{
	'"': true, '\'': true, 'b': true, 'n': true, 'r': true, 't': true, '\\': true,
}

// Lex maps source text to its candidate token stream. It never returns a
// fatal error: the returned error, if non-nil, is an errors.Join of
// non-fatal MalformedEscapeError diagnostics gathered while scanning string
// and character literals.
func Lex(source string) (Stream, error) {
	stream := newStream()

	var warn error

	pos := 0
	for pos < len(source) {
		candidates := resolveAmbiguity(candidatesAt(source, pos))

		if len(candidates) == 0 {
			pos++

			continue
		}

		maxEnd := pos
		for _, c := range candidates {
			end := trailingWhitespaceEnd(source, c.end)
			stream.add(pos, token.Token{
				Kind:   c.kind,
				Lexeme: source[pos:c.end],
				Extents: token.Extent{
					Start: pos,
					End:   end,
				},
			})
			if end > maxEnd {
				maxEnd = end
			}
			if c.kind == token.Character || c.kind == token.String {
				warn = errors.Join(warn, scanEscapes(source, pos, c.end))
			}
		}

		pos = maxEnd
	}

	return stream, warn
}

// resolveAmbiguity drops the Identifier candidate, if present, whenever the
// set also contains a literal candidate (Integer, Decimal, Character,
// String, Boolean, or Poison). Keyword and Modifier candidates are left
// untouched: the parser discriminates those by context.
func resolveAmbiguity(candidates []candidate) []candidate {
	hasLiteral := false
	for _, c := range candidates {
		switch c.kind {
		case token.Integer, token.Decimal, token.Character, token.String, token.Boolean, token.Poison:
			hasLiteral = true
		}
	}
	if !hasLiteral {
		return candidates
	}

	out := candidates[:0:0]
	for _, c := range candidates {
		if c.kind == token.Identifier {
			continue
		}
		out = append(out, c)
	}

	return out
}

// scanEscapes reports every unrecognised `\x` escape inside the literal
// source[start:end], which includes the surrounding quotes.
func scanEscapes(source string, start, end int) error {
	var warn error
	for i := start; i < end-1; i++ {
		if source[i] != '\\' {
			continue
		}
		if i+1 >= end {
			break
		}
		escaped := source[i+1]
		if !knownEscapes[escaped] {
			warn = errors.Join(warn, MalformedEscapeError{Pos: i, Char: escaped})
		}
		i++
	}

	return warn
}
