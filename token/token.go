// Package token defines the lexical vocabulary shared by the lexer, parser,
// and lowerer: the closed set of token kinds, the Token value itself, and the
// half-open byte Extent that anchors every tree node back to source text.
package token

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer@v0.13.0 -type=Kind
type Kind int

const (
	Keyword Kind = iota
	Modifier
	Semicolon
	Colon
	EqualSign
	Parenthesis
	CurlyBracket
	Comma
	Dot
	Integer
	Decimal
	Character
	String
	Boolean
	Poison
	Identifier
)

// Extent is a half-open [Start, End) byte interval into the source text.
// End includes any trailing whitespace consumed by the lexer when
// tokenising the lexeme that owns this extent.
type Extent struct {
	Start int
	End   int
}

// Union returns the smallest extent spanning both e and other.
func (e Extent) Union(other Extent) Extent {
	start := e.Start
	if other.Start < start {
		start = other.Start
	}
	end := e.End
	if other.End > end {
		end = other.End
	}

	return Extent{Start: start, End: end}
}

// Token is the lexer's atomic unit. Equality is structural over Kind,
// Lexeme, and Extents: two tokens starting at the same offset with
// different kinds are distinct elements of the same candidate set.
type Token struct {
	Kind    Kind
	Lexeme  string
	Extents Extent
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, [%d,%d)}", t.Kind, t.Lexeme, t.Extents.Start, t.Extents.End)
}

// Is reports whether t has the given kind and, if lexeme is non-empty,
// whether its lexeme also matches. This is the predicate the parser uses to
// disambiguate a candidate set: specify the Kind you want and, where the
// grammar pins a specific keyword or delimiter, the Lexeme too.
func (t Token) Is(kind Kind, lexeme string) bool {
	if t.Kind != kind {
		return false
	}

	return lexeme == "" || t.Lexeme == lexeme
}
