// Package diag carries the structured, position-tagged errors raised by the
// parser and lowerer. Every fatal diagnostic embeds the offending Extent so a
// downstream renderer can recover source position without re-parsing.
package diag

import (
	"fmt"

	"github.com/wes-sleeman/mithril/token"
)

// Kind classifies a diagnostic into the core's closed error taxonomy.
type Kind int

const (
	// LexicalGarbage is never returned as a fatal error; it is recorded by
	// the lexer as a non-fatal diagnostic (see lexer.MalformedEscapeError)
	// and is listed here only so callers can switch over the full taxonomy.
	LexicalGarbage Kind = iota
	UnexpectedToken
	MissingDelimiter
	StructuralMismatch
	Unimplemented
)

func (k Kind) String() string {
	switch k {
	case LexicalGarbage:
		return "LexicalGarbage"
	case UnexpectedToken:
		return "UnexpectedToken"
	case MissingDelimiter:
		return "MissingDelimiter"
	case StructuralMismatch:
		return "StructuralMismatch"
	case Unimplemented:
		return "Unimplemented"
	default:
		return "Kind(?)"
	}
}

// PosError pairs a fatal diagnostic with the Extent of the construct that
// raised it.
type PosError struct {
	Where token.Extent
	Kind  Kind
	Err   error
}

func (e PosError) Error() string {
	return fmt.Sprintf("at [%d,%d): %s: %s", e.Where.Start, e.Where.End, e.Kind, e.Err.Error())
}

func (e PosError) Unwrap() error {
	return e.Err
}

// At constructs a PosError anchored at where.
func At(where token.Extent, kind Kind, err error) error {
	return PosError{Where: where, Kind: kind, Err: err}
}
