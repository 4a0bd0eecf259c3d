package parser

import (
	"fmt"

	"github.com/wes-sleeman/mithril/internal/diag"
	"github.com/wes-sleeman/mithril/token"
)

// UnexpectedTokenError reports that no candidate in the current token set
// satisfied the grammar's expectation at this position.
type UnexpectedTokenError struct {
	Expected string
}

func (e UnexpectedTokenError) Error() string {
	return "unexpected token: expected " + e.Expected
}

func unexpectedToken(where token.Extent, expected string) error {
	return diag.At(where, diag.UnexpectedToken, UnexpectedTokenError{Expected: expected})
}

// MissingDelimiterError reports that a required delimiter (`;`, `)`, `}`,
// `=`, `else`, or `over`) was not found.
type MissingDelimiterError struct {
	Delimiter string
}

func (e MissingDelimiterError) Error() string {
	return fmt.Sprintf("missing delimiter: expected `%s`", e.Delimiter)
}

func missingDelimiter(where token.Extent, delimiter string) error {
	return diag.At(where, diag.MissingDelimiter, MissingDelimiterError{Delimiter: delimiter})
}
