package parser

import (
	"fmt"
	"strings"

	"github.com/zkcircuit/leoparse/internal/diagnostics"
	"github.com/zkcircuit/leoparse/internal/lexer"
	"github.com/zkcircuit/leoparse/internal/position"
)

// ErrorKind is the stable code of a parse error or diagnostic.
type ErrorKind string

const (
	// Fatal kinds.
	KindUnexpectedToken         ErrorKind = "unexpected_token"
	KindUnexpectedEOF           ErrorKind = "unexpected_eof"
	KindLexical                 ErrorKind = "lexical_error"
	KindInvalidAssignmentTarget ErrorKind = "invalid_assignment_target"

	// Recoverable kinds, reported through the diagnostics handler.
	KindExprStmtsDisallowed               ErrorKind = "expr_stmts_disallowed"
	KindUnexpectedStatement               ErrorKind = "unexpected_statement"
	KindUnexpectedStr                     ErrorKind = "unexpected_str"
	KindUnexpectedIdent                   ErrorKind = "unexpected_ident"
	KindInvalidParensAroundSingleVariable ErrorKind = "invalid_parens_around_single_variable"
)

// Error is a parse error carrying the span it was detected at. Returned as
// an error it aborts the current parse call; passed to emitErr it is
// recorded as a recoverable diagnostic instead.
type Error struct {
	Kind    ErrorKind     `json:"kind"`
	Message string        `json:"message"`
	Span    position.Span `json:"span"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Message)
}

// Diagnostic converts the error into an error-level diagnostic.
func (e *Error) Diagnostic() diagnostics.Diagnostic {
	return diagnostics.NewDiagnosticBuilder().
		Error().
		WithCode(string(e.Kind)).
		WithMessage(e.Message).
		WithSpan(e.Span).
		Build()
}

func newError(kind ErrorKind, span position.Span, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

// errUnexpected reports that got was found where expected was required.
func errUnexpected(got lexer.Token, expected string) *Error {
	switch got.Type {
	case lexer.TokenEOF:
		return newError(KindUnexpectedEOF, got.Span, "unexpected EOF: expected %s", expected)
	case lexer.TokenError:
		return newError(KindLexical, got.Span, "%s", got.Literal)
	}
	return newError(KindUnexpectedToken, got.Span, "expected %s -- got '%s'", expected, got.Describe())
}

func errExprStmtsDisallowed(span position.Span) *Error {
	return newError(KindExprStmtsDisallowed, span, "expression statements are not supported")
}

func errUnexpectedStatement(got string, expected string, span position.Span) *Error {
	return newError(KindUnexpectedStatement, span, "expected %s -- got '%s'", expected, got)
}

func errUnexpectedStr(got lexer.Token, expected string) *Error {
	return newError(KindUnexpectedStr, got.Span, "unexpected string: expected '%s', got '%s'", expected, got.Describe())
}

func errUnexpectedIdent(got string, expected []string, span position.Span) *Error {
	quoted := make([]string, len(expected))
	for i, e := range expected {
		quoted[i] = "'" + e + "'"
	}
	return newError(KindUnexpectedIdent, span, "unexpected identifier: expected %s -- got '%s'",
		strings.Join(quoted, ", "), got)
}

func errInvalidAssignmentTarget(span position.Span) *Error {
	return newError(KindInvalidAssignmentTarget, span, "invalid assignment target")
}

func errInvalidParensAroundSingleVariable(span position.Span) *Error {
	return newError(KindInvalidParensAroundSingleVariable, span,
		"parens around single variable names are not allowed")
}

// quoteTokens renders a token set as `'a', 'b'`.
func quoteTokens(kinds []lexer.TokenType) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = "'" + k.String() + "'"
	}
	return strings.Join(parts, ", ")
}
