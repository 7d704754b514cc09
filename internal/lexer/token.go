package lexer

import (
	"fmt"

	"github.com/zkcircuit/leoparse/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns the source spelling of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenIdentifier
	TokenInteger
	TokenString
	TokenChar
	TokenAddress

	// Keywords
	TokenTrue
	TokenFalse
	TokenCircuit
	TokenConsole
	TokenConst
	TokenElse
	TokenFor
	TokenFunction
	TokenIf
	TokenIn
	TokenLet
	TokenReturn

	// Primitive type keywords
	TokenI8
	TokenI16
	TokenI32
	TokenI64
	TokenI128
	TokenU8
	TokenU16
	TokenU32
	TokenU64
	TokenU128
	TokenField
	TokenGroup
	TokenAddressType
	TokenBool
	TokenCharType

	// Operators
	TokenNot
	TokenAnd
	TokenOr
	TokenEq
	TokenNe
	TokenLt
	TokenLe
	TokenGt
	TokenGe
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenPow
	TokenAssign

	// Delimiters
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenDot
	TokenDotDot
	TokenSemicolon
	TokenColon
	TokenQuestion
	TokenArrow
)

// tokenNames holds the spelling used in diagnostics
var tokenNames = map[TokenType]string{
	TokenEOF:   "<eof>",
	TokenError: "<error>",

	TokenIdentifier: "identifier",
	TokenInteger:    "integer",
	TokenString:     "string",
	TokenChar:       "char literal",
	TokenAddress:    "address literal",

	TokenTrue:     "true",
	TokenFalse:    "false",
	TokenCircuit:  "circuit",
	TokenConsole:  "console",
	TokenConst:    "const",
	TokenElse:     "else",
	TokenFor:      "for",
	TokenFunction: "function",
	TokenIf:       "if",
	TokenIn:       "in",
	TokenLet:      "let",
	TokenReturn:   "return",

	TokenI8:          "i8",
	TokenI16:         "i16",
	TokenI32:         "i32",
	TokenI64:         "i64",
	TokenI128:        "i128",
	TokenU8:          "u8",
	TokenU16:         "u16",
	TokenU32:         "u32",
	TokenU64:         "u64",
	TokenU128:        "u128",
	TokenField:       "field",
	TokenGroup:       "group",
	TokenAddressType: "address",
	TokenBool:        "bool",
	TokenCharType:    "char",

	TokenNot:    "!",
	TokenAnd:    "&&",
	TokenOr:     "||",
	TokenEq:     "==",
	TokenNe:     "!=",
	TokenLt:     "<",
	TokenLe:     "<=",
	TokenGt:     ">",
	TokenGe:     ">=",
	TokenPlus:   "+",
	TokenMinus:  "-",
	TokenMul:    "*",
	TokenDiv:    "/",
	TokenPow:    "**",
	TokenAssign: "=",

	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenComma:     ",",
	TokenDot:       ".",
	TokenDotDot:    "..",
	TokenSemicolon: ";",
	TokenColon:     ":",
	TokenQuestion:  "?",
	TokenArrow:     "->",
}

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"true":     TokenTrue,
	"false":    TokenFalse,
	"circuit":  TokenCircuit,
	"console":  TokenConsole,
	"const":    TokenConst,
	"else":     TokenElse,
	"for":      TokenFor,
	"function": TokenFunction,
	"if":       TokenIf,
	"in":       TokenIn,
	"let":      TokenLet,
	"return":   TokenReturn,

	"i8":      TokenI8,
	"i16":     TokenI16,
	"i32":     TokenI32,
	"i64":     TokenI64,
	"i128":    TokenI128,
	"u8":      TokenU8,
	"u16":     TokenU16,
	"u32":     TokenU32,
	"u64":     TokenU64,
	"u128":    TokenU128,
	"field":   TokenField,
	"group":   TokenGroup,
	"address": TokenAddressType,
	"bool":    TokenBool,
	"char":    TokenCharType,
}

// LookupIdent returns the keyword token type for ident, or TokenIdentifier.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// Token represents a lexical token with position information.
// For string and char literals Literal holds the unescaped value.
type Token struct {
	Type    TokenType
	Literal string
	Span    position.Span
}

// String returns a debug representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Span: %s}", t.Type, t.Literal, t.Span)
}

// Describe renders the token the way diagnostics quote it.
func (t Token) Describe() string {
	switch t.Type {
	case TokenIdentifier, TokenInteger, TokenAddress:
		return t.Literal
	case TokenString:
		return fmt.Sprintf("%q", t.Literal)
	case TokenChar:
		return fmt.Sprintf("'%s'", t.Literal)
	case TokenError:
		return t.Literal
	default:
		return t.Type.String()
	}
}

// IsType reports whether the token type names a primitive type.
func (tt TokenType) IsType() bool {
	return tt >= TokenI8 && tt <= TokenCharType
}
