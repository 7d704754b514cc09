// Package lexer implements the Leo lexical analyzer.
// It turns source text into span-tagged tokens; comments and whitespace
// never reach the parser.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zkcircuit/leoparse/internal/position"
)

// addressLength is the length of a bech32m `aleo1...` account address.
const addressLength = 63

// Lexer represents the lexical analyzer
type Lexer struct {
	input        string
	filename     string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a new lexer instance with filename for error reporting
func NewWithFilename(input, filename string) *Lexer {
	l := &Lexer{
		input:    input,
		filename: filename,
		line:     1,
		column:   0,
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input. The returned slice always ends with a
// single TokenEOF.
func Tokenize(input, filename string) []Token {
	l := NewWithFilename(input, filename)
	tokens := make([]Token, 0, len(input)/4+1)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // NUL represents EOF
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) currentPosition() position.Position {
	return position.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.position,
	}
}

// skipTrivia skips whitespace and comments. It returns an error token for
// an unterminated block comment.
func (l *Lexer) skipTrivia() (Token, bool) {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			start := l.currentPosition()
			l.readChar()
			l.readChar()
			for {
				if l.atEOF() {
					return l.tokenFrom(TokenError, "unterminated block comment", start), true
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					break
				}
				l.readChar()
			}
		default:
			return Token{}, false
		}
	}
	return Token{}, false
}

// NextToken scans the input and returns the next token
func (l *Lexer) NextToken() Token {
	if errTok, ok := l.skipTrivia(); ok {
		return errTok
	}

	start := l.currentPosition()
	if l.atEOF() {
		return Token{Type: TokenEOF, Span: position.NewSpan(start, start)}
	}

	switch l.ch {
	case '"':
		return l.readString(start)
	case '\'':
		return l.readCharLiteral(start)
	case '(':
		return l.single(TokenLParen, start)
	case ')':
		return l.single(TokenRParen, start)
	case '[':
		return l.single(TokenLBracket, start)
	case ']':
		return l.single(TokenRBracket, start)
	case '{':
		return l.single(TokenLBrace, start)
	case '}':
		return l.single(TokenRBrace, start)
	case ',':
		return l.single(TokenComma, start)
	case ';':
		return l.single(TokenSemicolon, start)
	case ':':
		return l.single(TokenColon, start)
	case '?':
		return l.single(TokenQuestion, start)
	case '+':
		return l.single(TokenPlus, start)
	case '/':
		return l.single(TokenDiv, start)
	case '.':
		return l.either('.', TokenDotDot, TokenDot, start)
	case '=':
		return l.either('=', TokenEq, TokenAssign, start)
	case '!':
		return l.either('=', TokenNe, TokenNot, start)
	case '<':
		return l.either('=', TokenLe, TokenLt, start)
	case '>':
		return l.either('=', TokenGe, TokenGt, start)
	case '*':
		return l.either('*', TokenPow, TokenMul, start)
	case '-':
		return l.either('>', TokenArrow, TokenMinus, start)
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			return l.single(TokenAnd, start)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			return l.single(TokenOr, start)
		}
	}

	if isDigit(l.ch) {
		for isDigit(l.ch) {
			l.readChar()
		}
		return l.tokenFrom(TokenInteger, l.input[start.Offset:l.position], start)
	}

	if isLetter(l.ch) || l.ch == '_' {
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		ident := l.input[start.Offset:l.position]
		if strings.HasPrefix(ident, "aleo1") && len(ident) == addressLength {
			return l.tokenFrom(TokenAddress, ident, start)
		}
		return l.tokenFrom(LookupIdent(ident), ident, start)
	}

	r, size := utf8.DecodeRuneInString(l.input[l.position:])
	for i := 0; i < size; i++ {
		l.readChar()
	}
	return l.tokenFrom(TokenError, fmt.Sprintf("unexpected character %q", r), start)
}

// single consumes the current character and emits a token of type tt.
func (l *Lexer) single(tt TokenType, start position.Position) Token {
	l.readChar()
	return l.tokenFrom(tt, l.input[start.Offset:l.position], start)
}

// either emits two when the next character is next, otherwise one.
func (l *Lexer) either(next byte, two, one TokenType, start position.Position) Token {
	if l.peekChar() == next {
		l.readChar()
		return l.single(two, start)
	}
	return l.single(one, start)
}

func (l *Lexer) tokenFrom(tt TokenType, literal string, start position.Position) Token {
	return Token{
		Type:    tt,
		Literal: literal,
		Span:    position.NewSpan(start, l.currentPosition()),
	}
}

// readString reads a double-quoted string, resolving escapes.
func (l *Lexer) readString(start position.Position) Token {
	l.readChar() // opening quote
	var b strings.Builder
	for {
		if l.atEOF() || l.ch == '\n' {
			return l.tokenFrom(TokenError, "unterminated string literal", start)
		}
		if l.ch == '"' {
			l.readChar()
			return l.tokenFrom(TokenString, b.String(), start)
		}
		r, err := l.readRune()
		if err != nil {
			return l.tokenFrom(TokenError, err.Error(), start)
		}
		b.WriteRune(r)
	}
}

// readCharLiteral reads a single-quoted character.
func (l *Lexer) readCharLiteral(start position.Position) Token {
	l.readChar() // opening quote
	if l.atEOF() || l.ch == '\'' || l.ch == '\n' {
		l.skipToQuote()
		return l.tokenFrom(TokenError, "empty or unterminated char literal", start)
	}
	r, err := l.readRune()
	if err != nil {
		l.skipToQuote()
		return l.tokenFrom(TokenError, err.Error(), start)
	}
	if l.ch != '\'' {
		l.skipToQuote()
		return l.tokenFrom(TokenError, "char literal must contain exactly one character", start)
	}
	l.readChar()
	return l.tokenFrom(TokenChar, string(r), start)
}

func (l *Lexer) skipToQuote() {
	for !l.atEOF() && l.ch != '\'' && l.ch != '\n' {
		l.readChar()
	}
	if l.ch == '\'' {
		l.readChar()
	}
}

// readRune consumes one possibly escaped character of a literal.
func (l *Lexer) readRune() (rune, error) {
	if l.ch != '\\' {
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		if r == utf8.RuneError && size <= 1 {
			l.readChar()
			return 0, fmt.Errorf("invalid utf-8 in literal")
		}
		for i := 0; i < size; i++ {
			l.readChar()
		}
		return r, nil
	}

	l.readChar() // backslash
	esc := l.ch
	l.readChar()
	switch esc {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	case '\\', '"', '\'':
		return rune(esc), nil
	case 'u':
		return l.readUnicodeEscape()
	default:
		return 0, fmt.Errorf("unknown escape sequence \\%c", esc)
	}
}

// readUnicodeEscape reads the `{XXXX}` tail of a `\u{XXXX}` escape.
func (l *Lexer) readUnicodeEscape() (rune, error) {
	if l.ch != '{' {
		return 0, fmt.Errorf("expected '{' after \\u")
	}
	l.readChar()
	start := l.position
	for !l.atEOF() && l.ch != '}' && l.ch != '\n' {
		l.readChar()
	}
	if l.ch != '}' {
		return 0, fmt.Errorf("unterminated unicode escape")
	}
	digits := l.input[start:l.position]
	l.readChar()

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || len(digits) == 0 || len(digits) > 6 || !utf8.ValidRune(rune(v)) {
		return 0, fmt.Errorf("invalid unicode escape \\u{%s}", digits)
	}
	return rune(v), nil
}

// isLetter checks if character is ASCII letter
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if character is ASCII digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
