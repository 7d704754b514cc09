// Package parser implements the recursive descent parser for Leo statements,
// types and the expressions they contain.
//
// A Parser owns a token slice and a diagnostics handler for one input.
// Fatal problems are returned as *Error values and abort the current call;
// recoverable ones are emitted into the handler while parsing continues.
package parser

import (
	"github.com/zkcircuit/leoparse/internal/ast"
	"github.com/zkcircuit/leoparse/internal/diagnostics"
	"github.com/zkcircuit/leoparse/internal/lexer"
	"github.com/zkcircuit/leoparse/internal/position"
)

// Parser represents the recursive descent parser
type Parser struct {
	tokens []lexer.Token
	pos    int

	// token is the lookahead; prevToken the last consumed token.
	token     lexer.Token
	prevToken lexer.Token

	// noCircuitInit suppresses `Name { ... }` literals so that the brace
	// after an if condition or loop bound opens the body block.
	noCircuitInit bool

	handler  *diagnostics.Handler
	filename string
}

// Option configures a Parser.
type Option func(*Parser)

// WithHandler makes the parser emit diagnostics into h.
func WithHandler(h *diagnostics.Handler) Option {
	return func(p *Parser) { p.handler = h }
}

// WithFilename records the name of the parsed input.
func WithFilename(name string) Option {
	return func(p *Parser) { p.filename = name }
}

// New creates a parser over an already tokenized input. An EOF token is
// appended when the slice does not end with one.
func New(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.handler == nil {
		p.handler = diagnostics.NewHandler()
	}

	if n := len(tokens); n == 0 || tokens[n-1].Type != lexer.TokenEOF {
		eof := lexer.Token{Type: lexer.TokenEOF}
		if n > 0 {
			end := tokens[n-1].Span.End
			eof.Span = position.NewSpan(end, end)
		}
		tokens = append(tokens[:n:n], eof)
	}
	p.tokens = tokens
	p.token = tokens[0]

	return p
}

// NewFromSource tokenizes src and creates a parser over it.
func NewFromSource(src, filename string, opts ...Option) *Parser {
	opts = append([]Option{WithFilename(filename)}, opts...)
	return New(lexer.Tokenize(src, filename), opts...)
}

// Handler returns the diagnostics handler the parser emits into.
func (p *Parser) Handler() *diagnostics.Handler { return p.handler }

// Filename returns the name given with WithFilename.
func (p *Parser) Filename() string { return p.filename }

// Diagnostics returns the recoverable issues reported so far.
func (p *Parser) Diagnostics() []diagnostics.Diagnostic { return p.handler.Diagnostics() }

// bump advances the cursor by one token. At EOF it stays put.
func (p *Parser) bump() {
	p.prevToken = p.token
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.token = p.tokens[p.pos]
}

// check reports whether the lookahead has the given type.
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.token.Type == tt
}

// eat consumes the lookahead if it has the given type.
func (p *Parser) eat(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.bump()
		return true
	}
	return false
}

// eatAny consumes the lookahead if it has any of the given types.
func (p *Parser) eatAny(tts ...lexer.TokenType) bool {
	for _, tt := range tts {
		if p.eat(tt) {
			return true
		}
	}
	return false
}

// expect consumes a token of the given type and returns its span.
func (p *Parser) expect(tt lexer.TokenType) (position.Span, error) {
	if p.eat(tt) {
		return p.prevToken.Span, nil
	}
	return position.Span{}, errUnexpected(p.token, "'"+tt.String()+"'")
}

// expectAny consumes a token of any of the given types and returns its span.
func (p *Parser) expectAny(tts ...lexer.TokenType) (position.Span, error) {
	if p.eatAny(tts...) {
		return p.prevToken.Span, nil
	}
	return position.Span{}, errUnexpected(p.token, quoteTokens(tts))
}

// eatIdentifier consumes an identifier token if one is next.
func (p *Parser) eatIdentifier() *ast.Identifier {
	if !p.check(lexer.TokenIdentifier) {
		return nil
	}
	p.bump()
	return ast.NewIdentifier(p.prevToken.Literal, p.prevToken.Span)
}

// expectIdent consumes an identifier token or fails.
func (p *Parser) expectIdent() (*ast.Identifier, error) {
	if id := p.eatIdentifier(); id != nil {
		return id, nil
	}
	return nil, errUnexpected(p.token, "'"+lexer.TokenIdentifier.String()+"'")
}

// peekIsLeftPar reports whether the lookahead opens a parenthesized list.
func (p *Parser) peekIsLeftPar() bool {
	return p.check(lexer.TokenLParen)
}

// emitErr records a recoverable error and lets parsing continue.
func (p *Parser) emitErr(err *Error) {
	p.handler.Emit(err.Diagnostic())
}

// disallowCircuitConstruction forbids circuit literals until the returned
// function is called, which restores the previous setting:
//
//	defer p.disallowCircuitConstruction()()
func (p *Parser) disallowCircuitConstruction() func() {
	return p.setCircuitConstruction(false)
}

// allowCircuitConstruction lifts the restriction until the returned
// function is called.
func (p *Parser) allowCircuitConstruction() func() {
	return p.setCircuitConstruction(true)
}

func (p *Parser) setCircuitConstruction(allowed bool) func() {
	prev := p.noCircuitInit
	p.noCircuitInit = !allowed
	return func() { p.noCircuitInit = prev }
}

// CircuitConstructionAllowed reports whether a `Name { ... }` literal would
// currently be parsed as an expression.
func (p *Parser) CircuitConstructionAllowed() bool { return !p.noCircuitInit }

// AtEOF reports whether every token has been consumed.
func (p *Parser) AtEOF() bool { return p.check(lexer.TokenEOF) }
