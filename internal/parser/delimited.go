package parser

import (
	"github.com/zkcircuit/leoparse/internal/lexer"
	"github.com/zkcircuit/leoparse/internal/position"
)

// elementFunc parses one slot of a delimited list. Returning ok=false
// consumes the slot without producing a node.
type elementFunc[T any] func(p *Parser) (item T, ok bool, err error)

// parseDelimitedList parses `open elem sep elem ... close` with an optional
// trailing separator. It reports whether the list ended with a separator
// and the span from open to close.
func parseDelimitedList[T any](p *Parser, open, sep, close lexer.TokenType, f elementFunc[T]) ([]T, bool, position.Span, error) {
	start, err := p.expect(open)
	if err != nil {
		return nil, false, position.Span{}, err
	}

	var items []T
	trailing := false
	for !p.check(close) {
		item, ok, err := f(p)
		if err != nil {
			return nil, false, position.Span{}, err
		}
		if ok {
			items = append(items, item)
		}
		if !p.eat(sep) {
			trailing = false
			break
		}
		trailing = true
	}

	end, err := p.expect(close)
	if err != nil {
		return nil, false, position.Span{}, err
	}
	return items, trailing, start.Union(end), nil
}

// parseParenCommaList parses `( elem, elem, ... )`.
func parseParenCommaList[T any](p *Parser, f elementFunc[T]) ([]T, bool, position.Span, error) {
	return parseDelimitedList(p, lexer.TokenLParen, lexer.TokenComma, lexer.TokenRParen, f)
}
