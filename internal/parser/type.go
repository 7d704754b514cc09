package parser

import (
	"github.com/zkcircuit/leoparse/internal/ast"
	"github.com/zkcircuit/leoparse/internal/lexer"
	"github.com/zkcircuit/leoparse/internal/position"
)

// typeTokens is the closed set of primitive type keywords.
var typeTokens = []lexer.TokenType{
	lexer.TokenI8, lexer.TokenI16, lexer.TokenI32, lexer.TokenI64, lexer.TokenI128,
	lexer.TokenU8, lexer.TokenU16, lexer.TokenU32, lexer.TokenU64, lexer.TokenU128,
	lexer.TokenField, lexer.TokenGroup, lexer.TokenAddressType, lexer.TokenBool, lexer.TokenCharType,
}

var intTypes = map[lexer.TokenType]ast.IntegerType{
	lexer.TokenI8:   ast.I8,
	lexer.TokenI16:  ast.I16,
	lexer.TokenI32:  ast.I32,
	lexer.TokenI64:  ast.I64,
	lexer.TokenI128: ast.I128,
	lexer.TokenU8:   ast.U8,
	lexer.TokenU16:  ast.U16,
	lexer.TokenU32:  ast.U32,
	lexer.TokenU64:  ast.U64,
	lexer.TokenU128: ast.U128,
}

// tokenToIntType maps an integer type keyword to its IntegerType.
func tokenToIntType(tt lexer.TokenType) (ast.IntegerType, bool) {
	it, ok := intTypes[tt]
	return it, ok
}

// parseNonIdentTypes parses one primitive type keyword.
func (p *Parser) parseNonIdentTypes() (ast.Type, position.Span, error) {
	span, err := p.expectAny(typeTokens...)
	if err != nil {
		return nil, position.Span{}, err
	}

	switch tt := p.prevToken.Type; tt {
	case lexer.TokenField:
		return ast.TypeField, span, nil
	case lexer.TokenGroup:
		return ast.TypeGroup, span, nil
	case lexer.TokenAddressType:
		return ast.TypeAddress, span, nil
	case lexer.TokenBool:
		return ast.TypeBoolean, span, nil
	case lexer.TokenCharType:
		return ast.TypeChar, span, nil
	default:
		it, _ := tokenToIntType(tt)
		return it, span, nil
	}
}

// parseAllTypes parses a primitive type or a user-defined type name and
// returns it with the span of the consumed token.
func (p *Parser) parseAllTypes() (ast.Type, position.Span, error) {
	if id := p.eatIdentifier(); id != nil {
		return &ast.IdentifierType{Identifier: id}, id.Span, nil
	}
	return p.parseNonIdentTypes()
}

// ParseType parses a type annotation. Names that are not primitive types
// become IdentifierType references; whether they exist is not checked.
func (p *Parser) ParseType() (ast.Type, error) {
	t, _, err := p.parseAllTypes()
	return t, err
}
