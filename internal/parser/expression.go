package parser

import (
	"strconv"

	"github.com/zkcircuit/leoparse/internal/ast"
	"github.com/zkcircuit/leoparse/internal/lexer"
)

// binaryLevel is one precedence tier of left-associative operators.
type binaryLevel map[lexer.TokenType]ast.BinaryOperation

// Tiers from loosest to tightest binding; `**` and the unary operators are
// handled separately.
var binaryLevels = []binaryLevel{
	{lexer.TokenOr: ast.BinaryOr},
	{lexer.TokenAnd: ast.BinaryAnd},
	{lexer.TokenEq: ast.BinaryEq, lexer.TokenNe: ast.BinaryNe},
	{lexer.TokenLt: ast.BinaryLt, lexer.TokenLe: ast.BinaryLe, lexer.TokenGt: ast.BinaryGt, lexer.TokenGe: ast.BinaryGe},
	{lexer.TokenPlus: ast.BinaryAdd, lexer.TokenMinus: ast.BinarySub},
	{lexer.TokenMul: ast.BinaryMul, lexer.TokenDiv: ast.BinaryDiv},
}

// literalSuffixes are the type keywords that may directly follow an
// integer literal.
var literalSuffixes = map[lexer.TokenType]ast.Type{
	lexer.TokenField: ast.TypeField,
	lexer.TokenGroup: ast.TypeGroup,
}

// ParseExpression parses a full expression. Circuit literals are allowed
// again inside it, whatever the surrounding context.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	return p.parseExpression()
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	defer p.allowCircuitConstruction()()
	return p.parseConditionalExpression()
}

// parseConditionalExpression parses `cond ? a : b` and everything tighter,
// leaving the circuit literal setting as it is.
func (p *Parser) parseConditionalExpression() (ast.Expression, error) {
	cond, err := p.parseBinaryExpression(0)
	if err != nil {
		return nil, err
	}
	if !p.eat(lexer.TokenQuestion) {
		return cond, nil
	}

	ifTrue, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	ifFalse, err := p.parseConditionalExpression()
	if err != nil {
		return nil, err
	}
	return &ast.TernaryExpression{
		Condition: cond,
		IfTrue:    ifTrue,
		IfFalse:   ifFalse,
		Span:      cond.GetSpan().Union(ifFalse.GetSpan()),
	}, nil
}

// parseBinaryExpression parses the left-associative tier at index level.
func (p *Parser) parseBinaryExpression(level int) (ast.Expression, error) {
	if level == len(binaryLevels) {
		return p.parseExponentialExpression()
	}

	left, err := p.parseBinaryExpression(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryLevels[level][p.token.Type]
		if !ok {
			return left, nil
		}
		p.bump()
		right, err := p.parseBinaryExpression(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Left:  left,
			Op:    op,
			Right: right,
			Span:  left.GetSpan().Union(right.GetSpan()),
		}
	}
}

// parseExponentialExpression parses `a ** b`, which associates to the right.
func (p *Parser) parseExponentialExpression() (ast.Expression, error) {
	left, err := p.parseUnaryExpression()
	if err != nil {
		return nil, err
	}
	if !p.eat(lexer.TokenPow) {
		return left, nil
	}
	right, err := p.parseExponentialExpression()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{
		Left:  left,
		Op:    ast.BinaryPow,
		Right: right,
		Span:  left.GetSpan().Union(right.GetSpan()),
	}, nil
}

func (p *Parser) parseUnaryExpression() (ast.Expression, error) {
	var op ast.UnaryOperation
	switch p.token.Type {
	case lexer.TokenNot:
		op = ast.UnaryNot
	case lexer.TokenMinus:
		op = ast.UnaryNegate
	default:
		return p.parsePostfixExpression()
	}

	start := p.token.Span
	p.bump()
	inner, err := p.parseUnaryExpression()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpression{Op: op, Inner: inner, Span: start.Union(inner.GetSpan())}, nil
}

// parsePostfixExpression parses calls, member and tuple accesses and array
// indexing applied to a primary expression.
func (p *Parser) parsePostfixExpression() (ast.Expression, error) {
	expr, err := p.parsePrimaryExpression()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.check(lexer.TokenLParen):
			args, _, span, err := parseParenCommaList(p, expressionElement)
			if err != nil {
				return nil, err
			}
			if args == nil {
				args = []ast.Expression{}
			}
			expr = &ast.CallExpression{Function: expr, Arguments: args, Span: expr.GetSpan().Union(span)}

		case p.eat(lexer.TokenLBracket):
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(lexer.TokenRBracket)
			if err != nil {
				return nil, err
			}
			expr = &ast.ArrayAccess{Array: expr, Index: index, Span: expr.GetSpan().Union(end)}

		case p.eat(lexer.TokenDot):
			if p.eat(lexer.TokenInteger) {
				tok := p.prevToken
				index, err := strconv.Atoi(tok.Literal)
				if err != nil {
					return nil, newError(KindUnexpectedToken, tok.Span, "invalid tuple index '%s'", tok.Literal)
				}
				expr = &ast.TupleAccess{Inner: expr, Index: index, Span: expr.GetSpan().Union(tok.Span)}
				continue
			}
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberAccess{Inner: expr, Name: name, Span: expr.GetSpan().Union(name.Span)}

		default:
			return expr, nil
		}
	}
}

func expressionElement(p *Parser) (ast.Expression, bool, error) {
	expr, err := p.parseExpression()
	return expr, err == nil, err
}

func (p *Parser) parsePrimaryExpression() (ast.Expression, error) {
	tok := p.token
	switch tok.Type {
	case lexer.TokenInteger:
		p.bump()
		return p.parseIntegerSuffix(tok), nil
	case lexer.TokenTrue, lexer.TokenFalse:
		p.bump()
		return &ast.Literal{Kind: ast.LiteralBoolean, Value: tok.Literal, Span: tok.Span}, nil
	case lexer.TokenAddress:
		p.bump()
		return &ast.Literal{Kind: ast.LiteralAddress, Value: tok.Literal, Span: tok.Span}, nil
	case lexer.TokenChar:
		p.bump()
		return &ast.Literal{Kind: ast.LiteralChar, Value: tok.Literal, Span: tok.Span}, nil
	case lexer.TokenString:
		p.bump()
		return &ast.Literal{Kind: ast.LiteralString, Value: tok.Literal, Span: tok.Span}, nil
	case lexer.TokenLParen:
		return p.parseTupleExpression()
	case lexer.TokenLBracket:
		elems, _, span, err := parseDelimitedList(p, lexer.TokenLBracket, lexer.TokenComma, lexer.TokenRBracket, expressionElement)
		if err != nil {
			return nil, err
		}
		if elems == nil {
			elems = []ast.Expression{}
		}
		return &ast.ArrayExpression{Elements: elems, Span: span}, nil
	case lexer.TokenIdentifier:
		id := p.eatIdentifier()
		if p.CircuitConstructionAllowed() && p.check(lexer.TokenLBrace) {
			return p.parseCircuitInit(id)
		}
		return id, nil
	}
	return nil, errUnexpected(tok, "expression")
}

// parseIntegerSuffix attaches a type keyword written directly after an
// integer literal, as in `1u8` or `2field`.
func (p *Parser) parseIntegerSuffix(tok lexer.Token) *ast.Literal {
	lit := &ast.Literal{Kind: ast.LiteralInteger, Value: tok.Literal, Span: tok.Span}
	if p.token.Span.Start.Offset != tok.Span.End.Offset {
		return lit
	}

	suffix, ok := literalSuffixes[p.token.Type]
	if it, isInt := tokenToIntType(p.token.Type); isInt {
		suffix, ok = it, true
	}
	if !ok {
		return lit
	}
	p.bump()
	lit.Suffix = suffix
	lit.Span = tok.Span.Union(p.prevToken.Span)
	return lit
}

// parseTupleExpression parses `(a)` as a parenthesized expression and
// `()`, `(a,)` or `(a, b)` as tuples.
func (p *Parser) parseTupleExpression() (ast.Expression, error) {
	elems, trailing, span, err := parseParenCommaList(p, expressionElement)
	if err != nil {
		return nil, err
	}
	if len(elems) == 1 && !trailing {
		return elems[0], nil
	}
	if elems == nil {
		elems = []ast.Expression{}
	}
	return &ast.TupleExpression{Elements: elems, Span: span}, nil
}

// parseCircuitInit parses the member list of `Name { a: 1, b }`.
func (p *Parser) parseCircuitInit(name *ast.Identifier) (ast.Expression, error) {
	members, _, span, err := parseDelimitedList(p, lexer.TokenLBrace, lexer.TokenComma, lexer.TokenRBrace,
		func(p *Parser) (*ast.CircuitMember, bool, error) {
			id, err := p.expectIdent()
			if err != nil {
				return nil, false, err
			}
			member := &ast.CircuitMember{Identifier: id}
			if p.eat(lexer.TokenColon) {
				if member.Expression, err = p.parseExpression(); err != nil {
					return nil, false, err
				}
			}
			return member, true, nil
		})
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []*ast.CircuitMember{}
	}
	return &ast.CircuitInitExpression{Name: name, Members: members, Span: name.Span.Union(span)}, nil
}
