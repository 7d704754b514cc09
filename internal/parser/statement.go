package parser

import (
	"github.com/zkcircuit/leoparse/internal/ast"
	"github.com/zkcircuit/leoparse/internal/lexer"
)

var assignTokens = []lexer.TokenType{lexer.TokenAssign}

var consoleFunctions = []string{"assert", "error", "log"}

// constructAssignee turns the left-hand side of an assignment into an
// Assignee. Only bare identifiers are valid targets.
func constructAssignee(expr ast.Expression) (*ast.Assignee, error) {
	id, ok := expr.(*ast.Identifier)
	if !ok {
		return nil, errInvalidAssignmentTarget(expr.GetSpan())
	}
	return &ast.Assignee{
		Identifier: id,
		Accesses:   []ast.AssigneeAccess{},
		Span:       expr.GetSpan(),
	}, nil
}

// ParseStatement parses one statement, dispatching on the lookahead token.
func (p *Parser) ParseStatement() (ast.Statement, error) {
	switch p.token.Type {
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	case lexer.TokenIf:
		return p.parseConditionalStatement()
	case lexer.TokenFor:
		return p.parseLoopStatement()
	case lexer.TokenConsole:
		return p.parseConsoleStatement()
	case lexer.TokenLet, lexer.TokenConst:
		return p.parseDefinitionStatement()
	case lexer.TokenLBrace:
		return p.ParseBlock()
	default:
		return p.parseAssignStatement()
	}
}

// parseAssignStatement parses `target = value;`. A bare `expr;` is reported
// and replaced by a dummy statement covering it.
func (p *Parser) parseAssignStatement() (ast.Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.eatAny(assignTokens...) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		assignee, err := constructAssignee(expr)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenSemicolon); err != nil {
			return nil, err
		}
		return &ast.AssignStatement{
			Assignee:  assignee,
			Operation: ast.AssignOperationAssign,
			Value:     value,
			Span:      assignee.Span.Union(value.GetSpan()),
		}, nil
	}

	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	span := expr.GetSpan().Union(p.prevToken.Span)
	p.emitErr(errExprStmtsDisallowed(span))
	return &ast.DummyStatement{Span: span}, nil
}

// ParseBlock parses `{ statement* }`.
func (p *Parser) ParseBlock() (*ast.Block, error) {
	start, err := p.expect(lexer.TokenLBrace)
	if err != nil {
		return nil, err
	}

	statements := []ast.Statement{}
	for {
		if p.eat(lexer.TokenRBrace) {
			return &ast.Block{
				Statements: statements,
				Span:       start.Union(p.prevToken.Span),
			}, nil
		}

		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	start, err := p.expect(lexer.TokenReturn)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Expression: expr, Span: start.Union(expr.GetSpan())}, nil
}

// parseHeaderExpression parses an expression that is directly followed by
// a block, so a circuit literal cannot start inside it.
func (p *Parser) parseHeaderExpression() (ast.Expression, error) {
	defer p.disallowCircuitConstruction()()
	return p.parseConditionalExpression()
}

func (p *Parser) parseConditionalStatement() (*ast.ConditionalStatement, error) {
	start, err := p.expect(lexer.TokenIf)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseHeaderExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.ConditionalStatement{Condition: cond, Block: body, Span: start.Union(body.Span)}
	if p.eat(lexer.TokenElse) {
		next, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		switch next.(type) {
		case *ast.Block, *ast.ConditionalStatement:
		default:
			p.emitErr(errUnexpectedStatement(next.String(), "Block or Conditional", next.GetSpan()))
		}
		stmt.Next = next
		stmt.Span = start.Union(next.GetSpan())
	}
	return stmt, nil
}

func (p *Parser) parseLoopStatement() (*ast.IterationStatement, error) {
	start, err := p.expect(lexer.TokenFor)
	if err != nil {
		return nil, err
	}
	variable, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	typ, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenIn); err != nil {
		return nil, err
	}

	from, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenDotDot); err != nil {
		return nil, err
	}
	to, err := p.parseHeaderExpression()
	if err != nil {
		return nil, err
	}

	block, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.IterationStatement{
		Variable:  variable,
		Type:      typ,
		Start:     from,
		Stop:      to,
		Inclusive: false,
		Block:     block,
		Span:      start.Union(block.Span),
	}, nil
}

// parseConsoleArgs parses `("format", arg, ...)`. The first slot must be a
// string literal; anything else is reported and replaced by "".
func (p *Parser) parseConsoleArgs() (*ast.ConsoleArgs, error) {
	var format *string
	params, _, span, err := parseParenCommaList(p, func(p *Parser) (ast.Expression, bool, error) {
		if format != nil {
			expr, err := p.parseExpression()
			return expr, err == nil, err
		}

		p.bump()
		s := ""
		if tok := p.prevToken; tok.Type == lexer.TokenString {
			s = tok.Literal
		} else {
			p.emitErr(errUnexpectedStr(tok, "formatted string"))
		}
		format = &s
		return nil, false, nil
	})
	if err != nil {
		return nil, err
	}

	args := &ast.ConsoleArgs{Parameters: params, Span: span}
	if args.Parameters == nil {
		args.Parameters = []ast.Expression{}
	}
	if format != nil {
		args.String = *format
	}
	return args, nil
}

func (p *Parser) parseConsoleStatement() (*ast.ConsoleStatement, error) {
	keyword, err := p.expect(lexer.TokenConsole)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenDot); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var function ast.ConsoleFunction
	switch name.Name {
	case "assert":
		if _, err := p.expect(lexer.TokenLParen); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		function = &ast.ConsoleAssert{Expression: expr}
	case "error":
		args, err := p.parseConsoleArgs()
		if err != nil {
			return nil, err
		}
		function = &ast.ConsoleError{Args: args}
	default:
		if name.Name != "log" {
			p.emitErr(errUnexpectedIdent(name.Name, consoleFunctions, name.Span))
		}
		args, err := p.parseConsoleArgs()
		if err != nil {
			return nil, err
		}
		function = &ast.ConsoleLog{Args: args}
	}

	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ConsoleStatement{Function: function, Span: keyword.Union(function.GetSpan())}, nil
}

// parseVariableName parses one bound name; let bindings are mutable.
func (p *Parser) parseVariableName(decl ast.Declare) (*ast.VariableName, error) {
	id, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	return &ast.VariableName{
		Identifier: id,
		Mutable:    decl == ast.DeclareLet,
		Span:       id.Span,
	}, nil
}

func (p *Parser) parseDefinitionStatement() (*ast.DefinitionStatement, error) {
	declSpan, err := p.expectAny(lexer.TokenLet, lexer.TokenConst)
	if err != nil {
		return nil, err
	}
	decl := ast.DeclareLet
	if p.prevToken.Type == lexer.TokenConst {
		decl = ast.DeclareConst
	}

	var names []*ast.VariableName
	if p.peekIsLeftPar() {
		names, _, _, err = parseParenCommaList(p, func(p *Parser) (*ast.VariableName, bool, error) {
			v, err := p.parseVariableName(decl)
			return v, err == nil, err
		})
		if err != nil {
			return nil, err
		}
		switch len(names) {
		case 0:
			return nil, errUnexpected(p.prevToken, "'"+lexer.TokenIdentifier.String()+"'")
		case 1:
			p.emitErr(errInvalidParensAroundSingleVariable(names[0].Span))
		}
	} else {
		v, err := p.parseVariableName(decl)
		if err != nil {
			return nil, err
		}
		names = []*ast.VariableName{v}
	}

	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	typ, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	return &ast.DefinitionStatement{
		DeclarationType: decl,
		VariableNames:   names,
		Type:            typ,
		Value:           value,
		Span:            declSpan.Union(value.GetSpan()),
	}, nil
}
