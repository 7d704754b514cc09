package parser

import (
	"github.com/zkcircuit/leoparse/internal/ast"
	"github.com/zkcircuit/leoparse/internal/lexer"
	"github.com/zkcircuit/leoparse/internal/position"
)

// ParseProgram parses a sequence of function declarations up to EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Name: p.filename, Functions: []*ast.Function{}}
	start := p.token.Span

	for !p.AtEOF() {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, fn)
	}

	program.Span = start
	if n := len(program.Functions); n > 0 {
		program.Span = position.Merge(program.Functions[0].Span, program.Functions[n-1].Span)
	}
	return program, nil
}

// ParseStatements parses statements up to EOF without an enclosing block.
func (p *Parser) ParseStatements() ([]ast.Statement, error) {
	statements := []ast.Statement{}
	for !p.AtEOF() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

// parseFunction parses `function name(inputs) [-> Type] { ... }`.
func (p *Parser) parseFunction() (*ast.Function, error) {
	start, err := p.expect(lexer.TokenFunction)
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	inputs, _, _, err := parseParenCommaList(p, func(p *Parser) (*ast.FunctionInput, bool, error) {
		in, err := p.parseFunctionInput()
		return in, err == nil, err
	})
	if err != nil {
		return nil, err
	}
	if inputs == nil {
		inputs = []*ast.FunctionInput{}
	}

	var output ast.Type
	if p.eat(lexer.TokenArrow) {
		if output, err = p.ParseType(); err != nil {
			return nil, err
		}
	}

	block, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		Identifier: name,
		Inputs:     inputs,
		Output:     output,
		Block:      block,
		Span:       start.Union(block.Span),
	}, nil
}

// parseFunctionInput parses `[const] name: Type`.
func (p *Parser) parseFunctionInput() (*ast.FunctionInput, error) {
	in := &ast.FunctionInput{}
	var start position.Span
	if p.eat(lexer.TokenConst) {
		in.Const = true
		start = p.prevToken.Span
	}

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	typ, typeSpan, err := p.parseAllTypes()
	if err != nil {
		return nil, err
	}

	in.Identifier = name
	in.Type = typ
	in.Span = position.Merge(start, name.Span, typeSpan)
	return in, nil
}
