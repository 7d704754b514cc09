// Package ast defines the abstract syntax tree produced by the Leo parser.
//
// Nodes are built exactly once by the parser and are treated as immutable
// afterwards; ownership flows upward from the sub-parser that created a node
// to the block or statement that contains it. Every node carries the
// position.Span of the source text it was parsed from.
package ast

import (
	"fmt"
	"strings"

	"github.com/zkcircuit/leoparse/internal/position"
)

// Node is the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span covered by this node
	GetSpan() position.Span
	// String returns a Leo-like rendering of the node
	String() string
}

// Statement represents all statement nodes in the AST
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes in the AST
type Expression interface {
	Node
	expressionNode()
}

// Identifier is a name with the span it was written at. Two identifiers
// are equal when their names are equal, regardless of span.
type Identifier struct {
	Name string        `json:"name"`
	Span position.Span `json:"span"`
}

// NewIdentifier creates an identifier node.
func NewIdentifier(name string, span position.Span) *Identifier {
	return &Identifier{Name: name, Span: span}
}

func (i *Identifier) GetSpan() position.Span { return i.Span }
func (i *Identifier) String() string         { return i.Name }
func (i *Identifier) expressionNode()        {}

// Equal reports whether both identifiers carry the same name.
func (i *Identifier) Equal(other *Identifier) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.Name == other.Name
}

// ===== Program structure =====

// Program is the root of a parsed source file.
type Program struct {
	Name      string        `json:"name,omitempty"`
	Functions []*Function   `json:"functions"`
	Span      position.Span `json:"span"`
}

func (p *Program) GetSpan() position.Span { return p.Span }
func (p *Program) String() string {
	parts := make([]string, 0, len(p.Functions))
	for _, f := range p.Functions {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, "\n\n")
}

// Function is a top-level `function` declaration.
type Function struct {
	Identifier *Identifier      `json:"identifier"`
	Inputs     []*FunctionInput `json:"inputs"`
	Output     Type             `json:"output,omitempty"`
	Block      *Block           `json:"block"`
	Span       position.Span    `json:"span"`
}

func (f *Function) GetSpan() position.Span { return f.Span }
func (f *Function) String() string {
	inputs := make([]string, 0, len(f.Inputs))
	for _, in := range f.Inputs {
		inputs = append(inputs, in.String())
	}
	out := ""
	if f.Output != nil {
		out = " -> " + f.Output.String()
	}
	return fmt.Sprintf("function %s(%s)%s %s", f.Identifier, strings.Join(inputs, ", "), out, f.Block)
}

// FunctionInput is one parameter of a function.
type FunctionInput struct {
	Identifier *Identifier   `json:"identifier"`
	Const      bool          `json:"const"`
	Type       Type          `json:"type"`
	Span       position.Span `json:"span"`
}

func (in *FunctionInput) GetSpan() position.Span { return in.Span }
func (in *FunctionInput) String() string {
	if in.Const {
		return fmt.Sprintf("const %s: %s", in.Identifier, in.Type)
	}
	return fmt.Sprintf("%s: %s", in.Identifier, in.Type)
}
