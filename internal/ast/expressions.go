package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zkcircuit/leoparse/internal/position"
)

// LiteralKind classifies a literal value.
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralBoolean
	LiteralAddress
	LiteralChar
	LiteralString
)

var literalKindNames = [...]string{
	LiteralInteger: "integer",
	LiteralBoolean: "boolean",
	LiteralAddress: "address",
	LiteralChar:    "char",
	LiteralString:  "string",
}

func (k LiteralKind) String() string { return literalKindNames[k] }

// MarshalText encodes the kind by name.
func (k LiteralKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Literal is a constant value. Integer literals may carry a type suffix
// (`1u8`, `2field`, `3group`); a nil Suffix marks an implicit literal.
type Literal struct {
	Kind   LiteralKind   `json:"literal_kind"`
	Value  string        `json:"value"`
	Suffix Type          `json:"suffix,omitempty"`
	Span   position.Span `json:"span"`
}

func (l *Literal) GetSpan() position.Span { return l.Span }
func (l *Literal) expressionNode()        {}
func (l *Literal) String() string {
	switch l.Kind {
	case LiteralString:
		return strconv.Quote(l.Value)
	case LiteralChar:
		return "'" + l.Value + "'"
	case LiteralInteger:
		if l.Suffix != nil {
			return l.Value + l.Suffix.String()
		}
	}
	return l.Value
}

func (l *Literal) MarshalJSON() ([]byte, error) {
	type alias Literal
	return marshalKind("Literal", (*alias)(l))
}

// UnaryOperation is a prefix operator.
type UnaryOperation int

const (
	UnaryNot UnaryOperation = iota
	UnaryNegate
)

func (op UnaryOperation) String() string {
	if op == UnaryNot {
		return "!"
	}
	return "-"
}

// MarshalText encodes the operator symbol.
func (op UnaryOperation) MarshalText() ([]byte, error) { return []byte(op.String()), nil }

// UnaryExpression is `<op><inner>`.
type UnaryExpression struct {
	Op    UnaryOperation `json:"op"`
	Inner Expression     `json:"inner"`
	Span  position.Span  `json:"span"`
}

func (u *UnaryExpression) GetSpan() position.Span { return u.Span }
func (u *UnaryExpression) expressionNode()        {}
func (u *UnaryExpression) String() string         { return u.Op.String() + u.Inner.String() }

func (u *UnaryExpression) MarshalJSON() ([]byte, error) {
	type alias UnaryExpression
	return marshalKind("Unary", (*alias)(u))
}

// BinaryOperation is an infix operator.
type BinaryOperation int

const (
	BinaryOr BinaryOperation = iota
	BinaryAnd
	BinaryEq
	BinaryNe
	BinaryLt
	BinaryLe
	BinaryGt
	BinaryGe
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryPow
)

var binaryOpNames = [...]string{
	BinaryOr: "||", BinaryAnd: "&&",
	BinaryEq: "==", BinaryNe: "!=",
	BinaryLt: "<", BinaryLe: "<=", BinaryGt: ">", BinaryGe: ">=",
	BinaryAdd: "+", BinarySub: "-", BinaryMul: "*", BinaryDiv: "/", BinaryPow: "**",
}

func (op BinaryOperation) String() string { return binaryOpNames[op] }

// MarshalText encodes the operator symbol.
func (op BinaryOperation) MarshalText() ([]byte, error) { return []byte(op.String()), nil }

// BinaryExpression is `<left> <op> <right>`.
type BinaryExpression struct {
	Left  Expression      `json:"left"`
	Op    BinaryOperation `json:"op"`
	Right Expression      `json:"right"`
	Span  position.Span   `json:"span"`
}

func (b *BinaryExpression) GetSpan() position.Span { return b.Span }
func (b *BinaryExpression) expressionNode()        {}
func (b *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

func (b *BinaryExpression) MarshalJSON() ([]byte, error) {
	type alias BinaryExpression
	return marshalKind("Binary", (*alias)(b))
}

// TernaryExpression is `<cond> ? <a> : <b>`.
type TernaryExpression struct {
	Condition Expression    `json:"condition"`
	IfTrue    Expression    `json:"if_true"`
	IfFalse   Expression    `json:"if_false"`
	Span      position.Span `json:"span"`
}

func (t *TernaryExpression) GetSpan() position.Span { return t.Span }
func (t *TernaryExpression) expressionNode()        {}
func (t *TernaryExpression) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", t.Condition, t.IfTrue, t.IfFalse)
}

func (t *TernaryExpression) MarshalJSON() ([]byte, error) {
	type alias TernaryExpression
	return marshalKind("Ternary", (*alias)(t))
}

// CallExpression is `<function>(<args>)`.
type CallExpression struct {
	Function  Expression    `json:"function"`
	Arguments []Expression  `json:"arguments"`
	Span      position.Span `json:"span"`
}

func (c *CallExpression) GetSpan() position.Span { return c.Span }
func (c *CallExpression) expressionNode()        {}
func (c *CallExpression) String() string {
	return fmt.Sprintf("%s(%s)", c.Function, joinExpressions(c.Arguments))
}

func (c *CallExpression) MarshalJSON() ([]byte, error) {
	type alias CallExpression
	return marshalKind("Call", (*alias)(c))
}

// MemberAccess is `<inner>.<name>`.
type MemberAccess struct {
	Inner Expression    `json:"inner"`
	Name  *Identifier   `json:"name"`
	Span  position.Span `json:"span"`
}

func (m *MemberAccess) GetSpan() position.Span { return m.Span }
func (m *MemberAccess) expressionNode()        {}
func (m *MemberAccess) String() string         { return fmt.Sprintf("%s.%s", m.Inner, m.Name) }

func (m *MemberAccess) MarshalJSON() ([]byte, error) {
	type alias MemberAccess
	return marshalKind("MemberAccess", (*alias)(m))
}

// TupleAccess is `<inner>.<index>`.
type TupleAccess struct {
	Inner Expression    `json:"inner"`
	Index int           `json:"index"`
	Span  position.Span `json:"span"`
}

func (t *TupleAccess) GetSpan() position.Span { return t.Span }
func (t *TupleAccess) expressionNode()        {}
func (t *TupleAccess) String() string         { return fmt.Sprintf("%s.%d", t.Inner, t.Index) }

func (t *TupleAccess) MarshalJSON() ([]byte, error) {
	type alias TupleAccess
	return marshalKind("TupleAccess", (*alias)(t))
}

// ArrayAccess is `<array>[<index>]`.
type ArrayAccess struct {
	Array Expression    `json:"array"`
	Index Expression    `json:"index"`
	Span  position.Span `json:"span"`
}

func (a *ArrayAccess) GetSpan() position.Span { return a.Span }
func (a *ArrayAccess) expressionNode()        {}
func (a *ArrayAccess) String() string         { return fmt.Sprintf("%s[%s]", a.Array, a.Index) }

func (a *ArrayAccess) MarshalJSON() ([]byte, error) {
	type alias ArrayAccess
	return marshalKind("ArrayAccess", (*alias)(a))
}

// TupleExpression is `(<a>, <b>, ...)`; the empty tuple is `()`.
type TupleExpression struct {
	Elements []Expression  `json:"elements"`
	Span     position.Span `json:"span"`
}

func (t *TupleExpression) GetSpan() position.Span { return t.Span }
func (t *TupleExpression) expressionNode()        {}
func (t *TupleExpression) String() string {
	if len(t.Elements) == 1 {
		return "(" + t.Elements[0].String() + ",)"
	}
	return "(" + joinExpressions(t.Elements) + ")"
}

func (t *TupleExpression) MarshalJSON() ([]byte, error) {
	type alias TupleExpression
	return marshalKind("Tuple", (*alias)(t))
}

// ArrayExpression is `[<a>, <b>, ...]`.
type ArrayExpression struct {
	Elements []Expression  `json:"elements"`
	Span     position.Span `json:"span"`
}

func (a *ArrayExpression) GetSpan() position.Span { return a.Span }
func (a *ArrayExpression) expressionNode()        {}
func (a *ArrayExpression) String() string         { return "[" + joinExpressions(a.Elements) + "]" }

func (a *ArrayExpression) MarshalJSON() ([]byte, error) {
	type alias ArrayExpression
	return marshalKind("Array", (*alias)(a))
}

// CircuitMember is one `name: expr` entry of a circuit literal; a nil
// Expression is the `name` shorthand.
type CircuitMember struct {
	Identifier *Identifier `json:"identifier"`
	Expression Expression  `json:"expression,omitempty"`
}

func (m *CircuitMember) String() string {
	if m.Expression == nil {
		return m.Identifier.Name
	}
	return fmt.Sprintf("%s: %s", m.Identifier, m.Expression)
}

// CircuitInitExpression is `Name { member, ... }`.
type CircuitInitExpression struct {
	Name    *Identifier      `json:"name"`
	Members []*CircuitMember `json:"members"`
	Span    position.Span    `json:"span"`
}

func (c *CircuitInitExpression) GetSpan() position.Span { return c.Span }
func (c *CircuitInitExpression) expressionNode()        {}
func (c *CircuitInitExpression) String() string {
	parts := make([]string, 0, len(c.Members))
	for _, m := range c.Members {
		parts = append(parts, m.String())
	}
	return fmt.Sprintf("%s { %s }", c.Name, strings.Join(parts, ", "))
}

func (c *CircuitInitExpression) MarshalJSON() ([]byte, error) {
	type alias CircuitInitExpression
	return marshalKind("CircuitInit", (*alias)(c))
}

func (i *Identifier) MarshalJSON() ([]byte, error) {
	type alias Identifier
	return marshalKind("Identifier", (*alias)(i))
}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
