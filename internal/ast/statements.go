package ast

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zkcircuit/leoparse/internal/position"
)

// Block is a braced sequence of statements. Its span runs from the
// opening to the closing brace.
type Block struct {
	Statements []Statement   `json:"statements"`
	Span       position.Span `json:"span"`
}

func (b *Block) GetSpan() position.Span { return b.Span }
func (b *Block) statementNode()         {}
func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		for _, line := range strings.Split(s.String(), "\n") {
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("}")
	return sb.String()
}

func (b *Block) MarshalJSON() ([]byte, error) {
	type alias Block
	return marshalKind("Block", (*alias)(b))
}

// ReturnStatement is `return <expr>;`.
type ReturnStatement struct {
	Expression Expression    `json:"expression"`
	Span       position.Span `json:"span"`
}

func (r *ReturnStatement) GetSpan() position.Span { return r.Span }
func (r *ReturnStatement) statementNode()         {}
func (r *ReturnStatement) String() string         { return fmt.Sprintf("return %s;", r.Expression) }

func (r *ReturnStatement) MarshalJSON() ([]byte, error) {
	type alias ReturnStatement
	return marshalKind("Return", (*alias)(r))
}

// ConditionalStatement is `if <cond> <block> [else <next>]`. Next is nil,
// a *Block or another *ConditionalStatement, forming a singly linked
// else-if chain.
type ConditionalStatement struct {
	Condition Expression    `json:"condition"`
	Block     *Block        `json:"block"`
	Next      Statement     `json:"next,omitempty"`
	Span      position.Span `json:"span"`
}

func (c *ConditionalStatement) GetSpan() position.Span { return c.Span }
func (c *ConditionalStatement) statementNode()         {}
func (c *ConditionalStatement) String() string {
	s := fmt.Sprintf("if %s %s", c.Condition, c.Block)
	if c.Next != nil {
		s += " else " + c.Next.String()
	}
	return s
}

func (c *ConditionalStatement) MarshalJSON() ([]byte, error) {
	type alias ConditionalStatement
	return marshalKind("Conditional", (*alias)(c))
}

// IterationStatement is `for <ident>: <type> in <start>..<stop> <block>`.
// Inclusive is always false: no inclusive range syntax exists.
type IterationStatement struct {
	Variable  *Identifier   `json:"variable"`
	Type      Type          `json:"type"`
	Start     Expression    `json:"start"`
	Stop      Expression    `json:"stop"`
	Inclusive bool          `json:"inclusive"`
	Block     *Block        `json:"block"`
	Span      position.Span `json:"span"`
}

func (it *IterationStatement) GetSpan() position.Span { return it.Span }
func (it *IterationStatement) statementNode()         {}
func (it *IterationStatement) String() string {
	return fmt.Sprintf("for %s: %s in %s..%s %s", it.Variable, it.Type, it.Start, it.Stop, it.Block)
}

func (it *IterationStatement) MarshalJSON() ([]byte, error) {
	type alias IterationStatement
	return marshalKind("Iteration", (*alias)(it))
}

// ConsoleFunction is the call carried by a console statement.
type ConsoleFunction interface {
	Node
	consoleFunction()
}

// ConsoleArgs is a format string followed by interpolation arguments.
type ConsoleArgs struct {
	String     string        `json:"string"`
	Parameters []Expression  `json:"parameters"`
	Span       position.Span `json:"span"`
}

func (a *ConsoleArgs) GetSpan() position.Span { return a.Span }
func (a *ConsoleArgs) render() string {
	parts := []string{fmt.Sprintf("%q", a.String)}
	for _, p := range a.Parameters {
		parts = append(parts, p.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ConsoleAssert is `console.assert(<expr>)`.
type ConsoleAssert struct {
	Expression Expression `json:"expression"`
}

func (c *ConsoleAssert) GetSpan() position.Span { return c.Expression.GetSpan() }
func (c *ConsoleAssert) String() string         { return fmt.Sprintf("assert(%s)", c.Expression) }
func (c *ConsoleAssert) consoleFunction()       {}

func (c *ConsoleAssert) MarshalJSON() ([]byte, error) {
	type alias ConsoleAssert
	return marshalKind("Assert", (*alias)(c))
}

// ConsoleError is `console.error(<args>)`.
type ConsoleError struct {
	Args *ConsoleArgs `json:"args"`
}

func (c *ConsoleError) GetSpan() position.Span { return c.Args.Span }
func (c *ConsoleError) String() string         { return "error" + c.Args.render() }
func (c *ConsoleError) consoleFunction()       {}

func (c *ConsoleError) MarshalJSON() ([]byte, error) {
	type alias ConsoleError
	return marshalKind("Error", (*alias)(c))
}

// ConsoleLog is `console.log(<args>)`.
type ConsoleLog struct {
	Args *ConsoleArgs `json:"args"`
}

func (c *ConsoleLog) GetSpan() position.Span { return c.Args.Span }
func (c *ConsoleLog) String() string         { return "log" + c.Args.render() }
func (c *ConsoleLog) consoleFunction()       {}

func (c *ConsoleLog) MarshalJSON() ([]byte, error) {
	type alias ConsoleLog
	return marshalKind("Log", (*alias)(c))
}

// ConsoleStatement is `console.<function>(...);`.
type ConsoleStatement struct {
	Function ConsoleFunction `json:"function"`
	Span     position.Span   `json:"span"`
}

func (c *ConsoleStatement) GetSpan() position.Span { return c.Span }
func (c *ConsoleStatement) statementNode()         {}
func (c *ConsoleStatement) String() string         { return fmt.Sprintf("console.%s;", c.Function) }

func (c *ConsoleStatement) MarshalJSON() ([]byte, error) {
	type alias ConsoleStatement
	return marshalKind("Console", (*alias)(c))
}

// Declare is the declaration kind of a definition statement.
type Declare int

const (
	DeclareLet Declare = iota
	DeclareConst
)

func (d Declare) String() string {
	if d == DeclareConst {
		return "const"
	}
	return "let"
}

// MarshalText encodes the declaration keyword.
func (d Declare) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// VariableName is one name bound by a definition statement.
type VariableName struct {
	Identifier *Identifier   `json:"identifier"`
	Mutable    bool          `json:"mutable"`
	Span       position.Span `json:"span"`
}

func (v *VariableName) GetSpan() position.Span { return v.Span }
func (v *VariableName) String() string         { return v.Identifier.Name }

// DefinitionStatement is `let|const <names>: <type> = <expr>;`.
type DefinitionStatement struct {
	DeclarationType Declare         `json:"declaration_type"`
	VariableNames   []*VariableName `json:"variable_names"`
	Type            Type            `json:"type"`
	Value           Expression      `json:"value"`
	Span            position.Span   `json:"span"`
}

func (d *DefinitionStatement) GetSpan() position.Span { return d.Span }
func (d *DefinitionStatement) statementNode()         {}
func (d *DefinitionStatement) String() string {
	names := make([]string, 0, len(d.VariableNames))
	for _, v := range d.VariableNames {
		names = append(names, v.String())
	}
	binding := names[0]
	if len(names) > 1 {
		binding = "(" + strings.Join(names, ", ") + ")"
	}
	return fmt.Sprintf("%s %s: %s = %s;", d.DeclarationType, binding, d.Type, d.Value)
}

func (d *DefinitionStatement) MarshalJSON() ([]byte, error) {
	type alias DefinitionStatement
	return marshalKind("Definition", (*alias)(d))
}

// AssigneeAccess is a field or index step on an assignment target.
// Nothing produces one yet: assignment targets are bare identifiers.
type AssigneeAccess interface {
	Node
	assigneeAccess()
}

// Assignee is the left-hand side of an assignment.
type Assignee struct {
	Identifier *Identifier      `json:"identifier"`
	Accesses   []AssigneeAccess `json:"accesses"`
	Span       position.Span    `json:"span"`
}

func (a *Assignee) GetSpan() position.Span { return a.Span }
func (a *Assignee) String() string {
	s := a.Identifier.Name
	for _, acc := range a.Accesses {
		s += acc.String()
	}
	return s
}

// AssignOperation is the operator of an assignment.
type AssignOperation int

const (
	AssignOperationAssign AssignOperation = iota
)

func (op AssignOperation) String() string { return "=" }

// MarshalText encodes the operator.
func (op AssignOperation) MarshalText() ([]byte, error) { return []byte(op.String()), nil }

// AssignStatement is `<assignee> = <value>;`.
type AssignStatement struct {
	Assignee  *Assignee       `json:"assignee"`
	Operation AssignOperation `json:"operation"`
	Value     Expression      `json:"value"`
	Span      position.Span   `json:"span"`
}

func (a *AssignStatement) GetSpan() position.Span { return a.Span }
func (a *AssignStatement) statementNode()         {}
func (a *AssignStatement) String() string {
	return fmt.Sprintf("%s %s %s;", a.Assignee, a.Operation, a.Value)
}

func (a *AssignStatement) MarshalJSON() ([]byte, error) {
	type alias AssignStatement
	return marshalKind("Assign", (*alias)(a))
}

// DummyStatement stands in for a statement the parser rejected but
// recovered from. It behaves like an empty block.
type DummyStatement struct {
	Span position.Span `json:"span"`
}

func (d *DummyStatement) GetSpan() position.Span { return d.Span }
func (d *DummyStatement) statementNode()         {}
func (d *DummyStatement) String() string         { return "{}" }

func (d *DummyStatement) MarshalJSON() ([]byte, error) {
	type alias DummyStatement
	return marshalKind("Dummy", (*alias)(d))
}

// marshalKind encodes v with a leading "kind" discriminator.
func marshalKind(kind string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head := fmt.Sprintf(`{"kind":%q`, kind)
	if len(body) <= 2 {
		return []byte(head + "}"), nil
	}
	return []byte(head + "," + string(body[1:])), nil
}
