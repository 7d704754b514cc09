package ast

// Walk traverses the tree rooted at node in depth-first pre-order. If fn
// returns false the children of that node are skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, f := range n.Functions {
			Walk(f, fn)
		}
	case *Function:
		Walk(n.Identifier, fn)
		for _, in := range n.Inputs {
			Walk(in, fn)
		}
		Walk(n.Block, fn)
	case *FunctionInput:
		Walk(n.Identifier, fn)

	case *Block:
		for _, s := range n.Statements {
			Walk(s, fn)
		}
	case *ReturnStatement:
		Walk(n.Expression, fn)
	case *ConditionalStatement:
		Walk(n.Condition, fn)
		Walk(n.Block, fn)
		if n.Next != nil {
			Walk(n.Next, fn)
		}
	case *IterationStatement:
		Walk(n.Variable, fn)
		Walk(n.Start, fn)
		Walk(n.Stop, fn)
		Walk(n.Block, fn)
	case *ConsoleStatement:
		Walk(n.Function, fn)
	case *ConsoleAssert:
		Walk(n.Expression, fn)
	case *ConsoleError:
		walkExpressions(n.Args.Parameters, fn)
	case *ConsoleLog:
		walkExpressions(n.Args.Parameters, fn)
	case *DefinitionStatement:
		for _, v := range n.VariableNames {
			Walk(v.Identifier, fn)
		}
		Walk(n.Value, fn)
	case *AssignStatement:
		Walk(n.Assignee.Identifier, fn)
		Walk(n.Value, fn)

	case *UnaryExpression:
		Walk(n.Inner, fn)
	case *BinaryExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *TernaryExpression:
		Walk(n.Condition, fn)
		Walk(n.IfTrue, fn)
		Walk(n.IfFalse, fn)
	case *CallExpression:
		Walk(n.Function, fn)
		walkExpressions(n.Arguments, fn)
	case *MemberAccess:
		Walk(n.Inner, fn)
	case *TupleAccess:
		Walk(n.Inner, fn)
	case *ArrayAccess:
		Walk(n.Array, fn)
		Walk(n.Index, fn)
	case *TupleExpression:
		walkExpressions(n.Elements, fn)
	case *ArrayExpression:
		walkExpressions(n.Elements, fn)
	case *CircuitInitExpression:
		Walk(n.Name, fn)
		for _, m := range n.Members {
			if m.Expression != nil {
				Walk(m.Expression, fn)
			}
		}
	}
}

func walkExpressions(exprs []Expression, fn func(Node) bool) {
	for _, e := range exprs {
		Walk(e, fn)
	}
}

// CountStatements returns the number of statements in the tree, nested
// ones included.
func CountStatements(node Node) int {
	count := 0
	Walk(node, func(n Node) bool {
		if _, ok := n.(Statement); ok {
			count++
		}
		return true
	})
	return count
}
