package ast

// Inspect traverses the tree rooted at node depth-first, in source order. It
// calls f for every node; if f returns false the children of that node are
// skipped. Nil optional children (an uninitialised Field or TempDecl) are not
// visited.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	// Containers
	case *Program:
		walkList(n.Statements, f)
	case *Block:
		walkList(n.Statements, f)
	case *ClassDef:
		walkList(n.Members, f)
	case *TraitDef:
		walkList(n.Members, f)

	// Members and statements
	case *Method:
		Inspect(n.Signature, f)
		walkList(n.Statements, f)
	case *Requirement:
		Inspect(n.Signature, f)
	case *Field:
		Inspect(n.Value, f)
	case *TempDecl:
		Inspect(n.Value, f)
	case *Assignment:
		Inspect(n.Value, f)
	case *Answer:
		Inspect(n.Value, f)
	case *Pragma:
		Inspect(n.Message, f)
	case *ExprStmt:
		Inspect(n.Expr, f)

	// Expressions
	case *UnaryExpression:
		Inspect(n.Receiver, f)
		walkList(n.Messages, f)
	case *BinaryExpression:
		Inspect(n.Receiver, f)
		walkList(n.Messages, f)
	case *KeywordExpression:
		Inspect(n.Receiver, f)
		Inspect(n.Message, f)
	case *CascadeExpression:
		Inspect(n.Value, f)
		walkList(n.Cascade, f)
	case *Chain:
		walkList(n.Values, f)
	case *Array:
		walkList(n.Elements, f)

	// Messages
	case *BinaryMessage:
		Inspect(n.Argument, f)
	case *KeywordMessage:
		for _, a := range n.Args {
			Inspect(a.Value, f)
		}
	}
}

func walkList[T Node](nodes []T, f func(Node) bool) {
	for _, n := range nodes {
		Inspect(n, f)
	}
}

// Count returns the number of nodes in the tree rooted at node.
func Count(node Node) int {
	n := 0
	Inspect(node, func(Node) bool {
		n++
		return true
	})
	return n
}
