// Package trim removes unreachable statements from parsed programs.
//
// A statement list is cut right after its first answer (^expr.), since nothing
// after an answer in the same method, block or program can ever run. [Node]
// trims a single statement-bearing node; [Tree] trims every one reachable from
// a program.
//
// Trimming never modifies its input. The result shares unchanged subtrees with
// the input, which is safe because nodes are immutable once parsed.
package trim

import "github.com/metaphox/smallos-lang/ast"

// Node returns a copy of a Program, Method or Block whose statement list ends
// with the first Answer, if there is one. Only the top-level list is
// trimmed; nested blocks and methods are left as they are. Any other node is
// returned unchanged.
func Node(n ast.Node) ast.Node {
	switch n := n.(type) {
	case *ast.Program:
		return &ast.Program{Statements: Statements(n.Statements)}
	case *ast.Method:
		return &ast.Method{Static: n.Static, Signature: n.Signature, Statements: Statements(n.Statements)}
	case *ast.Block:
		return &ast.Block{Params: n.Params, Statements: Statements(n.Statements)}
	default:
		return n
	}
}

// Statements returns a new slice holding stmts up to and including the first
// Answer. Without an Answer it holds all of stmts.
func Statements(stmts []ast.Statement) []ast.Statement {
	cut := stmts[:reachable(stmts)]
	if len(cut) == 0 {
		return nil
	}
	return append([]ast.Statement(nil), cut...)
}

// reachable returns the number of statements that can execute.
func reachable(stmts []ast.Statement) int {
	for i, s := range stmts {
		if _, ok := s.(*ast.Answer); ok {
			return i + 1
		}
	}
	return len(stmts)
}
