package trim

import "github.com/metaphox/smallos-lang/ast"

// Tree trims the program and every method body and block reachable from it,
// however deeply nested. Only the nodes on the path to a trimmed list are
// rebuilt; untouched subtrees are shared with p. The returned program always
// owns its statement slice.
func Tree(p *ast.Program) *ast.Program {
	if p == nil {
		return nil
	}
	stmts, changed := statements(p.Statements)
	if !changed && len(stmts) > 0 {
		stmts = append([]ast.Statement(nil), stmts...)
	}
	return &ast.Program{Statements: stmts}
}

// Every helper below returns the (possibly new) node and whether it differs
// from its argument.

func statements(list []ast.Statement) ([]ast.Statement, bool) {
	cut := list[:reachable(list)]
	out, changed := mapList(cut, statement)
	if !changed && len(cut) != len(list) {
		out = append([]ast.Statement(nil), cut...)
		changed = true
	}
	return out, changed
}

func statement(s ast.Statement) (ast.Statement, bool) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		if e, ok := expression(n.Expr); ok {
			return &ast.ExprStmt{Expr: e}, true
		}
	case *ast.Assignment:
		if e, ok := expression(n.Value); ok {
			return &ast.Assignment{Name: n.Name, Value: e}, true
		}
	case *ast.TempDecl:
		if e, ok := expression(n.Value); ok {
			return &ast.TempDecl{Name: n.Name, Value: e}, true
		}
	case *ast.Answer:
		if e, ok := expression(n.Value); ok {
			return &ast.Answer{Value: e}, true
		}
	case *ast.Pragma:
		if m, ok := message(n.Message); ok {
			return &ast.Pragma{Message: m}, true
		}
	case *ast.ClassDef:
		if ms, ok := mapList(n.Members, member); ok {
			return &ast.ClassDef{Name: n.Name, Parent: n.Parent, Traits: n.Traits, Members: ms}, true
		}
	case *ast.TraitDef:
		if ms, ok := mapList(n.Members, member); ok {
			return &ast.TraitDef{Name: n.Name, Parent: n.Parent, Members: ms}, true
		}
	}
	return s, false
}

func member(m ast.Member) (ast.Member, bool) {
	switch n := m.(type) {
	case *ast.Method:
		if body, ok := statements(n.Statements); ok {
			return &ast.Method{Static: n.Static, Signature: n.Signature, Statements: body}, true
		}
	case *ast.Field:
		if e, ok := expression(n.Value); ok {
			return &ast.Field{Static: n.Static, Name: n.Name, Value: e}, true
		}
	case *ast.Pragma:
		if msg, ok := message(n.Message); ok {
			return &ast.Pragma{Message: msg}, true
		}
	}
	return m, false
}

func expression(e ast.Expression) (ast.Expression, bool) {
	switch n := e.(type) {
	case *ast.Block:
		if body, ok := statements(n.Statements); ok {
			return &ast.Block{Params: n.Params, Statements: body}, true
		}
	case *ast.Chain:
		if vs, ok := mapList(n.Values, expression); ok {
			return &ast.Chain{Values: vs}, true
		}
	case *ast.Array:
		if es, ok := mapList(n.Elements, expression); ok {
			return &ast.Array{Elements: es}, true
		}
	case *ast.UnaryExpression:
		if r, ok := expression(n.Receiver); ok {
			return &ast.UnaryExpression{Receiver: r, Messages: n.Messages}, true
		}
	case *ast.BinaryExpression:
		r, rok := expression(n.Receiver)
		ms, mok := mapList(n.Messages, binaryMessage)
		if rok || mok {
			return &ast.BinaryExpression{Receiver: r, Messages: ms}, true
		}
	case *ast.KeywordExpression:
		r, rok := expression(n.Receiver)
		m, mok := keywordMessage(n.Message)
		if rok || mok {
			return &ast.KeywordExpression{Receiver: r, Message: m}, true
		}
	case *ast.CascadeExpression:
		v, vok := expression(n.Value)
		ms, mok := mapList(n.Cascade, message)
		if vok || mok {
			return &ast.CascadeExpression{Value: v, Cascade: ms}, true
		}
	}
	return e, false
}

func message(m ast.Message) (ast.Message, bool) {
	switch n := m.(type) {
	case *ast.BinaryMessage:
		if b, ok := binaryMessage(n); ok {
			return b, true
		}
	case *ast.KeywordMessage:
		if k, ok := keywordMessage(n); ok {
			return k, true
		}
	}
	return m, false
}

func binaryMessage(m *ast.BinaryMessage) (*ast.BinaryMessage, bool) {
	if arg, ok := expression(m.Argument); ok {
		return &ast.BinaryMessage{Operator: m.Operator, Argument: arg}, true
	}
	return m, false
}

func keywordMessage(m *ast.KeywordMessage) (*ast.KeywordMessage, bool) {
	args, ok := mapList(m.Args, func(a ast.KeywordArg) (ast.KeywordArg, bool) {
		v, ok := expression(a.Value)
		return ast.KeywordArg{Keyword: a.Keyword, Value: v}, ok
	})
	if !ok {
		return m, false
	}
	return &ast.KeywordMessage{Name: m.Name, Args: args}, true
}

// mapList applies f to every element and copies the slice on the first change.
func mapList[T any](list []T, f func(T) (T, bool)) ([]T, bool) {
	var out []T
	for i, x := range list {
		y, changed := f(x)
		if !changed {
			continue
		}
		if out == nil {
			out = append([]T(nil), list...)
		}
		out[i] = y
	}
	if out == nil {
		return list, false
	}
	return out, true
}
