package printer

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/metaphox/smallos-lang/ast"
)

// YAML writes prog as a YAML document.
func YAML(w io.Writer, prog *ast.Program) error {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{Node(prog)}}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Node converts an AST node into a YAML mapping whose "kind" key names the
// node type. Absent optional children are omitted.
func Node(n ast.Node) *yaml.Node {
	switch n := n.(type) {
	case *ast.Program:
		return mapping("Program").seq("statements", list(n.Statements)).node

	// Statements
	case *ast.ExprStmt:
		return mapping("ExprStmt").add("expr", Node(n.Expr)).node
	case *ast.Assignment:
		return mapping("Assignment").str("name", n.Name).add("value", Node(n.Value)).node
	case *ast.TempDecl:
		return mapping("TempDecl").str("name", n.Name).opt("value", n.Value).node
	case *ast.Answer:
		return mapping("Answer").add("value", Node(n.Value)).node
	case *ast.Pragma:
		return mapping("Pragma").add("message", Node(n.Message)).node
	case *ast.ClassDef:
		m := mapping("ClassDef").str("name", n.Name)
		if n.Parent != "" {
			m.str("parent", n.Parent)
		}
		if n.Traits != nil {
			m.seq("traits", strs(n.Traits))
		}
		return m.seq("members", list(n.Members)).node
	case *ast.TraitDef:
		m := mapping("TraitDef").str("name", n.Name)
		if n.Parent != "" {
			m.str("parent", n.Parent)
		}
		return m.seq("members", list(n.Members)).node

	// Members
	case *ast.Field:
		return mapping("Field").boolean("static", n.Static).str("name", n.Name).opt("value", n.Value).node
	case *ast.Method:
		return mapping("Method").boolean("static", n.Static).
			add("signature", Node(n.Signature)).
			seq("statements", list(n.Statements)).node
	case *ast.Requirement:
		return mapping("Requirement").add("signature", Node(n.Signature)).node

	// Signatures
	case *ast.UnarySignature:
		return mapping("UnarySignature").str("selector", n.Name).node
	case *ast.BinarySignature:
		return mapping("BinarySignature").str("selector", n.Operator).str("param", n.Param).node
	case *ast.KeywordSignature:
		return mapping("KeywordSignature").str("selector", n.Name).seq("params", strs(n.Params)).node

	// Expressions
	case *ast.UnaryExpression:
		return mapping("UnaryExpression").add("receiver", Node(n.Receiver)).seq("messages", list(n.Messages)).node
	case *ast.BinaryExpression:
		return mapping("BinaryExpression").add("receiver", Node(n.Receiver)).seq("messages", list(n.Messages)).node
	case *ast.KeywordExpression:
		return mapping("KeywordExpression").add("receiver", Node(n.Receiver)).add("message", Node(n.Message)).node
	case *ast.CascadeExpression:
		return mapping("CascadeExpression").add("value", Node(n.Value)).seq("cascade", list(n.Cascade)).node

	// Messages
	case *ast.UnaryMessage:
		return mapping("UnaryMessage").str("selector", n.Name).node
	case *ast.BinaryMessage:
		return mapping("BinaryMessage").str("selector", n.Operator).add("argument", Node(n.Argument)).node
	case *ast.KeywordMessage:
		args := &yaml.Node{Kind: yaml.MappingNode}
		for _, a := range n.Args {
			args.Content = append(args.Content, scalar("!!str", a.Keyword), Node(a.Value))
		}
		return mapping("KeywordMessage").str("selector", n.Name).add("args", args).node

	// Values
	case *ast.Identifier:
		return mapping("Identifier").str("name", n.Name).node
	case *ast.Number:
		if n.IsFloat {
			return mapping("Number").add("value", scalar("!!float", n.String())).node
		}
		return mapping("Number").add("value", scalar("!!int", n.String())).node
	case *ast.String:
		return mapping("String").str("value", n.Value).node
	case *ast.Symbol:
		return mapping("Symbol").str("name", n.Name).node
	case *ast.Boolean:
		return mapping("Boolean").boolean("value", n.Value).node
	case *ast.Nil:
		return mapping("Nil").node
	case *ast.Chain:
		return mapping("Chain").seq("values", list(n.Values)).node
	case *ast.Array:
		return mapping("Array").seq("elements", list(n.Elements)).node
	case *ast.ByteArray:
		bytes := make([]*yaml.Node, len(n.Values))
		for i, b := range n.Values {
			bytes[i] = scalar("!!int", strconv.Itoa(int(b)))
		}
		return mapping("ByteArray").seq("values", bytes).node
	case *ast.Block:
		return mapping("Block").seq("params", strs(n.Params)).seq("statements", list(n.Statements)).node
	}
	return scalar("!!null", "null")
}

// ── Builders ──────────────────────────────────────────────────────────────────

type mapBuilder struct {
	node *yaml.Node
}

func mapping(kind string) *mapBuilder {
	m := &mapBuilder{node: &yaml.Node{Kind: yaml.MappingNode}}
	return m.str("kind", kind)
}

func (m *mapBuilder) add(key string, value *yaml.Node) *mapBuilder {
	m.node.Content = append(m.node.Content, scalar("!!str", key), value)
	return m
}

func (m *mapBuilder) str(key, value string) *mapBuilder {
	return m.add(key, scalar("!!str", value))
}

func (m *mapBuilder) boolean(key string, value bool) *mapBuilder {
	return m.add(key, scalar("!!bool", strconv.FormatBool(value)))
}

// opt adds value unless it is nil.
func (m *mapBuilder) opt(key string, value ast.Expression) *mapBuilder {
	if value == nil {
		return m
	}
	return m.add(key, Node(value))
}

func (m *mapBuilder) seq(key string, items []*yaml.Node) *mapBuilder {
	return m.add(key, &yaml.Node{Kind: yaml.SequenceNode, Content: items})
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func list[T ast.Node](nodes []T) []*yaml.Node {
	out := make([]*yaml.Node, len(nodes))
	for i, n := range nodes {
		out[i] = Node(n)
	}
	return out
}

func strs(ss []string) []*yaml.Node {
	out := make([]*yaml.Node, len(ss))
	for i, s := range ss {
		out[i] = scalar("!!str", s)
	}
	return out
}
