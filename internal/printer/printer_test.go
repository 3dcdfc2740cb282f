package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/metaphox/smallos-lang/ast"
	"github.com/metaphox/smallos-lang/lexer"
	"github.com/metaphox/smallos-lang/parser"
)

const sample = `class P extending Object implementing T is
    var x := 1.5.
    def at: i put: v as ^#[x01]. end
end
dict at: 1 put: "one"; size.
`

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseString(src)
	require.NoError(t, err)
	return prog
}

func TestSexpr(t *testing.T) {
	prog := mustParse(t, "3 + 4 * 5. ^x.")
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, "sexpr", prog))
	assert.Equal(t, "(3 + (4 * 5)).\n^x.\n", buf.String())
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, "yaml", mustParse(t, sample)))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Program", doc["kind"])

	stmts := doc["statements"].([]any)
	require.Len(t, stmts, 2)

	class := stmts[0].(map[string]any)
	assert.Equal(t, "ClassDef", class["kind"])
	assert.Equal(t, "Object", class["parent"])
	assert.Equal(t, []any{"T"}, class["traits"])

	members := class["members"].([]any)
	field := members[0].(map[string]any)
	assert.Equal(t, "Field", field["kind"])
	assert.Equal(t, false, field["static"])
	assert.Equal(t, 1.5, field["value"].(map[string]any)["value"])

	method := members[1].(map[string]any)
	sig := method["signature"].(map[string]any)
	assert.Equal(t, "at:put:", sig["selector"])
	assert.Equal(t, []any{"i", "v"}, sig["params"])

	cascade := stmts[1].(map[string]any)["expr"].(map[string]any)
	assert.Equal(t, "CascadeExpression", cascade["kind"])
	msg := cascade["value"].(map[string]any)["message"].(map[string]any)
	assert.Equal(t, "one", msg["args"].(map[string]any)["put"].(map[string]any)["value"])
}

// TestYAML_EveryNodeHasKind walks the YAML tree and checks that every mapping
// describing a node carries a kind.
func TestYAML_EveryNodeHasKind(t *testing.T) {
	prog := mustParse(t, sample+"[:a | ^{a, #(nil), #s, true}.]. var t. @prim: 3\ntrait Q is require - y. end")
	root := Node(prog)

	var walk func(n *yaml.Node, isArgs bool)
	walk = func(n *yaml.Node, isArgs bool) {
		switch n.Kind {
		case yaml.MappingNode:
			if !isArgs {
				require.GreaterOrEqual(t, len(n.Content), 2)
				assert.Equal(t, "kind", n.Content[0].Value)
			}
			for i := 1; i < len(n.Content); i += 2 {
				walk(n.Content[i], n.Content[i-1].Value == "args")
			}
		case yaml.SequenceNode:
			for _, c := range n.Content {
				walk(c, false)
			}
		}
	}
	walk(root, false)
}

func TestYAML_OptionalValuesOmitted(t *testing.T) {
	n := Node(&ast.TempDecl{Name: "t"})
	keys := []string{}
	for i := 0; i < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	assert.Equal(t, []string{"kind", "name"}, keys)
}

func TestSpew(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, "spew", mustParse(t, "x.")))
	out := buf.String()
	assert.Contains(t, out, "ast.Identifier")
	assert.Contains(t, out, `"x"`)
	assert.NotContains(t, out, "0x", "pointer addresses should be hidden")
}

func TestPrint_UnknownFormat(t *testing.T) {
	err := Print(&bytes.Buffer{}, "xml", &ast.Program{})
	assert.ErrorContains(t, err, "unknown output format")
}

func TestTokens(t *testing.T) {
	toks, err := lexer.Tokenize("x := -5.\n#sym x1A \"s\"")
	require.NoError(t, err)

	var buf bytes.Buffer
	Tokens(&buf, toks)
	out := buf.String()

	for _, want := range []string{"Line", "Kind", "Literal", "Value", "ASSIGN", "-5", `"sym"`, "26", "EOF"} {
		assert.Contains(t, out, want)
	}
}
