package trim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaphox/smallos-lang/ast"
	"github.com/metaphox/smallos-lang/parser"
	"github.com/metaphox/smallos-lang/trim"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseString(src)
	require.NoError(t, err)
	return prog
}

// ── Node ──────────────────────────────────────────────────────────────────────

func TestNode_Program(t *testing.T) {
	prog := mustParse(t, "a. ^b. c. d.")
	before := prog.String()

	got, ok := trim.Node(prog).(*ast.Program)
	require.True(t, ok, "trim.Node(*Program) must return a *Program")

	assert.Equal(t, "a.\n^b.\n", got.String())
	assert.Len(t, prog.Statements, 4, "input program was modified")
	assert.Equal(t, before, prog.String())
	assert.NotSame(t, prog, got)
}

func TestNode_NoAnswer(t *testing.T) {
	prog := mustParse(t, "a. b.")
	got := trim.Node(prog).(*ast.Program)
	assert.Equal(t, prog.String(), got.String())
	assert.NotSame(t, prog, got)
}

func TestNode_Empty(t *testing.T) {
	got := trim.Node(&ast.Program{}).(*ast.Program)
	assert.Empty(t, got.Statements)
}

func TestNode_Method(t *testing.T) {
	class := mustParse(t, "class A is static def at: i as x. ^i. y. end end").Statements[0].(*ast.ClassDef)
	m := class.Members[0].(*ast.Method)

	got, ok := trim.Node(m).(*ast.Method)
	require.True(t, ok)
	assert.True(t, got.Static)
	assert.Same(t, m.Signature, got.Signature)
	assert.Len(t, got.Statements, 2)
	assert.Len(t, m.Statements, 3)
}

func TestNode_Block(t *testing.T) {
	blk := mustParse(t, "[:a b| ^a. b.].").Statements[0].(*ast.ExprStmt).Expr.(*ast.Block)

	got, ok := trim.Node(blk).(*ast.Block)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got.Params)
	assert.Equal(t, "[:a b| ^a.]", got.String())
}

// TestNode_OnlyTopLevel checks that Node leaves nested statement lists alone.
func TestNode_OnlyTopLevel(t *testing.T) {
	prog := mustParse(t, "[^1. 2.]. ^3. 4.")
	got := trim.Node(prog).(*ast.Program)
	assert.Equal(t, "[^1. 2.].\n^3.\n", got.String())
}

func TestNode_OtherNodesUnchanged(t *testing.T) {
	id := &ast.Identifier{Name: "x"}
	assert.Same(t, id, trim.Node(id))

	def := mustParse(t, "class A is def f as ^1. 2. end end").Statements[0]
	assert.Same(t, def, trim.Node(def))
}

func TestNode_Idempotent(t *testing.T) {
	for _, src := range []string{"", "a.", "a. ^b. c.", "^a. ^b."} {
		once := trim.Node(mustParse(t, src))
		twice := trim.Node(once)
		assert.Equal(t, once.String(), twice.String(), "source %q", src)
	}
}

// ── Statements ────────────────────────────────────────────────────────────────

func TestStatements_FreshSlice(t *testing.T) {
	stmts := mustParse(t, "a. b.").Statements
	got := trim.Statements(stmts)
	require.Len(t, got, 2)

	got[0] = &ast.Answer{Value: &ast.Nil{}}
	assert.IsType(t, &ast.ExprStmt{}, stmts[0], "Statements shares its result with the input")
}

func TestStatements_FirstAnswerWins(t *testing.T) {
	stmts := mustParse(t, "^a. ^b.").Statements
	got := trim.Statements(stmts)
	require.Len(t, got, 1)
	assert.Same(t, stmts[0], got[0])
}

// ── Tree ──────────────────────────────────────────────────────────────────────

func TestTree_Nested(t *testing.T) {
	src := `
class A is
    var f := [^1. 2.].
    def m as
        x do: [:e | ^e. dead.].
        ^x.
        dead.
    end
    def clean as ^1. end
end
trait T is def t as ^1. 2. end end
y := {[^1. 2.], #([^3. 4.])}.
z at: [^5. 6.] put: 1 + [^7. 8.]; foo: [^9. 10.].
^0.
unreachable.`
	prog := mustParse(t, src)
	before := prog.String()

	got := trim.Tree(prog)

	want := mustParse(t, `
class A is
    var f := [^1.].
    def m as
        x do: [:e | ^e.].
        ^x.
    end
    def clean as ^1. end
end
trait T is def t as ^1. end end
y := {[^1.], #([^3.])}.
z at: [^5.] put: 1 + [^7.]; foo: [^9.].
^0.`)
	assert.Equal(t, want.String(), got.String())
	assert.Equal(t, before, prog.String(), "input tree was modified")
}

// TestTree_SharesUntouchedSubtrees checks that only containers on the path to
// a trimmed list are rebuilt.
func TestTree_SharesUntouchedSubtrees(t *testing.T) {
	prog := mustParse(t, "class A is def a as ^1. end def b as ^1. 2. end end\nx foo: [1.].")
	got := trim.Tree(prog)

	class, gotClass := prog.Statements[0].(*ast.ClassDef), got.Statements[0].(*ast.ClassDef)
	assert.NotSame(t, class, gotClass)
	assert.Same(t, class.Members[0], gotClass.Members[0])
	assert.NotSame(t, class.Members[1], gotClass.Members[1])
	assert.Same(t, prog.Statements[1], got.Statements[1])
}

func TestTree_UntrimmedProgramOwnsStatements(t *testing.T) {
	prog := mustParse(t, "x foo. ^x.")
	got := trim.Tree(prog)
	require.Len(t, got.Statements, 2)

	got.Statements[0] = &ast.Answer{Value: &ast.Nil{}}
	assert.IsType(t, &ast.ExprStmt{}, prog.Statements[0], "Tree shares its statement slice with the input")
	assert.Same(t, prog.Statements[1], got.Statements[1])
}

func TestTree_Idempotent(t *testing.T) {
	prog := mustParse(t, "b := [^1. [^2. 3.]. 4.]. ^b. x.")
	once := trim.Tree(prog)
	twice := trim.Tree(once)
	assert.Equal(t, once.String(), twice.String())
	assert.Equal(t, "b := [^1.].\n^b.\n", once.String())
}

func TestTree_Nil(t *testing.T) {
	assert.Nil(t, trim.Tree(nil))
}
