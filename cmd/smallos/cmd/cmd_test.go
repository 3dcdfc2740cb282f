package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaphox/smallos-lang/frontend"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.st")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestParseCommand(t *testing.T) {
	path := writeSource(t, "x := 3 + 4.\n^x.\ny.\n")

	out, _, err := run(t, "", "parse", "--no-color", "--format", "sexpr", "--trim", path)
	require.NoError(t, err)
	assert.Equal(t, "x := (3 + 4).\n^x.\n", out)

	out, _, err = run(t, "", "parse", "--no-color", "--format", "yaml", "--trim=false", path)
	require.NoError(t, err)
	assert.Contains(t, out, "kind: Program")
	assert.Contains(t, out, "kind: Assignment")
	// three statements and the one binary message
	assert.Equal(t, 4, strings.Count(out, "- kind:"))
}

func TestParseCommand_Stdin(t *testing.T) {
	out, _, err := run(t, "a foo; bar.", "parse", "--no-color", "--format", "sexpr", "-")
	require.NoError(t, err)
	assert.Equal(t, "((a foo); bar).\n", out)
}

func TestParseCommand_SyntaxError(t *testing.T) {
	path := writeSource(t, "trait T is\n  var x.\nend\n")

	_, _, err := run(t, "", "parse", "--no-color", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Equal(t, 2, frontend.Line(err))
}

func TestTokensCommand(t *testing.T) {
	path := writeSource(t, "x := x1A.")

	out, _, err := run(t, "", "tokens", "--no-color", path)
	require.NoError(t, err)
	for _, want := range []string{"ID", "ASSIGN", "BYTE", "26", "PERIOD", "EOF"} {
		assert.Contains(t, out, want)
	}
}

func TestConfigCommand(t *testing.T) {
	t.Cleanup(func() { cfgFile = "" })
	cfgPath := filepath.Join(t.TempDir(), "smallos.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: spew\nprompt: \"st> \"\n"), 0o644))

	out, _, err := run(t, "", "--config", cfgPath, "--no-color", "--verbosity", "1", "config", "--as", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, `format = "spew"`)
	assert.Contains(t, out, `prompt = "st> "`)
	assert.Contains(t, out, "verbosity = 1")
	assert.Contains(t, out, "color = false")
}

func TestReadSource_Missing(t *testing.T) {
	_, err := readSource(filepath.Join(t.TempDir(), "nope.st"), nil)
	assert.ErrorContains(t, err, "nope.st")
}

func TestSession_Eval(t *testing.T) {
	var out bytes.Buffer
	s := &session{fe: frontend.New(frontend.WithLogger(log.New())), out: &out, format: "sexpr"}

	s.eval("obj at: 1 put: 2.")
	s.eval("x := $.")
	s.eval("3 + 4.")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "(obj at: 1 put: 2).", lines[0])
	assert.Contains(t, lines[1], "lexical error on line 1")
	assert.Equal(t, "(3 + 4).", lines[2])

	out.Reset()
	s.tokens = true
	s.eval("a")
	assert.Contains(t, out.String(), "EOF")
}
