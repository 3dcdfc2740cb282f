// Package printer renders tokens and syntax trees for the smallos CLI.
//
// Trees can be printed in three formats:
//
//	sexpr  the compact S-expression form of ast.Node.String, one statement per line
//	yaml   a YAML document with one mapping per node, tagged by a "kind" key
//	spew   a go-spew dump of the Go values, for debugging the parser itself
//
// Tokens are printed as a table.
package printer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"

	"github.com/metaphox/smallos-lang/ast"
	"github.com/metaphox/smallos-lang/internal/config"
)

// Print writes prog to w in the named format.
func Print(w io.Writer, format string, prog *ast.Program) error {
	switch format {
	case config.FormatSexpr:
		return Sexpr(w, prog)
	case config.FormatYAML:
		return YAML(w, prog)
	case config.FormatSpew:
		return Spew(w, prog)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Sexpr writes every statement of prog on its own line.
func Sexpr(w io.Writer, prog *ast.Program) error {
	_, err := io.WriteString(w, prog.String())
	return err
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// Spew writes a structural dump of prog.
func Spew(w io.Writer, prog *ast.Program) error {
	spewConfig.Fdump(w, prog)
	return nil
}

// Tokens writes toks as a table of line, kind, literal and decoded value.
func Tokens(w io.Writer, toks []ast.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Line", "Kind", "Literal", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, tok := range toks {
		table.Append([]string{
			strconv.Itoa(tok.Line),
			tok.Type.String(),
			tok.Literal,
			tokenValue(tok),
		})
	}
	table.Render()
}

// tokenValue formats the decoded payload of literal tokens and leaves the
// column empty for everything else.
func tokenValue(tok ast.Token) string {
	switch v := tok.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case byte:
		return strconv.Itoa(int(v))
	case string:
		if tok.Type == ast.STRING || tok.Type == ast.SYMBOL {
			return strconv.Quote(v)
		}
	}
	return ""
}
