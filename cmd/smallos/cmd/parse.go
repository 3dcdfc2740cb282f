package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/smallos-lang/internal/printer"
)

var (
	parseFormat   string
	parseTrim     bool
	parseDeepTrim bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a file",
	Long: `Tokenizes a source file and prints one row per token with its line,
kind, source text and decoded value.

Examples:
  smallos tokens counter.st
  cat counter.st | smallos tokens -`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the syntax tree of a file",
	Long: `Parses a source file and prints its syntax tree.

Formats:
  sexpr  compact S-expressions, one statement per line (default)
  yaml   one mapping per node with a "kind" key
  spew   dump of the Go data structures

Examples:
  smallos parse counter.st
  smallos parse --format yaml --deep-trim counter.st`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "sexpr", "output format: sexpr, yaml or spew")
	parseCmd.Flags().BoolVar(&parseTrim, "trim", false, "drop top-level statements after the first answer")
	parseCmd.Flags().BoolVar(&parseDeepTrim, "deep-trim", false, "drop unreachable statements in every method and block")
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	toks, err := newFrontend().Tokenize(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	printer.Tokens(cmd.OutOrStdout(), toks)
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("format") {
		cfg.Format = parseFormat
	}
	if cmd.Flags().Changed("trim") {
		cfg.Trim = parseTrim
	}
	if cmd.Flags().Changed("deep-trim") {
		cfg.DeepTrim = parseDeepTrim
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := readSource(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	prog, err := newFrontend().Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return printer.Print(cmd.OutOrStdout(), cfg.Format, prog)
}
