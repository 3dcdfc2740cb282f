package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/metaphox/smallos-lang/frontend"
	"github.com/metaphox/smallos-lang/internal/printer"
)

var replTokens bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read and parse one line at a time",
	Long: `Starts an interactive prompt. Every line is parsed on its own and its
syntax tree (or, with --tokens, its token stream) is printed. Errors are
reported and the prompt continues. Leave with Ctrl-D or Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&replTokens, "tokens", false, "print tokens instead of the syntax tree")
}

// session evaluates REPL input lines.
type session struct {
	fe     *frontend.Frontend
	out    io.Writer
	format string
	tokens bool
}

// eval parses one line and prints the result or the error.
func (s *session) eval(input string) {
	if s.tokens {
		toks, err := s.fe.Tokenize(input)
		if err != nil {
			printError(s.out, err)
			return
		}
		printer.Tokens(s.out, toks)
		return
	}

	prog, err := s.fe.Parse(input)
	if err != nil {
		printError(s.out, err)
		return
	}
	if err := printer.Print(s.out, s.format, prog); err != nil {
		printError(s.out, err)
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history := historyPath()
	if f, err := os.Open(history); err == nil {
		if _, err := line.ReadHistory(f); err != nil {
			log.Debug("Could not read REPL history", "path", history, "err", err)
		}
		f.Close()
	}

	s := &session{fe: newFrontend(), out: cmd.OutOrStdout(), format: cfg.Format, tokens: replTokens}
	for {
		input, err := line.Prompt(cfg.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		s.eval(input)
	}

	if f, err := os.Create(history); err == nil {
		if _, err := line.WriteHistory(f); err != nil {
			log.Warn("Could not write REPL history", "path", history, "err", err)
		}
		f.Close()
	}
	return nil
}

// historyPath returns the REPL history file in the user's home directory,
// falling back to the temp directory.
func historyPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, ".smallos_history")
}
