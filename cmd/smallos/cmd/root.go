package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/metaphox/smallos-lang/frontend"
	"github.com/metaphox/smallos-lang/internal/config"
)

var (
	cfgFile   string
	verbosity int
	noColor   bool

	// cfg is the effective configuration, set before any sub-command runs.
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "smallos",
	Short: "smallos language front end",
	Long: `smallos tokenizes and parses programs written in smallos, a small
class-based language with Smalltalk-style message syntax.

Commands:
  tokens   - print the token stream of a file
  parse    - print the syntax tree of a file
  repl     - read and parse one line at a time
  config   - print the effective configuration`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command line and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().IntVar(&verbosity, "verbosity", 3, "log level: 0=crit 1=error 2=warn 3=info 4=debug 5=trace")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
}

// setup loads the configuration, applies flag overrides and installs the
// terminal log handler.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbosity") {
		c.Verbosity = verbosity
	}
	if noColor {
		c.Color = false
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	color.NoColor = !cfg.Color
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(cfg.Verbosity),
		log.StreamHandler(cmd.ErrOrStderr(), log.TerminalFormat(cfg.Color))))
	log.Debug("Configuration loaded", "file", cfgFile, "format", cfg.Format, "verbosity", cfg.Verbosity)
	return nil
}

// newFrontend builds a front end from the effective configuration.
func newFrontend() *frontend.Frontend {
	return frontend.New(
		frontend.WithLogger(log.Root()),
		frontend.WithTrim(cfg.Trim),
		frontend.WithDeepTrim(cfg.DeepTrim),
	)
}

// readSource returns the contents of the named file, or of in when name is "-".
func readSource(name string, in io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, color.RedString("error: %v", err))
}
