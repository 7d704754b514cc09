package main

import (
	"github.com/spf13/cobra"

	"github.com/zkcircuit/leoparse/internal/cli"
	"github.com/zkcircuit/leoparse/internal/diagnostics"
	"github.com/zkcircuit/leoparse/internal/driver"
)

// app holds the state shared by every subcommand once the configuration
// has been loaded.
type app struct {
	configPath string
	verbose    bool
	debug      bool
	color      string

	config *cli.Config
	logger *cli.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "leoparse",
		Short: "Parser for the Leo circuit language",
		Long: `leoparse turns Leo source into a syntax tree.

Commands:
  parse    Print the syntax tree of files as JSON or Leo text
  check    Report diagnostics for files or a package
  tokens   Print the token stream of a file
  watch    Re-check files whenever they change
  serve    Serve the parser over HTTP/3
  repl     Parse statements interactively
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", cli.DefaultConfigFile, "configuration file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVar(&a.debug, "debug", false, "enable debug output")
	flags.StringVar(&a.color, "color", "", "colorize diagnostics: auto, always or never")

	root.AddCommand(
		newParseCmd(a),
		newCheckCmd(a),
		newTokensCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
		newReplCmd(a),
		newVersionCmd(),
	)
	return root
}

// load reads the configuration file and applies flag overrides.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := cli.LoadConfig(a.configPath)
	if err != nil {
		return &cli.ExitError{Code: 2, Err: err}
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("color") {
		cfg.Color = a.color
	}
	if err := cfg.Validate(); err != nil {
		return &cli.ExitError{Code: 2, Err: err}
	}

	a.config = cfg
	a.logger = cli.NewLogger(cfg.Verbose, cfg.Debug)
	a.logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

func (a *app) driver() *driver.Driver {
	return driver.New(driver.Options{
		Workers:    a.config.Workers,
		ErrorLimit: a.config.ErrorLimit,
		Logger:     a.logger,
	})
}

func (a *app) colorMode() diagnostics.ColorMode {
	return a.config.ColorMode()
}

// errFailed signals that diagnostics were already printed.
var errFailed = &cli.ExitError{Code: 1}
