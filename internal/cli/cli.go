// Package cli implements the docstore command line interface.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/docstore"
	"github.com/jmgilman/go/docstore/internal/config"
	"github.com/jmgilman/go/docstore/internal/logging"
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

// StoreFactory builds the Store a command operates on.
type StoreFactory func(cfg *config.Config, logger *logging.Logger) (*docstore.Store, error)

// Option configures the root command.
type Option func(*app)

// WithStoreFactory replaces the default config-driven Store construction.
func WithStoreFactory(factory StoreFactory) Option {
	return func(a *app) {
		a.factory = factory
	}
}

// WithVersionInfo sets the build information reported by "version".
func WithVersionInfo(info VersionInfo) Option {
	return func(a *app) {
		a.version = info
	}
}

// app carries state shared by every subcommand of one invocation.
type app struct {
	cfgFile string
	output  string
	verbose bool

	version VersionInfo
	factory StoreFactory

	cfg   *config.Config
	store *docstore.Store
}

// NewRootCommand creates the docstore root command with all subcommands.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{
		version: VersionInfo{Version: "dev", Commit: "none", Date: "unknown", BuiltBy: "unknown"},
		factory: NewStore,
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "docstore",
		Short: "Manage folders and files under a documents root",
		Long: `docstore manages named folders and the files inside them beneath a single
documents root. The root defaults to the user's documents directory and can
be placed on local disk, in memory, or in a MinIO bucket.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().
		StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/docstore/config.yaml)")
	root.PersistentFlags().
		StringVarP(&a.output, "output", "o", formatText, "output format: text, json or yaml")
	root.PersistentFlags().
		BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newRootPathCommand(),
		a.newExistsCommand(),
		a.newMkdirCommand(),
		a.newRmdirCommand(),
		a.newMvCommand(),
		a.newWriteCommand(),
		a.newRmCommand(),
		a.newCatCommand(),
		a.newLsCommand(),
		a.newPurgeCommand(),
		a.newVersionCommand(),
	)
	return root
}

// Run executes the CLI with args and returns the process exit code. Errors
// are rendered to stderr in the selected output format.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer, opts ...Option) int {
	cmd := NewRootCommand(opts...)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		output, _ := cmd.PersistentFlags().GetString("output")
		writeError(stderr, output, err)
		return 1
	}
	return 0
}

// Execute runs the CLI against the process's standard streams and exits on
// failure.
func Execute(info VersionInfo) {
	if code := Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, WithVersionInfo(info)); code != 0 {
		os.Exit(code)
	}
}

// loadStore loads configuration and builds the store on first use.
func (a *app) loadStore(cmd *cobra.Command) (*docstore.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	if err := checkFormat(a.output); err != nil {
		return nil, err
	}

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return nil, err
	}
	if a.verbose {
		cfg.Log.Level = logging.LogLevelDebug.String()
	}
	a.cfg = cfg

	logCfg := cfg.Log.LoggerConfig()
	logCfg.Output = cmd.ErrOrStderr()
	store, err := a.factory(cfg, logging.NewLogger(logCfg))
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}
