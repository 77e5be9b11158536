package commands

import (
	"tlaunch/internal/cli"
	"tlaunch/internal/config"
	"tlaunch/internal/discovery"
	"tlaunch/internal/execution"
	"tlaunch/internal/parser"
	"tlaunch/internal/storage"
	"tlaunch/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	All      *AllCommand
	Launch   *LaunchCommand
	List     *ListCommand
	Failures *FailuresCommand

	storage storage.Storage
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) (*Commands, error) {
	st, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}

	resolver := execution.NewResolver(cfg)
	runner := execution.NewRunner(cfg, parser.NewBoostParser())
	formatter := ui.NewFormatter()
	filter := discovery.NewFilter()
	checker := discovery.NewChecker(resolver)
	errorViewer := ui.NewErrorViewer(st)

	return &Commands{
		All:      NewAllCommand(cfg, resolver, runner, st, formatter),
		Launch:   NewLaunchCommand(cfg, resolver, runner, st, formatter),
		List:     NewListCommand(cfg, filter, checker, formatter),
		Failures: NewFailuresCommand(cfg, st, formatter, errorViewer),
		storage:  st,
	}, nil
}

// Close releases the results storage
func (c *Commands) Close() error {
	if c.storage == nil {
		return nil
	}
	return c.storage.Close()
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}

	// All command
	allCmd := &cobra.Command{
		Use:   "all [args...]",
		Short: "Launch every test binary",
		Long: "Launch the built-in list of test binaries one after another, stopping at the first launch error. " +
			"All arguments are passed to every binary unchanged.",
		RunE:               c.All.Execute,
		PreRunE:            applyFlags,
		DisableFlagParsing: true,
	}
	rootCmd.AddCommand(allCmd)

	// Launch command
	launchCmd := &cobra.Command{
		Use:     "launch [flags] <binary> [args...]",
		Short:   "Launch a single test binary",
		Long:    "Run one test binary, print its parsed results and store them for the failures viewer",
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.Launch.Execute,
		PreRunE: applyFlags,
	}
	launchCmd.Flags().SetInterspersed(false)
	launchCmd.Flags().BoolVar(&flags.Valgrind, "valgrind", false, "Run the binary under valgrind")
	launchCmd.Flags().BoolVar(&flags.GDB, "gdb", false, "Run the binary under gdb (output is not parsed)")
	launchCmd.Flags().StringArrayVar(&flags.ToolArgs, "tool-arg", nil, "Extra argument for valgrind or gdb (repeatable)")
	launchCmd.Flags().BoolVar(&flags.Strict, "strict", false, "Exit with an error when any test case fails")
	launchCmd.MarkFlagsMutuallyExclusive("valgrind", "gdb")
	rootCmd.AddCommand(launchCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List test binaries",
		Long:    "List the built-in test binaries and whether each one can be found",
		Args:    cobra.NoArgs,
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter binaries by name pattern (supports wildcards, e.g. 'cargo-*' or '*unit*')")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View test failures interactively",
		Long:    "Display test failures from the stored launch results in an interactive viewer",
		Args:    cobra.NoArgs,
		RunE:    c.Failures.Execute,
		PreRunE: applyFlags,
	}
	failuresCmd.Flags().BoolVarP(&flags.Summary, "summary", "s", false, "Print launch statistics instead of opening the viewer")
	rootCmd.AddCommand(failuresCmd)
}
