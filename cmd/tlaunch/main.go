package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tlaunch/internal/cli"
	"tlaunch/internal/cli/commands"
	"tlaunch/internal/config"
	"tlaunch/internal/log"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "tlaunch",
		Short: "Boost.Test binary launcher",
		Long: `Launches compiled Boost.Test binaries one after another, forwarding arguments, ` +
			`parsing their XML logs and storing the results for later inspection.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Load config from defaults, .env and environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.Setup(cfg.LogLevel)

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	cmds, err := commands.NewCommands(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		if err := cmds.Close(); err != nil {
			log.Get().Warn("failed to close results storage", "error", err)
		}
	}()
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
