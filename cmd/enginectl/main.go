// Command enginectl replays demo batches through the decision engine and
// provides operator utilities for tokens, certificates and notifications.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/watermelon/decision-engine/pkg/observability"
)

var Version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "enginectl",
		Short:         "Operator CLI for the decision engine",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(tailCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(certsCmd())
	rootCmd.AddCommand(migrateCmd())

	return rootCmd
}

func newLogger(cmd *cobra.Command, out io.Writer) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return observability.InitLogger(observability.LogConfig{
		Level:  level,
		Format: "text",
		Output: out,
	})
}
