package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/narma/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "narma",
		Short: "A cache manager for nargo ACIR output",
		Long: `narma runs nargo, stores the ACIR it prints under ./.narma-cache and
lets you list, diff and clean the cached snapshots.`,
		// Unknown first tokens land here and print the help text.
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetHelpFunc(cli.HelpFunc)

	cmd.AddCommand(
		cli.NewCacheCmd(),
		cli.NewDiffCmd(),
		cli.NewListCmd(),
		cli.NewCleanCmd(),
		cli.NewInfoCmd(),
		cli.NewExportCmd(),
		cli.NewImportCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
