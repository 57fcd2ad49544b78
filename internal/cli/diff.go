package cli

import (
	"github.com/spf13/cobra"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [timestamp1] [timestamp2]",
		Short: "Check difference between ACIR's",
		Long: `Compare two cached ACIR's with the configured diff tool.

With one timestamp the artifact is compared against the newest cached one.
With two timestamps the two artifacts are compared in the given order.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE:               runDiff,
	}

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	op, err := loadOperation()
	if err != nil {
		return err
	}

	handled, err := op.Diff(cmd.Context(), args, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if !handled {
		PrintHelp(cmd.ErrOrStderr())
	}
	return nil
}
