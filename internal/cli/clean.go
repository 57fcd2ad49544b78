package cli

import (
	"github.com/spf13/cobra"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "clean",
		Short:              "Clean available cache",
		Long:               "Remove the cache directory with everything in it and recreate it empty",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			op, err := loadOperation()
			if err != nil {
				return err
			}
			return op.Clean(cmd.ErrOrStderr())
		},
	}

	return cmd
}
