package cli

import (
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all available ACIR's",
		Long: `List every cached ACIR with its UTC capture time.

Entries are printed in the order the file system returns them.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			op, err := loadOperation()
			if err != nil {
				return err
			}
			return op.List(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	return cmd
}
