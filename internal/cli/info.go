package cli

import (
	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show cache size and artifact count",
		Long:  "Display the cache directory, the number of cached ACIR's, their total size and the capture time range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			op, err := loadOperation()
			if err != nil {
				return err
			}
			return op.Info(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	return cmd
}
