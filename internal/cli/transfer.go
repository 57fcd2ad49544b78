package cli

import (
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export ARCHIVE",
		Short: "Export cached ACIR's to a tar.gz archive",
		Long:  "Pack every cached ACIR into a gzip compressed tar archive at the given path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := loadOperation()
			if err != nil {
				return err
			}
			return op.Export(cmd.Context(), args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	return cmd
}

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import ARCHIVE",
		Short: "Import ACIR's from an archive",
		Long: `Unpack the ACIR's contained in an archive into the cache.

Only entries named <timestamp>.acir are imported; anything else is skipped.
Artifacts already cached under the same timestamp are overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := loadOperation()
			if err != nil {
				return err
			}
			return op.Import(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}

	return cmd
}
