package cli

import (
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command. Every argument is forwarded to the
// compiler untouched, flags included.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "cache [nargo command]",
		Short:              "Cache ACIR from output of nargo",
		Long:               "Run nargo with the given arguments plus the ACIR print flag and store its output in the cache",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE:               runCache,
	}

	return cmd
}

func runCache(cmd *cobra.Command, args []string) error {
	op, err := loadOperation()
	if err != nil {
		return err
	}

	_, err = op.Cache(cmd.Context(), args, cmd.OutOrStdout())
	return err
}
