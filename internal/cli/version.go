package cli

import (
	"fmt"

	"github.com/glorpus-work/narma/internal/logger"
	"github.com/glorpus-work/narma/pkg/toolchain"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show narma and nargo versions",
		Long:  "Display version information for narma and the detected compiler",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}

	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "narma version %s\n", Version)
	fmt.Fprintf(out, "Build date: %s\n", BuildDate)
	fmt.Fprintf(out, "Git commit: %s\n", GitCommit)

	compiler := newCompiler(cfg, toolchain.NewExecRunner(""))
	v, err := compiler.Version(cmd.Context())
	if err != nil {
		logger.Warn("Could not detect compiler version", logger.Fields{"compiler": cfg.Settings.Compiler, "error": err.Error()})
		fmt.Fprintf(out, "%s version: unknown\n", cfg.Settings.Compiler)
		return nil
	}
	fmt.Fprintf(out, "%s version %s\n", cfg.Settings.Compiler, v.String())
	return nil
}
