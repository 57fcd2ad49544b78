package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var helpLines = []string{
	"Use: narma [command]",
	"Commands:",
	"  cache [nargo command]           Cache ACIR from output of nargo",
	"  diff [timestamp1] [timestamp2]  Check difference between ACIR's",
	"  list                            List all available ACIR's",
	"  clean                           Clean available cache",
	"  info                            Show cache size and artifact count",
	"  export [archive]                Export cached ACIR's to a tar.gz archive",
	"  import [archive]                Import ACIR's from an archive",
	"  config                          Print the effective configuration",
	"  version                         Show narma and nargo versions",
	"  help                            Show help",
}

// PrintHelp writes the usage summary to w.
func PrintHelp(w io.Writer) {
	for _, line := range helpLines {
		fmt.Fprintln(w, line)
	}
}

// HelpFunc is installed on the root command so that every help path, the
// help command, -h/--help and unknown commands, prints the same summary to
// the error stream.
func HelpFunc(cmd *cobra.Command, _ []string) {
	PrintHelp(cmd.ErrOrStderr())
}
