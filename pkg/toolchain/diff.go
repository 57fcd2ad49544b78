package toolchain

import (
	"context"

	"github.com/glorpus-work/narma/internal/logger"
)

// DiffTool drives a line based diff utility.
type DiffTool struct {
	Runner Runner
	Binary string
}

// NewDiffTool creates a DiffTool invoking binary through runner.
func NewDiffTool(runner Runner, binary string) *DiffTool {
	return &DiffTool{Runner: runner, Binary: binary}
}

// Diff compares a against b, in that order, and returns the tool's standard
// output. Differences (exit status 1 for diff) are not errors.
func (d *DiffTool) Diff(ctx context.Context, a, b string) ([]byte, error) {
	out, err := d.Runner.Run(ctx, d.Binary, a, b)
	if err != nil {
		return nil, err
	}
	// diff exits 1 on differences and 2 on trouble.
	if out.ExitCode > 1 {
		logger.Debug("Diff tool reported trouble", logger.Fields{
			"program":   d.Binary,
			"exit_code": out.ExitCode,
			"stderr":    string(out.Stderr),
		})
	}
	return out.Stdout, nil
}
