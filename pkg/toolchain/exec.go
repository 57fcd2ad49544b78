// Package toolchain invokes the external programs narma relies on: the Noir
// compiler that prints ACIR and the line diff utility that compares two
// cached artifacts.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/glorpus-work/narma/internal/logger"
	"github.com/glorpus-work/narma/pkg/errutils"
)

// ExecRunner runs programs with os/exec.
type ExecRunner struct {
	// Dir is the working directory of started programs. Empty means the
	// current directory.
	Dir string
}

// NewExecRunner creates an ExecRunner rooted at dir.
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{Dir: dir}
}

// Run executes name with args and blocks until it exits.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running external program", logger.Fields{"program": name, "args": args})

	exitCode := 0
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errutils.Wrapf(ctxErr, "%s interrupted", name)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, errutils.Wrapf(errors.Join(errutils.ErrSpawn, err), "%s", name)
		}
		exitCode = exitErr.ExitCode()
	}

	logger.Debug("External program exited", logger.Fields{
		"program":   name,
		"exit_code": exitCode,
		"stdout":    stdout.Len(),
		"stderr":    stderr.Len(),
	})

	return &Output{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
	}, nil
}
