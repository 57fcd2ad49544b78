//go:generate mockgen -destination=./mocks/toolchain.go . Runner
package toolchain

import "context"

// Runner starts an external program and waits for it to exit, buffering
// everything it writes. A program that exits with a non-zero status is not an
// error; only a failure to start or wait on it is.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Output, error)
}

// Output is what an external program produced.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}
