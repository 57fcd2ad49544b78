package cache

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/glorpus-work/narma/internal/logger"
	"github.com/glorpus-work/narma/pkg/errutils"
	"github.com/glorpus-work/narma/pkg/toolchain"
)

// Operation implements the user facing cache commands on top of a Manager
// and the external toolchain. Output streams are passed per call.
type Operation struct {
	manager    Manager
	compiler   *toolchain.Compiler
	differ     *toolchain.DiffTool
	constraint string
	now        func() time.Time
}

// OperationOption configures an Operation.
type OperationOption func(*Operation)

// WithClock replaces time.Now as the source of capture timestamps.
func WithClock(now func() time.Time) OperationOption {
	return func(op *Operation) { op.now = now }
}

// WithCompilerConstraint makes Cache verify the compiler version first.
func WithCompilerConstraint(constraint string) OperationOption {
	return func(op *Operation) { op.constraint = constraint }
}

// NewOperation creates a new cache operation instance.
func NewOperation(manager Manager, compiler *toolchain.Compiler, differ *toolchain.DiffTool, opts ...OperationOption) *Operation {
	op := &Operation{
		manager:  manager,
		compiler: compiler,
		differ:   differ,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(op)
	}
	return op
}

// Cache runs the compiler with args plus the ACIR flag, stores its standard
// output as a new artifact and relays the compiler's standard error to stdout.
// It returns the artifact path.
func (op *Operation) Cache(ctx context.Context, args []string, stdout io.Writer) (string, error) {
	if err := op.manager.Ensure(); err != nil {
		return "", err
	}

	if err := op.compiler.CheckConstraint(ctx, op.constraint); err != nil {
		return "", err
	}

	out, err := op.compiler.PrintACIR(ctx, args)
	if err != nil {
		return "", err
	}

	captured := op.now().Unix()
	if captured < 0 {
		return "", errutils.Wrapf(errutils.ErrTimestampRange, "clock is before the Unix epoch: %d", captured)
	}
	ts := uint64(captured)

	path, err := op.manager.Save(ts, out.Stdout)
	if err != nil {
		return "", err
	}

	logger.Info("Cached ACIR", logger.Fields{
		"path":      path,
		"size":      humanize.Bytes(uint64(len(out.Stdout))),
		"exit_code": out.ExitCode,
	})

	if !utf8.Valid(out.Stderr) {
		return path, errutils.Wrapf(errutils.ErrInvalidUTF8, "%s standard error", op.compiler.Binary)
	}
	if _, err := stdout.Write(out.Stderr); err != nil {
		return path, errutils.Wrap(err, "failed to write compiler output")
	}

	return path, nil
}

// Diff compares cached artifacts named by tokens. With one token the artifact
// is compared against the newest cached artifact; with two tokens the two
// named artifacts are compared in order. Any other number of tokens is not
// handled and Diff returns false so the caller can show usage.
func (op *Operation) Diff(ctx context.Context, tokens []string, stdout, stderr io.Writer) (bool, error) {
	switch len(tokens) {
	case 1:
		return true, op.diffLatest(ctx, tokens[0], stdout, stderr)
	case 2:
		return true, op.diffPair(ctx, tokens[0], tokens[1], stdout, stderr)
	default:
		return false, nil
	}
}

func (op *Operation) diffLatest(ctx context.Context, token string, stdout, stderr io.Writer) error {
	ts, found, err := op.lookup(token, stderr)
	if err != nil || !found {
		return err
	}

	latest, err := op.manager.Latest()
	if err != nil {
		return err
	}
	if latest == nil {
		logger.Debug("No artifact to compare against", logger.Fields{"timestamp": ts})
		return nil
	}

	out, err := op.runDiff(ctx, op.manager.Path(ts), latest.Path)
	if err != nil {
		return err
	}
	if _, err := stdout.Write(out); err != nil {
		return errutils.Wrap(err, "failed to write diff output")
	}
	return nil
}

func (op *Operation) diffPair(ctx context.Context, first, second string, stdout, stderr io.Writer) error {
	ts1, found, err := op.lookup(first, stderr)
	if err != nil || !found {
		return err
	}
	ts2, found, err := op.lookup(second, stderr)
	if err != nil || !found {
		return err
	}

	out, err := op.runDiff(ctx, op.manager.Path(ts1), op.manager.Path(ts2))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(stdout, string(out)); err != nil {
		return errutils.Wrap(err, "failed to write diff output")
	}
	return nil
}

// lookup parses token and reports whether its artifact exists, printing the
// not-found message to stderr when it does not.
func (op *Operation) lookup(token string, stderr io.Writer) (uint64, bool, error) {
	ts, err := ParseTimestamp(token)
	if err != nil {
		return 0, false, err
	}

	ok, err := op.manager.Has(ts)
	if err != nil {
		return 0, false, errutils.Wrapf(errutils.ErrCacheRead, "%s: %v", op.manager.Path(ts), err)
	}
	if !ok {
		fmt.Fprintf(stderr, msgArtifactNotFoundForm+"\n", ts)
		return ts, false, nil
	}
	return ts, true, nil
}

func (op *Operation) runDiff(ctx context.Context, a, b string) ([]byte, error) {
	logger.Debug("Comparing artifacts", logger.Fields{"from": a, "to": b})

	out, err := op.differ.Diff(ctx, a, b)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(out) {
		return nil, errutils.Wrapf(errutils.ErrInvalidUTF8, "%s output", op.differ.Binary)
	}
	return out, nil
}

// List prints one line per artifact with its UTC capture time, in directory
// enumeration order.
func (op *Operation) List(stdout, stderr io.Writer) error {
	ok, err := op.manager.Exists()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(stderr, MsgCacheDirNotFound)
		return nil
	}

	names, err := op.manager.Names()
	if err != nil {
		return err
	}

	for _, name := range names {
		if !IsArtifactName(name) {
			continue
		}
		ts, err := SignedTimestampFromName(name)
		if err != nil {
			return err
		}
		when, err := FormatTimestamp(ts)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(stdout, "%s: %s\n", when, name); err != nil {
			return errutils.Wrap(err, "failed to write listing")
		}
	}
	return nil
}

// Clean wipes the cache directory and recreates it empty.
func (op *Operation) Clean(stderr io.Writer) error {
	ok, err := op.manager.Exists()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(stderr, MsgCacheDirNotFound)
		return nil
	}

	if err := op.manager.Reset(); err != nil {
		return err
	}

	logger.Success("Cache cleaned", logger.Fields{"directory": op.manager.GetDirectory()})
	return nil
}

// Info prints a short summary of the cache contents.
func (op *Operation) Info(stdout, stderr io.Writer) error {
	info, err := op.manager.GetInfo()
	if err != nil {
		return err
	}
	if !info.Exists {
		fmt.Fprintln(stderr, MsgCacheDirNotFound)
		return nil
	}

	fmt.Fprintf(stdout, "Cache Directory: %s\n", info.Directory)
	fmt.Fprintf(stdout, "Artifacts: %d\n", info.Artifacts)
	fmt.Fprintf(stdout, "Total Size: %s\n", humanize.Bytes(uint64(info.TotalSize)))
	if info.Artifacts > 0 {
		fmt.Fprintf(stdout, "Oldest: %s\n", describe(info.Oldest))
		fmt.Fprintf(stdout, "Newest: %s\n", describe(info.Newest))
	}
	return nil
}

func describe(ts uint64) string {
	when, err := FormatTimestamp(int64(ts))
	if err != nil {
		return FileName(ts)
	}
	return fmt.Sprintf("%s (%s)", FileName(ts), when)
}
