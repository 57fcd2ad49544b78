package toolchain

import (
	"context"
	"regexp"

	"github.com/glorpus-work/narma/pkg/errutils"
	"github.com/hashicorp/go-version"
)

// versionPattern finds dotted versions with optional pre-release and build
// metadata inside free-form --version output.
var versionPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?`)

// Compiler drives the Noir compiler binary.
type Compiler struct {
	Runner   Runner
	Binary   string
	ACIRFlag string
}

// NewCompiler creates a Compiler invoking binary through runner.
func NewCompiler(runner Runner, binary, acirFlag string) *Compiler {
	return &Compiler{Runner: runner, Binary: binary, ACIRFlag: acirFlag}
}

// PrintACIR runs the compiler with args followed by the ACIR flag.
// The arguments are forwarded verbatim.
func (c *Compiler) PrintACIR(ctx context.Context, args []string) (*Output, error) {
	full := make([]string, 0, len(args)+1)
	full = append(full, args...)
	full = append(full, c.ACIRFlag)
	return c.Runner.Run(ctx, c.Binary, full...)
}

// Version runs `<binary> --version` and returns the first version found in its
// standard output.
func (c *Compiler) Version(ctx context.Context) (*version.Version, error) {
	out, err := c.Runner.Run(ctx, c.Binary, "--version")
	if err != nil {
		return nil, err
	}
	return ParseVersion(string(out.Stdout))
}

// CheckConstraint fails with ErrVersionConstraint when the installed compiler
// does not satisfy constraint. An empty constraint always passes without
// running the compiler.
func (c *Compiler) CheckConstraint(ctx context.Context, constraint string) error {
	if constraint == "" {
		return nil
	}

	constraints, err := version.NewConstraint(constraint)
	if err != nil {
		return errutils.Wrapf(err, "invalid compiler constraint %q", constraint)
	}

	v, err := c.Version(ctx)
	if err != nil {
		return err
	}

	if !constraints.Check(v) {
		return errutils.Wrapf(errutils.ErrVersionConstraint, "%s %s (want %s)", c.Binary, v, constraint)
	}
	return nil
}

// ParseVersion extracts the first version number from text such as
// "nargo version = 0.36.0".
func ParseVersion(text string) (*version.Version, error) {
	raw := versionPattern.FindString(text)
	if raw == "" {
		return nil, errutils.Wrapf(errutils.ErrVersionParse, "no version in %q", text)
	}

	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, errutils.Wrap(errutils.ErrVersionParse, err.Error())
	}
	return v, nil
}
