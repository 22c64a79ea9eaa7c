// Package slurm wraps the Slurm sbatch binary. Only three things are
// consumed from it: resolvability on the search path, the exit status of a
// submission, and its combined output bytes. Output is never parsed.
package slurm

import (
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/sweepproject/sweep/internal/common/sweeperrors"
)

// DefaultBinary is the submit command used when no override is configured.
const DefaultBinary = "sbatch"

// Client invokes sbatch. Binary may be a bare name, resolved against the
// search path, or a path to the executable.
type Client struct {
	Binary string
}

func New(binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{Binary: binary}
}

// Resolve returns the location of the submit binary, or a typed not-found
// error when it cannot be located.
func (c *Client) Resolve() (string, error) {
	path, err := exec.LookPath(c.Binary)
	if err != nil {
		return "", errors.WithStack(&sweeperrors.ErrNotFound{
			Type:    "binary",
			Value:   c.Binary,
			Message: "not on the search path",
		})
	}
	return path, nil
}

// Version reports the binary's self-declared version, e.g. "slurm 23.02.6".
// Best effort: callers treat an error as a warning, not a failure.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, c.Binary, "--version").Output()
	if err != nil {
		return "", errors.WithMessagef(err, "querying %s version", c.Binary)
	}
	version, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return version, nil
}

// Command returns the fixed submission invocation for jobFile. The singleton
// dependency makes the new job wait until no running or pending job shares
// its name and user, so same-named jobs submitted across folders serialize.
func (c *Client) Command(jobFile string) []string {
	return []string{c.Binary, "-v", "-d", "singleton", jobFile}
}

// Submit runs the submission with dir as the child's working directory,
// writing the child's combined stdout and stderr to out as they are
// produced. It returns the child's exit code; the error is non-nil only when
// the child could not be started or waited on.
func (c *Client) Submit(ctx context.Context, dir, jobFile string, out io.Writer) (int, error) {
	args := c.Command(jobFile)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.WithMessagef(err, "running %q in %s", strings.Join(args, " "), dir)
	}
	return 0, nil
}
