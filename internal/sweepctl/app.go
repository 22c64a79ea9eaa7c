package sweepctl

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/sweepproject/sweep/internal/common/sweeperrors"
	"github.com/sweepproject/sweep/internal/common/util"
	"github.com/sweepproject/sweep/internal/slurm"
	"github.com/sweepproject/sweep/internal/sweepctl/build"
)

const (
	// DefaultJobFile is the job description file expected in each folder.
	DefaultJobFile = "job.slurm"
	// DefaultLogFile is the run log created in the working directory.
	DefaultLogFile = "sweep.log"
)

type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is used to write the output. Defaults to standard out,
	// but can be overridden in tests to make assertions on the application's output.
	Out io.Writer
	// Source of randomness for run identifiers. Tests can use a deterministic
	// source to pin identifiers.
	Random io.Reader
	// Clock stamping run log entries and output markers. Tests can use a
	// fixed clock to pin timestamps.
	Clock util.Clock
}

// Params struct holds all user-customizable parameters.
// Using a single struct for all CLI commands ensures that all flags are distinct
// and that they can be provided either dynamically on a command line, or
// statically in a config file that's reused between runs.
type Params struct {
	// Directory whose immediate sub-directories are swept.
	WorkDir string
	// Name of the job description file expected in each folder.
	JobFile string
	// Path of the run log, relative to WorkDir unless absolute. The log is
	// created before anything else so even a fatal early exit leaves a record.
	LogFile string
	// Name or path of the sbatch binary.
	Sbatch string
	// If true, submit commands are echoed but not executed.
	DryRun bool
}

// New instantiates an App with default parameters, including standard output
// and cryptographically secure random source.
func New() *App {
	return &App{
		Params: &Params{
			WorkDir: ".",
			JobFile: DefaultJobFile,
			LogFile: DefaultLogFile,
			Sbatch:  slurm.DefaultBinary,
		},
		Out:    os.Stdout,
		Random: rand.Reader,
		Clock:  &util.DefaultClock{},
	}
}

// validateParams validates a.Params, aggregating all violations into a
// single multierror so the operator sees every problem at once.
func (a *App) validateParams() error {
	var result *multierror.Error
	if a.Params.WorkDir == "" {
		result = multierror.Append(result, errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "workDir",
			Value:   a.Params.WorkDir,
			Message: "working directory must be non-empty",
		}))
	}
	if a.Params.JobFile == "" {
		result = multierror.Append(result, errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "jobFile",
			Value:   a.Params.JobFile,
			Message: "job file name must be non-empty",
		}))
	} else if filepath.Base(a.Params.JobFile) != a.Params.JobFile {
		result = multierror.Append(result, errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "jobFile",
			Value:   a.Params.JobFile,
			Message: "job file must be a bare file name, it is looked up inside each folder",
		}))
	}
	if a.Params.LogFile == "" {
		result = multierror.Append(result, errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "logFile",
			Value:   a.Params.LogFile,
			Message: "log file path must be non-empty",
		}))
	}
	if a.Params.Sbatch == "" {
		result = multierror.Append(result, errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "sbatch",
			Value:   a.Params.Sbatch,
			Message: "submit binary must be non-empty",
		}))
	}
	return result.ErrorOrNil()
}

// logPath resolves the run log location against the working directory.
func (a *App) logPath() string {
	if filepath.IsAbs(a.Params.LogFile) {
		return a.Params.LogFile
	}
	return filepath.Join(a.Params.WorkDir, a.Params.LogFile)
}

// Version prints build information (e.g., current git commit) to the app output.
func (a *App) Version() error {
	w := tabwriter.NewWriter(a.Out, 1, 1, 1, ' ', 0)
	defer w.Flush()
	fmt.Fprintf(w, "Version:\t%s\n", build.ReleaseVersion)
	fmt.Fprintf(w, "Commit:\t%s\n", build.GitCommit)
	fmt.Fprintf(w, "Go version:\t%s\n", build.GoVersion)
	fmt.Fprintf(w, "Built:\t%s\n", build.BuildTime)
	return nil
}
