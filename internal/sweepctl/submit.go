package sweepctl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sweepproject/sweep/internal/common/logging"
	"github.com/sweepproject/sweep/internal/common/util"
	"github.com/sweepproject/sweep/internal/slurm"
	"github.com/sweepproject/sweep/internal/sweepctl/build"
)

// Counters tracks per-folder outcomes across one run. Total counts every
// folder visited; in a real run each folder also lands in exactly one of the
// other three. Dry runs leave eligible folders described but unattempted.
type Counters struct {
	Succeeded int
	Skipped   int
	Failed    int
	Total     int
}

func (c Counters) String() string {
	return fmt.Sprintf("succeeded=%d skipped=%d failed=%d total=%d", c.Succeeded, c.Skipped, c.Failed, c.Total)
}

// run carries the state of one sweep: parameters, log sinks, clock, sbatch
// client and outcome counters. State is passed explicitly through the run
// rather than living in package globals.
type run struct {
	params  Params
	id      string
	clock   util.Clock
	log     *log.Logger
	logFile io.Writer
	tee     io.Writer
	sbatch  *slurm.Client
	counts  Counters
}

// Submit processes every immediate sub-directory of the working directory
// exactly once, in natural order: validate the folder, echo the submit
// command, execute it with the folder as the child's working directory, and
// record the outcome. Per-folder failures are logged and the loop continues;
// only setup failures abort the run.
func (a *App) Submit(ctx context.Context) error {
	if err := a.validateParams(); err != nil {
		return err
	}

	logFile, err := os.Create(a.logPath())
	if err != nil {
		return errors.WithMessagef(err, "creating run log %s", a.logPath())
	}
	defer logFile.Close()

	r := &run{
		params:  *a.Params,
		id:      util.NewRunID(a.Clock.Now(), a.Random),
		clock:   a.Clock,
		log:     logging.NewRunLogger(a.Out, logFile, a.Clock),
		logFile: logFile,
		tee:     io.MultiWriter(a.Out, logFile),
		sbatch:  slurm.New(a.Params.Sbatch),
	}
	r.header()

	if err := r.resolveSbatch(ctx); err != nil {
		return err
	}
	folders, err := r.discoverFolders()
	if err != nil {
		return err
	}
	for _, folder := range folders {
		r.processFolder(ctx, folder)
	}
	r.log.Infof("summary: %s", r.counts)
	r.footer()
	return nil
}

// header writes the raw session block to the run log, then announces the
// sweep on both sinks. Written before any validation so the log records even
// runs that die during setup.
func (r *run) header() {
	workDir := r.params.WorkDir
	if abs, err := filepath.Abs(workDir); err == nil {
		workDir = abs
	}
	fmt.Fprintf(r.logFile, "===== sweep %s =====\n", r.id)
	fmt.Fprintf(r.logFile, "started: %s\n", r.clock.Now().Format(logging.TimestampFormat))
	fmt.Fprintf(r.logFile, "version: %s (%s)\n", build.ReleaseVersion, build.GitCommit)
	fmt.Fprintf(r.logFile, "workdir: %s\n", workDir)
	fmt.Fprintf(r.logFile, "dry-run: %t\n", r.params.DryRun)
	fmt.Fprintf(r.logFile, "path: %s\n", os.Getenv("PATH"))

	r.log.Infof("sweep %s starting in %s", r.id, workDir)
	if r.params.DryRun {
		r.log.Info("dry-run: submit commands are echoed, not executed")
	}
}

func (r *run) footer() {
	fmt.Fprintf(r.logFile, "===== sweep %s finished: %s =====\n", r.id, r.clock.Now().Format(logging.TimestampFormat))
}

// resolveSbatch fails fast when the submit binary is missing, before any
// folder is touched. Dry runs never execute sbatch, so they skip the check.
func (r *run) resolveSbatch(ctx context.Context) error {
	if r.params.DryRun {
		return nil
	}
	path, err := r.sbatch.Resolve()
	if err != nil {
		r.log.Errorf("submit binary %q not found on the search path", r.params.Sbatch)
		return err
	}
	r.log.Infof("using %s", path)
	if version, err := r.sbatch.Version(ctx); err != nil {
		r.log.Warnf("could not query %s version: %s", r.params.Sbatch, err)
	} else {
		r.log.Infof("%s", version)
	}
	return nil
}

// discoverFolders lists the sweep's folders. Zero folders is fatal: a sweep
// over nothing is always a mistake worth stopping on.
func (r *run) discoverFolders() ([]string, error) {
	folders, err := listJobFolders(r.params.WorkDir)
	if err != nil {
		r.log.Errorf("cannot list job folders: %s", err)
		return nil, err
	}
	if len(folders) == 0 {
		err := errors.Errorf("no job folders in %s", r.params.WorkDir)
		r.log.Errorf("%s", err)
		return nil, err
	}
	r.log.Infof("found %d job folders", len(folders))
	return folders, nil
}

// processFolder validates one folder and submits its job, recording exactly
// one outcome. It never returns an error: failures are logged and counted so
// the sweep continues with the next folder.
func (r *run) processFolder(ctx context.Context, folder string) {
	r.counts.Total++

	dir := filepath.Join(r.params.WorkDir, folder)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		r.log.Warnf("[%s] not a directory; skipping", folder)
		r.counts.Skipped++
		return
	}
	if err := checkJobFile(filepath.Join(dir, r.params.JobFile)); err != nil {
		r.log.Warnf("[%s] %s; skipping", folder, err)
		r.counts.Skipped++
		return
	}

	r.log.Infof("[%s] %s", folder, strings.Join(r.sbatch.Command(r.params.JobFile), " "))
	if r.params.DryRun {
		return
	}

	r.beginMarker(folder)
	code, err := r.sbatch.Submit(ctx, dir, r.params.JobFile, r.tee)
	r.endMarker(folder)
	if err != nil {
		r.log.Errorf("[%s] submission failed to run: %s", folder, err)
		r.counts.Failed++
		return
	}
	if code != 0 {
		r.log.Errorf("[%s] sbatch exited with status %d", folder, code)
		r.counts.Failed++
		return
	}
	logging.Ok(r.log, "[%s] submitted", folder)
	r.counts.Succeeded++
}

// checkJobFile verifies the job description file exists, is a regular file
// and is readable by this process. The returned error text is operator-facing.
func checkJobFile(path string) error {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.Errorf("no %s", name)
	}
	if err != nil {
		return errors.WithMessagef(err, "cannot stat %s", name)
	}
	if !info.Mode().IsRegular() {
		return errors.Errorf("%s is not a regular file", name)
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Errorf("%s is not readable", name)
	}
	return f.Close()
}

// Child output is bracketed so the interleaved run log stays attributable:
// begin marker, child bytes, end marker appear contiguously in both sinks.
func (r *run) beginMarker(folder string) {
	fmt.Fprintf(r.tee, "----- begin sbatch output: %s (%s) -----\n", folder, r.clock.Now().Format(logging.TimestampFormat))
}

func (r *run) endMarker(folder string) {
	fmt.Fprintf(r.tee, "----- end sbatch output: %s (%s) -----\n", folder, r.clock.Now().Format(logging.TimestampFormat))
}
