package sweepctl

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweepproject/sweep/internal/common/sweeperrors"
	"github.com/sweepproject/sweep/internal/common/util"
)

func TestVersion(t *testing.T) {
	buf := new(bytes.Buffer)
	app := &App{
		Params: &Params{},
		Out:    buf,
		Random: rand.Reader,
		Clock:  &util.DefaultClock{},
	}

	require.NoError(t, app.Version())

	out := buf.String()
	for _, s := range []string{"Version", "Commit", "Go version", "Built"} {
		assert.Contains(t, out, s)
	}
}

func TestValidateParams(t *testing.T) {
	tests := map[string]struct {
		mutate      func(*Params)
		wantInvalid []string
	}{
		"defaults are valid": {func(p *Params) {}, nil},
		"empty work dir":     {func(p *Params) { p.WorkDir = "" }, []string{"workDir"}},
		"empty job file":     {func(p *Params) { p.JobFile = "" }, []string{"jobFile"}},
		"job file with path": {func(p *Params) { p.JobFile = "sub/job.slurm" }, []string{"jobFile"}},
		"empty log file":     {func(p *Params) { p.LogFile = "" }, []string{"logFile"}},
		"empty sbatch":       {func(p *Params) { p.Sbatch = "" }, []string{"sbatch"}},
		"everything empty":   {func(p *Params) { *p = Params{} }, []string{"workDir", "jobFile", "logFile", "sbatch"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			app := New()
			tc.mutate(app.Params)

			err := app.validateParams()
			if len(tc.wantInvalid) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var merr *multierror.Error
			require.True(t, errors.As(err, &merr))
			require.Len(t, merr.Errors, len(tc.wantInvalid))
			for i, field := range tc.wantInvalid {
				var invalid *sweeperrors.ErrInvalidArgument
				require.True(t, errors.As(merr.Errors[i], &invalid))
				assert.Equal(t, field, invalid.Name)
			}
		})
	}
}

func TestLogPath(t *testing.T) {
	app := New()
	app.Params.WorkDir = "/work/jobs"
	assert.Equal(t, "/work/jobs/sweep.log", app.logPath())

	app.Params.LogFile = "/var/log/sweep.log"
	assert.Equal(t, "/var/log/sweep.log", app.logPath())
}
