package sweepctl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweepproject/sweep/internal/slurm"
)

// resetConfig wipes the process-global viper state and rebinds the
// persistent flags on a throwaway command, so each test starts from a clean
// precedence chain. The returned command's flag set stands in for a parsed
// command line.
func resetConfig(t *testing.T) *cobra.Command {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	cmd := &cobra.Command{Use: "sweepctl"}
	AddCommandlineArgs(cmd)
	return cmd
}

// fakeHome points $HOME at a fresh directory and clears the homedir cache,
// so the .sweepctl.yaml lookup is test-controlled.
func fakeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.Reset()
	t.Cleanup(homedir.Reset)
	return home
}

func TestLoadConfigWithoutAnyFile(t *testing.T) {
	fakeHome(t)
	resetConfig(t)

	// No defaults file next to the binary and no home config: not an error.
	require.NoError(t, LoadCommandlineArgsFromConfigFile(""))

	params, err := ExtractCommandlineParams()
	require.NoError(t, err)
	assert.Equal(t, &Params{
		WorkDir: ".",
		JobFile: DefaultJobFile,
		LogFile: DefaultLogFile,
		Sbatch:  slurm.DefaultBinary,
	}, params)
}

func TestLoadConfigFromHomeFile(t *testing.T) {
	home := fakeHome(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(home, ".sweepctl.yaml"),
		[]byte("jobFile: from-home.slurm\nsbatch: /opt/slurm/bin/sbatch\n"),
		0o644,
	))
	resetConfig(t)

	require.NoError(t, LoadCommandlineArgsFromConfigFile(""))

	params, err := ExtractCommandlineParams()
	require.NoError(t, err)
	assert.Equal(t, "from-home.slurm", params.JobFile)
	assert.Equal(t, "/opt/slurm/bin/sbatch", params.Sbatch)
	// Keys the file does not set keep their flag defaults.
	assert.Equal(t, ".", params.WorkDir)
	assert.Equal(t, DefaultLogFile, params.LogFile)
}

func TestLoadConfigFromExplicitFile(t *testing.T) {
	home := fakeHome(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(home, ".sweepctl.yaml"),
		[]byte("jobFile: from-home.slurm\n"),
		0o644,
	))
	resetConfig(t)
	cfg := filepath.Join(t.TempDir(), "sweep-ci.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("logFile: ci.log\nworkDir: /data/sweeps\n"), 0o644))

	require.NoError(t, LoadCommandlineArgsFromConfigFile(cfg))

	params, err := ExtractCommandlineParams()
	require.NoError(t, err)
	assert.Equal(t, "ci.log", params.LogFile)
	assert.Equal(t, "/data/sweeps", params.WorkDir)
	// An explicit --config file replaces the home lookup entirely.
	assert.Equal(t, DefaultJobFile, params.JobFile)
}

func TestEnvOverridesConfigFile(t *testing.T) {
	home := fakeHome(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(home, ".sweepctl.yaml"),
		[]byte("jobFile: from-home.slurm\n"),
		0o644,
	))
	t.Setenv("SWEEP_JOBFILE", "from-env.slurm")
	resetConfig(t)

	require.NoError(t, LoadCommandlineArgsFromConfigFile(""))

	params, err := ExtractCommandlineParams()
	require.NoError(t, err)
	assert.Equal(t, "from-env.slurm", params.JobFile)
}

func TestFlagOverridesConfigFileAndEnv(t *testing.T) {
	home := fakeHome(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(home, ".sweepctl.yaml"),
		[]byte("jobFile: from-home.slurm\n"),
		0o644,
	))
	t.Setenv("SWEEP_JOBFILE", "from-env.slurm")
	cmd := resetConfig(t)
	require.NoError(t, cmd.PersistentFlags().Set("jobFile", "from-flag.slurm"))

	require.NoError(t, LoadCommandlineArgsFromConfigFile(""))

	params, err := ExtractCommandlineParams()
	require.NoError(t, err)
	assert.Equal(t, "from-flag.slurm", params.JobFile)
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	resetConfig(t)
	cfg := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("jobFile: [unclosed\n"), 0o644))

	err := LoadCommandlineArgsFromConfigFile(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
