package cmd

import (
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flag struct {
	name  string
	value string
}

func TestRootCmdFlags(t *testing.T) {
	tests := map[string]struct {
		flags       []flag
		wantDryRun  bool
		wantJobFile string
	}{
		"defaults":        {nil, false, "job.slurm"},
		"dry run":         {[]flag{{"dry-run", "true"}}, true, "job.slurm"},
		"custom job file": {[]flag{{"jobFile", "run.slurm"}}, false, "run.slurm"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := RootCmd()
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			cmd.PreRunE = func(cmd *cobra.Command, args []string) error { return nil }

			var gotDryRun bool
			var gotJobFile string
			cmd.RunE = func(cmd *cobra.Command, args []string) error {
				var err error
				gotDryRun, err = cmd.Flags().GetBool("dry-run")
				require.NoError(t, err)
				gotJobFile, err = cmd.Flags().GetString("jobFile")
				require.NoError(t, err)
				return nil
			}

			args := make([]string, 0, len(test.flags))
			for _, f := range test.flags {
				args = append(args, "--"+f.name+"="+f.value)
			}
			cmd.SetArgs(args)

			require.NoError(t, cmd.Execute())
			assert.Equal(t, test.wantDryRun, gotDryRun)
			assert.Equal(t, test.wantJobFile, gotJobFile)
		})
	}
}

func TestRootCmdRejectsUnknownInput(t *testing.T) {
	tests := map[string][]string{
		"positional argument": {"jobs"},
		"unknown flag":        {"--retries=3"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := RootCmd()
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			cmd.PreRunE = func(cmd *cobra.Command, args []string) error { return nil }
			cmd.RunE = func(cmd *cobra.Command, args []string) error { return nil }
			cmd.SetArgs(args)

			assert.Error(t, cmd.Execute())
		})
	}
}
