package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sweepproject/sweep/internal/sweepctl"
)

// RootCmd is the root Cobra command that gets called from the main func.
// Running it with no arguments performs a real submission sweep; all other
// sub-commands should be registered here.
func RootCmd() *cobra.Command {
	app := sweepctl.New()

	cmd := &cobra.Command{
		Use:   "sweepctl",
		Short: "sweepctl submits every job folder in the working directory to Slurm.",
		Long: `sweepctl scans the working directory for immediate sub-directories, each
holding a job.slurm description, and submits them in numeric order with
"sbatch -v -d singleton job.slurm". The singleton dependency serializes
same-named jobs, so folder order becomes queue order. Everything printed to
the terminal is mirrored into a run log in the working directory.

Persistent config can be saved in a config file so it doesn't have to be
specified every run.

Example structure:
jobFile: job.slurm
logFile: sweep.log
sbatch: /opt/slurm/bin/sbatch

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.sweepctl.yaml is used.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, app)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return fmt.Errorf("error reading dry-run flag: %s", err)
			}
			app.Params.DryRun = dryRun

			// Create a context that is cancelled on SIGINT/SIGTERM.
			// Ensures a submission in flight is killed on ctrl-C.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			stopSignal := make(chan os.Signal, 1)
			signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				select {
				case <-ctx.Done():
					return
				case <-stopSignal:
					cancel()
				}
			}()

			return app.Submit(ctx)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.sweepctl.yaml)")
	cmd.Flags().Bool("dry-run", false, "echo submit commands without executing them")
	sweepctl.AddCommandlineArgs(cmd)

	cmd.AddCommand(
		versionCmd(app),
	)

	return cmd
}

func initParams(cmd *cobra.Command, app *sweepctl.App) error {
	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("error reading config flag: %s", err)
	}
	if err := sweepctl.LoadCommandlineArgsFromConfigFile(cfgFile); err != nil {
		return err
	}
	params, err := sweepctl.ExtractCommandlineParams()
	if err != nil {
		return err
	}
	app.Params = params
	return nil
}
