package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sweepproject/sweep/internal/sweepctl"
)

// Print version info and exit.
func versionCmd(app *sweepctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, app)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Version()
		},
	}
	return cmd
}
