package sweepctl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sweepproject/sweep/internal/slurm"
)

// AddCommandlineArgs registers the persistent flags shared by all commands
// and binds them to viper keys, so a config file or SWEEP_* environment
// variables can supply them instead of the command line.
func AddCommandlineArgs(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.String("workDir", ".", "directory whose immediate sub-directories are swept")
	flags.String("jobFile", DefaultJobFile, "job description file expected in each job folder")
	flags.String("logFile", DefaultLogFile, "run log path, relative to the working directory")
	flags.String("sbatch", slurm.DefaultBinary, "sbatch binary name or path")
	viper.BindPFlag("workDir", flags.Lookup("workDir"))
	viper.BindPFlag("jobFile", flags.Lookup("jobFile"))
	viper.BindPFlag("logFile", flags.Lookup("logFile"))
	viper.BindPFlag("sbatch", flags.Lookup("sbatch"))
}

// LoadCommandlineArgsFromConfigFile merges configuration from, in increasing
// precedence: sweepctl-defaults.yaml next to the executable, the --config
// file or $HOME/.sweepctl.yaml, SWEEP_* environment variables, and flags.
func LoadCommandlineArgsFromConfigFile(cfgFile string) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error finding executable path: %s", err)
	}
	exeDir := filepath.Dir(exePath)
	viper.SetConfigFile(exeDir + "/sweepctl-defaults.yaml")
	if err := viper.ReadInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
		case *os.PathError:
			// No default config is fine
		default:
			return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error reading config file %s: %s", viper.ConfigFileUsed(), err)
		}
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error getting user home directory: %s", err)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".sweepctl")
	}

	viper.SetEnvPrefix("SWEEP")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.MergeInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// This only occurs when looking for the default .sweepctl file and it
			// is not present. Users don't have to keep one, so do nothing.
		default:
			return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error reading config file %s: %s", viper.ConfigFileUsed(), err)
		}
	}
	return nil
}

// ExtractCommandlineParams returns the Params assembled by viper. DryRun is
// not a viper key; the root command reads it straight from its flag.
func ExtractCommandlineParams() (*Params, error) {
	params := &Params{}
	if err := viper.Unmarshal(params); err != nil {
		return nil, fmt.Errorf("[ExtractCommandlineParams] error unmarshalling config: %s", err)
	}
	return params, nil
}
