package cmd

import (
	"github.com/openfaas/faas-provider/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/openfaas/startorder/pkg"
	"github.com/openfaas/startorder/pkg/config"
	"github.com/openfaas/startorder/pkg/image"
)

// composeConfig are the CLI flags shared by every command which reads a compose file
type composeConfig struct {
	// file is the name of the compose file, relative to workingDir
	file string

	// workingDir is the directory the compose file is read from
	workingDir string
}

// configureComposeFlags defines the flags used to find the compose file. The defaults
// come from the environment, see config.ReadFromEnv.
func configureComposeFlags(flags *flag.FlagSet) {
	flags.StringP("file", "f", "", "compose file to read, defaults to $compose_file or "+config.DefaultComposeFile)
	flags.StringP("working-dir", "w", "", "directory holding the compose file, defaults to $working_dir or the current directory")
}

// parseComposeFlags loads the flag values into a composeConfig, falling back to the
// environment for anything not given on the command line.
func parseComposeFlags(cmd *cobra.Command) (composeConfig, error) {
	parsed := composeConfig{}

	envConfig, err := config.ReadFromEnv(types.OsEnv{})
	if err != nil {
		return parsed, errors.Wrap(err, "can not read configuration from the environment")
	}

	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return parsed, errors.Wrap(err, "can not parse file flag")
	}

	workingDir, err := cmd.Flags().GetString("working-dir")
	if err != nil {
		return parsed, errors.Wrap(err, "can not parse working-dir flag")
	}

	parsed.file = envConfig.ComposeFile
	if len(file) > 0 {
		parsed.file = file
	}

	parsed.workingDir = envConfig.WorkingDir
	if len(workingDir) > 0 {
		parsed.workingDir = workingDir
	}

	return parsed, nil
}

// loadDescriptors reads the compose file and converts its services
func (c composeConfig) loadDescriptors() ([]*image.Descriptor, error) {
	file, err := pkg.LoadComposeFile(c.workingDir, c.file)
	if err != nil {
		return nil, err
	}

	descriptors, err := pkg.ParseCompose(file)
	if err != nil {
		return nil, errors.Wrapf(err, "can not read services from %s", c.file)
	}

	return descriptors, nil
}
