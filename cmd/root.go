package cmd

import (
	"fmt"

	"github.com/morikuni/aec"
	"github.com/spf13/cobra"
)

func init() {
	rootCommand.AddCommand(versionCmd)
	rootCommand.AddCommand(makeOrderCmd())
	rootCommand.AddCommand(makeServiceCmd())
	rootCommand.AddCommand(makeServeCmd())
	rootCommand.AddCommand(generateCmd)
}

func RootCommand() *cobra.Command {
	return rootCommand
}

var (
	// GitCommit Git Commit SHA
	GitCommit string
	// Version version of the CLI
	Version string
)

// Execute startorder
func Execute(version, gitCommit string) error {

	// Get Version and GitCommit values from main.go.
	Version = version
	GitCommit = gitCommit

	if err := rootCommand.Execute(); err != nil {
		return err
	}
	return nil
}

var rootCommand = &cobra.Command{
	Use:   "startorder",
	Short: "Work out the start order of containers",
	Long: `
startorder - work out which containers have to start first

Reads a docker-compose.yaml file and orders its services so that
every volumes_from, link and container network_mode target is
started before the service that needs it.

Links between services on a custom network do not affect the order,
those services find each other through the network's DNS.
`,
	RunE:         runRootCommand,
	SilenceUsage: true,
}

func runRootCommand(cmd *cobra.Command, args []string) error {

	printLogo()
	cmd.Help()

	return nil
}

func printLogo() {
	logoText := aec.WhiteF.Apply(Logo)
	fmt.Println(logoText)
}

// GetVersion get latest version
func GetVersion() string {
	if len(Version) == 0 {
		return "dev"
	}
	return Version
}

// Logo for version and root command
const Logo = `     _             _                _
 ___| |_ __ _ _ __| |_ ___  _ __ __| | ___ _ __
/ __| __/ _` + "`" + ` | '__| __/ _ \| '__/ _` + "`" + ` |/ _ \ '__|
\__ \ || (_| | |  | || (_) | | | (_| |  __/ |
|___/\__\__,_|_|   \__\___/|_|  \__,_|\___|_|
`
