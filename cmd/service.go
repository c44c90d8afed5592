package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openfaas/startorder/pkg/image"
)

func makeServiceCmd() *cobra.Command {
	var command = &cobra.Command{
		Use:   "service",
		Short: "Inspect services",
		Long:  `Inspect the services of a docker-compose.yaml file`,
	}

	command.RunE = runServiceE

	command.AddCommand(makeServiceDepsCmd())
	return command
}

func runServiceE(cmd *cobra.Command, args []string) error {

	return cmd.Help()

}

func makeServiceDepsCmd() *cobra.Command {
	var command = &cobra.Command{
		Use:   "deps [NAME...]",
		Short: "List what each service has to wait for",
		Long: `List the names and aliases each service has to wait for, as found in its
volumes_from, links and network_mode. Links are left out for services on a
custom network. Nothing is resolved, so unknown names are printed as they are.`,
		Example: `  ## List the dependencies of every service
  startorder service deps

  ## List the dependencies of the gateway
  startorder service deps gateway -o json
`,
		RunE: runServiceDepsE,
	}

	configureComposeFlags(command.Flags())
	configureOutputFlags(command.Flags())

	return command
}

type depsOutput struct {
	Name         string   `json:"name" yaml:"name"`
	Alias        string   `json:"alias,omitempty" yaml:"alias,omitempty"`
	Network      string   `json:"network" yaml:"network"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
}

func runServiceDepsE(cmd *cobra.Command, args []string) error {
	composeCfg, err := parseComposeFlags(cmd)
	if err != nil {
		return err
	}

	format, err := parseOutputFlags(cmd)
	if err != nil {
		return err
	}

	descriptors, err := composeCfg.loadDescriptors()
	if err != nil {
		return err
	}

	selected, err := selectDescriptors(descriptors, args)
	if err != nil {
		return err
	}

	out := make([]depsOutput, 0, len(selected))
	for _, d := range selected {
		out = append(out, depsOutput{
			Name:         d.Name,
			Alias:        d.Alias,
			Network:      d.Network.String(),
			Dependencies: image.ExtractDependencies(d),
		})
	}

	return printOutput(cmd.OutOrStdout(), format, out, func(w io.Writer) error {
		for _, o := range out {
			deps := "-"
			if len(o.Dependencies) > 0 {
				deps = strings.Join(o.Dependencies, ", ")
			}
			fmt.Fprintf(w, "%s\t%s\n", o.Name, deps)
		}
		return nil
	})
}

// selectDescriptors picks the descriptors named in names, by name or alias,
// keeping the order of names. No names selects all of them.
func selectDescriptors(descriptors []*image.Descriptor, names []string) ([]*image.Descriptor, error) {
	if len(names) == 0 {
		return descriptors, nil
	}

	selected := []*image.Descriptor{}
	for _, name := range names {
		found := false
		for _, d := range descriptors {
			if d.Name == name || (len(d.Alias) > 0 && d.Alias == name) {
				selected = append(selected, d)
				found = true
				break
			}
		}

		if !found {
			return nil, fmt.Errorf("service not found: %s", name)
		}
	}

	return selected, nil
}
