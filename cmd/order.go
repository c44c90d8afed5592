package cmd

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/openfaas/startorder/pkg"
	"github.com/openfaas/startorder/pkg/image"
)

func makeOrderCmd() *cobra.Command {
	var command = &cobra.Command{
		Use:   "order",
		Short: "Print the start order of the services in a compose file",
		Example: `  ## Print the start order of ./docker-compose.yaml
  startorder order

  ## Group the services into batches which can start in parallel
  startorder order --batches

  ## Print the order to stop the services in, as JSON
  startorder order -f stack.yml --reverse -o json
`,
		RunE: runOrderE,
	}

	configureComposeFlags(command.Flags())
	configureOutputFlags(command.Flags())
	command.Flags().Bool("batches", false, "Group the services into batches which can be started in parallel")
	command.Flags().Bool("reverse", false, "Print the order to stop the services in")

	return command
}

// orderOutput is what the order command prints for json and yaml
type orderOutput struct {
	Order   []serviceOutput   `json:"order,omitempty" yaml:"order,omitempty"`
	Batches [][]serviceOutput `json:"batches,omitempty" yaml:"batches,omitempty"`
}

type serviceOutput struct {
	Name      string   `json:"name" yaml:"name"`
	Alias     string   `json:"alias,omitempty" yaml:"alias,omitempty"`
	Image     string   `json:"image,omitempty" yaml:"image,omitempty"`
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

func runOrderE(cmd *cobra.Command, _ []string) error {
	composeCfg, err := parseComposeFlags(cmd)
	if err != nil {
		return err
	}

	format, err := parseOutputFlags(cmd)
	if err != nil {
		return err
	}

	batches, _ := cmd.Flags().GetBool("batches")
	reverse, _ := cmd.Flags().GetBool("reverse")

	descriptors, err := composeCfg.loadDescriptors()
	if err != nil {
		return err
	}

	start := time.Now()

	out := orderOutput{}
	if batches {
		out.Batches, err = resolveBatches(descriptors, reverse)
	} else {
		out.Order, err = resolveOrder(descriptors, reverse)
	}
	if err != nil {
		return errors.Wrapf(err, "can not order the services in %s", composeCfg.file)
	}

	log.Printf("Resolved %d services in: %s\n", len(descriptors), time.Since(start).String())

	return printOutput(cmd.OutOrStdout(), format, out, func(w io.Writer) error {
		return printOrderText(w, out, reverse)
	})
}

func resolveOrder(descriptors []*image.Descriptor, reverse bool) ([]serviceOutput, error) {
	resolve := pkg.ResolveStartOrder[*image.Descriptor]
	if reverse {
		resolve = pkg.ResolveStopOrder[*image.Descriptor]
	}

	order, err := resolve(descriptors)
	if err != nil {
		return nil, err
	}

	return toServiceOutputs(order), nil
}

func resolveBatches(descriptors []*image.Descriptor, reverse bool) ([][]serviceOutput, error) {
	batches, err := pkg.ResolveStartBatches(descriptors)
	if err != nil {
		return nil, err
	}

	if reverse {
		for i, j := 0, len(batches)-1; i < j; i, j = i+1, j-1 {
			batches[i], batches[j] = batches[j], batches[i]
		}
	}

	out := make([][]serviceOutput, 0, len(batches))
	for _, batch := range batches {
		out = append(out, toServiceOutputs(batch))
	}
	return out, nil
}

func toServiceOutputs(descriptors []*image.Descriptor) []serviceOutput {
	out := make([]serviceOutput, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, serviceOutput{
			Name:      d.Name,
			Alias:     d.Alias,
			Image:     d.Image,
			DependsOn: d.DependencyIdentifiers(),
		})
	}
	return out
}

func printOrderText(w io.Writer, out orderOutput, reverse bool) error {
	title := "Start-up order"
	if reverse {
		title = "Shutdown order"
	}

	if out.Batches != nil {
		fmt.Fprintf(w, "%s:\n", title)
		for i, batch := range out.Batches {
			fmt.Fprintf(w, "Batch %d:\n", i+1)
			for _, s := range batch {
				fmt.Fprintf(w, "- %s\n", describe(s))
			}
		}
		return nil
	}

	fmt.Fprintf(w, "%s:\n", title)
	for _, s := range out.Order {
		fmt.Fprintf(w, "- %s\n", describe(s))
	}
	return nil
}

func describe(s serviceOutput) string {
	d := image.Descriptor{Name: s.Name, Alias: s.Alias}
	return d.Description()
}
