package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	yaml "gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func configureOutputFlags(flags *flag.FlagSet) {
	flags.StringP("output", "o", outputText, "Output format: text, json or yaml")
}

func parseOutputFlags(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", errors.Wrap(err, "can not parse output flag")
	}

	switch format {
	case outputText, outputJSON, outputYAML:
		return format, nil
	}

	return "", fmt.Errorf("unknown output format %q, use one of: %s, %s, %s", format, outputText, outputJSON, outputYAML)
}

// printOutput writes v in the given format, text is delegated to printText
func printOutput(w io.Writer, format string, v interface{}, printText func(io.Writer) error) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return printText(w)
	}
}
