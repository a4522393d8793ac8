package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var outputFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <model>",
	Short: "Print the canonical model and diagram",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	addDocumentFlags(parseCmd)
	parseCmd.Flags().StringVarP(&outputFormat, "output", "o", "json", "Output format: json or yaml")
}

func runParse(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	res, _, err := e.load(args[0])
	if err != nil {
		return err
	}
	return encode(cmd.OutOrStdout(), outputFormat, res.Data)
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", format)
}
