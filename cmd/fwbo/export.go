package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fwbo-viewer/fwbo/internal/export"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export <model>",
	Short: "Write the canonical model as HCL",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	addDocumentFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportDir, "output-dir", "d", "", "Write one file per section into this directory (default: single document on stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	res, _, err := e.load(args[0])
	if err != nil {
		return err
	}
	b := export.Model(res.Data, res.Format)
	if exportDir == "" {
		_, err := cmd.OutOrStdout().Write(b.Bytes())
		return err
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	files := b.Build()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writeOutput(cmd, filepath.Join(exportDir, name), files[name]); err != nil {
			return err
		}
	}
	return nil
}
