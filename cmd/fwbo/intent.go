package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fwbo-viewer/fwbo/internal/edit"
)

var backendURL string

var intentCmd = &cobra.Command{
	Use:   "intent <op> key=value...",
	Short: "Send one edit intent to the modeling backend",
	Long:  "Send one edit intent to the modeling backend. Operations: " + opList() + ".",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIntent,
}

func init() {
	intentCmd.Flags().StringVar(&backendURL, "backend", "", "Backend base URL (default from config)")
}

func opList() string {
	ops := edit.Ops()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}

func runIntent(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	op, err := edit.ParseOp(args[0])
	if err != nil {
		return err
	}
	in, err := edit.FromArgs(op, args[1:])
	if err != nil {
		return err
	}
	url := e.cfg.Backend.URL
	if backendURL != "" {
		url = backendURL
	}
	resp, err := edit.NewHTTPSender(url, e.log).Send(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", op, resp.Message)
	return nil
}
