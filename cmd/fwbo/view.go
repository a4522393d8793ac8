package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fwbo-viewer/fwbo/internal/logger"
	"github.com/fwbo-viewer/fwbo/internal/reload"
	"github.com/fwbo-viewer/fwbo/internal/tui"
)

var (
	noWatch      bool
	logFile      string
	pollInterval = reload.DefaultPollInterval
)

var viewCmd = &cobra.Command{
	Use:   "view <model>",
	Short: "Open the interactive diagram viewer",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	addDocumentFlags(viewCmd)
	viewCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the documents change")
	viewCmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file (the terminal is owned by the viewer)")
	viewCmd.Flags().DurationVar(&pollInterval, "poll", reload.DefaultPollInterval, "File change polling interval")
}

func runView(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	var out io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	e.log = logger.NewWithLevel(out, logger.ParseLevel(e.cfg.Log.Level))
	return tui.Run(cmd.Context(), tui.RunOptions{
		ModelPath:    args[0],
		DiagramPath:  diagramPath,
		Parser:       e.parserOptions(),
		Renderer:     e.renderer(),
		Window:       e.cfg.Reload.Window,
		PollInterval: pollInterval,
		Watch:        !noWatch,
	}, e.log)
}
