package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fwbo-viewer/fwbo/internal/config"
	"github.com/fwbo-viewer/fwbo/internal/logger"
	"github.com/fwbo-viewer/fwbo/internal/parser"
	"github.com/fwbo-viewer/fwbo/internal/render"
	"github.com/fwbo-viewer/fwbo/internal/result"
)

var (
	configPath  string
	logLevel    string
	diagramPath string
	inputFormat string
)

var rootCmd = &cobra.Command{
	Use:           "fwbo",
	Short:         "View and export framework business object models",
	Long:          `fwbo parses a model document and its diagram document (XML or JSON), renders the diagram, and forwards edit intents to the modeling backend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "HCL config file (default: $FWBO_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(parseCmd, renderCmd, exportCmd, viewCmd, serveCmd, intentCmd)
}

// addDocumentFlags registers the flags shared by commands that read a document pair.
func addDocumentFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&diagramPath, "diagram", "", "Diagram document (default: <model>.diagram when present)")
	cmd.Flags().StringVar(&inputFormat, "format", "", "Input format: xml or json (default: detect)")
}

type env struct {
	cfg *config.Config
	log *slog.Logger
}

func setup() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return &env{cfg: cfg, log: logger.NewWithLevel(os.Stderr, logger.ParseLevel(cfg.Log.Level))}, nil
}

func (e *env) renderer() *render.Renderer {
	return render.New(e.cfg.RenderOptions(), e.log)
}

func (e *env) parserOptions() parser.Options {
	opts := parser.DefaultOptions()
	opts.Format = inputFormat
	return opts
}

// load reads and parses a document pair. A parse that produced no model is an error.
func (e *env) load(modelPath string) (*result.ParseResult, *parser.Documents, error) {
	docs, err := parser.ReadDocuments(modelPath, diagramPath)
	if err != nil {
		return nil, nil, err
	}
	res, err := parser.New(e.parserOptions(), e.log).ParseDocuments(docs)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range res.Warnings {
		e.log.Warn(w.Message, "id", w.ID, "type", w.Type)
	}
	if !res.Success || res.Data == nil {
		for _, pe := range res.Errors {
			fmt.Fprintf(os.Stderr, "ERROR [%s] %s\n", pe.Type, pe.Message)
		}
		return res, docs, fmt.Errorf("parse %s failed", modelPath)
	}
	return res, docs, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "fwbo:", err)
		os.Exit(1)
	}
}
