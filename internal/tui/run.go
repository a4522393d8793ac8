package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwbo-viewer/fwbo/internal/parser"
	"github.com/fwbo-viewer/fwbo/internal/reload"
	"github.com/fwbo-viewer/fwbo/internal/render"
	"github.com/fwbo-viewer/fwbo/internal/result"
)

// RunOptions configures an interactive session.
type RunOptions struct {
	ModelPath    string
	DiagramPath  string
	Parser       parser.Options
	Renderer     *render.Renderer
	Window       time.Duration
	PollInterval time.Duration
	// Watch re-parses the documents whenever they change on disk.
	Watch bool
}

// Run parses the documents and shows the viewer until the user quits or ctx is done.
func Run(ctx context.Context, opts RunOptions, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	docs, err := parser.ReadDocuments(opts.ModelPath, opts.DiagramPath)
	if err != nil {
		return err
	}
	p := parser.New(opts.Parser, log)
	res, err := p.ParseDocuments(docs)
	if err != nil {
		return err
	}
	if !res.Success || res.Data == nil {
		return fmt.Errorf("parse %s: %s", opts.ModelPath, firstError(res))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(res.Data, filepath.Base(opts.ModelPath), opts.Renderer, log)
	if opts.Watch {
		updates := make(chan reload.Update, 1)
		deb := reload.New(opts.Window, func(s reload.Snapshot) (*result.ParseResult, error) {
			return p.Parse(s.Model, s.Diagram)
		}, func(u reload.Update) {
			select {
			case updates <- u:
			case <-ctx.Done():
			}
		}, log)
		defer deb.Stop()

		diagramPath := docs.DiagramPath
		if diagramPath == "" {
			diagramPath = opts.ModelPath + parser.DiagramSuffix
		}
		go reload.Watch(ctx, deb, opts.ModelPath, diagramPath, 0, opts.PollInterval, func(err error) {
			log.Warn("watch failed", "error", err)
		})
		m.WithUpdates(updates)
	}

	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

func firstError(res *result.ParseResult) string {
	if len(res.Errors) == 0 {
		return "no model produced"
	}
	return res.Errors[0].Message
}
