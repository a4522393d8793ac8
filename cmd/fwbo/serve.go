package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/fwbo-viewer/fwbo/internal/edit"
	"github.com/fwbo-viewer/fwbo/internal/parser"
	"github.com/fwbo-viewer/fwbo/internal/reload"
	"github.com/fwbo-viewer/fwbo/internal/result"
	"github.com/fwbo-viewer/fwbo/internal/server"
)

var (
	serveAddr    string
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve <model>",
	Short: "Serve the model, rendered diagram and edit intents over HTTP",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

func init() {
	addDocumentFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Do not reload when the documents change")
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		e.cfg.Server.Addr = serveAddr
	}
	modelPath := args[0]
	res, docs, err := e.load(modelPath)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(e.renderer(), edit.NewHTTPSender(e.cfg.Backend.URL, e.log), modelPath, e.log)
	srv.Update(res)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if !serveNoWatch {
		p := parser.New(e.parserOptions(), e.log)
		deb := reload.New(e.cfg.Reload.Window, func(s reload.Snapshot) (*result.ParseResult, error) {
			return p.Parse(s.Model, s.Diagram)
		}, func(u reload.Update) {
			if u.Err != nil {
				return
			}
			srv.Update(u.Result)
			e.log.Info("model reloaded", "version", u.Version)
		}, e.log)
		defer deb.Stop()

		dp := docs.DiagramPath
		if dp == "" {
			dp = modelPath + parser.DiagramSuffix
		}
		go reload.Watch(ctx, deb, modelPath, dp, 0, 0, func(err error) {
			e.log.Warn("watch failed", "error", err)
		})
	}

	hs := &http.Server{Addr: e.cfg.Server.Addr, Handler: srv.Router(), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		e.log.Info("listening", "addr", hs.Addr, "model", modelPath)
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	e.log.Info("shutting down")
	return hs.Shutdown(shutdownCtx)
}
