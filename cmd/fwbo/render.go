package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/render"
	"github.com/fwbo-viewer/fwbo/internal/scene"
	"github.com/fwbo-viewer/fwbo/internal/search"
	"github.com/fwbo-viewer/fwbo/internal/viewport"
)

var (
	svgOut    string
	pngOut    string
	pngWidth  int
	pngHeight int
	query     string
)

var renderCmd = &cobra.Command{
	Use:   "render <model>",
	Short: "Render the diagram to SVG or PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	addDocumentFlags(renderCmd)
	renderCmd.Flags().StringVar(&svgOut, "svg", "", "Write SVG to this file (- for stdout)")
	renderCmd.Flags().StringVar(&pngOut, "png", "", "Write PNG to this file")
	renderCmd.Flags().IntVar(&pngWidth, "width", 1280, "PNG width in pixels")
	renderCmd.Flags().IntVar(&pngHeight, "height", 800, "PNG height in pixels")
	renderCmd.Flags().StringVar(&query, "search", "", "Frame and highlight the first entity with this name")
}

func runRender(cmd *cobra.Command, args []string) error {
	if svgOut == "" && pngOut == "" {
		svgOut = "-"
	}
	e, err := setup()
	if err != nil {
		return err
	}
	res, _, err := e.load(args[0])
	if err != nil {
		return err
	}
	sc := e.renderer().Render(res.Data)
	view, highlight := frame(sc, query, e.cfg.ViewportOptions())
	if query != "" && highlight == "" {
		e.log.Info("no match", "query", query)
	}

	if svgOut != "" {
		var buf bytes.Buffer
		if err := render.WriteSVG(&buf, sc, view, render.SVGOptions{Highlight: highlight}); err != nil {
			return err
		}
		if err := writeOutput(cmd, svgOut, buf.Bytes()); err != nil {
			return err
		}
	}
	if pngOut != "" {
		var buf bytes.Buffer
		opts := render.PNGOptions{Width: pngWidth, Height: pngHeight, Highlight: highlight}
		if err := render.WritePNG(&buf, sc, view, opts); err != nil {
			return err
		}
		if err := writeOutput(cmd, pngOut, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// frame returns the view for q: the first match framed with target padding, or the whole space.
func frame(sc *scene.Scene, q string, opts viewport.Options) (model.Rect, string) {
	view := viewport.NewController(sc.Space, opts)
	c := search.New(sc, view)
	c.Search(q)
	return view.View(), c.Highlighted()
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "wrote", path)
	return nil
}
