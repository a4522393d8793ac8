package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/scene"
)

// PNGOptions tunes WritePNG.
type PNGOptions struct {
	Width, Height int
	Highlight     string
}

var monoFont *truetype.Font

func init() {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		panic(fmt.Sprintf("render: parse gomono: %v", err))
	}
	monoFont = f
}

// WritePNG rasterizes the part of sc inside view into a Width x Height image.
func WritePNG(w io.Writer, sc *scene.Scene, view model.Rect, opts PNGOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	if view.Width <= 0 || view.Height <= 0 {
		return fmt.Errorf("invalid view %vx%v", view.Width, view.Height)
	}

	// Uniform scale, centered, like preserveAspectRatio="xMidYMid meet".
	k := math.Min(float64(opts.Width)/view.Width, float64(opts.Height)/view.Height)
	offX := (float64(opts.Width) - view.Width*k) / 2
	offY := (float64(opts.Height) - view.Height*k) / 2
	tx := func(x float64) float64 { return offX + (x-view.X)*k }
	ty := func(y float64) float64 { return offY + (y-view.Y)*k }

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(color.White)
	dc.Clear()

	size := math.Max(fontSize*k, 4)
	dc.SetFontFace(truetype.NewFace(monoFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	// Connectors first so nodes draw over them.
	dc.SetLineWidth(math.Max(1.5*k, 1))
	for _, e := range sc.Edges {
		dc.SetHexColor(colorConnector)
		for i := 0; i+1 < len(e.Points); i++ {
			dc.DrawLine(tx(e.Points[i].X), ty(e.Points[i].Y), tx(e.Points[i+1].X), ty(e.Points[i+1].Y))
			dc.Stroke()
		}
		dc.SetHexColor(colorMuted)
		for _, l := range e.Labels {
			ax := 0.0
			if l.Anchor == scene.AnchorMiddle {
				ax = 0.5
			}
			dc.DrawStringAnchored(l.Text, tx(l.At.X), ty(l.At.Y), ax, 0)
		}
	}

	for _, n := range sc.Nodes {
		r := n.Rect
		x, y, wd, ht := tx(r.X), ty(r.Y), r.Width*k, r.Height*k
		dc.DrawRoundedRectangle(x, y, wd, ht, 4*k)
		dc.SetHexColor(fillFor(n))
		dc.FillPreserve()
		stroke, lw := colorBorder, 1.0
		if n.OutlineColor != "" && isHexColor(n.OutlineColor) {
			stroke = n.OutlineColor
		}
		if opts.Highlight != "" && n.ShapeID == opts.Highlight {
			stroke, lw = colorHighlight, 3
		}
		dc.SetHexColor(stroke)
		dc.SetLineWidth(math.Max(lw*k, 1))
		dc.Stroke()

		dc.Push()
		dc.DrawRectangle(x, y, wd, ht)
		dc.Clip()
		for _, row := range layoutNode(n) {
			ry := y + row.y*k
			rx := x + textInset*k
			switch row.kind {
			case rowSeparator:
				dc.SetHexColor(colorBorder)
				dc.SetLineWidth(math.Max(0.5*k, 0.5))
				dc.DrawLine(x, ry, x+wd, ry)
				dc.Stroke()
			case rowMarker:
				dc.SetHexColor(colorMuted)
				dc.DrawString(row.text, rx, ry)
			case rowItem:
				dc.SetHexColor(colorText)
				text := row.text
				if row.typ != "" {
					text += " " + row.typ
				}
				dc.DrawString(text, rx, ry)
			default:
				dc.SetHexColor(colorText)
				dc.DrawString(row.text, rx, ry)
			}
		}
		dc.ResetClip()
		dc.Pop()
	}

	return dc.EncodePNG(w)
}

// isHexColor accepts #rgb and #rrggbb, the forms gg.SetHexColor understands.
func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}
