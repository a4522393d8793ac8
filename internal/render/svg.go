package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/scene"
)

// Palette used by both encoders.
const (
	colorBackground = "#ffffff"
	colorEntity     = "#eef4fb"
	colorService    = "#f3eefb"
	colorAlias      = "#f6f6f6"
	colorBorder     = "#5b6b7f"
	colorHighlight  = "#e8a317"
	colorText       = "#1f2933"
	colorMuted      = "#6b7785"
	colorConnector  = "#8a96a3"
)

// SVGOptions tunes WriteSVG.
type SVGOptions struct {
	// Highlight is the shape id of the current search match, if any.
	Highlight string
	// Width and Height set the document size attributes; zero means 100%.
	Width, Height int
}

const svgStyle = `.connector{fill:none;stroke:` + colorConnector + `;stroke-width:1.5}
.cardinality-label{font-size:11px;fill:` + colorMuted + `}
.node-header{font-weight:bold}
.property-type,.alias-ref{fill:` + colorMuted + `}
.navigation-item{font-style:italic}
.section-separator{stroke:` + colorBorder + `;stroke-width:0.5}
.highlight rect{stroke:` + colorHighlight + `;stroke-width:3}`

// WriteSVG writes sc as a standalone SVG document whose viewBox is view.
func WriteSVG(w io.Writer, sc *scene.Scene, view model.Rect, opts SVGOptions) error {
	var buf bytes.Buffer
	width, height := "100%", "100%"
	if opts.Width > 0 && opts.Height > 0 {
		width, height = strconv.Itoa(opts.Width), strconv.Itoa(opts.Height)
	}
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s" preserveAspectRatio="xMidYMid meet">`,
		width, height, num(view.X), num(view.Y), num(view.Width), num(view.Height))
	buf.WriteString("\n")
	buf.WriteString("  <style>\n" + svgStyle + "\n  </style>\n")
	fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(sc.Space.X), num(sc.Space.Y), num(sc.Space.Width), num(sc.Space.Height), colorBackground)

	buf.WriteString(`  <g class="connectors">` + "\n")
	for _, e := range sc.Edges {
		writeEdgeSVG(&buf, e)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="shapes" font-family="monospace" font-size="12">` + "\n")
	for _, n := range sc.Nodes {
		writeNodeSVG(&buf, n, n.ShapeID == opts.Highlight && opts.Highlight != "")
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func writeEdgeSVG(buf *bytes.Buffer, e scene.Edge) {
	if len(e.Points) > 0 {
		buf.WriteString(`    <polyline class="connector" points="`)
		for i, p := range e.Points {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(num(p.X) + "," + num(p.Y))
		}
		fmt.Fprintf(buf, `" data-connector-id="%s"/>`+"\n", escape(e.ConnectorID))
	}
	for _, l := range e.Labels {
		anchor := ""
		if l.Anchor == scene.AnchorMiddle {
			anchor = ` text-anchor="middle"`
		}
		fmt.Fprintf(buf, `    <text class="cardinality-label" x="%s" y="%s"%s>%s</text>`+"\n",
			num(l.At.X), num(l.At.Y), anchor, escape(l.Text))
	}
}

func writeNodeSVG(buf *bytes.Buffer, n scene.Node, highlight bool) {
	class := "node-container " + n.Kind.String() + "-node"
	if highlight {
		class += " highlight"
	}
	stroke := colorBorder
	if n.OutlineColor != "" {
		stroke = n.OutlineColor
	}
	r := n.Rect
	fmt.Fprintf(buf, `    <g class="%s" data-shape-id="%s">`+"\n", class, escape(n.ShapeID))
	fmt.Fprintf(buf, `      <rect x="%s" y="%s" width="%s" height="%s" rx="4" fill="%s" stroke="%s"/>`+"\n",
		num(r.X), num(r.Y), num(r.Width), num(r.Height), fillFor(n), escape(stroke))

	tx := num(r.X + textInset)
	for _, row := range layoutNode(n) {
		y := num(r.Y + row.y)
		switch row.kind {
		case rowHeader:
			fmt.Fprintf(buf, `      <text class="node-header" x="%s" y="%s" fill="%s">%s</text>`+"\n", tx, y, colorText, escape(row.text))
		case rowMarker:
			fmt.Fprintf(buf, `      <text class="alias-ref" x="%s" y="%s">%s</text>`+"\n", tx, y, escape(row.text))
		case rowItem:
			if row.typ == "" {
				fmt.Fprintf(buf, `      <text class="operation-name" x="%s" y="%s" fill="%s">%s</text>`+"\n", tx, y, colorText, escape(row.text))
				continue
			}
			fmt.Fprintf(buf, `      <text class="node-item" x="%s" y="%s" fill="%s"><tspan class="property-name">%s</tspan> <tspan class="property-type">%s</tspan></text>`+"\n",
				tx, y, colorText, escape(row.text), escape(row.typ))
		case rowSeparator:
			fmt.Fprintf(buf, `      <line class="section-separator" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
				num(r.X), y, num(r.X+r.Width), y)
		case rowNav:
			fmt.Fprintf(buf, `      <text class="navigation-item" x="%s" y="%s" fill="%s">%s</text>`+"\n", tx, y, colorText, escape(row.text))
		}
	}
	buf.WriteString("    </g>\n")
}

func fillFor(n scene.Node) string {
	switch n.Kind {
	case model.KindService:
		return colorService
	case model.KindAlias:
		return colorAlias
	}
	return colorEntity
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
