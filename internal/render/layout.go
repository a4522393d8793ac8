package render

import (
	"github.com/fwbo-viewer/fwbo/internal/handler"
	"github.com/fwbo-viewer/fwbo/internal/scene"
)

// Node body metrics in display units.
const (
	headerHeight = 22.0
	rowHeight    = 16.0
	textInset    = 6.0
	fontSize     = 12.0
)

type rowKind int

const (
	rowHeader rowKind = iota
	rowMarker
	rowItem
	rowNav
	rowSeparator
)

// row is one line of a node body. Y is the baseline offset from the node top.
type row struct {
	kind rowKind
	text string
	typ  string
	y    float64
}

// layoutNode lays out the rows of n top to bottom, dropping rows that fall below the node.
func layoutNode(n scene.Node) []row {
	rows := []row{{kind: rowHeader, text: n.Header, y: headerHeight - textInset}}
	y := headerHeight
	add := func(r row) bool {
		if r.kind == rowSeparator {
			r.y = y + 2
			y += 4
		} else {
			r.y = y + rowHeight - 4
			y += rowHeight
		}
		if n.Rect.Height > 0 && y > n.Rect.Height {
			return false
		}
		rows = append(rows, r)
		return true
	}

	if n.Reference {
		add(row{kind: rowMarker, text: handler.AliasMarker})
		return rows
	}
	for _, it := range n.Items {
		if !add(row{kind: rowItem, text: it.Name, typ: it.Type}) {
			return rows
		}
	}
	if n.Separator && !add(row{kind: rowSeparator}) {
		return rows
	}
	for _, nav := range n.NavItems {
		if !add(row{kind: rowNav, text: nav}) {
			return rows
		}
	}
	return rows
}
