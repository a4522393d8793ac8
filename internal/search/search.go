// Package search finds entity nodes by exact label and drives the viewport to them.
package search

import (
	"fmt"
	"strings"

	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/scene"
	"github.com/fwbo-viewer/fwbo/internal/viewport"
)

// Match returns the indexes of entity nodes whose header equals the trimmed
// query, ignoring case, in scene order. Alias and service nodes never match.
func Match(sc *scene.Scene, query string) []int {
	q := strings.TrimSpace(query)
	if q == "" || sc == nil {
		return nil
	}
	var out []int
	for i, n := range sc.Nodes {
		if n.Kind != model.KindEntity {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(n.Header), q) {
			out = append(out, i)
		}
	}
	return out
}

// Controller keeps the match list and the current match.
type Controller struct {
	scene   *scene.Scene
	view    *viewport.Controller
	query   string
	matches []int
	current int
}

// New returns a controller over sc that moves view.
func New(sc *scene.Scene, view *viewport.Controller) *Controller {
	return &Controller{scene: sc, view: view}
}

// SetScene swaps in a freshly rendered scene and clears the search state.
func (c *Controller) SetScene(sc *scene.Scene, view *viewport.Controller) {
	c.scene = sc
	c.view = view
	c.clear()
	c.query = ""
}

// Search runs query. With no matches the view is reset; otherwise the first match is framed.
func (c *Controller) Search(query string) int {
	c.clear()
	c.query = strings.TrimSpace(query)
	c.matches = Match(c.scene, c.query)
	if len(c.matches) == 0 {
		c.view.Reset()
		return 0
	}
	c.focus(0)
	return len(c.matches)
}

// Next moves to the following match, wrapping at the end.
func (c *Controller) Next() (*scene.Node, bool) {
	if len(c.matches) == 0 {
		return nil, false
	}
	c.focus(c.current + 1)
	return c.Current()
}

// Prev moves to the preceding match, wrapping at the start.
func (c *Controller) Prev() (*scene.Node, bool) {
	if len(c.matches) == 0 {
		return nil, false
	}
	c.focus(c.current - 1)
	return c.Current()
}

// Current returns the highlighted node.
func (c *Controller) Current() (*scene.Node, bool) {
	if len(c.matches) == 0 {
		return nil, false
	}
	return &c.scene.Nodes[c.matches[c.current]], true
}

// Highlighted returns the shape id of the highlighted node, or "".
func (c *Controller) Highlighted() string {
	if n, ok := c.Current(); ok {
		return n.ShapeID
	}
	return ""
}

// Count returns the number of matches of the last search.
func (c *Controller) Count() int { return len(c.matches) }

// Index returns the zero-based position of the current match.
func (c *Controller) Index() int { return c.current }

// Query returns the trimmed query of the last search.
func (c *Controller) Query() string { return c.query }

// Summary is the match count text: "" before any query, otherwise "N found".
func (c *Controller) Summary() string {
	if c.query == "" {
		return ""
	}
	return fmt.Sprintf("%d found", len(c.matches))
}

func (c *Controller) focus(i int) {
	n := len(c.matches)
	c.current = ((i % n) + n) % n
	c.view.ZoomToTarget(c.scene.Nodes[c.matches[c.current]].Rect)
}

func (c *Controller) clear() {
	c.matches = nil
	c.current = 0
}
