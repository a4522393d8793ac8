// Package server exposes the parsed model, rendered diagram and edit intents over HTTP.
package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/fwbo-viewer/fwbo/internal/edit"
	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/render"
	"github.com/fwbo-viewer/fwbo/internal/result"
	"github.com/fwbo-viewer/fwbo/internal/scene"
	"github.com/fwbo-viewer/fwbo/internal/search"
	"github.com/fwbo-viewer/fwbo/internal/tooltip"
	"github.com/fwbo-viewer/fwbo/internal/viewport"
)

// Server holds the latest good parse and its scene.
type Server struct {
	renderer  *render.Renderer
	sender    edit.Sender
	modelPath string
	log       *slog.Logger

	mu     sync.RWMutex
	result *result.ParseResult
	scene  *scene.Scene
}

// New returns a server with no model loaded. sender may be nil to disable intents.
func New(r *render.Renderer, sender edit.Sender, modelPath string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{renderer: r, sender: sender, modelPath: modelPath, log: log}
}

// Update swaps in a successful parse result. Failed results are ignored so the previous model stays.
func (s *Server) Update(res *result.ParseResult) {
	if res == nil || !res.Success || res.Data == nil {
		return
	}
	sc := s.renderer.Render(res.Data)
	s.mu.Lock()
	s.result = res
	s.scene = sc
	s.mu.Unlock()
}

func (s *Server) current() (*result.ParseResult, *scene.Scene, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.scene, s.result != nil
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(s.log))
	router.Use(recovery(s.log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/model", s.getModel)
		api.GET("/diagram.svg", s.getSVG)
		api.GET("/diagram.png", s.getPNG)
		api.GET("/search", s.getSearch)
		api.GET("/aliases/:name/entity", s.getAliasEntity)
		api.POST("/intents/:op", s.postIntent)
	}

	router.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "not found")
	})
	return router
}

func (s *Server) getModel(c *gin.Context) {
	res, _, ok := s.current()
	if !ok {
		fail(c, http.StatusServiceUnavailable, "no model loaded")
		return
	}
	success(c, res)
}

// viewFor frames the first match of q, or the whole coordinate space.
func (s *Server) viewFor(sc *scene.Scene, q string) model.Rect {
	if m := search.Match(sc, q); len(m) > 0 {
		pad := s.renderer.Options().Viewport.TargetPadding
		return viewport.ZoomToTarget(sc.Nodes[m[0]].Rect, pad)
	}
	return sc.Space
}

func (s *Server) getSVG(c *gin.Context) {
	_, sc, ok := s.current()
	if !ok {
		fail(c, http.StatusServiceUnavailable, "no model loaded")
		return
	}
	q := c.Query("q")
	highlight := ""
	if m := search.Match(sc, q); len(m) > 0 {
		highlight = sc.Nodes[m[0]].ShapeID
	}
	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, sc, s.viewFor(sc, q), render.SVGOptions{Highlight: highlight}); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func (s *Server) getPNG(c *gin.Context) {
	_, sc, ok := s.current()
	if !ok {
		fail(c, http.StatusServiceUnavailable, "no model loaded")
		return
	}
	width, errW := strconv.Atoi(c.DefaultQuery("width", "1280"))
	height, errH := strconv.Atoi(c.DefaultQuery("height", "800"))
	if errW != nil || errH != nil || width <= 0 || height <= 0 || width > 8192 || height > 8192 {
		fail(c, http.StatusBadRequest, "width and height must be integers between 1 and 8192")
		return
	}
	q := c.Query("q")
	opts := render.PNGOptions{Width: width, Height: height}
	if m := search.Match(sc, q); len(m) > 0 {
		opts.Highlight = sc.Nodes[m[0]].ShapeID
	}
	var buf bytes.Buffer
	if err := render.WritePNG(&buf, sc, s.viewFor(sc, q), opts); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

type searchMatch struct {
	ShapeID string     `json:"shapeId"`
	Header  string     `json:"header"`
	Rect    model.Rect `json:"rect"`
	View    model.Rect `json:"view"`
}

func (s *Server) getSearch(c *gin.Context) {
	_, sc, ok := s.current()
	if !ok {
		fail(c, http.StatusServiceUnavailable, "no model loaded")
		return
	}
	q := c.Query("q")
	view := viewport.NewController(sc.Space, s.renderer.Options().Viewport)
	ctl := search.New(sc, view)
	n := ctl.Search(q)

	matches := make([]searchMatch, 0, n)
	pad := s.renderer.Options().Viewport.TargetPadding
	for _, i := range search.Match(sc, q) {
		node := sc.Nodes[i]
		matches = append(matches, searchMatch{
			ShapeID: node.ShapeID,
			Header:  node.Header,
			Rect:    node.Rect,
			View:    viewport.ZoomToTarget(node.Rect, pad),
		})
	}
	success(c, gin.H{
		"query":   ctl.Query(),
		"count":   n,
		"summary": ctl.Summary(),
		"view":    view.View(),
		"matches": matches,
	})
}

func (s *Server) getAliasEntity(c *gin.Context) {
	res, _, ok := s.current()
	if !ok {
		fail(c, http.StatusServiceUnavailable, "no model loaded")
		return
	}
	name := c.Param("name")
	node := scene.Node{ShapeID: name, Kind: model.KindAlias, Header: name, Reference: true}
	e, found := tooltip.Resolve(res.Data, model.NewIndex(res.Data), node)
	if !found {
		fail(c, http.StatusNotFound, "alias does not resolve to an entity", ErrorItem{ID: name, Message: "unknown alias or entity"})
		return
	}
	success(c, e)
}

func (s *Server) postIntent(c *gin.Context) {
	if s.sender == nil {
		fail(c, http.StatusNotImplemented, "edit intents are disabled")
		return
	}
	op, err := edit.ParseOp(c.Param("op"))
	if err != nil {
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	payload := map[string]any{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return
	}
	if _, has := payload[edit.KeyModelPath]; !has && s.modelPath != "" {
		payload[edit.KeyModelPath] = s.modelPath
	}
	in := edit.Intent{Op: op, Payload: payload}
	if err := in.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.sender.Send(c.Request.Context(), in)
	switch {
	case errors.Is(err, edit.ErrRejected):
		fail(c, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		fail(c, http.StatusBadGateway, err.Error())
	default:
		success(c, resp)
	}
}
