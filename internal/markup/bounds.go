package markup

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwbo-viewer/fwbo/internal/model"
)

var edgePointRe = regexp.MustCompile(`\(\s*([-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)\s*:\s*([-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)\s*\)`)

// ParseBounds decodes "x,y,width,height". Anything whose first four fields do
// not all parse as finite numbers yields the zero rectangle.
func ParseBounds(s string) model.Rect {
	parts := strings.Split(s, ",")
	if len(parts) < 4 {
		return model.Rect{}
	}
	var v [4]float64
	for i := 0; i < 4; i++ {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return model.Rect{}
		}
		v[i] = f
	}
	return model.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
}

// ParseEdgePoints extracts every "(x : y)" pair in order, e.g. from
// "[(1.5 : 2.5); (3 : 4)]". Fragments that do not match are skipped.
func ParseEdgePoints(s string) []model.Point {
	points := []model.Point{}
	for _, m := range edgePointRe.FindAllStringSubmatch(s, -1) {
		x, errX := strconv.ParseFloat(m[1], 64)
		y, errY := strconv.ParseFloat(m[2], 64)
		if errX != nil || errY != nil {
			continue
		}
		points = append(points, model.Point{X: x, Y: y})
	}
	return points
}
