package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Vertex is one polygon corner in planar coordinates.
// X is longitude, Y is latitude.
type Vertex struct {
	X float64
	Y float64
}

// vertexEpsilon nudges a ray whose y exactly matches a segment endpoint, so
// the crossing count stays odd for points on a horizontal edge or vertex.
// Such boundary points therefore classify as inside.
const vertexEpsilon = 1e-7

var coordCleaner = strings.NewReplacer("(", "", ")", "")

// ParseVertices converts stored coordinate pairs into polygon vertices.
// Pairs are stored as "latitude,longitude" (optionally parenthesised) but are
// interpreted as (longitude, latitude) internally. This inversion is a wire
// contract; changing it silently flips every containment result.
func ParseVertices(coords []string) ([]Vertex, error) {
	vertices := make([]Vertex, 0, len(coords))
	for _, coord := range coords {
		cleaned := strings.TrimSpace(coordCleaner.Replace(coord))
		parts := strings.Split(cleaned, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid coordinate pair %q", coord)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in %q: %w", coord, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in %q: %w", coord, err)
		}
		vertices = append(vertices, Vertex{X: lon, Y: lat})
	}
	return vertices, nil
}

// PointInPolygon reports whether (x, y) lies inside the polygon using ray
// casting: cast a horizontal ray toward +x and count edge crossings; an odd
// count means inside. Coordinates are treated as planar.
// A polygon with fewer than 3 vertices contains nothing.
func PointInPolygon(x, y float64, polygon []Vertex) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)
	for i := 0; i < n; i++ {
		if rayIntersectsSegment(x, y, polygon[i], polygon[(i+1)%n]) {
			inside = !inside
		}
	}
	return inside
}

// rayIntersectsSegment reports whether the horizontal ray from (px, py)
// toward +x crosses the segment a-b.
func rayIntersectsSegment(px, py float64, a, b Vertex) bool {
	x1, y1 := a.X, a.Y
	x2, y2 := b.X, b.Y
	if y1 > y2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	if py == y1 || py == y2 {
		py += vertexEpsilon
	}

	if py < y1 || py > y2 {
		return false
	}

	intersectX := (py-y1)*(x2-x1)/(y2-y1) + x1
	return intersectX > px
}
