package timeline

import (
	"fmt"
	"strconv"
)

// Point is a position on the canvas.
type Point struct {
	X float64
	Y float64
}

// Path is an orthogonal connector: horizontal from Start to MidX, vertical
// to End.Y, then horizontal into End.
type Path struct {
	Start Point
	MidX  float64
	End   Point
}

// NewPath routes a connector between two points through their horizontal
// midpoint.
func NewPath(from, to Point) Path {
	return Path{
		Start: from,
		MidX:  from.X + (to.X-from.X)/2,
		End:   to,
	}
}

// SVG returns the path as an SVG "d" attribute.
func (p Path) SVG() string {
	return fmt.Sprintf("M %s %s H %s V %s H %s",
		num(p.Start.X), num(p.Start.Y), num(p.MidX), num(p.End.Y), num(p.End.X))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
