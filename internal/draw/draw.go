// Package draw renders to a terminal using half-block characters and ANSI colors.
package draw

import "math"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// Transform rotates each point around the origin by angle, scales by sx/sy
// (applied before rotation) and translates by (x, y). dst and src may alias.
func Transform(dst, src []Point, x, y, angle, sx, sy float64) {
	sin, cos := math.Sincos(angle)
	for i, p := range src {
		px := p.X * sx
		py := p.Y * sy
		dst[i] = Point{
			X: x + px*cos - py*sin,
			Y: y + px*sin + py*cos,
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
