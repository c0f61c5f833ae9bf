package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Canvas is a color drawing buffer with 2x vertical resolution using half-block
// characters. Supports scaling from logical coordinates to actual terminal pixels.
// Render only emits cells that changed since the previous Render.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x], None if unset
	prev           []Color // Pixels as of the last Render
	stale          []bool  // Cells overwritten by text: [row * termWidth + col]
	dirty          bool    // Redraw every cell on the next Render

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder // Buffer for batching render output
	numBuf          [20]byte        // Scratch buffer for integer formatting
	scaledBuf       []Point         // Reusable buffer for fillPolygon scaled points
	intersectionBuf []float64       // Reusable buffer for scanline intersections
	polygonBuf      []Point         // Reusable buffer for polygon point generation
}

// NewCanvas creates a canvas for the given terminal dimensions.
// No scaling is applied (1:1 mapping onto sub-pixels).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]Color, subPixelHeight*termWidth),
		prev:           make([]Color, subPixelHeight*termWidth),
		stale:          make([]bool, termHeight*termWidth),
		dirty:          true,
		logicalWidth:   logicalWidth,
		logicalHeight:  logicalHeight,
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
	}
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.prev = make([]Color, subPixelHeight*termWidth)
		c.stale = make([]bool, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.dirty = true
	}

	// Update scale factors
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.dirty = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render emit every cell, e.g. after the terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.dirty = true
}

// MarkTextDirty marks width cells starting at the 1-based canvas position
// (col, row) for redraw on the next Render, so text written over the canvas
// does not linger once it is no longer drawn.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	row--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+width, c.termWidth); x++ {
		c.stale[row*c.termWidth+x] = true
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, col Color) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py, col)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, col Color, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// FillCircle fills a circle given in logical coordinates.
// Always sets at least the center pixel so tiny objects stay visible.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	pcx := cx * c.scaleX
	pcy := cy * c.scaleY
	rx := r * c.scaleX
	ry := r * c.scaleY

	c.setPixel(int(math.Round(pcx)), int(math.Round(pcy)), col)
	if rx < 0.5 && ry < 0.5 {
		return
	}

	y0 := int(math.Floor(pcy - ry))
	y1 := int(math.Ceil(pcy + ry))
	for y := y0; y <= y1; y++ {
		dy := (float64(y) + 0.5 - pcy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		xStart := int(math.Ceil(pcx - half - 0.5))
		xEnd := int(math.Floor(pcx + half - 0.5))
		for x := xStart; x <= xEnd; x++ {
			c.setPixel(x, y, col)
		}
	}
}

// DrawCircle draws a circle outline given in logical coordinates.
func (c *Canvas) DrawCircle(cx, cy, r float64, col Color) {
	pr := math.Max(r*c.scaleX, r*c.scaleY)
	if pr < 1 {
		c.SetFloat(cx, cy, col)
		return
	}
	// Enough segments that consecutive points are about a pixel apart.
	segments := int(math.Ceil(2 * math.Pi * pr))
	if segments < 8 {
		segments = 8
	}
	step := 2 * math.Pi / float64(segments)
	prev := Point{X: cx + r, Y: cy}
	for i := 1; i <= segments; i++ {
		sin, cos := math.Sincos(float64(i) * step)
		next := Point{X: cx + cos*r, Y: cy + sin*r}
		c.DrawLine(prev, next, col)
		prev = next
	}
}

// Render outputs the changed cells of the canvas to the writer using
// half-block characters and 256-color escape sequences.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	lastRow, lastCol := -1, -1
	var lastFg, lastBg Color
	styled := false

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			if !c.dirty && !c.stale[row*c.termWidth+col] &&
				top == c.prev[topOffset+col] && bottom == c.prev[bottomOffset+col] {
				continue
			}

			if row != lastRow || col != lastCol+1 {
				c.moveTo(col, row)
			}
			lastRow, lastCol = row, col

			var ch rune
			var fg, bg Color
			switch {
			case top == None && bottom == None:
				ch = BlockEmpty
			case top == bottom:
				ch, fg = BlockFull, top
			case bottom == None:
				ch, fg = BlockUpperHalf, top
			case top == None:
				ch, fg = BlockLowerHalf, bottom
			default:
				ch, fg, bg = BlockUpperHalf, top, bottom
			}

			if !styled || fg != lastFg || bg != lastBg {
				c.setStyle(fg, bg)
				lastFg, lastBg = fg, bg
				styled = true
			}
			c.renderBuf.WriteRune(ch)
		}
	}
	if styled {
		c.renderBuf.WriteString("\033[0m")
	}

	copy(c.prev, c.pixels)
	clear(c.stale)
	c.dirty = false

	io.WriteString(w, c.renderBuf.String())
}

// moveTo appends a cursor position sequence for a 0-based canvas cell.
func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
	c.renderBuf.WriteByte('H')
}

// setStyle appends an SGR sequence that resets attributes and applies fg/bg.
func (c *Canvas) setStyle(fg, bg Color) {
	c.renderBuf.WriteString("\033[0")
	if fg != None {
		c.renderBuf.WriteString(";38;5;")
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(fg), 10))
	}
	if bg != None {
		c.renderBuf.WriteString(";48;5;")
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(bg), 10))
	}
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.Grow((c.termWidth+2)*2 + c.termHeight*2*12)

	bar := strings.Repeat("─", c.termWidth)
	if hasV {
		if hasH {
			writeAt(&buf, left, top, "┌"+bar+"┐")
			writeAt(&buf, left, bottom, "└"+bar+"┘")
		} else {
			writeAt(&buf, c.offsetCol+1, top, bar)
			writeAt(&buf, c.offsetCol+1, bottom, bar)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			writeAt(&buf, left, row, "│")
			writeAt(&buf, right, row, "│")
		}
	}

	io.WriteString(w, buf.String())
}

func writeAt(buf *strings.Builder, col, row int, s string) {
	buf.WriteString("\033[")
	buf.WriteString(strconv.Itoa(row))
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(col))
	buf.WriteByte('H')
	buf.WriteString(s)
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// This avoids per-frame allocations for polygon rendering.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
