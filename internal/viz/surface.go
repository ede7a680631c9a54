package viz

// Surface is a 2D drawing target addressed in integer cell coordinates.
// (0,0) is the top-left cell. Implementations must tolerate out-of-range
// Set calls; the renderer clips aggressively but edge geometry can
// overshoot during panning.
type Surface interface {
	Size() (width, height int)
	Clear()
	Set(x, y int, ch rune, color string)
}

// Cell is one drawn position on a Canvas
type Cell struct {
	Ch    rune
	Color string
}

// Canvas is the in-memory Surface used by the terminal view and by
// tests. Cells default to blank after Clear.
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// NewCanvas creates a canvas of the given cell dimensions
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height, cells: make([]Cell, width*height)}
	c.Clear()
	return c
}

// Size returns the canvas dimensions in cells
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Clear blanks every cell
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Ch: ' '}
	}
}

// Set draws a rune at the given cell; out-of-range calls are dropped
func (c *Canvas) Set(x, y int, ch rune, color string) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = Cell{Ch: ch, Color: color}
}

// At returns the cell at the given position
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Cell{}
	}
	return c.cells[y*c.width+x]
}

// Row returns the runes of one row, for assertions and debugging
func (c *Canvas) Row(y int) []rune {
	row := make([]rune, c.width)
	for x := 0; x < c.width; x++ {
		row[x] = c.At(x, y).Ch
	}
	return row
}
