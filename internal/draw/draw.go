// Package draw renders the half-block canvas and text onto terminal surfaces.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Surface receives rendered cells and text. Columns and rows are 1-based
// canvas coordinates; implementations add the centering offset themselves.
type Surface interface {
	// SetOffset updates the centering offset (e.g. after terminal resize).
	SetOffset(col, row int)
	// SetCell places a single glyph.
	SetCell(col, row int, ch rune)
	// WriteAt writes a string starting at the given cell.
	WriteAt(col, row int, s string)
	// Clear blanks the whole terminal.
	Clear()
	// Flush presents everything written since the last flush.
	Flush() error
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
