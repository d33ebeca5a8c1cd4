package draw

import "github.com/gdamore/tcell/v2"

// TcellSurface renders onto a tcell screen. tcell keeps its own back buffer
// and diffs on Show, so cells persist between flushes exactly like a terminal.
type TcellSurface struct {
	screen tcell.Screen
	style  tcell.Style
	offCol int
	offRow int
}

// NewTcellSurface wraps an initialised tcell screen.
func NewTcellSurface(screen tcell.Screen) *TcellSurface {
	return &TcellSurface{
		screen: screen,
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite),
	}
}

// SetOffset updates the centering offset.
func (t *TcellSurface) SetOffset(col, row int) {
	t.offCol = col
	t.offRow = row
}

// SetCell places a glyph; tcell coordinates are 0-based.
func (t *TcellSurface) SetCell(col, row int, ch rune) {
	x := col - 1 + t.offCol
	y := row - 1 + t.offRow
	if x < 0 || y < 0 {
		return
	}
	t.screen.SetContent(x, y, ch, nil, t.style)
}

// WriteAt writes s one rune per cell.
func (t *TcellSurface) WriteAt(col, row int, s string) {
	x := col
	for _, r := range s {
		t.SetCell(x, row, r)
		x++
	}
}

// Clear blanks the screen buffer.
func (t *TcellSurface) Clear() {
	t.screen.Clear()
}

// Flush presents the buffered frame.
func (t *TcellSurface) Flush() error {
	t.screen.Show()
	return nil
}

// Size reports the current screen size.
func (t *TcellSurface) Size() (int, int, error) {
	w, h := t.screen.Size()
	return w, h, nil
}

var _ Surface = (*TcellSurface)(nil)
