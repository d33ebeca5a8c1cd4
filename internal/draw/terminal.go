package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// maxChunkSize keeps each write under a typical 1500 byte MTU so frames
// stream smoothly over SSH.
const maxChunkSize = 1400

// ChunkWriter is the ANSI Surface. A frame is queued as cursor moves and
// glyphs, then written out in MTU-sized chunks on Flush.
//
// The writer remembers where the terminal cursor will be after each write and
// skips the cursor sequence when the next cell follows on the same row; a
// horizontal run of changed half-blocks then costs one move instead of one
// per cell.
type ChunkWriter struct {
	frame  strings.Builder
	out    *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int

	// cursor position in canvas coordinates; cursorKnown is false after
	// anything that moves it unpredictably.
	cursorCol   int
	cursorRow   int
	cursorKnown bool
}

// NewChunkWriter creates a ChunkWriter writing to w. offsetCol and offsetRow
// shift every cell (for canvas centering).
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
	cw.cursorKnown = false
}

// moveTo positions the cursor at the 1-based canvas cell. It reports false
// when the cell falls left of or above the terminal.
func (cw *ChunkWriter) moveTo(col, row int) bool {
	termCol, termRow := col+cw.offCol, row+cw.offRow
	if termCol < 1 || termRow < 1 {
		return false
	}
	if cw.cursorKnown && cw.cursorCol == col && cw.cursorRow == row {
		return true
	}
	cw.frame.WriteString("\033[")
	cw.frame.Write(strconv.AppendInt(cw.numBuf[:0], int64(termRow), 10))
	cw.frame.WriteByte(';')
	cw.frame.Write(strconv.AppendInt(cw.numBuf[:0], int64(termCol), 10))
	cw.frame.WriteByte('H')
	return true
}

// SetCell writes a single glyph at the cell.
func (cw *ChunkWriter) SetCell(col, row int, ch rune) {
	if !cw.moveTo(col, row) {
		return
	}
	cw.frame.WriteRune(ch)
	cw.advance(col+1, row)
}

// WriteAt writes single-width text starting at the cell.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	if !cw.moveTo(col, row) {
		return
	}
	cw.frame.WriteString(s)
	cw.advance(col+utf8.RuneCountInString(s), row)
}

func (cw *ChunkWriter) advance(col, row int) {
	cw.cursorCol, cw.cursorRow, cw.cursorKnown = col, row, true
}

// WriteString queues raw output such as escape sequences. The cursor position
// is unknown afterwards.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame.WriteString(s)
	cw.cursorKnown = false
}

// Clear queues a full terminal clear.
func (cw *ChunkWriter) Clear() {
	cw.WriteString("\033[H\033[2J")
}

// Flush writes the queued frame in chunks and starts a new one.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.WriteString(data[:n]); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		data = data[n:]
	}
	return cw.out.Flush()
}

var _ Surface = (*ChunkWriter)(nil)

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves the cursor home.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}
