package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

type cell struct {
	col, row int
	ch       rune
}

// recordSurface records every SetCell and WriteAt call.
type recordSurface struct {
	cells []cell
	texts []string
}

func (r *recordSurface) SetOffset(int, int)             {}
func (r *recordSurface) SetCell(col, row int, ch rune)  { r.cells = append(r.cells, cell{col, row, ch}) }
func (r *recordSurface) WriteAt(col, row int, s string) { r.texts = append(r.texts, s) }
func (r *recordSurface) Clear()                         {}
func (r *recordSurface) Flush() error                   { return nil }

func TestCanvasRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(0, 0) // top half of cell (1,1)
	c.SetFloat(1, 1) // bottom half of cell (2,1)
	c.SetFloat(2, 2)
	c.SetFloat(2, 3) // both halves of cell (3,2)

	s := &recordSurface{}
	c.Render(s)

	want := map[cell]bool{
		{1, 1, BlockUpperHalf}: true,
		{2, 1, BlockLowerHalf}: true,
		{3, 2, BlockFull}:      true,
	}
	if len(s.cells) != len(want) {
		t.Fatalf("rendered %d cells, want %d: %v", len(s.cells), len(want), s.cells)
	}
	for _, got := range s.cells {
		if !want[got] {
			t.Errorf("unexpected cell %+v", got)
		}
	}
}

func TestCanvasRenderOnlyDiffs(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(0, 0)
	c.Render(&recordSurface{})

	// Same frame again: nothing to send.
	s := &recordSurface{}
	c.Render(s)
	if len(s.cells) != 0 {
		t.Errorf("unchanged frame sent %d cells", len(s.cells))
	}

	// Pixel gone: the cell must be blanked.
	c.Clear()
	s = &recordSurface{}
	c.Render(s)
	if len(s.cells) != 1 || s.cells[0] != (cell{1, 1, BlockEmpty}) {
		t.Errorf("cleared frame sent %v, want one blank at (1,1)", s.cells)
	}
}

func TestCanvasMarkTextDirty(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.Render(&recordSurface{})
	c.MarkTextDirty(2, 2, 2)

	s := &recordSurface{}
	c.Render(s)
	if len(s.cells) != 2 {
		t.Fatalf("repainted %d cells, want 2", len(s.cells))
	}
	for _, got := range s.cells {
		if got.row != 2 || got.ch != BlockEmpty {
			t.Errorf("unexpected repaint %+v", got)
		}
	}
}

func TestCanvasDrawPolygonFilled(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawPolygon([]Point{{1, 1}, {8, 1}, {8, 8}, {1, 8}}, true)
	s := &recordSurface{}
	c.Render(s)
	if len(s.cells) < 8*4 {
		t.Errorf("filled square rendered only %d cells", len(s.cells))
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, oc, or := ClampTermSize(200, 60, 160, 45)
	if w != 160 || h != 45 || oc != 20 || or != 7 {
		t.Errorf("ClampTermSize = %d,%d,%d,%d", w, h, oc, or)
	}
	w, h, oc, or = ClampTermSize(80, 24, 160, 45)
	if w != 80 || h != 24 || oc != 0 || or != 0 {
		t.Errorf("small terminal clamped: %d,%d,%d,%d", w, h, oc, or)
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewScaledCanvas(3, 2, 3, 4)
	c.SetOffset(2, 2)
	s := &recordSurface{}
	c.RenderBorder(s)
	if len(s.texts) != 2+2*2 {
		t.Fatalf("border wrote %d segments: %q", len(s.texts), s.texts)
	}
	if s.texts[0] != "┌───┐" {
		t.Errorf("top border = %q", s.texts[0])
	}
}

func TestChunkWriterOffsetAndFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.SetCell(1, 1, 'x')
	cw.WriteAt(5, 2, "hi")
	if out.Len() != 0 {
		t.Fatal("ChunkWriter wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "\033[4;3Hx") {
		t.Errorf("missing offset cell in %q", got)
	}
	if !strings.Contains(got, "\033[5;7Hhi") {
		t.Errorf("missing offset text in %q", got)
	}
}

func TestChunkWriterSkipsAdjacentMoves(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.SetCell(3, 2, 'a')
	cw.SetCell(4, 2, 'b')
	cw.WriteAt(5, 2, "cd")
	cw.SetCell(7, 2, 'e')
	cw.SetCell(9, 2, 'f')
	cw.SetCell(10, 3, 'g')
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "\033[2;3Habcde\033[2;9Hf\033[3;10Hg"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestChunkWriterClearForgetsCursor(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.SetCell(1, 1, 'a')
	cw.Clear()
	cw.SetCell(2, 1, 'b')
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "\033[1;2Hb") {
		t.Errorf("cell after clear not positioned: %q", out.String())
	}
}

func TestChunkWriterClipsOffscreen(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.SetCell(0, 1, 'x')
	cw.WriteAt(1, 0, "y")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("offscreen writes produced %q", out.String())
	}
}

func TestChunkWriterLargeFrame(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	long := strings.Repeat("a", maxChunkSize*3+7)
	cw.WriteString(long)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != long {
		t.Error("chunked flush lost data")
	}
}

func TestTcellSurface(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Skipf("simulation screen unavailable: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 10)

	s := NewTcellSurface(screen)
	s.SetOffset(1, 1)
	s.SetCell(1, 1, BlockFull)
	s.WriteAt(3, 2, "ok")
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}

	if r, _, _, _ := screen.GetContent(1, 1); r != BlockFull {
		t.Errorf("cell (1,1) = %q, want full block", r)
	}
	if r, _, _, _ := screen.GetContent(3, 2); r != 'o' {
		t.Errorf("cell (3,2) = %q, want 'o'", r)
	}
	if w, h, _ := s.Size(); w != 20 || h != 10 {
		t.Errorf("Size = %dx%d", w, h)
	}
}
