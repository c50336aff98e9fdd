package present

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Size is a terminal size in character cells.
type Size struct {
	Rows int
	Cols int
}

// Covers reports whether s is at least min in both dimensions.
func (s Size) Covers(min Size) bool {
	return s.Rows >= min.Rows && s.Cols >= min.Cols
}

// Style is a semantic style class. Renderers decide what each class looks like.
type Style uint8

const (
	StyleText Style = iota
	StyleTitle
	StyleLabel
	StyleHeader
	StyleMuted
	StyleNormal
	StyleWarning
	StyleCritical
	StyleStale
)

var styleNames = [...]string{"text", "title", "label", "header", "muted", "normal", "warning", "critical", "stale"}

// String returns the style class name.
func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "text"
}

// Cell is one character position. A wide rune fills its own cell and the
// next, which holds Continuation.
type Cell struct {
	Ch    rune
	Style Style
}

var blank = Cell{Ch: ' ', Style: StyleText}

// ReplacementRune stands in for runes that cannot be drawn in one or two cells.
const ReplacementRune = '?'

// Continuation marks the second cell of a wide rune. It has no text of its own.
const Continuation rune = 0

// Fixed width rules so frames do not depend on the user's locale.
var widthCondition = &runewidth.Condition{EastAsianWidth: false}

// Frame is a Rows x Cols grid of cells. All writes are clipped to the grid.
// A Frame handed out by the Presenter is never written again.
type Frame struct {
	size  Size
	cells []Cell
}

// NewFrame returns a blank frame. Negative dimensions are treated as zero.
func NewFrame(size Size) *Frame {
	if size.Rows < 0 {
		size.Rows = 0
	}
	if size.Cols < 0 {
		size.Cols = 0
	}
	cells := make([]Cell, size.Rows*size.Cols)
	for i := range cells {
		cells[i] = blank
	}
	return &Frame{size: size, cells: cells}
}

// Size returns the frame dimensions.
func (f *Frame) Size() Size {
	return f.size
}

func (f *Frame) inside(r, c int) bool {
	return r >= 0 && r < f.size.Rows && c >= 0 && c < f.size.Cols
}

// Cell returns the cell at (r, c), or a blank cell outside the grid.
func (f *Frame) Cell(r, c int) Cell {
	if !f.inside(r, c) {
		return blank
	}
	return f.cells[r*f.size.Cols+c]
}

// Set writes one rune. Wide runes take (r, c) and (r, c+1); a wide rune
// that would cross the right edge becomes a blank. Runes that are not
// printable are replaced with ReplacementRune.
func (f *Frame) Set(r, c int, ch rune, st Style) {
	f.put(r, c, ch, st)
}

// put is Set returning the number of cells ch takes.
func (f *Frame) put(r, c int, ch rune, st Style) int {
	ch = sanitize(ch)
	w := cellWidth(ch)
	if !f.inside(r, c) {
		return w
	}
	i := r*f.size.Cols + c
	f.split(r, c)
	if w == 2 {
		if c+1 >= f.size.Cols {
			f.cells[i] = Cell{Ch: ' ', Style: st}
			return w
		}
		f.split(r, c+1)
		f.cells[i+1] = Cell{Ch: Continuation, Style: st}
	}
	f.cells[i] = Cell{Ch: ch, Style: st}
	return w
}

// split blanks the other half of a wide rune that (r, c) belongs to, so an
// overwrite never leaves half a character behind.
func (f *Frame) split(r, c int) {
	i := r*f.size.Cols + c
	switch {
	case f.cells[i].Ch == Continuation:
		f.cells[i].Ch = ' '
		if c > 0 {
			f.cells[i-1].Ch = ' '
		}
	case c+1 < f.size.Cols && f.cells[i+1].Ch == Continuation:
		f.cells[i+1].Ch = ' '
	}
}

// WriteString writes s starting at (r, c) and returns the column after the
// last rune written, as if nothing were clipped.
func (f *Frame) WriteString(r, c int, s string, st Style) int {
	for _, ch := range s {
		c += f.put(r, c, ch, st)
	}
	return c
}

// Fill paints columns [c0, c1) of row r with ch.
func (f *Frame) Fill(r, c0, c1 int, ch rune, st Style) {
	for c := c0; c < c1; c++ {
		f.Set(r, c, ch, st)
	}
}

// Line returns row r as text, including trailing blanks. Its display
// width is always Cols.
func (f *Frame) Line(r int) string {
	if r < 0 || r >= f.size.Rows {
		return ""
	}
	var b strings.Builder
	for _, cell := range f.cells[r*f.size.Cols : (r+1)*f.size.Cols] {
		if cell.Ch != Continuation {
			b.WriteRune(cell.Ch)
		}
	}
	return b.String()
}

// Lines returns every row as text.
func (f *Frame) Lines() []string {
	lines := make([]string, f.size.Rows)
	for r := range lines {
		lines[r] = f.Line(r)
	}
	return lines
}

// String returns the frame as text with trailing blanks trimmed per line.
func (f *Frame) String() string {
	lines := f.Lines()
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// Run is a maximal stretch of same-styled cells in one row.
type Run struct {
	Text  string
	Style Style
}

// Runs splits row r into styled runs, left to right.
func (f *Frame) Runs(r int) []Run {
	if r < 0 || r >= f.size.Rows || f.size.Cols == 0 {
		return nil
	}
	row := f.cells[r*f.size.Cols : (r+1)*f.size.Cols]

	var runs []Run
	var b strings.Builder
	cur := row[0].Style
	for _, cell := range row {
		if cell.Style != cur {
			runs = append(runs, Run{Text: b.String(), Style: cur})
			b.Reset()
			cur = cell.Style
		}
		if cell.Ch != Continuation {
			b.WriteRune(cell.Ch)
		}
	}
	return append(runs, Run{Text: b.String(), Style: cur})
}

func sanitize(ch rune) rune {
	if ch == ' ' {
		return ch
	}
	if unicode.IsControl(ch) || !unicode.IsPrint(ch) {
		return ReplacementRune
	}
	if w := widthCondition.RuneWidth(ch); w != 1 && w != 2 {
		return ReplacementRune
	}
	return ch
}

// cellWidth is how many cells ch takes once written to a frame.
func cellWidth(ch rune) int {
	if widthCondition.RuneWidth(sanitize(ch)) == 2 {
		return 2
	}
	return 1
}

// TextWidth is how many cells s takes once written to a frame.
func TextWidth(s string) int {
	n := 0
	for _, ch := range s {
		n += cellWidth(ch)
	}
	return n
}
