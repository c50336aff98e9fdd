package present

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/uf46yr/htop/internal/proctable"
	"github.com/uf46yr/htop/internal/sampler"
)

// AppName is shown at the start of the title line.
const AppName = "htop"

// Layout is the arrangement chosen for a terminal size.
type Layout int

const (
	// LayoutFull shows one line per host metric with bars.
	LayoutFull Layout = iota
	// LayoutCompact squeezes the host block into two lines.
	LayoutCompact
)

// Lines used by each layout around the process rows.
const (
	fullHostLines    = 5
	compactHostLines = 2
	headerLines      = 1
	footerLines      = 1
	// compactFooterMinRows is the smallest compact frame that keeps a footer.
	compactFooterMinRows = 8
)

// DefaultMinSize is the smallest size that gets the full layout.
var DefaultMinSize = Size{Rows: 24, Cols: 80}

// View is everything one frame is drawn from.
type View struct {
	Snapshot *sampler.Snapshot // nil before the first good sample
	Rows     []proctable.DisplayRow
	Mode     proctable.ViewMode
	Sort     proctable.SortKey
	Size     Size

	// Stale marks a frame drawn from an older snapshot after failed samples.
	Stale    bool
	StaleFor time.Duration

	// Hints is the key help shown in the footer.
	Hints string
}

// Presenter lays out snapshots and process rows into Frames.
type Presenter struct {
	bands   Bands
	minSize Size
}

// New creates a Presenter. A zero minSize means DefaultMinSize.
func New(bands Bands, minSize Size) *Presenter {
	if minSize.Rows <= 0 || minSize.Cols <= 0 {
		minSize = DefaultMinSize
	}
	return &Presenter{bands: bands, minSize: minSize}
}

// Layout returns the layout used for size.
func (p *Presenter) Layout(size Size) Layout {
	if size.Covers(p.minSize) {
		return LayoutFull
	}
	return LayoutCompact
}

// Capacity is how many process rows fit at size. Never negative.
func (p *Presenter) Capacity(size Size, _ proctable.ViewMode) int {
	var n int
	if p.Layout(size) == LayoutFull {
		n = size.Rows - fullHostLines - headerLines - footerLines
	} else {
		n = size.Rows - compactHostLines - headerLines
		if size.Rows >= compactFooterMinRows {
			n -= footerLines
		}
	}
	return max(n, 0)
}

// Render draws v into a new Frame of exactly v.Size.
func (p *Presenter) Render(v View) *Frame {
	f := NewFrame(v.Size)
	size := f.Size()
	if size.Rows == 0 || size.Cols == 0 {
		return f
	}

	var row int
	if p.Layout(size) == LayoutFull {
		row = p.renderFullHost(f, v)
	} else {
		row = p.renderCompactHost(f, v)
	}

	cols := columnsFor(v.Mode, size.Cols)
	renderHeader(f, row, cols)
	row += headerLines

	capacity := p.Capacity(size, v.Mode)
	if v.Snapshot == nil && capacity > 0 {
		f.WriteString(row, 1, "waiting for data...", StyleMuted)
	}
	for i, r := range v.Rows {
		if i >= capacity {
			break
		}
		p.renderRow(f, row+i, cols, r)
	}

	if p.Layout(size) == LayoutFull || size.Rows >= compactFooterMinRows {
		renderFooter(f, size.Rows-1, v)
	}
	return f
}

// renderTitle draws the title text and keeps the stale marker visible at
// the right edge by clipping the title first.
func renderTitle(f *Frame, row int, title []Run, v View) {
	cols := f.Size().Cols
	marker := ""
	if v.Stale {
		marker = "STALE"
		if v.StaleFor > 0 {
			marker += " " + FormatAge(v.StaleFor)
		}
	}
	limit := cols
	if marker != "" {
		limit = cols - len(marker) - 1
	}

	c := 0
	for _, run := range title {
		for _, ch := range run.Text {
			if c+cellWidth(ch) > limit {
				break
			}
			c += f.put(row, c, ch, run.Style)
		}
	}

	if marker != "" {
		f.WriteString(row, max(cols-len(marker), 0), marker, StyleStale)
	}
}

func titleRuns(v View, compact bool) []Run {
	runs := []Run{{Text: " " + AppName + " ", Style: StyleTitle}}
	s := v.Snapshot
	if s == nil {
		return append(runs, Run{Text: " " + Placeholder, Style: StyleMuted})
	}
	h := s.Host
	hostname := h.Hostname
	if hostname == "" {
		hostname = "localhost"
	}
	runs = append(runs,
		Run{Text: " " + hostname, Style: StyleText},
		Run{Text: "  up ", Style: StyleLabel},
		Run{Text: FormatUptime(h.Uptime), Style: StyleText},
	)
	if compact {
		return runs
	}
	runs = append(runs, Run{Text: "  load ", Style: StyleLabel})
	if h.Load == nil {
		runs = append(runs, Run{Text: Placeholder, Style: StyleMuted})
	} else {
		runs = append(runs, Run{
			Text:  fmt.Sprintf("%.2f %.2f %.2f", h.Load.One, h.Load.Five, h.Load.Fifteen),
			Style: StyleText,
		})
	}
	if h.NumCPU > 0 {
		runs = append(runs, Run{Text: "  " + strconv.Itoa(h.NumCPU) + " cpus", Style: StyleMuted})
	}
	return runs
}

func (p *Presenter) renderFullHost(f *Frame, v View) int {
	renderTitle(f, 0, titleRuns(v, false), v)

	s := v.Snapshot
	cols := f.Size().Cols
	barWidth := min(max(cols/2-14, 10), 60)

	if s == nil {
		for i, label := range []string{"CPU", "MEM", "DISK"} {
			f.WriteString(1+i, 1, label, StyleLabel)
			f.WriteString(1+i, 6, Placeholder, StyleMuted)
		}
		p.renderExtras(f, 4, nil)
		return fullHostLines
	}

	h := s.Host
	c := p.renderMeter(f, 1, "CPU", h.CPU, p.bands.CPU, barWidth)
	if !s.Primed {
		f.WriteString(1, c+1, "(warming up)", StyleMuted)
	}

	c = p.renderMeter(f, 2, "MEM", h.Memory, p.bands.Memory, barWidth)
	if h.MemTotal > 0 {
		f.WriteString(2, c+1, ScaleBytes(h.MemUsed, 6)+"/"+ScaleBytes(h.MemTotal, 6), StyleText)
	}

	if len(h.Disks) == 0 {
		f.WriteString(3, 1, "DISK", StyleLabel)
		f.WriteString(3, 6, Placeholder, StyleMuted)
	} else {
		c = p.renderMeter(f, 3, "DISK", h.DiskAggregate, p.bands.Disk, barWidth)
		for _, d := range h.Disks {
			c = f.WriteString(3, c+1, d.Mount, StyleLabel)
			c = f.WriteString(3, c+1, fmt.Sprintf("%.0f%%", d.Fraction*100), p.bands.Disk.Classify(d.Fraction).Style())
		}
	}

	p.renderExtras(f, 4, s)
	return fullHostLines
}

// renderMeter draws "LABEL [|||   ] 42.0%" and returns the column after it.
func (p *Presenter) renderMeter(f *Frame, row int, label string, fraction float64, band Band, barWidth int) int {
	st := band.Classify(fraction).Style()
	f.WriteString(row, 1, label, StyleLabel)
	c := 6
	f.Set(row, c, '[', StyleLabel)
	filled := int(fraction*float64(barWidth) + 0.5)
	for i := 0; i < barWidth; i++ {
		if i < filled {
			f.Set(row, c+1+i, '|', st)
		}
	}
	c += barWidth + 1
	f.Set(row, c, ']', StyleLabel)
	return f.WriteString(row, c+1, PadLeft(FormatPercent(fraction), 7), st)
}

// renderExtras draws the battery, temperature and process count line.
func (p *Presenter) renderExtras(f *Frame, row int, s *sampler.Snapshot) {
	c := f.WriteString(row, 1, "BAT ", StyleLabel)
	var battery, temperature *float64
	if s != nil {
		battery, temperature = s.Host.Battery, s.Host.Temperature
	}
	if battery == nil {
		c = f.WriteString(row, c, Placeholder, StyleMuted)
	} else {
		c = f.WriteString(row, c, fmt.Sprintf("%.0f%%", *battery*100), p.bands.Battery.Classify(*battery).Style())
	}

	c = f.WriteString(row, c+3, "TEMP ", StyleLabel)
	if temperature == nil {
		c = f.WriteString(row, c, Placeholder, StyleMuted)
	} else {
		c = f.WriteString(row, c, FormatTemperature(*temperature), p.bands.Temperature.Classify(*temperature).Style())
	}

	c = f.WriteString(row, c+3, "PROCS ", StyleLabel)
	if s == nil {
		f.WriteString(row, c, Placeholder, StyleMuted)
	} else {
		f.WriteString(row, c, strconv.Itoa(s.ProcessCount()), StyleText)
	}
}

func (p *Presenter) renderCompactHost(f *Frame, v View) int {
	renderTitle(f, 0, titleRuns(v, true), v)

	s := v.Snapshot
	type segment struct {
		label string
		value string
		style Style
	}
	na := func(label string) segment { return segment{label, Placeholder, StyleMuted} }

	var segs []segment
	if s == nil {
		segs = []segment{na("C"), na("M"), na("D"), na("B"), na("T")}
	} else {
		h := s.Host
		pct := func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) }
		segs = []segment{
			{"C", pct(h.CPU), p.bands.CPU.Classify(h.CPU).Style()},
			{"M", pct(h.Memory), p.bands.Memory.Classify(h.Memory).Style()},
		}
		if len(h.Disks) == 0 {
			segs = append(segs, na("D"))
		} else {
			segs = append(segs, segment{"D", pct(h.DiskAggregate), p.bands.Disk.Classify(h.DiskAggregate).Style()})
		}
		if h.Battery == nil {
			segs = append(segs, na("B"))
		} else {
			segs = append(segs, segment{"B", pct(*h.Battery), p.bands.Battery.Classify(*h.Battery).Style()})
		}
		if h.Temperature == nil {
			segs = append(segs, na("T"))
		} else {
			segs = append(segs, segment{"T", fmt.Sprintf("%.0fC", *h.Temperature), p.bands.Temperature.Classify(*h.Temperature).Style()})
		}
	}

	c := 1
	for _, seg := range segs {
		c = f.WriteString(1, c, seg.label+" ", StyleLabel)
		c = f.WriteString(1, c, seg.value, seg.style) + 1
	}
	return compactHostLines
}

type placedColumn struct {
	proctable.Column
	start int
	width int
}

// columnsFor places the mode's columns on a line of cols cells. The
// command column takes whatever is left.
func columnsFor(mode proctable.ViewMode, cols int) []placedColumn {
	defs := proctable.Columns(mode)
	placed := make([]placedColumn, 0, len(defs))
	c := 0
	for _, d := range defs {
		w := d.Width
		if w == 0 {
			w = max(cols-c, 0)
		}
		placed = append(placed, placedColumn{Column: d, start: c, width: w})
		c += w + 1
	}
	return placed
}

func renderHeader(f *Frame, row int, cols []placedColumn) {
	f.Fill(row, 0, f.Size().Cols, ' ', StyleHeader)
	for _, col := range cols {
		text := PadRight(col.Title, col.width)
		if col.Right {
			text = PadLeft(col.Title, col.width)
		}
		f.WriteString(row, col.start, text, StyleHeader)
	}
}

func (p *Presenter) renderRow(f *Frame, row int, cols []placedColumn, r proctable.DisplayRow) {
	for _, col := range cols {
		text, st := p.cellText(col, r)
		if col.Right {
			text = PadLeft(text, col.width)
		} else {
			text = PadRight(text, col.width)
		}
		f.WriteString(row, col.start, text, st)
	}
}

func (p *Presenter) cellText(col placedColumn, r proctable.DisplayRow) (string, Style) {
	switch col.Field {
	case proctable.FieldPID:
		return ScaleCount(int64(r.PID), col.width), StyleText
	case proctable.FieldUser:
		return r.User, StyleText
	case proctable.FieldCPU:
		return fmt.Sprintf("%.1f", r.CPU*100), p.bands.ProcessCPU.Classify(r.CPU).Style()
	case proctable.FieldMemory:
		return fmt.Sprintf("%.1f", r.Memory*100), p.bands.ProcessMemory.Classify(r.Memory).Style()
	case proctable.FieldVirtual:
		return optionalBytes(r.Virtual, col.width)
	case proctable.FieldResident:
		return optionalBytes(r.Resident, col.width)
	case proctable.FieldElapsed:
		if r.Elapsed == nil {
			return Placeholder, StyleMuted
		}
		return FormatElapsed(*r.Elapsed, col.width), StyleText
	default:
		return r.Command, StyleText
	}
}

func optionalBytes(v *uint64, width int) (string, Style) {
	if v == nil {
		return Placeholder, StyleMuted
	}
	return ScaleBytes(*v, width), StyleText
}

func renderFooter(f *Frame, row int, v View) {
	f.Fill(row, 0, f.Size().Cols, ' ', StyleMuted)
	c := f.WriteString(row, 1, "Mode: ", StyleLabel)
	c = f.WriteString(row, c, v.Mode.String(), StyleText)
	c = f.WriteString(row, c, " | Sort: ", StyleLabel)
	c = f.WriteString(row, c, v.Sort.String(), StyleText)
	hints := strings.TrimSpace(v.Hints)
	if hints == "" {
		hints = "[D]etails [S]ort [Q]uit"
	}
	c = f.WriteString(row, c, " | ", StyleLabel)
	f.WriteString(row, c, hints, StyleMuted)
}
