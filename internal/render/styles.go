package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/uf46yr/htop/internal/present"
)

// Palette colors
const (
	ColorHealthy  = "#39FF14"
	ColorWarning  = "#FFAA00"
	ColorCritical = "#FF0055"

	ColorTextPrimary   = "#FFFFFF"
	ColorTextSecondary = "#B4B4D0"
	ColorTextMuted     = "#6B6B8D"

	ColorAccent    = "#FF2E97"
	ColorDarkBg    = "#0A0A0F"
	ColorSurfaceBg = "#12121A"
)

type paletteEntry struct {
	fg   string
	bg   string
	bold bool
}

// palette maps each style class to its colors. StyleText uses the
// terminal's own foreground.
var palette = map[present.Style]paletteEntry{
	present.StyleTitle:    {fg: ColorAccent, bold: true},
	present.StyleLabel:    {fg: ColorTextSecondary},
	present.StyleHeader:   {fg: ColorTextPrimary, bg: ColorSurfaceBg, bold: true},
	present.StyleMuted:    {fg: ColorTextMuted},
	present.StyleNormal:   {fg: ColorHealthy},
	present.StyleWarning:  {fg: ColorWarning},
	present.StyleCritical: {fg: ColorCritical, bold: true},
	present.StyleStale:    {fg: ColorDarkBg, bg: ColorWarning, bold: true},
}

// LipglossStyles builds lipgloss styles for every style class.
func LipglossStyles() map[present.Style]lipgloss.Style {
	styles := make(map[present.Style]lipgloss.Style, len(palette)+1)
	styles[present.StyleText] = lipgloss.NewStyle()
	for class, p := range palette {
		s := lipgloss.NewStyle().Bold(p.bold)
		if p.fg != "" {
			s = s.Foreground(lipgloss.Color(p.fg))
		}
		if p.bg != "" {
			s = s.Background(lipgloss.Color(p.bg))
		}
		styles[class] = s
	}
	return styles
}

// StyledFrame renders frame rows with lipgloss styles, one line per row.
func StyledFrame(frame *present.Frame, styles map[present.Style]lipgloss.Style) string {
	size := frame.Size()
	lines := make([]string, size.Rows)
	var b strings.Builder
	for r := 0; r < size.Rows; r++ {
		b.Reset()
		for _, run := range frame.Runs(r) {
			if s, ok := styles[run.Style]; ok {
				b.WriteString(s.Render(run.Text))
			} else {
				b.WriteString(run.Text)
			}
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// termenvRun renders one run for a plain-text writer. With the Ascii
// profile no escape sequences are produced.
func termenvRun(out *termenv.Output, run present.Run) string {
	p, ok := palette[run.Style]
	if !ok || out.Profile == termenv.Ascii {
		return run.Text
	}
	s := out.String(run.Text)
	if p.fg != "" {
		s = s.Foreground(out.Color(p.fg))
	}
	if p.bg != "" {
		s = s.Background(out.Color(p.bg))
	}
	if p.bold {
		s = s.Bold()
	}
	return s.String()
}
