package ui

import "github.com/charmbracelet/lipgloss"

// CompactBreakpoint is the default width (columns) below which the compact layout is used
const CompactBreakpoint = 100

var (
	colorAccent  = lipgloss.Color("#7D56F4")
	colorMuted   = lipgloss.Color("#767676")
	colorText    = lipgloss.Color("#E4E4E4")
	colorRed     = lipgloss.Color("#E05561")
	colorYellow  = lipgloss.Color("#E5C07B")
	colorGreen   = lipgloss.Color("#98C379")
	colorBlue    = lipgloss.Color("#61AFEF")
	colorSurface = lipgloss.Color("#3A3A3A")
)

// Styles holds every lipgloss style for one terminal width
type Styles struct {
	Width   int
	Compact bool

	Title       lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Normal      lipgloss.Style
	Muted       lipgloss.Style
	Selected    lipgloss.Style
	Accent      lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Box         lipgloss.Style
	Tile        lipgloss.Style
	TileValue   lipgloss.Style
	Banner      lipgloss.Style
}

// NewStyles builds the styles for width. Widths below breakpoint switch to
// the compact layout: no box borders, stacked panes and single-column tiles.
func NewStyles(width, breakpoint int) Styles {
	if breakpoint <= 0 {
		breakpoint = CompactBreakpoint
	}

	s := Styles{
		Width:   width,
		Compact: width < breakpoint,
	}

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	s.TabActive = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorAccent).Padding(0, 1)
	s.TabInactive = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	s.Normal = lipgloss.NewStyle().Foreground(colorText)
	s.Muted = lipgloss.NewStyle().Foreground(colorMuted)
	s.Selected = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	s.Accent = lipgloss.NewStyle().Foreground(colorBlue)
	s.Error = lipgloss.NewStyle().Foreground(colorRed)
	s.Success = lipgloss.NewStyle().Foreground(colorGreen)
	s.Warning = lipgloss.NewStyle().Foreground(colorYellow)
	s.TileValue = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	s.Banner = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorRed).Padding(0, 1)

	if s.Compact {
		s.Box = lipgloss.NewStyle().Padding(0, 1)
		s.Tile = lipgloss.NewStyle().Padding(0, 1)
		s.TabActive = s.TabActive.Padding(0)
		s.TabInactive = s.TabInactive.Padding(0)
		return s
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSurface).
		Padding(0, 1)
	s.Tile = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSurface).
		Padding(0, 2).
		Width(tileWidth(width))

	return s
}

// PaneWidths splits the content width into list and detail panes. Compact
// layouts stack the panes, so both get the full width.
func (s Styles) PaneWidths() (int, int) {
	if s.Compact {
		return s.Width, s.Width
	}
	list := s.Width * 2 / 5
	return list, s.Width - list - 1
}

func tileWidth(width int) int {
	w := (width - 8) / 4
	if w < 18 {
		w = 18
	}
	return w
}

// MarkerStyle colors a marker by severity
func (s Styles) MarkerStyle(marker string) lipgloss.Style {
	switch marker {
	case "URGENT":
		return s.Error
	case "REVIEW", "MISSING_INFO":
		return s.Warning
	case "INCOMPLETE_OCR":
		return s.Accent
	default:
		return s.Muted
	}
}

// OcrStyle colors an OCR status
func (s Styles) OcrStyle(status string) lipgloss.Style {
	switch status {
	case "MATCHED":
		return s.Success
	case "PENDING":
		return s.Warning
	case "FAILED":
		return s.Error
	default:
		return s.Muted
	}
}

// ColorStyle maps a named status color to a style
func (s Styles) ColorStyle(color string) lipgloss.Style {
	switch color {
	case "green":
		return s.Success
	case "yellow":
		return s.Warning
	case "red":
		return s.Error
	default:
		return s.Muted
	}
}
