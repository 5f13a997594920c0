package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwantia/mycontracts/pkg/derive"
)

func (m Model) renderDashboard() string {
	d := derive.Aggregate(m.svc.Files.State().Files, m.opts.Now())

	tiles := []struct {
		label string
		value int
		style lipgloss.Style
	}{
		{"Total files", d.Total, m.styles.TileValue},
		{"Overdue", d.Overdue, m.styles.Error},
		{"Needs attention", d.NeedsAttention, m.styles.Warning},
		{"Due in 30 days", d.UpcomingDue, m.styles.Accent},
		{"OCR issues", d.OcrIssues, m.styles.Warning},
		{"Missing info", d.MissingInfo, m.styles.Warning},
		{"Uncategorized", d.Uncategorized, m.styles.Muted},
		{"Urgent", d.Urgent, m.styles.Error},
	}

	rendered := make([]string, 0, len(tiles))
	for _, t := range tiles {
		value := t.style.Bold(true).Render(fmt.Sprintf("%d", t.value))
		if m.styles.Compact {
			rendered = append(rendered, m.styles.Tile.Render(fmt.Sprintf("%-16s %s", t.label, value)))
			continue
		}
		rendered = append(rendered, m.styles.Tile.Render(m.styles.Muted.Render(t.label)+"\n"+value))
	}

	var grid string
	if m.styles.Compact {
		grid = lipgloss.JoinVertical(lipgloss.Left, rendered...)
	} else {
		grid = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, rendered[:4]...),
			lipgloss.JoinHorizontal(lipgloss.Top, rendered[4:]...),
		)
	}

	var b strings.Builder
	b.WriteString(grid)
	b.WriteString("\n\n")
	b.WriteString(m.styles.Title.Render("Recommendations"))
	b.WriteString("\n")
	for _, r := range d.Recommendations() {
		b.WriteString("• " + r + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
