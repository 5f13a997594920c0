package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwantia/mycontracts/pkg/derive"
	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/mwantia/mycontracts/pkg/view"
)

// --- Keys ---

func (m Model) handleFilesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.svc.Files.State()
	visible := m.svc.Files.Visible(m.opts.Now())

	if m.confirmDelete {
		m.confirmDelete = false
		if isKey(msg, "y") && state.SelectedID != 0 {
			id := state.SelectedID
			return m, m.do(func(ctx context.Context) error {
				return m.svc.Files.Delete(ctx, id)
			})
		}
		return m, nil
	}

	switch {
	case isDown(msg):
		if m.cursor < len(visible)-1 {
			m.cursor++
			return m, m.selectFile(visible[m.cursor].ID)
		}
	case isUp(msg):
		if m.cursor > 0 && m.cursor <= len(visible)-1 {
			m.cursor--
			return m, m.selectFile(visible[m.cursor].ID)
		}
	case isKey(msg, "f"):
		return m, m.setFilters(next(derive.MarkerFilterOptions(), state.MarkerFilter), state.OcrFilter)
	case isKey(msg, "o"):
		return m, m.setFilters(state.MarkerFilter, next(derive.OcrFilterOptions(), state.OcrFilter))
	case isKey(msg, "1", "2", "3", "4", "5"):
		i := int(msg.String()[0] - '1')
		if state.SelectedID != 0 && i < len(models.MarkerOptions) {
			m.svc.Files.ToggleMarker(models.MarkerOptions[i])
		}
	case isKey(msg, "s"):
		return m, m.do(m.svc.Files.SaveMarkers)
	case isKey(msg, "u"):
		if state.SelectedID != 0 {
			m.input = inputDueDate
			m.buffer = state.DueDateDraft
		}
	case isKey(msg, "n"):
		if state.SelectedID != 0 {
			m.input = inputNote
			m.buffer = state.NoteDraft
		}
	case isKey(msg, "d"):
		if selected, ok := state.Selected(); ok {
			return m, m.download(selected)
		}
	case isKey(msg, "x"):
		m.confirmDelete = state.SelectedID != 0
	case isKey(msg, "c"):
		if selected, ok := state.Selected(); ok {
			id := selected.ID
			m.svc.Chat.SetContext(&id, selected.Filename)
			m.switchTab(TabChat)
		}
	case isKey(msg, "r"):
		m.requested = 0
		return m, m.do(m.svc.Files.RefreshList)
	}
	return m, nil
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isBack(msg):
		m.input = inputNone
		m.buffer = ""
		return m, nil
	case isEnter(msg):
		mode, value := m.input, m.buffer
		m.input = inputNone
		m.buffer = ""
		if mode == inputDueDate {
			m.svc.Files.SetDueDateDraft(value)
			return m, m.do(m.svc.Files.SaveDueDate)
		}
		m.svc.Files.SetNoteDraft(value)
		return m, m.do(m.svc.Files.SaveNote)
	}
	appendInput(&m.buffer, msg)
	return m, nil
}

func (m *Model) setFilters(markerFilter, ocrFilter string) tea.Cmd {
	id, changed := m.svc.Files.SetFilters(markerFilter, ocrFilter, m.opts.Now())
	m.syncCursor()
	if !changed {
		return nil
	}
	return m.selectFile(id)
}

func (m Model) download(f models.FileSummary) tea.Cmd {
	if m.svc.Device == nil || m.svc.DownloadURL == nil {
		return errorf("downloads are not available")
	}
	url := m.svc.DownloadURL(f.ID)
	return func() tea.Msg {
		path, err := m.svc.Device.DownloadFile(m.ctx, url, f.Filename)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg{fmt.Sprintf("Saved %s", path)}
	}
}

// next returns the option following current, wrapping around
func next(options []string, current string) string {
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}

// --- View ---

func (m Model) renderFiles() string {
	state := m.svc.Files.State()
	visible := m.svc.Files.Visible(m.opts.Now())
	listWidth, detailWidth := m.styles.PaneWidths()

	filters := fmt.Sprintf("marker: %s · ocr: %s · %d of %d",
		state.MarkerFilter, state.OcrFilter, len(visible), len(state.Files))

	list := m.renderFileList(state, visible, listWidth)
	detail := m.renderFileDetail(state, detailWidth)

	if m.styles.Compact {
		return m.styles.Muted.Render(filters) + "\n\n" + list + "\n\n" + detail
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Box.Width(listWidth-2).Render(list),
		" ",
		m.styles.Box.Width(detailWidth-2).Render(detail),
	)
	return m.styles.Muted.Render(filters) + "\n\n" + body
}

func (m Model) renderFileList(state view.FilesState, visible []models.FileSummary, width int) string {
	switch {
	case state.ListState == view.StateLoading && len(state.Files) == 0:
		return m.styles.Muted.Render("Loading files...")
	case len(state.Files) == 0:
		return m.styles.Muted.Render("No files uploaded yet.")
	case len(visible) == 0:
		return m.styles.Muted.Render("No files match the filters.")
	}

	lines := make([]string, 0, len(visible))
	for i, f := range visible {
		name := truncate(f.Filename, width-14)
		ocr := m.styles.OcrStyle(string(f.Ocr())).Render(string(f.Ocr()))
		line := fmt.Sprintf("%s %s", name, ocr)
		if f.DueDate != nil {
			line += " " + m.styles.Muted.Render(f.DueDate.Format(derive.DayLayout))
		}
		if f.ID == state.SelectedID || i == m.cursor && state.SelectedID == 0 {
			lines = append(lines, m.styles.Selected.Render("› ")+line)
		} else {
			lines = append(lines, "  "+line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFileDetail(state view.FilesState, width int) string {
	if state.SelectedID == 0 {
		return m.styles.Muted.Render("Select a file to see its details.")
	}
	if state.Detail == nil || state.Detail.ID != state.SelectedID {
		if state.DetailState == view.StateError {
			return m.styles.Error.Render("Unable to load the file details.")
		}
		return m.styles.Muted.Render("Loading details...")
	}

	d := state.Detail
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(truncate(d.Filename, width)))
	b.WriteString("\n\n")

	row := func(key, value string) {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%-10s", key)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Size", derive.FormatBytes(d.Size))
	row("Created", derive.FormatDate(d.CreatedAt))
	row("Due", derive.FormatDate(d.DueDate))
	if d.Mime != "" {
		row("Type", d.Mime)
	}
	if d.Contract != nil && d.Contract.Title != "" {
		row("Contract", d.Contract.Title)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Markers"))
	b.WriteString("\n")
	for i, marker := range models.MarkerOptions {
		check := "[ ]"
		if slices.Contains(state.MarkersDraft, marker) {
			check = "[x]"
		}
		label := m.styles.MarkerStyle(string(marker)).Render(string(marker))
		b.WriteString(fmt.Sprintf("%d %s %s\n", i+1, check, label))
	}
	if state.Saving[view.FieldMarkers] {
		b.WriteString(m.styles.Muted.Render("saving markers..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderField("Due date (YYYY-MM-DD)", state.DueDateDraft, inputDueDate, state.Saving[view.FieldDueDate]))
	b.WriteString(m.renderField("Note", state.NoteDraft, inputNote, state.Saving[view.FieldNote]))

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("OCR"))
	b.WriteString("\n")
	if d.Ocr == nil {
		b.WriteString(derive.Placeholder)
	} else {
		status := m.styles.OcrStyle(string(d.Ocr.Status)).Render(string(d.Ocr.Status))
		b.WriteString(fmt.Sprintf("%s · processed %s · retries %d\n", status, derive.FormatDate(d.Ocr.ProcessedAt), d.Ocr.RetryCount))
		raw := derive.Placeholder
		if d.Ocr.RawJSON != "" {
			raw = derive.PrettyJSON(d.Ocr.RawJSON)
		}
		b.WriteString(m.styles.Normal.Width(width).Render(raw))
	}

	if m.confirmDelete {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Delete %s? y to confirm", d.Filename)))
	}
	return b.String()
}

func (m Model) renderField(label, draft string, mode inputMode, saving bool) string {
	value := draft
	if value == "" {
		value = derive.Placeholder
	}
	if m.input == mode {
		value = m.buffer + m.styles.Accent.Render("█")
	}
	if saving {
		value += m.styles.Muted.Render(" saving...")
	}
	return m.styles.Muted.Render(label) + "\n" + value + "\n"
}

func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
