package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/mycontracts/pkg/derive"
	"github.com/mwantia/mycontracts/pkg/view"
)

func (m Model) handleTasksKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.svc.Tasks.State().Tasks

	switch {
	case isDown(msg):
		if m.taskCursor < len(tasks)-1 {
			m.taskCursor++
		}
	case isUp(msg):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case isEnter(msg):
		if m.taskCursor < len(tasks) {
			m.switchTab(TabFiles)
			return m, m.selectFile(tasks[m.taskCursor].ID)
		}
	case isKey(msg, "r"):
		return m, m.do(m.svc.Tasks.Refresh)
	}
	return m, nil
}

func (m Model) renderTasks() string {
	state := m.svc.Tasks.State()
	switch {
	case state.State == view.StateLoading && len(state.Tasks) == 0:
		return m.styles.Muted.Render("Loading tasks...")
	case len(state.Tasks) == 0:
		return m.styles.Muted.Render("No files with a due date.")
	}

	now := m.opts.Now()
	lines := make([]string, 0, len(state.Tasks))
	for i, f := range state.Tasks {
		label := derive.DueLabel(f.DueDate, now)
		style := m.styles.Normal
		switch {
		case derive.IsOverdue(f.DueDate, now):
			style = m.styles.Error
		case label == "TODAY" || label == "Tomorrow":
			style = m.styles.Warning
		}

		prefix := "  "
		if i == m.taskCursor {
			prefix = m.styles.Selected.Render("› ")
		}
		lines = append(lines, fmt.Sprintf("%s%-18s %s", prefix, style.Render(label), f.Filename))
	}
	return m.styles.Box.Render(strings.Join(lines, "\n"))
}
