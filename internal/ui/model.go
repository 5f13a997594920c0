// Package ui implements the interactive terminal client: a tabbed bubbletea
// program over the view controllers.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwantia/mycontracts/pkg/device"
	"github.com/mwantia/mycontracts/pkg/view"
)

// --- Messages ---

// refreshedMsg signals that a controller finished a request; controllers
// record their own errors, so the model only has to re-render.
type refreshedMsg struct{}

type errMsg struct{ err error }

type statusMsg struct{ text string }

type tickMsg time.Time

// --- Tabs ---

type Tab int

const (
	TabFiles Tab = iota
	TabTasks
	TabDashboard
	TabAccounts
	TabChat
	tabCount
)

var tabNames = [tabCount]string{"Files", "Tasks", "Dashboard", "Accounts", "Chat"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "unknown"
	}
	return tabNames[t]
}

// inputMode names the text field currently capturing keys
type inputMode int

const (
	inputNone inputMode = iota
	inputDueDate
	inputNote
)

// Services are the controllers and capabilities the program drives
type Services struct {
	Files    *view.FilesController
	Tasks    *view.TasksController
	Health   *view.HealthController
	Chat     *view.ChatController
	Accounts *view.AccountsController
	Device   *device.Capabilities

	// DownloadURL returns the backend download address of a file
	DownloadURL func(id int64) string
}

type Options struct {
	CompactWidth    int
	RefreshInterval time.Duration
	Now             func() time.Time
}

type Model struct {
	ctx    context.Context
	svc    Services
	opts   Options
	styles Styles

	width  int
	height int
	tab    Tab

	cursor     int
	taskCursor int
	requested  int64

	input   inputMode
	buffer  string
	chatBuf string

	confirmDelete bool
	status        string
	errText       string
}

func NewModel(ctx context.Context, svc Services, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Model{
		ctx:    ctx,
		svc:    svc,
		opts:   opts,
		styles: NewStyles(CompactBreakpoint, opts.CompactWidth),
	}
}

// Tab returns the active tab
func (m Model) Tab() Tab {
	return m.tab
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.checkHealth(),
		m.do(m.svc.Files.RefreshList),
		m.do(m.svc.Tasks.Refresh),
		m.do(m.svc.Accounts.Refresh),
		m.tick(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.styles = NewStyles(msg.Width, m.opts.CompactWidth)
		return m, nil
	case refreshedMsg:
		m.syncCursor()
		return m, m.loadPendingDetail()
	case statusMsg:
		m.status = msg.text
		m.errText = ""
		return m, nil
	case errMsg:
		m.errText = msg.err.Error()
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.checkHealth(), m.tick())
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isKey(msg, "ctrl+c") {
		return m, tea.Quit
	}

	if m.input != inputNone {
		return m.handleInputKeys(msg)
	}

	switch {
	case isKey(msg, "tab"):
		m.switchTab((m.tab + 1) % tabCount)
		return m, nil
	case isKey(msg, "shift+tab"):
		m.switchTab((m.tab + tabCount - 1) % tabCount)
		return m, nil
	}

	if m.tab == TabChat {
		return m.handleChatKeys(msg)
	}

	if isKey(msg, "q") {
		return m, tea.Quit
	}
	if t, ok := tabShortcut(msg); ok {
		m.switchTab(t)
		return m, nil
	}

	switch m.tab {
	case TabFiles:
		return m.handleFilesKeys(msg)
	case TabTasks:
		return m.handleTasksKeys(msg)
	case TabDashboard:
		if isKey(msg, "r") {
			return m, m.do(m.svc.Files.RefreshList)
		}
	case TabAccounts:
		return m.handleAccountsKeys(msg)
	}
	return m, nil
}

func tabShortcut(msg tea.KeyMsg) (Tab, bool) {
	switch msg.String() {
	case "F":
		return TabFiles, true
	case "T":
		return TabTasks, true
	case "D":
		return TabDashboard, true
	case "A":
		return TabAccounts, true
	case "C":
		return TabChat, true
	}
	return 0, false
}

func (m *Model) switchTab(t Tab) {
	m.tab = t
	m.confirmDelete = false
	m.status = ""
	m.errText = ""
}

// --- Commands ---

// do runs a controller request; its error is kept in the controller state
func (m Model) do(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		_ = fn(m.ctx)
		return refreshedMsg{}
	}
}

func (m Model) checkHealth() tea.Cmd {
	return func() tea.Msg {
		m.svc.Health.Check(m.ctx)
		return refreshedMsg{}
	}
}

func (m Model) tick() tea.Cmd {
	if m.opts.RefreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadPendingDetail loads the detail of the selection once per selection
func (m *Model) loadPendingDetail() tea.Cmd {
	id, ok := m.svc.Files.PendingDetail()
	if !ok || id == m.requested {
		return nil
	}
	m.requested = id
	return m.do(func(ctx context.Context) error {
		return m.svc.Files.LoadDetail(ctx, id)
	})
}

func (m *Model) selectFile(id int64) tea.Cmd {
	m.requested = id
	m.confirmDelete = false
	return m.do(func(ctx context.Context) error {
		return m.svc.Files.Select(ctx, id)
	})
}

// syncCursor moves the list cursor onto the selected file
func (m *Model) syncCursor() {
	state := m.svc.Files.State()
	visible := m.svc.Files.Visible(m.opts.Now())
	for i, f := range visible {
		if f.ID == state.SelectedID {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(visible) {
		m.cursor = max(len(visible)-1, 0)
	}
}

// --- View ---

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if banner := m.bannerText(); banner != "" {
		b.WriteString(m.styles.Banner.Render(banner))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Success.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var body string
	switch m.tab {
	case TabFiles:
		body = m.renderFiles()
	case TabTasks:
		body = m.renderTasks()
	case TabDashboard:
		body = m.renderDashboard()
	case TabAccounts:
		body = m.renderAccounts()
	case TabChat:
		body = m.renderChat()
	}
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		if t == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(t.String()))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(t.String()))
		}
	}

	title := m.styles.Title.Render("mycontracts")
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.styles.Compact {
		return title + " " + m.renderHealth() + "\n" + line
	}
	return title + "  " + line + "  " + m.renderHealth()
}

func (m Model) renderHealth() string {
	switch m.svc.Health.Status() {
	case view.HealthOK:
		return m.styles.Success.Render("● online")
	case view.HealthOffline:
		return m.styles.Error.Render("● offline")
	default:
		return m.styles.Muted.Render("● checking")
	}
}

func (m Model) bannerText() string {
	if m.errText != "" {
		return m.errText
	}
	switch m.tab {
	case TabFiles, TabDashboard:
		return m.svc.Files.State().Err
	case TabTasks:
		return m.svc.Tasks.State().Err
	case TabAccounts:
		return m.svc.Accounts.State().Err
	}
	return ""
}

func (m Model) helpLine() string {
	if m.input != inputNone {
		return "enter save · esc cancel"
	}
	switch m.tab {
	case TabFiles:
		if m.styles.Compact {
			return "↑/↓ · f/o filter · 1-5 marker · s save · u due · n note · d · x · c · q"
		}
		return "↑/↓ select · f/o filter · 1-5 toggle marker · s save markers · u due date · n note · d download · x delete · c chat · r refresh · q quit"
	case TabTasks:
		return "↑/↓ select · enter open · r refresh · q quit"
	case TabDashboard:
		return "r refresh · tab switch · q quit"
	case TabAccounts:
		return "←/→ bank account · r refresh · q quit"
	case TabChat:
		return "enter send · ctrl+o optimize · ctrl+l clear · tab switch"
	}
	return ""
}

func errorf(format string, args ...any) tea.Cmd {
	err := fmt.Errorf(format, args...)
	return func() tea.Msg {
		return errMsg{err}
	}
}
