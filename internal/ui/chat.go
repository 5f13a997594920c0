package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/mycontracts/pkg/models"
)

func (m Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isEnter(msg):
		text := strings.TrimSpace(m.chatBuf)
		if text == "" || m.svc.Chat.State().Loading {
			return m, nil
		}
		m.chatBuf = ""
		return m, m.do(func(ctx context.Context) error {
			m.svc.Chat.Send(ctx, text)
			return nil
		})
	case isKey(msg, "ctrl+o"):
		return m, m.do(m.svc.Chat.Optimize)
	case isKey(msg, "ctrl+l"):
		m.svc.Chat.Clear()
	case isBack(msg):
		m.chatBuf = ""
	default:
		appendInput(&m.chatBuf, msg)
	}
	return m, nil
}

func (m Model) renderChat() string {
	state := m.svc.Chat.State()

	var b strings.Builder
	title := "General questions"
	if state.FileID != nil {
		title = fmt.Sprintf("About %s", state.Filename)
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("  ")
	b.WriteString(m.renderRateLimit(state.RateLimit))
	b.WriteString("\n\n")

	if len(state.Messages) == 0 {
		b.WriteString(m.styles.Muted.Render("Ask a question about your contracts."))
		b.WriteString("\n")
	}

	width := m.styles.Width - 4
	for _, msg := range state.Messages {
		switch msg.Role {
		case models.RoleUser:
			b.WriteString(m.styles.Accent.Render("you  "))
		case models.RoleAssistant:
			b.WriteString(m.styles.Selected.Render("ai   "))
		case models.RoleError:
			b.WriteString(m.styles.Error.Render("err  "))
		}
		b.WriteString(m.styles.Normal.Width(max(width-5, 20)).Render(msg.Content))
		b.WriteString("\n")
	}

	if opt := state.Optimization; opt != nil {
		b.WriteString(m.renderList("Suggestions", opt.Suggestions))
		b.WriteString(m.renderList("Risks", opt.Risks))
		b.WriteString(m.renderList("Improvements", opt.Improvements))
	}

	switch {
	case state.Loading:
		b.WriteString(m.styles.Muted.Render("Thinking..."))
		b.WriteString("\n")
	case state.Optimizing:
		b.WriteString(m.styles.Muted.Render("Analyzing contract..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Selected.Render("> "))
	b.WriteString(m.chatBuf)
	b.WriteString(m.styles.Accent.Render("█"))
	return b.String()
}

func (m Model) renderList(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n" + m.styles.Muted.Render(title) + "\n")
	for _, item := range items {
		b.WriteString("• " + item + "\n")
	}
	return b.String()
}

func (m Model) renderRateLimit(r *models.RateLimitInfo) string {
	usage, ok := r.UsagePercentage()
	if !ok {
		return ""
	}
	style := m.styles.ColorStyle(r.StatusColor())
	label := fmt.Sprintf("%d%% used", usage)
	if r.APIName != "" {
		label = r.APIName + " " + label
	}
	return style.Render(label)
}
