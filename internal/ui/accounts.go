package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/mwantia/mycontracts/pkg/view"
)

func (m Model) handleAccountsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.svc.Accounts.State()

	switch {
	case isKey(msg, "left", "h", "right", "l"):
		if len(state.Bank) == 0 {
			return m, nil
		}
		i := slices.IndexFunc(state.Bank, func(a models.BankAccount) bool { return a.ID == state.SelectedBank })
		if isKey(msg, "left", "h") {
			i = (i - 1 + len(state.Bank)) % len(state.Bank)
		} else {
			i = (i + 1) % len(state.Bank)
		}
		id := state.Bank[i].ID
		return m, m.do(func(ctx context.Context) error {
			return m.svc.Accounts.SelectBank(ctx, id)
		})
	case isKey(msg, "r"):
		return m, m.do(m.svc.Accounts.Refresh)
	}
	return m, nil
}

func (m Model) renderAccounts() string {
	state := m.svc.Accounts.State()
	if state.State == view.StateLoading && len(state.Email) == 0 && len(state.Bank) == 0 {
		return m.styles.Muted.Render("Loading accounts...")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Email accounts"))
	b.WriteString("\n")
	if len(state.Email) == 0 {
		b.WriteString(m.styles.Muted.Render("No email accounts configured.") + "\n")
	}
	for _, a := range state.Email {
		b.WriteString(fmt.Sprintf("%s  %s:%d %s  %s\n",
			a.Name, a.Host, a.Port, m.styles.Muted.Render(a.Protocol), m.renderSync(a.Active, a.LastSync)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("Bank accounts"))
	b.WriteString("\n")
	if len(state.Bank) == 0 {
		b.WriteString(m.styles.Muted.Render("No bank accounts configured.") + "\n")
	}
	for _, a := range state.Bank {
		prefix := "  "
		if a.ID == state.SelectedBank {
			prefix = m.styles.Selected.Render("› ")
		}
		b.WriteString(fmt.Sprintf("%s%s  %s %s  %s\n",
			prefix, a.Name, a.IBAN, m.styles.Muted.Render(a.BankName), m.renderSync(a.Active, a.LastSync)))
	}

	if state.SelectedBank != 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render("Transactions"))
		b.WriteString("\n")
		if len(state.Transactions) == 0 {
			b.WriteString(m.styles.Muted.Render("No transactions booked."))
		}
		for _, tx := range state.Transactions {
			amount := m.styles.Success.Render(fmt.Sprintf("%10.2f", tx.Amount))
			if tx.Amount < 0 {
				amount = m.styles.Error.Render(fmt.Sprintf("%10.2f", tx.Amount))
			}
			category := tx.Category
			if category == "" {
				category = "uncategorized"
			}
			b.WriteString(fmt.Sprintf("%s %s  %s  %s\n", tx.Date, amount, tx.Counterparty, m.styles.Muted.Render(category)))
		}
	}

	return m.styles.Box.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderSync(active bool, last *time.Time) string {
	switch {
	case !active:
		return m.styles.Muted.Render("inactive")
	case last == nil:
		return m.styles.Muted.Render("never synced")
	}
	return m.styles.Muted.Render("synced " + humanize.RelTime(*last, m.opts.Now(), "ago", "from now"))
}
