package view

import (
	"context"
	"slices"
	"sync"

	"github.com/mwantia/mycontracts/pkg/log"
	"github.com/mwantia/mycontracts/pkg/models"
)

type AccountsState struct {
	Email        []models.EmailAccount
	Bank         []models.BankAccount
	SelectedBank int64
	Transactions []models.BankTransaction
	State        LoadState
	Err          string
}

// AccountsController manages email and bank accounts together with the
// transactions of the selected bank account.
type AccountsController struct {
	mu sync.RWMutex

	api AccountsAPI
	log log.LoggerService

	email        []models.EmailAccount
	bank         []models.BankAccount
	selectedBank int64
	transactions []models.BankTransaction
	state        LoadState
	err          string
}

func NewAccountsController(api AccountsAPI, logger log.LoggerService) *AccountsController {
	return &AccountsController{
		api:   api,
		log:   logger.Named("accounts"),
		state: StateIdle,
	}
}

func (ac *AccountsController) State() AccountsState {
	ac.mu.RLock()
	defer ac.mu.RUnlock()
	return AccountsState{
		Email:        slices.Clone(ac.email),
		Bank:         slices.Clone(ac.bank),
		SelectedBank: ac.selectedBank,
		Transactions: slices.Clone(ac.transactions),
		State:        ac.state,
		Err:          ac.err,
	}
}

func (ac *AccountsController) begin() {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.state = StateLoading
	ac.err = ""
}

func (ac *AccountsController) end(err error) error {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	if err != nil {
		ac.state = StateError
		ac.err = err.Error()
		ac.log.Warn("%v", err)
		return err
	}
	ac.state = StateIdle
	return nil
}

// Refresh reloads both account lists. When no bank account is selected the
// first one becomes selected and its transactions are loaded.
func (ac *AccountsController) Refresh(ctx context.Context) error {
	ac.begin()

	email, err := ac.api.ListEmailAccounts(ctx)
	if err != nil {
		return ac.end(err)
	}
	bank, err := ac.api.ListBankAccounts(ctx)
	if err != nil {
		return ac.end(err)
	}

	ac.mu.Lock()
	ac.email = email
	ac.bank = bank
	selected := ac.selectedBank
	if !slices.ContainsFunc(bank, func(a models.BankAccount) bool { return a.ID == selected }) {
		selected = 0
		if len(bank) > 0 {
			selected = bank[0].ID
		}
	}
	ac.selectedBank = selected
	if selected == 0 {
		ac.transactions = nil
	}
	ac.mu.Unlock()

	if selected == 0 {
		return ac.end(nil)
	}
	return ac.end(ac.loadTransactions(ctx, selected))
}

func (ac *AccountsController) loadTransactions(ctx context.Context, accountID int64) error {
	transactions, err := ac.api.ListTransactions(ctx, accountID)
	if err != nil {
		ac.mu.RLock()
		stale := accountID != ac.selectedBank
		ac.mu.RUnlock()
		if stale {
			return nil
		}
		return err
	}

	ac.mu.Lock()
	defer ac.mu.Unlock()
	// another bank account was selected while the request was in flight
	if accountID != ac.selectedBank {
		ac.log.Debug("Dropping transactions of bank account %d, selection is %d", accountID, ac.selectedBank)
		return nil
	}
	ac.transactions = transactions
	return nil
}

// SelectBank switches the transaction list to another bank account
func (ac *AccountsController) SelectBank(ctx context.Context, accountID int64) error {
	ac.begin()

	ac.mu.Lock()
	ac.selectedBank = accountID
	ac.transactions = nil
	ac.mu.Unlock()

	return ac.end(ac.loadTransactions(ctx, accountID))
}

func (ac *AccountsController) AddEmail(ctx context.Context, req models.CreateEmailAccountRequest) error {
	ac.begin()
	if _, err := ac.api.CreateEmailAccount(ctx, req); err != nil {
		return ac.end(err)
	}
	return ac.Refresh(ctx)
}

func (ac *AccountsController) RemoveEmail(ctx context.Context, id int64) error {
	ac.begin()
	if err := ac.api.DeleteEmailAccount(ctx, id); err != nil {
		return ac.end(err)
	}
	return ac.Refresh(ctx)
}

func (ac *AccountsController) AddBank(ctx context.Context, req models.CreateBankAccountRequest) error {
	ac.begin()
	if _, err := ac.api.CreateBankAccount(ctx, req); err != nil {
		return ac.end(err)
	}
	return ac.Refresh(ctx)
}

func (ac *AccountsController) RemoveBank(ctx context.Context, id int64) error {
	ac.begin()
	if err := ac.api.DeleteBankAccount(ctx, id); err != nil {
		return ac.end(err)
	}
	return ac.Refresh(ctx)
}

// AddTransaction books a transaction on the selected bank account
func (ac *AccountsController) AddTransaction(ctx context.Context, req models.CreateBankTransactionRequest) error {
	ac.mu.RLock()
	selected := ac.selectedBank
	ac.mu.RUnlock()
	if selected == 0 {
		return nil
	}

	ac.begin()
	if _, err := ac.api.CreateTransaction(ctx, selected, req); err != nil {
		return ac.end(err)
	}
	return ac.end(ac.loadTransactions(ctx, selected))
}

func (ac *AccountsController) SetCategory(ctx context.Context, transactionID int64, category string) error {
	ac.begin()
	if err := ac.api.UpdateTransactionCategory(ctx, transactionID, category); err != nil {
		return ac.end(err)
	}
	return ac.end(ac.reloadSelected(ctx))
}

func (ac *AccountsController) RemoveTransaction(ctx context.Context, transactionID int64) error {
	ac.begin()
	if err := ac.api.DeleteTransaction(ctx, transactionID); err != nil {
		return ac.end(err)
	}
	return ac.end(ac.reloadSelected(ctx))
}

func (ac *AccountsController) reloadSelected(ctx context.Context) error {
	ac.mu.RLock()
	selected := ac.selectedBank
	ac.mu.RUnlock()
	if selected == 0 {
		return nil
	}
	return ac.loadTransactions(ctx, selected)
}
