package view

import (
	"context"
	"net/http"
	"testing"

	"github.com/mwantia/mycontracts/pkg/api"
	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountsRefreshSelectsFirstBank(t *testing.T) {
	client, backend := newBackend(t)
	backend.Bank = []models.BankAccount{
		{ID: 10, Name: "Checking", IBAN: "DE89370400440532013000"},
		{ID: 11, Name: "Savings", IBAN: "DE89370400440532013001"},
	}
	backend.Transactions = []models.BankTransaction{
		{ID: 100, BankAccountID: 10, Date: "2025-06-01", Amount: -49.99, Counterparty: "Telco"},
		{ID: 101, BankAccountID: 11, Date: "2025-06-02", Amount: 500, Counterparty: "Employer"},
	}
	ac := NewAccountsController(client, testLogger())
	ctx := context.Background()

	require.NoError(t, ac.Refresh(ctx))
	state := ac.State()
	assert.Equal(t, StateIdle, state.State)
	assert.Equal(t, int64(10), state.SelectedBank)
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, "Telco", state.Transactions[0].Counterparty)

	require.NoError(t, ac.SelectBank(ctx, 11))
	state = ac.State()
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, int64(101), state.Transactions[0].ID)
}

func TestAccountsMutations(t *testing.T) {
	client, backend := newBackend(t)
	ac := NewAccountsController(client, testLogger())
	ctx := context.Background()

	require.NoError(t, ac.AddEmail(ctx, models.CreateEmailAccountRequest{Name: "Inbox", Host: "imap.example.com", Port: 993, Protocol: "IMAP"}))
	require.NoError(t, ac.AddBank(ctx, models.CreateBankAccountRequest{Name: "Checking", IBAN: "DE02120300000000202051"}))

	state := ac.State()
	require.Len(t, state.Email, 1)
	require.Len(t, state.Bank, 1)
	assert.Equal(t, state.Bank[0].ID, state.SelectedBank)

	require.NoError(t, ac.AddTransaction(ctx, models.CreateBankTransactionRequest{Date: "2025-06-03", Amount: -12.5, Counterparty: "Bakery"}))
	state = ac.State()
	require.Len(t, state.Transactions, 1)
	txID := state.Transactions[0].ID

	require.NoError(t, ac.SetCategory(ctx, txID, "food"))
	assert.Equal(t, "food", ac.State().Transactions[0].Category)

	require.NoError(t, ac.RemoveTransaction(ctx, txID))
	assert.Empty(t, ac.State().Transactions)

	require.NoError(t, ac.RemoveEmail(ctx, state.Email[0].ID))
	require.NoError(t, ac.RemoveBank(ctx, state.Bank[0].ID))
	state = ac.State()
	assert.Empty(t, state.Email)
	assert.Empty(t, state.Bank)
	assert.Zero(t, state.SelectedBank)
	assert.Empty(t, backend.Bank)
}

func TestAccountsFailure(t *testing.T) {
	client, backend := newBackend(t)
	backend.Fail(http.MethodGet, "/api/bank-accounts", http.StatusInternalServerError)
	ac := NewAccountsController(client, testLogger())

	require.Error(t, ac.Refresh(context.Background()))
	state := ac.State()
	assert.Equal(t, StateError, state.State)
	assert.Contains(t, state.Err, "500")

	require.Error(t, ac.RemoveEmail(context.Background(), 42))
	assert.Equal(t, StateError, ac.State().State)
}

// gatedAccounts holds ListTransactions for the gated account ids
type gatedAccounts struct {
	*api.Client
	started chan int64
	gates   map[int64]chan struct{}
}

func (g *gatedAccounts) ListTransactions(ctx context.Context, accountID int64) ([]models.BankTransaction, error) {
	if gate, ok := g.gates[accountID]; ok {
		g.started <- accountID
		<-gate
	}
	return g.Client.ListTransactions(ctx, accountID)
}

func TestAccountsLateTransactionsAreDropped(t *testing.T) {
	client, backend := newBackend(t)
	backend.Bank = []models.BankAccount{
		{ID: 10, Name: "Checking", IBAN: "DE89370400440532013000"},
		{ID: 11, Name: "Savings", IBAN: "DE89370400440532013001"},
	}
	backend.Transactions = []models.BankTransaction{
		{ID: 100, BankAccountID: 10, Date: "2025-06-01", Amount: -49.99, Counterparty: "Telco"},
		{ID: 101, BankAccountID: 11, Date: "2025-06-02", Amount: 500, Counterparty: "Employer"},
	}
	gate := make(chan struct{})
	accounts := &gatedAccounts{
		Client:  client,
		started: make(chan int64, 1),
		gates:   map[int64]chan struct{}{10: gate},
	}
	ac := NewAccountsController(accounts, testLogger())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- ac.SelectBank(ctx, 10)
	}()
	assert.Equal(t, int64(10), <-accounts.started)

	require.NoError(t, ac.SelectBank(ctx, 11))
	close(gate)
	require.NoError(t, <-done)

	state := ac.State()
	assert.Equal(t, int64(11), state.SelectedBank)
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, int64(101), state.Transactions[0].ID)
}
