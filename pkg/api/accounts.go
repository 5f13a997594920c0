package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mwantia/mycontracts/pkg/models"
)

// Email accounts

func (c *Client) ListEmailAccounts(ctx context.Context) ([]models.EmailAccount, error) {
	var accounts []models.EmailAccount
	if err := c.doJSON(ctx, "list email accounts", http.MethodGet, "/api/email-accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) CreateEmailAccount(ctx context.Context, req models.CreateEmailAccountRequest) (*models.EmailAccount, error) {
	var account models.EmailAccount
	if err := c.doJSON(ctx, "create email account", http.MethodPost, "/api/email-accounts", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) DeleteEmailAccount(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "delete email account", http.MethodDelete, fmt.Sprintf("/api/email-accounts/%d", id), nil, nil)
}

// Bank accounts

func (c *Client) ListBankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	if err := c.doJSON(ctx, "list bank accounts", http.MethodGet, "/api/bank-accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) CreateBankAccount(ctx context.Context, req models.CreateBankAccountRequest) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := c.doJSON(ctx, "create bank account", http.MethodPost, "/api/bank-accounts", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) DeleteBankAccount(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "delete bank account", http.MethodDelete, fmt.Sprintf("/api/bank-accounts/%d", id), nil, nil)
}

// Transactions

func (c *Client) ListTransactions(ctx context.Context, accountID int64) ([]models.BankTransaction, error) {
	var transactions []models.BankTransaction
	path := fmt.Sprintf("/api/bank-accounts/%d/transactions", accountID)
	if err := c.doJSON(ctx, "list transactions", http.MethodGet, path, nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (c *Client) CreateTransaction(ctx context.Context, accountID int64, req models.CreateBankTransactionRequest) (*models.BankTransaction, error) {
	var transaction models.BankTransaction
	path := fmt.Sprintf("/api/bank-accounts/%d/transactions", accountID)
	if err := c.doJSON(ctx, "create transaction", http.MethodPost, path, req, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (c *Client) UpdateTransactionCategory(ctx context.Context, transactionID int64, category string) error {
	path := fmt.Sprintf("/api/bank-accounts/transactions/%d/category", transactionID)
	return c.doJSON(ctx, "category update", http.MethodPatch, path, models.CategoryUpdate{Category: category}, nil)
}

func (c *Client) DeleteTransaction(ctx context.Context, transactionID int64) error {
	path := fmt.Sprintf("/api/bank-accounts/transactions/%d", transactionID)
	return c.doJSON(ctx, "delete transaction", http.MethodDelete, path, nil, nil)
}
