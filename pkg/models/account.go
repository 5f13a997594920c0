package models

import "time"

// EmailAccount is a mailbox the backend scans for contract documents
type EmailAccount struct {
	ID        int64      `json:"id"                  yaml:"id"`
	Name      string     `json:"name"                yaml:"name"`
	Host      string     `json:"host"                yaml:"host"`
	Port      int        `json:"port"                yaml:"port"`
	Protocol  string     `json:"protocol"            yaml:"protocol"`
	Username  string     `json:"username"            yaml:"username"`
	Active    bool       `json:"active"              yaml:"active"`
	LastSync  *time.Time `json:"lastSync,omitempty"  yaml:"last_sync,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

type CreateEmailAccountRequest struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// BankAccount is a linked account whose transactions are imported by the backend
type BankAccount struct {
	ID          int64      `json:"id"                    yaml:"id"`
	Name        string     `json:"name"                  yaml:"name"`
	IBAN        string     `json:"iban"                  yaml:"iban"`
	BankName    string     `json:"bankName"              yaml:"bank_name"`
	APIProvider string     `json:"apiProvider,omitempty" yaml:"api_provider,omitempty"`
	Active      bool       `json:"active"                yaml:"active"`
	LastSync    *time.Time `json:"lastSync,omitempty"    yaml:"last_sync,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"   yaml:"created_at,omitempty"`
}

type CreateBankAccountRequest struct {
	Name        string `json:"name"`
	IBAN        string `json:"iban"`
	BankName    string `json:"bankName"`
	APIProvider string `json:"apiProvider,omitempty"`
	APIKey      string `json:"apiKey,omitempty"`
}

// BankTransaction is a single booked transaction; Date is a calendar date (YYYY-MM-DD)
type BankTransaction struct {
	ID            int64      `json:"id"                    yaml:"id"`
	BankAccountID int64      `json:"bankAccountId"         yaml:"bank_account_id"`
	Date          string     `json:"date"                  yaml:"date"`
	Amount        float64    `json:"amount"                yaml:"amount"`
	Counterparty  string     `json:"counterparty"          yaml:"counterparty"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Category      string     `json:"category,omitempty"    yaml:"category,omitempty"`
	Reference     string     `json:"reference,omitempty"   yaml:"reference,omitempty"`
	ImportedAt    *time.Time `json:"importedAt,omitempty"  yaml:"imported_at,omitempty"`
}

type CreateBankTransactionRequest struct {
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Counterparty string  `json:"counterparty"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category,omitempty"`
	Reference    string  `json:"reference,omitempty"`
}

// CategoryUpdate is the body of PATCH /api/bank-accounts/transactions/:id/category
type CategoryUpdate struct {
	Category string `json:"category"`
}
