// Package view holds the per-screen state controllers. Controllers own the
// in-memory copies of backend entities, their loading states and the
// unsaved drafts; every mutation goes to the backend and is followed by a
// refetch instead of a local merge.
package view

import (
	"context"
	"io"
	"time"

	"github.com/mwantia/mycontracts/pkg/models"
)

// LoadState tracks a single asynchronous section of a screen
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateError   LoadState = "error"
)

// FilesAPI is the backend surface used by the files and tasks screens
type FilesAPI interface {
	ListFiles(ctx context.Context) ([]models.FileSummary, error)
	ListTasks(ctx context.Context) ([]models.FileSummary, error)
	GetFile(ctx context.Context, id int64) (*models.FileDetail, error)
	UploadFile(ctx context.Context, filename string, r io.Reader) (*models.FileSummary, error)
	DeleteFile(ctx context.Context, id int64) error
	UpdateMarkers(ctx context.Context, id int64, markers []models.Marker) error
	UpdateDueDate(ctx context.Context, id int64, due *time.Time) error
	UpdateNote(ctx context.Context, id int64, note string) error
	BulkUpdateMarkers(ctx context.Context, ids []int64, markers []models.Marker) error
	BulkUpdateDueDate(ctx context.Context, ids []int64, due *time.Time) error
}

// HealthAPI is the backend surface used by the status badge
type HealthAPI interface {
	Health(ctx context.Context) (models.Health, error)
}

// ChatAPI is the backend surface used by the assistant panel
type ChatAPI interface {
	Chat(ctx context.Context, messages []models.ChatMessage, fileID *int64) (*models.ChatResponse, error)
	Optimize(ctx context.Context, fileID int64) (*models.OptimizationResponse, error)
}

// AccountsAPI is the backend surface used by the accounts screen
type AccountsAPI interface {
	ListEmailAccounts(ctx context.Context) ([]models.EmailAccount, error)
	CreateEmailAccount(ctx context.Context, req models.CreateEmailAccountRequest) (*models.EmailAccount, error)
	DeleteEmailAccount(ctx context.Context, id int64) error
	ListBankAccounts(ctx context.Context) ([]models.BankAccount, error)
	CreateBankAccount(ctx context.Context, req models.CreateBankAccountRequest) (*models.BankAccount, error)
	DeleteBankAccount(ctx context.Context, id int64) error
	ListTransactions(ctx context.Context, accountID int64) ([]models.BankTransaction, error)
	CreateTransaction(ctx context.Context, accountID int64, req models.CreateBankTransactionRequest) (*models.BankTransaction, error)
	UpdateTransactionCategory(ctx context.Context, transactionID int64, category string) error
	DeleteTransaction(ctx context.Context, transactionID int64) error
}
