// Package testutil provides an in-memory contract backend for tests
package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mwantia/mycontracts/pkg/models"
)

// Backend mimics the REST surface of the contract backend
type Backend struct {
	mu sync.Mutex

	Echo *echo.Echo

	HealthStatus string
	Files        []models.FileDetail
	Contents     map[int64][]byte
	Email        []models.EmailAccount
	Bank         []models.BankAccount
	Transactions []models.BankTransaction
	ChatReply    models.ChatResponse
	Optimization models.OptimizationResponse
	Widget       models.WidgetStatus

	// LastChat holds the most recent chat request body
	LastChat models.ChatRequest

	requests []string
	failures map[string]int
	nextID   int64
}

func NewBackend() *Backend {
	b := &Backend{
		Echo:         echo.New(),
		HealthStatus: "UP",
		Contents:     make(map[int64][]byte),
		failures:     make(map[string]int),
		nextID:       1000,
		ChatReply:    models.ChatResponse{Message: "Hello from the assistant", Role: "assistant"},
	}
	b.Echo.HideBanner = true
	b.Echo.Use(b.record)
	b.routes()
	return b
}

// Start serves the backend until the test finishes and returns its URL
func (b *Backend) Start(t testing.TB) string {
	t.Helper()
	server := httptest.NewServer(b.Echo)
	t.Cleanup(server.Close)
	return server.URL
}

// Fail makes every request to the route pattern answer with status
func (b *Backend) Fail(method, route string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+route] = status
}

// Recover removes an injected failure
func (b *Backend) Recover(method, route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, method+" "+route)
}

// Requests returns the "METHOD /route/pattern" of every request served so far
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// Count returns how often the route pattern was requested
func (b *Backend) Count(method, route string) int {
	count := 0
	for _, r := range b.Requests() {
		if r == method+" "+route {
			count++
		}
	}
	return count
}

// File returns a copy of the stored file with id
func (b *Backend) File(id int64) (models.FileDetail, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, f := range b.Files {
		if f.ID == id {
			return f, true
		}
	}
	return models.FileDetail{}, false
}

func (b *Backend) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Method + " " + c.Path()

		b.mu.Lock()
		b.requests = append(b.requests, key)
		status, fail := b.failures[key]
		b.mu.Unlock()

		if fail {
			return c.JSON(status, map[string]string{"error": "injected failure"})
		}
		return next(c)
	}
}

func (b *Backend) routes() {
	api := b.Echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": b.HealthStatus})
	})

	api.GET("/files", b.listFiles(false))
	api.GET("/files/tasks", b.listFiles(true))
	api.POST("/files/upload", b.upload)
	api.PATCH("/files/bulk/markers", b.bulkMarkers)
	api.PATCH("/files/bulk/due-date", b.bulkDueDate)
	api.GET("/files/:id", b.getFile)
	api.DELETE("/files/:id", b.deleteFile)
	api.GET("/files/:id/download", b.download)
	api.PATCH("/files/:id/markers", b.updateFile(func(f *models.FileDetail, c echo.Context) error {
		var body models.MarkersUpdate
		if err := c.Bind(&body); err != nil {
			return err
		}
		f.Markers = body.Markers
		return nil
	}))
	api.PATCH("/files/:id/due-date", b.updateFile(func(f *models.FileDetail, c echo.Context) error {
		var body models.DueDateUpdate
		if err := c.Bind(&body); err != nil {
			return err
		}
		f.DueDate = body.DueDate
		return nil
	}))
	api.PATCH("/files/:id/note", b.updateFile(func(f *models.FileDetail, c echo.Context) error {
		var body models.NoteUpdate
		if err := c.Bind(&body); err != nil {
			return err
		}
		f.Note = &body.Note
		return nil
	}))

	api.POST("/ai/chat", func(c echo.Context) error {
		var body models.ChatRequest
		if err := c.Bind(&body); err != nil {
			return err
		}
		b.mu.Lock()
		b.LastChat = body
		reply := b.ChatReply
		b.mu.Unlock()
		if reply.Error {
			return c.JSON(http.StatusBadRequest, reply)
		}
		return c.JSON(http.StatusOK, reply)
	})
	api.POST("/ai/optimize", func(c echo.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		return c.JSON(http.StatusOK, b.Optimization)
	})

	api.GET("/widget/status", func(c echo.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		return c.JSON(http.StatusOK, b.Widget)
	})

	api.GET("/email-accounts", func(c echo.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		return c.JSON(http.StatusOK, nonNil(b.Email))
	})
	api.POST("/email-accounts", func(c echo.Context) error {
		var body models.CreateEmailAccountRequest
		if err := c.Bind(&body); err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		account := models.EmailAccount{
			ID:       b.id(),
			Name:     body.Name,
			Host:     body.Host,
			Port:     body.Port,
			Protocol: body.Protocol,
			Username: body.Username,
			Active:   true,
		}
		b.Email = append(b.Email, account)
		return c.JSON(http.StatusCreated, account)
	})
	api.DELETE("/email-accounts/:id", func(c echo.Context) error {
		id, err := param(c)
		if err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, a := range b.Email {
			if a.ID == id {
				b.Email = append(b.Email[:i], b.Email[i+1:]...)
				return c.NoContent(http.StatusNoContent)
			}
		}
		return c.NoContent(http.StatusNotFound)
	})

	api.GET("/bank-accounts", func(c echo.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		return c.JSON(http.StatusOK, nonNil(b.Bank))
	})
	api.POST("/bank-accounts", func(c echo.Context) error {
		var body models.CreateBankAccountRequest
		if err := c.Bind(&body); err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		account := models.BankAccount{
			ID:          b.id(),
			Name:        body.Name,
			IBAN:        body.IBAN,
			BankName:    body.BankName,
			APIProvider: body.APIProvider,
			Active:      true,
		}
		b.Bank = append(b.Bank, account)
		return c.JSON(http.StatusCreated, account)
	})
	api.DELETE("/bank-accounts/:id", func(c echo.Context) error {
		id, err := param(c)
		if err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, a := range b.Bank {
			if a.ID == id {
				b.Bank = append(b.Bank[:i], b.Bank[i+1:]...)
				return c.NoContent(http.StatusNoContent)
			}
		}
		return c.NoContent(http.StatusNotFound)
	})
	api.GET("/bank-accounts/:id/transactions", func(c echo.Context) error {
		id, err := param(c)
		if err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		result := []models.BankTransaction{}
		for _, tx := range b.Transactions {
			if tx.BankAccountID == id {
				result = append(result, tx)
			}
		}
		return c.JSON(http.StatusOK, result)
	})
	api.POST("/bank-accounts/:id/transactions", func(c echo.Context) error {
		id, err := param(c)
		if err != nil {
			return err
		}
		var body models.CreateBankTransactionRequest
		if err := c.Bind(&body); err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		tx := models.BankTransaction{
			ID:            b.id(),
			BankAccountID: id,
			Date:          body.Date,
			Amount:        body.Amount,
			Counterparty:  body.Counterparty,
			Description:   body.Description,
			Category:      body.Category,
			Reference:     body.Reference,
		}
		b.Transactions = append(b.Transactions, tx)
		return c.JSON(http.StatusCreated, tx)
	})
	api.PATCH("/bank-accounts/transactions/:id/category", func(c echo.Context) error {
		id, err := param(c)
		if err != nil {
			return err
		}
		var body models.CategoryUpdate
		if err := c.Bind(&body); err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.Transactions {
			if b.Transactions[i].ID == id {
				b.Transactions[i].Category = body.Category
				return c.JSON(http.StatusOK, b.Transactions[i])
			}
		}
		return c.NoContent(http.StatusNotFound)
	})
	api.DELETE("/bank-accounts/transactions/:id", func(c echo.Context) error {
		id, err := param(c)
		if err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, tx := range b.Transactions {
			if tx.ID == id {
				b.Transactions = append(b.Transactions[:i], b.Transactions[i+1:]...)
				return c.NoContent(http.StatusNoContent)
			}
		}
		return c.NoContent(http.StatusNotFound)
	})
}

func (b *Backend) listFiles(tasksOnly bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		result := []models.FileSummary{}
		for _, f := range b.Files {
			if tasksOnly && f.DueDate == nil {
				continue
			}
			result = append(result, f.FileSummary)
		}
		return c.JSON(http.StatusOK, result)
	}
}

func (b *Backend) getFile(c echo.Context) error {
	id, err := param(c)
	if err != nil {
		return err
	}
	f, ok := b.File(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "file not found"})
	}
	return c.JSON(http.StatusOK, f)
}

func (b *Backend) deleteFile(c echo.Context) error {
	id, err := param(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, f := range b.Files {
		if f.ID == id {
			b.Files = append(b.Files[:i], b.Files[i+1:]...)
			delete(b.Contents, id)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return c.NoContent(http.StatusNotFound)
}

func (b *Backend) updateFile(apply func(*models.FileDetail, echo.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := param(c)
		if err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.Files {
			if b.Files[i].ID == id {
				if err := apply(&b.Files[i], c); err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, err.Error())
				}
				return c.JSON(http.StatusOK, b.Files[i])
			}
		}
		return c.NoContent(http.StatusNotFound)
	}
}

func (b *Backend) upload(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	size := int64(len(data))
	now := time.Now().UTC()
	summary := models.FileSummary{
		ID:        b.id(),
		Filename:  header.Filename,
		Mime:      header.Header.Get("Content-Type"),
		Size:      &size,
		Checksum:  fmt.Sprintf("len-%d", size),
		CreatedAt: &now,
		Markers:   []models.Marker{},
	}
	b.Files = append(b.Files, models.FileDetail{FileSummary: summary})
	b.Contents[summary.ID] = data
	return c.JSON(http.StatusCreated, summary)
}

func (b *Backend) download(c echo.Context) error {
	id, err := param(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	data, ok := b.Contents[id]
	b.mu.Unlock()
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.Blob(http.StatusOK, "application/octet-stream", data)
}

func (b *Backend) bulkMarkers(c echo.Context) error {
	var body models.BulkMarkersUpdate
	if err := c.Bind(&body); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range body.FileIDs {
		for i := range b.Files {
			if b.Files[i].ID == id {
				b.Files[i].Markers = body.Markers
			}
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) bulkDueDate(c echo.Context) error {
	var body models.BulkDueDateUpdate
	if err := c.Bind(&body); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range body.FileIDs {
		for i := range b.Files {
			if b.Files[i].ID == id {
				b.Files[i].DueDate = body.DueDate
			}
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// id must be called with mu held
func (b *Backend) id() int64 {
	b.nextID++
	return b.nextID
}

func param(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
