package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mwantia/mycontracts/internal/testutil"
	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func newTestClient(t *testing.T) (*Client, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend()
	url := backend.Start(t)

	client, err := NewClient(Options{BaseURL: url, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return client, backend
}

func seed(backend *testutil.Backend) {
	due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	backend.Files = []models.FileDetail{
		{FileSummary: models.FileSummary{ID: 1, Filename: "lease.pdf", Size: ptr(int64(2048)), Markers: []models.Marker{models.MarkerUrgent}, OcrStatus: ptr(models.OcrPending)}},
		{
			FileSummary: models.FileSummary{ID: 2, Filename: "insurance.pdf", Markers: []models.Marker{}, DueDate: &due},
			Ocr:         &models.OcrInfo{ID: 9, Status: models.OcrMatched, RetryCount: 2, RawJSON: `{"total":12.5}`},
		},
	}
	backend.Contents[1] = []byte("%PDF-1.4 lease")
}

func TestNewClientResolvesBaseURL(t *testing.T) {
	client, err := NewClient(Options{Origin: "http://localhost:5173"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", client.BaseURL())
	assert.Equal(t, "http://localhost:8080/api/files/4/download", client.DownloadURL(4))

	_, err = NewClient(Options{Origin: "://broken"})
	assert.Error(t, err)
}

func TestListAndGetFiles(t *testing.T) {
	client, backend := newTestClient(t)
	seed(backend)
	ctx := context.Background()

	files, err := client.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "lease.pdf", files[0].Filename)
	assert.Equal(t, models.OcrPending, files[0].Ocr())
	assert.Equal(t, models.OcrNone, files[1].Ocr())

	tasks, err := client.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(2), tasks[0].ID)

	detail, err := client.GetFile(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, detail.Ocr)
	assert.Equal(t, 2, detail.Ocr.RetryCount)
	assert.Equal(t, `{"total":12.5}`, detail.Ocr.RawJSON)

	_, err = client.GetFile(ctx, 404)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsKind(err, KindStatus))
	assert.Contains(t, err.Error(), "load file failed: 404")
}

func TestFileMutations(t *testing.T) {
	client, backend := newTestClient(t)
	seed(backend)
	ctx := context.Background()

	require.NoError(t, client.UpdateMarkers(ctx, 2, []models.Marker{models.MarkerReview, models.MarkerFollowUp}))
	f, _ := backend.File(2)
	assert.Equal(t, []models.Marker{models.MarkerReview, models.MarkerFollowUp}, f.Markers)

	require.NoError(t, client.UpdateMarkers(ctx, 2, nil))
	f, _ = backend.File(2)
	assert.Empty(t, f.Markers)

	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, client.UpdateDueDate(ctx, 1, &due))
	f, _ = backend.File(1)
	require.NotNil(t, f.DueDate)
	assert.True(t, due.Equal(*f.DueDate))

	require.NoError(t, client.UpdateDueDate(ctx, 1, nil))
	f, _ = backend.File(1)
	assert.Nil(t, f.DueDate)

	require.NoError(t, client.UpdateNote(ctx, 1, "renegotiate in spring"))
	f, _ = backend.File(1)
	require.NotNil(t, f.Note)
	assert.Equal(t, "renegotiate in spring", *f.Note)

	require.NoError(t, client.BulkUpdateMarkers(ctx, []int64{1, 2}, []models.Marker{models.MarkerMissingInfo}))
	require.NoError(t, client.BulkUpdateDueDate(ctx, []int64{1, 2}, &due))
	for _, id := range []int64{1, 2} {
		f, _ = backend.File(id)
		assert.Equal(t, []models.Marker{models.MarkerMissingInfo}, f.Markers)
		assert.NotNil(t, f.DueDate)
	}

	require.NoError(t, client.DeleteFile(ctx, 1))
	_, ok := backend.File(1)
	assert.False(t, ok)

	assert.Equal(t, 1, backend.Count(http.MethodPatch, "/api/files/bulk/markers"))
	assert.Equal(t, 2, backend.Count(http.MethodPatch, "/api/files/:id/due-date"))
}

func TestUploadAndDownload(t *testing.T) {
	client, backend := newTestClient(t)
	seed(backend)
	ctx := context.Background()

	created, err := client.UploadFile(ctx, "contract.pdf", strings.NewReader("hello contract"))
	require.NoError(t, err)
	assert.Equal(t, "contract.pdf", created.Filename)
	require.NotNil(t, created.Size)
	assert.Equal(t, int64(14), *created.Size)

	var buf bytes.Buffer
	n, err := client.DownloadFile(ctx, created.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(14), n)
	assert.Equal(t, "hello contract", buf.String())

	_, err = client.DownloadFile(ctx, 999, &buf)
	assert.True(t, IsNotFound(err))
}

func TestStatusErrorCarriesBody(t *testing.T) {
	client, backend := newTestClient(t)
	seed(backend)
	backend.Fail(http.MethodGet, "/api/files", http.StatusInternalServerError)

	_, err := client.ListFiles(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.Contains(t, err.Error(), "list files failed: 500 Internal Server Error")
	assert.Contains(t, err.Error(), "injected failure")
}

func TestDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client, err := NewClient(Options{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.ListFiles(context.Background())
	assert.True(t, IsKind(err, KindDecode))
	assert.Contains(t, err.Error(), "invalid response")
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewClient(Options{BaseURL: url})
	require.NoError(t, err)

	_, err = client.Health(context.Background())
	assert.True(t, IsKind(err, KindTransport))
	assert.Zero(t, StatusCode(err))
}

func TestRequestIDHeader(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(`{"status":"UP"}`))
	}))
	defer server.Close()

	client, err := NewClient(Options{BaseURL: server.URL})
	require.NoError(t, err)

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, health.IsUp())
	assert.Len(t, seen, 36)
}
