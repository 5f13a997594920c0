package view

import (
	"io"
	"testing"
	"time"

	config "github.com/mwantia/mycontracts/internal/config/client"
	"github.com/mwantia/mycontracts/internal/testutil"
	"github.com/mwantia/mycontracts/pkg/api"
	"github.com/mwantia/mycontracts/pkg/log"
	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func testLogger() log.LoggerService {
	return log.NewLoggerServiceWithWriter("test", config.LogClientConfig{Level: "debug"}, io.Discard)
}

func newBackend(t *testing.T) (*api.Client, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend()
	due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	backend.Files = []models.FileDetail{
		{FileSummary: models.FileSummary{ID: 1, Filename: "lease.pdf", Markers: []models.Marker{models.MarkerUrgent}, OcrStatus: ptr(models.OcrPending)}},
		{FileSummary: models.FileSummary{ID: 2, Filename: "insurance.pdf", Markers: []models.Marker{}, DueDate: &due, OcrStatus: ptr(models.OcrMatched)}},
		{FileSummary: models.FileSummary{ID: 3, Filename: "phone.pdf", Markers: []models.Marker{}, Note: ptr("cancel in autumn")}},
	}

	client, err := api.NewClient(api.Options{BaseURL: backend.Start(t), Timeout: 5 * time.Second})
	require.NoError(t, err)
	return client, backend
}
