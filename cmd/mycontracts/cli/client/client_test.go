package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mwantia/mycontracts/internal/testutil"
	"github.com/mwantia/mycontracts/pkg/device"
	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func ptr[T any](v T) *T {
	return &v
}

func newBackend(t *testing.T) *testutil.Backend {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	backend := testutil.NewBackend()
	backend.Files = []models.FileDetail{
		{FileSummary: models.FileSummary{ID: 1, Filename: "lease.pdf", Size: ptr(int64(2048)), Markers: []models.Marker{models.MarkerUrgent}}},
		{FileSummary: models.FileSummary{ID: 2, Filename: "insurance.pdf", Markers: []models.Marker{}, DueDate: ptr(time.Now().Add(72 * time.Hour))}},
	}

	viper.Set("api.url", backend.Start(t))
	viper.Set("device.documents_dir", t.TempDir())
	return backend
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, arg := range []string{"", "abc", "0", "-3"} {
		_, err := parseID(arg)
		assert.Error(t, err, arg)
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"1,2", "3", " 4 , 5"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)

	_, err = parseIDs(nil)
	assert.Error(t, err)

	_, err = parseIDs([]string{"1,x"})
	assert.Error(t, err)
}

func TestParseMarkers(t *testing.T) {
	assert.Equal(t, []models.Marker{models.MarkerUrgent, models.MarkerReview, models.MarkerFollowUp},
		parseMarkers([]string{"urgent,review", " follow_up "}))
	assert.Empty(t, parseMarkers(nil))
}

func TestParseDue(t *testing.T) {
	due, err := parseDue("none")
	require.NoError(t, err)
	assert.Nil(t, due)

	due, err = parseDue("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *due)

	_, err = parseDue("31.12.2025")
	assert.Error(t, err)
}

func TestRenderFormats(t *testing.T) {
	value := map[string]int{"total": 3}
	rows := func(w io.Writer) {
		fmt.Fprintf(w, "Total\t%d\n", 3)
	}

	for _, format := range []string{"table", "yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			cmd := &cobra.Command{}
			addOutputFlag(cmd)
			require.NoError(t, cmd.Flags().Set("output", format))
			var out bytes.Buffer
			cmd.SetOut(&out)

			require.NoError(t, render(cmd, value, rows))

			switch format {
			case "table":
				assert.Equal(t, "Total  3\n", out.String())
			case "yaml":
				var decoded map[string]int
				require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
				assert.Equal(t, value, decoded)
			case "json":
				var decoded map[string]int
				require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
				assert.Equal(t, value, decoded)
			}
		})
	}

	cmd := &cobra.Command{}
	addOutputFlag(cmd)
	require.NoError(t, cmd.Flags().Set("output", "xml"))
	assert.Error(t, render(cmd, value, rows))
}

func TestFilesListCommand(t *testing.T) {
	newBackend(t)

	out, err := execute(t, NewFilesListCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "lease.pdf")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "In 3 days")

	out, err = execute(t, NewFilesListCommand(), "--marker", "urgent", "-o", "json")
	require.NoError(t, err)
	var files []models.FileSummary
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 1)
	assert.Equal(t, int64(1), files[0].ID)
}

func TestFilesMutationCommands(t *testing.T) {
	backend := newBackend(t)

	_, err := execute(t, NewFilesMarkersCommand(), "2", "review,missing_info")
	require.NoError(t, err)
	stored, _ := backend.File(2)
	assert.Equal(t, []models.Marker{models.MarkerReview, models.MarkerMissingInfo}, stored.Markers)

	_, err = execute(t, NewFilesDueCommand(), "1", "2025-10-01")
	require.NoError(t, err)
	stored, _ = backend.File(1)
	require.NotNil(t, stored.DueDate)
	assert.True(t, stored.DueDate.Equal(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)))

	_, err = execute(t, NewFilesNoteCommand(), "1", "renew", "in", "march")
	require.NoError(t, err)
	stored, _ = backend.File(1)
	assert.Equal(t, "renew in march", *stored.Note)

	out, err := execute(t, NewFilesBulkDueCommand(), "--ids", "1,2", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "2 documents")
	stored, _ = backend.File(2)
	assert.Nil(t, stored.DueDate)

	out, err = execute(t, NewFilesRemoveCommand(), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1")
	_, ok := backend.File(1)
	assert.False(t, ok)
}

func TestFilesShowMissing(t *testing.T) {
	newBackend(t)

	_, err := execute(t, NewFilesShowCommand(), "99")
	require.Error(t, err)
	assert.Equal(t, "no such document 99", err.Error())

	_, err = execute(t, NewFilesRemoveCommand(), "99")
	require.Error(t, err)
	assert.Equal(t, "no such document 99", err.Error())
}

func TestFilesListRejectsUnknownFilter(t *testing.T) {
	backend := newBackend(t)

	_, err := execute(t, NewFilesListCommand(), "--marker", "urgnet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown marker filter 'urgnet'")

	_, err = execute(t, NewFilesListCommand(), "--ocr", "done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown OCR filter 'done'")
	assert.Empty(t, backend.Requests())

	out, err := execute(t, NewFilesListCommand(), "--marker", "needs_attention", "--ocr", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "lease.pdf")
}

func TestFilesUploadBase64(t *testing.T) {
	backend := newBackend(t)
	payload := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("scanned contract"))

	cmd := NewFilesUploadCommand()
	cmd.SetIn(strings.NewReader(payload + "\n"))
	out, err := execute(t, cmd, "--base64", "-", "--name", "scan.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Uploaded scan.txt as")

	require.Len(t, backend.Files, 3)
	created := backend.Files[2]
	assert.Equal(t, "scan.txt", created.Filename)
	assert.Equal(t, int64(len("scanned contract")), *created.Size)

	_, err = execute(t, NewFilesUploadCommand(), "--base64", payload)
	assert.EqualError(t, err, "--name is required with --base64")

	_, err = execute(t, NewFilesUploadCommand())
	assert.EqualError(t, err, "nothing to upload")
}

func TestFilesUploadCameraUnsupported(t *testing.T) {
	backend := newBackend(t)

	_, err := execute(t, NewFilesUploadCommand(), "--camera")
	require.Error(t, err)
	assert.ErrorIs(t, err, device.ErrUnsupported)
	assert.Len(t, backend.Files, 2)
}

func TestDashboardCommand(t *testing.T) {
	newBackend(t)

	out, err := execute(t, NewDashboardCommand(), "-o", "yaml")
	require.NoError(t, err)

	var decoded struct {
		Total           int      `yaml:"total"`
		Urgent          int      `yaml:"urgent"`
		UpcomingDue     int      `yaml:"upcoming_due"`
		Recommendations []string `yaml:"recommendations"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 2, decoded.Total)
	assert.Equal(t, 1, decoded.Urgent)
	assert.Equal(t, 1, decoded.UpcomingDue)
	assert.NotContains(t, decoded.Recommendations, "All critical items are handled")
}

func TestHealthCommand(t *testing.T) {
	backend := newBackend(t)

	out, err := execute(t, NewHealthCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "UP")

	backend.HealthStatus = "DOWN"
	_, err = execute(t, NewHealthCommand())
	assert.Error(t, err)
}

func TestChatCommand(t *testing.T) {
	backend := newBackend(t)
	backend.ChatReply = models.ChatResponse{Message: "Three months notice.", Role: "assistant"}

	out, err := execute(t, NewChatCommand(), "--file", "1", "notice", "period?")
	require.NoError(t, err)
	assert.Equal(t, "Three months notice.\n", out)
	assert.Equal(t, "notice period?", backend.LastChat.Messages[0].Content)
	assert.Equal(t, int64(1), *backend.LastChat.FileID)
}

func TestAccountsCommands(t *testing.T) {
	backend := newBackend(t)

	_, err := execute(t, newBankCommand(), "add", "Checking", "DE02120300000000202051", "--bank", "DKB")
	require.NoError(t, err)
	require.Len(t, backend.Bank, 1)
	accountID := fmt.Sprint(backend.Bank[0].ID)

	_, err = execute(t, newBankCommand(), "tx", "add", "--", accountID, "2025-06-01", "-12.50", "Bakery")
	require.NoError(t, err)
	require.Len(t, backend.Transactions, 1)
	assert.Equal(t, -12.5, backend.Transactions[0].Amount)

	out, err := execute(t, newBankCommand(), "tx", "ls", accountID)
	require.NoError(t, err)
	assert.Contains(t, out, "Bakery")

	_, err = execute(t, newBankCommand(), "tx", "add", accountID, "june", "1", "Bakery")
	assert.Error(t, err)

	_, err = execute(t, newEmailCommand(), "add", "Inbox", "imap.example.com", "--username", "me")
	require.NoError(t, err)
	require.Len(t, backend.Email, 1)
	assert.Equal(t, 993, backend.Email[0].Port)

	out, err = execute(t, newEmailCommand(), "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "IMAP://imap.example.com:993")
	assert.Contains(t, out, "never")
}
