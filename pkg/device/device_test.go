package device

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	config "github.com/mwantia/mycontracts/internal/config/client"
	"github.com/mwantia/mycontracts/pkg/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapabilities(t *testing.T, goos string) (*Capabilities, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	logger := log.NewLoggerServiceWithWriter("test", config.LogClientConfig{Level: "debug"}, io.Discard)
	cfg := config.DeviceClientConfig{DocumentsDir: "/docs"}
	return NewCapabilities(cfg, logger, WithFs(fs), WithGOOS(goos)), fs
}

func TestPlatformDetection(t *testing.T) {
	tests := []struct {
		goos     string
		platform Platform
		native   bool
	}{
		{"android", PlatformAndroid, true},
		{"ios", PlatformIOS, true},
		{"js", PlatformWeb, false},
		{"linux", PlatformDesktop, false},
		{"darwin", PlatformDesktop, false},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			c, _ := newCapabilities(t, tt.goos)
			assert.Equal(t, tt.platform, c.Platform())
			assert.Equal(t, tt.native, c.IsNative())
		})
	}
}

func TestCameraUnsupportedOnDesktop(t *testing.T) {
	c, _ := newCapabilities(t, "linux")

	_, err := c.TakePhoto(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = c.PickImage(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestPickFiles(t *testing.T) {
	c, fs := newCapabilities(t, "linux")
	require.NoError(t, afero.WriteFile(fs, "/in/lease.pdf", []byte("%PDF-1.4 lease"), 0o644))

	files, err := c.PickFiles("/in/lease.pdf")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "lease.pdf", files[0].Name)
	assert.Equal(t, "application/pdf", files[0].Mime)

	_, err = c.PickFiles("/in/missing.pdf")
	assert.Error(t, err)
}

func TestShareFileWithoutCommand(t *testing.T) {
	c, _ := newCapabilities(t, "linux")

	shared, err := c.ShareFile(context.Background(), "http://localhost:8080/api/files/1/download", "lease.pdf")
	require.NoError(t, err)
	assert.False(t, shared)
}

func TestDownloadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/files/1/download" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("contract body"))
	}))
	t.Cleanup(server.Close)

	c, fs := newCapabilities(t, "linux")
	ctx := context.Background()

	path, err := c.DownloadFile(ctx, server.URL+"/api/files/1/download", "../lease.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/docs", "lease.pdf"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "contract body", string(data))

	_, err = c.DownloadFile(ctx, server.URL+"/api/files/2/download", "other.pdf")
	assert.Error(t, err)
	exists, _ := afero.Exists(fs, filepath.Join("/docs", "other.pdf"))
	assert.False(t, exists)
}

func TestSaveRemovesPartialFile(t *testing.T) {
	c, fs := newCapabilities(t, "linux")
	body := io.MultiReader(strings.NewReader("half a contract"), iotest.ErrReader(errors.New("connection reset")))

	_, err := c.save("partial.pdf", body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	exists, err := afero.Exists(fs, filepath.Join("/docs", "partial.pdf"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBase64ToFile(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("hello"))

	f, err := Base64ToFile("data:text/plain;base64,"+encoded, "note.txt", "")
	require.NoError(t, err)
	assert.Equal(t, "note.txt", f.Name)
	assert.Equal(t, "text/plain", f.Mime)
	assert.Equal(t, []byte("hello"), f.Data)

	f, err = Base64ToFile(encoded, "raw.bin", "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", f.Mime)

	_, err = Base64ToFile("%%%", "broken.bin", "")
	assert.Error(t, err)
}
