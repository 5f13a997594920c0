package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	config "github.com/mwantia/mycontracts/internal/config/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.LogClientConfig {
	cfg := config.GetClientDefault().Log
	cfg.NoColor = true
	return cfg
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.Level = "warn"

	logger := NewLoggerServiceWithWriter("mycontracts", cfg, &buf)
	logger.Debug("hidden %d", 1)
	logger.Info("hidden %d", 2)
	logger.Warn("visible %d", 3)
	logger.Error("visible %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  [mycontracts] visible 3")
	assert.Contains(t, out, "ERROR [mycontracts] visible 4")
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.JSON = true

	logger := NewLoggerServiceWithWriter("mycontracts", cfg, &buf).Named("api")
	logger.Info("GET %s", "/api/files")

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "mycontracts/api", entry.Service)
	assert.Equal(t, "GET /api/files", entry.Message)
}

func TestParse(t *testing.T) {
	assert.Equal(t, Debug, Parse("debug"))
	assert.Equal(t, Info, Parse("INFO"))
	assert.Equal(t, Warn, Parse("warning"))
	assert.Equal(t, Error, Parse("Error"))
	assert.Equal(t, Info, Parse("verbose"))
	assert.Equal(t, "WARN", Warn.String())
}
