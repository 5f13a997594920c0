package app

import (
	"context"
	"testing"

	config "github.com/mwantia/mycontracts/internal/config/client"
	"github.com/mwantia/mycontracts/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppWiresClient(t *testing.T) {
	backend := testutil.NewBackend()
	url := backend.Start(t)

	cfg := config.GetClientDefault()
	cfg.API.URL = url + "/"
	cfg.Log.NoTerminal = true
	cfg.Device.DocumentsDir = t.TempDir()

	a, err := NewApp(&cfg)
	require.NoError(t, err)
	assert.Equal(t, url, a.Client().BaseURL())
	assert.Equal(t, cfg.Device.DocumentsDir, a.Device().DocumentsDir())

	health, err := a.Client().Health(context.Background())
	require.NoError(t, err)
	assert.True(t, health.IsUp())

	svc := a.Services()
	assert.NotNil(t, svc.Files)
	assert.NotNil(t, svc.Chat)
	assert.Equal(t, url+"/api/files/3/download", svc.DownloadURL(3))

	require.NoError(t, a.Shutdown())
}

func TestNewAppRejectsInvalidOrigin(t *testing.T) {
	cfg := config.GetClientDefault()
	cfg.API.Origin = "://broken"
	cfg.Log.NoTerminal = true

	_, err := NewApp(&cfg)
	assert.Error(t, err)
}
