package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/fabric/pkg/container"
	config "github.com/mwantia/mycontracts/internal/config/client"
	"github.com/mwantia/mycontracts/internal/ui"
	"github.com/mwantia/mycontracts/pkg/api"
	"github.com/mwantia/mycontracts/pkg/device"
	"github.com/mwantia/mycontracts/pkg/log"
	"github.com/mwantia/mycontracts/pkg/view"
)

// App wires configuration, logging and the backend client together and
// owns their lifetime.
type App struct {
	mutex sync.RWMutex

	cfg    *config.BaseClientConfig
	sc     *container.ServiceContainer
	log    log.LoggerService
	client *api.Client
	device *device.Capabilities
}

func NewApp(cfg *config.BaseClientConfig) (*App, error) {
	logger := log.NewLoggerService("mycontracts", cfg.Log)

	client, err := api.NewClient(api.Options{
		BaseURL: cfg.API.URL,
		Origin:  cfg.API.Origin,
		Timeout: cfg.API.GetTimeout(),
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	a := &App{
		cfg:    cfg,
		sc:     container.NewServiceContainer(),
		log:    logger,
		client: client,
		device: device.NewCapabilities(cfg.Device, logger),
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	if err := a.setupServices(); err != nil {
		return nil, err
	}

	a.log.Debug("Using backend '%s'", client.BaseURL())
	return a, nil
}

func (a *App) setupServices() error {
	errs := container.Errors{}

	a.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](a.sc,
		container.With[log.LoggerService](),
		container.WithInstance(a.log)))

	return errs.Errors()
}

func (a *App) Client() *api.Client {
	return a.client
}

func (a *App) Logger() log.LoggerService {
	return a.log
}

func (a *App) Device() *device.Capabilities {
	return a.device
}

// Services builds the controllers driven by the terminal UI
func (a *App) Services() ui.Services {
	return ui.Services{
		Files:       view.NewFilesController(a.client, a.log),
		Tasks:       view.NewTasksController(a.client, a.log),
		Health:      view.NewHealthController(a.client, a.log),
		Chat:        view.NewChatController(a.client, a.log),
		Accounts:    view.NewAccountsController(a.client, a.log),
		Device:      a.device,
		DownloadURL: a.client.DownloadURL,
	}
}

// Run starts the terminal UI and blocks until it exits or is interrupted
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	a.mutex.RLock()
	model := ui.NewModel(ctx, a.Services(), ui.Options{
		CompactWidth:    a.cfg.UI.CompactWidth,
		RefreshInterval: a.cfg.UI.GetRefreshInterval(),
	})
	a.mutex.RUnlock()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if a.cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	_, err := tea.NewProgram(model, opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		a.log.Error("Terminal UI stopped: %v", err)
		return errors.Join(err, a.Shutdown())
	}

	return a.Shutdown()
}

// Shutdown releases every registered service within the shutdown timeout
func (a *App) Shutdown() error {
	timeout, err := time.ParseDuration(a.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 10 seconds if error
		timeout = 10 * time.Second
	}

	shutdown, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}
	return nil
}
