package view

import (
	"context"
	"sync"

	"github.com/mwantia/mycontracts/pkg/log"
)

// HealthStatus is the connectivity badge shown in the header
type HealthStatus string

const (
	HealthLoading HealthStatus = "loading"
	HealthOK      HealthStatus = "ok"
	HealthOffline HealthStatus = "offline"
)

type HealthController struct {
	mu sync.RWMutex

	api    HealthAPI
	log    log.LoggerService
	status HealthStatus
}

func NewHealthController(api HealthAPI, logger log.LoggerService) *HealthController {
	return &HealthController{
		api:    api,
		log:    logger.Named("health"),
		status: HealthLoading,
	}
}

func (hc *HealthController) Status() HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.status
}

// Check probes the backend. Any failure, or a status other than UP,
// degrades the badge to offline.
func (hc *HealthController) Check(ctx context.Context) HealthStatus {
	hc.mu.Lock()
	hc.status = HealthLoading
	hc.mu.Unlock()

	status := HealthOffline
	health, err := hc.api.Health(ctx)
	switch {
	case err != nil:
		hc.log.Debug("Health check failed: %v", err)
	case health.IsUp():
		status = HealthOK
	}

	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.status = status
	return status
}
