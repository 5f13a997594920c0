package api

import (
	"context"
	"net/http"

	"github.com/mwantia/mycontracts/pkg/models"
)

func (c *Client) Health(ctx context.Context) (models.Health, error) {
	var health models.Health
	err := c.doJSON(ctx, "health check", http.MethodGet, "/api/health", nil, &health)
	return health, err
}

func (c *Client) WidgetStatus(ctx context.Context) (*models.WidgetStatus, error) {
	var status models.WidgetStatus
	if err := c.doJSON(ctx, "widget status", http.MethodGet, "/api/widget/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
