package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mwantia/mycontracts/pkg/models"
)

// Chat sends the conversation so far; fileID scopes it to a document when set.
// The backend answers refused requests with 400 and a ChatResponse body
// flagged as error; that body is returned as a reply instead of an error.
func (c *Client) Chat(ctx context.Context, messages []models.ChatMessage, fileID *int64) (*models.ChatResponse, error) {
	req := models.ChatRequest{
		Messages: messages,
		FileID:   fileID,
	}

	var resp models.ChatResponse
	if err := c.doJSON(ctx, "chat", http.MethodPost, "/api/ai/chat", req, &resp); err != nil {
		if reply, ok := chatErrorReply(err); ok {
			return reply, nil
		}
		return nil, err
	}
	return &resp, nil
}

func chatErrorReply(err error) (*models.ChatResponse, bool) {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindStatus || apiErr.Status != http.StatusBadRequest {
		return nil, false
	}

	var reply models.ChatResponse
	if json.Unmarshal([]byte(apiErr.Body), &reply) != nil || !reply.Error || reply.Message == "" {
		return nil, false
	}
	return &reply, true
}

func (c *Client) Optimize(ctx context.Context, fileID int64) (*models.OptimizationResponse, error) {
	var resp models.OptimizationResponse
	if err := c.doJSON(ctx, "optimize", http.MethodPost, "/api/ai/optimize", models.OptimizeRequest{FileID: fileID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
