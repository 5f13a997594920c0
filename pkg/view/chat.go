package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mwantia/mycontracts/pkg/log"
	"github.com/mwantia/mycontracts/pkg/models"
)

// ErrNoDocument is returned by Optimize when no document is in context
var ErrNoDocument = errors.New("no document selected")

type ChatState struct {
	Messages     []models.ChatMessage
	FileID       *int64
	Filename     string
	Loading      bool
	Optimizing   bool
	Optimization *models.OptimizationResponse
	RateLimit    *models.RateLimitInfo
}

// ChatController holds the assistant conversation for the document in context
type ChatController struct {
	mu sync.RWMutex

	api ChatAPI
	log log.LoggerService

	messages     []models.ChatMessage
	fileID       *int64
	filename     string
	loading      bool
	optimizing   bool
	optimization *models.OptimizationResponse
	rateLimit    *models.RateLimitInfo

	// conversation is bumped whenever the log is reset; replies for an
	// older conversation are dropped
	conversation uint64
}

func NewChatController(api ChatAPI, logger log.LoggerService) *ChatController {
	return &ChatController{
		api: api,
		log: logger.Named("chat"),
	}
}

func (cc *ChatController) State() ChatState {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return ChatState{
		Messages:     slices.Clone(cc.messages),
		FileID:       cc.fileID,
		Filename:     cc.filename,
		Loading:      cc.loading,
		Optimizing:   cc.optimizing,
		Optimization: cc.optimization,
		RateLimit:    cc.rateLimit,
	}
}

// SetContext attaches the conversation to a document. Switching to another
// document starts a new conversation.
func (cc *ChatController) SetContext(fileID *int64, filename string) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if sameID(cc.fileID, fileID) {
		cc.filename = filename
		return
	}

	if fileID != nil {
		id := *fileID
		fileID = &id
	}
	cc.fileID = fileID
	cc.filename = filename
	cc.reset()
}

func (cc *ChatController) reset() {
	cc.conversation++
	cc.messages = nil
	cc.optimization = nil
	cc.loading = false
	cc.optimizing = false
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Send appends a user message and the assistant reply. Failures become
// error-role messages in the conversation instead of being returned.
func (cc *ChatController) Send(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	cc.mu.Lock()
	if cc.loading {
		cc.mu.Unlock()
		return
	}
	cc.messages = append(cc.messages, models.ChatMessage{Role: models.RoleUser, Content: text})
	history := make([]models.ChatMessage, 0, len(cc.messages))
	for _, m := range cc.messages {
		if m.Role != models.RoleError {
			history = append(history, m)
		}
	}
	fileID := cc.fileID
	conversation := cc.conversation
	cc.loading = true
	cc.mu.Unlock()

	resp, err := cc.api.Chat(ctx, history, fileID)

	cc.mu.Lock()
	defer cc.mu.Unlock()

	if err == nil && resp.RateLimit != nil {
		cc.rateLimit = resp.RateLimit
	}
	if conversation != cc.conversation {
		cc.log.Debug("Dropping chat reply of a previous conversation")
		return
	}
	cc.loading = false

	switch {
	case err != nil:
		cc.log.Warn("Chat request failed: %v", err)
		cc.messages = append(cc.messages, models.ChatMessage{
			Role:    models.RoleError,
			Content: fmt.Sprintf("Failed to send message: %v", err),
		})
	case resp.Error:
		cc.messages = append(cc.messages, models.ChatMessage{Role: models.RoleError, Content: resp.Message})
	default:
		cc.messages = append(cc.messages, models.ChatMessage{Role: models.RoleAssistant, Content: resp.Message})
	}
}

// Optimize requests an improvement analysis for the document in context and
// appends its summary to the conversation.
func (cc *ChatController) Optimize(ctx context.Context) error {
	cc.mu.Lock()
	if cc.fileID == nil {
		cc.mu.Unlock()
		return ErrNoDocument
	}
	fileID := *cc.fileID
	conversation := cc.conversation
	cc.optimizing = true
	cc.mu.Unlock()

	resp, err := cc.api.Optimize(ctx, fileID)

	cc.mu.Lock()
	defer cc.mu.Unlock()

	if conversation != cc.conversation {
		cc.log.Debug("Dropping optimization of file %d", fileID)
		return nil
	}
	cc.optimizing = false

	if err != nil {
		cc.log.Warn("Optimization failed: %v", err)
		cc.messages = append(cc.messages, models.ChatMessage{
			Role:    models.RoleError,
			Content: fmt.Sprintf("Optimization failed: %v", err),
		})
		return err
	}

	cc.optimization = resp
	cc.messages = append(cc.messages, models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: "Contract optimization analysis\n\n" + resp.Summary,
	})
	return nil
}

// Clear drops the conversation but keeps the document context
func (cc *ChatController) Clear() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.reset()
}
