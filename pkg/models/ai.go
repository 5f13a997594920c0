package models

import "math"

// ChatRole identifies the author of a chat message
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	// RoleError marks locally generated failure messages; never sent upstream
	RoleError ChatRole = "error"
)

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatRequest is the body of POST /api/ai/chat
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	FileID   *int64        `json:"fileId"`
}

// ChatResponse is the reply of POST /api/ai/chat
type ChatResponse struct {
	Message   string         `json:"message"`
	Role      string         `json:"role"`
	Error     bool           `json:"error"`
	RateLimit *RateLimitInfo `json:"rateLimit,omitempty"`
}

// OptimizeRequest is the body of POST /api/ai/optimize
type OptimizeRequest struct {
	FileID int64 `json:"fileId"`
}

// OptimizationResponse is the reply of POST /api/ai/optimize
type OptimizationResponse struct {
	Suggestions  []string `json:"suggestions"  yaml:"suggestions"`
	Risks        []string `json:"risks"        yaml:"risks"`
	Improvements []string `json:"improvements" yaml:"improvements"`
	Summary      string   `json:"summary"      yaml:"summary"`
}

// RateLimitInfo describes the upstream AI provider quota
type RateLimitInfo struct {
	Limit     *int   `json:"limit"`
	Remaining *int   `json:"remaining"`
	ResetAt   *int64 `json:"resetAt"`
	APIName   string `json:"apiName"`
}

// UsagePercentage returns the used share of the quota in percent,
// or false when the quota is unknown.
func (r *RateLimitInfo) UsagePercentage() (int, bool) {
	if r == nil || r.Limit == nil || r.Remaining == nil || *r.Limit == 0 {
		return 0, false
	}
	used := *r.Limit - *r.Remaining
	if used < 0 {
		used = 0
	}
	return int(math.Round(float64(used) / float64(*r.Limit) * 100)), true
}

// StatusColor maps the usage to green (<70%), yellow (<90%), red or gray when unknown
func (r *RateLimitInfo) StatusColor() string {
	usage, ok := r.UsagePercentage()
	switch {
	case !ok:
		return "gray"
	case usage < 70:
		return "green"
	case usage < 90:
		return "yellow"
	default:
		return "red"
	}
}
