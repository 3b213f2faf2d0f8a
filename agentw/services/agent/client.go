// agentw/services/agent/client.go
package agent

import (
	"context"
	"io"

	"agentw/agentw/config"
	httputils "agentw/agentw/utils/http"
	"agentw/agentw/utils/logging"

	"go.uber.org/zap"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type generateRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// Client fronts the agent service over HTTP. GenerateResponse hands the raw
// streamed body to the caller; a nil reader means the upstream produced no
// body at all.
type Client struct {
	baseURL string
	apiKey  string
	profile Profile
	ready   bool
}

func NewClient(cfg config.Config) *Client {
	profile, err := LoadProfile(cfg.AgentProfile)
	if err != nil {
		logging.AppLogger.Warn("agent profile not loaded, agent marked not ready",
			zap.String("path", cfg.AgentProfile), zap.Error(err))
	}
	return &Client{
		baseURL: cfg.AgentBaseURL,
		apiKey:  cfg.AgentAPIKey,
		profile: profile,
		ready:   err == nil,
	}
}

func (c *Client) IsReady() bool {
	return c.ready
}

// GetWalletAddress returns the agent's own wallet address, or "" when the
// profile does not carry one.
func (c *Client) GetWalletAddress() string {
	return c.profile.WalletAddress
}

func (c *Client) GenerateResponse(ctx context.Context, messages []Message) (io.ReadCloser, error) {
	defer logging.LogDuration(ctx, "agent_generate_response")()

	if c.profile.SystemPrompt != "" {
		messages = append([]Message{{Role: "system", Content: c.profile.SystemPrompt}}, messages...)
	}
	req := generateRequest{
		Model:    c.profile.Model,
		Messages: messages,
		Stream:   true,
	}
	return httputils.PostStreamWithAuth(ctx, c.baseURL+"/chat/stream", c.apiKey, req)
}
