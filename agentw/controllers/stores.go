package controllers

import (
	"context"
	"io"

	"agentw/agentw/services/agent"
	"agentw/agentw/sources/psql/models"
)

// Store and generator contracts the controllers orchestrate. The psql DAOs
// and the agent client satisfy them; tests swap in fakes.

type WalletStore interface {
	GetOrCreate(ctx context.Context, userAddress string) (*models.Wallet, error)
	Count(ctx context.Context) (int64, error)
}

type SessionStore interface {
	GetByID(ctx context.Context, id string) (*models.ChatSession, error)
	Create(ctx context.Context, userAddress, title string) (*models.ChatSession, error)
	Touch(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userAddress string) ([]models.ChatSession, error)
}

type MessageStore interface {
	SaveMessage(ctx context.Context, userAddress, sessionID, role, message, response string) (*models.ChatMessage, error)
	HistoryBySession(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	HistoryByUser(ctx context.Context, userAddress, sessionID string) ([]models.ChatMessage, error)
}

type Generator interface {
	IsReady() bool
	GetWalletAddress() string
	GenerateResponse(ctx context.Context, messages []agent.Message) (io.ReadCloser, error)
}
