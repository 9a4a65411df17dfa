package database

import (
	"context"
	"errors"
	"fmt"

	"mediguard-backend/config"
	"mediguard-backend/models"
)

var ErrUnsupportedStore = errors.New("unsupported database type")

// SessionStore holds session-scoped chat turns and symptom tracker
// entries. Everything it stores expires with the session TTL.
type SessionStore interface {
	AppendChatTurn(ctx context.Context, turn *models.ChatTurn) error
	ListChatTurns(ctx context.Context, sessionID string, limit int) ([]models.ChatTurn, error)
	ClearSession(ctx context.Context, sessionID string) error

	AddTrackerEntry(ctx context.Context, entry *models.TrackerEntry) error
	RecentTrackerEntries(ctx context.Context, sessionID string, limit int) ([]models.TrackerEntry, error)

	// HealthCheck performs a database health check
	HealthCheck(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Kind() string
}

// Connect establishes the session store based on config
func Connect(ctx context.Context, cfg *config.Config) (SessionStore, error) {
	switch cfg.Database.Type {
	case "memory":
		return NewMemoryStore(cfg.Database.SessionTTL), nil
	case "mongodb":
		return ConnectMongoDB(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStore, cfg.Database.Type)
	}
}
