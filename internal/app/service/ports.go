package service

import (
	"context"
	"time"

	"github.com/lotus-group/lotus-bot/internal/infra/storage"
)

// Lo implementa internal/infra/storage.RoRequestRepo
type RoRequests interface {
	Create(ctx context.Context, req storage.RoRequest) (int64, error)
	FindByMessage(ctx context.Context, guildID, messageID string) (storage.RoRequest, error)
	Decide(ctx context.Context, id int64, status, reviewerID string, at time.Time) (bool, error)
	Delete(ctx context.Context, id int64) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Lo implementa internal/infra/storage.StreamerRequestRepo
type StreamerRequests interface {
	Create(ctx context.Context, req storage.StreamerRequest) (int64, error)
	SetMessage(ctx context.Context, id int64, channelID, messageID string) error
	FindByID(ctx context.Context, id int64) (storage.StreamerRequest, error)
	Delete(ctx context.Context, id int64) error
	Decide(ctx context.Context, id int64, status, roleKey, reviewerID string, at time.Time) (bool, error)
}
