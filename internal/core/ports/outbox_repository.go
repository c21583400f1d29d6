package ports

import (
	"context"

	"zapshift/internal/core/domain/model/outbox"
)

type OutboxRepository interface {
	Add(ctx context.Context, message *outbox.Message) error

	// FetchPending locks up to limit undelivered messages, oldest first. Rows locked
	// by another publisher are skipped, so several instances can publish concurrently.
	FetchPending(ctx context.Context, limit int) ([]*outbox.Message, error)

	Update(ctx context.Context, message *outbox.Message) error
}
