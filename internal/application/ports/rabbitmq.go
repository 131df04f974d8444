package ports

import (
	"context"

	"file-share-api/internal/domain/notification"
)

// Notifier queues notifications without blocking the caller.
type Notifier interface {
	Publish(e notification.Event) error
}

type RabbitMQ interface {
	Notifier
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	Close()
}
