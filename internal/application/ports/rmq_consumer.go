package ports

import "context"

// RMQConsumer reads user lifecycle events back off the queue.
type RMQConsumer interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
}
