package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Handle is a live link to one database on a MongoDB deployment.
// It is never mutated after creation and is safe for concurrent use.
type Handle struct {
	client   *mongo.Client
	database string
}

// Connect opens a connection, pings it and returns the handle. No retries.
// Caller should call Disconnect when done.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Handle, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Handle{client: client, database: database}, nil
}

// NewHandle wraps an already connected client.
func NewHandle(client *mongo.Client, database string) *Handle {
	return &Handle{client: client, database: database}
}

// Database returns the target database name.
func (h *Handle) Database() string { return h.database }

// Collection returns the named collection inside the target database.
func (h *Handle) Collection(name string) *mongo.Collection {
	return h.client.Database(h.database).Collection(name)
}

// Ping checks the deployment is still reachable.
func (h *Handle) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, nil)
}

func (h *Handle) Disconnect(ctx context.Context) error {
	return h.client.Disconnect(ctx)
}
