package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

// Config selects the activity log database.
type Config struct {
	URI      string
	Database string
	AppName  string
	Timeout  time.Duration
}

// Conn is an open client bound to the activity log database.
type Conn struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Open dials cfg.URI and pings the primary before returning.
func Open(ctx context.Context, cfg Config) (*Conn, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName).
		SetServerSelectionTimeout(cfg.Timeout).
		SetRetryWrites(true)

	dialCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}
	return &Conn{Client: client, DB: client.Database(cfg.Database)}, nil
}

// Close disconnects the client, waiting at most timeout for in-flight writes.
func (c *Conn) Close(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.Client.Disconnect(ctx)
}
