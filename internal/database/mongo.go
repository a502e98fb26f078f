package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"catalog-crud/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var (
	instance *Mongo
	once     sync.Once
	initErr  error
)

// Instance connects once and pings; later calls return the same handle.
func Instance(globalCtx context.Context, uri, dbName string) (*Mongo, error) {
	once.Do(func() {
		instance, initErr = Connect(globalCtx, uri, dbName)
	})

	return instance, initErr
}

func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	log := logger.Instance()

	opts := options.Client().
		ApplyURI(uri).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		log.Error("MongoDB ping failed", slog.String("error", err.Error()))
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("Connected to MongoDB successfully", slog.String("database", dbName))

	return &Mongo{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
