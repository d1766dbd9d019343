package builder

import (
	"context"
	"fmt"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/config"
	"github.com/avast/retry-go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// setupDatabase connects to MongoDB and verifies the connection.
// The ping is retried because the database container may still be
// starting when the service comes up.
func setupDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, cfg.MongoPingRetry.Timeout)
	defer cancelPing()

	err = retry.Do(
		func() error {
			return client.Ping(pingCtx, readpref.Primary())
		},
		cfg.MongoPingRetry.ToRetryOptions()...,
	)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("mongodb connection established",
		zap.String("database", cfg.MongoDatabase),
		zap.Duration("connect_timeout", cfg.MongoConnectTimeout),
	)

	return client, client.Database(cfg.MongoDatabase), nil
}
