package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoConn is the part of *mongo.Client used to verify a fresh connection.
type mongoConn interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
}

// ConnectMongo opens and pings a MongoDB connection
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := verifyConnection(ctx, client); err != nil {
		return nil, err
	}

	log.Info().Msg("Connected to MongoDB!")
	return client, nil
}

// verifyConnection pings c and disconnects it when the ping fails.
func verifyConnection(ctx context.Context, c mongoConn) error {
	err := c.Ping(ctx, nil)
	if err == nil {
		return nil
	}

	disconnectCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if derr := c.Disconnect(disconnectCtx); derr != nil {
		log.Warn().Err(derr).Msg("Failed to disconnect after ping failure")
	}
	return fmt.Errorf("failed to ping mongodb: %w", err)
}
