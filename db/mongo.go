package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTimeout bounds connect and server selection so a stuck document
// store cannot hang request handling
const mongoTimeout = 5 * time.Second

// NewMongoConnection connects to the document store from a single pre-built
// connection string and verifies the connection with a ping.
func NewMongoConnection(uri, database string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(mongoTimeout).
		SetServerSelectionTimeout(mongoTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	return client.Database(database), nil
}
