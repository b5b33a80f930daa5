package mongo

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Evently-Event-Management/ms-event-seating/config"
)

func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	cli, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := cli.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("Connected to MongoDB.")

	return cli, nil
}

func Disconnect(ctx context.Context, cli *mongo.Client) {
	if cli == nil {
		return
	}

	if err := cli.Disconnect(ctx); err != nil {
		log.Printf("Error closing MongoDB connection: %v\n", err)
		return
	}

	log.Println("Connection to MongoDB closed.")
}
