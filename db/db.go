package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"brewbliss/models"
)

const MessagesCollectionName = "messages"

// Archive is a write-only copy of accepted contact messages. Nothing reads it back.
type Archive struct {
	Client   *mongo.Client
	messages *mongo.Collection
}

// Connect dials MongoDB and pings it.
func Connect(ctx context.Context, uri, database string) (*Archive, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return &Archive{
		Client:   client,
		messages: client.Database(database).Collection(MessagesCollectionName),
	}, nil
}

func (a *Archive) SaveMessage(ctx context.Context, msg models.ContactMessage) error {
	if _, err := a.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("archive message %s: %w", msg.ID, err)
	}
	return nil
}

func (a *Archive) Close(ctx context.Context) error {
	return a.Client.Disconnect(ctx)
}
