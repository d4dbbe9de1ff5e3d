package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fluxofest/live-chat/internal/models"
)

// MessageRepository archives accepted messages. The live view stays in the
// in-memory buffer; the archive backs room history after a restart.
type MessageRepository interface {
	Insert(ctx context.Context, msg *models.ChatMessage) error
	Update(ctx context.Context, msg *models.ChatMessage) error
	ListByRoom(ctx context.Context, roomID string, limit int64) ([]*models.ChatMessage, error)
}

type messageRepo struct {
	collection *mongo.Collection
}

func NewMessageRepository(db *DB) MessageRepository {
	return &messageRepo{
		collection: db.Database.Collection("messages"),
	}
}

func (r *messageRepo) Insert(ctx context.Context, msg *models.ChatMessage) error {
	if _, err := r.collection.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *messageRepo) Update(ctx context.Context, msg *models.ChatMessage) error {
	filter := bson.M{"_id": msg.ID}
	update := bson.M{"$set": msg}
	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	return nil
}

func (r *messageRepo) ListByRoom(ctx context.Context, roomID string, limit int64) ([]*models.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []*models.ChatMessage
	for cursor.Next(ctx) {
		var msg models.ChatMessage
		if err := cursor.Decode(&msg); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		msgs = append(msgs, &msg)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return msgs, nil
}
