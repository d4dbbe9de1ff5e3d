package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fluxofest/live-chat/internal/models"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.ChatRoom) error
	GetByID(ctx context.Context, id string) (*models.ChatRoom, error)
	List(ctx context.Context) ([]*models.ChatRoom, error)
	AddMember(ctx context.Context, member *models.RoomMember) error
	ListMembers(ctx context.Context, roomID string) ([]*models.RoomMember, error)
}

type roomRepo struct {
	rooms   *mongo.Collection
	members *mongo.Collection
}

func NewRoomRepository(db *DB) RoomRepository {
	return &roomRepo{
		rooms:   db.Database.Collection("rooms"),
		members: db.Database.Collection("room_members"),
	}
}

func (r *roomRepo) Create(ctx context.Context, room *models.ChatRoom) error {
	room.CreatedAt = time.Now()
	if _, err := r.rooms.InsertOne(ctx, room); err != nil {
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.rooms.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

func (r *roomRepo) List(ctx context.Context) ([]*models.ChatRoom, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.rooms.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []*models.ChatRoom
	for cursor.Next(ctx) {
		var room models.ChatRoom
		if err := cursor.Decode(&room); err != nil {
			return nil, fmt.Errorf("decode room: %w", err)
		}
		rooms = append(rooms, &room)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return rooms, nil
}

func (r *roomRepo) AddMember(ctx context.Context, member *models.RoomMember) error {
	member.JoinedAt = time.Now()
	filter := bson.M{"room_id": member.RoomID, "user_id": member.UserID}
	update := bson.M{"$setOnInsert": member}
	opts := options.Update().SetUpsert(true)
	if _, err := r.members.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("add room member: %w", err)
	}
	return nil
}

func (r *roomRepo) ListMembers(ctx context.Context, roomID string) ([]*models.RoomMember, error) {
	cursor, err := r.members.Find(ctx, bson.M{"room_id": roomID})
	if err != nil {
		return nil, fmt.Errorf("list room members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []*models.RoomMember
	for cursor.Next(ctx) {
		var member models.RoomMember
		if err := cursor.Decode(&member); err != nil {
			return nil, fmt.Errorf("decode room member: %w", err)
		}
		members = append(members, &member)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return members, nil
}
