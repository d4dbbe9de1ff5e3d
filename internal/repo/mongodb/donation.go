package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fluxofest/live-chat/internal/models"
)

type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	GetByMessageID(ctx context.Context, messageID string) (*models.Donation, error)
	// Confirm flips a pending donation record. It returns false when the
	// record was already confirmed, making webhook retries idempotent.
	Confirm(ctx context.Context, messageID, chargeID string, amount float64) (bool, error)
}

type donationRepo struct {
	collection *mongo.Collection
}

func NewDonationRepository(db *DB) DonationRepository {
	return &donationRepo{
		collection: db.Database.Collection("donations"),
	}
}

func (r *donationRepo) Create(ctx context.Context, donation *models.Donation) error {
	donation.CreatedAt = time.Now()
	donation.Status = models.DonationPending
	if _, err := r.collection.InsertOne(ctx, donation); err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

func (r *donationRepo) GetByMessageID(ctx context.Context, messageID string) (*models.Donation, error) {
	var donation models.Donation
	err := r.collection.FindOne(ctx, bson.M{"_id": messageID}).Decode(&donation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get donation: %w", err)
	}
	return &donation, nil
}

func (r *donationRepo) Confirm(ctx context.Context, messageID, chargeID string, amount float64) (bool, error) {
	now := time.Now()
	filter := bson.M{"_id": messageID, "status": models.DonationPending}
	update := bson.M{"$set": bson.M{
		"status":       models.DonationConfirmed,
		"charge_id":    chargeID,
		"amount":       amount,
		"confirmed_at": now,
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("confirm donation: %w", err)
	}
	return res.ModifiedCount > 0, nil
}
