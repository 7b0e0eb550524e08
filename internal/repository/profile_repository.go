package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawmart/storefront-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileRepository defines the interface for user profile persistence.
// The document store is a best-effort collaborator: cart and checkout
// never depend on it being available.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile *models.UserProfile) error
}

type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a profile repository backed by the
// "profiles" collection.
func NewMongoProfileRepository(db *mongo.Database) ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection("profiles"),
	}
}

func (r *mongoProfileRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile

	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = time.Now()

	filter := bson.M{"_id": profile.UserID}
	update := bson.M{"$set": profile}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}
