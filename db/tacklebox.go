package db

import (
	"context"
	"fmt"

	"gofish/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TackleboxRepository stores caught fish
type TackleboxRepository struct {
	coll *mongo.Collection
}

func NewTackleboxRepository(database *mongo.Database) *TackleboxRepository {
	return &TackleboxRepository{coll: database.Collection(TackleboxCollection)}
}

func (r *TackleboxRepository) Insert(ctx context.Context, f models.Fish) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("failed to insert fish: %w", err)
	}
	return nil
}

// Recent returns the user's newest catches first; _id breaks ties between
// catches recorded in the same millisecond.
func (r *TackleboxRepository) Recent(ctx context.Context, userID string, limit int) ([]models.Fish, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "caught_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tacklebox: %w", err)
	}
	defer cursor.Close(ctx)

	var fish []models.Fish
	if err := cursor.All(ctx, &fish); err != nil {
		return nil, fmt.Errorf("failed to decode tacklebox: %w", err)
	}
	return fish, nil
}
