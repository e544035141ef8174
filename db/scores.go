package db

import (
	"context"
	"fmt"

	"gofish/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScoreRepository is the append-only scores collection
type ScoreRepository struct {
	coll *mongo.Collection
}

func NewScoreRepository(database *mongo.Database) *ScoreRepository {
	return &ScoreRepository{coll: database.Collection(ScoresCollection)}
}

func (r *ScoreRepository) Insert(ctx context.Context, s models.Score) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

// Top returns the highest scores first. Equal scores come back in natural
// order.
func (r *ScoreRepository) Top(ctx context.Context, limit int) ([]models.Score, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "score", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer cursor.Close(ctx)

	var scores []models.Score
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}
	return scores, nil
}
