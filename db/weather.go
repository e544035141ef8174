package db

import (
	"context"
	"errors"
	"fmt"

	"gofish/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WeatherRepository keeps the single cached weather document
type WeatherRepository struct {
	coll *mongo.Collection
}

func NewWeatherRepository(database *mongo.Database) *WeatherRepository {
	return &WeatherRepository{coll: database.Collection(WeatherCollection)}
}

func (r *WeatherRepository) Current(ctx context.Context) (*models.CachedWeather, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cached models.CachedWeather
	err := r.coll.FindOne(ctx, bson.M{}).Decode(&cached)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached weather: %w", err)
	}
	return &cached, nil
}

// Replace drops whatever is cached and inserts w in its place. The two steps
// are not atomic: if the insert fails the slot stays empty until the next
// successful refresh.
func (r *WeatherRepository) Replace(ctx context.Context, w models.CachedWeather) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear cached weather: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("failed to cache weather: %w", err)
	}
	return nil
}
