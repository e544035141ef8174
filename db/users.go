package db

import (
	"context"
	"errors"
	"fmt"

	"gofish/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository stores player profiles in the users collection
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository binds a UserRepository to database
func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{coll: database.Collection(UsersCollection)}
}

// CreateOrGet upserts on device_id, only writing fields when the document is
// new. A concurrent upsert that loses the unique-index race re-reads the
// winner's document.
func (r *UserRepository) CreateOrGet(ctx context.Context, u models.User) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"device_id": u.DeviceID}
	update := bson.M{"$setOnInsert": bson.M{
		"id":                        u.ID,
		"username":                  u.Username,
		"unlocked_lures":            u.UnlockedLures,
		"high_score":                u.HighScore,
		"total_catches":             u.TotalCatches,
		"level":                     u.Level,
		"prestige":                  u.Prestige,
		"achievements":              u.Achievements,
		"daily_challenge_completed": u.DailyChallengeCompleted,
		"daily_challenge_date":      u.DailyChallengeDate,
		"created_at":                u.CreatedAt,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.User
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if mongo.IsDuplicateKeyError(err) {
		err = r.coll.FindOne(ctx, filter).Decode(&stored)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to upsert user: %w", err)
	}
	return stored, nil
}

// FindByDeviceID returns models.ErrUserNotFound when no profile matches
func (r *UserRepository) FindByDeviceID(ctx context.Context, deviceID string) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"device_id": deviceID}).Decode(&user)
	if err != nil {
		return models.User{}, notFound(err, deviceID)
	}
	return user, nil
}

func (r *UserRepository) AddLure(ctx context.Context, userID string, lureID int) ([]int, error) {
	user, err := r.findAndModify(ctx, userID, bson.M{"$addToSet": bson.M{"unlocked_lures": lureID}})
	if err != nil {
		return nil, err
	}
	return user.UnlockedLures, nil
}

func (r *UserRepository) AddAchievement(ctx context.Context, userID, achievementID string) ([]string, error) {
	user, err := r.findAndModify(ctx, userID, bson.M{"$addToSet": bson.M{"achievements": achievementID}})
	if err != nil {
		return nil, err
	}
	return user.Achievements, nil
}

func (r *UserRepository) SetHighScore(ctx context.Context, userID string, score int) error {
	return r.update(ctx, bson.M{"id": userID}, bson.M{"$set": bson.M{"high_score": score}})
}

// RaiseHighScore only matches when the stored high score is lower, so two
// racing submissions can never lower it.
func (r *UserRepository) RaiseHighScore(ctx context.Context, userID string, score int) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"id": userID, "high_score": bson.M{"$lt": score}}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"high_score": score}})
	if err != nil {
		return false, fmt.Errorf("failed to raise high score: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *UserRepository) IncrementCatches(ctx context.Context, userID string, count int) error {
	return r.update(ctx, bson.M{"id": userID}, bson.M{"$inc": bson.M{"total_catches": count}})
}

func (r *UserRepository) SetLevel(ctx context.Context, userID string, level int) error {
	return r.update(ctx, bson.M{"id": userID}, bson.M{"$set": bson.M{"level": level}})
}

func (r *UserRepository) Prestige(ctx context.Context, userID string) (int, error) {
	user, err := r.findAndModify(ctx, userID, bson.M{
		"$inc": bson.M{"prestige": 1},
		"$set": bson.M{"level": 1},
	})
	if err != nil {
		return 0, err
	}
	return user.Prestige, nil
}

func (r *UserRepository) CompleteDailyChallenge(ctx context.Context, userID, date string) error {
	return r.update(ctx, bson.M{"id": userID}, bson.M{"$set": bson.M{
		"daily_challenge_completed": true,
		"daily_challenge_date":      date,
	}})
}

func (r *UserRepository) findAndModify(ctx context.Context, userID string, update bson.M) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": userID}, update, opts).Decode(&user)
	if err != nil {
		return models.User{}, notFound(err, userID)
	}
	return user, nil
}

// update applies a blind single-document update. A missing user is not an
// error for these operations.
func (r *UserRepository) update(ctx context.Context, filter, update bson.M) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func notFound(err error, key string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s", models.ErrUserNotFound, key)
	}
	return fmt.Errorf("failed to load user %s: %w", key, err)
}
