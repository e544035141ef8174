package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"gofish/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func userDoc(id, deviceID string, extra ...bson.E) bson.D {
	doc := bson.D{
		{Key: "id", Value: id},
		{Key: "device_id", Value: deviceID},
		{Key: "username", Value: "Angler"},
		{Key: "unlocked_lures", Value: bson.A{0}},
		{Key: "high_score", Value: 0},
		{Key: "total_catches", Value: 0},
		{Key: "level", Value: 1},
		{Key: "prestige", Value: 0},
		{Key: "achievements", Value: bson.A{}},
		{Key: "daily_challenge_completed", Value: false},
		{Key: "daily_challenge_date", Value: nil},
	}
	for _, e := range extra {
		for i := range doc {
			if doc[i].Key == e.Key {
				doc[i].Value = e.Value
			}
		}
	}
	return doc
}

func TestExtractDBName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/fishing", "fishing"},
		{"mongodb://localhost:27017/", "gofish"},
		{"mongodb://localhost:27017", "gofish"},
		{"::not a uri", "gofish"},
	}
	for _, tt := range tests {
		if got := ExtractDBName(tt.uri, "gofish"); got != tt.want {
			t.Errorf("ExtractDBName(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find by device id", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gofish.users", mtest.FirstBatch, userDoc("u1", "dev-1")))

		user, err := repo.FindByDeviceID(ctx, "dev-1")
		if err != nil {
			t.Fatalf("FindByDeviceID: %v", err)
		}
		if user.ID != "u1" || user.Level != 1 || len(user.UnlockedLures) != 1 {
			t.Errorf("unexpected user %+v", user)
		}
	})

	mt.Run("find by device id missing", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gofish.users", mtest.FirstBatch))

		_, err := repo.FindByDeviceID(ctx, "nope")
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("create or get upserts", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: userDoc("u1", "dev-1")}))

		candidate := models.NewUser("u1", "dev-1", "", time.Now())
		user, err := repo.CreateOrGet(ctx, candidate)
		if err != nil {
			t.Fatalf("CreateOrGet: %v", err)
		}
		if user.ID != "u1" {
			t.Errorf("expected u1, got %s", user.ID)
		}

		cmd := mt.GetStartedEvent().Command
		if upsert, ok := cmd.Lookup("upsert").BooleanOK(); !ok || !upsert {
			t.Errorf("expected an upsert, got %s", cmd)
		}
		if _, err := cmd.LookupErr("update", "$setOnInsert", "id"); err != nil {
			t.Errorf("expected $setOnInsert of id, got %s", cmd)
		}
	})

	mt.Run("create or get loses insert race", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11000, Name: "DuplicateKey", Message: "E11000 duplicate key error"}),
			mtest.CreateCursorResponse(0, "gofish.users", mtest.FirstBatch, userDoc("winner", "dev-1")),
		)

		user, err := repo.CreateOrGet(ctx, models.NewUser("loser", "dev-1", "", time.Now()))
		if err != nil {
			t.Fatalf("CreateOrGet: %v", err)
		}
		if user.ID != "winner" {
			t.Errorf("expected the existing record, got %s", user.ID)
		}
	})

	mt.Run("add lure", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		doc := userDoc("u1", "dev-1", bson.E{Key: "unlocked_lures", Value: bson.A{0, 3}})
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc}))

		lures, err := repo.AddLure(ctx, "u1", 3)
		if err != nil {
			t.Fatalf("AddLure: %v", err)
		}
		if len(lures) != 2 || lures[1] != 3 {
			t.Errorf("expected [0 3], got %v", lures)
		}
		cmd := mt.GetStartedEvent().Command
		if _, err := cmd.LookupErr("update", "$addToSet", "unlocked_lures"); err != nil {
			t.Errorf("expected $addToSet, got %s", cmd)
		}
	})

	mt.Run("add achievement missing user", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.AddAchievement(ctx, "ghost", "first_catch")
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("prestige", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		doc := userDoc("u1", "dev-1", bson.E{Key: "prestige", Value: 3})
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc}))

		p, err := repo.Prestige(ctx, "u1")
		if err != nil {
			t.Fatalf("Prestige: %v", err)
		}
		if p != 3 {
			t.Errorf("expected prestige 3, got %d", p)
		}
		cmd := mt.GetStartedEvent().Command
		if _, err := cmd.LookupErr("update", "$inc", "prestige"); err != nil {
			t.Errorf("expected $inc of prestige, got %s", cmd)
		}
		if _, err := cmd.LookupErr("update", "$set", "level"); err != nil {
			t.Errorf("expected $set of level, got %s", cmd)
		}
	})

	mt.Run("raise high score", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		raised, err := repo.RaiseHighScore(ctx, "u1", 500)
		if err != nil || !raised {
			t.Errorf("expected raise, got %v %v", raised, err)
		}
		raised, err = repo.RaiseHighScore(ctx, "u1", 100)
		if err != nil || raised {
			t.Errorf("expected no raise, got %v %v", raised, err)
		}
	})

	mt.Run("increment catches", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		if err := repo.IncrementCatches(ctx, "u1", 5); err != nil {
			t.Fatalf("IncrementCatches: %v", err)
		}
		cmd := mt.GetStartedEvent().Command
		update := cmd.Lookup("updates").Array().Index(0).Value().Document()
		if _, err := update.LookupErr("u", "$inc", "total_catches"); err != nil {
			t.Errorf("expected $inc of total_catches, got %s", update)
		}
	})
}

func TestScoreRepositoryTop(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sorted by score", func(mt *mtest.T) {
		repo := &ScoreRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gofish.scores", mtest.FirstBatch,
			bson.D{{Key: "id", Value: "s1"}, {Key: "username", Value: "a"}, {Key: "score", Value: 900}},
			bson.D{{Key: "id", Value: "s2"}, {Key: "username", Value: "b"}, {Key: "score", Value: 400}},
		))

		scores, err := repo.Top(context.Background(), 2)
		if err != nil {
			t.Fatalf("Top: %v", err)
		}
		if len(scores) != 2 || scores[0].Score != 900 {
			t.Errorf("unexpected scores %+v", scores)
		}

		cmd := mt.GetStartedEvent().Command
		sort := cmd.Lookup("sort").Document()
		if key := sort.Index(0).Key(); key != "score" {
			t.Errorf("expected sort on score, got %s", sort)
		}
	})
}

func TestWeatherRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("empty slot", func(mt *mtest.T) {
		repo := &WeatherRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gofish.weather", mtest.FirstBatch))

		cached, err := repo.Current(ctx)
		if err != nil || cached != nil {
			t.Errorf("expected empty slot, got %+v %v", cached, err)
		}
	})

	mt.Run("cached reading", func(mt *mtest.T) {
		repo := &WeatherRepository{coll: mt.Coll}
		at := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gofish.weather", mtest.FirstBatch, bson.D{
			{Key: "condition", Value: "rain"},
			{Key: "temperature", Value: 14},
			{Key: "wind_speed", Value: 20},
			{Key: "cloud_cover", Value: 80},
			{Key: "precipitation", Value: 60},
			{Key: "cached_at", Value: at},
		}))

		cached, err := repo.Current(ctx)
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		if cached.Condition != "rain" || cached.Precipitation != 60 || !cached.CachedAt.Equal(at) {
			t.Errorf("unexpected reading %+v", cached)
		}
	})

	mt.Run("replace deletes then inserts", func(mt *mtest.T) {
		repo := &WeatherRepository{coll: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		err := repo.Replace(ctx, models.CachedWeather{WeatherReading: models.FallbackWeather, CachedAt: time.Now()})
		if err != nil {
			t.Fatalf("Replace: %v", err)
		}
		if name := mt.GetStartedEvent().CommandName; name != "delete" {
			t.Errorf("expected delete first, got %s", name)
		}
		if name := mt.GetStartedEvent().CommandName; name != "insert" {
			t.Errorf("expected insert second, got %s", name)
		}
	})

	mt.Run("replace reports a failed insert", func(mt *mtest.T) {
		repo := &WeatherRepository{coll: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 121, Message: "document failed validation"}),
		)

		err := repo.Replace(ctx, models.CachedWeather{WeatherReading: models.FallbackWeather, CachedAt: time.Now()})
		if err == nil {
			t.Fatal("expected the insert failure to be returned")
		}
	})
}

func TestTackleboxRepositoryRecent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("newest first for one user", func(mt *mtest.T) {
		repo := &TackleboxRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gofish.tacklebox", mtest.FirstBatch,
			bson.D{{Key: "id", Value: "f2"}, {Key: "user_id", Value: "u1"}, {Key: "name", Value: "Trout"}},
		))

		fish, err := repo.Recent(context.Background(), "u1", 2)
		if err != nil {
			t.Fatalf("Recent: %v", err)
		}
		if len(fish) != 1 || fish[0].ID != "f2" {
			t.Errorf("unexpected fish %+v", fish)
		}

		cmd := mt.GetStartedEvent().Command
		if uid := cmd.Lookup("filter", "user_id").StringValue(); uid != "u1" {
			t.Errorf("expected filter on u1, got %s", uid)
		}
		sort := cmd.Lookup("sort").Document()
		if key := sort.Index(0).Key(); key != "caught_at" {
			t.Errorf("expected sort on caught_at, got %s", sort)
		}
	})
}
