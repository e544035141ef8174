package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gofish/db/memory"
	"gofish/models"
)

func newUserService(t *testing.T) (*UserService, *memory.Users, *fakeClock) {
	t.Helper()
	store := memory.New()
	clock := newFakeClock(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))
	return NewUserService(store.Users(), clock), store.Users(), clock
}

func TestCreateOrGetIsIdempotent(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	first, err := svc.CreateOrGet(ctx, "device-1", "Nemo")
	if err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}
	second, err := svc.CreateOrGet(ctx, "device-1", "Someone Else")
	if err != nil {
		t.Fatalf("CreateOrGet again: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same id, got %s and %s", first.ID, second.ID)
	}
	if second.Username != "Nemo" {
		t.Errorf("expected original username to be kept, got %q", second.Username)
	}
}

func TestCreateOrGetConcurrentCallsShareOneRecord(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	ids := make([]string, 20)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := svc.CreateOrGet(ctx, "shared-device", "")
			if err != nil {
				t.Errorf("CreateOrGet: %v", err)
				return
			}
			ids[i] = u.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatalf("expected a single record, saw ids %s and %s", ids[0], id)
		}
	}
}

func TestCreateOrGetDefaults(t *testing.T) {
	svc, _, clock := newUserService(t)

	u, err := svc.CreateOrGet(context.Background(), "device-2", "")
	if err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}

	if u.Username != models.DefaultUsername {
		t.Errorf("expected username %q, got %q", models.DefaultUsername, u.Username)
	}
	if len(u.UnlockedLures) != 1 || u.UnlockedLures[0] != 0 {
		t.Errorf("expected unlocked lures [0], got %v", u.UnlockedLures)
	}
	if u.HighScore != 0 || u.TotalCatches != 0 || u.Prestige != 0 {
		t.Errorf("expected zeroed counters, got %+v", u)
	}
	if u.Level != 1 {
		t.Errorf("expected level 1, got %d", u.Level)
	}
	if u.Achievements == nil || len(u.Achievements) != 0 {
		t.Errorf("expected empty achievements, got %v", u.Achievements)
	}
	if u.DailyChallengeCompleted || u.DailyChallengeDate != nil {
		t.Errorf("expected daily challenge not completed")
	}
	if !u.CreatedAt.Equal(clock.Now()) {
		t.Errorf("expected created_at %v, got %v", clock.Now(), u.CreatedAt)
	}
}

func TestGetByDeviceIDNotFound(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, err := svc.GetByDeviceID(context.Background(), "missing")
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUnlockLureTwiceKeepsOneCopy(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()
	u, _ := svc.CreateOrGet(ctx, "device-3", "")

	if _, err := svc.UnlockLure(ctx, u.ID, 4); err != nil {
		t.Fatalf("UnlockLure: %v", err)
	}
	lures, err := svc.UnlockLure(ctx, u.ID, 4)
	if err != nil {
		t.Fatalf("UnlockLure again: %v", err)
	}

	count := 0
	for _, l := range lures {
		if l == 4 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected lure 4 exactly once, got %v", lures)
	}
	if len(lures) != 2 || lures[0] != 0 {
		t.Errorf("expected [0 4], got %v", lures)
	}
}

func TestUnlockAchievementTwiceKeepsOneCopy(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()
	u, _ := svc.CreateOrGet(ctx, "device-4", "")

	svc.UnlockAchievement(ctx, u.ID, "first_catch")
	achievements, err := svc.UnlockAchievement(ctx, u.ID, "first_catch")
	if err != nil {
		t.Fatalf("UnlockAchievement: %v", err)
	}
	if len(achievements) != 1 || achievements[0] != "first_catch" {
		t.Errorf("expected [first_catch], got %v", achievements)
	}
}

func TestUnlockForMissingUser(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	if _, err := svc.UnlockLure(ctx, "nope", 1); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("UnlockLure: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.UnlockAchievement(ctx, "nope", "first_catch"); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("UnlockAchievement: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Prestige(ctx, "nope"); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("Prestige: expected ErrUserNotFound, got %v", err)
	}
}

func TestBlindUpdatesIgnoreMissingUser(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	if err := svc.SetHighScore(ctx, "nope", 10); err != nil {
		t.Errorf("SetHighScore: %v", err)
	}
	if err := svc.IncrementCatches(ctx, "nope", 1); err != nil {
		t.Errorf("IncrementCatches: %v", err)
	}
	if err := svc.SetLevel(ctx, "nope", 3); err != nil {
		t.Errorf("SetLevel: %v", err)
	}
	if err := svc.CompleteDailyChallenge(ctx, "nope"); err != nil {
		t.Errorf("CompleteDailyChallenge: %v", err)
	}
}

func TestPrestigeResetsLevel(t *testing.T) {
	svc, users, _ := newUserService(t)
	ctx := context.Background()
	u, _ := svc.CreateOrGet(ctx, "device-5", "")

	svc.SetLevel(ctx, u.ID, 42)
	p, err := svc.Prestige(ctx, u.ID)
	if err != nil {
		t.Fatalf("Prestige: %v", err)
	}
	if p != 1 {
		t.Errorf("expected prestige 1, got %d", p)
	}
	p, _ = svc.Prestige(ctx, u.ID)
	if p != 2 {
		t.Errorf("expected prestige 2, got %d", p)
	}

	stored, _ := users.Get(u.ID)
	if stored.Level != 1 {
		t.Errorf("expected level reset to 1, got %d", stored.Level)
	}
}

func TestIncrementCatchesConcurrently(t *testing.T) {
	svc, users, _ := newUserService(t)
	ctx := context.Background()
	u, _ := svc.CreateOrGet(ctx, "device-6", "")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.IncrementCatches(ctx, u.ID, 2)
		}()
	}
	wg.Wait()

	stored, _ := users.Get(u.ID)
	if stored.TotalCatches != 100 {
		t.Errorf("expected 100 catches, got %d", stored.TotalCatches)
	}
}

func TestSetHighScoreOverwritesUnconditionally(t *testing.T) {
	svc, users, _ := newUserService(t)
	ctx := context.Background()
	u, _ := svc.CreateOrGet(ctx, "device-7", "")

	svc.SetHighScore(ctx, u.ID, 900)
	svc.SetHighScore(ctx, u.ID, 50)

	stored, _ := users.Get(u.ID)
	if stored.HighScore != 50 {
		t.Errorf("expected high score 50, got %d", stored.HighScore)
	}
}

func TestCompleteDailyChallengeRecordsUTCDate(t *testing.T) {
	svc, users, clock := newUserService(t)
	ctx := context.Background()
	u, _ := svc.CreateOrGet(ctx, "device-8", "")

	clock.Advance(14 * time.Hour) // 2025-06-16 00:00 UTC
	if err := svc.CompleteDailyChallenge(ctx, u.ID); err != nil {
		t.Fatalf("CompleteDailyChallenge: %v", err)
	}

	stored, _ := users.Get(u.ID)
	if !stored.DailyChallengeCompleted {
		t.Errorf("expected challenge marked complete")
	}
	if stored.DailyChallengeDate == nil || *stored.DailyChallengeDate != "2025-06-16" {
		t.Errorf("expected date 2025-06-16, got %v", stored.DailyChallengeDate)
	}
}
