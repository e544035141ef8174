// Package memory keeps the game state in process memory. It backs local runs
// without MongoDB and the service and controller tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"gofish/models"
)

// Store holds every collection behind one lock
type Store struct {
	mu        sync.RWMutex
	users     []*models.User
	scores    []models.Score
	weather   *models.CachedWeather
	tacklebox []models.Fish
}

// New creates an empty Store
func New() *Store {
	return &Store{}
}

// Users returns the store as a services.UserRepository
func (s *Store) Users() *Users { return &Users{s} }

// Scores returns the store as a services.ScoreRepository
func (s *Store) Scores() *Scores { return &Scores{s} }

// Weather returns the store as a services.WeatherRepository
func (s *Store) Weather() *Weather { return &Weather{s} }

// Tacklebox returns the store as a services.TackleboxRepository
func (s *Store) Tacklebox() *Tacklebox { return &Tacklebox{s} }

func (s *Store) userByID(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func cloneUser(u *models.User) models.User {
	c := *u
	c.UnlockedLures = slices.Clone(u.UnlockedLures)
	c.Achievements = slices.Clone(u.Achievements)
	if u.DailyChallengeDate != nil {
		d := *u.DailyChallengeDate
		c.DailyChallengeDate = &d
	}
	return c
}

type Users struct{ s *Store }

func (r *Users) CreateOrGet(_ context.Context, u models.User) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.DeviceID == u.DeviceID {
			return cloneUser(existing), nil
		}
	}
	stored := cloneUser(&u)
	r.s.users = append(r.s.users, &stored)
	return cloneUser(&stored), nil
}

func (r *Users) FindByDeviceID(_ context.Context, deviceID string) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.DeviceID == deviceID {
			return cloneUser(u), nil
		}
	}
	return models.User{}, fmt.Errorf("%w: %s", models.ErrUserNotFound, deviceID)
}

// Get returns a copy of the user with the given id, for tests and tooling.
func (r *Users) Get(id string) (models.User, bool) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u := r.s.userByID(id)
	if u == nil {
		return models.User{}, false
	}
	return cloneUser(u), true
}

func (r *Users) AddLure(_ context.Context, userID string, lureID int) ([]int, error) {
	var out []int
	err := r.mutate(userID, true, func(u *models.User) {
		if !slices.Contains(u.UnlockedLures, lureID) {
			u.UnlockedLures = append(u.UnlockedLures, lureID)
		}
		out = slices.Clone(u.UnlockedLures)
	})
	return out, err
}

func (r *Users) AddAchievement(_ context.Context, userID, achievementID string) ([]string, error) {
	var out []string
	err := r.mutate(userID, true, func(u *models.User) {
		if !slices.Contains(u.Achievements, achievementID) {
			u.Achievements = append(u.Achievements, achievementID)
		}
		out = slices.Clone(u.Achievements)
	})
	return out, err
}

func (r *Users) SetHighScore(_ context.Context, userID string, score int) error {
	return r.mutate(userID, false, func(u *models.User) { u.HighScore = score })
}

func (r *Users) RaiseHighScore(_ context.Context, userID string, score int) (bool, error) {
	raised := false
	err := r.mutate(userID, false, func(u *models.User) {
		if score > u.HighScore {
			u.HighScore = score
			raised = true
		}
	})
	return raised, err
}

func (r *Users) IncrementCatches(_ context.Context, userID string, count int) error {
	return r.mutate(userID, false, func(u *models.User) { u.TotalCatches += count })
}

func (r *Users) SetLevel(_ context.Context, userID string, level int) error {
	return r.mutate(userID, false, func(u *models.User) { u.Level = level })
}

func (r *Users) Prestige(_ context.Context, userID string) (int, error) {
	var prestige int
	err := r.mutate(userID, true, func(u *models.User) {
		u.Prestige++
		u.Level = 1
		prestige = u.Prestige
	})
	return prestige, err
}

func (r *Users) CompleteDailyChallenge(_ context.Context, userID, date string) error {
	return r.mutate(userID, false, func(u *models.User) {
		u.DailyChallengeCompleted = true
		d := date
		u.DailyChallengeDate = &d
	})
}

// mutate applies fn to the user under the write lock. Missing users are an
// error only when mustExist is set, mirroring a blind update in MongoDB.
func (r *Users) mutate(userID string, mustExist bool, fn func(u *models.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u := r.s.userByID(userID)
	if u == nil {
		if mustExist {
			return fmt.Errorf("%w: %s", models.ErrUserNotFound, userID)
		}
		return nil
	}
	fn(u)
	return nil
}

type Scores struct{ s *Store }

func (r *Scores) Insert(_ context.Context, sc models.Score) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.scores = append(r.s.scores, sc)
	return nil
}

func (r *Scores) Top(_ context.Context, limit int) ([]models.Score, error) {
	r.s.mu.RLock()
	sorted := slices.Clone(r.s.scores)
	r.s.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

type Weather struct{ s *Store }

func (r *Weather) Current(_ context.Context) (*models.CachedWeather, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.weather == nil {
		return nil, nil
	}
	w := *r.s.weather
	return &w, nil
}

func (r *Weather) Replace(_ context.Context, w models.CachedWeather) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.weather = &w
	return nil
}

type Tacklebox struct{ s *Store }

func (r *Tacklebox) Insert(_ context.Context, f models.Fish) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tacklebox = append(r.s.tacklebox, f)
	return nil
}

func (r *Tacklebox) Recent(_ context.Context, userID string, limit int) ([]models.Fish, error) {
	r.s.mu.RLock()
	var fish []models.Fish
	for i := len(r.s.tacklebox) - 1; i >= 0; i-- {
		if r.s.tacklebox[i].UserID == userID {
			fish = append(fish, r.s.tacklebox[i])
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(fish, func(i, j int) bool { return fish[i].CaughtAt.After(fish[j].CaughtAt) })
	if limit >= 0 && len(fish) > limit {
		fish = fish[:limit]
	}
	return fish, nil
}
