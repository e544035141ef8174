package utils

import (
	"context"
	"fmt"
	"log"

	"gofish/models"
	"gofish/services"
)

type demoAngler struct {
	deviceID string
	username string
	scores   []int
	catches  []models.FishInput
}

var demoAnglers = []demoAngler{
	{
		deviceID: "demo-device-1",
		username: "ReelDeal",
		scores:   []int{1200, 2450},
		catches: []models.FishInput{
			{Name: "Bass", Size: 2.4, Points: 120, Color: "#4a7c59"},
			{Name: "Pike", Size: 4.1, Points: 300, Color: "#6b8e23"},
		},
	},
	{
		deviceID: "demo-device-2",
		username: "LureLord",
		scores:   []int{1800},
		catches: []models.FishInput{
			{Name: "Trout", Size: 1.2, Points: 80, Color: "#c0c0c0"},
		},
	},
	{
		deviceID: "demo-device-3",
		username: "CastAway",
		scores:   []int{600, 900, 750},
	},
}

// PopulateDemoAnglers creates a few demo players with scores and catches so
// a fresh deployment has a leaderboard to show. It does nothing when the
// leaderboard already has entries.
func PopulateDemoAnglers(ctx context.Context, users *services.UserService, scores *services.ScoreService, tacklebox *services.TackleboxService) (int, error) {
	existing, err := scores.Leaderboard(ctx, 1)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Println("Leaderboard already populated, skipping demo data")
		return 0, nil
	}

	for _, angler := range demoAnglers {
		user, err := users.CreateOrGet(ctx, angler.deviceID, angler.username)
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", angler.username, err)
		}
		for _, s := range angler.scores {
			_, err := scores.Submit(ctx, models.ScoreInput{
				UserID:   user.ID,
				Username: user.Username,
				Score:    s,
				Level:    1,
				Catches:  len(angler.catches),
				Stage:    1,
			})
			if err != nil {
				return 0, fmt.Errorf("seed score for %s: %w", angler.username, err)
			}
		}
		for _, fish := range angler.catches {
			if _, err := tacklebox.AddFish(ctx, user.ID, fish); err != nil {
				return 0, fmt.Errorf("seed catch for %s: %w", angler.username, err)
			}
		}
		if err := users.IncrementCatches(ctx, user.ID, len(angler.catches)); err != nil {
			return 0, err
		}
	}
	return len(demoAnglers), nil
}
