package services

import "gofish/models"

var achievementCatalog = [...]models.Achievement{
	{ID: "first_catch", Name: "First Catch", Description: "Catch your first fish", Icon: "🐟"},
	{ID: "catch_100", Name: "Century Fisher", Description: "Catch 100 fish", Icon: "💯"},
	{ID: "catch_1000", Name: "Master Angler", Description: "Catch 1000 fish", Icon: "🏆"},
	{ID: "golden_koi", Name: "Legendary Hunter", Description: "Catch a Golden Koi", Icon: "⭐"},
	{ID: "level_10", Name: "Rising Star", Description: "Reach level 10", Icon: "🌟"},
	{ID: "level_50", Name: "Pro Angler", Description: "Reach level 50", Icon: "🎖️"},
	{ID: "level_100", Name: "Fishing Legend", Description: "Reach level 100", Icon: "👑"},
	{ID: "prestige_1", Name: "Reborn", Description: "Prestige for the first time", Icon: "♻️"},
	{ID: "all_lures", Name: "Collector", Description: "Unlock all lures", Icon: "🎣"},
	{ID: "perfect_10", Name: "Perfectionist", Description: "Get 10 perfect catches in a row", Icon: "✨"},
	{ID: "whale_watcher", Name: "Whale Watcher", Description: "See the whale 10 times", Icon: "🐋"},
	{ID: "storm_fisher", Name: "Storm Chaser", Description: "Catch 50 fish during storms", Icon: "⛈️"},
}

// Achievements returns the catalog in declaration order. The slice is a copy.
func Achievements() []models.Achievement {
	out := make([]models.Achievement, len(achievementCatalog))
	copy(out, achievementCatalog[:])
	return out
}
