package models

import "time"

// Weather conditions exposed to the game client
const (
	ConditionClear  = "clear"
	ConditionCloudy = "cloudy"
	ConditionRain   = "rain"
	ConditionStorm  = "storm"
)

// WeatherReading is the weather state every player sees
type WeatherReading struct {
	Condition     string `bson:"condition" json:"condition"`
	Temperature   int    `bson:"temperature" json:"temperature"`
	WindSpeed     int    `bson:"wind_speed" json:"wind_speed"`
	CloudCover    int    `bson:"cloud_cover" json:"cloud_cover"`
	Precipitation int    `bson:"precipitation" json:"precipitation"`
}

// CachedWeather is the single persisted weather slot
type CachedWeather struct {
	WeatherReading `bson:",inline"`
	CachedAt       time.Time `bson:"cached_at"`
}

// FallbackWeather is served whenever the provider cannot be reached.
var FallbackWeather = WeatherReading{
	Condition:     ConditionClear,
	Temperature:   18,
	WindSpeed:     8,
	CloudCover:    30,
	Precipitation: 0,
}
