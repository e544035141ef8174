package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gofish/models"
)

// DefaultWeatherURL is the Open-Meteo forecast endpoint
const DefaultWeatherURL = "https://api.open-meteo.com/v1/forecast"

// ErrUpstreamUnavailable wraps every failure to obtain a reading from the
// weather provider.
var ErrUpstreamUnavailable = errors.New("weather provider unavailable")

// WeatherProvider fetches a fresh reading from the outside world
type WeatherProvider interface {
	Fetch(ctx context.Context) (models.WeatherReading, error)
}

// OpenMeteo queries a fixed location on the Open-Meteo API
type OpenMeteo struct {
	URL       string
	Latitude  float64
	Longitude float64
	Client    *http.Client
}

// NewOpenMeteo creates a provider for the given location. A zero timeout
// leaves the request unbounded.
func NewOpenMeteo(baseURL string, lat, lon float64, timeout time.Duration) *OpenMeteo {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	return &OpenMeteo{
		URL:       baseURL,
		Latitude:  lat,
		Longitude: lon,
		Client:    &http.Client{Timeout: timeout},
	}
}

type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature *float64 `json:"temperature"`
		Windspeed   *float64 `json:"windspeed"`
		Weathercode *float64 `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		CloudCover               []*float64 `json:"cloud_cover"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
	} `json:"hourly"`
}

// Fetch requests current weather plus the hourly cloud cover and
// precipitation probability series.
func (o *OpenMeteo) Fetch(ctx context.Context) (models.WeatherReading, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(o.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(o.Longitude, 'f', -1, 64))
	params.Set("current_weather", "true")
	params.Set("hourly", "precipitation_probability,cloud_cover")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.URL+"?"+params.Encode(), nil)
	if err != nil {
		return models.WeatherReading{}, fmt.Errorf("%w: failed to create request: %v", ErrUpstreamUnavailable, err)
	}

	client := o.Client
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.WeatherReading{}, fmt.Errorf("%w: request failed: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.WeatherReading{}, fmt.Errorf("%w: failed to read response: %v", ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.WeatherReading{}, fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	var data openMeteoResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return models.WeatherReading{}, fmt.Errorf("%w: failed to parse response: %v", ErrUpstreamUnavailable, err)
	}

	cw := data.CurrentWeather
	return models.WeatherReading{
		Condition:     ConditionForCode(int(valueOr(cw.Weathercode, 0))),
		Temperature:   int(valueOr(cw.Temperature, 18)),
		WindSpeed:     int(valueOr(cw.Windspeed, 8)),
		CloudCover:    int(firstOr(data.Hourly.CloudCover, 30)),
		Precipitation: int(firstOr(data.Hourly.PrecipitationProbability, 0)),
	}, nil
}

// ConditionForCode buckets a WMO weather code into a game condition.
func ConditionForCode(code int) string {
	switch {
	case code < 4:
		return models.ConditionClear
	case code < 50:
		return models.ConditionCloudy
	case code < 70:
		return models.ConditionRain
	default:
		return models.ConditionStorm
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func firstOr(series []*float64, def float64) float64 {
	if len(series) == 0 {
		return def
	}
	return valueOr(series[0], def)
}
