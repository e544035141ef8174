package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type ServerConfig struct {
	Port           int      `yaml:"port" env:"PORT"`
	AllowedOrigins []string `yaml:"allowedOrigins" env:"CORS_ORIGINS" envSeparator:","`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"STORE_DRIVER"`
	URI    string `yaml:"uri" env:"MONGO_URL"`
	// Name overrides the database named in URI; "gofish" if neither is set.
	Name string `yaml:"name" env:"DB_NAME"`
}

// RedisConfig enables cross-instance event fan-out when Addr is set
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
	Stream   string `yaml:"stream" env:"REDIS_STREAM"`
}

type WeatherConfig struct {
	URL       string        `yaml:"url" env:"WEATHER_URL"`
	Latitude  float64       `yaml:"latitude"`
	Longitude float64       `yaml:"longitude"`
	TTL       time.Duration `yaml:"ttl"`
	// Timeout of 0 leaves provider requests unbounded.
	Timeout time.Duration `yaml:"timeout" env:"WEATHER_TIMEOUT"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Weather  WeatherConfig  `yaml:"weather"`
}

// Default returns the configuration used when neither the file nor the
// environment sets a value.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           8001,
			AllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver: DriverMongo,
			URI:    "mongodb://localhost:27017",
		},
		Redis: RedisConfig{
			Stream: "gofish:events",
		},
		Weather: WeatherConfig{
			URL:       "https://api.open-meteo.com/v1/forecast",
			Latitude:  52.52,
			Longitude: 13.41,
			TTL:       30 * time.Minute,
		},
	}
}

// LoadConfig reads the configuration file, then applies a .env file in the
// working directory and the process environment on top. A missing file is
// not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.URI == "" {
			return errors.New("database.uri is required for the mongo driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// RedisEnabled reports whether game events go through Redis
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}
