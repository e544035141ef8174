package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gofish/config"
	"gofish/controllers"
	"gofish/db"
	"gofish/db/memory"
	"gofish/internal/events"
	"gofish/routes"
	"gofish/services"
	"gofish/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type repositories struct {
	users     services.UserRepository
	scores    services.ScoreRepository
	weather   services.WeatherRepository
	tacklebox services.TackleboxRepository
}

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "./config/config.prod.yml"), "path to the YAML config file")
	flag.Parse()

	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, mongoClient, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	if mongoClient != nil {
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Printf("Error disconnecting from MongoDB: %v", err)
			}
		}()
	}

	hub := websocket.NewHub()
	defer hub.CloseAll()

	publisher, rdb, err := setupEvents(ctx, cfg, hub)
	if err != nil {
		log.Fatalf("Failed to set up game events: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	clock := services.RealClock{}
	provider := services.NewOpenMeteo(cfg.Weather.URL, cfg.Weather.Latitude, cfg.Weather.Longitude, cfg.Weather.Timeout)

	handlers := routes.Handlers{
		Users: &controllers.UserController{
			Users:  services.NewUserService(repos.users, clock),
			Events: publisher,
		},
		Scores: &controllers.ScoreController{
			Scores: services.NewScoreService(repos.scores, repos.users, clock),
			Events: publisher,
		},
		Tacklebox: &controllers.TackleboxController{
			Tacklebox: services.NewTackleboxService(repos.tacklebox, clock),
			Events:    publisher,
		},
		World: &controllers.WorldController{
			Weather: services.NewWeatherService(repos.weather, provider, clock, cfg.Weather.TTL),
			Clock:   clock,
		},
		Hub: hub,
	}

	router := setupRouter(cfg, handlers)
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (repositories, *mongo.Client, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Println("Using in-memory store; data is lost on restart")
		store := memory.New()
		return repositories{
			users:     store.Users(),
			scores:    store.Scores(),
			weather:   store.Weather(),
			tacklebox: store.Tacklebox(),
		}, nil, nil
	}

	// Connect to MongoDB using the URI from the configuration
	client, err := db.Connect(ctx, cfg.Database.URI)
	if err != nil {
		return repositories{}, nil, err
	}
	dbName := cfg.Database.Name
	if dbName == "" {
		dbName = db.ExtractDBName(cfg.Database.URI, "gofish")
	}
	log.Printf("Connected to MongoDB, using database: %s", dbName)

	database := client.Database(dbName)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return repositories{}, nil, err
	}

	return repositories{
		users:     db.NewUserRepository(database),
		scores:    db.NewScoreRepository(database),
		weather:   db.NewWeatherRepository(database),
		tacklebox: db.NewTackleboxRepository(database),
	}, client, nil
}

// setupEvents routes game events through Redis when configured so websocket
// clients on every instance see them; otherwise straight to the local hub.
func setupEvents(ctx context.Context, cfg *config.Config, hub *websocket.Hub) (events.Publisher, *redis.Client, error) {
	if !cfg.RedisEnabled() {
		log.Println("Redis not configured, game events stay in-process")
		return events.HubPublisher{Hub: hub}, nil, nil
	}

	rdb, err := events.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Publishing game events to Redis stream %s", cfg.Redis.Stream)

	consumer := events.NewStreamConsumer(rdb, cfg.Redis.Stream, hub)
	go func() {
		if err := consumer.Run(ctx); err != nil {
			log.Printf("Event stream consumer stopped: %v", err)
		}
	}()
	return events.NewStreamPublisher(rdb, cfg.Redis.Stream), rdb, nil
}

func setupRouter(cfg *config.Config, h routes.Handlers) *gin.Engine {
	router := gin.Default()

	// Set trusted proxies (adjust as needed)
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(cfg.Server.AllowedOrigins) == 0 || cfg.Server.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	routes.Register(router, h)
	return router
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
