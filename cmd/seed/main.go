package main

import (
	"context"
	"flag"
	"log"
	"time"

	"gofish/config"
	"gofish/db"
	"gofish/services"
	"gofish/utils"
)

func main() {
	configPath := flag.String("config", "config/config.prod.yml", "Path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.Driver != config.DriverMongo {
		log.Fatalf("Seeding needs the %s driver, config uses %s", config.DriverMongo, cfg.Database.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := db.Connect(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	dbName := cfg.Database.Name
	if dbName == "" {
		dbName = db.ExtractDBName(cfg.Database.URI, "gofish")
	}
	database := client.Database(dbName)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	users := db.NewUserRepository(database)
	n, err := utils.PopulateDemoAnglers(ctx,
		services.NewUserService(users, nil),
		services.NewScoreService(db.NewScoreRepository(database), users, nil),
		services.NewTackleboxService(db.NewTackleboxRepository(database), nil),
	)
	if err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}
	log.Printf("Seeded %d demo anglers into %s", n, dbName)
}
