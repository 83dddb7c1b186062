// Command migrate creates the schema without starting the API, and with
// -reset drops the task manager tables first.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"task-manager-api/infrastructure/postgres"
	"task-manager-api/pkg/config"
)

func main() {
	reset := flag.Bool("reset", false, "drop tasks and users before migrating")
	flag.Parse()

	if err := run(*reset); err != nil {
		log.Fatal(err)
	}
}

func run(reset bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		DBName:         cfg.Database.DBName,
		SSLMode:        cfg.Database.SSLMode,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		LogLevel:       cfg.Log.Level,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout+time.Second)
	defer cancel()
	if err := postgres.Ping(ctx, db); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	fmt.Println("Connected to database")

	if reset {
		// tasks first, it references users
		for _, table := range []string{"tasks", "users"} {
			if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to drop %s: %w", table, err)
			}
			fmt.Printf("Dropped table: %s\n", table)
		}
	}

	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Println("Schema is up to date")
	return nil
}
