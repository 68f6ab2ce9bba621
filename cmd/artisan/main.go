package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/blogcraft/blog-backend/cmd/artisan/commands"
	"github.com/blogcraft/blog-backend/internal/store"
	"github.com/blogcraft/blog-backend/pkg/database"
	"github.com/joho/godotenv"
)

func run() error {
	if len(os.Args) < 2 {
		printHelp()
		return nil
	}

	// User management only needs the database; skip full config validation.
	_ = godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, dbURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	userStore := store.NewUserStore(pool)

	command := os.Args[1]

	switch command {
	case "make:user":
		return commands.MakeUser(ctx, userStore)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printHelp()
		return nil
	}
}

func printHelp() {
	fmt.Println("Usage: go run cmd/artisan/main.go [command]")
	fmt.Println("Available commands:")
	fmt.Println("  make:user    Create a new user")
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
