package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/blogcraft/blog-backend/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// TestUser represents a test user to be seeded into the database.
type TestUser struct {
	Username string
	Password string
}

// SamplePost is a development post attributed to one of the test users.
type SamplePost struct {
	Author  string
	Title   string
	Content string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	testUsers := []TestUser{
		{Username: "lawrence", Password: "lawrence-dev"},
		{Username: "marie", Password: "marie-dev"},
		{Username: "test", Password: "test"},
	}

	samplePosts := []SamplePost{
		{Author: "lawrence", Title: "Blog Post 1", Content: "First post content"},
		{Author: "marie", Title: "Blog Post 2", Content: "Second post content"},
	}

	// Seeding only needs the database; skip full config validation.
	_ = godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.RunMigrations(ctx, dbURL); err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, dbURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	fmt.Println("Seeding database...")

	for _, user := range testUsers {
		if err := seedUser(ctx, pool, user); err != nil {
			fmt.Printf("ERROR: user %s: %v\n", user.Username, err)
		} else {
			fmt.Printf("SUCCESS: user %s\n", user.Username)
		}
	}

	for _, post := range samplePosts {
		if err := seedPost(ctx, pool, post); err != nil {
			fmt.Printf("ERROR: post %q: %v\n", post.Title, err)
		} else {
			fmt.Printf("SUCCESS: post %q\n", post.Title)
		}
	}

	fmt.Println("Seed completed")
	return nil
}

func seedUser(ctx context.Context, pool *pgxpool.Pool, user TestUser) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash generation failed: %w", err)
	}

	query := `
		INSERT INTO users (username, password, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (username) DO UPDATE
			SET password = EXCLUDED.password,
			    updated_at = NOW()
	`

	_, err = pool.Exec(ctx, query, user.Username, string(hash))
	if err != nil {
		return fmt.Errorf("database insert failed: %w", err)
	}

	return nil
}

func seedPost(ctx context.Context, pool *pgxpool.Pool, post SamplePost) error {
	// Re-running the seed must not duplicate sample posts.
	query := `
		INSERT INTO posts (title, content, author_id)
		SELECT $1, $2, u.id
		FROM users u
		WHERE u.username = $3
		  AND NOT EXISTS (
			SELECT 1 FROM posts p WHERE p.title = $1 AND p.author_id = u.id
		  )
	`

	_, err := pool.Exec(ctx, query, post.Title, post.Content, post.Author)
	if err != nil {
		return fmt.Errorf("database insert failed: %w", err)
	}

	return nil
}
