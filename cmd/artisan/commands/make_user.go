package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/blogcraft/blog-backend/internal/store"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// MakeUser interactively creates a user account.
func MakeUser(ctx context.Context, userStore store.UserStore) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)

	if username == "" {
		return errors.New("username cannot be empty")
	}
	if len(username) < 3 {
		return errors.New("username must be at least 3 characters")
	}

	_, err = userStore.GetUserByUsername(ctx, username)
	if err == nil {
		return fmt.Errorf("username '%s' already exists", username)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	fmt.Print("Enter password: ")
	passwordBytes, err := term.ReadPassword(syscall.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	password := string(passwordBytes)

	if password == "" {
		return errors.New("password cannot be empty")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	fmt.Print("Confirm password: ")
	confirmPasswordBytes, err := term.ReadPassword(syscall.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	fmt.Println()

	if password != string(confirmPasswordBytes) {
		return errors.New("passwords do not match")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := userStore.CreateUser(ctx, store.CreateUserParams{
		Username: username,
		Password: string(hashedPassword),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Println("\nUser created successfully!")
	fmt.Printf("   ID: %d\n", user.ID)
	fmt.Printf("   Username: %s\n", user.Username)
	fmt.Printf("   Created at: %v\n", user.CreatedAt)

	return nil
}
