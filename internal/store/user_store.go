package store

import (
	"context"
	"fmt"

	"github.com/blogcraft/blog-backend/internal/models"
)

// CreateUserParams holds the fields needed to register a user.
// Password must already be bcrypt-hashed by the caller.
type CreateUserParams struct {
	Username string
	Password string
}

// UserStore defines user persistence. Login and the user-scoped post list
// both resolve accounts by exact username match.
type UserStore interface {
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)
	GetUser(ctx context.Context, id int32) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// SQLUserStore is the pgx implementation of UserStore.
type SQLUserStore struct {
	db DBTX
}

// NewUserStore creates a UserStore backed by the given connection pool.
func NewUserStore(db DBTX) UserStore {
	return &SQLUserStore{db: db}
}

const userColumns = `id, username, password, created_at, updated_at`

func (s *SQLUserStore) CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error) {
	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING ` + userColumns + `
	`

	var user models.User
	err := s.db.QueryRow(ctx, query, arg.Username, arg.Password).
		Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *SQLUserStore) GetUser(ctx context.Context, id int32) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.User
	err := s.db.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return models.User{}, mapNoRows(err)
	}
	return user, nil
}

func (s *SQLUserStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	var user models.User
	err := s.db.QueryRow(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return models.User{}, mapNoRows(err)
	}
	return user, nil
}
