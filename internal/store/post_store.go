package store

import (
	"context"
	"fmt"

	"github.com/blogcraft/blog-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

// CreatePostParams holds the fields settable at post creation. The author
// comes from the authenticated request, never from client input.
type CreatePostParams struct {
	Title    string
	Content  string
	AuthorID int32
}

// UpdatePostParams holds the mutable fields of an existing post.
// AuthorID and DatePosted are intentionally absent.
type UpdatePostParams struct {
	ID      int64
	Title   string
	Content string
}

// PostStore defines post persistence. List results are ordered by
// date_posted descending and sliced into PageSize pages (page is 1-based).
type PostStore interface {
	CreatePost(ctx context.Context, arg CreatePostParams) (models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	ListPosts(ctx context.Context, page int) ([]models.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	ListPostsByAuthor(ctx context.Context, authorID int32, page int) ([]models.Post, error)
	CountPostsByAuthor(ctx context.Context, authorID int32) (int64, error)
	UpdatePost(ctx context.Context, arg UpdatePostParams) (models.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// SQLPostStore is the pgx implementation of PostStore.
type SQLPostStore struct {
	db DBTX
}

// NewPostStore creates a PostStore backed by the given connection pool.
func NewPostStore(db DBTX) PostStore {
	return &SQLPostStore{db: db}
}

const postColumns = `p.id, p.title, p.content, p.date_posted, p.author_id, u.username`

func scanPost(row pgx.Row) (models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.DatePosted, &post.AuthorID, &post.AuthorUsername)
	return post, err
}

func (s *SQLPostStore) CreatePost(ctx context.Context, arg CreatePostParams) (models.Post, error) {
	query := `
		WITH inserted AS (
			INSERT INTO posts (title, content, author_id)
			VALUES ($1, $2, $3)
			RETURNING id, title, content, date_posted, author_id
		)
		SELECT ` + postColumns + `
		FROM inserted p
		JOIN users u ON u.id = p.author_id
	`

	post, err := scanPost(s.db.QueryRow(ctx, query, arg.Title, arg.Content, arg.AuthorID))
	if err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *SQLPostStore) GetPost(ctx context.Context, id int64) (models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`

	post, err := scanPost(s.db.QueryRow(ctx, query, id))
	if err != nil {
		return models.Post{}, mapNoRows(err)
	}
	return post, nil
}

func (s *SQLPostStore) ListPosts(ctx context.Context, page int) ([]models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.date_posted DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.Query(ctx, query, PageSize, pageOffset(page))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (s *SQLPostStore) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

func (s *SQLPostStore) ListPostsByAuthor(ctx context.Context, authorID int32, page int) ([]models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.date_posted DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.Query(ctx, query, authorID, PageSize, pageOffset(page))
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (s *SQLPostStore) CountPostsByAuthor(ctx context.Context, authorID int32) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts by author: %w", err)
	}
	return count, nil
}

func (s *SQLPostStore) UpdatePost(ctx context.Context, arg UpdatePostParams) (models.Post, error) {
	// author_id and date_posted are never touched here.
	query := `
		WITH updated AS (
			UPDATE posts
			SET title = $2, content = $3
			WHERE id = $1
			RETURNING id, title, content, date_posted, author_id
		)
		SELECT ` + postColumns + `
		FROM updated p
		JOIN users u ON u.id = p.author_id
	`

	post, err := scanPost(s.db.QueryRow(ctx, query, arg.ID, arg.Title, arg.Content))
	if err != nil {
		return models.Post{}, mapNoRows(err)
	}
	return post, nil
}

func (s *SQLPostStore) DeletePost(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func pageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

func collectPosts(rows pgx.Rows) ([]models.Post, error) {
	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}
