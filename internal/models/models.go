// Package models holds the persisted entities shared by the store and API layers.
package models

import "time"

// Post is a published blog post. The author is fixed at creation time and
// never reassigned; DatePosted is set by the database at insert.
type Post struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	DatePosted     time.Time `json:"date_posted"`
	AuthorID       int32     `json:"author_id"`
	AuthorUsername string    `json:"author"`
}

// User is an account able to authenticate and author posts.
// Password holds the bcrypt hash, never plaintext.
type User struct {
	ID        int32     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
