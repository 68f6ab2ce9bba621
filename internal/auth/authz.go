package auth

import "github.com/blogcraft/blog-backend/internal/models"

// CanModifyPost reports whether the given user may update or delete the post.
// Only the post's author may mutate it.
func CanModifyPost(userID int32, post models.Post) bool {
	return userID == post.AuthorID
}
