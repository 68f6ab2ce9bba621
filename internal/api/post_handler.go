package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blogcraft/blog-backend/internal/auth"
	"github.com/blogcraft/blog-backend/internal/middleware"
	"github.com/blogcraft/blog-backend/internal/models"
	"github.com/blogcraft/blog-backend/internal/store"
	"github.com/gin-gonic/gin"
)

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type updatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// postListResponse is a single page of posts, newest first.
type postListResponse struct {
	Posts      []models.Post `json:"posts"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalPages int           `json:"total_pages"`
	HasNext    bool          `json:"has_next"`
	HasPrev    bool          `json:"has_prev"`
}

func newPostListResponse(posts []models.Post, page int, count int64) postListResponse {
	totalPages := store.TotalPages(count)
	return postListResponse{
		Posts:      posts,
		Page:       page,
		PerPage:    store.PageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ListPosts serves the home page feed: all posts, date_posted descending,
// five per page.
func (h *Handler) ListPosts(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), page)
	if err != nil {
		h.serverError(c, "list posts failed", err)
		return
	}

	count, err := h.posts.CountPosts(c.Request.Context())
	if err != nil {
		h.serverError(c, "count posts failed", err)
		return
	}

	c.JSON(http.StatusOK, newPostListResponse(posts, page, count))
}

// ListUserPosts serves one author's posts. Unknown usernames are a 404.
func (h *Handler) ListUserPosts(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		h.serverError(c, "lookup user failed", err)
		return
	}

	posts, err := h.posts.ListPostsByAuthor(c.Request.Context(), user.ID, page)
	if err != nil {
		h.serverError(c, "list user posts failed", err)
		return
	}

	count, err := h.posts.CountPostsByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		h.serverError(c, "count user posts failed", err)
		return
	}

	c.JSON(http.StatusOK, newPostListResponse(posts, page, count))
}

// GetPost serves a single post by id.
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		h.serverError(c, "get post failed", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost persists a new post attributed to the authenticated requester.
// Any author value in the payload is ignored; authorship comes from the
// token alone.
func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Title and content are required")
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), store.CreatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: userID,
	})
	if err != nil {
		h.serverError(c, "create post failed", err)
		return
	}

	c.Header("Location", PostDetailPath(post.ID))
	c.JSON(http.StatusCreated, post)
}

// UpdatePost mutates an existing post's title and content. Only the author
// may update; author and date_posted never change.
func (h *Handler) UpdatePost(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	id, ok := postIDParam(c)
	if !ok {
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Title and content are required")
		return
	}

	// Missing post is a 404 before ownership is considered.
	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		h.serverError(c, "get post failed", err)
		return
	}

	if !auth.CanModifyPost(userID, post) {
		middleware.Logger(c).Warn("post update refused", "post_id", id, "user_id", userID)
		respondError(c, http.StatusForbidden, "Only the author may modify this post")
		return
	}

	updated, err := h.posts.UpdatePost(c.Request.Context(), store.UpdatePostParams{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		h.serverError(c, "update post failed", err)
		return
	}

	c.Header("Location", PostDetailPath(updated.ID))
	c.JSON(http.StatusOK, updated)
}

// DeletePost removes a post permanently. Only the author may delete.
func (h *Handler) DeletePost(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	id, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		h.serverError(c, "get post failed", err)
		return
	}

	if !auth.CanModifyPost(userID, post) {
		middleware.Logger(c).Warn("post delete refused", "post_id", id, "user_id", userID)
		respondError(c, http.StatusForbidden, "Only the author may delete this post")
		return
	}

	if err := h.posts.DeletePost(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		h.serverError(c, "delete post failed", err)
		return
	}

	c.Header("Location", HomePath())
	c.Status(http.StatusNoContent)
}

func postIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondError(c, http.StatusBadRequest, "Invalid post ID")
		return 0, false
	}
	return id, true
}

func pageParam(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		respondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, false
	}
	return page, true
}

// requesterID pulls the authenticated user id set by the auth middleware.
// A missing id means the route was wired without AuthRequired.
func requesterID(c *gin.Context) (int32, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return 0, false
	}
	id, ok := v.(int32)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Code: code, Message: message})
}

func (h *Handler) serverError(c *gin.Context, msg string, err error) {
	middleware.Logger(c).Error(msg, "error", err)
	respondError(c, http.StatusInternalServerError, "Internal server error")
}
