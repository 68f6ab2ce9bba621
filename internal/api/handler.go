package api

import (
	"context"

	"github.com/blogcraft/blog-backend/internal/middleware"
	"github.com/blogcraft/blog-backend/internal/store"
	"github.com/gin-gonic/gin"
)

// Pinger covers the health-check dependency on the connection pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the blog's public and authenticated routes.
type Handler struct {
	posts     store.PostStore
	users     store.UserStore
	db        Pinger
	jwtSecret string
}

func NewHandler(posts store.PostStore, users store.UserStore, db Pinger, jwtSecret string) *Handler {
	return &Handler{
		posts:     posts,
		users:     users,
		db:        db,
		jwtSecret: jwtSecret,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET(HomePattern, h.ListPosts)
	router.GET(UserPostsPattern, h.ListUserPosts)
	router.GET(PostDetailPattern, h.GetPost)
	router.GET(AboutPattern, h.About)
	router.GET(HealthzPattern, h.Healthz)

	authRequired := middleware.AuthRequired(h.jwtSecret)
	router.POST(PostCreatePattern, authRequired, h.CreatePost)
	router.PUT(PostUpdatePattern, authRequired, h.UpdatePost)
	router.DELETE(PostDeletePattern, authRequired, h.DeletePost)
}
