package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// aboutPage is the fixed informational payload for /about.
var aboutPage = gin.H{
	"title":       "About",
	"description": "A small blog where authors publish, edit, and curate their own posts.",
}

// About renders the static informational page. No data dependency, no auth.
func (h *Handler) About(c *gin.Context) {
	c.JSON(http.StatusOK, aboutPage)
}

// Healthz reports whether the database connection is usable.
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Database connection is down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
