package api

import "fmt"

// Route patterns, mirroring the public URL scheme of the blog. Handlers
// build redirect targets through the path helpers below instead of
// hardcoding paths.
const (
	HomePattern       = "/"
	AboutPattern      = "/about"
	UserPostsPattern  = "/user/:username"
	PostDetailPattern = "/post/:id"
	PostCreatePattern = "/post/new"
	PostUpdatePattern = "/post/:id/update"
	PostDeletePattern = "/post/:id/delete"
	HealthzPattern    = "/healthz"
)

// HomePath is the reverse lookup for the root post list.
func HomePath() string {
	return HomePattern
}

// PostDetailPath is the reverse lookup for a post's detail view.
func PostDetailPath(id int64) string {
	return fmt.Sprintf("/post/%d", id)
}

// UserPostsPath is the reverse lookup for an author's post list.
func UserPostsPath(username string) string {
	return "/user/" + username
}
