package api

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/blogcraft/blog-backend/internal/auth"
	"github.com/blogcraft/blog-backend/internal/models"
	"github.com/blogcraft/blog-backend/internal/store"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var setupRouterOnce sync.Once

// setupTestRouter creates a test Gin router in test mode.
func setupTestRouter() *gin.Engine {
	setupRouterOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})
	return gin.New()
}

// mockUserStore is an in-memory store.UserStore.
type mockUserStore struct {
	mu     sync.Mutex
	users  map[string]models.User
	nextID int32
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[string]models.User{}, nextID: 1}
}

func (m *mockUserStore) CreateUser(_ context.Context, arg store.CreateUserParams) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[arg.Username]; exists {
		return models.User{}, errors.New("duplicate username")
	}
	user := models.User{
		ID:        m.nextID,
		Username:  arg.Username,
		Password:  arg.Password,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.nextID++
	m.users[arg.Username] = user
	return user, nil
}

func (m *mockUserStore) GetUser(_ context.Context, id int32) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (m *mockUserStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

// mockPostStore is an in-memory store.PostStore. It resolves author
// usernames against the paired user store, like the SQL implementation's join.
type mockPostStore struct {
	mu     sync.Mutex
	posts  map[int64]models.Post
	nextID int64
	clock  time.Time
	users  *mockUserStore
}

func newMockPostStore(users *mockUserStore) *mockPostStore {
	return &mockPostStore{
		posts:  map[int64]models.Post{},
		nextID: 1,
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:  users,
	}
}

func (m *mockPostStore) CreatePost(ctx context.Context, arg store.CreatePostParams) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	username := ""
	for _, u := range m.users.users {
		if u.ID == arg.AuthorID {
			username = u.Username
		}
	}

	// Strictly increasing timestamps keep ordering assertions deterministic.
	m.clock = m.clock.Add(time.Minute)

	post := models.Post{
		ID:             m.nextID,
		Title:          arg.Title,
		Content:        arg.Content,
		DatePosted:     m.clock,
		AuthorID:       arg.AuthorID,
		AuthorUsername: username,
	}
	m.nextID++
	m.posts[post.ID] = post
	return post, nil
}

func (m *mockPostStore) GetPost(_ context.Context, id int64) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return models.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (m *mockPostStore) sortedLocked(filter func(models.Post) bool) []models.Post {
	all := []models.Post{}
	for _, p := range m.posts {
		if filter == nil || filter(p) {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].DatePosted.Equal(all[j].DatePosted) {
			return all[i].DatePosted.After(all[j].DatePosted)
		}
		return all[i].ID > all[j].ID
	})
	return all
}

func slicePage(all []models.Post, page int) []models.Post {
	offset := (page - 1) * store.PageSize
	if offset >= len(all) {
		return []models.Post{}
	}
	end := offset + store.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func (m *mockPostStore) ListPosts(_ context.Context, page int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slicePage(m.sortedLocked(nil), page), nil
}

func (m *mockPostStore) CountPosts(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.posts)), nil
}

func (m *mockPostStore) ListPostsByAuthor(_ context.Context, authorID int32, page int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	filtered := m.sortedLocked(func(p models.Post) bool { return p.AuthorID == authorID })
	return slicePage(filtered, page), nil
}

func (m *mockPostStore) CountPostsByAuthor(_ context.Context, authorID int32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (m *mockPostStore) UpdatePost(_ context.Context, arg store.UpdatePostParams) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[arg.ID]
	if !ok {
		return models.Post{}, store.ErrNotFound
	}
	post.Title = arg.Title
	post.Content = arg.Content
	m.posts[arg.ID] = post
	return post, nil
}

func (m *mockPostStore) DeletePost(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// okPinger always reports a healthy database.
type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

// downPinger always reports a broken database.
type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

// testEnv wires a full router with in-memory stores and pre-registered users.
type testEnv struct {
	router *gin.Engine
	users  *mockUserStore
	posts  *mockPostStore
	secret string
}

const testEnvSecret = "test-secret-key-with-sufficient-length"

func newTestEnv() *testEnv {
	users := newMockUserStore()
	posts := newMockPostStore(users)

	router := setupTestRouter()
	handler := NewHandler(posts, users, okPinger{}, testEnvSecret)
	handler.RegisterRoutes(router)

	return &testEnv{router: router, users: users, posts: posts, secret: testEnvSecret}
}

// addUser registers a user with a bcrypt-hashed password and returns it.
func (e *testEnv) addUser(username, password string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	user, err := e.users.CreateUser(context.Background(), store.CreateUserParams{
		Username: username,
		Password: string(hash),
	})
	if err != nil {
		panic(err)
	}
	return user
}

// tokenFor issues a valid JWT for the given user.
func (e *testEnv) tokenFor(user models.User) string {
	token, err := auth.GenerateToken(user.ID, user.Username, e.secret)
	if err != nil {
		panic(err)
	}
	return token
}
