package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

// memPostRepo / memCommentRepo are just enough storage to drive the
// handlers through the real service layer.

type memPostRepo struct {
	posts    []entity.Post
	comments *memCommentRepo
}

func (r *memPostRepo) Create(_ context.Context, p *entity.Post) error {
	p.ID = uuid.NewString()
	r.posts = append(r.posts, *p)
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	for i := range r.posts {
		if r.posts[i].ID == id {
			p := r.posts[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memPostRepo) List(_ context.Context, keyword string, limit, offset int) ([]entity.Post, error) {
	m := r.filtered(keyword)
	if offset >= len(m) {
		return []entity.Post{}, nil
	}
	end := offset + limit
	if end > len(m) {
		end = len(m)
	}
	return m[offset:end], nil
}

func (r *memPostRepo) Count(_ context.Context, keyword string) (int, error) {
	return len(r.filtered(keyword)), nil
}

func (r *memPostRepo) filtered(keyword string) []entity.Post {
	out := make([]entity.Post, 0)
	for _, p := range r.posts {
		if keyword == "" || strings.Contains(strings.ToLower(p.Title), strings.ToLower(keyword)) {
			out = append(out, p)
		}
	}
	return out
}

func (r *memPostRepo) ListByCategory(_ context.Context, category string) ([]entity.Post, error) {
	out := make([]entity.Post, 0)
	for _, p := range r.posts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPostRepo) Update(_ context.Context, p *entity.Post) error {
	for i := range r.posts {
		if r.posts[i].ID == p.ID {
			r.posts[i] = *p
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memPostRepo) DeleteCascade(_ context.Context, id string) error {
	for i := range r.posts {
		if r.posts[i].ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			kept := r.comments.comments[:0]
			for _, c := range r.comments.comments {
				if c.PostID != id {
					kept = append(kept, c)
				}
			}
			r.comments.comments = kept
			return nil
		}
	}
	return repository.ErrNotFound
}

type memCommentRepo struct {
	comments []entity.Comment
	posts    *memPostRepo
}

func (r *memCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	if _, err := r.posts.GetByID(context.Background(), c.PostID); err != nil {
		return repository.ErrNotFound
	}
	c.ID = uuid.NewString()
	r.comments = append(r.comments, *c)
	return nil
}

func (r *memCommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	for i := range r.comments {
		if r.comments[i].ID == id {
			c := r.comments[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memCommentRepo) List(_ context.Context, _ string, limit, offset int) ([]entity.Comment, error) {
	if offset >= len(r.comments) {
		return []entity.Comment{}, nil
	}
	end := offset + limit
	if end > len(r.comments) {
		end = len(r.comments)
	}
	return r.comments[offset:end], nil
}

func (r *memCommentRepo) Count(_ context.Context, _ string) (int, error) {
	return len(r.comments), nil
}

func (r *memCommentRepo) ListByPost(_ context.Context, postID string) ([]entity.Comment, error) {
	out := make([]entity.Comment, 0)
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCommentRepo) Update(_ context.Context, c *entity.Comment) error {
	for i := range r.comments {
		if r.comments[i].ID == c.ID {
			r.comments[i] = *c
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memCommentRepo) Delete(_ context.Context, id string) error {
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var (
	_ repository.PostRepository    = (*memPostRepo)(nil)
	_ repository.CommentRepository = (*memCommentRepo)(nil)
)

const testUserID = "11111111-1111-1111-1111-111111111111"

// asUser mimics what the auth middleware sets after a valid session.
func asUser(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", testUserID)
		c.Set("userName", "Tester")
		c.Set("userEmail", "tester@example.com")
		c.Set("userRole", role)
		c.Next()
	}
}

func newPostRouter(t *testing.T) (*gin.Engine, *memPostRepo, *memCommentRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	posts := &memPostRepo{}
	comments := &memCommentRepo{posts: posts}
	posts.comments = comments

	svc := application.NewPostService(posts, comments, nil, nil, "")
	h := NewPostHandler(svc, nil)

	r := gin.New()
	r.Use(asUser(entity.RolePublisher))
	r.GET("/posts", h.List)
	r.GET("/posts/category/:category", h.ListByCategory)
	r.GET("/posts/:id", h.Get)
	r.POST("/posts", h.Create)
	r.PUT("/posts/:id", h.Update)
	r.DELETE("/posts/:id", h.Delete)
	return r, posts, comments
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestPostHandlerCreate(t *testing.T) {
	r, _, _ := newPostRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/posts", `{"title":"Hello","category":" Tech News ","content":"body"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var view PostView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "Hello", view.Title)
	assert.Equal(t, "technews", view.Category)
	assert.Equal(t, testUserID, view.AuthorID)
	assert.NotNil(t, view.Comments)

	// The envelope never carries a password field anywhere.
	assert.NotContains(t, w.Body.String(), "password")
}

func TestPostHandlerCreateValidation(t *testing.T) {
	r, _, _ := newPostRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/posts", `{"category":"tech"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid payload", env.Message)
}

func TestPostHandlerGetNotFound(t *testing.T) {
	r, _, _ := newPostRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/posts/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestPostHandlerListMeta(t *testing.T) {
	r, _, _ := newPostRouter(t)

	for i := 0; i < 12; i++ {
		w, _ := doJSON(t, r, http.MethodPost, "/posts", `{"title":"t","category":"c","content":"b"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := doJSON(t, r, http.MethodGet, "/posts?page=1&page_size=10", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.EqualValues(t, 1, env.Meta["page"])
	assert.EqualValues(t, 2, env.Meta["pages"])
}

func TestPostHandlerListByCategoryEmpty(t *testing.T) {
	r, _, _ := newPostRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/posts/category/nothing-here", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var views []PostView
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &views))
	}
	assert.Empty(t, views)
}

func TestPostHandlerDeleteCascade(t *testing.T) {
	r, _, comments := newPostRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/posts", `{"title":"t","category":"c","content":"b"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var view PostView
	require.NoError(t, json.Unmarshal(env.Data, &view))

	require.NoError(t, comments.Create(context.Background(), &entity.Comment{Text: "x", PostID: view.ID, AuthorID: testUserID}))

	w, _ = doJSON(t, r, http.MethodDelete, "/posts/"+view.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, comments.comments)

	w, _ = doJSON(t, r, http.MethodDelete, "/posts/"+view.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
