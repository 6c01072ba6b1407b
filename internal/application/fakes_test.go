package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

// In-memory repositories mirroring the Postgres implementations closely
// enough to exercise the services: same sentinel errors, same keyword and
// ordering semantics, same post-existence check on comment creation.

type fakeStore struct {
	mu       sync.Mutex
	users    []entity.User
	posts    []entity.Post
	comments []entity.Comment
	clock    time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// tick returns a strictly increasing timestamp so creation order is stable.
func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = r.store.tick()
	u.UpdatedAt = u.CreatedAt
	r.store.users = append(r.store.users, *u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].ID == id {
			u := r.store.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].Email == email {
			u := r.store.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].ID == u.ID {
			u.UpdatedAt = r.store.tick()
			r.store.users[i] = *u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].ID == id {
			r.store.users[i].Password = hash
			r.store.users[i].UpdatedAt = r.store.tick()
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakePostRepo struct{ store *fakeStore }

func (r *fakePostRepo) Create(_ context.Context, p *entity.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = r.store.tick()
	p.UpdatedAt = p.CreatedAt
	r.store.posts = append(r.store.posts, *p)
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.posts {
		if r.store.posts[i].ID == id {
			p := r.store.posts[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePostRepo) matching(keyword string) []entity.Post {
	out := make([]entity.Post, 0)
	for _, p := range r.store.posts {
		if keyword == "" || containsFold(p.Title, keyword) {
			out = append(out, p)
		}
	}
	return out
}

func (r *fakePostRepo) List(_ context.Context, keyword string, limit, offset int) ([]entity.Post, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m := r.matching(keyword)
	if offset >= len(m) {
		return []entity.Post{}, nil
	}
	end := offset + limit
	if end > len(m) {
		end = len(m)
	}
	return m[offset:end], nil
}

func (r *fakePostRepo) Count(_ context.Context, keyword string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.matching(keyword)), nil
}

func (r *fakePostRepo) ListByCategory(_ context.Context, category string) ([]entity.Post, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entity.Post, 0)
	for _, p := range r.store.posts {
		if p.Category == category {
			for i := range r.store.users {
				if r.store.users[i].ID == p.AuthorID {
					u := r.store.users[i]
					p.Author = &u
				}
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) Update(_ context.Context, p *entity.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.posts {
		if r.store.posts[i].ID == p.ID {
			p.UpdatedAt = r.store.tick()
			r.store.posts[i] = *p
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakePostRepo) DeleteCascade(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	idx := -1
	for i := range r.store.posts {
		if r.store.posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return repository.ErrNotFound
	}
	kept := r.store.comments[:0]
	for _, c := range r.store.comments {
		if c.PostID != id {
			kept = append(kept, c)
		}
	}
	r.store.comments = kept
	r.store.posts = append(r.store.posts[:idx], r.store.posts[idx+1:]...)
	return nil
}

type fakeCommentRepo struct{ store *fakeStore }

func (r *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	found := false
	for i := range r.store.posts {
		if r.store.posts[i].ID == c.PostID {
			found = true
			break
		}
	}
	if !found {
		return repository.ErrNotFound
	}
	c.ID = uuid.NewString()
	c.CreatedAt = r.store.tick()
	c.UpdatedAt = c.CreatedAt
	r.store.comments = append(r.store.comments, *c)
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.comments {
		if r.store.comments[i].ID == id {
			c := r.store.comments[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCommentRepo) matching(keyword string) []entity.Comment {
	out := make([]entity.Comment, 0)
	for _, c := range r.store.comments {
		if keyword == "" || containsFold(c.Text, keyword) {
			out = append(out, c)
		}
	}
	return out
}

func (r *fakeCommentRepo) List(_ context.Context, keyword string, limit, offset int) ([]entity.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m := r.matching(keyword)
	if offset >= len(m) {
		return []entity.Comment{}, nil
	}
	end := offset + limit
	if end > len(m) {
		end = len(m)
	}
	return m[offset:end], nil
}

func (r *fakeCommentRepo) Count(_ context.Context, keyword string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.matching(keyword)), nil
}

func (r *fakeCommentRepo) ListByPost(_ context.Context, postID string) ([]entity.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entity.Comment, 0)
	for _, c := range r.store.comments {
		if c.PostID == postID {
			for i := range r.store.users {
				if r.store.users[i].ID == c.AuthorID {
					u := r.store.users[i]
					c.Author = &u
				}
			}
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *entity.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.comments {
		if r.store.comments[i].ID == c.ID {
			c.UpdatedAt = r.store.tick()
			r.store.comments[i] = *c
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.comments {
		if r.store.comments[i].ID == id {
			r.store.comments = append(r.store.comments[:i], r.store.comments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var (
	_ repository.UserRepository    = (*fakeUserRepo)(nil)
	_ repository.PostRepository    = (*fakePostRepo)(nil)
	_ repository.CommentRepository = (*fakeCommentRepo)(nil)
)

// newFixture builds the three services over one shared fake store.
func newFixture() (*AuthService, *PostService, *CommentService, *fakeStore) {
	store := newFakeStore()
	users := &fakeUserRepo{store: store}
	posts := &fakePostRepo{store: store}
	comments := &fakeCommentRepo{store: store}

	auth := NewAuthService(users, nil, nil, nil, nil, nil, "", "http://localhost/reset-password", false)
	postSvc := NewPostService(posts, comments, nil, nil, "")
	commentSvc := NewCommentService(comments, nil)
	return auth, postSvc, commentSvc, store
}
