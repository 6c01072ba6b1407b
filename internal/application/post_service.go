package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-blog-api/internal/domain/repository"
)

// PostService owns the CRUD and authorization rules for posts. Search
// indexing is best-effort: Postgres stays the source of truth and an
// Elasticsearch hiccup never fails the request.
type PostService struct {
	Repo         repo.PostRepository
	Comments     repo.CommentRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESPostsIndex string
}

func NewPostService(posts repo.PostRepository, comments repo.CommentRepository, logger *logrus.Logger, es *elasticsearch.Client, esPostsIndex string) *PostService {
	return &PostService{Repo: posts, Comments: comments, Logger: logger, ES: es, ESPostsIndex: esPostsIndex}
}

// List returns a page of posts, optionally filtered by a case-insensitive
// keyword match on the title.
func (s *PostService) List(ctx context.Context, keyword string, page, pageSize int) (PageResult[entity.Post], error) {
	p, size, offset := clampPaging(page, pageSize)

	count, err := s.Repo.Count(ctx, keyword)
	if err != nil {
		return PageResult[entity.Post]{}, err
	}
	items, err := s.Repo.List(ctx, keyword, size, offset)
	if err != nil {
		return PageResult[entity.Post]{}, err
	}
	return PageResult[entity.Post]{Items: items, Page: p, Pages: totalPages(count, size)}, nil
}

// ListByCategory normalizes the requested category the same way Create
// does and returns all matching posts with author and comments (each with
// its author) expanded. An empty result is a valid empty list, not an
// error; the same policy applies to every filtered listing.
func (s *PostService) ListByCategory(ctx context.Context, category string) ([]entity.Post, error) {
	normalized := entity.NormalizeCategory(category)
	posts, err := s.Repo.ListByCategory(ctx, normalized)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		comments, err := s.Comments.ListByPost(ctx, posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Comments = comments
	}
	return posts, nil
}

// Get fetches a post by id with its comments expanded.
func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	comments, err := s.Comments.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Comments = comments
	return p, nil
}

// Create persists a new post authored by the acting identity. The category
// is stored normalized so category lookups are exact matches.
func (s *PostService) Create(ctx context.Context, identity entity.Identity, title, category, content string) (*entity.Post, error) {
	p := &entity.Post{
		Title:    title,
		Category: entity.NormalizeCategory(category),
		Content:  content,
		AuthorID: identity.ID,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Comments = []entity.Comment{}
	s.indexPost(ctx, p)
	return p, nil
}

// UpdatePostInput carries the replace-if-present fields for a post update.
// Empty strings leave the stored value unchanged.
type UpdatePostInput struct {
	Title    string
	Category string
	Content  string
}

// Update applies a partial update: only non-empty fields replace stored
// values, never a deep merge.
func (s *PostService) Update(ctx context.Context, id string, in UpdatePostInput) (*entity.Post, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if in.Title != "" {
		p.Title = in.Title
	}
	if in.Category != "" {
		p.Category = entity.NormalizeCategory(in.Category)
	}
	if in.Content != "" {
		p.Content = in.Content
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, mapRepoErr(err)
	}
	s.indexPost(ctx, p)
	return p, nil
}

// Delete removes the post together with every comment referencing it.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteCascade(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	s.deleteIndex(ctx, id)
	return nil
}

func (s *PostService) indexPost(ctx context.Context, p *entity.Post) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         p.ID,
		"title":      p.Title,
		"category":   p.Category,
		"content":    p.Content,
		"author_id":  p.AuthorID,
		"created_at": p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESPostsIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("post_id", p.ID).Warn("es index response error")
	}
}

func (s *PostService) deleteIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESPostsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match full-text query over title, content and
// category in Elasticsearch.
func (s *PostService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "content", "category"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESPostsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
