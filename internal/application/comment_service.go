package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-blog-api/internal/domain/repository"
)

// CommentService owns the CRUD and ownership rules for comments. Both
// update and delete are author-only; delete matching update closes the
// asymmetry the old API had.
type CommentService struct {
	Repo   repo.CommentRepository
	Logger *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Repo: comments, Logger: logger}
}

// List returns a page of comments, optionally filtered by a
// case-insensitive keyword match on the text.
func (s *CommentService) List(ctx context.Context, keyword string, page, pageSize int) (PageResult[entity.Comment], error) {
	p, size, offset := clampPaging(page, pageSize)

	count, err := s.Repo.Count(ctx, keyword)
	if err != nil {
		return PageResult[entity.Comment]{}, err
	}
	items, err := s.Repo.List(ctx, keyword, size, offset)
	if err != nil {
		return PageResult[entity.Comment]{}, err
	}
	return PageResult[entity.Comment]{Items: items, Page: p, Pages: totalPages(count, size)}, nil
}

// ListByPost returns the post's comments in creation order. A post with no
// comments yields an empty list, not an error.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]entity.Comment, error) {
	return s.Repo.ListByPost(ctx, postID)
}

func (s *CommentService) Get(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return c, nil
}

// Create persists a new comment authored by the acting identity. The
// repository verifies the post exists in the same transaction as the
// insert, so ErrNotFound here means the post is gone.
func (s *CommentService) Create(ctx context.Context, identity entity.Identity, postID, text string) (*entity.Comment, error) {
	c := &entity.Comment{
		Text:     text,
		AuthorID: identity.ID,
		PostID:   postID,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, mapRepoErr(err)
	}
	return c, nil
}

// Update replaces the comment text. Only the author may do this; an empty
// text keeps the existing one.
func (s *CommentService) Update(ctx context.Context, identity entity.Identity, id, text string) (*entity.Comment, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if c.AuthorID != identity.ID {
		return nil, ErrForbidden
	}
	if text != "" {
		c.Text = text
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, mapRepoErr(err)
	}
	return c, nil
}

// Delete removes the comment. Author-only, same rule as Update.
func (s *CommentService) Delete(ctx context.Context, identity entity.Identity, id string) error {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return mapRepoErr(err)
	}
	if c.AuthorID != identity.ID {
		return ErrForbidden
	}
	return mapRepoErr(s.Repo.Delete(ctx, id))
}
