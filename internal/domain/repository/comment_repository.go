package repository

import (
	"context"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
)

// CommentRepository defines the persistence operations for comments.
// Create verifies the referenced post exists inside the same transaction
// as the insert and returns ErrNotFound when it does not; a comment can
// therefore never be persisted without its post.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	List(ctx context.Context, keyword string, limit, offset int) ([]entity.Comment, error)
	Count(ctx context.Context, keyword string) (int, error)
	ListByPost(ctx context.Context, postID string) ([]entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, id string) error
}
