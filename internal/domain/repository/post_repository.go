package repository

import (
	"context"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
)

// PostRepository defines the persistence operations for posts.
// Keyword filters match case-insensitively as a substring of the title.
// DeleteCascade removes the post and every comment referencing it in a
// single transaction so no orphan comments survive.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, keyword string, limit, offset int) ([]entity.Post, error)
	Count(ctx context.Context, keyword string) (int, error)
	ListByCategory(ctx context.Context, category string) ([]entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	DeleteCascade(ctx context.Context, id string) error
}
