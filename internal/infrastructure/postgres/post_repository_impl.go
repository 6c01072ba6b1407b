package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `p.id, p.title, p.category, p.content, p.author_id, p.created_at, p.updated_at`

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	if err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Content, &p.AuthorID,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, category, content, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Category, p.Content, p.AuthorID)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+postColumns+`,
		       u.id, u.name, u.email, u.role, u.avatar_url
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`, id)

	p := &entity.Post{}
	author := &entity.User{}
	if err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Content, &p.AuthorID,
		&p.CreatedAt, &p.UpdatedAt,
		&author.ID, &author.Name, &author.Email, &author.Role, &author.AvatarURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	p.Author = author
	return p, nil
}

func (r *PostRepository) List(ctx context.Context, keyword string, limit, offset int) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		WHERE ($1 = '' OR p.title ILIKE '%' || $1 || '%')
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, keyword, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]entity.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Count(ctx context.Context, keyword string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM posts p
		WHERE ($1 = '' OR p.title ILIKE '%' || $1 || '%')
	`, keyword).Scan(&n)
	return n, err
}

// ListByCategory expects an already-normalized category; categories are
// stored normalized so the comparison is plain equality.
func (r *PostRepository) ListByCategory(ctx context.Context, category string) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`,
		       u.id, u.name, u.email, u.role, u.avatar_url
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.category = $1
		ORDER BY p.created_at DESC
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]entity.Post, 0)
	for rows.Next() {
		p := entity.Post{}
		author := entity.User{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Category, &p.Content, &p.AuthorID,
			&p.CreatedAt, &p.UpdatedAt,
			&author.ID, &author.Name, &author.Email, &author.Role, &author.AvatarURL); err != nil {
			return nil, err
		}
		p.Author = &author
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, category = $2, content = $3, updated_at = $4
		WHERE id = $5
	`, p.Title, p.Category, p.Content, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the post's comments and the post itself in one
// transaction. Rolling back on any failure keeps comments and post
// consistent: either both survive or neither does.
func (r *PostRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit(ctx)
}

var _ repository.PostRepository = (*PostRepository)(nil)
