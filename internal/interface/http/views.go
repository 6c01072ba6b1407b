package handlers

import (
	"time"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
)

// Output views are explicit DTOs: the password hash has no field here, so
// it can never leak through serialization.

type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserView(u *entity.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type CommentView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	AuthorID  string    `json:"author_id"`
	Author    *UserView `json:"author,omitempty"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCommentView(c *entity.Comment) CommentView {
	v := CommentView{
		ID:        c.ID,
		Text:      c.Text,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Author != nil {
		av := NewUserView(c.Author)
		v.Author = &av
	}
	return v
}

func NewCommentViews(cs []entity.Comment) []CommentView {
	out := make([]CommentView, 0, len(cs))
	for i := range cs {
		out = append(out, NewCommentView(&cs[i]))
	}
	return out
}

type PostView struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Category  string        `json:"category"`
	Content   string        `json:"content"`
	AuthorID  string        `json:"author_id"`
	Author    *UserView     `json:"author,omitempty"`
	Comments  []CommentView `json:"comments"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func NewPostView(p *entity.Post) PostView {
	v := PostView{
		ID:        p.ID,
		Title:     p.Title,
		Category:  p.Category,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		Comments:  NewCommentViews(p.Comments),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Author != nil {
		av := NewUserView(p.Author)
		v.Author = &av
	}
	return v
}

func NewPostViews(ps []entity.Post) []PostView {
	out := make([]PostView, 0, len(ps))
	for i := range ps {
		out = append(out, NewPostView(&ps[i]))
	}
	return out
}
