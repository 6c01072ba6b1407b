package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-blog-api/config"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "publisher@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Demo Publisher", email, hash, entity.RolePublisher).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	var postID string
	err = db.QueryRow(`
		INSERT INTO posts (title, category, content, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "Getting started", entity.NormalizeCategory("Tech News"),
		"A first post to verify the stack end to end.", userID).Scan(&postID)
	if err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO comments (text, author_id, post_id)
		VALUES ($1, $2, $3)
	`, "nice post", userID, postID); err != nil {
		log.Fatalf("failed to seed comment: %v", err)
	}
	fmt.Printf("seeded post %s with one comment\n", postID)
}
