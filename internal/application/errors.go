package application

import (
	"errors"

	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

// Domain failure taxonomy. Handlers translate these to HTTP statuses in
// one place; anything outside this set is treated as a store failure and
// surfaces as a generic 500.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("not allowed to modify this resource")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// mapRepoErr lifts repository sentinels into the application taxonomy.
func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrEmailTaken
	default:
		return err
	}
}
