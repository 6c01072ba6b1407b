package repository

import "errors"

// ErrNotFound is returned by any repository when the requested record does
// not exist. ErrDuplicate is returned on unique-constraint violations
// (currently only the users.email index).
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
