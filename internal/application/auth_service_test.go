package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

func TestRegisterDefaultsRole(t *testing.T) {
	auth, _, _, _ := newFixture()
	ctx := context.Background()

	u, err := auth.Register(ctx, "Alice", "alice@example.com", "secret-pw", "")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.NotEmpty(t, u.ID)

	// Unknown roles fall back to the default as well.
	u, err = auth.Register(ctx, "Bob", "bob@example.com", "secret-pw", "admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)

	u, err = auth.Register(ctx, "Carol", "carol@example.com", "secret-pw", entity.RolePublisher)
	require.NoError(t, err)
	assert.Equal(t, entity.RolePublisher, u.Role)
}

func TestRegisterHashesPassword(t *testing.T) {
	auth, _, _, store := newFixture()
	ctx := context.Background()

	_, err := auth.Register(ctx, "Alice", "alice@example.com", "secret-pw", "")
	require.NoError(t, err)

	require.Len(t, store.users, 1)
	stored := store.users[0].Password
	assert.NotEqual(t, "secret-pw", stored)
	assert.True(t, helpers.CompareHashAndPassword(stored, "secret-pw"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _, _, _ := newFixture()
	ctx := context.Background()

	_, err := auth.Register(ctx, "Alice", "alice@example.com", "secret-pw", "")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "Impostor", "alice@example.com", "other-pw", "")
	assert.True(t, errors.Is(err, ErrEmailTaken))
}

func TestAuthenticate(t *testing.T) {
	auth, _, _, _ := newFixture()
	ctx := context.Background()

	reg, err := auth.Register(ctx, "Alice", "alice@example.com", "secret-pw", "")
	require.NoError(t, err)

	u, err := auth.Authenticate(ctx, "alice@example.com", "secret-pw")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)

	_, err = auth.Authenticate(ctx, "alice@example.com", "wrong-pw")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	// Unknown email reports the same error as a bad password.
	_, err = auth.Authenticate(ctx, "nobody@example.com", "secret-pw")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestUpdateDetailsPartial(t *testing.T) {
	auth, _, _, _ := newFixture()
	ctx := context.Background()

	u, err := auth.Register(ctx, "Alice", "alice@example.com", "secret-pw", "")
	require.NoError(t, err)

	got, err := auth.UpdateDetails(ctx, u.ID, UpdateDetailsInput{Name: "Alicia"})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)

	got, err = auth.UpdateDetails(ctx, u.ID, UpdateDetailsInput{Email: "alicia@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)
	assert.Equal(t, "alicia@example.com", got.Email)

	_, err = auth.UpdateDetails(ctx, "00000000-0000-0000-0000-000000000000", UpdateDetailsInput{Name: "x"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdatePasswordVerifiesCurrent(t *testing.T) {
	auth, _, _, _ := newFixture()
	ctx := context.Background()

	u, err := auth.Register(ctx, "Alice", "alice@example.com", "secret-pw", "")
	require.NoError(t, err)

	err = auth.UpdatePassword(ctx, u.ID, "wrong-pw", "next-pw")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	// Old password still works after the rejected change.
	_, err = auth.Authenticate(ctx, "alice@example.com", "secret-pw")
	require.NoError(t, err)

	require.NoError(t, auth.UpdatePassword(ctx, u.ID, "secret-pw", "next-pw"))

	_, err = auth.Authenticate(ctx, "alice@example.com", "next-pw")
	require.NoError(t, err)
	_, err = auth.Authenticate(ctx, "alice@example.com", "secret-pw")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	auth, _, _, _ := newFixture()

	// No Redis configured and no such account: no error, no link.
	link, err := auth.ForgotPassword(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, link)
}

func TestCurrentUser(t *testing.T) {
	auth, _, _, _ := newFixture()
	ctx := context.Background()

	u, err := auth.Register(ctx, "Alice", "alice@example.com", "secret-pw", "")
	require.NoError(t, err)

	got, err := auth.CurrentUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = auth.CurrentUser(ctx, "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, ErrNotFound))
}
