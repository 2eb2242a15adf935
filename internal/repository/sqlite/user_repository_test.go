package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilehub/internal/domain"
	"profilehub/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func testUser() *domain.User {
	return &domain.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "$2a$08$fakefakefakefakefakefakefakefakefakefakefakefakefakefa",
	}
}

func TestUserCreateAndGet(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, testUser())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	assert.Equal(t, "Ada", byEmail.FirstName)
	assert.Equal(t, "Lovelace", byEmail.LastName)
	assert.NotEmpty(t, byEmail.PasswordHash)

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)
}

func TestUserEmailUniqueConstraint(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testUser())
	require.NoError(t, err)

	dup := testUser()
	dup.FirstName = "Imposter"
	_, err = repo.Create(ctx, dup)
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestUserNotFound(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, 42)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
