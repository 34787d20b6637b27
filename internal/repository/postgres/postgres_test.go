package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/studygo-backend/internal/db"
	"github.com/baharkarakas/studygo-backend/internal/models"
	"github.com/baharkarakas/studygo-backend/internal/repository"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		log.Printf("postgres repository tests skipped: TEST_DATABASE_URL not set")
		os.Exit(m.Run())
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, url)
	if err != nil {
		log.Printf("postgres repository tests skipped: %v", err)
		os.Exit(0)
	}
	if err := db.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	testPool = pool

	code := m.Run()
	_, _ = pool.Exec(ctx, `TRUNCATE TABLE progress, posts, users CASCADE`)
	pool.Close()
	os.Exit(code)
}

func requireDB(t *testing.T) Repositories {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return NewRepositories(testPool)
}

func uniqueSuffix() string { return fmt.Sprintf("%d", time.Now().UnixNano()) }

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), repository.ErrNotFound)

	err := translate(&pgconn.PgError{Code: "23505", ConstraintName: repository.ConstraintUserEmail})
	require.ErrorIs(t, err, repository.ErrConflict)
	var ce *repository.ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, repository.ConstraintUserEmail, ce.Constraint)

	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23503"}), repository.ErrNotFound)

	other := &pgconn.PgError{Code: "22001"}
	assert.Same(t, other, translate(other))
}

func TestUsersRepo_UniqueConstraints(t *testing.T) {
	repos := requireDB(t)
	ctx := context.Background()
	s := uniqueSuffix()

	u, err := repos.Users.Create(ctx, "a"+s+"@x.com", "alice"+s, "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	_, err = repos.Users.Create(ctx, "a"+s+"@x.com", "bob"+s, "hash")
	var ce *repository.ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, repository.ConstraintUserEmail, ce.Constraint)

	_, err = repos.Users.Create(ctx, "b"+s+"@x.com", "alice"+s, "hash")
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, repository.ConstraintUserUsername, ce.Constraint)

	_, err = repos.Users.GetByID(ctx, "missing-"+s)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUsersRepo_UpdateProfileKeepsUnsetFields(t *testing.T) {
	repos := requireDB(t)
	ctx := context.Background()
	s := uniqueSuffix()

	u, err := repos.Users.Create(ctx, "p"+s+"@x.com", "pat"+s, "hash")
	require.NoError(t, err)

	bio, avatar := "hello", "https://cdn/x.png"
	_, err = repos.Users.UpdateProfile(ctx, u.ID, models.ProfileUpdate{Bio: &bio, AvatarURL: &avatar})
	require.NoError(t, err)

	newBio := "updated"
	got, err := repos.Users.UpdateProfile(ctx, u.ID, models.ProfileUpdate{Bio: &newBio})
	require.NoError(t, err)
	require.NotNil(t, got.Bio)
	require.NotNil(t, got.AvatarURL)
	assert.Equal(t, "updated", *got.Bio)
	assert.Equal(t, avatar, *got.AvatarURL)
	assert.Nil(t, got.BackgroundURL)
	assert.False(t, got.UpdatedAt.Before(u.UpdatedAt))
}

func TestProgressRepo_UpsertKeepsOneRow(t *testing.T) {
	repos := requireDB(t)
	ctx := context.Background()
	s := uniqueSuffix()

	u, err := repos.Users.Create(ctx, "g"+s+"@x.com", "gina"+s, "hash")
	require.NoError(t, err)

	first, err := repos.Progress.Upsert(ctx, u.ID, "algebra", 40)
	require.NoError(t, err)
	again, err := repos.Progress.Upsert(ctx, u.ID, "algebra", 40)
	require.NoError(t, err)
	second, err := repos.Progress.Upsert(ctx, u.ID, "algebra", 75)
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 75, second.Percent)

	rows, err := repos.Progress.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 75, rows[0].Percent)
}

func TestPostsRepo_DeleteOwnedAndOrdering(t *testing.T) {
	repos := requireDB(t)
	ctx := context.Background()
	s := uniqueSuffix()

	owner, err := repos.Users.Create(ctx, "o"+s+"@x.com", "owner"+s, "hash")
	require.NoError(t, err)
	other, err := repos.Users.Create(ctx, "t"+s+"@x.com", "other"+s, "hash")
	require.NoError(t, err)

	older, err := repos.Posts.Create(ctx, owner.ID, "first")
	require.NoError(t, err)
	newer, err := repos.Posts.Create(ctx, owner.ID, "second")
	require.NoError(t, err)

	list, err := repos.Posts.ListRecent(ctx, 50)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(list), 2)
	assert.LessOrEqual(t, len(list), 50)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt))
	}
	assert.Equal(t, newer.ID, list[0].ID)

	ok, err := repos.Posts.DeleteOwned(ctx, older.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repos.Posts.DeleteOwned(ctx, older.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repos.Posts.GetByID(ctx, older.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNewRepositories_Wired(t *testing.T) {
	repos := NewRepositories(nil)
	assert.IsType(t, &usersRepo{}, repos.Users)
	assert.IsType(t, &postsRepo{}, repos.Posts)
	assert.IsType(t, &progressRepo{}, repos.Progress)
}
