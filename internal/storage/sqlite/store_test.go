package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xknRiya/cats-api/internal/models"
	"github.com/xknRiya/cats-api/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func testUser(email string) models.User {
	return models.User{
		Name:         "test-name",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleUser,
	}
}

func TestNewStore_MigratesIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	first, err := NewStore(context.Background(), path)
	require.NoError(t, err)
	first.Close()

	second, err := NewStore(context.Background(), path)
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.Ping(context.Background()))
}

func TestCreateAndFindUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, testUser("test@mail.com"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.DeletedAt)

	found, err := s.FindUserByEmail(ctx, "test@mail.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "$2a$10$hash", found.PasswordHash)
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.FindUserByEmail(context.Background(), "ghost@mail.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, testUser("dup@mail.com"))
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, testUser("dup@mail.com"))
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestCreateUser_ConcurrentDuplicatesOneWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.CreateUser(ctx, testUser("race@mail.com"))
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		if errors.Is(err, storage.ErrAlreadyExists) {
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, "race@mail.com").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestBreedLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	breeds, err := s.ListBreeds(ctx)
	require.NoError(t, err)
	assert.Empty(t, breeds)

	created, err := s.CreateBreed(ctx, "test name")
	require.NoError(t, err)
	assert.Equal(t, "test name", created.Name)

	_, err = s.CreateBreed(ctx, "test name")
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	got, err := s.GetBreed(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	byName, err := s.FindBreedByName(ctx, "test name")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	renamed, err := s.UpdateBreed(ctx, created.ID, "siamese")
	require.NoError(t, err)
	assert.Equal(t, "siamese", renamed.Name)

	require.NoError(t, s.DeleteBreed(ctx, created.ID))
	require.ErrorIs(t, s.DeleteBreed(ctx, created.ID), storage.ErrNotFound)
	_, err = s.GetBreed(ctx, created.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.UpdateBreed(ctx, created.ID, "persian")
	require.ErrorIs(t, err, storage.ErrNotFound)

	// the name is free again once the old row is soft-deleted
	_, err = s.CreateBreed(ctx, "siamese")
	require.NoError(t, err)
}

func TestCatLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	breed, err := s.CreateBreed(ctx, "test name")
	require.NoError(t, err)

	created, err := s.CreateCat(ctx, models.Cat{Name: "test", Age: 10, Breed: &breed})
	require.NoError(t, err)
	require.NotNil(t, created.Breed)
	assert.Equal(t, breed.ID, created.Breed.ID)
	assert.Equal(t, "test name", created.Breed.Name)
	assert.Nil(t, created.DeletedAt)

	stray, err := s.CreateCat(ctx, models.Cat{Name: "stray", Age: 2})
	require.NoError(t, err)
	assert.Nil(t, stray.Breed)

	cats, err := s.ListCats(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)

	name := "test2"
	updated, err := s.UpdateCat(ctx, created.ID, models.CatPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "test2", updated.Name)
	assert.Equal(t, 10, updated.Age)
	require.NotNil(t, updated.Breed)

	require.NoError(t, s.DeleteCat(ctx, stray.ID))
	_, err = s.GetCat(ctx, stray.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.ErrorIs(t, s.DeleteCat(ctx, stray.ID), storage.ErrNotFound)

	// soft-deleting the breed detaches it from the cat view
	require.NoError(t, s.DeleteBreed(ctx, breed.ID))
	got, err := s.GetCat(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Breed)
}

func TestCreateCat_UnknownBreed(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateCat(context.Background(), models.Cat{Name: "test", Age: 1, Breed: &models.Breed{ID: 999}})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateCat_NotFound(t *testing.T) {
	s := newTestStore(t)
	age := 3
	_, err := s.UpdateCat(context.Background(), 42, models.CatPatch{Age: &age})
	require.ErrorIs(t, err, storage.ErrNotFound)
}
