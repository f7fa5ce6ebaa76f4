package storage

import (
	"context"
	"errors"

	"github.com/xknRiya/cats-api/internal/models"
)

// ErrNotFound indicates a record does not exist or has been soft-deleted.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore is the credential store consumed by the auth service.
type UserStore interface {
	// CreateUser inserts a user. A live user with the same email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns the non-deleted user with the given email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// BreedStore persists breeds.
type BreedStore interface {
	CreateBreed(ctx context.Context, name string) (models.Breed, error)
	ListBreeds(ctx context.Context) ([]models.Breed, error)
	GetBreed(ctx context.Context, id int64) (models.Breed, error)
	FindBreedByName(ctx context.Context, name string) (models.Breed, error)
	UpdateBreed(ctx context.Context, id int64, name string) (models.Breed, error)
	DeleteBreed(ctx context.Context, id int64) error
}

// CatStore persists cats. Cats are always returned with their live breed attached.
type CatStore interface {
	CreateCat(ctx context.Context, cat models.Cat) (models.Cat, error)
	ListCats(ctx context.Context) ([]models.Cat, error)
	GetCat(ctx context.Context, id int64) (models.Cat, error)
	UpdateCat(ctx context.Context, id int64, patch models.CatPatch) (models.Cat, error)
	DeleteCat(ctx context.Context, id int64) error
}

// Store is everything the server needs from a backend.
type Store interface {
	UserStore
	BreedStore
	CatStore
	Ping(ctx context.Context) error
	Close()
}
