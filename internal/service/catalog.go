package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/xknRiya/cats-api/internal/models"
	"github.com/xknRiya/cats-api/internal/storage"
)

var (
	ErrBreedNotFound = errors.New("breed not found")
	ErrBreedExists   = errors.New("breed already exists")
)

// CatalogService manages breeds and cats. Not-found results are reported as
// storage.ErrNotFound.
type CatalogService struct {
	breeds storage.BreedStore
	cats   storage.CatStore
}

func NewCatalogService(breeds storage.BreedStore, cats storage.CatStore) *CatalogService {
	return &CatalogService{breeds: breeds, cats: cats}
}

func (s *CatalogService) CreateBreed(ctx context.Context, name string) (models.Breed, error) {
	breed, err := s.breeds.CreateBreed(ctx, name)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return models.Breed{}, ErrBreedExists
	}
	return breed, err
}

func (s *CatalogService) ListBreeds(ctx context.Context) ([]models.Breed, error) {
	return s.breeds.ListBreeds(ctx)
}

func (s *CatalogService) GetBreed(ctx context.Context, id int64) (models.Breed, error) {
	return s.breeds.GetBreed(ctx, id)
}

func (s *CatalogService) UpdateBreed(ctx context.Context, id int64, name string) (models.Breed, error) {
	breed, err := s.breeds.UpdateBreed(ctx, id, name)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return models.Breed{}, ErrBreedExists
	}
	return breed, err
}

func (s *CatalogService) DeleteBreed(ctx context.Context, id int64) error {
	return s.breeds.DeleteBreed(ctx, id)
}

// CreateCat stores a cat; breedName, when given, must name a live breed.
func (s *CatalogService) CreateCat(ctx context.Context, name string, age int, breedName *string) (models.Cat, error) {
	cat := models.Cat{Name: name, Age: age}
	if breedName != nil {
		breed, err := s.resolveBreed(ctx, *breedName)
		if err != nil {
			return models.Cat{}, err
		}
		cat.Breed = &breed
	}

	created, err := s.cats.CreateCat(ctx, cat)
	if err != nil {
		// the breed vanished between lookup and insert
		if errors.Is(err, storage.ErrNotFound) {
			return models.Cat{}, ErrBreedNotFound
		}
		return models.Cat{}, fmt.Errorf("create cat: %w", err)
	}
	return created, nil
}

func (s *CatalogService) ListCats(ctx context.Context) ([]models.Cat, error) {
	return s.cats.ListCats(ctx)
}

func (s *CatalogService) GetCat(ctx context.Context, id int64) (models.Cat, error) {
	return s.cats.GetCat(ctx, id)
}

// UpdateCat applies a partial update; a nil field is left unchanged.
func (s *CatalogService) UpdateCat(ctx context.Context, id int64, name *string, age *int, breedName *string) (models.Cat, error) {
	patch := models.CatPatch{Name: name, Age: age}
	if breedName != nil {
		breed, err := s.resolveBreed(ctx, *breedName)
		if err != nil {
			return models.Cat{}, err
		}
		patch.BreedID = &breed.ID
	}
	return s.cats.UpdateCat(ctx, id, patch)
}

func (s *CatalogService) DeleteCat(ctx context.Context, id int64) error {
	return s.cats.DeleteCat(ctx, id)
}

func (s *CatalogService) resolveBreed(ctx context.Context, name string) (models.Breed, error) {
	breed, err := s.breeds.FindBreedByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Breed{}, ErrBreedNotFound
		}
		return models.Breed{}, fmt.Errorf("find breed: %w", err)
	}
	return breed, nil
}
