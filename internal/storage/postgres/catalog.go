package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xknRiya/cats-api/internal/models"
	"github.com/xknRiya/cats-api/internal/storage"
)

const selectCats = `
	SELECT c.id, c.name, c.age, c.created_at, c.deleted_at, b.id, b.name
	FROM cats c
	LEFT JOIN breeds b ON b.id = c.breed_id AND b.deleted_at IS NULL
	WHERE c.deleted_at IS NULL`

// CreateBreed inserts a breed.
func (s *Store) CreateBreed(ctx context.Context, name string) (models.Breed, error) {
	const query = `
		INSERT INTO breeds (name) VALUES ($1)
		RETURNING id, name, created_at, deleted_at;
	`
	breed, err := scanBreed(s.pool.QueryRow(ctx, query, name))
	if err != nil {
		return models.Breed{}, mapError(err)
	}
	return breed, nil
}

// ListBreeds returns every live breed ordered by id.
func (s *Store) ListBreeds(ctx context.Context) ([]models.Breed, error) {
	const query = `
		SELECT id, name, created_at, deleted_at FROM breeds
		WHERE deleted_at IS NULL ORDER BY id;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list breeds: %w", err)
	}
	defer rows.Close()

	breeds := []models.Breed{}
	for rows.Next() {
		b, err := scanBreed(rows)
		if err != nil {
			return nil, fmt.Errorf("scan breed: %w", err)
		}
		breeds = append(breeds, b)
	}
	return breeds, rows.Err()
}

// GetBreed fetches a live breed by id.
func (s *Store) GetBreed(ctx context.Context, id int64) (models.Breed, error) {
	const query = `
		SELECT id, name, created_at, deleted_at FROM breeds
		WHERE id = $1 AND deleted_at IS NULL;
	`
	breed, err := scanBreed(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return models.Breed{}, mapError(err)
	}
	return breed, nil
}

// FindBreedByName fetches a live breed by its exact name.
func (s *Store) FindBreedByName(ctx context.Context, name string) (models.Breed, error) {
	const query = `
		SELECT id, name, created_at, deleted_at FROM breeds
		WHERE name = $1 AND deleted_at IS NULL;
	`
	breed, err := scanBreed(s.pool.QueryRow(ctx, query, name))
	if err != nil {
		return models.Breed{}, mapError(err)
	}
	return breed, nil
}

// UpdateBreed renames a live breed.
func (s *Store) UpdateBreed(ctx context.Context, id int64, name string) (models.Breed, error) {
	const query = `
		UPDATE breeds SET name = $2
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, name, created_at, deleted_at;
	`
	breed, err := scanBreed(s.pool.QueryRow(ctx, query, id, name))
	if err != nil {
		return models.Breed{}, mapError(err)
	}
	return breed, nil
}

// DeleteBreed soft-deletes a breed.
func (s *Store) DeleteBreed(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `UPDATE breeds SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL;`, id)
	if err != nil {
		return fmt.Errorf("delete breed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreateCat inserts a cat; cat.Breed, when set, must reference a live breed.
func (s *Store) CreateCat(ctx context.Context, cat models.Cat) (models.Cat, error) {
	var breedID *int64
	if cat.Breed != nil {
		breedID = &cat.Breed.ID
	}
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO cats (name, age, breed_id) VALUES ($1, $2, $3) RETURNING id;`,
		cat.Name, cat.Age, breedID,
	).Scan(&id)
	if err != nil {
		return models.Cat{}, mapError(err)
	}
	return s.GetCat(ctx, id)
}

// ListCats returns every live cat ordered by id.
func (s *Store) ListCats(ctx context.Context) ([]models.Cat, error) {
	rows, err := s.pool.Query(ctx, selectCats+` ORDER BY c.id;`)
	if err != nil {
		return nil, fmt.Errorf("list cats: %w", err)
	}
	defer rows.Close()

	cats := []models.Cat{}
	for rows.Next() {
		c, err := scanCat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cat: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// GetCat fetches a live cat by id.
func (s *Store) GetCat(ctx context.Context, id int64) (models.Cat, error) {
	cat, err := scanCat(s.pool.QueryRow(ctx, selectCats+` AND c.id = $1;`, id))
	if err != nil {
		return models.Cat{}, mapError(err)
	}
	return cat, nil
}

// UpdateCat applies the non-nil fields of patch.
func (s *Store) UpdateCat(ctx context.Context, id int64, patch models.CatPatch) (models.Cat, error) {
	const query = `
		UPDATE cats SET
			name = COALESCE($2, name),
			age = COALESCE($3, age),
			breed_id = COALESCE($4, breed_id)
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id;
	`
	var updated int64
	if err := s.pool.QueryRow(ctx, query, id, patch.Name, patch.Age, patch.BreedID).Scan(&updated); err != nil {
		return models.Cat{}, mapError(err)
	}
	return s.GetCat(ctx, updated)
}

// DeleteCat soft-deletes a cat.
func (s *Store) DeleteCat(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `UPDATE cats SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL;`, id)
	if err != nil {
		return fmt.Errorf("delete cat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanBreed(row pgx.Row) (models.Breed, error) {
	var b models.Breed
	if err := row.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.DeletedAt); err != nil {
		return models.Breed{}, err
	}
	return b, nil
}

func scanCat(row pgx.Row) (models.Cat, error) {
	var (
		c         models.Cat
		breedID   *int64
		breedName *string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Age, &c.CreatedAt, &c.DeletedAt, &breedID, &breedName); err != nil {
		return models.Cat{}, err
	}
	if breedID != nil && breedName != nil {
		c.Breed = &models.Breed{ID: *breedID, Name: *breedName}
	}
	return c, nil
}
