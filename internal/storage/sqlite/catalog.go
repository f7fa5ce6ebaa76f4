package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xknRiya/cats-api/internal/models"
	"github.com/xknRiya/cats-api/internal/storage"
)

const selectCats = `
	SELECT c.id, c.name, c.age, c.created_at, c.deleted_at, b.id, b.name
	FROM cats c
	LEFT JOIN breeds b ON b.id = c.breed_id AND b.deleted_at IS NULL
	WHERE c.deleted_at IS NULL`

const selectBreeds = `SELECT id, name, created_at, deleted_at FROM breeds WHERE deleted_at IS NULL`

// CreateBreed inserts a breed.
func (s *Store) CreateBreed(ctx context.Context, name string) (models.Breed, error) {
	const query = `
		INSERT INTO breeds (name, created_at) VALUES (?, ?)
		RETURNING id, name, created_at, deleted_at;
	`
	breed, err := scanBreed(s.db.QueryRowContext(ctx, query, name, s.now()))
	if err != nil {
		return models.Breed{}, mapError(err)
	}
	return breed, nil
}

// ListBreeds returns every live breed ordered by id.
func (s *Store) ListBreeds(ctx context.Context) ([]models.Breed, error) {
	rows, err := s.db.QueryContext(ctx, selectBreeds+` ORDER BY id;`)
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
	breed, err := scanBreed(s.db.QueryRowContext(ctx, selectBreeds+` AND id = ?;`, id))
	if err != nil {
		return models.Breed{}, mapError(err)
	}
	return breed, nil
}

// FindBreedByName fetches a live breed by its exact name.
func (s *Store) FindBreedByName(ctx context.Context, name string) (models.Breed, error) {
	breed, err := scanBreed(s.db.QueryRowContext(ctx, selectBreeds+` AND name = ?;`, name))
	if err != nil {
		return models.Breed{}, mapError(err)
	}
	return breed, nil
}

// UpdateBreed renames a live breed.
func (s *Store) UpdateBreed(ctx context.Context, id int64, name string) (models.Breed, error) {
	const query = `
		UPDATE breeds SET name = ?
		WHERE id = ? AND deleted_at IS NULL
		RETURNING id, name, created_at, deleted_at;
	`
	breed, err := scanBreed(s.db.QueryRowContext(ctx, query, name, id))
	if err != nil {
		return models.Breed{}, mapError(err)
	}
	return breed, nil
}

// DeleteBreed soft-deletes a breed.
func (s *Store) DeleteBreed(ctx context.Context, id int64) error {
	return s.softDelete(ctx, `UPDATE breeds SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL;`, id)
}

// CreateCat inserts a cat; cat.Breed, when set, must reference a live breed.
func (s *Store) CreateCat(ctx context.Context, cat models.Cat) (models.Cat, error) {
	var breedID sql.NullInt64
	if cat.Breed != nil {
		breedID = sql.NullInt64{Int64: cat.Breed.ID, Valid: true}
	}
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO cats (name, age, breed_id, created_at) VALUES (?, ?, ?, ?) RETURNING id;`,
		cat.Name, cat.Age, breedID, s.now(),
	).Scan(&id)
	if err != nil {
		return models.Cat{}, mapError(err)
	}
	return s.GetCat(ctx, id)
}

// ListCats returns every live cat ordered by id.
func (s *Store) ListCats(ctx context.Context) ([]models.Cat, error) {
	rows, err := s.db.QueryContext(ctx, selectCats+` ORDER BY c.id;`)
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
	cat, err := scanCat(s.db.QueryRowContext(ctx, selectCats+` AND c.id = ?;`, id))
	if err != nil {
		return models.Cat{}, mapError(err)
	}
	return cat, nil
}

// UpdateCat applies the non-nil fields of patch.
func (s *Store) UpdateCat(ctx context.Context, id int64, patch models.CatPatch) (models.Cat, error) {
	const query = `
		UPDATE cats SET
			name = COALESCE(?, name),
			age = COALESCE(?, age),
			breed_id = COALESCE(?, breed_id)
		WHERE id = ? AND deleted_at IS NULL
		RETURNING id;
	`
	var (
		name    sql.NullString
		age     sql.NullInt64
		breedID sql.NullInt64
	)
	if patch.Name != nil {
		name = sql.NullString{String: *patch.Name, Valid: true}
	}
	if patch.Age != nil {
		age = sql.NullInt64{Int64: int64(*patch.Age), Valid: true}
	}
	if patch.BreedID != nil {
		breedID = sql.NullInt64{Int64: *patch.BreedID, Valid: true}
	}

	var updated int64
	if err := s.db.QueryRowContext(ctx, query, name, age, breedID, id).Scan(&updated); err != nil {
		return models.Cat{}, mapError(err)
	}
	return s.GetCat(ctx, updated)
}

// DeleteCat soft-deletes a cat.
func (s *Store) DeleteCat(ctx context.Context, id int64) error {
	return s.softDelete(ctx, `UPDATE cats SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL;`, id)
}

func (s *Store) softDelete(ctx context.Context, query string, id int64) error {
	res, err := s.db.ExecContext(ctx, query, s.now(), id)
	if err != nil {
		return fmt.Errorf("soft delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanBreed(row rowScanner) (models.Breed, error) {
	var (
		b         models.Breed
		deletedAt sql.NullTime
	)
	if err := row.Scan(&b.ID, &b.Name, &b.CreatedAt, &deletedAt); err != nil {
		return models.Breed{}, err
	}
	b.DeletedAt = nullTime(deletedAt)
	return b, nil
}

func scanCat(row rowScanner) (models.Cat, error) {
	var (
		c         models.Cat
		deletedAt sql.NullTime
		breedID   sql.NullInt64
		breedName sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Age, &c.CreatedAt, &deletedAt, &breedID, &breedName); err != nil {
		return models.Cat{}, err
	}
	c.DeletedAt = nullTime(deletedAt)
	if breedID.Valid {
		c.Breed = &models.Breed{ID: breedID.Int64, Name: breedName.String}
	}
	return c, nil
}
