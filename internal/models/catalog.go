package models

import "time"

// Breed is a named cat breed. Soft-deleted breeds keep their row.
type Breed struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"-"`
	DeletedAt *time.Time `json:"-"`
}

// Cat is returned with its breed eagerly attached; Breed is nil when the cat has none.
type Cat struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Age       int        `json:"age"`
	Breed     *Breed     `json:"breed"`
	CreatedAt time.Time  `json:"createdAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// CatPatch carries the optional fields of a partial cat update.
type CatPatch struct {
	Name    *string
	Age     *int
	BreedID *int64
}
