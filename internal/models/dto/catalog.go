package dto

import (
	"errors"
	"strings"
)

type CreateBreedRequest struct {
	Name string `json:"name"`
}

func (r *CreateBreedRequest) Normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	if len(r.Name) < minNameLength {
		return errors.New("name must be longer than or equal to 5 characters")
	}
	return nil
}

type UpdateBreedRequest struct {
	Name *string `json:"name"`
}

func (r *UpdateBreedRequest) Normalize() error {
	if r.Name == nil {
		return errors.New("name is required")
	}
	name := strings.TrimSpace(*r.Name)
	if len(name) < minNameLength {
		return errors.New("name must be longer than or equal to 5 characters")
	}
	r.Name = &name
	return nil
}

type CreateCatRequest struct {
	Name  string  `json:"name"`
	Age   int     `json:"age"`
	Breed *string `json:"breed"`
}

func (r *CreateCatRequest) Normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name should not be empty")
	}
	if r.Age <= 0 {
		return errors.New("age must be a positive number")
	}
	r.Breed = trimOptional(r.Breed)
	if r.Breed != nil && *r.Breed == "" {
		return errors.New("breed should not be empty")
	}
	return nil
}

type UpdateCatRequest struct {
	Name  *string `json:"name"`
	Age   *int    `json:"age"`
	Breed *string `json:"breed"`
}

func (r *UpdateCatRequest) Normalize() error {
	r.Name = trimOptional(r.Name)
	if r.Name != nil && *r.Name == "" {
		return errors.New("name should not be empty")
	}
	if r.Age != nil && *r.Age <= 0 {
		return errors.New("age must be a positive number")
	}
	r.Breed = trimOptional(r.Breed)
	if r.Breed != nil && *r.Breed == "" {
		return errors.New("breed should not be empty")
	}
	return nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}
