package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrProfileRequired = errors.New("profiles: profile required")
	ErrSlugRequired    = errors.New("profiles: slug required")
	ErrSlugConflict    = errors.New("profiles: slug already in use")
	ErrNotFound        = errors.New("profiles: not found")
)

// Repository persists business profile documents.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetBySlug(ctx context.Context, slug string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) (*Profile, error)
	Update(ctx context.Context, profile *Profile) (*Profile, error)
}

// NotFoundError is returned when a profile lookup misses.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func notFound(key string) error {
	return &NotFoundError{Resource: "profile", Key: key}
}

func validateForWrite(profile *Profile) error {
	if profile == nil {
		return ErrProfileRequired
	}
	if normalizeSlug(profile.Slug) == "" {
		return ErrSlugRequired
	}
	return nil
}
