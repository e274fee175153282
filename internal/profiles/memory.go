package profiles

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory profile store for scaffolding/tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	profiles  map[uuid.UUID]*Profile
	slugIndex map[string]uuid.UUID
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		profiles:  make(map[uuid.UUID]*Profile),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied profile, assigning an id when missing.
func (m *MemoryRepository) Create(_ context.Context, profile *Profile) (*Profile, error) {
	if err := validateForWrite(profile); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := profile.Clone()
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	slug := normalizeSlug(copied.Slug)
	if owner, taken := m.slugIndex[slug]; taken && owner != copied.ID {
		return nil, ErrSlugConflict
	}
	m.profiles[copied.ID] = copied
	m.slugIndex[slug] = copied.ID
	return copied.Clone(), nil
}

// GetByID retrieves a profile by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[id]
	if !ok {
		return nil, notFound(id.String())
	}
	return profile.Clone(), nil
}

// GetBySlug retrieves a profile by its public slug.
func (m *MemoryRepository) GetBySlug(_ context.Context, slug string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[normalizeSlug(slug)]
	if !ok {
		return nil, notFound(slug)
	}
	return m.profiles[id].Clone(), nil
}

// Update replaces the stored document.
func (m *MemoryRepository) Update(_ context.Context, profile *Profile) (*Profile, error) {
	if err := validateForWrite(profile); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.profiles[profile.ID]
	if !ok {
		return nil, notFound(profile.ID.String())
	}
	slug := normalizeSlug(profile.Slug)
	if owner, taken := m.slugIndex[slug]; taken && owner != profile.ID {
		return nil, ErrSlugConflict
	}
	delete(m.slugIndex, normalizeSlug(current.Slug))

	updated := profile.Clone()
	m.profiles[profile.ID] = updated
	m.slugIndex[slug] = profile.ID
	return updated.Clone(), nil
}
