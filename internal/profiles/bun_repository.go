package profiles

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is the SQL row backing a profile. The full document lives in a JSON
// column; slug and name are lifted out for lookups.
type Record struct {
	bun.BaseModel `bun:"table:business_profiles,alias:bp"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Slug      string         `bun:"slug,notnull,unique" json:"slug"`
	Name      string         `bun:"name,notnull" json:"name"`
	Document  map[string]any `bun:"document,type:jsonb,notnull" json:"document"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// NewRecordRepository builds the generic bun repository for profile rows.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(r *Record) string {
			return r.Slug
		},
	})
}

// BunRepository stores profiles in a SQL database through bun. With a cache,
// keys written through this repository are read from the database afterwards.
type BunRepository struct {
	repo    repository.Repository[*Record]
	base    repository.Repository[*Record]
	written sync.Map
	now     func() time.Time
}

// NewBunRepository constructs a profile repository backed by bun.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a profile repository backed by bun with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewRecordRepository(db)
	return &BunRepository{
		repo: wrapWithCache(base, cacheService, keySerializer),
		base: base,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *BunRepository) reader(key string) repository.Repository[*Record] {
	if _, ok := r.written.Load(key); ok {
		return r.base
	}
	return r.repo
}

func (r *BunRepository) markWritten(keys ...string) {
	for _, key := range keys {
		if key != "" {
			r.written.Store(key, struct{}{})
		}
	}
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	record, err := r.reader(id.String()).GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return recordToProfile(record)
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Profile, error) {
	normalized := normalizeSlug(slug)
	records, _, err := r.reader(normalized).List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", normalized)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	if len(records) == 0 {
		return nil, notFound(slug)
	}
	return recordToProfile(records[0])
}

func (r *BunRepository) Create(ctx context.Context, profile *Profile) (*Profile, error) {
	if err := validateForWrite(profile); err != nil {
		return nil, err
	}
	copied := profile.Clone()
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if existing, err := r.GetBySlug(ctx, copied.Slug); err == nil && existing.ID != copied.ID {
		return nil, ErrSlugConflict
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	record, err := profileToRecord(copied)
	if err != nil {
		return nil, err
	}
	now := r.now()
	record.CreatedAt = now
	record.UpdatedAt = now

	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("profile repository error: %w", err)
	}
	r.markWritten(created.ID.String(), created.Slug)
	return recordToProfile(created)
}

func (r *BunRepository) Update(ctx context.Context, profile *Profile) (*Profile, error) {
	if err := validateForWrite(profile); err != nil {
		return nil, err
	}
	previous, err := r.reader(profile.ID.String()).GetByID(ctx, profile.ID.String())
	if err != nil {
		return nil, mapRepositoryError(err, profile.ID.String())
	}
	if existing, err := r.GetBySlug(ctx, profile.Slug); err == nil && existing.ID != profile.ID {
		return nil, ErrSlugConflict
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	record, err := profileToRecord(profile.Clone())
	if err != nil {
		return nil, err
	}
	record.UpdatedAt = r.now()

	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"slug",
			"name",
			"document",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, profile.ID.String())
	}
	r.markWritten(record.ID.String(), record.Slug, previous.Slug)
	return recordToProfile(updated)
}

func profileToRecord(profile *Profile) (*Record, error) {
	doc, err := toDocument(profile)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:       profile.ID,
		Slug:     normalizeSlug(profile.Slug),
		Name:     profile.Name,
		Document: doc,
	}, nil
}

func recordToProfile(record *Record) (*Profile, error) {
	if record == nil {
		return nil, notFound("")
	}
	profile, err := fromDocument(record.Document)
	if err != nil {
		return nil, err
	}
	profile.ID = record.ID
	if profile.Slug == "" {
		profile.Slug = record.Slug
	}
	return profile, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return notFound(key)
	}
	return fmt.Errorf("profile repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
