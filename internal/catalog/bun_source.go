package catalog

import (
	"context"
	"fmt"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProductRecord is the SQL row of a catalog product.
type ProductRecord struct {
	bun.BaseModel `bun:"table:products,alias:pr"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	BusinessID  uuid.UUID `bun:"business_id,notnull,type:uuid" json:"business_id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description,omitempty"`
	Images      []string  `bun:"images,type:jsonb" json:"images,omitempty"`
	Price       float64   `bun:"price,notnull" json:"price"`
	Currency    string    `bun:"currency" json:"currency,omitempty"`
	Status      string    `bun:"status,notnull" json:"status"`
	Kind        string    `bun:"kind" json:"kind,omitempty"`
	Position    int       `bun:"position,notnull,default:0" json:"position"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// ServiceRecord is the SQL row of a bookable service.
type ServiceRecord struct {
	bun.BaseModel `bun:"table:services,alias:sv"`

	ID              uuid.UUID `bun:",pk,type:uuid" json:"id"`
	BusinessID      uuid.UUID `bun:"business_id,notnull,type:uuid" json:"business_id"`
	Name            string    `bun:"name,notnull" json:"name"`
	Description     string    `bun:"description" json:"description,omitempty"`
	Images          []string  `bun:"images,type:jsonb" json:"images,omitempty"`
	Price           float64   `bun:"price,notnull" json:"price"`
	Currency        string    `bun:"currency" json:"currency,omitempty"`
	Status          string    `bun:"status,notnull" json:"status"`
	DurationMinutes int       `bun:"duration_minutes" json:"duration,omitempty"`
	Position        int       `bun:"position,notnull,default:0" json:"position"`
	CreatedAt       time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

func NewProductRepository(db *bun.DB) repository.Repository[*ProductRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ProductRecord]{
		NewRecord: func() *ProductRecord { return &ProductRecord{} },
		GetID: func(r *ProductRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *ProductRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return ""
		},
		GetIdentifierValue: func(*ProductRecord) string {
			return ""
		},
	})
}

func NewServiceRepository(db *bun.DB) repository.Repository[*ServiceRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ServiceRecord]{
		NewRecord: func() *ServiceRecord { return &ServiceRecord{} },
		GetID: func(r *ServiceRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *ServiceRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return ""
		},
		GetIdentifierValue: func(*ServiceRecord) string {
			return ""
		},
	})
}

// BunSource reads the catalog from SQL tables through bun.
type BunSource struct {
	products repository.Repository[*ProductRecord]
	services repository.Repository[*ServiceRecord]
}

// NewBunSource constructs a catalog source backed by bun.
func NewBunSource(db *bun.DB) *BunSource {
	return NewBunSourceWithCache(db, nil, nil)
}

// NewBunSourceWithCache constructs a catalog source backed by bun with optional caching.
func NewBunSourceWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunSource {
	return &BunSource{
		products: wrapWithCache(NewProductRepository(db), cacheService, keySerializer),
		services: wrapWithCache(NewServiceRepository(db), cacheService, keySerializer),
	}
}

func (s *BunSource) ListProducts(ctx context.Context, businessID uuid.UUID) ([]domain.Product, error) {
	records, _, err := s.products.List(ctx, repository.SelectRawProcessor(byBusiness(businessID)))
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	out := make([]domain.Product, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		out = append(out, domain.Product{
			ID:          record.ID,
			BusinessID:  record.BusinessID,
			Name:        record.Name,
			Description: record.Description,
			Images:      record.Images,
			Price:       record.Price,
			Currency:    record.Currency,
			Status:      domain.NormalizeCatalogStatus(record.Status),
			Kind:        record.Kind,
		})
	}
	return out, nil
}

func (s *BunSource) ListServices(ctx context.Context, businessID uuid.UUID) ([]domain.Service, error) {
	records, _, err := s.services.List(ctx, repository.SelectRawProcessor(byBusiness(businessID)))
	if err != nil {
		return nil, fmt.Errorf("catalog: list services: %w", err)
	}
	out := make([]domain.Service, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		out = append(out, domain.Service{
			ID:              record.ID,
			BusinessID:      record.BusinessID,
			Name:            record.Name,
			Description:     record.Description,
			Images:          record.Images,
			Price:           record.Price,
			Currency:        record.Currency,
			Status:          domain.NormalizeCatalogStatus(record.Status),
			DurationMinutes: record.DurationMinutes,
		})
	}
	return out, nil
}

func byBusiness(businessID uuid.UUID) func(q *bun.SelectQuery) *bun.SelectQuery {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.business_id = ?", businessID).
			OrderExpr("?TableAlias.position ASC")
	}
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
