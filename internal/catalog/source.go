package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/google/uuid"
)

// Source supplies the read-only product and service catalog of a business.
type Source interface {
	ListProducts(ctx context.Context, businessID uuid.UUID) ([]domain.Product, error)
	ListServices(ctx context.Context, businessID uuid.UUID) ([]domain.Service, error)
}

// MemorySource is an in-memory catalog for scaffolding/tests.
type MemorySource struct {
	mu       sync.RWMutex
	products map[uuid.UUID][]domain.Product
	services map[uuid.UUID][]domain.Service
}

// NewMemorySource constructs an empty catalog.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		products: make(map[uuid.UUID][]domain.Product),
		services: make(map[uuid.UUID][]domain.Service),
	}
}

// PutProducts replaces the products of a business.
func (m *MemorySource) PutProducts(businessID uuid.UUID, products ...domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[businessID] = cloneProducts(products)
}

// PutServices replaces the services of a business.
func (m *MemorySource) PutServices(businessID uuid.UUID, services ...domain.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[businessID] = cloneServices(services)
}

func (m *MemorySource) ListProducts(_ context.Context, businessID uuid.UUID) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneProducts(m.products[businessID]), nil
}

func (m *MemorySource) ListServices(_ context.Context, businessID uuid.UUID) ([]domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneServices(m.services[businessID]), nil
}

// Listed filters products down to the ones visible on public pages.
func Listed(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if product.Status.IsListed() {
			out = append(out, product)
		}
	}
	return out
}

// ListedServices filters services down to the ones visible on public pages.
func ListedServices(services []domain.Service) []domain.Service {
	out := make([]domain.Service, 0, len(services))
	for _, service := range services {
		if service.Status.IsListed() {
			out = append(out, service)
		}
	}
	return out
}

// NormalizeCurrency upper-cases the ISO code and falls back to USD.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "USD"
	}
	return code
}

func cloneProducts(in []domain.Product) []domain.Product {
	if in == nil {
		return nil
	}
	out := make([]domain.Product, len(in))
	for i, product := range in {
		product.Images = slices.Clone(product.Images)
		out[i] = product
	}
	return out
}

func cloneServices(in []domain.Service) []domain.Service {
	if in == nil {
		return nil
	}
	out := make([]domain.Service, len(in))
	for i, service := range in {
		service.Images = slices.Clone(service.Images)
		out[i] = service
	}
	return out
}
