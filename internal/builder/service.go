package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/pages"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/goliatone/go-storefront/internal/render"
	"github.com/goliatone/go-storefront/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrRepositoryRequired = errors.New("builder: profile repository required")
	ErrPageNotFound       = errors.New("builder: page not found")
	ErrSessionRequired    = errors.New("builder: session required")
)

// Notice texts shown after a save attempt.
const (
	NoticeSaved      = "Changes saved successfully!"
	NoticeSaveFailed = "Failed to save changes. Please try again."
)

// Service opens editing sessions over stored business profiles and serves the
// public read path through the same renderer.
type Service struct {
	profiles    profiles.Repository
	catalog     catalog.Source
	registry    *blocks.Registry
	renderer    *render.Renderer
	logger      interfaces.Logger
	pagesLogger interfaces.Logger
	validate    bool
	defaultPage domain.PageType
}

// Option customises the service.
type Option func(*Service)

// WithCatalog supplies the products and services rendered by catalog blocks.
func WithCatalog(source catalog.Source) Option {
	return func(s *Service) {
		if source != nil {
			s.catalog = source
		}
	}
}

// WithRegistry overrides the block registry.
func WithRegistry(registry *blocks.Registry) Option {
	return func(s *Service) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithRenderer overrides the renderer.
func WithRenderer(renderer *render.Renderer) Option {
	return func(s *Service) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPagesLogger sets the logger handed to drafts.
func WithPagesLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.pagesLogger = logger
		}
	}
}

// WithPatchValidation toggles schema validation in drafts.
func WithPatchValidation(enabled bool) Option {
	return func(s *Service) {
		s.validate = enabled
	}
}

// WithDefaultPageType sets the page opened when a caller passes none.
func WithDefaultPageType(pageType domain.PageType) Option {
	return func(s *Service) {
		if normalized := domain.NormalizePageType(string(pageType)); normalized.Valid() {
			s.defaultPage = normalized
		}
	}
}

// NewService wires a builder service around the profile repository.
func NewService(repo profiles.Repository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	s := &Service{
		profiles:    repo,
		catalog:     catalog.NewMemorySource(),
		registry:    blocks.NewRegistry(),
		renderer:    render.New(),
		logger:      logging.NoOp(),
		pagesLogger: logging.NoOp(),
		validate:    true,
		defaultPage: domain.PageStorefront,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Registry exposes the block registry, e.g. to list the palette.
func (s *Service) Registry() *blocks.Registry {
	return s.registry
}

// Open loads the profile and its catalog and starts an editing session on the page.
func (s *Service) Open(ctx context.Context, businessID uuid.UUID, pageType domain.PageType, notifier pages.Notifier) (*Session, error) {
	pageType = s.resolvePage(pageType)
	if !pageType.Valid() {
		return nil, pages.ErrInvalidPageType
	}

	profile, err := s.profiles.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	products, services, err := s.loadCatalog(ctx, businessID)
	if err != nil {
		return nil, err
	}

	opts := []pages.Option{
		pages.WithLogger(s.pagesLogger),
		pages.WithPatchValidation(s.validate),
	}
	if notifier != nil {
		opts = append(opts, pages.WithNotifier(notifier))
	}
	draft, err := pages.NewDraft(profile, s.registry, opts...)
	if err != nil {
		return nil, err
	}

	s.logger.WithContext(logging.ContextWithSession(ctx, businessID, string(pageType))).Debug("builder.session.opened")
	return &Session{
		service:  s,
		draft:    draft,
		pageType: pageType,
		products: products,
		services: services,
	}, nil
}

// PublicPage is the rendered public view of one storefront page.
type PublicPage struct {
	Business domain.Business
	Page     profiles.Page
	Views    []render.View
}

// PublicPage loads a profile by slug and renders the enabled page.
func (s *Service) PublicPage(ctx context.Context, slug string, pageType domain.PageType) (*PublicPage, error) {
	pageType = s.resolvePage(pageType)
	profile, err := s.profiles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	page, ok := profile.Page(pageType)
	if !ok || !page.Enabled {
		return nil, fmt.Errorf("%w: %s/%s", ErrPageNotFound, slug, pageType)
	}
	products, services, err := s.loadCatalog(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	views := s.renderer.RenderPage(page, render.Ambient{
		Profile:  profile,
		Products: products,
		Services: services,
	})
	return &PublicPage{Business: profile.Business, Page: page, Views: views}, nil
}

func (s *Service) resolvePage(pageType domain.PageType) domain.PageType {
	normalized := domain.NormalizePageType(string(pageType))
	if normalized == "" {
		return s.defaultPage
	}
	return normalized
}

func (s *Service) loadCatalog(ctx context.Context, businessID uuid.UUID) ([]domain.Product, []domain.Service, error) {
	products, err := s.catalog.ListProducts(ctx, businessID)
	if err != nil {
		s.logger.Error("builder.catalog.products_failed", "business_id", businessID, "error", err)
		return nil, nil, fmt.Errorf("builder: list products: %w", err)
	}
	services, err := s.catalog.ListServices(ctx, businessID)
	if err != nil {
		s.logger.Error("builder.catalog.services_failed", "business_id", businessID, "error", err)
		return nil, nil, fmt.Errorf("builder: list services: %w", err)
	}
	return products, services, nil
}
