package storefront

import (
	"context"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/builder"
	"github.com/goliatone/go-storefront/internal/catalog"
	buildercmd "github.com/goliatone/go-storefront/internal/commands/builder"
	"github.com/goliatone/go-storefront/internal/di"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/pages"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/goliatone/go-storefront/internal/render"
	"github.com/google/uuid"
)

// Business is the canonical business record blocks write through to.
type Business = domain.Business

// PageType names one of the storefront pages.
type PageType = domain.PageType

// Profile is a business together with its pages.
type Profile = profiles.Profile

// ProfileRepository exports the profile persistence contract.
type ProfileRepository = profiles.Repository

// CatalogSource exports the product and service listing contract.
type CatalogSource = catalog.Source

// Block exports the block sum type.
type Block = blocks.Block

// BlockType names a block variant.
type BlockType = blocks.Type

// Patch is a partial block update keyed by JSON field name.
type Patch = blocks.Patch

// Notifier receives the notices raised while editing.
type Notifier = pages.Notifier

// Session is one editing session over a business profile.
type Session = builder.Session

// PublicPage is the rendered public view of a page.
type PublicPage = builder.PublicPage

// View is one rendered block.
type View = render.View

// ApplyEditsCommand replays a batch of edits and saves once.
type ApplyEditsCommand = buildercmd.ApplyEditsCommand

// Edit is one entry of an ApplyEditsCommand.
type Edit = buildercmd.Edit

// Module represents the top level storefront runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a storefront module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Profiles returns the configured profile repository.
func (m *Module) Profiles() ProfileRepository {
	return m.container.ProfileRepository()
}

// Catalog returns the configured catalog source.
func (m *Module) Catalog() CatalogSource {
	return m.container.CatalogSource()
}

// Blocks returns the block registry.
func (m *Module) Blocks() *blocks.Registry {
	return m.container.BlockRegistry()
}

// Open starts an editing session on one page of a business.
func (m *Module) Open(ctx context.Context, businessID uuid.UUID, pageType PageType, notifier Notifier) (*Session, error) {
	return m.container.BuilderService().Open(ctx, businessID, pageType, notifier)
}

// PublicPage renders an enabled page for visitors.
func (m *Module) PublicPage(ctx context.Context, slug string, pageType PageType) (*PublicPage, error) {
	return m.container.BuilderService().PublicPage(ctx, slug, pageType)
}

// ApplyEdits runs the batch edit command.
func (m *Module) ApplyEdits(ctx context.Context, cmd ApplyEditsCommand) error {
	return m.container.ApplyEditsHandler().Execute(ctx, cmd)
}

// Save runs the save command for an open session.
func (m *Module) Save(ctx context.Context, session *Session) error {
	return m.container.SaveSessionHandler().Execute(ctx, buildercmd.SaveSessionCommand{Session: session})
}

// SubscribeCommands registers the builder command handlers on the go-command
// dispatcher. Call the returned func to unsubscribe.
func (m *Module) SubscribeCommands() func() {
	return buildercmd.Subscribe(m.container.ApplyEditsHandler(), m.container.SaveSessionHandler())
}

// Close releases storage the module opened.
func (m *Module) Close(ctx context.Context) error {
	return m.container.Close(ctx)
}
